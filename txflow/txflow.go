package txflow

import (
	"context"
	"fmt"
	"strings"
	"sync"
	"time"

	"namespace-tui/apperrors"
	"namespace-tui/registry"
	"namespace-tui/session"
)

// Kind identifies the mutating call a pending transaction performs.
type Kind int

const (
	CreateTopLevel Kind = iota
	RegisterSubName
	Withdraw
)

func (k Kind) String() string {
	switch k {
	case CreateTopLevel:
		return "create-tld"
	case RegisterSubName:
		return "register-name"
	case Withdraw:
		return "withdraw"
	default:
		return "unknown"
	}
}

// Status is the lifecycle state of a pending transaction.
type Status int

const (
	Submitted Status = iota
	Confirmed
	Failed
)

func (s Status) String() string {
	switch s {
	case Confirmed:
		return "confirmed"
	case Failed:
		return "failed"
	default:
		return "submitted"
	}
}

// Params carries the inputs of a mutating call. TLD is used by CreateTopLevel;
// Contract and Name by RegisterSubName; Withdraw needs none.
type Params struct {
	TLD      string
	Contract string
	Name     string
}

// Pending tracks one transaction from submission to its terminal status. It is
// owned by the coordinator while Submitted and handed to the UI once terminal.
type Pending struct {
	Kind        Kind
	Target      string
	Hash        string
	SubmittedAt time.Time
	Status      Status
	Cause       error
	Epoch       uint64
}

type slotKey struct {
	kind   Kind
	target string
}

// Coordinator drives mutating calls. At most one transaction of a given kind
// may be in flight per target contract; duplicates are rejected before they
// reach the ledger. Failed or reverted transactions cost real value and are
// never auto-retried; the user must re-trigger explicitly.
type Coordinator struct {
	ledger        registry.Submitter
	store         *session.Store
	expectedChain uint64
	factory       string

	mu       sync.Mutex
	inflight map[slotKey]struct{}
}

func NewCoordinator(ledger registry.Submitter, store *session.Store, expectedChain uint64, factory string) *Coordinator {
	return &Coordinator{
		ledger:        ledger,
		store:         store,
		expectedChain: expectedChain,
		factory:       factory,
		inflight:      make(map[slotKey]struct{}),
	}
}

func (c *Coordinator) target(kind Kind, p Params) string {
	if kind == RegisterSubName {
		return p.Contract
	}
	return c.factory
}

func (c *Coordinator) acquire(key slotKey) bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	if _, busy := c.inflight[key]; busy {
		return false
	}
	c.inflight[key] = struct{}{}
	return true
}

func (c *Coordinator) release(key slotKey) {
	c.mu.Lock()
	defer c.mu.Unlock()
	delete(c.inflight, key)
}

// InFlight reports whether a transaction of the given kind is currently
// Submitted against the target.
func (c *Coordinator) InFlight(kind Kind, p Params) bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	_, busy := c.inflight[slotKey{kind, c.target(kind, p)}]
	return busy
}

// Submit checks preconditions, hands the call to the ledger and returns the
// Submitted pending. The caller awaits inclusion separately with Await so the
// interface is never blocked on confirmation. On a submission error the
// returned pending is already terminal (Failed) with the cause preserved.
func (c *Coordinator) Submit(ctx context.Context, kind Kind, p Params) (Pending, error) {
	sess := c.store.Current()
	if sess.Status != session.Connected || sess.ChainID != c.expectedChain {
		return Pending{Epoch: sess.Epoch}, fmt.Errorf("%w: wallet not connected on the expected chain", apperrors.ErrPreconditionFailed)
	}

	key := slotKey{kind, c.target(kind, p)}
	if !c.acquire(key) {
		return Pending{Epoch: sess.Epoch}, fmt.Errorf("%w: %s already in flight for %s", apperrors.ErrPreconditionFailed, kind, key.target)
	}

	pending := Pending{
		Kind:        kind,
		Target:      key.target,
		SubmittedAt: time.Now(),
		Status:      Submitted,
		Epoch:       sess.Epoch,
	}

	var hash string
	var err error
	switch kind {
	case CreateTopLevel:
		hash, err = c.ledger.SubmitCreate(ctx, sess.Account, p.TLD, registry.CreateFee)
	case RegisterSubName:
		hash, err = c.ledger.SubmitRegister(ctx, sess.Account, p.Contract, p.Name)
	case Withdraw:
		hash, err = c.ledger.SubmitWithdraw(ctx, sess.Account)
	default:
		err = fmt.Errorf("%w: unknown transaction kind %d", apperrors.ErrPreconditionFailed, kind)
	}
	if err != nil {
		c.release(key)
		pending.Status = Failed
		pending.Cause = err
		return pending, err
	}

	pending.Hash = hash
	return pending, nil
}

// Await blocks until the submitted transaction reaches a terminal status and
// returns the updated pending. The in-flight slot is released either way. A
// success status confirms; a failure status maps the revert reason onto the
// error taxonomy so the UI can show a targeted message.
func (c *Coordinator) Await(ctx context.Context, pending Pending) Pending {
	defer c.release(slotKey{pending.Kind, pending.Target})

	inc, err := c.ledger.WaitInclusion(ctx, pending.Hash)
	if err != nil {
		pending.Status = Failed
		pending.Cause = err
		return pending
	}

	if inc.Succeeded {
		pending.Status = Confirmed
		return pending
	}

	pending.Status = Failed
	pending.Cause = c.classifyRevert(pending.Kind, inc.RevertReason)
	return pending
}

// classifyRevert maps a duplicate-name revert to its distinguished cause;
// everything else stays a generic revert.
func (c *Coordinator) classifyRevert(kind Kind, reason string) error {
	if kind == CreateTopLevel || kind == RegisterSubName {
		lower := strings.ToLower(reason)
		if strings.Contains(lower, "exist") || strings.Contains(lower, "taken") || strings.Contains(lower, "duplicate") {
			return fmt.Errorf("%w: %s", apperrors.ErrDuplicateName, reason)
		}
	}
	if reason == "" {
		return apperrors.ErrTransactionReverted
	}
	return fmt.Errorf("%w: %s", apperrors.ErrTransactionReverted, reason)
}
