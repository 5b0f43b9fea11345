package registry

import (
	"context"
	"fmt"

	"namespace-tui/apperrors"
	"namespace-tui/session"

	gocache "github.com/patrickmn/go-cache"
	"golang.org/x/sync/errgroup"
)

// followUpLimit caps the scatter-gather fan-out of per-name follow-up reads.
const followUpLimit = 8

const topLevelSnapshotKey = "toplevel"

// Reader produces the current registry entry sets from the ledger. Entries are
// discarded and refetched on every refresh rather than patched in place, so the
// displayed lists can never drift from ledger truth. The last successful result
// per view is kept so a failed refresh can leave the previous list on screen.
type Reader struct {
	ledger        Ledger
	store         *session.Store
	expectedChain uint64
	snapshots     *gocache.Cache
}

func NewReader(ledger Ledger, store *session.Store, expectedChain uint64) *Reader {
	return &Reader{
		ledger:        ledger,
		store:         store,
		expectedChain: expectedChain,
		snapshots:     gocache.New(gocache.NoExpiration, 0),
	}
}

// ready reports whether reads make sense right now. A disconnected or
// wrong-chain session means "nothing known yet", not a failure.
func (r *Reader) ready() bool {
	sess := r.store.Current()
	return sess.Status == session.Connected && sess.ChainID == r.expectedChain
}

// ListTopLevel fetches every TLD from the factory. Returns an empty list with
// no error while the session is not connected on the expected chain.
func (r *Reader) ListTopLevel(ctx context.Context) ([]TopLevelEntry, error) {
	if !r.ready() {
		return nil, nil
	}

	entries, err := r.ledger.TopLevelDomains(ctx)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", apperrors.ErrRegistryReadFailed, err)
	}
	for i := range entries {
		entries[i].CreatedIndex = i
	}

	r.snapshots.Set(topLevelSnapshotKey, entries, gocache.NoExpiration)
	return entries, nil
}

// ListSubnames fetches every name under one namespace contract: a single
// enumeration call, then one follow-up read pair per name, issued concurrently
// and joined. The result preserves enumeration order; MintIndex is the index in
// the ledger-returned sequence, never a re-sort. If any follow-up fails the
// whole read fails, because a partially populated list is indistinguishable
// from ledger truth.
func (r *Reader) ListSubnames(ctx context.Context, contract string) ([]SubNameEntry, error) {
	if !r.ready() {
		return nil, nil
	}

	names, err := r.ledger.Names(ctx, contract)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", apperrors.ErrRegistryReadFailed, err)
	}

	entries := make([]SubNameEntry, len(names))
	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(followUpLimit)
	for i, name := range names {
		g.Go(func() error {
			record, err := r.ledger.Record(gctx, contract, name)
			if err != nil {
				return err
			}
			owner, err := r.ledger.Owner(gctx, contract, name)
			if err != nil {
				return err
			}
			entries[i] = SubNameEntry{Name: name, Owner: owner, Record: record, MintIndex: i}
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, fmt.Errorf("%w: %v", apperrors.ErrRegistryReadFailed, err)
	}

	r.snapshots.Set(subnameSnapshotKey(contract), entries, gocache.NoExpiration)
	return entries, nil
}

// LastTopLevel returns the most recent successful top-level read, for keeping
// the previous list on screen through a transient read failure.
func (r *Reader) LastTopLevel() []TopLevelEntry {
	if v, ok := r.snapshots.Get(topLevelSnapshotKey); ok {
		return v.([]TopLevelEntry)
	}
	return nil
}

// LastSubnames returns the most recent successful read for one namespace.
func (r *Reader) LastSubnames(contract string) []SubNameEntry {
	if v, ok := r.snapshots.Get(subnameSnapshotKey(contract)); ok {
		return v.([]SubNameEntry)
	}
	return nil
}

func subnameSnapshotKey(contract string) string {
	return "subnames:" + contract
}
