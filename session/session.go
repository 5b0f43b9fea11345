package session

import "sync"

// Status is the connection state of the wallet session.
type Status int

const (
	Disconnected Status = iota
	Connecting
	Connected
)

func (s Status) String() string {
	switch s {
	case Connecting:
		return "connecting"
	case Connected:
		return "connected"
	default:
		return "disconnected"
	}
}

// Session is a snapshot of the current wallet connection. Account is only
// meaningful while Connected. Epoch advances on every reset; async results
// carry the epoch they were issued under and are discarded on mismatch.
type Session struct {
	Status  Status
	Account string
	ChainID uint64
	Epoch   uint64
}

// Store holds the single authoritative Session. Only the wallet manager
// writes it; everything else reads snapshots.
type Store struct {
	mu  sync.RWMutex
	cur Session
}

func NewStore() *Store {
	return &Store{}
}

// Current returns a snapshot of the session.
func (s *Store) Current() Session {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.cur
}

// Epoch returns the current epoch without copying the rest of the session.
func (s *Store) Epoch() uint64 {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.cur.Epoch
}

// SetConnecting marks the transient prompting state.
func (s *Store) SetConnecting() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.cur.Status = Connecting
}

// SetConnected records a successful connection.
func (s *Store) SetConnected(account string, chainID uint64) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.cur.Status = Connected
	s.cur.Account = account
	s.cur.ChainID = chainID
}

// SetDisconnected clears the account without advancing the epoch, e.g. after a
// declined connect prompt.
func (s *Store) SetDisconnected() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.cur.Status = Disconnected
	s.cur.Account = ""
}

// Reset is the invalidation barrier for an external chain change: it returns
// the session to Disconnected and advances the epoch so that results from
// reads and waits issued before the change can never be applied. Returns the
// new epoch.
func (s *Store) Reset() uint64 {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.cur = Session{Epoch: s.cur.Epoch + 1}
	return s.cur.Epoch
}
