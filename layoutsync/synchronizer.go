package layoutsync

import (
	"context"
	"errors"
	"fmt"
	"log"
	"sync"
	"time"

	"golang.org/x/sync/errgroup"

	"boda-backend/seating"
)

const (
	DefaultPollInterval = 30 * time.Second
	DefaultStoreTimeout = 10 * time.Second
)

// Status messages shown to the operator.
const (
	StatusLoading       = "Loading..."
	StatusLoaded        = "Layout loaded"
	StatusRepaired      = "Layout repaired"
	StatusLocalOnly     = "Using local layout"
	StatusLoadError     = "Error, using local layout"
	StatusChecking      = "Checking for changes..."
	StatusSynced        = "Synced"
	StatusChangesSynced = "Changes synced"
	StatusSyncError     = "Error syncing"
	StatusSaved         = "Layout saved"
	StatusSaveError     = "Error saving layout"
	StatusTableCreated  = "Table created"
	StatusTableErased   = "Table erased"
	StatusTableCopied   = "Table copied"
	StatusGuestAssigned = "Guest assigned"
	StatusGuestRemoved  = "Guest removed"
	StatusGuestsSynced  = "Guests refreshed"
)

type Option func(*Synchronizer)

func WithSlots(n int) Option {
	return func(s *Synchronizer) {
		if n > 0 {
			s.slots = n
		}
	}
}

func WithTimeout(d time.Duration) Option {
	return func(s *Synchronizer) {
		if d > 0 {
			s.timeout = d
		}
	}
}

func WithPollInterval(d time.Duration) Option {
	return func(s *Synchronizer) {
		if d > 0 {
			s.interval = d
		}
	}
}

// WithStatusHook registers fn to be called with every new status message.
func WithStatusHook(fn func(string)) Option {
	return func(s *Synchronizer) { s.onStatus = fn }
}

// Synchronizer keeps the in-memory working copy of the layout and reconciles it with
// the Store. Edits are persisted before they are applied locally. Writes are
// serialized, and a poll never overlaps a write.
type Synchronizer struct {
	store    Store
	guests   GuestDirectory
	slots    int
	timeout  time.Duration
	interval time.Duration
	onStatus func(string)

	// writeMu serializes everything that talks to the store and may replace the grid.
	writeMu sync.Mutex

	mu         sync.Mutex
	layoutID   uint
	grid       seating.Grid
	parties    []seating.Party
	index      *seating.RelationIndex
	loaded     bool
	degraded   bool
	assignMode bool
	status     string
}

func New(store Store, guests GuestDirectory, opts ...Option) *Synchronizer {
	s := &Synchronizer{
		store:    store,
		guests:   guests,
		slots:    seating.DefaultSlots,
		timeout:  DefaultStoreTimeout,
		interval: DefaultPollInterval,
		index:    seating.BuildIndex(nil),
	}
	for _, opt := range opts {
		opt(s)
	}
	s.grid = seating.EmptyGrid(s.slots)
	return s
}

// Load fetches the guest list and the current layout in parallel. A missing or
// malformed layout is replaced by a fresh empty one, which is persisted as the new
// current layout. Store failures leave an empty in-memory grid and degraded mode;
// they are reported through Status and never returned. The only error returned is
// ctx's own.
func (s *Synchronizer) Load(ctx context.Context) error {
	s.setStatus(StatusLoading)

	var (
		parties   []seating.Party
		remote    *seating.Layout
		layoutErr error
		g         errgroup.Group
	)
	g.Go(func() error {
		cctx, cancel := context.WithTimeout(ctx, s.timeout)
		defer cancel()
		p, err := s.guests.Parties(cctx)
		if err != nil {
			log.Printf("⚠️ could not load guests: %v", err)
			return nil
		}
		parties = p
		return nil
	})
	g.Go(func() error {
		cctx, cancel := context.WithTimeout(ctx, s.timeout)
		defer cancel()
		remote, layoutErr = s.store.Latest(cctx)
		return nil
	})
	_ = g.Wait()
	if err := ctx.Err(); err != nil {
		return err
	}

	s.writeMu.Lock()
	defer s.writeMu.Unlock()
	s.setParties(parties)

	if layoutErr == nil && remote != nil && len(remote.Espacios) == s.slots {
		repaired := seating.NormalizeLayout(remote, s.slots)
		s.apply(remote.ID, remote.Espacios, false)
		log.Printf("✅ layout %d loaded (%d guests)", remote.ID, len(parties))
		if repaired {
			// the normalized copy reaches the store with the next edit
			log.Printf("⚠️ layout %d had malformed tables, normalized locally", remote.ID)
			s.setStatus(StatusRepaired)
			return nil
		}
		s.setStatus(StatusLoaded)
		return nil
	}

	fallback := seating.EmptyGrid(s.slots)
	s.apply(0, fallback, true)

	failStatus := StatusLocalOnly
	if layoutErr != nil && !errors.Is(layoutErr, ErrNoLayout) {
		log.Printf("❌ layout load failed: %v", layoutErr)
		failStatus = StatusLoadError
	} else if remote != nil {
		log.Printf("⚠️ layout %d has %d slots, want %d; creating a new one", remote.ID, len(remote.Espacios), s.slots)
	}

	if err := s.persist(ctx, fallback); err != nil {
		log.Printf("⚠️ could not store fallback layout: %v", err)
		s.setStatus(failStatus)
		return nil
	}
	s.setStatus(StatusRepaired)
	return nil
}

// Save persists grid as the current layout and, on success, makes it the working copy.
func (s *Synchronizer) Save(ctx context.Context, grid seating.Grid) error {
	s.writeMu.Lock()
	defer s.writeMu.Unlock()
	if err := s.persist(ctx, grid); err != nil {
		return err
	}
	s.setStatus(StatusSaved)
	return nil
}

// persist must be called with writeMu held.
func (s *Synchronizer) persist(ctx context.Context, grid seating.Grid) error {
	if err := grid.Validate(s.slots); err != nil {
		return err
	}

	s.mu.Lock()
	id := s.layoutID
	s.mu.Unlock()

	cctx, cancel := context.WithTimeout(ctx, s.timeout)
	defer cancel()

	var (
		saved *seating.Layout
		err   error
	)
	if id == 0 {
		saved, err = s.store.Create(cctx, grid)
	} else {
		saved, err = s.store.Replace(cctx, id, grid)
	}
	if err != nil {
		s.setStatus(StatusSaveError)
		return fmt.Errorf("save layout: %w", err)
	}
	s.apply(saved.ID, grid, false)
	return nil
}

func (s *Synchronizer) apply(id uint, grid seating.Grid, degraded bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.layoutID = id
	s.grid = grid.Clone()
	s.degraded = degraded
	s.loaded = true
}

func (s *Synchronizer) setParties(parties []seating.Party) {
	if parties == nil {
		parties = []seating.Party{}
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	s.parties = parties
	s.index = seating.BuildIndex(parties)
}

func (s *Synchronizer) setStatus(msg string) {
	s.mu.Lock()
	s.status = msg
	hook := s.onStatus
	s.mu.Unlock()
	if hook != nil {
		hook(msg)
	}
}

// Poll re-reads the remote layout and replaces the working copy when it differs.
// Polling is skipped while assign mode is on, before the first Load, and while a
// write is in flight. Remote documents of the wrong size are ignored.
func (s *Synchronizer) Poll(ctx context.Context) (bool, error) {
	if !s.pollable() {
		return false, nil
	}
	if !s.writeMu.TryLock() {
		return false, nil
	}
	defer s.writeMu.Unlock()

	s.setStatus(StatusChecking)
	cctx, cancel := context.WithTimeout(ctx, s.timeout)
	defer cancel()
	remote, err := s.store.Latest(cctx)
	if err != nil {
		s.setStatus(StatusSyncError)
		return false, fmt.Errorf("poll layout: %w", err)
	}
	if remote == nil || len(remote.Espacios) != s.slots {
		s.setStatus(StatusSynced)
		return false, nil
	}
	seating.NormalizeLayout(remote, s.slots)

	s.mu.Lock()
	if s.assignMode {
		s.mu.Unlock()
		return false, nil
	}
	changed := remote.ID != s.layoutID || !remote.Espacios.Equal(s.grid)
	if changed {
		s.layoutID = remote.ID
		s.grid = remote.Espacios
		s.degraded = false
	}
	s.mu.Unlock()

	if changed {
		log.Printf("🔄 layout %d changed remotely", remote.ID)
		s.setStatus(StatusChangesSynced)
	} else {
		s.setStatus(StatusSynced)
	}
	return changed, nil
}

func (s *Synchronizer) pollable() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.loaded && !s.assignMode
}

// Run polls every interval until ctx is cancelled.
func (s *Synchronizer) Run(ctx context.Context) {
	ticker := time.NewTicker(s.interval)
	defer ticker.Stop()
	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			if _, err := s.Poll(ctx); err != nil {
				log.Printf("⚠️ %v", err)
			}
		}
	}
}

// SetAssignMode toggles the guest-assignment mode; polling is suppressed while it is on.
func (s *Synchronizer) SetAssignMode(on bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.assignMode = on
}

func (s *Synchronizer) AssignMode() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.assignMode
}

func (s *Synchronizer) Status() string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.status
}

// Degraded reports whether the working copy exists only in memory.
func (s *Synchronizer) Degraded() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.degraded
}

func (s *Synchronizer) LayoutID() uint {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.layoutID
}

// Grid returns a copy of the working copy.
func (s *Synchronizer) Grid() seating.Grid {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.grid.Clone()
}

func (s *Synchronizer) Parties() []seating.Party {
	s.mu.Lock()
	defer s.mu.Unlock()
	return append([]seating.Party(nil), s.parties...)
}
