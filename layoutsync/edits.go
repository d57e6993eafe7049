package layoutsync

import (
	"context"
	"fmt"
	"log"

	"boda-backend/seating"
)

// mutate runs op on a copy of the working grid, persists the result and only then
// swaps it in. On any failure the working copy is left as it was.
func (s *Synchronizer) mutate(ctx context.Context, okStatus string, op func(seating.Grid) (seating.Grid, error)) error {
	s.writeMu.Lock()
	defer s.writeMu.Unlock()

	next, err := op(s.Grid())
	if err != nil {
		return err
	}
	if err := s.persist(ctx, next); err != nil {
		return err
	}
	s.setStatus(okStatus)
	return nil
}

func (s *Synchronizer) PlaceTemplate(ctx context.Context, slotID string, shape seating.Shape) error {
	return s.mutate(ctx, StatusTableCreated, func(g seating.Grid) (seating.Grid, error) {
		return seating.PlaceTemplate(g, slotID, shape)
	})
}

func (s *Synchronizer) Erase(ctx context.Context, slotID string) error {
	return s.mutate(ctx, StatusTableErased, func(g seating.Grid) (seating.Grid, error) {
		return seating.Erase(g, slotID)
	})
}

func (s *Synchronizer) MoveOrCopy(ctx context.Context, tableID, destSlotID string) error {
	return s.mutate(ctx, StatusTableCopied, func(g seating.Grid) (seating.Grid, error) {
		return seating.MoveOrCopy(g, tableID, destSlotID)
	})
}

// Assign seats the directory party partyID at the table in slotID. A party that does
// not fit is rejected with seating.ErrCapacityExceeded and nothing changes.
func (s *Synchronizer) Assign(ctx context.Context, slotID string, partyID uint) error {
	party, ok := s.party(partyID)
	if !ok {
		return fmt.Errorf("%w: %d", seating.ErrPartyNotFound, partyID)
	}
	return s.mutate(ctx, StatusGuestAssigned, func(g seating.Grid) (seating.Grid, error) {
		return seating.AssignAt(g, slotID, party)
	})
}

func (s *Synchronizer) Unassign(ctx context.Context, slotID string, partyID uint) error {
	return s.mutate(ctx, StatusGuestRemoved, func(g seating.Grid) (seating.Grid, error) {
		return seating.UnassignAt(g, slotID, partyID)
	})
}

// RefreshGuests re-reads the guest directory and rebuilds the relationship index.
func (s *Synchronizer) RefreshGuests(ctx context.Context) error {
	cctx, cancel := context.WithTimeout(ctx, s.timeout)
	defer cancel()
	parties, err := s.guests.Parties(cctx)
	if err != nil {
		return fmt.Errorf("load guests: %w", err)
	}
	s.setParties(parties)
	return nil
}

// Resync refreshes the guest directory and rewrites every table snapshot from it.
func (s *Synchronizer) Resync(ctx context.Context) (seating.ResyncReport, error) {
	if err := s.RefreshGuests(ctx); err != nil {
		return seating.ResyncReport{}, err
	}
	parties := s.Parties()
	var rep seating.ResyncReport
	err := s.mutate(ctx, StatusGuestsSynced, func(g seating.Grid) (seating.Grid, error) {
		var out seating.Grid
		out, rep = seating.Resync(g, parties)
		return out, nil
	})
	if len(rep.OverCapacity) > 0 {
		log.Printf("⚠️ tables over capacity after resync: %v", rep.OverCapacity)
	}
	return rep, err
}

func (s *Synchronizer) party(id uint) (seating.Party, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, p := range s.parties {
		if p.ID == id {
			return p, true
		}
	}
	return seating.Party{}, false
}

// Table returns a copy of the table in slotID.
func (s *Synchronizer) Table(slotID string) (*seating.Table, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	i := s.grid.IndexOf(slotID)
	if i < 0 {
		return nil, fmt.Errorf("%w: %s", seating.ErrSlotNotFound, slotID)
	}
	if s.grid[i].Table == nil {
		return nil, fmt.Errorf("%w: slot %s is empty", seating.ErrTableNotFound, slotID)
	}
	return s.grid[i].Table.Clone(), nil
}

// Candidates ranks the unseated parties for the table in slotID.
func (s *Synchronizer) Candidates(slotID string) ([]seating.Party, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	i := s.grid.IndexOf(slotID)
	if i < 0 {
		return nil, fmt.Errorf("%w: %s", seating.ErrSlotNotFound, slotID)
	}
	t := s.grid[i].Table
	if t == nil {
		return nil, fmt.Errorf("%w: slot %s is empty", seating.ErrTableNotFound, slotID)
	}
	return seating.CandidateParties(t, s.parties, s.grid.AssignedIDs(), s.index), nil
}
