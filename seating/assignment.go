package seating

import (
	"fmt"
	"sort"

	"github.com/samber/lo"
)

type TableState string

const (
	Empty           TableState = "empty"
	PartiallyFilled TableState = "partially_filled"
	Full            TableState = "full"
)

// Occupancy is recomputed on every call from the snapshots; it is never cached.
func Occupancy(t *Table) int {
	if t == nil {
		return 0
	}
	return lo.SumBy(t.AssignedParties, func(p Party) int { return p.Size() })
}

func AvailableCapacity(t *Table) int {
	if t == nil {
		return 0
	}
	return t.Capacity - Occupancy(t)
}

func (t *Table) State() TableState {
	return stateOf(Occupancy(t), t.Capacity)
}

func stateOf(occ, capacity int) TableState {
	switch {
	case occ == 0:
		return Empty
	case occ >= capacity:
		return Full
	default:
		return PartiallyFilled
	}
}

// CandidateParties ranks the parties that may still be seated at t. Parties in
// assigned are never returned. When t already seats someone with unassigned relatives
// that fit, those relatives come first; the rest follow. Each group is ordered by size,
// smallest first, keeping directory order among equals. Only parties that fit the
// remaining capacity are returned.
func CandidateParties(t *Table, parties []Party, assigned map[uint]struct{}, idx *RelationIndex) []Party {
	available := AvailableCapacity(t)
	if t == nil || available <= 0 {
		return []Party{}
	}

	free := lo.Filter(parties, func(p Party, _ int) bool {
		_, taken := assigned[p.ID]
		return !taken
	})
	fits := func(p Party, _ int) bool { return p.Size() <= available }

	group := make(map[uint]struct{})
	for _, seated := range t.AssignedParties {
		for id := range idx.ConnectedGroup(seated.ID) {
			group[id] = struct{}{}
		}
	}
	isRelated := func(p Party, _ int) bool {
		_, ok := group[p.ID]
		return ok
	}

	related := sortedBySize(lo.Filter(lo.Filter(free, isRelated), fits))
	if len(related) > 0 {
		unrelated := lo.Filter(lo.Reject(free, isRelated), fits)
		return append(related, sortedBySize(unrelated)...)
	}
	return sortedBySize(lo.Filter(free, fits))
}

func sortedBySize(parties []Party) []Party {
	sort.SliceStable(parties, func(i, j int) bool {
		return parties[i].Size() < parties[j].Size()
	})
	return parties
}

// Assign returns a copy of t with a snapshot of p appended. It fails with a
// *CapacityError, leaving t untouched, when p does not fit.
func Assign(t *Table, p Party) (*Table, error) {
	if t == nil {
		return nil, ErrTableNotFound
	}
	if avail := AvailableCapacity(t); p.Size() > avail {
		return nil, &CapacityError{TableNumber: t.TableNumber, Needed: p.Size(), Available: avail}
	}
	out := t.Clone()
	out.AssignedParties = append(out.AssignedParties, p.Snapshot())
	return out, nil
}

// Unassign removes the snapshot of partyID. Removing an absent party is a no-op.
func Unassign(t *Table, partyID uint) *Table {
	if t == nil {
		return nil
	}
	out := t.Clone()
	out.AssignedParties = lo.Reject(out.AssignedParties, func(p Party, _ int) bool {
		return p.ID == partyID
	})
	return out
}

// AssignAt seats p at the table in slotID. A party can sit at one table only.
func AssignAt(g Grid, slotID string, p Party) (Grid, error) {
	i := g.IndexOf(slotID)
	if i < 0 {
		return nil, fmt.Errorf("%w: %s", ErrSlotNotFound, slotID)
	}
	if g[i].Table == nil {
		return nil, fmt.Errorf("%w: slot %s is empty", ErrTableNotFound, slotID)
	}
	if _, seated := g.AssignedIDs()[p.ID]; seated {
		return nil, fmt.Errorf("%w: party %d", ErrAlreadySeated, p.ID)
	}
	t, err := Assign(g[i].Table, p)
	if err != nil {
		return nil, err
	}
	out := g.Clone()
	out[i].Table = t
	return out, nil
}

func UnassignAt(g Grid, slotID string, partyID uint) (Grid, error) {
	i := g.IndexOf(slotID)
	if i < 0 {
		return nil, fmt.Errorf("%w: %s", ErrSlotNotFound, slotID)
	}
	out := g.Clone()
	out[i].Table = Unassign(out[i].Table, partyID)
	return out, nil
}
