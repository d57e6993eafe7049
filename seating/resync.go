package seating

import "github.com/samber/lo"

// LayoutStats is the header summary of the seating chart.
type LayoutStats struct {
	Slots      int `json:"slots"`
	Tables     int `json:"tables"`
	Seats      int `json:"seats"`
	Seated     int `json:"seated"`
	FreeSeats  int `json:"freeSeats"`
	FullTables int `json:"fullTables"`
}

// Summarize counts only the snapshots whose party is in known. A nil known set
// counts every snapshot.
func Summarize(g Grid, known map[uint]struct{}) LayoutStats {
	st := LayoutStats{Slots: len(g)}
	for _, s := range g {
		if s.Table == nil {
			continue
		}
		occ := VisibleOccupancy(s.Table, known)
		st.Tables++
		st.Seats += s.Table.Capacity
		st.Seated += occ
		if occ >= s.Table.Capacity {
			st.FullTables++
		}
	}
	st.FreeSeats = st.Seats - st.Seated
	return st
}

// KnownIDs is the id set used to hide snapshots of deleted parties.
func KnownIDs(parties []Party) map[uint]struct{} {
	return lo.Associate(parties, func(p Party) (uint, struct{}) { return p.ID, struct{}{} })
}

// ResyncReport lists what Resync changed.
type ResyncReport struct {
	Refreshed    int    `json:"refreshed"`
	Dropped      []uint `json:"dropped,omitempty"`
	OverCapacity []int  `json:"overCapacity,omitempty"`
}

// Resync replaces every snapshot with the current directory entry and drops snapshots
// of parties that no longer exist. Tables that end up over capacity are reported, not
// trimmed.
func Resync(g Grid, parties []Party) (Grid, ResyncReport) {
	byID := lo.KeyBy(parties, func(p Party) uint { return p.ID })

	var rep ResyncReport
	out := g.Clone()
	for i := range out {
		t := out[i].Table
		if t == nil {
			continue
		}
		kept := make([]Party, 0, len(t.AssignedParties))
		for _, snap := range t.AssignedParties {
			cur, ok := byID[snap.ID]
			if !ok {
				rep.Dropped = append(rep.Dropped, snap.ID)
				continue
			}
			kept = append(kept, cur.Snapshot())
			rep.Refreshed++
		}
		t.AssignedParties = kept
	}
	rep.OverCapacity = OverCapacity(out)
	return out, rep
}

// VisibleParties filters out snapshots whose party was deleted from the directory.
func VisibleParties(t *Table, known map[uint]struct{}) []Party {
	if t == nil {
		return nil
	}
	out := make([]Party, 0, len(t.AssignedParties))
	for _, p := range t.AssignedParties {
		if _, ok := known[p.ID]; ok {
			out = append(out, p)
		}
	}
	return out
}

// VisibleOccupancy is the seat count of the parties still in known. A nil known set
// falls back to Occupancy.
func VisibleOccupancy(t *Table, known map[uint]struct{}) int {
	if known == nil {
		return Occupancy(t)
	}
	return lo.SumBy(VisibleParties(t, known), func(p Party) int { return p.Size() })
}

func VisibleState(t *Table, known map[uint]struct{}) TableState {
	if t == nil {
		return Empty
	}
	return stateOf(VisibleOccupancy(t, known), t.Capacity)
}

// OverCapacity lists the table numbers seating more than they hold. Such tables are
// legal in a stored document; they appear after a guest's ticket count grows.
func OverCapacity(g Grid) []int {
	var out []int
	for _, s := range g {
		if s.Table != nil && Occupancy(s.Table) > s.Table.Capacity {
			out = append(out, s.Table.TableNumber)
		}
	}
	return out
}
