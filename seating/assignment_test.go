package seating

import (
	"errors"
	"testing"

	"github.com/samber/lo"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func partyOfSize(id uint, size int) Party {
	return Party{ID: id, PrimaryName: "guest", ExtraAdultTickets: size - 1}
}

func ids(parties []Party) []uint {
	return lo.Map(parties, func(p Party, _ int) uint { return p.ID })
}

func TestBasicAssignmentScenario(t *testing.T) {
	g, err := PlaceTemplate(EmptyGrid(DefaultSlots), "slot-0", Round)
	require.NoError(t, err)
	table := g[0].Table
	assert.Equal(t, 1, table.TableNumber)
	assert.Equal(t, 10, table.Capacity)
	assert.Empty(t, table.AssignedParties)
	assert.Equal(t, Empty, table.State())

	table, err = Assign(table, partyOfSize(1, 4))
	require.NoError(t, err)
	assert.Equal(t, 4, Occupancy(table))
	assert.Equal(t, 6, AvailableCapacity(table))
	assert.Equal(t, PartiallyFilled, table.State())

	_, err = Assign(table, partyOfSize(2, 8))
	require.Error(t, err)
	assert.True(t, errors.Is(err, ErrCapacityExceeded))
	var capErr *CapacityError
	require.ErrorAs(t, err, &capErr)
	assert.Equal(t, 8, capErr.Needed)
	assert.Equal(t, 6, capErr.Available)
	assert.Equal(t, 4, Occupancy(table))
	assert.Len(t, table.AssignedParties, 1)
}

func TestCapacityInvariantUnderSequences(t *testing.T) {
	table := &Table{ID: "t", Shape: Round, Capacity: 10, AssignedParties: []Party{}}
	ops := []struct {
		assign bool
		party  Party
	}{
		{true, partyOfSize(1, 3)},
		{true, partyOfSize(2, 5)},
		{true, partyOfSize(3, 3)},
		{false, partyOfSize(1, 3)},
		{true, partyOfSize(3, 3)},
		{true, partyOfSize(4, 2)},
		{true, partyOfSize(5, 1)},
		{false, partyOfSize(99, 1)},
	}
	for _, op := range ops {
		before := len(table.AssignedParties)
		if op.assign {
			next, err := Assign(table, op.party)
			if err != nil {
				assert.ErrorIs(t, err, ErrCapacityExceeded)
				assert.Len(t, table.AssignedParties, before)
			} else {
				table = next
			}
		} else {
			table = Unassign(table, op.party.ID)
		}
		assert.LessOrEqual(t, Occupancy(table), table.Capacity)
	}
	assert.Equal(t, Full, table.State())
}

func TestUnassignAbsentIsNoop(t *testing.T) {
	table := &Table{ID: "t", Capacity: 10, AssignedParties: []Party{partyOfSize(1, 2)}}
	out := Unassign(table, 5)
	assert.Equal(t, table.AssignedParties, out.AssignedParties)
}

func TestAssignStoresSnapshot(t *testing.T) {
	p := Party{ID: 1, PrimaryName: "Ana", Companions: []Companion{{Name: "Leo", IsChild: true}}}
	table, err := Assign(&Table{ID: "t", Capacity: 10}, p)
	require.NoError(t, err)

	p.Companions[0].Name = "changed"
	p.ExtraAdultTickets = 5
	assert.Equal(t, "Leo", table.AssignedParties[0].Companions[0].Name)
	assert.Equal(t, 2, Occupancy(table))
}

func TestCandidatesRelatedFirst(t *testing.T) {
	b := partyOfSize(2, 2)
	a := Party{ID: 1, PrimaryName: "A", ExtraAdultTickets: 1, RelatedTo: []uint{2}}
	small := partyOfSize(3, 1)
	same := partyOfSize(4, 2)
	parties := []Party{small, same, a, b}

	table := &Table{ID: "t", Capacity: 10, AssignedParties: []Party{b}}
	g := Grid{{ID: "slot-0", Table: table}}

	got := CandidateParties(table, parties, g.AssignedIDs(), BuildIndex(parties))
	assert.Equal(t, []uint{1, 3, 4}, ids(got))
}

func TestCandidatesWithoutRelationsSortBySize(t *testing.T) {
	parties := []Party{partyOfSize(1, 5), partyOfSize(2, 1), partyOfSize(3, 3), partyOfSize(4, 1), partyOfSize(5, 11)}
	table := &Table{ID: "t", Capacity: 10}

	got := CandidateParties(table, parties, map[uint]struct{}{}, BuildIndex(parties))
	assert.Equal(t, []uint{2, 4, 3, 1}, ids(got))
}

func TestCandidatesRelatedTooBigFallsBack(t *testing.T) {
	seated := partyOfSize(1, 6)
	bigRelative := Party{ID: 2, ExtraAdultTickets: 5, RelatedTo: []uint{1}}
	others := []Party{partyOfSize(3, 4), partyOfSize(4, 2)}
	parties := append([]Party{seated, bigRelative}, others...)

	table := &Table{ID: "t", Capacity: 10, AssignedParties: []Party{seated}}
	got := CandidateParties(table, parties, map[uint]struct{}{1: {}}, BuildIndex(parties))
	assert.Equal(t, []uint{4, 3}, ids(got))
}

func TestCandidatesExcludeSeatedEverywhere(t *testing.T) {
	parties := []Party{partyOfSize(1, 1), partyOfSize(2, 1), partyOfSize(3, 1), partyOfSize(4, 1)}
	g := EmptyGrid(3)
	g[0].Table = &Table{ID: "a", Capacity: 10, AssignedParties: []Party{parties[0]}}
	g[1].Table = &Table{ID: "b", Capacity: 10, AssignedParties: []Party{parties[2]}}
	g[2].Table = &Table{ID: "c", Capacity: 10, AssignedParties: []Party{}}
	assigned := g.AssignedIDs()
	idx := BuildIndex(parties)

	for _, s := range g {
		for _, c := range CandidateParties(s.Table, parties, assigned, idx) {
			_, seated := assigned[c.ID]
			assert.False(t, seated, "party %d is seated but offered for %s", c.ID, s.ID)
		}
	}
}

func TestCandidatesFullTable(t *testing.T) {
	table := &Table{ID: "t", Capacity: 2, AssignedParties: []Party{partyOfSize(1, 2)}}
	got := CandidateParties(table, []Party{partyOfSize(2, 1)}, map[uint]struct{}{1: {}}, nil)
	assert.Empty(t, got)
}

func TestAssignAt(t *testing.T) {
	g, err := PlaceTemplate(EmptyGrid(4), "slot-1", Round)
	require.NoError(t, err)

	g, err = AssignAt(g, "slot-1", partyOfSize(1, 3))
	require.NoError(t, err)
	assert.Equal(t, 3, Occupancy(g[1].Table))

	_, err = AssignAt(g, "slot-1", partyOfSize(1, 3))
	assert.ErrorIs(t, err, ErrAlreadySeated)
	_, err = AssignAt(g, "slot-0", partyOfSize(2, 1))
	assert.ErrorIs(t, err, ErrTableNotFound)
	_, err = AssignAt(g, "slot-8", partyOfSize(2, 1))
	assert.ErrorIs(t, err, ErrSlotNotFound)

	g, err = UnassignAt(g, "slot-1", 1)
	require.NoError(t, err)
	assert.Equal(t, 0, Occupancy(g[1].Table))
}
