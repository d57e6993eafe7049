package seating

import (
	"fmt"

	"github.com/google/uuid"
)

// NewTableID generates table ids. Ids are never reused so a drag source can always be
// told apart from the table it produced.
var NewTableID = func(shape Shape) string {
	return string(shape) + "-" + uuid.NewString()
}

// PlaceTemplate drops a new empty table of the given shape into slotID, discarding
// whatever table was there.
func PlaceTemplate(g Grid, slotID string, shape Shape) (Grid, error) {
	if shape != Round && shape != Square {
		return nil, fmt.Errorf("%w: %q", ErrInvalidShape, shape)
	}
	i := g.IndexOf(slotID)
	if i < 0 {
		return nil, fmt.Errorf("%w: %s", ErrSlotNotFound, slotID)
	}
	out := g.Clone()
	out[i].Table = &Table{
		ID:              NewTableID(shape),
		Shape:           shape,
		Capacity:        shape.DefaultCapacity(),
		TableNumber:     i + 1,
		AssignedParties: []Party{},
	}
	return out, nil
}

// Erase empties slotID together with its assignments.
func Erase(g Grid, slotID string) (Grid, error) {
	i := g.IndexOf(slotID)
	if i < 0 {
		return nil, fmt.Errorf("%w: %s", ErrSlotNotFound, slotID)
	}
	out := g.Clone()
	out[i].Table = nil
	return out, nil
}

// MoveOrCopy puts a copy of the table sourceTableID into destSlotID under a new id.
// The source slot keeps its table, so the operation behaves as a copy.
func MoveOrCopy(g Grid, sourceTableID, destSlotID string) (Grid, error) {
	src, _ := g.FindTable(sourceTableID)
	if src == nil {
		return nil, fmt.Errorf("%w: %s", ErrTableNotFound, sourceTableID)
	}
	i := g.IndexOf(destSlotID)
	if i < 0 {
		return nil, fmt.Errorf("%w: %s", ErrSlotNotFound, destSlotID)
	}
	out := g.Clone()
	t := src.Clone()
	t.ID = NewTableID(t.Shape)
	t.TableNumber = i + 1
	out[i].Table = t
	return out, nil
}
