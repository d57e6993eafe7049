package seating

import (
	"encoding/json"
	"fmt"
	"strconv"
	"strings"
	"time"
)

const (
	// DefaultSlots is the venue size used when no other size is configured.
	DefaultSlots = 55

	// CurrentVersion is the schema version written by Normalize. Version 1 documents
	// used "espacio-N" slot ids and Spanish shape names.
	CurrentVersion = 2

	slotPrefix       = "slot-"
	legacySlotPrefix = "espacio-"
)

type Shape string

const (
	Round  Shape = "round"
	Square Shape = "square"
)

func ParseShape(s string) (Shape, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "round", "redonda", "template-redonda":
		return Round, nil
	case "square", "cuadrada", "template-cuadrada":
		return Square, nil
	}
	return "", fmt.Errorf("%w: %q", ErrInvalidShape, s)
}

func (s Shape) DefaultCapacity() int {
	if s == Square {
		return 12
	}
	return 10
}

func (s *Shape) UnmarshalJSON(b []byte) error {
	var raw string
	if err := json.Unmarshal(b, &raw); err != nil {
		return err
	}
	// Unknown names are kept as-is so one bad table does not reject a whole
	// document; Normalize replaces them.
	parsed, err := ParseShape(raw)
	if err != nil {
		*s = Shape(raw)
		return nil
	}
	*s = parsed
	return nil
}

type Table struct {
	ID              string  `json:"id"`
	Shape           Shape   `json:"shape"`
	Capacity        int     `json:"capacity"`
	TableNumber     int     `json:"tableNumber"`
	AssignedParties []Party `json:"assignedParties"`
}

func (t *Table) Clone() *Table {
	if t == nil {
		return nil
	}
	out := *t
	out.AssignedParties = make([]Party, 0, len(t.AssignedParties))
	for _, p := range t.AssignedParties {
		out.AssignedParties = append(out.AssignedParties, p.Snapshot())
	}
	return &out
}

type Slot struct {
	ID    string `json:"id"`
	Table *Table `json:"table"`
}

// Grid is the fixed-size, index-ordered list of slots of a layout.
type Grid []Slot

// Layout is the persisted document. Only the most recently created one is current.
type Layout struct {
	ID        uint      `json:"_id"`
	Espacios  Grid      `json:"espacios"`
	Version   int       `json:"version"`
	CreatedAt time.Time `json:"createdAt"`
}

func SlotID(index int) string {
	return slotPrefix + strconv.Itoa(index)
}

// SlotIndex parses both current and legacy slot ids.
func SlotIndex(id string) (int, bool) {
	var rest string
	switch {
	case strings.HasPrefix(id, slotPrefix):
		rest = strings.TrimPrefix(id, slotPrefix)
	case strings.HasPrefix(id, legacySlotPrefix):
		rest = strings.TrimPrefix(id, legacySlotPrefix)
	default:
		return 0, false
	}
	n, err := strconv.Atoi(rest)
	if err != nil || n < 0 {
		return 0, false
	}
	return n, true
}

func EmptyGrid(n int) Grid {
	if n <= 0 {
		n = DefaultSlots
	}
	g := make(Grid, n)
	for i := range g {
		g[i] = Slot{ID: SlotID(i)}
	}
	return g
}

// Normalize returns a grid of exactly n slots ordered by index. Tables found in raw
// are kept in their slot; missing slots are synthesized empty; extras, duplicates and
// unparseable ids are dropped. Normalize(Normalize(x)) == Normalize(x).
func Normalize(raw []Slot, n int) Grid {
	g := EmptyGrid(n)
	seen := make(map[int]bool, len(g))
	for _, s := range raw {
		i, ok := SlotIndex(s.ID)
		if !ok || i >= len(g) || seen[i] {
			continue
		}
		seen[i] = true
		g[i].Table = normalizeTable(s.Table, i)
	}
	return g
}

func normalizeTable(t *Table, index int) *Table {
	if t == nil {
		return nil
	}
	out := t.Clone()
	if out.Shape != Round && out.Shape != Square {
		out.Shape = Round
	}
	if out.Capacity <= 0 {
		out.Capacity = out.Shape.DefaultCapacity()
	}
	out.TableNumber = index + 1
	return out
}

// NormalizeLayout repairs l in place and reports whether anything other than the
// version tag changed.
func NormalizeLayout(l *Layout, n int) bool {
	before, _ := json.Marshal(l.Espacios)
	l.Espacios = Normalize(l.Espacios, n)
	l.Version = CurrentVersion
	after, _ := json.Marshal(l.Espacios)
	return string(before) != string(after)
}

// Validate checks the shape invariant: exactly n slots, slot-i at index i.
func (g Grid) Validate(n int) error {
	if n <= 0 {
		n = DefaultSlots
	}
	if len(g) != n {
		return fmt.Errorf("%w: %d slots, want %d", ErrInvalidLayout, len(g), n)
	}
	for i, s := range g {
		if s.ID != SlotID(i) {
			return fmt.Errorf("%w: slot %d has id %q", ErrInvalidLayout, i, s.ID)
		}
	}
	return nil
}

func (g Grid) Clone() Grid {
	if g == nil {
		return nil
	}
	out := make(Grid, len(g))
	for i, s := range g {
		out[i] = Slot{ID: s.ID, Table: s.Table.Clone()}
	}
	return out
}

func (g Grid) IndexOf(slotID string) int {
	for i, s := range g {
		if s.ID == slotID {
			return i
		}
	}
	return -1
}

// FindTable returns the table with the given id and its slot index.
func (g Grid) FindTable(tableID string) (*Table, int) {
	for i, s := range g {
		if s.Table != nil && s.Table.ID == tableID {
			return s.Table, i
		}
	}
	return nil, -1
}

// AssignedIDs is the set of party ids seated at any table.
func (g Grid) AssignedIDs() map[uint]struct{} {
	ids := make(map[uint]struct{})
	for _, s := range g {
		if s.Table == nil {
			continue
		}
		for _, p := range s.Table.AssignedParties {
			ids[p.ID] = struct{}{}
		}
	}
	return ids
}

func (g Grid) Equal(other Grid) bool {
	a, errA := json.Marshal(g)
	b, errB := json.Marshal(other)
	return errA == nil && errB == nil && string(a) == string(b)
}
