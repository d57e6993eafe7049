package seating

// Companion is a named person attending with the primary guest.
type Companion struct {
	Name    string `json:"name"`
	IsChild bool   `json:"isChild"`
}

// Party is one invited unit: the primary guest, their companions and any extra tickets.
// Tables keep Party values as snapshots, not references.
type Party struct {
	ID                uint        `json:"id"`
	PrimaryName       string      `json:"primaryName"`
	Companions        []Companion `json:"companions,omitempty"`
	ExtraAdultTickets int         `json:"extraAdultTickets"`
	ExtraChildTickets int         `json:"extraChildTickets"`
	RelatedTo         []uint      `json:"relatedTo,omitempty"`
}

func (p Party) AdultCount() int {
	n := 1 + nonNegative(p.ExtraAdultTickets)
	for _, c := range p.Companions {
		if !c.IsChild {
			n++
		}
	}
	return n
}

func (p Party) ChildCount() int {
	n := nonNegative(p.ExtraChildTickets)
	for _, c := range p.Companions {
		if c.IsChild {
			n++
		}
	}
	return n
}

// Size is the number of seats the party takes.
func (p Party) Size() int {
	return p.AdultCount() + p.ChildCount()
}

// Snapshot returns a copy that shares no slices with p.
func (p Party) Snapshot() Party {
	out := p
	if p.Companions != nil {
		out.Companions = append([]Companion(nil), p.Companions...)
	}
	if p.RelatedTo != nil {
		out.RelatedTo = append([]uint(nil), p.RelatedTo...)
	}
	return out
}

// PartyTotals mirrors the counters shown on the guest list page.
type PartyTotals struct {
	Parties  int `json:"parties"`
	Adults   int `json:"adults"`
	Children int `json:"children"`
	Total    int `json:"total"`
}

func SummarizeParties(parties []Party) PartyTotals {
	var t PartyTotals
	for _, p := range parties {
		t.Parties++
		t.Adults += p.AdultCount()
		t.Children += p.ChildCount()
	}
	t.Total = t.Adults + t.Children
	return t
}

func nonNegative(n int) int {
	if n < 0 {
		return 0
	}
	return n
}
