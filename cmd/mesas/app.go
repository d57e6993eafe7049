package main

import (
	"fmt"
	"io"
	"strconv"
	"strings"
	"text/tabwriter"
	"time"

	"github.com/samber/lo"

	"boda-backend/client"
	"boda-backend/config"
	"boda-backend/layoutsync"
	"boda-backend/seating"
)

// app holds what every command shares: flags, the collaborators and the loaded
// synchronizer.
type app struct {
	apiURL  string
	slots   int
	timeout time.Duration
	poll    time.Duration

	connect  func(a *app) (layoutsync.Store, layoutsync.GuestDirectory)
	sync     *layoutsync.Synchronizer
	onChange func()
}

func newApp() *app {
	return &app{
		apiURL:  config.APIBaseURL(),
		slots:   config.LayoutSlots(),
		timeout: config.StoreTimeout(),
		poll:    config.PollInterval(),
		connect: func(a *app) (layoutsync.Store, layoutsync.GuestDirectory) {
			c := client.New(a.apiURL).WithTimeout(a.timeout)
			return c, c
		},
	}
}

func (a *app) synchronizer(out io.Writer, verbose bool) *layoutsync.Synchronizer {
	store, guests := a.connect(a)
	opts := []layoutsync.Option{
		layoutsync.WithSlots(a.slots),
		layoutsync.WithTimeout(a.timeout),
		layoutsync.WithPollInterval(a.poll),
	}
	opts = append(opts, layoutsync.WithStatusHook(func(msg string) {
		if verbose {
			fmt.Fprintf(out, "· %s\n", msg)
		}
		if msg == layoutsync.StatusChangesSynced && a.onChange != nil {
			a.onChange()
		}
	}))
	return layoutsync.New(store, guests, opts...)
}

func parsePartyID(raw string) (uint, error) {
	n, err := strconv.ParseUint(raw, 10, 32)
	if err != nil || n == 0 {
		return 0, fmt.Errorf("invalid guest id %q", raw)
	}
	return uint(n), nil
}

// slotArg accepts "slot-7", a legacy "espacio-7" or a bare index "7".
func slotArg(raw string) string {
	if i, ok := seating.SlotIndex(raw); ok {
		return seating.SlotID(i)
	}
	if n, err := strconv.Atoi(raw); err == nil && n >= 0 {
		return seating.SlotID(n)
	}
	return raw
}

func partyLine(p seating.Party) string {
	names := lo.Map(p.Companions, func(c seating.Companion, _ int) string { return c.Name })
	line := fmt.Sprintf("%s (%d)", p.PrimaryName, p.Size())
	if len(names) > 0 {
		line += " + " + strings.Join(names, ", ")
	}
	return line
}

// knownIDs is nil when no guest directory was loaded; every snapshot is shown then.
func knownIDs(parties []seating.Party) map[uint]struct{} {
	if len(parties) == 0 {
		return nil
	}
	return seating.KnownIDs(parties)
}

func printGrid(out io.Writer, g seating.Grid, parties []seating.Party) {
	known := knownIDs(parties)

	w := tabwriter.NewWriter(out, 0, 0, 2, ' ', 0)
	fmt.Fprintln(w, "MESA\tSLOT\tFORMA\tOCUPACION\tESTADO\tINVITADOS")
	for _, s := range g {
		t := s.Table
		if t == nil {
			continue
		}
		visible := t.AssignedParties
		if known != nil {
			visible = seating.VisibleParties(t, known)
		}
		guests := strings.Join(lo.Map(visible, func(p seating.Party, _ int) string { return partyLine(p) }), "; ")
		fmt.Fprintf(w, "%d\t%s\t%s\t%d/%d\t%s\t%s\n",
			t.TableNumber, s.ID, t.Shape, seating.VisibleOccupancy(t, known), t.Capacity,
			stateLabel(seating.VisibleState(t, known)), guests)
	}
	w.Flush()
}

func stateLabel(s seating.TableState) string {
	switch s {
	case seating.Full:
		return "llena"
	case seating.PartiallyFilled:
		return "parcial"
	default:
		return "vacia"
	}
}

func printStats(out io.Writer, g seating.Grid, parties []seating.Party) {
	st := seating.Summarize(g, knownIDs(parties))
	totals := seating.SummarizeParties(parties)
	assigned := g.AssignedIDs()
	unseated := lo.CountBy(parties, func(p seating.Party) bool {
		_, ok := assigned[p.ID]
		return !ok
	})
	fmt.Fprintf(out, "Mesas: %d/%d  Asientos: %d  Ocupados: %d  Libres: %d  Llenas: %d\n",
		st.Tables, st.Slots, st.Seats, st.Seated, st.FreeSeats, st.FullTables)
	fmt.Fprintf(out, "Invitaciones: %d  Adultos: %d  Niños: %d  Total: %d  Sin mesa: %d\n",
		totals.Parties, totals.Adults, totals.Children, totals.Total, unseated)
}
