package main

import (
	"context"
	"errors"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"boda-backend/layoutsync"
	"boda-backend/seating"
)

func newRootCmd(a *app) *cobra.Command {
	var verbose bool

	root := &cobra.Command{
		Use:           "mesas",
		Short:         "Edit the wedding seating chart against the planner API",
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			a.sync = a.synchronizer(cmd.OutOrStdout(), verbose)
			if err := a.sync.Load(cmd.Context()); err != nil {
				return err
			}
			if a.sync.Degraded() {
				fmt.Fprintf(cmd.ErrOrStderr(), "⚠️  %s\n", a.sync.Status())
			}
			return nil
		},
	}
	root.PersistentFlags().StringVar(&a.apiURL, "api", a.apiURL, "planner API base URL (MESAS_API_URL)")
	root.PersistentFlags().IntVar(&a.slots, "slots", a.slots, "slots per layout (LAYOUT_SLOTS)")
	root.PersistentFlags().DurationVar(&a.timeout, "timeout", a.timeout, "store request timeout (STORE_TIMEOUT)")
	root.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "print every sync status change")

	root.AddCommand(
		&cobra.Command{
			Use:   "show",
			Short: "Print every placed table with its guests",
			Args:  cobra.NoArgs,
			RunE: func(cmd *cobra.Command, args []string) error {
				printGrid(cmd.OutOrStdout(), a.sync.Grid(), a.sync.Parties())
				return nil
			},
		},
		&cobra.Command{
			Use:   "stats",
			Short: "Summarize tables, seats and guests",
			Args:  cobra.NoArgs,
			RunE: func(cmd *cobra.Command, args []string) error {
				printStats(cmd.OutOrStdout(), a.sync.Grid(), a.sync.Parties())
				return nil
			},
		},
		&cobra.Command{
			Use:   "guests",
			Short: "List the guest directory and where each party sits",
			Args:  cobra.NoArgs,
			RunE: func(cmd *cobra.Command, args []string) error {
				g := a.sync.Grid()
				seatedAt := map[uint]int{}
				for _, s := range g {
					if s.Table == nil {
						continue
					}
					for _, p := range s.Table.AssignedParties {
						seatedAt[p.ID] = s.Table.TableNumber
					}
				}
				for _, p := range a.sync.Parties() {
					where := "-"
					if n, ok := seatedAt[p.ID]; ok {
						where = fmt.Sprintf("mesa %d", n)
					}
					fmt.Fprintf(cmd.OutOrStdout(), "%d\t%s\t%s\n", p.ID, partyLine(p), where)
				}
				return nil
			},
		},
		&cobra.Command{
			Use:   "place <slot> <round|square>",
			Short: "Drop a new empty table into a slot",
			Args:  cobra.ExactArgs(2),
			RunE: func(cmd *cobra.Command, args []string) error {
				shape, err := seating.ParseShape(args[1])
				if err != nil {
					return err
				}
				return a.report(cmd, a.sync.PlaceTemplate(cmd.Context(), slotArg(args[0]), shape))
			},
		},
		&cobra.Command{
			Use:   "erase <slot>",
			Short: "Remove the table in a slot together with its assignments",
			Args:  cobra.ExactArgs(1),
			RunE: func(cmd *cobra.Command, args []string) error {
				return a.report(cmd, a.sync.Erase(cmd.Context(), slotArg(args[0])))
			},
		},
		&cobra.Command{
			Use:   "copy <from-slot> <to-slot>",
			Short: "Copy the table in one slot into another slot",
			Args:  cobra.ExactArgs(2),
			RunE: func(cmd *cobra.Command, args []string) error {
				src, err := a.sync.Table(slotArg(args[0]))
				if err != nil {
					return err
				}
				return a.report(cmd, a.sync.MoveOrCopy(cmd.Context(), src.ID, slotArg(args[1])))
			},
		},
		&cobra.Command{
			Use:   "candidates <slot>",
			Short: "Rank the unseated parties that fit the table in a slot",
			Args:  cobra.ExactArgs(1),
			RunE: func(cmd *cobra.Command, args []string) error {
				slot := slotArg(args[0])
				cands, err := a.sync.Candidates(slot)
				if err != nil {
					return err
				}
				t, _ := a.sync.Table(slot)
				fmt.Fprintf(cmd.OutOrStdout(), "Mesa %d: %d libres\n", t.TableNumber, seating.AvailableCapacity(t))
				for _, p := range cands {
					fmt.Fprintf(cmd.OutOrStdout(), "%d\t%s\n", p.ID, partyLine(p))
				}
				return nil
			},
		},
		&cobra.Command{
			Use:   "assign <slot> <guest-id>...",
			Short: "Seat one or more parties at the table in a slot",
			Args:  cobra.MinimumNArgs(2),
			RunE: func(cmd *cobra.Command, args []string) error {
				a.sync.SetAssignMode(true)
				defer a.sync.SetAssignMode(false)
				slot := slotArg(args[0])
				for _, raw := range args[1:] {
					id, err := parsePartyID(raw)
					if err != nil {
						return err
					}
					if err := a.report(cmd, a.sync.Assign(cmd.Context(), slot, id)); err != nil {
						return err
					}
				}
				return nil
			},
		},
		&cobra.Command{
			Use:   "unassign <slot> <guest-id>",
			Short: "Remove a party from the table in a slot",
			Args:  cobra.ExactArgs(2),
			RunE: func(cmd *cobra.Command, args []string) error {
				id, err := parsePartyID(args[1])
				if err != nil {
					return err
				}
				return a.report(cmd, a.sync.Unassign(cmd.Context(), slotArg(args[0]), id))
			},
		},
		&cobra.Command{
			Use:   "resync",
			Short: "Refresh every seated snapshot from the guest directory",
			Args:  cobra.NoArgs,
			RunE: func(cmd *cobra.Command, args []string) error {
				rep, err := a.sync.Resync(cmd.Context())
				if err != nil {
					return err
				}
				fmt.Fprintf(cmd.OutOrStdout(), "%d refreshed, %d dropped\n", rep.Refreshed, len(rep.Dropped))
				for _, n := range rep.OverCapacity {
					fmt.Fprintf(cmd.OutOrStdout(), "⚠️  mesa %d over capacity\n", n)
				}
				return nil
			},
		},
		&cobra.Command{
			Use:   "watch",
			Short: "Poll the server and print the layout whenever it changes",
			Args:  cobra.NoArgs,
			RunE: func(cmd *cobra.Command, args []string) error {
				ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
				defer stop()
				return a.watch(ctx, cmd)
			},
		},
	)
	return root
}

// report prints the synchronizer status after an edit and turns a capacity
// rejection into a readable message.
func (a *app) report(cmd *cobra.Command, err error) error {
	var capErr *seating.CapacityError
	if errors.As(err, &capErr) {
		return fmt.Errorf("mesa %d: faltan lugares (necesita %d, quedan %d)", capErr.TableNumber, capErr.Needed, capErr.Available)
	}
	if err != nil {
		return err
	}
	fmt.Fprintln(cmd.OutOrStdout(), a.sync.Status())
	return nil
}

// watch prints the layout, then reprints it every time a poll brings in remote changes.
func (a *app) watch(ctx context.Context, cmd *cobra.Command) error {
	out := cmd.OutOrStdout()
	printGrid(out, a.sync.Grid(), a.sync.Parties())
	a.onChange = func() {
		fmt.Fprintf(out, "\n%s\n", layoutsync.StatusChangesSynced)
		printGrid(out, a.sync.Grid(), a.sync.Parties())
	}
	a.sync.Run(ctx)
	return nil
}
