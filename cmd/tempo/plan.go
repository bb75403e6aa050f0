package main

import (
	"fmt"

	"github.com/spf13/afero"
	"github.com/spf13/cobra"

	"github.com/abatilo/tempo/internal/deps"
	tempoerrors "github.com/abatilo/tempo/internal/errors"
	"github.com/abatilo/tempo/internal/hierarchy"
	"github.com/abatilo/tempo/internal/storage"
	"github.com/abatilo/tempo/internal/task"
	"github.com/abatilo/tempo/internal/view"
	"github.com/abatilo/tempo/internal/viewstate"
)

// depCmd implements 'tempo dep'.
func depCmd() *cobra.Command {
	var depType, logic string
	var multi bool
	cmd := &cobra.Command{
		Use:   "dep <id> <predecessor-id>",
		Short: "Add a dependency",
		Long: "Make <predecessor-id> a predecessor of <id>. Without --multi the single " +
			"predecessor is replaced; with --multi the edge joins the dependency list, " +
			"which is combined with --logic and takes precedence over the single edge.",
		Args: cobra.ExactArgs(2), //nolint:mnd // CLI takes 2 positional args
		Run: func(c *cobra.Command, args []string) {
			id, predID := idArg(args[0]), idArg(args[1])
			dt, err := parseDepType(depType)
			if err != nil {
				printError(err)
			}
			var l task.DepLogic
			if c.Flags().Changed("logic") {
				if l, err = parseDepLogic(logic); err != nil {
					printError(err)
				}
			}

			changed := false
			_, p := editPlan(func(p *storage.Plan) error {
				var linkErr error
				if changed, linkErr = p.Link(id, predID, dt, multi); linkErr != nil {
					return linkErr
				}
				if l != "" {
					i, _ := p.Find(id)
					if p.Tasks[i].DepLogic != l {
						p.Tasks[i].DepLogic = l
						changed = true
					}
				}
				return nil
			})
			if !changed {
				printOutput(formatter.FormatMessage("Dependency already exists"))
				return
			}
			logger.Debug().Int("task_id", id).Int("predecessor_id", predID).
				Str("dep_type", string(dt)).Bool("multi", multi).Msg("added dependency")
			printOutput(formatter.FormatTask(findTask(p, id)))
		},
	}
	cmd.Flags().StringVarP(&depType, "type", "t", "FS", "Dependency type (FS, SS, FF, SF)")
	cmd.Flags().BoolVarP(&multi, "multi", "m", false, "Add to the multi-predecessor list")
	cmd.Flags().StringVarP(&logic, "logic", "l", "ALL", "Combine multiple predecessors with ALL (latest) or ANY (earliest)")
	return cmd
}

// undepCmd implements 'tempo undep'.
func undepCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "undep <id> <predecessor-id>",
		Short: "Remove a dependency",
		Args:  cobra.ExactArgs(2), //nolint:mnd // CLI takes 2 positional args
		Run: func(_ *cobra.Command, args []string) {
			id, predID := idArg(args[0]), idArg(args[1])

			removed := false
			_, p := editPlan(func(p *storage.Plan) error {
				var err error
				removed, err = p.Unlink(id, predID)
				return err
			})
			if !removed {
				printOutput(formatter.FormatMessage("Dependency not found"))
				return
			}
			printOutput(formatter.FormatTask(findTask(p, id)))
		},
	}
}

// indentCmd implements 'tempo indent'.
func indentCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "indent <id>",
		Short: "Move a task and its subtasks one level deeper",
		Args:  cobra.ExactArgs(1),
		Run: func(_ *cobra.Command, args []string) {
			id := idArg(args[0])
			_, p := editPlan(func(p *storage.Plan) error { return p.Indent(id) })
			printOutput(formatter.FormatTask(findTask(p, id)))
		},
	}
}

// outdentCmd implements 'tempo outdent'.
func outdentCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "outdent <id>",
		Short: "Move a task and its subtasks one level up",
		Args:  cobra.ExactArgs(1),
		Run: func(_ *cobra.Command, args []string) {
			id := idArg(args[0])
			_, p := editPlan(func(p *storage.Plan) error { return p.Outdent(id) })
			printOutput(formatter.FormatTask(findTask(p, id)))
		},
	}
}

// shiftCmd implements 'tempo shift'.
func shiftCmd() *cobra.Command {
	return &cobra.Command{
		Use:     "shift <id> <business-days>",
		Short:   "Move a task's start by business days",
		Long:    "Move a task's start by business days, skipping weekends. Tasks with a predecessor are rescheduled afterwards.",
		Example: "  tempo shift 4 3\n  tempo shift 4 -- -2",
		Args:    cobra.ExactArgs(2), //nolint:mnd // CLI takes 2 positional args
		Run: func(_ *cobra.Command, args []string) {
			id := idArg(args[0])
			n, err := parseInt("business days", args[1])
			if err != nil {
				printError(err)
			}
			_, p := editPlan(func(p *storage.Plan) error { return p.Shift(id, n) })
			printOutput(formatter.FormatTask(findTask(p, id)))
		},
	}
}

// listCmd implements 'tempo list'.
func listCmd() *cobra.Command {
	var all bool
	cmd := &cobra.Command{
		Use:   "list",
		Short: "List visible tasks with critical path markers",
		Run: func(_ *cobra.Command, _ []string) {
			store, p := loadPlan()

			views := viewStore(store)
			state, err := views.Load()
			if err != nil {
				printError(err)
			}
			if pruned := state.Prune(p.IDs()); pruned > 0 {
				logger.Debug().Int("pruned", pruned).Msg("dropped collapse state for removed tasks")
				if err = saveViewState(views, state); err != nil {
					printError(err)
				}
			}

			collapsed := state.Set()
			if all {
				collapsed = nil
			}

			critical, err := deps.CriticalPathIDs(p.Tasks)
			if err != nil {
				logger.Warn().Err(err).Msg("critical path unavailable")
			}
			printOutput(formatter.FormatRows(view.BuildVisible(p.Tasks, collapsed), critical))
		},
	}
	cmd.Flags().BoolVarP(&all, "all", "a", false, "Ignore collapsed groups")
	return cmd
}

// collapseCmd implements 'tempo collapse'.
func collapseCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "collapse <id>",
		Short: "Hide a group's subtasks in list output",
		Args:  cobra.ExactArgs(1),
		Run: func(_ *cobra.Command, args []string) {
			id := idArg(args[0])
			updateViewState(id, (*viewstate.State).Collapse, "Collapsed", "already collapsed")
		},
	}
}

// expandCmd implements 'tempo expand'.
func expandCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "expand <id>",
		Short: "Show a collapsed group's subtasks again",
		Args:  cobra.ExactArgs(1),
		Run: func(_ *cobra.Command, args []string) {
			id := idArg(args[0])
			updateViewState(id, (*viewstate.State).Expand, "Expanded", "not collapsed")
		},
	}
}

// updateViewState applies change to the collapse state of group id.
func updateViewState(id int, change func(*viewstate.State, int) bool, verb, unchanged string) {
	store, p := loadPlan()
	i, err := p.Find(id)
	if err != nil {
		printError(err)
	}
	if !hierarchy.Resolve(p.Tasks).IsGroup(i) {
		printError(tempoerrors.NotAGroupError{ID: id})
	}

	views := viewStore(store)
	state, err := views.Load()
	if err != nil {
		printError(err)
	}
	if !change(state, id) {
		printOutput(formatter.FormatMessage(fmt.Sprintf("Task %d is %s", id, unchanged)))
		return
	}
	if err = saveViewState(views, state); err != nil {
		printError(err)
	}
	printOutput(formatter.FormatMessage(fmt.Sprintf("%s task %d", verb, id)))
}

func viewStore(store *storage.Store) *viewstate.Store {
	return viewstate.NewStore(afero.NewOsFs(), store.BasePath())
}

// saveViewState writes state, removing the file once nothing is collapsed.
func saveViewState(views *viewstate.Store, state *viewstate.State) error {
	if len(state.Collapsed) == 0 {
		return views.Delete()
	}
	return views.Save(state)
}

// criticalCmd implements 'tempo critical'.
func criticalCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "critical",
		Short: "Show the critical path analysis",
		Run: func(_ *cobra.Command, _ []string) {
			_, p := loadPlan()
			r, err := deps.Analyze(p.Tasks)
			if err != nil {
				printError(err)
			}
			printOutput(formatter.FormatCritical(r, p.Tasks))
		},
	}
}
