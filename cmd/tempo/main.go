package main

import (
	"fmt"
	"os"
	"time"

	"github.com/rs/zerolog"
	"github.com/spf13/cobra"

	"github.com/abatilo/tempo/internal/config"
	"github.com/abatilo/tempo/internal/logging"
	"github.com/abatilo/tempo/internal/output"
	"github.com/abatilo/tempo/internal/storage"
	"github.com/abatilo/tempo/internal/task"
	"github.com/abatilo/tempo/internal/view"
)

//nolint:gochecknoglobals // CLI flags, config and formatter are shared by every command
var (
	jsonOutput bool
	formatter  output.Formatter = output.NewHumanFormatter(nil)
	cfg        *config.Config
	logger     = zerolog.Nop()
)

func main() {
	rootCmd := &cobra.Command{
		Use:   "tempo",
		Short: "A file-based project scheduler",
		Long:  "tempo - A file-based project scheduler with dependencies, groups and critical path analysis.",
		PersistentPreRun: func(_ *cobra.Command, _ []string) {
			var err error
			if cfg, err = config.Load(); err != nil {
				printError(err)
			}
			logger = logging.New(cfg.LogLevel, cfg.JSONLogs(), os.Stderr)
			if jsonOutput {
				formatter = output.NewJSONFormatter()
			} else {
				formatter = output.NewHumanFormatter(cfg.FormatDate)
			}
		},
	}

	rootCmd.PersistentFlags().BoolVar(&jsonOutput, "json", false, "Output in JSON format")

	rootCmd.AddCommand(
		initCmd(),
		addCmd(),
		setCmd(),
		depCmd(),
		undepCmd(),
		indentCmd(),
		outdentCmd(),
		shiftCmd(),
		scheduleCmd(),
		listCmd(),
		showCmd(),
		collapseCmd(),
		expandCmd(),
		criticalCmd(),
		rmCmd(),
	)

	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

func getStore() (*storage.Store, error) {
	dataDir, err := cfg.ResolveDataDir()
	if err != nil {
		return nil, err
	}
	cwd, err := os.Getwd()
	if err != nil {
		return nil, err
	}
	return storage.NewStore(dataDir, cwd,
		storage.WithLogger(logger),
		storage.WithToday(cfg.TodayFunc()),
	)
}

func printOutput(s string) {
	os.Stdout.WriteString(s) //nolint:gosec // stdout write errors are unrecoverable
}

func printError(err error) {
	os.Stdout.WriteString(formatter.FormatError(err)) //nolint:gosec // stdout write errors are unrecoverable
	os.Exit(1)
}

// editPlan applies edit through Store.Edit, exiting on any failure.
func editPlan(edit func(p *storage.Plan) error) (*storage.Store, *storage.Plan) {
	store, err := getStore()
	if err != nil {
		printError(err)
	}
	p, err := store.Edit(edit)
	if err != nil {
		printError(err)
	}
	return store, p
}

// loadPlan opens the store and reads the plan without changing it.
func loadPlan() (*storage.Store, *storage.Plan) {
	store, err := getStore()
	if err != nil {
		printError(err)
	}
	p, err := store.Load()
	if err != nil {
		printError(err)
	}
	return store, p
}

// findTask returns the task with id, carrying its group rollup when it has one.
func findTask(p *storage.Plan, id int) task.Task {
	i, err := p.Find(id)
	if err != nil {
		printError(err)
	}
	return view.BuildVisible(p.Tasks, nil)[i].Task
}

func idArg(s string) int {
	id, err := parseID(s)
	if err != nil {
		printError(err)
	}
	return id
}

// initCmd implements 'tempo init'.
func initCmd() *cobra.Command {
	var force bool
	var name string
	cmd := &cobra.Command{
		Use:   "init",
		Short: "Initialize a plan for this project",
		Run: func(_ *cobra.Command, _ []string) {
			store, err := getStore()
			if err != nil {
				printError(err)
			}
			if err = store.Init(force, name); err != nil {
				printError(err)
			}
			printOutput(formatter.FormatMessage(fmt.Sprintf("Initialized plan at %s", store.BasePath())))
		},
	}
	cmd.Flags().BoolVarP(&force, "force", "f", false, "Reinitialize even if already exists")
	cmd.Flags().StringVarP(&name, "name", "n", "", "Plan name")
	return cmd
}

// addCmd implements 'tempo add'.
func addCmd() *cobra.Command {
	var start, depType string
	var dur, indent, after int
	var milestone bool
	cmd := &cobra.Command{
		Use:   "add <name>",
		Short: "Append a task to the plan",
		Args:  cobra.ExactArgs(1),
		Run: func(c *cobra.Command, args []string) {
			t := task.Task{Name: args[0], Type: task.TypeTask, Dur: dur, Indent: indent}
			if milestone {
				t.Type = task.TypeMilestone
				if !c.Flags().Changed("dur") {
					t.Dur = 0
				}
			}
			if err := checkDur(t.Dur); err != nil {
				printError(err)
			}
			t.Start = cfg.TodayFunc()()
			if start != "" {
				parsed, err := parseDate(start)
				if err != nil {
					printError(err)
				}
				t.Start = parsed
			}
			dt, err := parseDepType(depType)
			if err != nil {
				printError(err)
			}

			var added task.Task
			_, p := editPlan(func(p *storage.Plan) error {
				limit := 0
				if n := len(p.Tasks); n > 0 {
					limit = p.Tasks[n-1].Indent + 1
				}
				if err := checkRange("indent", t.Indent, 0, limit); err != nil {
					return err
				}
				added = p.Insert(t, len(p.Tasks))
				if after == 0 {
					return nil
				}
				_, err := p.Link(added.ID, after, dt, false)
				return err
			})
			printOutput(formatter.FormatTask(findTask(p, added.ID)))
		},
	}
	cmd.Flags().StringVarP(&start, "start", "s", "", "Start date (YYYY-MM-DD or DD-MMM-YY); defaults to today")
	cmd.Flags().IntVarP(&dur, "dur", "d", 1, "Duration in calendar days")
	cmd.Flags().BoolVarP(&milestone, "milestone", "m", false, "Add a zero-length milestone")
	cmd.Flags().IntVarP(&indent, "indent", "i", 0, "Outline level")
	cmd.Flags().IntVarP(&after, "after", "a", 0, "Predecessor task id")
	cmd.Flags().StringVarP(&depType, "type", "t", "FS", "Dependency type for --after (FS, SS, FF, SF)")
	return cmd
}

// setCmd implements 'tempo set'.
func setCmd() *cobra.Command {
	var name, start string
	var dur, pct int
	cmd := &cobra.Command{
		Use:   "set <id>",
		Short: "Change a task's fields",
		Args:  cobra.ExactArgs(1),
		Run: func(c *cobra.Command, args []string) {
			id := idArg(args[0])
			flags := c.Flags()
			if flags.Changed("dur") {
				if err := checkDur(dur); err != nil {
					printError(err)
				}
			}
			if flags.Changed("pct") {
				if err := checkPct(pct); err != nil {
					printError(err)
				}
			}
			var startDate time.Time
			if flags.Changed("start") {
				parsed, err := parseDate(start)
				if err != nil {
					printError(err)
				}
				startDate = parsed
			}

			_, p := editPlan(func(p *storage.Plan) error {
				i, err := p.Find(id)
				if err != nil {
					return err
				}
				t := &p.Tasks[i]
				if flags.Changed("name") {
					t.Name = name
				}
				if flags.Changed("start") {
					t.Start = startDate
				}
				if flags.Changed("dur") {
					t.Dur = dur
				}
				if flags.Changed("pct") {
					t.Pct = pct
				}
				return nil
			})
			printOutput(formatter.FormatTask(findTask(p, id)))
		},
	}
	cmd.Flags().StringVarP(&name, "name", "n", "", "Task name")
	cmd.Flags().StringVarP(&start, "start", "s", "", "Start date (YYYY-MM-DD or DD-MMM-YY)")
	cmd.Flags().IntVarP(&dur, "dur", "d", 0, "Duration in calendar days")
	cmd.Flags().IntVarP(&pct, "pct", "p", 0, "Percent complete (0-100)")
	return cmd
}

// scheduleCmd implements 'tempo schedule'.
func scheduleCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "schedule",
		Short: "Recompute every dependent start and save",
		Run: func(_ *cobra.Command, _ []string) {
			_, p := editPlan(func(*storage.Plan) error { return nil })
			printOutput(formatter.FormatMessage(fmt.Sprintf("Scheduled %d task(s)", len(p.Tasks))))
		},
	}
}

// showCmd implements 'tempo show'.
func showCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "show <id>",
		Short: "Show task details",
		Args:  cobra.ExactArgs(1),
		Run: func(_ *cobra.Command, args []string) {
			id := idArg(args[0])
			_, p := loadPlan()
			printOutput(formatter.FormatTask(findTask(p, id)))
		},
	}
}

// rmCmd implements 'tempo rm'.
func rmCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "rm <id>",
		Short: "Remove a task",
		Long:  "Remove a task. Its subtasks move up one level and references to it are dropped.",
		Args:  cobra.ExactArgs(1),
		Run: func(_ *cobra.Command, args []string) {
			id := idArg(args[0])
			editPlan(func(p *storage.Plan) error { return p.Remove(id) })
			printOutput(formatter.FormatMessage(fmt.Sprintf("Removed task %d", id)))
		},
	}
}
