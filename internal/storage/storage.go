package storage

import (
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/rs/zerolog"

	"github.com/abatilo/tempo/internal/dates"
	tempoerrors "github.com/abatilo/tempo/internal/errors"
	"github.com/abatilo/tempo/internal/schedule"
)

const (
	planFile = "plan.md"
	dirPerm  = 0o755
	filePerm = 0o644
)

// Store handles the plan file of one project.
type Store struct {
	basePath string
	logger   zerolog.Logger
	today    func() time.Time
}

// Option configures a Store.
type Option func(*Store)

// WithLogger sets the logger used for load and save events.
func WithLogger(l zerolog.Logger) Option {
	return func(s *Store) { s.logger = l }
}

// WithToday overrides the date substituted for missing or unparseable starts.
func WithToday(fn func() time.Time) Option {
	return func(s *Store) { s.today = fn }
}

// NewStore creates a Store scoped to the project containing cwd
// (<dataDir>/<sanitized-project-root>/).
func NewStore(dataDir, cwd string, opts ...Option) (*Store, error) {
	projectRoot, err := FindProjectRoot(cwd)
	if err != nil {
		return nil, err
	}
	return NewStoreWithPath(filepath.Join(dataDir, SanitizePath(projectRoot)), opts...), nil
}

// NewStoreWithPath creates a Store with a custom base path.
func NewStoreWithPath(path string, opts ...Option) *Store {
	s := &Store{
		basePath: path,
		logger:   zerolog.Nop(),
		today:    time.Now,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// BasePath returns the base path of the store.
func (s *Store) BasePath() string {
	return s.basePath
}

func (s *Store) planPath() string {
	return filepath.Join(s.basePath, planFile)
}

// IsInitialized checks if the plan file exists.
func (s *Store) IsInitialized() bool {
	info, err := os.Stat(s.planPath())
	return err == nil && !info.IsDir()
}

// Init creates the plan directory and an empty plan. With force an existing
// plan is kept and only renamed when name is non-empty.
func (s *Store) Init(force bool, name string) error {
	if s.IsInitialized() {
		if !force {
			return tempoerrors.AlreadyInitializedError{}
		}
		p, err := s.Load()
		if err != nil {
			return err
		}
		if name != "" {
			p.Name = name
		}
		return s.Save(p)
	}

	if err := os.MkdirAll(s.basePath, dirPerm); err != nil {
		return fmt.Errorf("create plan directory: %w", err)
	}
	return s.Save(&Plan{Name: name})
}

// Load reads the plan from disk.
func (s *Store) Load() (*Plan, error) {
	if !s.IsInitialized() {
		return nil, tempoerrors.NotInitializedError{}
	}
	content, err := os.ReadFile(s.planPath())
	if err != nil {
		return nil, fmt.Errorf("read plan: %w", err)
	}

	today := s.today()
	p, defaulted, err := ParseMarkdown(content, today)
	if err != nil {
		return nil, fmt.Errorf("parse %s: %w", s.planPath(), err)
	}
	for _, id := range defaulted {
		s.logger.Warn().
			Int("task_id", id).
			Str("fallback", dates.ISO(today)).
			Msg("task has no usable start date; using today")
	}
	if err := Validate(p); err != nil {
		return nil, err
	}

	s.logger.Debug().Str("path", s.planPath()).Int("tasks", len(p.Tasks)).Msg("loaded plan")
	return p, nil
}

// Save validates the plan and writes it to disk.
func (s *Store) Save(p *Plan) error {
	if err := Validate(p); err != nil {
		return err
	}
	content, err := SerializeMarkdown(p)
	if err != nil {
		return fmt.Errorf("serialize plan: %w", err)
	}
	//nolint:gosec // G306: plan files are meant to be user-readable
	if err := os.WriteFile(s.planPath(), content, filePerm); err != nil {
		return fmt.Errorf("write plan: %w", err)
	}

	s.logger.Debug().Str("path", s.planPath()).Int("tasks", len(p.Tasks)).Msg("saved plan")
	return nil
}

// Edit loads the plan, applies edit, reschedules every task and saves.
// Nothing is written when edit or scheduling fails.
func (s *Store) Edit(edit func(p *Plan) error) (*Plan, error) {
	p, err := s.Load()
	if err != nil {
		return nil, err
	}
	if err = edit(p); err != nil {
		return nil, err
	}

	scheduled, err := schedule.All(p.Tasks)
	if err != nil {
		s.logger.Debug().Err(err).Msg("reschedule failed; plan left unchanged")
		return nil, err
	}
	p.Tasks = scheduled

	if err = s.Save(p); err != nil {
		return nil, err
	}
	return p, nil
}
