package shell

import (
	"context"
	"fmt"
	"strings"
	"sync"
	"time"

	"github.com/brettbedarf/webcli"
	"github.com/brettbedarf/webcli/config"
	"github.com/brettbedarf/webcli/filesystem"
	"github.com/brettbedarf/webcli/internal/util"
	"github.com/google/uuid"
	"github.com/rs/zerolog"
)

// Record is one executed command as shown in the transcript
type Record struct {
	ID        uuid.UUID     `json:"id"`
	Command   string        `json:"command"`
	Output    string        `json:"output"`
	IsError   bool          `json:"isError"`
	Timestamp time.Time     `json:"timestamp"`
	Elapsed   time.Duration `json:"elapsed"`
}

// Session is one interactive shell over a file tree. All methods are safe for
// concurrent use; commands run one at a time.
type Session struct {
	ID uuid.UUID

	mu         sync.Mutex
	cfg        *config.Config
	fs         *filesystem.FileSystem
	clock      webcli.Clock
	observer   webcli.CommandObserver
	logger     zerolog.Logger
	cwd        filesystem.NodeID
	path       string
	prevPath   string
	history    []string
	theme      Theme
	transcript []*Record
	created    time.Time
}

// Option configures a Session
type Option func(*Session)

// WithClock sets the time source used for records, date and uptime
func WithClock(c webcli.Clock) Option {
	return func(s *Session) { s.clock = c }
}

// WithObserver reports every executed command to o
func WithObserver(o webcli.CommandObserver) Option {
	return func(s *Session) { s.observer = o }
}

// NewSession starts a shell over fsys in cfg.Home, or in root when the home
// directory does not exist
func NewSession(cfg *config.Config, fsys *filesystem.FileSystem, opts ...Option) *Session {
	s := &Session{
		ID:    uuid.New(),
		cfg:   cfg,
		fs:    fsys,
		clock: webcli.SystemClock{},
		cwd:   filesystem.RootID,
		path:  "/",
	}
	for _, opt := range opts {
		opt(s)
	}
	s.logger = util.GetLogger("Shell").With().Str("session", s.ID.String()).Logger()
	s.created = s.clock.Now()

	if theme, valid := ParseTheme(cfg.Theme); valid {
		s.theme = theme
	} else {
		s.logger.Warn().Str("theme", cfg.Theme).Msg("Unknown theme, using default")
	}
	if home, err := fsys.Chdir(filesystem.RootID, cfg.Home); err == nil {
		s.cwd = home.NodeID()
		s.path = fsys.Path(s.cwd)
	} else {
		s.logger.Warn().Err(err).Str("home", cfg.Home).Msg("Home directory unavailable, starting in /")
	}

	s.logger.Info().Str("cwd", s.path).Str("user", cfg.User).Msg("Session started")
	return s
}

// Seeder populates a fresh file tree
type Seeder interface {
	Apply(ctx context.Context, fsys *filesystem.FileSystem) error
}

// Open builds a new tree, applies seed to it and starts a session over it.
// A nil seed starts with an empty root.
func Open(ctx context.Context, cfg *config.Config, seed Seeder, opts ...Option) (*Session, error) {
	probe := &Session{clock: webcli.SystemClock{}}
	for _, opt := range opts {
		opt(probe)
	}
	fsys := filesystem.NewFS(cfg, probe.clock)
	if seed != nil {
		if err := seed.Apply(ctx, fsys); err != nil {
			return nil, fmt.Errorf("failed to seed session tree: %w", err)
		}
	}
	return NewSession(cfg, fsys, opts...), nil
}

// Execute runs one input line. Blank input is ignored and clear empties the
// transcript; both return nil. Every other line yields the appended Record.
func (s *Session) Execute(input string) *Record {
	s.mu.Lock()
	defer s.mu.Unlock()

	line := strings.TrimSpace(input)
	if line == "" {
		return nil
	}
	start := s.clock.Now()
	s.history = append(s.history, line)

	inv, err := Parse(line)
	if err != nil {
		return s.record(line, "parse", fail("%s", err.Error()), start)
	}
	cmd, known := LookupCommand(inv.Name)
	if !known {
		return s.record(line, "unknown", notFound(inv.Name), start)
	}
	if cmd == CmdClear {
		s.transcript = nil
		s.observe(cmd.String(), false, start)
		s.logger.Debug().Msg("Transcript cleared")
		return nil
	}

	res := handlers[cmd](s, inv)
	if inv.Redirect != nil && !res.isError {
		res = s.redirect(inv.Redirect, res)
	}
	return s.record(line, cmd.String(), res, start)
}

func (s *Session) record(line, label string, res result, start time.Time) *Record {
	now := s.clock.Now()
	rec := &Record{
		ID:        uuid.New(),
		Command:   line,
		Output:    res.output,
		IsError:   res.isError,
		Timestamp: now,
		Elapsed:   now.Sub(start),
	}
	s.transcript = append(s.transcript, rec)
	s.observe(label, res.isError, start)

	s.logger.Debug().
		Str("command", line).
		Bool("error", res.isError).
		Dur("elapsed", rec.Elapsed).
		Msg("Executed")
	out := *rec
	return &out
}

func (s *Session) observe(label string, isError bool, start time.Time) {
	if s.observer != nil {
		s.observer.ObserveCommand(label, isError, s.clock.Now().Sub(start))
	}
}

// redirect writes a successful command's output to a file
func (s *Session) redirect(r *Redirect, res result) result {
	content := res.output
	if content != "" {
		content += "\n"
	}
	if _, err := s.fs.Write(s.cwd, s.expand(r.Path), []byte(content), r.Append); err != nil {
		return fail("bash: %s: %s", r.Path, reason(err))
	}
	return ok("")
}

// expand replaces a leading "~" with the home directory
func (s *Session) expand(p string) string {
	if p == "~" {
		return s.cfg.Home
	}
	if strings.HasPrefix(p, "~/") {
		return s.cfg.Home + p[1:]
	}
	return p
}

// Path returns the canonical path of the current directory
func (s *Session) Path() string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.path
}

// Theme returns the active theme
func (s *Session) Theme() Theme {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.theme
}

// History returns a copy of every non-blank input line in order
func (s *Session) History() []string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return append([]string(nil), s.history...)
}

// Transcript returns a copy of the records since the last clear
func (s *Session) Transcript() []Record {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([]Record, len(s.transcript))
	for i, rec := range s.transcript {
		out[i] = *rec
	}
	return out
}

// Prompt renders the shell prompt, abbreviating the home directory to "~"
func (s *Session) Prompt() string {
	s.mu.Lock()
	defer s.mu.Unlock()
	p := s.path
	switch {
	case p == s.cfg.Home:
		p = "~"
	case strings.HasPrefix(p, s.cfg.Home+"/"):
		p = "~" + strings.TrimPrefix(p, s.cfg.Home)
	}
	return s.cfg.User + "@" + s.cfg.Hostname + ":" + p + "$ "
}

// Created returns when the session started
func (s *Session) Created() time.Time {
	return s.created
}

// View runs fn with exclusive access to the session's file tree
func (s *Session) View(fn func(fsys *filesystem.FileSystem)) {
	s.mu.Lock()
	defer s.mu.Unlock()
	fn(s.fs)
}
