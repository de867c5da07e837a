package shell

import (
	"context"
	"fmt"
	"sync"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/brettbedarf/webcli/adapters"
	"github.com/brettbedarf/webcli/config"
	"github.com/brettbedarf/webcli/filesystem"
	"github.com/brettbedarf/webcli/internal/mocks"
	"github.com/brettbedarf/webcli/requests"
)

var testNow = time.Date(2024, time.March, 5, 9, 30, 0, 0, time.UTC)

// newTestSession starts a session over the default seed with a frozen clock
func newTestSession(t *testing.T, opts ...Option) *Session {
	t.Helper()

	clock := &mocks.MockClock{}
	clock.On("Now").Return(testNow)

	cfg := config.NewDefaultConfig()
	fsys := filesystem.NewFS(cfg, clock)
	seed, err := requests.DefaultSeed(adapters.NewBuiltinRegistry())
	require.NoError(t, err)
	require.NoError(t, seed.Apply(context.Background(), fsys))

	return NewSession(cfg, fsys, append([]Option{WithClock(clock)}, opts...)...)
}

// run executes line and requires a record back
func run(t *testing.T, s *Session, line string) *Record {
	t.Helper()
	rec := s.Execute(line)
	require.NotNil(t, rec, line)
	return rec
}

// runOK executes line, requires success and returns the output
func runOK(t *testing.T, s *Session, line string) string {
	t.Helper()
	rec := run(t, s, line)
	require.False(t, rec.IsError, "%s: %s", line, rec.Output)
	return rec.Output
}

func TestNewSession_StartsInHome(t *testing.T) {
	t.Parallel()
	s := newTestSession(t)

	assert.Equal(t, "/home/user", s.Path())
	assert.Equal(t, ThemeMatrix, s.Theme())
	assert.Equal(t, "user@webcli:~$ ", s.Prompt())
	assert.True(t, s.Created().Equal(testNow))
	assert.Empty(t, s.History())
	assert.Empty(t, s.Transcript())
}

func TestNewSession_MissingHomeFallsBackToRoot(t *testing.T) {
	t.Parallel()

	cfg := config.NewDefaultConfig()
	cfg.Home = "/nowhere"
	cfg.Theme = "neon"
	s := NewSession(cfg, filesystem.NewFS(cfg, nil))

	assert.Equal(t, "/", s.Path())
	assert.Equal(t, ThemeMatrix, s.Theme())
}

func TestPrompt_AbbreviatesHome(t *testing.T) {
	t.Parallel()
	s := newTestSession(t)

	runOK(t, s, "cd Projects")
	assert.Equal(t, "user@webcli:~/Projects$ ", s.Prompt())
	runOK(t, s, "cd /tmp")
	assert.Equal(t, "user@webcli:/tmp$ ", s.Prompt())
}

func TestExecute_BlankInputIsIgnored(t *testing.T) {
	t.Parallel()
	s := newTestSession(t)

	assert.Nil(t, s.Execute(""))
	assert.Nil(t, s.Execute(" \t "))
	assert.Empty(t, s.History())
	assert.Empty(t, s.Transcript())
}

func TestExecute_RecordsTranscript(t *testing.T) {
	t.Parallel()
	s := newTestSession(t)

	rec := run(t, s, "  pwd  ")
	assert.Equal(t, "pwd", rec.Command)
	assert.Equal(t, "/home/user", rec.Output)
	assert.False(t, rec.IsError)
	assert.True(t, rec.Timestamp.Equal(testNow))
	assert.Zero(t, rec.Elapsed)
	assert.NotEqual(t, uuid.Nil, rec.ID)

	rec.Output = "mutated"
	transcript := s.Transcript()
	require.Len(t, transcript, 1)
	assert.Equal(t, "/home/user", transcript[0].Output, "returned records are copies")
}

func TestExecute_ClearEmptiesTranscript(t *testing.T) {
	t.Parallel()
	s := newTestSession(t)

	runOK(t, s, "ls")
	runOK(t, s, "pwd")
	require.Len(t, s.Transcript(), 2)

	assert.Nil(t, s.Execute("clear"))
	assert.Empty(t, s.Transcript())
	assert.Equal(t, []string{"ls", "pwd", "clear"}, s.History())
}

func TestExecute_UnknownCommand(t *testing.T) {
	t.Parallel()

	tests := []struct {
		input string
		want  string
	}{
		{"foo", "bash: foo: command not found\n\nDid you mean one of these?\nfind, neofetch, df, free"},
		{"exx", "bash: exx: command not found\n\nDid you mean one of these?\nclear, help, date, echo, grep"},
		{"zzz", "bash: zzz: command not found"},
		{`""`, "bash: : command not found"},
	}
	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			t.Parallel()
			s := newTestSession(t)
			rec := run(t, s, tt.input)
			assert.True(t, rec.IsError)
			assert.Equal(t, tt.want, rec.Output)
		})
	}
}

func TestExecute_SyntaxError(t *testing.T) {
	t.Parallel()
	s := newTestSession(t)

	rec := run(t, s, "echo hi >")
	assert.True(t, rec.IsError)
	assert.Equal(t, ErrMissingRedirectTarget.Error(), rec.Output)
}

func TestExecute_NotifiesObserver(t *testing.T) {
	t.Parallel()

	observer := &mocks.MockCommandObserver{}
	observer.On("ObserveCommand", "pwd", false, time.Duration(0)).Once()
	observer.On("ObserveCommand", "cat", true, time.Duration(0)).Once()
	observer.On("ObserveCommand", "unknown", true, time.Duration(0)).Once()
	observer.On("ObserveCommand", "clear", false, time.Duration(0)).Once()

	s := newTestSession(t, WithObserver(observer))
	s.Execute("pwd")
	s.Execute("cat missing")
	s.Execute("bogus")
	s.Execute("clear")

	observer.AssertExpectations(t)
	observer.AssertNumberOfCalls(t, "ObserveCommand", 4)
}

func TestHistory(t *testing.T) {
	t.Parallel()
	s := newTestSession(t)

	runOK(t, s, "pwd")
	run(t, s, "nope")
	out := runOK(t, s, "history")

	assert.Equal(t, "1  pwd\n2  nope\n3  history", out)
	assert.Equal(t, []string{"pwd", "nope", "history"}, s.History())
}

func TestRedirect(t *testing.T) {
	t.Parallel()
	s := newTestSession(t)

	assert.Empty(t, runOK(t, s, "echo hello > h.txt"))
	assert.Equal(t, "hello", runOK(t, s, "cat h.txt"))

	runOK(t, s, "echo again >> h.txt")
	assert.Equal(t, "hello\nagain", runOK(t, s, "cat h.txt"))

	runOK(t, s, "echo replaced >h.txt")
	assert.Equal(t, "replaced", runOK(t, s, "cat h.txt"))

	runOK(t, s, "pwd > ~/Documents/where.txt")
	assert.Equal(t, "/home/user", runOK(t, s, "cat Documents/where.txt"))
}

func TestRedirect_Failures(t *testing.T) {
	t.Parallel()
	s := newTestSession(t)

	rec := run(t, s, "echo x > Documents")
	assert.True(t, rec.IsError)
	assert.Equal(t, "bash: Documents: Is a directory", rec.Output)

	rec = run(t, s, "echo x > nowhere/file")
	assert.True(t, rec.IsError)
	assert.Equal(t, "bash: nowhere/file: No such file or directory", rec.Output)

	// failed commands never write
	rec = run(t, s, "cat missing > out.txt")
	assert.True(t, rec.IsError)
	assert.True(t, run(t, s, "cat out.txt").IsError)
}

func TestSession_ConcurrentExecute(t *testing.T) {
	t.Parallel()
	s := newTestSession(t)

	var wg sync.WaitGroup
	for i := range 50 {
		wg.Add(1)
		go func() {
			defer wg.Done()
			s.Execute(fmt.Sprintf("touch /tmp/f%02d", i))
		}()
	}
	wg.Wait()

	assert.Len(t, s.Transcript(), 50)
	assert.Len(t, s.History(), 50)
	s.View(func(fsys *filesystem.FileSystem) {
		tmp, err := fsys.Resolve("/tmp", filesystem.RootID)
		require.NoError(t, err)
		assert.Equal(t, 50, tmp.Len())
	})
}

func TestView_SeesCommittedState(t *testing.T) {
	t.Parallel()
	s := newTestSession(t)

	runOK(t, s, "mkdir built")
	var found bool
	s.View(func(fsys *filesystem.FileSystem) {
		_, err := fsys.Resolve("/home/user/built", filesystem.RootID)
		found = err == nil
	})
	assert.True(t, found)
}

type seedFunc func(ctx context.Context, fsys *filesystem.FileSystem) error

func (f seedFunc) Apply(ctx context.Context, fsys *filesystem.FileSystem) error { return f(ctx, fsys) }

func TestOpen(t *testing.T) {
	t.Parallel()
	cfg := config.NewDefaultConfig()

	t.Run("default seed", func(t *testing.T) {
		t.Parallel()
		seed, err := requests.DefaultSeed(adapters.NewBuiltinRegistry())
		require.NoError(t, err)

		s, err := Open(context.Background(), cfg, seed)
		require.NoError(t, err)
		assert.Equal(t, "/home/user", s.Path())
		assert.Contains(t, runOK(t, s, "ls"), "welcome.txt")
	})

	t.Run("nil seed starts in root", func(t *testing.T) {
		t.Parallel()
		s, err := Open(context.Background(), cfg, nil)
		require.NoError(t, err)
		assert.Equal(t, "/", s.Path())
		assert.Equal(t, "", runOK(t, s, "ls"))
	})

	t.Run("seed failure", func(t *testing.T) {
		t.Parallel()
		boom := fmt.Errorf("boom")
		_, err := Open(context.Background(), cfg, seedFunc(func(context.Context, *filesystem.FileSystem) error {
			return boom
		}))
		require.ErrorIs(t, err, boom)
	})

	t.Run("clock reaches the tree", func(t *testing.T) {
		t.Parallel()
		clock := &mocks.MockClock{}
		clock.On("Now").Return(testNow)

		s, err := Open(context.Background(), cfg, nil, WithClock(clock))
		require.NoError(t, err)
		runOK(t, s, "touch a.txt")
		assert.Contains(t, runOK(t, s, "ls -l"), "Mar 05 09:30 a.txt")
	})
}
