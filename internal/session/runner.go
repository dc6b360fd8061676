// Package session orchestrates one training run: it prepares the sample
// buffer, starts the editor, wires sampler and display to the monitoring
// loop, and records the outcome.
package session

import (
	"context"
	"fmt"
	"path/filepath"
	"strings"
	"time"

	"github.com/spf13/afero"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"github.com/vimdojo/vimdojo/internal/content"
	"github.com/vimdojo/vimdojo/internal/display"
	"github.com/vimdojo/vimdojo/internal/exercise"
	"github.com/vimdojo/vimdojo/internal/goal"
	"github.com/vimdojo/vimdojo/internal/monitor"
	"github.com/vimdojo/vimdojo/internal/nvim"
	"github.com/vimdojo/vimdojo/internal/sampler"
	"github.com/vimdojo/vimdojo/internal/store"
)

// Options configures one run.
type Options struct {
	Chapter  int
	Exercise content.Exercise

	// Interval overrides the polling interval when positive.
	Interval time.Duration
	// StuckAfter overrides the hint delay when positive.
	StuckAfter time.Duration

	// UseRPC samples over the editor RPC socket instead of the status
	// file. Required for text and register goals.
	UseRPC bool
	// NoTmux skips the split-pane display and runs the editor headless.
	// Implies RPC sampling.
	NoTmux bool

	// WorkDir overrides the temp directory, mainly for tests.
	WorkDir string
}

// Runner runs exercises. Store and Coach are optional.
type Runner struct {
	fs    afero.Fs
	store *store.Store
	coach monitor.Advisor
	log   *zap.Logger
}

// NewRunner creates a runner. fs must be the OS filesystem for real runs
// since the editor reads the sample file from disk.
func NewRunner(fs afero.Fs, st *store.Store, coach monitor.Advisor, log *zap.Logger) *Runner {
	if log == nil {
		log = zap.NewNop()
	}
	return &Runner{fs: fs, store: st, coach: coach, log: log}
}

// Run trains one exercise and returns the monitoring result.
func (r *Runner) Run(ctx context.Context, opts Options) (monitor.Result, error) {
	ex := opts.Exercise

	dir := opts.WorkDir
	if dir == "" {
		var err error
		dir, err = afero.TempDir(r.fs, "", "vimdojo")
		if err != nil {
			return monitor.Failed("workspace"), fmt.Errorf("create workdir: %w", err)
		}
		defer r.fs.RemoveAll(dir)
	}

	samplePath := filepath.Join(dir, "sample.txt")
	statusPath := filepath.Join(dir, "status.txt")
	scriptPath := filepath.Join(dir, "setup.vim")

	if err := r.writeSample(samplePath, ex.SampleLines); err != nil {
		return monitor.Failed("workspace"), err
	}
	script := nvim.StatusScript(statusPath, ex.CursorStartLine, ex.CursorStartCol)
	if err := afero.WriteFile(r.fs, scriptPath, []byte(script), 0o644); err != nil {
		return monitor.Failed("workspace"), fmt.Errorf("write editor script: %w", err)
	}

	// Status-file sampling cannot observe buffer text or registers, so
	// exercises with those goals always sample over RPC.
	useRPC := opts.UseRPC || opts.NoTmux || needsRPC(&ex.Exercise)
	socketPath := filepath.Join(dir, "nvim.sock")

	// The learner's pane owns the only editor instance. It must be up
	// before RPC sampling can attach to its socket.
	var tmux *display.Tmux
	if !opts.NoTmux && display.Available() {
		tmux = display.NewTmux(r.log)
		if err := tmux.Setup(&ex.Exercise, editorCommand(scriptPath, samplePath, socketPath, useRPC)); err != nil {
			return monitor.Failed("tmux"), err
		}
		defer tmux.Kill()
	}

	var samp monitor.Sampler
	if useRPC {
		client := nvim.NewClient(socketPath, r.log)
		if tmux != nil {
			if err := client.WaitReady(ctx); err != nil {
				return monitor.Failed("editor start"), err
			}
		} else {
			if err := client.Start(ctx, samplePath, scriptPath); err != nil {
				return monitor.Failed("editor start"), err
			}
			defer client.Stop()
		}
		samp = sampler.NewRPC(client)
	} else {
		samp = sampler.NewFile(r.fs, statusPath)
	}

	sinks := display.Multi{display.NewProgressFile(r.fs, filepath.Join(dir, "progress.txt"), r.log)}
	if tmux != nil {
		sinks = append(sinks, tmux)
	}

	var sessionID string
	var began time.Time
	if r.store != nil {
		var err error
		sessionID, err = r.store.BeginSession(ctx, opts.Chapter, ex.Title, ex.Flow.String(), len(ex.Goals))
		if err != nil {
			r.log.Warn("begin session", zap.Error(err))
		}
		began = time.Now()
		if sessionID != "" {
			sinks = append(sinks, newStoreSink(r.store, sessionID, began, r.log))
		}
	}

	cfg := monitor.DefaultConfig()
	if opts.Interval > 0 {
		cfg.Interval = opts.Interval
	}
	if opts.StuckAfter > 0 {
		cfg.StuckAfter = opts.StuckAfter
	}

	loop := monitor.New(&ex.Exercise, samp, sinks, cfg, r.log)
	loop.Coach = r.coach

	runCtx, cancel := context.WithCancel(ctx)
	defer cancel()

	var result monitor.Result
	g, gCtx := errgroup.WithContext(runCtx)
	g.Go(func() error {
		result = loop.Run(gCtx)
		cancel()
		return nil
	})
	if tmux != nil {
		g.Go(func() error {
			// The attach blocks until the learner detaches or the
			// session is killed. Either way the run is over.
			if err := tmux.Attach(); err != nil {
				r.log.Debug("tmux attach ended", zap.Error(err))
			}
			cancel()
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return monitor.Failed(err.Error()), err
	}

	if r.store != nil && sessionID != "" {
		completed := countProgress(loop)
		if err := r.store.FinishSession(ctx, sessionID, result.Outcome.String(), completed, time.Since(began)); err != nil {
			r.log.Warn("finish session", zap.Error(err))
		}
	}

	return result, nil
}

func (r *Runner) writeSample(path string, lines []string) error {
	body := strings.Join(lines, "\n")
	if body == "" {
		body = "\n"
	} else if !strings.HasSuffix(body, "\n") {
		body += "\n"
	}
	if err := afero.WriteFile(r.fs, path, []byte(body), 0o644); err != nil {
		return fmt.Errorf("write sample file: %w", err)
	}
	return nil
}

// editorCommand builds the command the learner's pane runs. With RPC
// sampling the pane instance listens on the socket the sampler polls, so
// a single editor serves both the learner and the monitoring loop.
func editorCommand(scriptPath, samplePath, socket string, useRPC bool) string {
	if useRPC {
		return fmt.Sprintf("nvim --listen %s -S %s %s", socket, scriptPath, samplePath)
	}
	return fmt.Sprintf("nvim -S %s %s", scriptPath, samplePath)
}

// needsRPC reports whether any goal inspects buffer text or registers,
// which the status file does not carry.
func needsRPC(ex *exercise.Exercise) bool {
	for _, g := range ex.Goals {
		switch g.Target.(type) {
		case goal.TextAt, goal.RegisterEquals:
			return true
		}
	}
	return false
}

func countProgress(loop *monitor.Loop) int {
	n := 0
	for _, done := range loop.Completed() {
		if done {
			n++
		}
	}
	return n
}
