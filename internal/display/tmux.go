package display

import (
	"fmt"
	"os"
	"os/exec"
	"strings"

	"go.uber.org/zap"

	"github.com/vimdojo/vimdojo/internal/exercise"
	"github.com/vimdojo/vimdojo/internal/goal"
)

// SessionName is the tmux session training runs in.
const SessionName = "vimdojo"

// runTmux executes one tmux command. Swappable in tests.
type runTmux func(args ...string) ([]byte, error)

func execTmux(args ...string) ([]byte, error) {
	return exec.Command("tmux", args...).CombinedOutput()
}

// Tmux drives a split tmux session: the top pane shows the exercise and
// current goal, the bottom pane runs the editor. Pane updates are best
// effort; tmux hiccups never fail the training loop.
type Tmux struct {
	run     runTmux
	log     *zap.Logger
	topPane string
}

// NewTmux returns an unstarted tmux display.
func NewTmux(log *zap.Logger) *Tmux {
	if log == nil {
		log = zap.NewNop()
	}
	return &Tmux{run: execTmux, log: log}
}

// Available reports whether a tmux binary responds.
func Available() bool {
	return exec.Command("tmux", "-V").Run() == nil
}

// Setup creates the session, splits it, shows the exercise in the top
// pane, and launches editorCmd in the bottom pane.
func (t *Tmux) Setup(ex *exercise.Exercise, editorCmd string) error {
	_, _ = t.run("kill-session", "-t", SessionName)

	if out, err := t.run("new-session", "-d", "-s", SessionName); err != nil {
		return fmt.Errorf("create tmux session: %w: %s", err, strings.TrimSpace(string(out)))
	}
	if out, err := t.run("split-window", "-v", "-t", SessionName); err != nil {
		return fmt.Errorf("split tmux window: %w: %s", err, strings.TrimSpace(string(out)))
	}

	top, bottom, err := t.panes()
	if err != nil {
		return err
	}
	t.topPane = top

	t.showInstructions(ex, 0, "")

	editorCmd = editorCmd + "; tmux detach-client"
	if out, err := t.run("send-keys", "-t", bottom, editorCmd, "Enter"); err != nil {
		return fmt.Errorf("launch editor pane: %w: %s", err, strings.TrimSpace(string(out)))
	}
	_, _ = t.run("select-pane", "-t", bottom)

	return nil
}

// Attach replaces nothing: it attaches the calling terminal to the
// session and blocks until the client detaches.
func (t *Tmux) Attach() error {
	cmd := exec.Command("tmux", "attach-session", "-t", SessionName)
	cmd.Stdin = os.Stdin
	cmd.Stdout = os.Stdout
	cmd.Stderr = os.Stderr
	return cmd.Run()
}

// Kill tears the session down. Safe when the session is already gone.
func (t *Tmux) Kill() {
	if _, err := t.run("kill-session", "-t", SessionName); err != nil {
		t.log.Debug("kill tmux session", zap.Error(err))
	}
}

// GoalAdvanced implements Sink by re-rendering the instruction pane.
func (t *Tmux) GoalAdvanced(next int, g goal.Goal, completed, total int) {
	if t.topPane == "" {
		return
	}
	line := fmt.Sprintf("Goal %d/%d: %s", next, total, g.Description)
	t.redraw(line, g.Hint)
}

// Completed implements Sink.
func (t *Tmux) Completed(ex *exercise.Exercise) {
	if t.topPane == "" {
		return
	}
	t.redraw(fmt.Sprintf("Exercise complete: %s", ex.Title), "")
}

// Hint implements Sink.
func (t *Tmux) Hint(text string) {
	if t.topPane == "" || text == "" {
		return
	}
	cmd := fmt.Sprintf("echo 'Hint: %s'", shellQuote(text))
	if out, err := t.run("send-keys", "-t", t.topPane, cmd, "Enter"); err != nil {
		t.log.Debug("hint pane update", zap.Error(err), zap.ByteString("output", out))
	}
}

func (t *Tmux) showInstructions(ex *exercise.Exercise, goalIndex int, hint string) {
	if len(ex.Goals) == 0 {
		return
	}
	g := ex.Goals[goalIndex]
	headline := fmt.Sprintf("=== %s ===", ex.Title)
	body := fmt.Sprintf("Goal %d/%d: %s", goalIndex+1, len(ex.Goals), g.Description)
	cmd := fmt.Sprintf("clear; echo '%s'; echo '%s'; echo ''; echo '%s'",
		shellQuote(headline), shellQuote(ex.Description), shellQuote(body))
	if hint != "" {
		cmd += fmt.Sprintf("; echo 'Hint: %s'", shellQuote(hint))
	}
	if out, err := t.run("send-keys", "-t", t.topPane, cmd, "Enter"); err != nil {
		t.log.Debug("instruction pane update", zap.Error(err), zap.ByteString("output", out))
	}
}

func (t *Tmux) redraw(line, hint string) {
	// Interrupt whatever the pane shell is doing before redrawing.
	_, _ = t.run("send-keys", "-t", t.topPane, "C-c")

	cmd := fmt.Sprintf("clear; echo '%s'", shellQuote(line))
	if hint != "" {
		cmd += fmt.Sprintf("; echo 'Hint: %s'", shellQuote(hint))
	}
	if out, err := t.run("send-keys", "-t", t.topPane, cmd, "Enter"); err != nil {
		t.log.Debug("pane redraw", zap.Error(err), zap.ByteString("output", out))
	}
}

// panes lists the session panes and returns their ids, top then bottom.
func (t *Tmux) panes() (string, string, error) {
	out, err := t.run("list-panes", "-t", SessionName, "-F", "#{pane_index}:#{pane_id}")
	if err != nil {
		return "", "", fmt.Errorf("list tmux panes: %w", err)
	}

	var top, bottom string
	for _, line := range strings.Split(strings.TrimSpace(string(out)), "\n") {
		index, id, ok := strings.Cut(line, ":")
		if !ok {
			continue
		}
		switch index {
		case "0":
			top = id
		case "1":
			bottom = id
		}
	}
	if top == "" || bottom == "" {
		return "", "", fmt.Errorf("tmux session %s does not have two panes", SessionName)
	}
	return top, bottom, nil
}

func shellQuote(s string) string {
	return strings.ReplaceAll(s, "'", `'\''`)
}
