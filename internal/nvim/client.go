// Package nvim wraps a headless Neovim instance: process lifetime, remote
// expression evaluation, and full snapshot extraction over its RPC socket.
package nvim

import (
	"context"
	"fmt"
	"os"
	"os/exec"
	"strconv"
	"strings"
	"time"

	"go.uber.org/zap"

	"github.com/vimdojo/vimdojo/internal/editor"
)

// watchedRegisters are the registers included in every snapshot: the
// unnamed register, yank/delete history slots, and a few named slots used
// by register exercises.
var watchedRegisters = []string{`"`, "0", "1", "a", "b", "c"}

// startupRetries bounds how long Start waits for the RPC socket to appear.
// attachRetries allows a longer window when the editor is launched by a
// shell in another pane rather than by this client.
const (
	startupRetries = 10
	attachRetries  = 100
)

// Client controls one Neovim instance listening on a socket.
type Client struct {
	socket string
	log    *zap.Logger
	proc   *exec.Cmd
}

// NewClient creates a client for the given socket path. The instance may
// be started by this client or already running.
func NewClient(socket string, log *zap.Logger) *Client {
	if log == nil {
		log = zap.NewNop()
	}
	return &Client{socket: socket, log: log}
}

// Start launches a headless instance editing filePath, optionally sourcing
// scriptPath, and waits for the RPC socket to appear.
func (c *Client) Start(ctx context.Context, filePath, scriptPath string) error {
	if _, err := os.Stat(c.socket); err == nil {
		if err := os.Remove(c.socket); err != nil {
			return fmt.Errorf("remove stale socket: %w", err)
		}
	}

	args := []string{"--headless", "--listen", c.socket}
	if scriptPath != "" {
		args = append(args, "-S", scriptPath)
	}
	args = append(args, filePath)

	cmd := exec.CommandContext(ctx, "nvim", args...)
	if err := cmd.Start(); err != nil {
		return fmt.Errorf("start nvim: %w", err)
	}
	c.proc = cmd

	if err := c.waitSocket(ctx, startupRetries); err != nil {
		return err
	}
	c.log.Debug("nvim started", zap.String("socket", c.socket), zap.Int("pid", cmd.Process.Pid))
	return nil
}

// WaitReady blocks until an instance launched elsewhere is listening on
// the socket. It never spawns a process; Stop is a no-op afterwards.
func (c *Client) WaitReady(ctx context.Context) error {
	if err := c.waitSocket(ctx, attachRetries); err != nil {
		return err
	}
	c.log.Debug("attached to nvim", zap.String("socket", c.socket))
	return nil
}

func (c *Client) waitSocket(ctx context.Context, retries int) error {
	for i := 0; i < retries; i++ {
		if _, err := os.Stat(c.socket); err == nil {
			return nil
		}
		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-time.After(100 * time.Millisecond):
		}
	}
	return fmt.Errorf("nvim did not create socket %s", c.socket)
}

// SendKeys feeds keystrokes to the instance.
func (c *Client) SendKeys(ctx context.Context, keys string) error {
	out, err := exec.CommandContext(ctx, "nvim", "--server", c.socket, "--remote-send", keys).CombinedOutput()
	if err != nil {
		return fmt.Errorf("send keys %q: %w: %s", keys, err, strings.TrimSpace(string(out)))
	}
	return nil
}

// Eval evaluates a vimscript expression and returns its trimmed output.
func (c *Client) Eval(ctx context.Context, expr string) (string, error) {
	out, err := exec.CommandContext(ctx, "nvim", "--server", c.socket, "--remote-expr", expr).Output()
	if err != nil {
		return "", fmt.Errorf("eval %q: %w", expr, err)
	}
	return strings.TrimSpace(string(out)), nil
}

// State extracts a full snapshot: mode, cursor, pending operator, buffer
// contents, and watched registers.
func (c *Client) State(ctx context.Context) (editor.State, error) {
	mode, err := c.Eval(ctx, "mode()")
	if err != nil {
		return editor.State{}, err
	}
	detailed, err := c.Eval(ctx, "mode(1)")
	if err != nil {
		return editor.State{}, err
	}

	line := c.evalInt(ctx, "line('.')", 1)
	col := c.evalInt(ctx, "col('.')", 1)

	operator, _ := c.Eval(ctx, "exists('v:operator') ? v:operator : ''")

	bufferJoined, err := c.Eval(ctx, `join(getline(1,'$'), "\n")`)
	if err != nil {
		return editor.State{}, err
	}

	registers := make(map[string]string)
	for _, reg := range watchedRegisters {
		content, err := c.Eval(ctx, "@"+reg)
		if err == nil && content != "" {
			registers[reg] = content
		}
	}

	return editor.State{
		Mode:            editor.ParseMode(mode, detailed, operator),
		CursorLine:      zeroBased(line),
		CursorCol:       zeroBased(col),
		PendingOperator: operator,
		BufferLines:     strings.Split(bufferJoined, "\n"),
		Registers:       registers,
	}, nil
}

// Stop terminates the instance if this client started it and removes the
// socket. Safe to call more than once.
func (c *Client) Stop() error {
	if c.proc != nil && c.proc.Process != nil {
		if err := c.proc.Process.Kill(); err != nil && !strings.Contains(err.Error(), "already finished") {
			c.log.Debug("kill nvim", zap.Error(err))
		}
		_ = c.proc.Wait()
		c.proc = nil
	}
	if _, err := os.Stat(c.socket); err == nil {
		return os.Remove(c.socket)
	}
	return nil
}

func (c *Client) evalInt(ctx context.Context, expr string, fallback int) int {
	s, err := c.Eval(ctx, expr)
	if err != nil {
		return fallback
	}
	n, err := strconv.Atoi(s)
	if err != nil {
		return fallback
	}
	return n
}

func zeroBased(n int) int {
	if n <= 1 {
		return 0
	}
	return n - 1
}
