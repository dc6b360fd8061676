package nvim

import (
	"context"
	"os"
	"path/filepath"
	"testing"
)

func TestWaitReadyReturnsOnceSocketExists(t *testing.T) {
	sock := filepath.Join(t.TempDir(), "nvim.sock")
	if err := os.WriteFile(sock, nil, 0o600); err != nil {
		t.Fatal(err)
	}

	c := NewClient(sock, nil)
	if err := c.WaitReady(context.Background()); err != nil {
		t.Fatalf("WaitReady: %v", err)
	}

	// WaitReady never spawned a process, so Stop only cleans the socket.
	if err := c.Stop(); err != nil {
		t.Fatalf("Stop: %v", err)
	}
}

func TestWaitReadyHonorsCancellation(t *testing.T) {
	c := NewClient(filepath.Join(t.TempDir(), "nvim.sock"), nil)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	if err := c.WaitReady(ctx); err == nil {
		t.Fatal("WaitReady succeeded with no socket and a cancelled context")
	}
}
