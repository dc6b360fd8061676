package sampler

import (
	"context"

	"github.com/vimdojo/vimdojo/internal/editor"
)

// StateReader is the part of the editor client a sampler needs.
type StateReader interface {
	State(ctx context.Context) (editor.State, error)
}

// RPC samples the full editor state over the editor's RPC socket. Unlike
// the file sampler it sees buffer contents and registers, so text and
// register goals can be tracked.
type RPC struct {
	client StateReader
}

// NewRPC returns a sampler backed by the given client.
func NewRPC(client StateReader) *RPC {
	return &RPC{client: client}
}

// Sample implements monitor.Sampler.
func (r *RPC) Sample(ctx context.Context) (editor.State, error) {
	return r.client.State(ctx)
}
