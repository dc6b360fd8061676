package sampler

import (
	"context"
	"errors"
	"testing"

	"github.com/vimdojo/vimdojo/internal/editor"
)

type fakeReader struct {
	st  editor.State
	err error
}

func (f *fakeReader) State(ctx context.Context) (editor.State, error) {
	return f.st, f.err
}

func TestRPCSampleForwardsState(t *testing.T) {
	want := editor.State{
		Mode:        editor.Insert,
		CursorLine:  2,
		CursorCol:   7,
		BufferLines: []string{"hello", "world"},
		Registers:   map[string]string{"a": "yanked"},
	}
	s := NewRPC(&fakeReader{st: want})

	got, err := s.Sample(context.Background())
	if err != nil {
		t.Fatalf("Sample: %v", err)
	}
	if got.Mode != want.Mode || got.CursorLine != want.CursorLine || got.CursorCol != want.CursorCol {
		t.Errorf("got %+v, want %+v", got, want)
	}
	if got.Registers["a"] != "yanked" {
		t.Errorf("register a = %q", got.Registers["a"])
	}
}

func TestRPCSamplePropagatesError(t *testing.T) {
	wantErr := errors.New("socket gone")
	s := NewRPC(&fakeReader{err: wantErr})

	if _, err := s.Sample(context.Background()); !errors.Is(err, wantErr) {
		t.Errorf("err = %v, want %v", err, wantErr)
	}
}
