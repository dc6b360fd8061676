// Package sampler provides editor snapshot sources for the monitoring
// loop: a status-file poller and a full-fidelity RPC sampler.
package sampler

import (
	"context"
	"fmt"
	"strconv"
	"strings"

	"github.com/spf13/afero"

	"github.com/vimdojo/vimdojo/internal/editor"
)

// File samples editor state from a status file the editor rewrites on
// every cursor or mode change. The record format is one line:
//
//	LINE:<n>,COL:<n>,MODE:<m>,DETAILED:<m>[,OP:<op>]
//
// with 1-based line/column converted to 0-based. The optional OP field
// carries v:operator so operator-pending goals can match on payload.
type File struct {
	fs   afero.Fs
	path string
}

// NewFile creates a status-file sampler reading path on fs.
func NewFile(fs afero.Fs, path string) *File {
	return &File{fs: fs, path: path}
}

// Sample reads and parses the status file. A missing or malformed file is
// an error; the monitoring loop substitutes its last known snapshot.
func (f *File) Sample(context.Context) (editor.State, error) {
	content, err := afero.ReadFile(f.fs, f.path)
	if err != nil {
		return editor.State{}, fmt.Errorf("read status file: %w", err)
	}
	return ParseStatus(string(content))
}

// ParseStatus decodes one status record into a snapshot. The file sampler
// carries no buffer or register contents; those fields take defaults.
func ParseStatus(content string) (editor.State, error) {
	for _, line := range strings.Split(content, "\n") {
		if !strings.HasPrefix(line, "LINE:") {
			continue
		}

		lineNum, colNum := 1, 1
		mode, detailed, operator := "n", "n", ""

		for _, part := range strings.Split(strings.TrimRight(line, "\r"), ",") {
			switch {
			case strings.HasPrefix(part, "LINE:"):
				lineNum = parseOr(strings.TrimPrefix(part, "LINE:"), 1)
			case strings.HasPrefix(part, "COL:"):
				colNum = parseOr(strings.TrimPrefix(part, "COL:"), 1)
			case strings.HasPrefix(part, "MODE:"):
				mode = strings.TrimPrefix(part, "MODE:")
			case strings.HasPrefix(part, "DETAILED:"):
				detailed = strings.TrimPrefix(part, "DETAILED:")
			case strings.HasPrefix(part, "OP:"):
				operator = strings.TrimPrefix(part, "OP:")
			}
		}

		st := editor.DefaultState()
		st.Mode = editor.ParseMode(mode, detailed, operator)
		st.CursorLine = zeroBased(lineNum)
		st.CursorCol = zeroBased(colNum)
		st.PendingOperator = operator
		return st, nil
	}

	return editor.State{}, fmt.Errorf("no status record in %q", strings.TrimSpace(content))
}

func parseOr(s string, fallback int) int {
	n, err := strconv.Atoi(s)
	if err != nil {
		return fallback
	}
	return n
}

// zeroBased converts the editor's 1-based coordinate, saturating at 0.
func zeroBased(n int) int {
	if n <= 1 {
		return 0
	}
	return n - 1
}
