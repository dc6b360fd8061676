package display

import (
	"strconv"

	"github.com/spf13/afero"
	"go.uber.org/zap"

	"github.com/vimdojo/vimdojo/internal/exercise"
	"github.com/vimdojo/vimdojo/internal/goal"
)

// ProgressFile mirrors progress into a flag file: the 1-based index of
// the goal now being worked on, or "completed" once the exercise is done.
// Writes are best effort; a failed write must not stall training.
type ProgressFile struct {
	fs   afero.Fs
	path string
	log  *zap.Logger
}

// NewProgressFile returns a sink writing to path on fs.
func NewProgressFile(fs afero.Fs, path string, log *zap.Logger) *ProgressFile {
	if log == nil {
		log = zap.NewNop()
	}
	return &ProgressFile{fs: fs, path: path, log: log}
}

func (p *ProgressFile) GoalAdvanced(next int, _ goal.Goal, _, _ int) {
	p.write(strconv.Itoa(next))
}

func (p *ProgressFile) Completed(_ *exercise.Exercise) {
	p.write("completed")
}

func (p *ProgressFile) Hint(string) {}

func (p *ProgressFile) write(content string) {
	if err := afero.WriteFile(p.fs, p.path, []byte(content+"\n"), 0o644); err != nil {
		p.log.Warn("write progress file", zap.String("path", p.path), zap.Error(err))
	}
}
