package content

import (
	"fmt"
	"os"
	"path/filepath"
	"regexp"
	"sort"

	"github.com/spf13/afero"
	"gopkg.in/yaml.v3"

	"github.com/vimdojo/vimdojo/internal/exercise"
	"github.com/vimdojo/vimdojo/internal/goal"
)

var chapterFilePattern = regexp.MustCompile(`^chapter_(\d+)\.ya?ml$`)

// Loader reads chapter files from a directory.
type Loader struct {
	fs  afero.Fs
	dir string
}

// NewLoader returns a loader over the given filesystem and directory.
func NewLoader(fs afero.Fs, dir string) *Loader {
	return &Loader{fs: fs, dir: dir}
}

// LoadAll reads every chapter_NN.yaml in the directory, validates and
// compiles each, and returns chapters sorted by number. It fails on the
// first bad file.
func (l *Loader) LoadAll() ([]Chapter, error) {
	entries, err := afero.ReadDir(l.fs, l.dir)
	if err != nil {
		return nil, fmt.Errorf("read content dir %s: %w", l.dir, err)
	}

	var chapters []Chapter
	for _, entry := range entries {
		if entry.IsDir() || !chapterFilePattern.MatchString(entry.Name()) {
			continue
		}
		ch, err := l.LoadFile(filepath.Join(l.dir, entry.Name()))
		if err != nil {
			return nil, fmt.Errorf("%s: %w", entry.Name(), err)
		}
		chapters = append(chapters, ch)
	}

	sort.Slice(chapters, func(i, j int) bool { return chapters[i].Number < chapters[j].Number })
	return chapters, nil
}

// LoadFile reads, validates, and compiles a single chapter file.
func (l *Loader) LoadFile(path string) (Chapter, error) {
	raw, err := afero.ReadFile(l.fs, path)
	if err != nil {
		return Chapter{}, fmt.Errorf("read chapter: %w", err)
	}
	return ParseChapter(raw)
}

// ParseChapter validates raw YAML against the chapter schema and compiles
// every exercise in it.
func ParseChapter(raw []byte) (Chapter, error) {
	if err := ValidateChapter(raw); err != nil {
		return Chapter{}, err
	}

	var file ChapterFile
	if err := yaml.Unmarshal(raw, &file); err != nil {
		return Chapter{}, fmt.Errorf("parse chapter: %w", err)
	}

	ch := Chapter{
		Number:      file.Chapter.Number,
		Title:       file.Chapter.Title,
		Description: file.Chapter.Description,
	}

	for i, def := range file.Exercises {
		ex, err := CompileExercise(def)
		if err != nil {
			return Chapter{}, fmt.Errorf("exercise %d (%s): %w", i+1, def.Title, err)
		}
		ch.Exercises = append(ch.Exercises, ex)
	}

	return ch, nil
}

// CompileExercise compiles one definition: goals through the goal
// compiler, flow through the policy parser, cursor start validated.
func CompileExercise(def ExerciseDef) (Exercise, error) {
	goals, err := goal.CompileAll(def.Goals)
	if err != nil {
		return Exercise{}, err
	}

	flow, err := exercise.ParseFlowPolicy(def.Flow)
	if err != nil {
		return Exercise{}, err
	}

	ex := Exercise{
		Exercise: exercise.Exercise{
			Title:       def.Title,
			Description: def.Description,
			SampleLines: def.SampleCode,
			Goals:       goals,
			Flow:        flow,
		},
		CursorStartLine: 1,
		CursorStartCol:  1,
	}
	if len(def.CursorStart) == 2 {
		if def.CursorStart[0] > 0 {
			ex.CursorStartLine = def.CursorStart[0]
		}
		if def.CursorStart[1] > 0 {
			ex.CursorStartCol = def.CursorStart[1]
		}
	}
	return ex, nil
}

// DefaultDir resolves the content directory: the VIMDOJO_CONTENT
// environment variable, then XDG_DATA_HOME, then ~/.local/share.
func DefaultDir() string {
	if dir := os.Getenv("VIMDOJO_CONTENT"); dir != "" {
		return dir
	}
	if xdg := os.Getenv("XDG_DATA_HOME"); xdg != "" {
		return filepath.Join(xdg, "vimdojo", "content")
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return filepath.Join(".", "content")
	}
	return filepath.Join(home, ".local", "share", "vimdojo", "content")
}
