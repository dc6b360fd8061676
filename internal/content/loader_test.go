package content

import (
	"strings"
	"testing"

	"github.com/spf13/afero"

	"github.com/vimdojo/vimdojo/internal/exercise"
	"github.com/vimdojo/vimdojo/internal/goal"
)

const validChapter = `chapter:
  number: 2
  title: "Operators"
  description: "Delete, yank, change."

exercises:
  - title: "First cut"
    description: "Move then delete."
    sample_code:
      - "one"
      - "two"
    cursor_start: [2, 1]
    goals:
      - kind: position
        target: [1, 0]
        description: "Go to line 2"
      - kind: mode
        target: operator_d
        description: "Start a delete"

  - title: "Side quests"
    flow: any_order
    sample_code:
      - "alpha"
    goals:
      - kind: register
        target:
          register: a
          expected: "alpha"
      - kind: buffer_change
`

func writeChapter(t *testing.T, fs afero.Fs, name, body string) {
	t.Helper()
	if err := afero.WriteFile(fs, "/content/"+name, []byte(body), 0o644); err != nil {
		t.Fatal(err)
	}
}

func TestLoadAll(t *testing.T) {
	fs := afero.NewMemMapFs()
	writeChapter(t, fs, "chapter_02.yaml", validChapter)
	writeChapter(t, fs, "chapter_01.yaml", strings.Replace(validChapter, "number: 2", "number: 1", 1))
	writeChapter(t, fs, "notes.txt", "ignore me")

	chapters, err := NewLoader(fs, "/content").LoadAll()
	if err != nil {
		t.Fatalf("LoadAll: %v", err)
	}
	if len(chapters) != 2 {
		t.Fatalf("got %d chapters, want 2", len(chapters))
	}
	if chapters[0].Number != 1 || chapters[1].Number != 2 {
		t.Errorf("chapters not sorted: %d, %d", chapters[0].Number, chapters[1].Number)
	}

	ch := chapters[1]
	if ch.Title != "Operators" {
		t.Errorf("title = %q", ch.Title)
	}
	if len(ch.Exercises) != 2 {
		t.Fatalf("got %d exercises, want 2", len(ch.Exercises))
	}

	first := ch.Exercises[0]
	if first.Flow != exercise.Sequential {
		t.Errorf("default flow = %v, want sequential", first.Flow)
	}
	if first.CursorStartLine != 2 || first.CursorStartCol != 1 {
		t.Errorf("cursor start = %d,%d", first.CursorStartLine, first.CursorStartCol)
	}
	if len(first.Goals) != 2 {
		t.Fatalf("got %d goals", len(first.Goals))
	}
	if pos, ok := first.Goals[0].Target.(goal.Position); !ok || pos.Line != 1 || pos.Col != 0 {
		t.Errorf("goal 0 target = %#v", first.Goals[0].Target)
	}
	if mode, ok := first.Goals[1].Target.(goal.ModeIs); !ok || mode.Mode.Operator != "d" {
		t.Errorf("goal 1 target = %#v", first.Goals[1].Target)
	}

	second := ch.Exercises[1]
	if second.Flow != exercise.AnyOrder {
		t.Errorf("flow = %v, want any_order", second.Flow)
	}
	if second.CursorStartLine != 1 || second.CursorStartCol != 1 {
		t.Errorf("cursor default = %d,%d, want 1,1", second.CursorStartLine, second.CursorStartCol)
	}
}

func TestLoadAllFailsOnBadGoalKind(t *testing.T) {
	fs := afero.NewMemMapFs()
	bad := strings.Replace(validChapter, "kind: position", "kind: teleport", 1)
	writeChapter(t, fs, "chapter_01.yaml", bad)

	_, err := NewLoader(fs, "/content").LoadAll()
	if err == nil {
		t.Fatal("expected error for unknown goal kind")
	}
	if !strings.Contains(err.Error(), "teleport") {
		t.Errorf("error does not name the kind: %v", err)
	}
}

func TestValidateChapterRejectsMissingGoals(t *testing.T) {
	raw := []byte(`chapter:
  number: 1
  title: "Empty"
exercises:
  - title: "No goals here"
`)
	if err := ValidateChapter(raw); err == nil {
		t.Fatal("expected schema error for exercise without goals")
	}
}

func TestValidateChapterRejectsBadFlow(t *testing.T) {
	raw := []byte(strings.Replace(validChapter, "flow: any_order", "flow: backwards", 1))
	if err := ValidateChapter(raw); err == nil {
		t.Fatal("expected schema error for unknown flow")
	}
}

func TestParseChapterRejectsNotYAML(t *testing.T) {
	if _, err := ParseChapter([]byte("\t{nope")); err == nil {
		t.Fatal("expected parse error")
	}
}

func TestScaffoldWritesLoadableChapter(t *testing.T) {
	fs := afero.NewMemMapFs()

	path, err := Scaffold(fs, "/data/content")
	if err != nil {
		t.Fatalf("Scaffold: %v", err)
	}
	if path != "/data/content/chapter_01.yaml" {
		t.Errorf("path = %q", path)
	}

	chapters, err := NewLoader(fs, "/data/content").LoadAll()
	if err != nil {
		t.Fatalf("starter chapter does not load: %v", err)
	}
	if len(chapters) != 1 || len(chapters[0].Exercises) != 5 {
		t.Fatalf("unexpected starter shape: %d chapters", len(chapters))
	}

	if _, err := Scaffold(fs, "/data/content"); err == nil {
		t.Fatal("expected refusal to overwrite existing chapter")
	}
}
