package editor

import (
	"fmt"
	"strings"
)

// ModeKind enumerates the editor's modal states.
type ModeKind int

const (
	KindNormal ModeKind = iota
	KindInsert
	KindVisual
	KindVisualLine
	KindVisualBlock
	KindCommand
	KindOperatorPending
)

// Mode is an editor mode. Operator-pending mode carries the pending
// operator's identity, so comparing Modes with == includes the operator:
// OperatorPending("d") != OperatorPending("y") != Normal.
type Mode struct {
	Kind     ModeKind
	Operator string
}

var (
	Normal      = Mode{Kind: KindNormal}
	Insert      = Mode{Kind: KindInsert}
	Visual      = Mode{Kind: KindVisual}
	VisualLine  = Mode{Kind: KindVisualLine}
	VisualBlock = Mode{Kind: KindVisualBlock}
	Command     = Mode{Kind: KindCommand}
)

// OperatorPending returns the operator-pending mode for op (e.g. "d", "y").
func OperatorPending(op string) Mode {
	return Mode{Kind: KindOperatorPending, Operator: op}
}

// visualBlockChar is the Ctrl-V control character nvim reports for
// blockwise visual mode.
const visualBlockChar = "\x16"

// ParseMode maps nvim's mode() and mode(1) codes to a Mode. The detailed
// code distinguishes operator-pending ("no", "nov", ...) from plain normal
// mode; operator names the pending operator when known. Unrecognized codes
// fall back to Normal, matching how the editor itself degrades.
func ParseMode(mode, detailed, operator string) Mode {
	switch {
	case mode == "n" && strings.HasPrefix(detailed, "no"):
		return OperatorPending(operator)
	case mode == "n":
		return Normal
	case mode == "i":
		return Insert
	case mode == "v":
		return Visual
	case mode == "V":
		return VisualLine
	case strings.Contains(mode, visualBlockChar):
		return VisualBlock
	case mode == "c":
		return Command
	default:
		return Normal
	}
}

// String returns a human-readable mode name for display and logging.
func (m Mode) String() string {
	switch m.Kind {
	case KindNormal:
		return "normal"
	case KindInsert:
		return "insert"
	case KindVisual:
		return "visual"
	case KindVisualLine:
		return "visual-line"
	case KindVisualBlock:
		return "visual-block"
	case KindCommand:
		return "command"
	case KindOperatorPending:
		return fmt.Sprintf("operator-pending(%s)", m.Operator)
	default:
		return "unknown"
	}
}
