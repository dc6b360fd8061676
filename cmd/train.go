package cmd

import (
	"fmt"
	"os"

	"github.com/spf13/afero"
	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/vimdojo/vimdojo/internal/coach"
	"github.com/vimdojo/vimdojo/internal/content"
	"github.com/vimdojo/vimdojo/internal/llm"
	"github.com/vimdojo/vimdojo/internal/monitor"
	"github.com/vimdojo/vimdojo/internal/session"
	"github.com/vimdojo/vimdojo/internal/store"
)

var trainCmd = &cobra.Command{
	Use:   "train",
	Short: "Train a specific exercise without the picker",
	RunE: func(cmd *cobra.Command, args []string) error {
		log, closeLog, err := newLogger(cmd)
		if err != nil {
			return err
		}
		defer closeLog()

		chs, err := loadChapters(cmd)
		if err != nil {
			return err
		}

		chNum, _ := cmd.Flags().GetInt("chapter")
		exTitle, _ := cmd.Flags().GetString("exercise")
		ch, ex, err := findExercise(chs, chNum, exTitle)
		if err != nil {
			return err
		}

		st, err := openStore(cmd)
		if err != nil {
			return err
		}
		defer st.Close()

		return trainExercise(cmd, st, log, ch.Number, ex)
	},
}

func init() {
	trainCmd.Flags().Int("chapter", 1, "Chapter number")
	trainCmd.Flags().String("exercise", "", "Exercise title (defaults to the chapter's first exercise)")
	trainCmd.Flags().Duration("interval", 0, "Polling interval override (e.g. 50ms)")
	trainCmd.Flags().Duration("stuck-after", 0, "Idle time before an AI hint is offered")
	trainCmd.Flags().Bool("rpc", false, "Sample editor state over the RPC socket (required for text and register goals)")
	trainCmd.Flags().Bool("no-tmux", false, "Run without the tmux split display")
}

// trainExercise runs one exercise through the session runner and prints
// the outcome.
func trainExercise(cmd *cobra.Command, st *store.Store, log *zap.Logger, chapter int, ex content.Exercise) error {
	interval, _ := cmd.Flags().GetDuration("interval")
	stuckAfter, _ := cmd.Flags().GetDuration("stuck-after")
	useRPC, _ := cmd.Flags().GetBool("rpc")
	noTmux, _ := cmd.Flags().GetBool("no-tmux")

	runner := session.NewRunner(afero.NewOsFs(), st, newAdvisor(cmd, log), log)

	result, err := runner.Run(cmd.Context(), session.Options{
		Chapter:    chapter,
		Exercise:   ex,
		Interval:   interval,
		StuckAfter: stuckAfter,
		UseRPC:     useRPC,
		NoTmux:     noTmux,
	})
	if err != nil {
		return fmt.Errorf("run %s: %w", ex.Title, err)
	}

	switch result.Outcome {
	case monitor.OutcomeCompleted:
		fmt.Printf("✓ %s completed\n", ex.Title)
	case monitor.OutcomeIncomplete:
		fmt.Printf("%s left incomplete\n", ex.Title)
	default:
		fmt.Printf("%s failed: %s\n", ex.Title, result.Reason)
	}
	return nil
}

// newProvider builds the LLM provider from VIMDOJO_* env vars, falling
// back to probing the standard provider key vars.
func newProvider(cmd *cobra.Command, log *zap.Logger) (llm.Provider, error) {
	cfg := llm.ConfigFromEnv()
	if cfg.Validate() != nil {
		discovered, ok := llm.DiscoverConfig()
		if !ok {
			return nil, fmt.Errorf("no LLM API key configured")
		}
		cfg = discovered
	}
	return llm.NewProvider(cmd.Context(), cfg, log)
}

// newAdvisor builds the AI hint service if a provider is configured.
// Sessions run fine without it.
func newAdvisor(cmd *cobra.Command, log *zap.Logger) monitor.Advisor {
	provider, err := newProvider(cmd, log)
	if err != nil {
		fmt.Fprintln(os.Stderr, "LLM provider not configured:", err)
		fmt.Fprintln(os.Stderr, "AI hints will be unavailable.")
		return nil
	}
	return coach.NewService(provider, coach.DefaultConfig())
}

// findExercise locates an exercise by chapter number and title. An empty
// title selects the chapter's first exercise.
func findExercise(chs []content.Chapter, number int, title string) (content.Chapter, content.Exercise, error) {
	for _, ch := range chs {
		if ch.Number != number {
			continue
		}
		if title == "" {
			return ch, ch.Exercises[0], nil
		}
		for _, ex := range ch.Exercises {
			if ex.Title == title {
				return ch, ex, nil
			}
		}
		return content.Chapter{}, content.Exercise{}, fmt.Errorf("chapter %d has no exercise %q", number, title)
	}
	return content.Chapter{}, content.Exercise{}, fmt.Errorf("no chapter %d", number)
}
