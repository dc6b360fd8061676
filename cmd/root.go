package cmd

import (
	"fmt"
	"os"

	"github.com/spf13/afero"
	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/vimdojo/vimdojo/internal/app"
	"github.com/vimdojo/vimdojo/internal/content"
	"github.com/vimdojo/vimdojo/internal/logging"
	"github.com/vimdojo/vimdojo/internal/store"
)

var rootCmd = &cobra.Command{
	Use:   "vimdojo",
	Short: "Interactive vim trainer in your terminal",
	Long:  "vimdojo is an interactive vim trainer: vim exercises with live goal tracking inside a real Neovim session.",
	RunE: func(cmd *cobra.Command, args []string) error {
		return runPicker(cmd)
	},
}

func Execute() error {
	return rootCmd.Execute()
}

func init() {
	rootCmd.PersistentFlags().String("db", "", "Path to SQLite database file (overrides VIMDOJO_DB env var)")
	rootCmd.PersistentFlags().String("content", "", "Path to chapter directory (overrides VIMDOJO_CONTENT env var)")
	rootCmd.PersistentFlags().Bool("debug", false, "Enable debug logging")

	rootCmd.AddCommand(trainCmd)
	rootCmd.AddCommand(listCmd)
	rootCmd.AddCommand(statsCmd)
	rootCmd.AddCommand(scaffoldCmd)
	rootCmd.AddCommand(resetCmd)
	rootCmd.AddCommand(versionCmd)
	rootCmd.AddCommand(updateCmd)
}

// runPicker shows the chapter/exercise picker, trains the chosen exercise,
// and returns to the picker until the user quits.
func runPicker(cmd *cobra.Command) error {
	log, closeLog, err := newLogger(cmd)
	if err != nil {
		return err
	}
	defer closeLog()

	chs, err := loadChapters(cmd)
	if err != nil {
		return err
	}

	st, err := openStore(cmd)
	if err != nil {
		return err
	}
	defer st.Close()

	for {
		done, err := st.CompletedSet(cmd.Context())
		if err != nil {
			return fmt.Errorf("load progress: %w", err)
		}

		sel, err := app.Run(chs, done)
		if err != nil {
			return err
		}
		if sel == nil {
			return nil
		}

		if err := trainExercise(cmd, st, log, sel.Chapter.Number, sel.Exercise); err != nil {
			return err
		}
	}
}

// newLogger opens the file-backed zap logger. TUI and tmux own the
// terminal, so logs never go to stderr.
func newLogger(cmd *cobra.Command) (*zap.Logger, func(), error) {
	debug, _ := cmd.Flags().GetBool("debug")
	log, closer, err := logging.New(logging.DefaultPath(), debug)
	if err != nil {
		return nil, nil, fmt.Errorf("open log: %w", err)
	}
	return log, closer, nil
}

// resolveDBPath returns the database path using --db flag (highest
// priority), then VIMDOJO_DB env var, then the default XDG path.
func resolveDBPath(cmd *cobra.Command) (string, error) {
	if p, _ := cmd.Flags().GetString("db"); p != "" {
		return p, store.EnsureDir(p)
	}
	return store.DefaultDBPath()
}

func openStore(cmd *cobra.Command) (*store.Store, error) {
	dbPath, err := resolveDBPath(cmd)
	if err != nil {
		return nil, fmt.Errorf("resolve DB path: %w", err)
	}
	st, err := store.Open(dbPath)
	if err != nil {
		return nil, fmt.Errorf("open store: %w", err)
	}
	return st, nil
}

// resolveContentDir returns the chapter directory using --content flag,
// then VIMDOJO_CONTENT env var, then the default XDG path.
func resolveContentDir(cmd *cobra.Command) string {
	if p, _ := cmd.Flags().GetString("content"); p != "" {
		return p
	}
	return content.DefaultDir()
}

func loadChapters(cmd *cobra.Command) ([]content.Chapter, error) {
	dir := resolveContentDir(cmd)
	chs, err := content.NewLoader(afero.NewOsFs(), dir).LoadAll()
	if err != nil {
		return nil, fmt.Errorf("load chapters from %s: %w", dir, err)
	}
	if len(chs) == 0 {
		fmt.Fprintf(os.Stderr, "No chapters found in %s.\nRun `vimdojo scaffold` to create a starter chapter.\n", dir)
		return nil, fmt.Errorf("no chapters in %s", dir)
	}
	return chs, nil
}
