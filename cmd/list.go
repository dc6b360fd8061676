package cmd

import (
	"fmt"
	"os"
	"time"

	"github.com/olekukonko/tablewriter"
	"github.com/spf13/cobra"

	"github.com/vimdojo/vimdojo/internal/review"
)

var listCmd = &cobra.Command{
	Use:   "list",
	Short: "List chapters and exercises",
	RunE: func(cmd *cobra.Command, args []string) error {
		chs, err := loadChapters(cmd)
		if err != nil {
			return err
		}

		st, err := openStore(cmd)
		if err != nil {
			return err
		}
		defer st.Close()

		done, err := st.CompletedSet(cmd.Context())
		if err != nil {
			return fmt.Errorf("load progress: %w", err)
		}
		sessions, err := st.RecentSessions(cmd.Context(), 1000)
		if err != nil {
			return fmt.Errorf("load sessions: %w", err)
		}
		reviews := review.FromSessions(sessions)
		now := time.Now()

		table := tablewriter.NewWriter(os.Stdout)
		table.SetHeader([]string{"Chapter", "Exercise", "Goals", "Flow", "Done", "Review"})
		table.SetBorder(false)
		table.SetCenterSeparator("")

		for _, ch := range chs {
			for _, ex := range ch.Exercises {
				mark := ""
				if done[ch.Number][ex.Title] {
					mark = "✓"
				}
				table.Append([]string{
					fmt.Sprintf("%d. %s", ch.Number, ch.Title),
					ex.Title,
					fmt.Sprintf("%d", len(ex.Goals)),
					ex.Flow.String(),
					mark,
					reviewLabel(reviews[ch.Number][ex.Title], now),
				})
			}
		}

		table.Render()
		return nil
	},
}

// reviewLabel describes when an exercise comes due again.
func reviewLabel(s *review.State, now time.Time) string {
	switch {
	case s == nil:
		return "new"
	case s.IsDue(now):
		return "due"
	default:
		return fmt.Sprintf("in %dd", s.DaysUntil(now))
	}
}
