package cmd

import (
	"fmt"
	"os"
	"time"

	"github.com/olekukonko/tablewriter"
	"github.com/spf13/cobra"

	"github.com/vimdojo/vimdojo/internal/review"
)

var statsCmd = &cobra.Command{
	Use:   "stats",
	Short: "Show training statistics",
	RunE: func(cmd *cobra.Command, args []string) error {
		st, err := openStore(cmd)
		if err != nil {
			return err
		}
		defer st.Close()

		stats, err := st.Stats(cmd.Context())
		if err != nil {
			return fmt.Errorf("load stats: %w", err)
		}
		if len(stats) == 0 {
			fmt.Println("No sessions recorded yet.")
			return nil
		}

		table := tablewriter.NewWriter(os.Stdout)
		table.SetHeader([]string{"Chapter", "Exercise", "Attempts", "Completed", "Best Time"})
		table.SetBorder(false)
		table.SetCenterSeparator("")

		for _, s := range stats {
			best := "-"
			if s.BestTime > 0 {
				best = s.BestTime.Round(time.Second).String()
			}
			table.Append([]string{
				fmt.Sprintf("%d", s.Chapter),
				s.Exercise,
				fmt.Sprintf("%d", s.Attempts),
				fmt.Sprintf("%d", s.Completions),
				best,
			})
		}

		table.Render()

		sessions, err := st.RecentSessions(cmd.Context(), 1000)
		if err != nil {
			return fmt.Errorf("load sessions: %w", err)
		}
		times := make([]time.Time, 0, len(sessions))
		for _, sess := range sessions {
			times = append(times, sess.StartedAt)
		}
		if streak := review.Streak(times, time.Now()); streak > 0 {
			fmt.Printf("\nStreak: %d day(s)\n", streak)
		}

		return nil
	},
}
