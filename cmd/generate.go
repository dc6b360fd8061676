package cmd

import (
	"fmt"
	"path/filepath"

	"github.com/spf13/afero"
	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"

	"github.com/vimdojo/vimdojo/internal/authoring"
	"github.com/vimdojo/vimdojo/internal/content"
)

var generateCmd = &cobra.Command{
	Use:   "generate",
	Short: "Generate a new exercise with AI and append it to a chapter",
	RunE: func(cmd *cobra.Command, args []string) error {
		log, closeLog, err := newLogger(cmd)
		if err != nil {
			return err
		}
		defer closeLog()

		topic, _ := cmd.Flags().GetString("topic")
		if topic == "" {
			return fmt.Errorf("--topic is required")
		}
		chNum, _ := cmd.Flags().GetInt("chapter")
		kinds, _ := cmd.Flags().GetStringSlice("kinds")

		provider, err := newProvider(cmd, log)
		if err != nil {
			return fmt.Errorf("generate needs an LLM provider: %w", err)
		}

		fs := afero.NewOsFs()
		path := filepath.Join(resolveContentDir(cmd), fmt.Sprintf("chapter_%02d.yaml", chNum))
		raw, err := afero.ReadFile(fs, path)
		if err != nil {
			return fmt.Errorf("read %s: %w", path, err)
		}
		var file content.ChapterFile
		if err := yaml.Unmarshal(raw, &file); err != nil {
			return fmt.Errorf("parse %s: %w", path, err)
		}

		titles := make([]string, 0, len(file.Exercises))
		for _, ex := range file.Exercises {
			titles = append(titles, ex.Title)
		}

		gen := authoring.New(provider, authoring.DefaultConfig())
		def, err := gen.Generate(cmd.Context(), authoring.GenerateInput{
			Topic:       topic,
			Kinds:       kinds,
			PriorTitles: titles,
		})
		if err != nil {
			return fmt.Errorf("generate exercise: %w", err)
		}

		file.Exercises = append(file.Exercises, *def)
		out, err := yaml.Marshal(&file)
		if err != nil {
			return fmt.Errorf("marshal chapter: %w", err)
		}

		// Round-trip through the loader so a bad write never lands.
		if _, err := content.ParseChapter(out); err != nil {
			return fmt.Errorf("generated chapter does not load: %w", err)
		}

		if err := afero.WriteFile(fs, path, out, 0o644); err != nil {
			return fmt.Errorf("write %s: %w", path, err)
		}

		fmt.Printf("Added %q to %s\n", def.Title, path)
		return nil
	},
}

func init() {
	generateCmd.Flags().String("topic", "", "What the exercise should practice, e.g. \"word motions\"")
	generateCmd.Flags().Int("chapter", 1, "Chapter number to append to")
	generateCmd.Flags().StringSlice("kinds", nil, "Restrict goal kinds (position, mode, text, register, buffer_change)")
	rootCmd.AddCommand(generateCmd)
}
