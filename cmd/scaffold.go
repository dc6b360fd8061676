package cmd

import (
	"fmt"

	"github.com/spf13/afero"
	"github.com/spf13/cobra"

	"github.com/vimdojo/vimdojo/internal/content"
)

var scaffoldCmd = &cobra.Command{
	Use:   "scaffold",
	Short: "Write a starter chapter into the content directory",
	RunE: func(cmd *cobra.Command, args []string) error {
		dir := resolveContentDir(cmd)
		path, err := content.Scaffold(afero.NewOsFs(), dir)
		if err != nil {
			return err
		}
		fmt.Println("Wrote", path)
		fmt.Println("Run `vimdojo` to start training.")
		return nil
	},
}
