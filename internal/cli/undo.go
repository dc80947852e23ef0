package cli

import (
	"fmt"

	"github.com/spf13/cobra"
)

var undoCmd = &cobra.Command{
	Use:   "undo",
	Short: "Restore the board as it was before the last change",
	RunE: func(cmd *cobra.Command, args []string) error {
		env, cleanup, err := openEnv(cmd)
		if err != nil {
			return err
		}
		defer cleanup()

		if _, err := env.session.Undo(cmd.Context()); err != nil {
			return err
		}
		fmt.Println("restored previous board")
		return nil
	},
}
