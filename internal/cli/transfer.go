package cli

import (
	"fmt"
	"os"
	"time"

	"github.com/spf13/cobra"

	"github.com/ptran/taskboard/internal/board"
)

var importCmd = &cobra.Command{
	Use:   "import <file>",
	Short: "Replace the board with a previously exported file",
	Long:  "Validates the whole file first; a single invalid section or task rejects the import and the board is left untouched.",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		data, err := os.ReadFile(args[0])
		if err != nil {
			return fmt.Errorf("reading import file: %w", err)
		}

		env, cleanup, err := openEnv(cmd)
		if err != nil {
			return err
		}
		defer cleanup()

		doc, err := env.session.Import(cmd.Context(), data)
		if err != nil {
			return err
		}
		fmt.Printf("imported %d sections\n", len(doc))
		return nil
	},
}

var exportOut string

var exportCmd = &cobra.Command{
	Use:   "export",
	Short: "Write the board to a timestamped JSON file",
	RunE: func(cmd *cobra.Command, args []string) error {
		env, cleanup, err := openEnv(cmd)
		if err != nil {
			return err
		}
		defer cleanup()

		data, err := env.session.Export(cmd.Context())
		if err != nil {
			return err
		}

		path := exportOut
		if path == "" {
			path = board.ExportFileName(time.Now())
		}
		if err := os.WriteFile(path, data, 0o644); err != nil {
			return fmt.Errorf("writing export: %w", err)
		}
		fmt.Println("exported to", path)
		return nil
	},
}

func init() {
	exportCmd.Flags().StringVarP(&exportOut, "out", "o", "", "output path (default taskboard-export-<timestamp>.json)")
}
