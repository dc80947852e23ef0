package cli

import (
	"fmt"
	"strconv"

	"github.com/spf13/cobra"
)

var (
	sectionTitle string
	sectionTag   string
	sectionColor string
	sectionDue   string
)

var sectionCmd = &cobra.Command{
	Use:   "section",
	Short: "Manage sections",
}

var sectionAddCmd = &cobra.Command{
	Use:   "add",
	Short: "Add a section",
	RunE: func(cmd *cobra.Command, args []string) error {
		env, cleanup, err := openEnv(cmd)
		if err != nil {
			return err
		}
		defer cleanup()

		sec, err := env.session.AddSection(cmd.Context(), sectionTitle, sectionTag, sectionColor, sectionDue)
		if err != nil {
			return err
		}
		fmt.Printf("added section %s (%s)\n", sec.Title, sec.ID)
		return nil
	},
}

var sectionEditCmd = &cobra.Command{
	Use:   "edit <id>",
	Short: "Edit a section",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		env, cleanup, err := openEnv(cmd)
		if err != nil {
			return err
		}
		defer cleanup()

		if err := env.session.EditSection(cmd.Context(), args[0], sectionTitle, sectionTag, sectionColor, sectionDue); err != nil {
			return err
		}
		fmt.Println("section updated")
		return nil
	},
}

var sectionRmCmd = &cobra.Command{
	Use:   "rm <id>",
	Short: "Remove a section and its tasks",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		env, cleanup, err := openEnv(cmd)
		if err != nil {
			return err
		}
		defer cleanup()

		if err := env.session.RemoveSection(cmd.Context(), args[0]); err != nil {
			return err
		}
		fmt.Println("section removed")
		return nil
	},
}

var sectionMvCmd = &cobra.Command{
	Use:   "mv <id> <position>",
	Short: "Move a section to a new position",
	Args:  cobra.ExactArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		to, err := strconv.Atoi(args[1])
		if err != nil {
			return fmt.Errorf("position must be a number: %q", args[1])
		}

		env, cleanup, err := openEnv(cmd)
		if err != nil {
			return err
		}
		defer cleanup()

		if err := env.session.MoveSection(cmd.Context(), args[0], to); err != nil {
			return err
		}
		fmt.Println("section moved")
		return nil
	},
}

func init() {
	for _, c := range []*cobra.Command{sectionAddCmd, sectionEditCmd} {
		c.Flags().StringVar(&sectionTitle, "title", "", "section title (required)")
		c.Flags().StringVar(&sectionTag, "tag", "", "classification tag")
		c.Flags().StringVar(&sectionColor, "color", "", "display accent color")
		c.Flags().StringVar(&sectionDue, "due", "", "due date")
	}
	sectionCmd.AddCommand(sectionAddCmd, sectionEditCmd, sectionRmCmd, sectionMvCmd)
}
