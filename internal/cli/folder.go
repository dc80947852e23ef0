package cli

import (
	"fmt"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/ptran/taskboard/internal/mirror"
)

var folderCmd = &cobra.Command{
	Use:   "folder",
	Short: "Manage the mirror folder grant",
}

var folderGrantCmd = &cobra.Command{
	Use:   "grant <path>",
	Short: "Grant a folder for the file mirror",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		path, err := filepath.Abs(args[0])
		if err != nil {
			return err
		}

		env, cleanup, err := openEnv(cmd)
		if err != nil {
			return err
		}
		defer cleanup()

		if err := env.session.GrantFolder(cmd.Context(), path); err != nil {
			return err
		}
		fmt.Printf("mirroring to %s\n", filepath.Join(path, mirror.FileName))
		return nil
	},
}

var folderStatusCmd = &cobra.Command{
	Use:   "status",
	Short: "Show the current grant and its live permission state",
	RunE: func(cmd *cobra.Command, args []string) error {
		env, cleanup, err := openEnv(cmd)
		if err != nil {
			return err
		}
		defer cleanup()

		h, ok := env.session.Handle()
		if !ok {
			fmt.Println("no folder granted; the board is local-only")
			return nil
		}
		fmt.Println("folder:", h.Path)
		fmt.Println("state: ", env.session.MirrorState())
		if saved, ok := env.session.LastSaved(cmd.Context()); ok {
			fmt.Println("saved: ", saved.Local().Format("2006-01-02 15:04:05"))
		}
		return nil
	},
}

var folderConfirmCmd = &cobra.Command{
	Use:   "confirm",
	Short: "Re-confirm a grant that degraded to the prompt state",
	RunE: func(cmd *cobra.Command, args []string) error {
		env, cleanup, err := openEnv(cmd)
		if err != nil {
			return err
		}
		defer cleanup()

		if err := env.session.ConfirmFolder(cmd.Context()); err != nil {
			return err
		}
		fmt.Println("grant confirmed")
		return nil
	},
}

var folderRevokeCmd = &cobra.Command{
	Use:   "revoke",
	Short: "Drop the folder grant (the mirror file is left in place)",
	RunE: func(cmd *cobra.Command, args []string) error {
		env, cleanup, err := openEnv(cmd)
		if err != nil {
			return err
		}
		defer cleanup()

		env.session.RevokeFolder()
		fmt.Println("grant revoked; the board is local-only")
		return nil
	},
}

func init() {
	folderCmd.AddCommand(folderGrantCmd, folderStatusCmd, folderConfirmCmd, folderRevokeCmd)
}
