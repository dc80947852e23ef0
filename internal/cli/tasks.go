package cli

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/spf13/cobra"
)

var taskCmd = &cobra.Command{
	Use:   "task",
	Short: "Manage tasks within a section",
}

var taskAddCmd = &cobra.Command{
	Use:   "add <section-id> <text>...",
	Short: "Add a task",
	Args:  cobra.MinimumNArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		env, cleanup, err := openEnv(cmd)
		if err != nil {
			return err
		}
		defer cleanup()

		if err := env.session.AddTask(cmd.Context(), args[0], strings.Join(args[1:], " ")); err != nil {
			return err
		}
		fmt.Println("task added")
		return nil
	},
}

var taskToggleCmd = &cobra.Command{
	Use:   "toggle <section-id> <index>",
	Short: "Toggle a task's completion",
	Args:  cobra.ExactArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		index, err := parseIndex(args[1])
		if err != nil {
			return err
		}

		env, cleanup, err := openEnv(cmd)
		if err != nil {
			return err
		}
		defer cleanup()

		if err := env.session.ToggleTask(cmd.Context(), args[0], index); err != nil {
			return err
		}
		fmt.Println("task toggled")
		return nil
	},
}

var taskEditCmd = &cobra.Command{
	Use:   "edit <section-id> <index> <text>...",
	Short: "Replace a task's label",
	Args:  cobra.MinimumNArgs(3),
	RunE: func(cmd *cobra.Command, args []string) error {
		index, err := parseIndex(args[1])
		if err != nil {
			return err
		}

		env, cleanup, err := openEnv(cmd)
		if err != nil {
			return err
		}
		defer cleanup()

		if err := env.session.EditTask(cmd.Context(), args[0], index, strings.Join(args[2:], " ")); err != nil {
			return err
		}
		fmt.Println("task updated")
		return nil
	},
}

var taskDescCmd = &cobra.Command{
	Use:   "desc <section-id> <index> <description>...",
	Short: "Set a task's description",
	Args:  cobra.MinimumNArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		index, err := parseIndex(args[1])
		if err != nil {
			return err
		}

		env, cleanup, err := openEnv(cmd)
		if err != nil {
			return err
		}
		defer cleanup()

		if err := env.session.SetTaskDescription(cmd.Context(), args[0], index, strings.Join(args[2:], " ")); err != nil {
			return err
		}
		fmt.Println("description updated")
		return nil
	},
}

var taskRmCmd = &cobra.Command{
	Use:   "rm <section-id> <index>",
	Short: "Remove a task",
	Args:  cobra.ExactArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		index, err := parseIndex(args[1])
		if err != nil {
			return err
		}

		env, cleanup, err := openEnv(cmd)
		if err != nil {
			return err
		}
		defer cleanup()

		if err := env.session.RemoveTask(cmd.Context(), args[0], index); err != nil {
			return err
		}
		fmt.Println("task removed")
		return nil
	},
}

var taskMvCmd = &cobra.Command{
	Use:   "mv <section-id> <index> <position>",
	Short: "Move a task within its section",
	Args:  cobra.ExactArgs(3),
	RunE: func(cmd *cobra.Command, args []string) error {
		from, err := parseIndex(args[1])
		if err != nil {
			return err
		}
		to, err := parseIndex(args[2])
		if err != nil {
			return err
		}

		env, cleanup, err := openEnv(cmd)
		if err != nil {
			return err
		}
		defer cleanup()

		if err := env.session.MoveTask(cmd.Context(), args[0], from, to); err != nil {
			return err
		}
		fmt.Println("task moved")
		return nil
	},
}

func parseIndex(s string) (int, error) {
	n, err := strconv.Atoi(s)
	if err != nil {
		return 0, fmt.Errorf("index must be a number: %q", s)
	}
	return n, nil
}

func init() {
	taskCmd.AddCommand(taskAddCmd, taskToggleCmd, taskEditCmd, taskDescCmd, taskRmCmd, taskMvCmd)
}
