package cli

import (
	"fmt"

	"github.com/charmbracelet/lipgloss"
	"github.com/spf13/cobra"

	"github.com/ptran/taskboard/internal/progress"
)

var listTag string

var listCmd = &cobra.Command{
	Use:   "list",
	Short: "Show the board",
	RunE: func(cmd *cobra.Command, args []string) error {
		env, cleanup, err := openEnv(cmd)
		if err != nil {
			return err
		}
		defer cleanup()

		doc := env.session.Load(cmd.Context())

		dim := lipgloss.NewStyle().Faint(true)
		done := lipgloss.NewStyle().Strikethrough(true).Faint(true)

		for _, sec := range doc {
			if listTag != "" && sec.Tag != listTag {
				continue
			}

			title := lipgloss.NewStyle().
				Bold(true).
				Foreground(lipgloss.Color(sec.Color)).
				Render(sec.Title)

			header := fmt.Sprintf("%s  %s", title, dim.Render(fmt.Sprintf("%d%%", progress.Section(doc, sec.ID))))
			if sec.Due != "" {
				header += dim.Render("  due " + sec.Due)
			}
			fmt.Println(header)
			fmt.Println(dim.Render("  id " + sec.ID))

			for i, t := range sec.Tasks {
				mark := "[ ]"
				line := t.Text
				if t.Done {
					mark = "[x]"
					line = done.Render(line)
				}
				fmt.Printf("  %2d %s %s\n", i, mark, line)
				if t.Desc != "" {
					fmt.Println(dim.Render("        " + t.Desc))
				}
			}
			fmt.Println()
		}

		if saved, ok := env.session.LastSaved(cmd.Context()); ok {
			fmt.Println(dim.Render("last saved " + saved.Local().Format("2006-01-02 15:04:05")))
		}
		return nil
	},
}

var progressCmd = &cobra.Command{
	Use:   "progress",
	Short: "Show completion percentages",
	RunE: func(cmd *cobra.Command, args []string) error {
		env, cleanup, err := openEnv(cmd)
		if err != nil {
			return err
		}
		defer cleanup()

		doc := env.session.Load(cmd.Context())
		for _, sec := range doc {
			fmt.Printf("%3d%%  %s\n", progress.Section(doc, sec.ID), sec.Title)
		}
		fmt.Printf("%3d%%  overall\n", progress.Global(doc))
		return nil
	},
}

func init() {
	listCmd.Flags().StringVar(&listTag, "tag", "", "only show sections with this tag")
}
