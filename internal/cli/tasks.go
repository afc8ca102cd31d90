package cli

import (
	"fmt"
	"io"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"taskdesk/internal/controller"
	"taskdesk/internal/model"
)

var tasksCmd = &cobra.Command{
	Use:   "tasks",
	Short: "List tasks",
	RunE:  runTasks,
}

func init() {
	tasksCmd.Flags().String("status", "All", "All, Pending, In Progress or Completed")
}

func runTasks(cmd *cobra.Command, args []string) error {
	status, _ := cmd.Flags().GetString("status")
	filter, err := model.ParseFilter(status)
	if err != nil {
		return err
	}

	app, err := requireSession(cmd.Context())
	if err != nil {
		return err
	}
	defer app.Close()

	list := controller.NewTaskList(app.Client, app.Busy, printer(cmd))
	if !list.Load(cmd.Context(), filter) {
		return fmt.Errorf("could not load tasks")
	}
	writeTasks(cmd.OutOrStdout(), list.View())
	return nil
}

func writeTasks(out io.Writer, view controller.TaskListView) {
	if view.ShowTabs {
		for i, tab := range view.Tabs {
			if i > 0 {
				fmt.Fprint(out, "  ")
			}
			fmt.Fprintf(out, "%s (%d)", tab.Label, tab.Count)
		}
		fmt.Fprint(out, "\n\n")
	}
	if len(view.Tasks) == 0 {
		fmt.Fprintln(out, "No tasks found.")
		return
	}

	w := tabwriter.NewWriter(out, 0, 0, 2, ' ', 0)
	fmt.Fprintln(w, "ID\tTITLE\tPRIORITY\tSTATUS\tTODO\tDUE")
	for _, t := range view.Tasks {
		due := "-"
		if t.DueDate != nil {
			due = t.DueDate.Format("2006-01-02")
		}
		fmt.Fprintf(w, "%s\t%s\t%s\t%s\t%d/%d\t%s\n", t.ID, t.Title, t.Priority, t.Status, t.CompletedCount, t.TotalCount, due)
	}
	w.Flush()
}
