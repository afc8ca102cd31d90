package cli

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"taskdesk/internal/controller"
	"taskdesk/internal/model"
)

var exportCmd = &cobra.Command{
	Use:       "export [tasks|users]",
	Short:     "Download a spreadsheet report",
	Args:      cobra.MatchAll(cobra.ExactArgs(1), cobra.OnlyValidArgs),
	ValidArgs: []string{"tasks", "users"},
	RunE:      runExport,
}

func init() {
	exportCmd.Flags().String("out", "", "Output file (default: the report's own file name)")
}

func runExport(cmd *cobra.Command, args []string) error {
	out, _ := cmd.Flags().GetString("out")

	app, err := requireSession(cmd.Context())
	if err != nil {
		return err
	}
	defer app.Close()

	reports := controller.NewReports(app.Client, printer(cmd))
	var (
		report model.Report
		ok     bool
	)
	if args[0] == "users" {
		report, ok = reports.Users(cmd.Context())
	} else {
		report, ok = reports.Tasks(cmd.Context())
	}
	if !ok {
		return fmt.Errorf("could not download %s report", args[0])
	}

	if out == "" {
		out = report.Filename
	}
	if err := os.WriteFile(out, report.Data, 0o644); err != nil {
		return fmt.Errorf("failed to write report: %w", err)
	}
	fmt.Fprintf(cmd.OutOrStdout(), "Saved %s (%d bytes)\n", out, len(report.Data))
	return nil
}
