package cli

import (
	"github.com/spf13/cobra"

	"taskdesk/internal/server"
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Serve the local web surface",
	RunE:  runServe,
}

func runServe(cmd *cobra.Command, args []string) error {
	s, err := server.Init(cmd.Context(), cfg)
	if err != nil {
		return err
	}
	return s.Run()
}
