package main

import (
	"os"

	_ "taskdesk/docs"
	"taskdesk/internal/cli"
)

var version = "dev"

// @title           taskdesk
// @version         1.0
// @description     Local surface of the taskdesk client. Screens answer with JSON view models.

// @host      localhost:8080
// @BasePath  /

// @schemes http
func main() {
	if err := cli.Execute(version); err != nil {
		os.Exit(1)
	}
}
