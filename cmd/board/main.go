// candipilot board: a terminal Kanban view of your applications.
//
// Environment:
//
//	CANDIPILOT_API       base URL of the API (default http://localhost:8080)
//	CANDIPILOT_EMAIL     account email
//	CANDIPILOT_PASSWORD  account password
package main

import (
	"context"
	"fmt"
	"os"
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/candipilot/candipilot-api/internal/client"
	"github.com/candipilot/candipilot-api/internal/kanban"
	"github.com/candipilot/candipilot-api/pkg/logger"
)

func main() {
	baseURL := os.Getenv("CANDIPILOT_API")
	if baseURL == "" {
		baseURL = "http://localhost:8080"
	}
	email := os.Getenv("CANDIPILOT_EMAIL")
	password := os.Getenv("CANDIPILOT_PASSWORD")
	if email == "" || password == "" {
		fmt.Fprintln(os.Stderr, "CANDIPILOT_EMAIL and CANDIPILOT_PASSWORD are required")
		os.Exit(1)
	}

	log := logger.Init(logger.Options{Level: "error"})

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	api := client.New(baseURL)
	if err := api.Login(ctx, email, password); err != nil {
		fmt.Fprintf(os.Stderr, "login failed: %v\n", err)
		os.Exit(1)
	}

	board := kanban.NewBoard(api, api, log)
	if err := board.Reload(ctx); err != nil {
		fmt.Fprintf(os.Stderr, "load failed: %v\n", err)
		os.Exit(1)
	}

	if _, err := tea.NewProgram(newModel(board), tea.WithAltScreen()).Run(); err != nil {
		fmt.Fprintf(os.Stderr, "board error: %v\n", err)
		os.Exit(1)
	}
}
