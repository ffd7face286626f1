package main

import (
	"flag"
	"fmt"
	"os"

	"codeberg.org/docrouter/server/internal/tui"
	tea "github.com/charmbracelet/bubbletea"
)

func main() {
	endpoint := flag.String("endpoint", os.Getenv("DOCROUTER_API_ENDPOINT"), "base URL of the docrouter server")
	flag.Parse()

	app := tui.NewApp(tui.NewClient(*endpoint))
	p := tea.NewProgram(app, tea.WithAltScreen(), tea.WithMouseCellMotion())

	if _, err := p.Run(); err != nil {
		fmt.Printf("error running docrouter tui: %v\n", err)
		os.Exit(1)
	}
}
