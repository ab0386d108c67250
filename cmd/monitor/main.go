package main

import (
	"flag"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	tea "github.com/charmbracelet/bubbletea"

	"autoblog/config"
	"autoblog/tui"
)

func main() {
	config.LoadEnv(nil)

	addr := config.GetEnv("MONITOR_URL", "http://localhost:8080")
	url := flag.String("url", addr, "autoblog status server URL")
	flag.Parse()

	program := tea.NewProgram(tui.NewModel(*url))

	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, os.Interrupt, syscall.SIGTERM)
	go func() {
		<-sigChan
		program.Quit()
	}()

	if _, err := program.Run(); err != nil {
		fmt.Fprintf(os.Stderr, "Error running monitor: %v\n", err)
		os.Exit(1)
	}
}
