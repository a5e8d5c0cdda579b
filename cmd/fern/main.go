package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/muesli/termenv"

	"github.com/iw2rmb/fern/editor"
)

func main() {
	if err := run(); err != nil {
		fmt.Fprintf(os.Stderr, "fern: %v\n", err)
		os.Exit(1)
	}
}

func run() error {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	var path string
	if len(os.Args) > 1 {
		path = os.Args[1]
	}

	if os.Getenv("FERN_DEBUG") != "" {
		f, err := tea.LogToFile("fern.log", "fern")
		if err != nil {
			return err
		}
		defer f.Close()
	}

	m := editor.New(editor.DefaultConfig(), path)
	defer m.Close()

	out := termenv.NewOutput(os.Stdout)
	if path != "" {
		out.SetWindowTitle("fern - " + path)
	} else {
		out.SetWindowTitle("fern")
	}

	p := tea.NewProgram(m, tea.WithAltScreen(), tea.WithContext(ctx))
	if _, err := p.Run(); err != nil {
		return err
	}
	return nil
}
