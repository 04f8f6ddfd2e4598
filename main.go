package main

import (
	"errors"
	"fmt"
	"os"

	"hexline/internal/buffer"
	"hexline/internal/cli"
	"hexline/internal/command"
	"hexline/internal/config"
	"hexline/internal/editor"
	"hexline/internal/logger"

	tea "github.com/charmbracelet/bubbletea"
)

func main() {
	os.Exit(run())
}

func run() int {
	args, err := cli.Parse(os.Args[1:])
	if errors.Is(err, cli.ErrHelp) {
		cli.Usage(os.Stdout, os.Args[0])
		return 0
	}
	if err != nil {
		fmt.Fprintln(os.Stderr, "hexline:", err)
		return 1
	}

	if err := logger.Init(os.Getenv("HEXLINE_DEBUG") != ""); err != nil {
		fmt.Fprintln(os.Stderr, "hexline: logger:", err)
		return 1
	}
	defer logger.Close()

	cfg, err := config.Load()
	if err != nil {
		logger.Warn("config load failed, using defaults", "error", err)
		cfg = config.DefaultConfig()
	}
	styles := config.NewStyles(&cfg.Theme)
	colors := args.Colors || cfg.Colors

	buf, err := buffer.Open(args.Path)
	if err != nil {
		fmt.Fprintln(os.Stderr, "hexline:", err)
		return 1
	}
	if colors {
		buf.SetNewlineGlyph(styles.NewlineGlyph.Render("."))
	}
	logger.Info("file loaded", "path", args.Path, "lines", buf.Lines())

	model, err := editor.New(buf, command.New(buf), styles, colors)
	if err != nil {
		fmt.Fprintln(os.Stderr, "hexline:", err)
		return 1
	}

	p := tea.NewProgram(model, tea.WithAltScreen())
	final, err := p.Run()
	if err != nil {
		fmt.Fprintln(os.Stderr, "hexline:", err)
		return 1
	}

	m := final.(*editor.Model)
	if err := m.Err(); err != nil {
		logger.Error("session aborted", "error", err)
		fmt.Fprintln(os.Stderr, "hexline:", err)
		return 1
	}
	if msg := m.FinalMessage(); msg != "" {
		fmt.Println(msg)
	}
	return 0
}
