//go:build !tinygo

package main

import (
	"context"
	"fmt"
	"io"
	"strings"

	"github.com/chzyer/readline"

	"ads1115-go/services/config"
	"ads1115-go/services/shell"
)

// interactive runs a readline prompt until EOF, "exit" or ctx is done.
func interactive(ctx context.Context, cfg *config.Config, hw *hardware, report *shell.Report) error {
	rl, err := readline.NewEx(&readline.Config{
		Prompt:          cfg.Console.Prompt,
		InterruptPrompt: "^C",
		EOFPrompt:       "exit",
	})
	if err != nil {
		return fmt.Errorf("failed to create readline: %w", err)
	}
	defer rl.Close()

	sh := newShell(cfg, hw, rl.Stdout(), report)
	fmt.Fprintln(rl.Stdout(), shell.Welcome)

	for {
		select {
		case <-ctx.Done():
			return nil
		default:
		}

		line, err := rl.Readline()
		if err == readline.ErrInterrupt {
			continue
		}
		if err == io.EOF {
			return nil
		}
		if err != nil {
			return err
		}

		input := strings.TrimSpace(line)
		switch input {
		case "":
			continue
		case "exit", "quit":
			return nil
		}
		if msg := shell.StatusMessage(sh.Exec(input)); msg != "" {
			fmt.Fprintln(rl.Stdout(), msg)
		}
	}
}
