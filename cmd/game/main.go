package main

import (
	"bufio"
	"fmt"
	"os"

	"golang.org/x/term"

	"github.com/tomz197/lanedodger/internal/config"
	"github.com/tomz197/lanedodger/internal/loop"
)

func main() {
	if err := config.Load(); err != nil {
		fmt.Fprintf(os.Stderr, "config: %v\n", err)
		os.Exit(1)
	}
	logger := config.NewLogger("game")

	fd := int(os.Stdin.Fd())
	oldState, err := term.MakeRaw(fd)
	if err != nil {
		logger.Fatal("failed to enable raw mode", "err", err)
	}

	reader := bufio.NewReader(os.Stdin)
	runErr := loop.Run(reader, os.Stdout, logger)
	_ = term.Restore(fd, oldState)
	if runErr != nil {
		logger.Fatal("game error", "err", runErr)
	}
}
