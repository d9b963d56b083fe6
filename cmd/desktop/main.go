package main

import (
	"fmt"
	"os"

	"github.com/hajimehoshi/ebiten/v2"

	"github.com/tomz197/lanedodger/internal/config"
	"github.com/tomz197/lanedodger/internal/desktop"
	loopconfig "github.com/tomz197/lanedodger/internal/loop/config"
)

func main() {
	if err := config.Load(); err != nil {
		fmt.Fprintf(os.Stderr, "config: %v\n", err)
		os.Exit(1)
	}
	logger := config.NewLogger("desktop")

	width := config.GetEnvInt("DESKTOP_WIDTH", loopconfig.DesktopWidth)
	height := config.GetEnvInt("DESKTOP_HEIGHT", loopconfig.DesktopHeight)

	game, err := desktop.New(desktop.Options{Width: width, Height: height})
	if err != nil {
		logger.Fatal("failed to create game", "err", err)
	}

	ebiten.SetWindowSize(width, height)
	ebiten.SetWindowTitle("Lane Dodger")
	ebiten.SetTPS(loopconfig.ClientTargetFPS)

	logger.Info("starting", "width", width, "height", height)
	if err := ebiten.RunGame(game); err != nil {
		logger.Fatal("game error", "err", err)
	}
}
