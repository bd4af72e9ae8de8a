//go:build ebiten

package main

import (
	"errors"
	"flag"
	"log"
	"os"

	"sea-block/internal/app"
	"sea-block/internal/sea"
	"sea-block/internal/terrain"
	"sea-block/pkg/tiling"

	"github.com/hajimehoshi/ebiten/v2"
)

func main() {
	cfg := app.NewConfig()
	cfg.Bind(flag.CommandLine)
	flag.Parse()

	logger := log.New(os.Stdout, "[seablock] ", log.LstdFlags|log.Lmicroseconds)

	scenes, err := sea.Scenes(tiling.Builtin(), terrain.Builtin())
	if err != nil {
		logger.Fatal(err)
	}
	sim, err := app.Open(cfg, scenes, logger)
	if err != nil {
		logger.Fatal(err)
	}

	game := app.New(sim, cfg, logger)
	size := sim.Size()

	ebiten.SetWindowTitle("sea-block: " + sim.Name())
	ebiten.SetTPS(cfg.TPS)
	ebiten.SetWindowSize(size.W*cfg.Scale+cfg.HUDWidth, size.H*cfg.Scale)

	if err := ebiten.RunGame(game); err != nil && !errors.Is(err, ebiten.Termination) {
		logger.Fatal(err)
	}
}
