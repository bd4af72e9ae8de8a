package main

import (
	"context"
	"errors"
	"flag"
	"log"
	"os"
	"os/signal"
	"path/filepath"

	"github.com/gdamore/tcell/v2"

	"sea-block/internal/app"
	"sea-block/internal/sea"
	"sea-block/internal/term"
	"sea-block/internal/terrain"
	"sea-block/pkg/tiling"
)

func main() {
	cfg := app.NewConfig()
	cfg.Bind(flag.CommandLine)
	logPath := flag.String("log", filepath.Join(os.TempDir(), "seablock-term.log"), "diagnostics log file")
	flag.Parse()

	out, err := os.OpenFile(*logPath, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644)
	if err != nil {
		log.Fatal(err)
	}
	defer out.Close()
	logger := log.New(out, "[seablock-term] ", log.LstdFlags|log.Lmicroseconds)

	scenes, err := sea.Scenes(tiling.Builtin(), terrain.Builtin())
	if err != nil {
		log.Fatal(err)
	}
	sim, err := app.Open(cfg, scenes, logger)
	if err != nil {
		log.Fatal(err)
	}

	screen, err := tcell.NewScreen()
	if err != nil {
		log.Fatal(err)
	}
	if err := screen.Init(); err != nil {
		log.Fatal(err)
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()
	err = term.New(screen, sim, cfg, logger).Run(ctx)
	screen.Fini()
	if err != nil && !errors.Is(err, context.Canceled) {
		log.Fatal(err)
	}
}
