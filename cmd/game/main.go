package main

import (
	"flag"
	"log"
	"log/slog"
	"os"

	"github.com/hajimehoshi/ebiten/v2"

	"github.com/ljorgens/pax-galaxia-remake/internal/galaxy"
	"github.com/ljorgens/pax-galaxia-remake/internal/game"
)

func main() {
	var tuningPath string
	var logLevel string
	var verbose bool
	flag.StringVar(&tuningPath, "tuning", "", "YAML tuning file (defaults built in)")
	flag.StringVar(&logLevel, "log-level", "info", "debug, info, warn or error")
	flag.BoolVar(&verbose, "verbose", false, "record per-tick events in the game log")
	flag.Parse()

	var lvl slog.Level
	if err := lvl.UnmarshalText([]byte(logLevel)); err != nil {
		log.Fatalf("bad -log-level: %v", err)
	}
	logger := slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: lvl}))
	slog.SetDefault(logger)

	tuning := galaxy.DefaultTuning()
	if tuningPath != "" {
		t, err := galaxy.LoadTuning(tuningPath)
		if err != nil {
			log.Fatal(err)
		}
		tuning = t
	}

	session, err := galaxy.NewSession(tuning, logger)
	if err != nil {
		log.Fatal(err)
	}
	session.SetVerbose(verbose)

	g := game.New(session, logger)
	w, h := g.Size()
	ebiten.SetWindowTitle("Pax Galaxia")
	ebiten.SetWindowSize(w, h)
	if err := ebiten.RunGame(g); err != nil {
		log.Fatal(err)
	}
}
