package main

import (
	"log"
	"log/slog"
	"os"

	"github.com/gogpu/gg"

	"LayerPad/internal/config"
	"LayerPad/internal/state"
	"LayerPad/internal/ui"
)

func main() {
	cfg, err := config.FromArgs(os.Args)
	if err != nil {
		log.Printf("[CONFIG] %v; using defaults", err)
		cfg = config.Default()
	}
	if cfg.Debug {
		gg.SetLogger(slog.Default())
	}
	log.Printf("Starting LayerPad session %s", state.SessionID())
	ui.RunApp(cfg)
}
