// Package main is the entry point for the GeoView geometry viewer.
package main

import (
	"fmt"
	"os"

	"go.uber.org/zap"

	"github.com/Faultbox/geoview/internal/config"
	"github.com/Faultbox/geoview/internal/engine/renderer"
	"github.com/Faultbox/geoview/internal/engine/window"
	"github.com/Faultbox/geoview/internal/logger"
	"github.com/Faultbox/geoview/internal/viewer"
)

func main() {
	config.ParseFlags()

	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Config error: %v\n", err)
		os.Exit(1)
	}

	if err := logger.Init(cfg.Logging.Level, cfg.Logging.LogFile); err != nil {
		fmt.Fprintf(os.Stderr, "Logger error: %v\n", err)
		os.Exit(1)
	}
	defer logger.Sync()

	logger.Info("=== GeoView ===")
	logger.Sugar.Debugf("Config: %+v", cfg)

	surfaces := func(title string, width, height, left, top int) (viewer.Surface, error) {
		return window.New(window.Config{
			Title:  title,
			Width:  width,
			Height: height,
			Left:   left,
			Top:    top,
			VSync:  cfg.Window.VSync,
		})
	}
	backends := func() (viewer.Backend, error) {
		return renderer.New()
	}

	v, err := viewer.NewFromConfig(cfg, surfaces, backends)
	if err != nil {
		logger.Error("failed to create viewer", zap.Error(err))
		os.Exit(1)
	}

	w := cfg.Window
	if !v.CreateWindow(w.Title, w.Width, w.Height, w.Left, w.Top) {
		logger.Error("failed to create window")
		os.Exit(1)
	}

	demo := newDemo(cfg.Demo)
	for _, g := range demo.immediate() {
		v.AddGeometry(g)
	}
	// the point cloud is generated off the render thread
	go func() {
		for _, g := range demo.background() {
			if !v.Post(g) {
				logger.Warn("demo geometry dropped", zap.Stringer("kind", g.Kind()))
			}
		}
	}()

	v.Run()
	logger.Info("viewer closed normally", zap.Uint64("frames", v.FrameCount()))
}
