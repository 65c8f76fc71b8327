package main

import (
	"bytes"
	"context"
	"flag"
	"fmt"
	"log/slog"
	"os"
	"strings"
	"sync/atomic"
	"time"

	"fyne.io/fyne/v2/app"

	"VectorBoard/internal/config"
	"VectorBoard/internal/logging"
	"VectorBoard/internal/share"
	"VectorBoard/internal/state"
	"VectorBoard/internal/store"
	"VectorBoard/internal/ui"
)

const appID = "io.github.vectorboard"

func main() {
	configPath := flag.String("config", "vectorboard.toml", "settings file")
	project := flag.String("project", "", "project to open (overrides the config)")
	view := flag.String("view", "", "watch a shared drawing at host:port instead of editing")
	discover := flag.Bool("discover", false, "list shared drawings on the local network and exit")
	flag.Parse()

	cfg, err := config.Load(*configPath)
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(2)
	}
	logging.SetLogger(logging.New(os.Stderr, cfg.LogLevel))
	log := logging.For("main")

	switch {
	case *discover:
		runDiscover(log)
	case *view != "":
		runViewer(log, *view)
	default:
		if *project != "" {
			cfg.Project = *project
		}
		runEditor(log, cfg)
	}
}

func runEditor(log *slog.Logger, cfg config.Config) {
	a := app.NewWithID(appID)
	s := state.New(state.Options{
		Width:          cfg.Canvas.Width,
		Height:         cfg.Canvas.Height,
		Background:     cfg.Canvas.Background,
		Color:          cfg.Tools.Color,
		Fill:           cfg.Tools.Fill,
		Thickness:      cfg.Tools.Thickness,
		Corners:        cfg.Tools.PolygonCorners,
		ImmediateErase: cfg.Tools.ImmediateErase,
		Store:          store.NewPreferences(a.Preferences()),
	})
	s.Load(cfg.Project)

	var shareLink string
	if cfg.Share.Enabled {
		srv, err := startShare(log, s, cfg.Share)
		if err != nil {
			log.Error("live viewer disabled", "err", err)
		} else {
			defer srv.Close()
			shareLink = fmt.Sprintf("%s:%d", share.GetOutgoingIP(), srv.Port())
		}
	}

	ui.NewApp(a, s, shareLink).Run()

	if err := s.Save(); err != nil {
		log.Error("saving on exit failed", "project", s.Project(), "err", err)
	}
}

// startShare publishes every change of s to websocket viewers.
func startShare(log *slog.Logger, s *state.Session, cfg config.Share) (*share.Server, error) {
	hub := share.NewHub()
	srv, err := share.Listen(fmt.Sprintf(":%d", cfg.Port), hub)
	if err != nil {
		return nil, err
	}
	publish := func() {
		var buf bytes.Buffer
		if err := s.ExportText(&buf); err != nil {
			log.Warn("snapshot failed", "err", err)
			return
		}
		hub.Broadcast(buf.String())
	}
	var last atomic.Uint64
	s.OnChange(func() {
		rev := s.Revision()
		if last.Swap(rev) != rev {
			publish()
		}
	})
	publish()

	go func() {
		if err := srv.Serve(); err != nil {
			log.Error("viewer server stopped", "err", err)
		}
	}()
	if cfg.Advertise {
		if err := srv.Advertise(""); err != nil {
			log.Warn("mDNS advertisement failed", "err", err)
		}
	}
	return srv, nil
}

func runViewer(log *slog.Logger, addr string) {
	a := app.NewWithID(appID + ".viewer")
	s := state.New(state.Options{})
	w := ui.NewViewer(a, s, addr)

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	go func() {
		err := share.Watch(ctx, addr, func(snapshot string) {
			if err := s.ImportText(strings.NewReader(snapshot)); err != nil {
				log.Warn("bad snapshot", "err", err)
				return
			}
			w.SetStatus(fmt.Sprintf("Watching %s: %d shapes", addr, s.Drawing().Len()))
		})
		if err != nil && ctx.Err() == nil {
			log.Error("viewer disconnected", "addr", addr, "err", err)
			w.SetStatus("Disconnected: " + err.Error())
		}
	}()
	w.Run()
}

func runDiscover(log *slog.Logger) {
	n := 0
	err := share.Browse(3*time.Second, func(addr string) {
		n++
		fmt.Println(addr)
	})
	if err != nil {
		log.Error("browse failed", "err", err)
		os.Exit(1)
	}
	if n == 0 {
		fmt.Fprintln(os.Stderr, "no shared drawings found")
	}
}
