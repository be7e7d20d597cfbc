package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/cobra"

	"github.com/owbinding/onewire-go/pkg/bridge"
	"github.com/owbinding/onewire-go/pkg/config"
	"github.com/owbinding/onewire-go/pkg/discovery"
	"github.com/owbinding/onewire-go/pkg/inbox"
	"github.com/owbinding/onewire-go/pkg/log"
	"github.com/owbinding/onewire-go/pkg/persistence"
)

var watchCmd = &cobra.Command{
	Use:   "watch",
	Short: "Run background discovery and stream results",
	Long: `Scan all bridges every discovery interval and serve the result inbox as a
websocket feed on inbox.listen (path /feed). With mdns.enabled, bridges
announced on the network are added and removed automatically.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
		defer stop()

		events, closeEvents, err := openEventLog()
		if err != nil {
			return err
		}
		defer closeEvents()

		in := inbox.New(logger)
		saveState, err := restoreInbox(in)
		if err != nil {
			return err
		}
		defer saveState()

		in.Subscribe(func(e inbox.Event) {
			logger.Info("inbox "+string(e.Type), "thing_uid", e.Result.ThingUID, "label", e.Result.Label)
		})

		services, closeServices, err := openServices(cfg.Bridges, in, events)
		if err != nil {
			return err
		}
		defer closeServices()

		sched := discovery.NewScheduler(discovery.SchedulerConfig{
			Interval:      cfg.Discovery.Interval.Std(),
			MaxConcurrent: cfg.Discovery.MaxConcurrent,
			Logger:        logger,
			OnReport: func(r *discovery.Report) {
				logger.Info("scan finished", "bridge", r.BridgeID, "results", len(r.Results), "errors", len(r.Errors))
				saveState()
			},
		}, services...)

		srv := &http.Server{
			Addr:              cfg.Inbox.Listen,
			Handler:           feedMux(in),
			ReadHeaderTimeout: 5 * time.Second,
		}
		go func() {
			logger.Info("serving inbox feed", "addr", srv.Addr)
			if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
				logger.Error("inbox feed failed", "error", err)
				stop()
			}
		}()
		defer func() {
			shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
			defer cancel()
			_ = srv.Shutdown(shutdownCtx)
		}()

		if cfg.MDNS.Enabled {
			go followAnnouncements(ctx, sched, in, events)
		}

		if !cfg.Discovery.Background {
			logger.Info("background discovery disabled, scanning once")
			sched.ScanAll(ctx)
			<-ctx.Done()
			return nil
		}

		if err := sched.Run(ctx); err != nil && !errors.Is(err, context.Canceled) {
			return err
		}
		return nil
	},
}

func init() {
	rootCmd.AddCommand(watchCmd)
}

// restoreInbox loads the persisted inbox, if configured, and returns a
// function that writes the current inbox back.
func restoreInbox(in *inbox.Inbox) (save func(), err error) {
	if cfg.Inbox.StateFile == "" {
		return func() {}, nil
	}
	store := persistence.NewStateStore(cfg.Inbox.StateFile)
	results, err := store.Load()
	if err != nil {
		return nil, fmt.Errorf("load inbox state: %w", err)
	}
	for _, r := range results {
		in.ThingDiscovered(r)
	}
	logger.Info("restored inbox", "path", store.Path(), "results", len(results))

	return func() {
		if err := store.Save(in.List()); err != nil {
			logger.Warn("cannot save inbox state", "path", store.Path(), "error", err)
		}
	}, nil
}

func feedMux(in *inbox.Inbox) http.Handler {
	mux := http.NewServeMux()
	mux.Handle("/feed", inbox.NewFeed(in, logger))
	return mux
}

// followAnnouncements adds bridges announced via mDNS to the scheduler and
// removes them when they disappear.
func followAnnouncements(ctx context.Context, sched *discovery.Scheduler, sink discovery.ResultSink, events log.Logger) {
	browser := bridge.NewBrowser(bridge.Config{
		Interface: cfg.MDNS.Interface,
		Logger:    logger,
	})
	announcements, err := browser.Browse(ctx)
	if err != nil {
		logger.Error("mDNS browse failed", "error", err)
		return
	}

	closers := make(map[string]io.Closer)
	defer func() {
		for _, c := range closers {
			_ = c.Close()
		}
	}()

	for ev := range announcements {
		id := ev.Service.BridgeID()
		switch ev.Type {
		case bridge.EventAdded:
			if configured(id) {
				continue
			}
			b := config.Bridge{ID: id, Address: ev.Service.Address(), Timeout: config.Duration(config.DefaultBridgeTimeout)}
			if _, ok := closers[id]; ok {
				continue
			}
			reader, closer, err := openBridge(b)
			if err != nil {
				logger.Warn("cannot use announced bridge", "bridge", id, "error", err)
				continue
			}
			svc, err := newService(b, reader, sink, events)
			if err != nil {
				_ = closer.Close()
				logger.Warn("cannot use announced bridge", "bridge", id, "error", err)
				continue
			}
			logger.Info("bridge announced", "bridge", id, "address", b.Address)
			closers[id] = closer
			sched.Add(svc)
		case bridge.EventRemoved:
			closer, ok := closers[id]
			if !ok {
				continue
			}
			sched.Remove(id)
			_ = closer.Close()
			delete(closers, id)
			logger.Info("bridge gone", "bridge", id)
		}
	}
}

func configured(id string) bool {
	for _, b := range cfg.Bridges {
		if b.ID == id {
			return true
		}
	}
	return false
}
