// Command streamstats serves the stats panel over HTTP: a streaming client
// posts telemetry snapshots and reads back the formatted stats, optionally
// mirrored to a terminal table.
package main

import (
	"context"
	"flag"
	"os"
	"os/signal"
	"syscall"

	"github.com/rivo/tview"
	"golang.org/x/sync/errgroup"

	"github.com/jiyeyuran/streamstats"
	"github.com/jiyeyuran/streamstats/internal/ingest"
	"github.com/jiyeyuran/streamstats/tui"
)

var logger = streamstats.NewLogger("StreamStats")

func main() {
	configPath := flag.String("config", "", "path to the YAML config file")
	listen := flag.String("listen", "", "ingest listen address, overrides the config")
	useTUI := flag.Bool("tui", false, "mirror the stats to a terminal table")
	flag.Parse()

	config := streamstats.DefaultConfig()
	if *configPath != "" {
		var err error
		if config, err = streamstats.LoadConfig(*configPath); err != nil {
			logger.Error(err, "load config")
			os.Exit(1)
		}
	}
	if *listen != "" {
		config.Listen = *listen
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	options := config.Options()

	var (
		app   *tview.Application
		table *tui.TableSink
	)
	if *useTUI {
		app = tview.NewApplication()
		table = tui.NewTableSink(app)
		options = append(options, streamstats.WithSink(table))
	} else {
		options = append(options, streamstats.WithSink(streamstats.NewLogSink(logger)))
	}

	engine := streamstats.NewEngine(options...)
	engine.Configure(config.Flags)

	logger.Info("starting", "sessionId", engine.SessionId(), "listen", config.Listen, "locale", config.Locale)

	g, ctx := errgroup.WithContext(ctx)

	g.Go(func() error {
		return ingest.NewServer(engine).ListenAndServe(ctx, config.Listen)
	})

	if app != nil {
		app.SetRoot(table.Primitive(), true)

		g.Go(func() error {
			defer stop()
			defer table.Stop()
			return app.Run()
		})
		g.Go(func() error {
			<-ctx.Done()
			app.Stop()
			return nil
		})
	}

	if err := g.Wait(); err != nil {
		logger.Error(err, "exit")
		os.Exit(1)
	}
}
