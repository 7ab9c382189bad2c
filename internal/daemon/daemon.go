// ABOUTME: Runs the long-lived chambers processes under one errgroup
// ABOUTME: MCP over stdio, the Prometheus endpoint and the library sync schedule
package daemon

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"
	"time"

	"golang.org/x/sync/errgroup"

	"github.com/harper/chambers/internal/core"
	"github.com/harper/chambers/internal/logger"
	"github.com/harper/chambers/internal/mcp"
	"github.com/harper/chambers/internal/metrics"
)

const shutdownTimeout = 5 * time.Second

// Options configures Run. An empty MetricsAddr disables the metrics endpoint;
// an empty SyncSchedule disables periodic library sync.
type Options struct {
	Services     *core.Services
	Metrics      *metrics.Metrics
	Logger       *logger.Logger
	Version      string
	MetricsAddr  string
	SyncSchedule string
	Stdin        io.Reader
	Stdout       io.Writer
}

// Run blocks until ctx is cancelled, stdin closes or any component fails.
// The first failure cancels the others.
func Run(ctx context.Context, opts Options) error {
	log := logger.OrNop(opts.Logger)

	var sched *core.Scheduler
	if opts.SyncSchedule != "" {
		s, err := core.NewScheduler(opts.SyncSchedule, syncJob(opts.Services.Library, log), true, log)
		if err != nil {
			return fmt.Errorf("library schedule: %w", err)
		}
		sched = s
	}

	g, gctx := errgroup.WithContext(ctx)
	// stdin closing ends the MCP session, which should stop everything else
	gctx, cancel := context.WithCancel(gctx)
	defer cancel()

	server := mcp.NewServer(opts.Services, opts.Version, log)
	g.Go(func() error {
		defer cancel()
		log.Info("MCP server starting on stdio")
		return mcp.ServeStdio(gctx, server, opts.Stdin, opts.Stdout)
	})

	if opts.MetricsAddr != "" && opts.Metrics != nil {
		srv := &http.Server{
			Addr:              opts.MetricsAddr,
			Handler:           metricsMux(opts.Metrics),
			ReadHeaderTimeout: 5 * time.Second,
		}
		g.Go(func() error {
			log.Info("metrics endpoint listening", "addr", opts.MetricsAddr)
			if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
				return fmt.Errorf("metrics server: %w", err)
			}
			return nil
		})
		g.Go(func() error {
			<-gctx.Done()
			shutdownCtx, stop := context.WithTimeout(context.Background(), shutdownTimeout)
			defer stop()
			return srv.Shutdown(shutdownCtx)
		})
	}

	if sched != nil {
		g.Go(func() error {
			return sched.Run(gctx)
		})
	}

	return g.Wait()
}

func metricsMux(m *metrics.Metrics) http.Handler {
	mux := http.NewServeMux()
	mux.Handle("/metrics", m.Handler())
	return mux
}

// syncJob indexes new library documents; failures are logged by the scheduler
func syncJob(library *core.Library, log *logger.Logger) core.Job {
	return func(ctx context.Context) error {
		n, err := library.SyncDir()
		if err != nil {
			return err
		}
		if n > 0 {
			log.Info("library synced", "indexed", n)
		}
		return nil
	}
}
