// Command tm-grpc runs the flight-track ingest/replay gRPC service.
package main

import (
	"context"
	"flag"
	"fmt"
	"log/slog"
	"net"
	"os"
	"os/signal"
	"path/filepath"
	"syscall"
	"time"

	"golang.org/x/sync/errgroup"
	"google.golang.org/grpc"

	"github.com/tangomike/tm-grpc/pkg/config"
	"github.com/tangomike/tm-grpc/pkg/flightdb"
	"github.com/tangomike/tm-grpc/pkg/geoindex"
	"github.com/tangomike/tm-grpc/pkg/logging"
	"github.com/tangomike/tm-grpc/pkg/probe"
	"github.com/tangomike/tm-grpc/pkg/regclient"
	"github.com/tangomike/tm-grpc/pkg/server"
	"github.com/tangomike/tm-grpc/pkg/track"
	"github.com/tangomike/tm-grpc/pkg/trackpb"
)

var configPath = flag.String("c", "/etc/tangomike/tm-grpc.toml", "path to the TOML config file")

func main() {
	flag.Parse()

	if err := run(context.Background(), *configPath); err != nil {
		fmt.Fprintf(os.Stderr, "tm-grpc: %v\n", err)
		os.Exit(1)
	}
}

func run(ctx context.Context, path string) error {
	cfg, err := config.Load(path)
	if err != nil {
		return fmt.Errorf("load config: %w", err)
	}

	logging.Init(cfg.Log.Level)
	slog.Info("tm-grpc starting", "config", path)

	store := track.NewStore(cfg.Track.Folder)
	if err := os.MkdirAll(cfg.Track.Folder, 0o755); err != nil {
		return fmt.Errorf("create track folder: %w", err)
	}

	loadCtx, cancel := context.WithTimeout(ctx, 30*time.Second)
	geo, err := geoindex.Load(loadCtx)
	cancel()
	if err != nil {
		return fmt.Errorf("load airport catalogue: %w", err)
	}
	slog.Info("airport index loaded", "count", geo.Len())

	reg := regclient.New(cfg.API.BaseURI)

	fdb, err := flightdb.Init(filepath.Join(cfg.Track.Folder, "flights.db"))
	if err != nil {
		return fmt.Errorf("open flight summary db: %w", err)
	}
	defer fdb.Close()

	checks := []probe.Check{
		{
			Name:  "track storage",
			Fatal: true,
			Run: func(context.Context) error {
				return os.MkdirAll(cfg.Track.Folder, 0o755)
			},
		},
		{
			Name:  "airport index",
			Fatal: true,
			Run: func(context.Context) error {
				if geo.Len() == 0 {
					return fmt.Errorf("empty airport catalogue")
				}
				return nil
			},
		},
		{
			Name:  "flight summary db",
			Fatal: true,
			Run: func(ctx context.Context) error {
				return fdb.PingContext(ctx)
			},
		},
	}
	if err := probe.RunAll(ctx, checks); err != nil {
		return fmt.Errorf("startup checks failed: %w", err)
	}

	srv := server.New(store, geo, reg, fdb)

	grpcServer := grpc.NewServer()
	trackpb.RegisterTrackServiceServer(grpcServer, srv)

	lis, err := net.Listen("tcp", cfg.Service.Bind)
	if err != nil {
		return fmt.Errorf("listen on %s: %w", cfg.Service.Bind, err)
	}

	group, gctx := errgroup.WithContext(ctx)
	group.Go(func() error {
		slog.Info("serving", "addr", cfg.Service.Bind)
		if err := grpcServer.Serve(lis); err != nil {
			return fmt.Errorf("serve: %w", err)
		}
		return nil
	})

	group.Go(func() error {
		return awaitShutdown(gctx, grpcServer)
	})

	err = group.Wait()
	for id, st := range srv.Stats().Snapshot() {
		slog.Warn("flight still active at shutdown",
			"flight_id", id, "points", st.PointsAppended, "touchdowns", st.TouchDownsAppended)
	}
	return err
}

// awaitShutdown blocks until ctx is canceled or the process receives
// SIGINT/SIGTERM, then gracefully stops srv.
func awaitShutdown(ctx context.Context, srv *grpc.Server) error {
	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, os.Interrupt, syscall.SIGTERM)
	defer signal.Stop(sigCh)

	select {
	case <-ctx.Done():
	case sig := <-sigCh:
		slog.Info("shutting down", "signal", sig.String())
	}

	stopped := make(chan struct{})
	go func() {
		srv.GracefulStop()
		close(stopped)
	}()

	select {
	case <-stopped:
	case <-time.After(10 * time.Second):
		srv.Stop()
	}
	return nil
}
