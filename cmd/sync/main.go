package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/cobra"

	"github.com/openscout/frc-sync/internal/app"
	"github.com/openscout/frc-sync/internal/config"
	"github.com/openscout/frc-sync/internal/interfaces/status"
	"github.com/openscout/frc-sync/internal/observability"
	"github.com/openscout/frc-sync/internal/platform/logging"
	"github.com/openscout/frc-sync/internal/usecase"
)

func main() {
	if err := newRootCmd().Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func newRootCmd() *cobra.Command {
	root := &cobra.Command{
		Use:           "frc-sync",
		Short:         "Replicates FRC competition data from The Blue Alliance into Postgres",
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	root.AddCommand(
		newFlowCmd("full", "Sync every competition year from 1992 onward", usecase.TierFull),
		newFlowCmd("live", "Sync match data for events running right now", usecase.TierLive),
		newFlowCmd("year", "Sync the current competition year outside event windows", usecase.TierYear),
		newServeCmd(),
	)

	return root
}

func newFlowCmd(use, short string, tier usecase.Tier) *cobra.Command {
	return &cobra.Command{
		Use:   use,
		Short: short,
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			rt, err := setup()
			if err != nil {
				return err
			}
			defer rt.teardown()

			ctx, stop := signal.NotifyContext(cmd.Context(), syscall.SIGINT, syscall.SIGTERM)
			defer stop()

			startedAt := time.Now()
			if err := runFlow(ctx, rt.app, tier); err != nil {
				rt.logger.Error("sync flow failed", "flow", string(tier), "error", err)
				return err
			}

			rt.logger.Info("sync flow finished",
				"flow", string(tier),
				"duration", time.Since(startedAt).String(),
			)
			return nil
		},
	}
}

func newServeCmd() *cobra.Command {
	var (
		tierName string
		interval time.Duration
	)

	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Run a sync flow on an interval and expose run status over HTTP",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			tier, err := usecase.ParseTier(tierName)
			if err != nil {
				return err
			}
			if interval <= 0 {
				return fmt.Errorf("interval must be > 0")
			}

			rt, err := setup()
			if err != nil {
				return err
			}
			defer rt.teardown()

			ctx, stop := signal.NotifyContext(cmd.Context(), syscall.SIGINT, syscall.SIGTERM)
			defer stop()

			tracker := status.NewTracker()
			statusSrv := status.NewServer(status.Options{
				ServiceName:    rt.cfg.ServiceName,
				ServiceVersion: rt.cfg.ServiceVersion,
				ReadTimeout:    rt.cfg.StatusReadTimeout,
				WriteTimeout:   rt.cfg.StatusWriteTimeout,
			}, tracker, rt.logger)

			serveErr := make(chan error, 1)
			go func() {
				serveErr <- statusSrv.ListenAndServe(rt.cfg.StatusAddr)
			}()

			go runLoop(ctx, rt, tier, interval, tracker)

			select {
			case err := <-serveErr:
				if err != nil {
					return fmt.Errorf("status server: %w", err)
				}
			case <-ctx.Done():
			}

			shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
			defer cancel()
			if err := statusSrv.Shutdown(shutdownCtx); err != nil {
				rt.logger.Error("status server shutdown failed", "error", err)
			}
			return nil
		},
	}

	cmd.Flags().StringVar(&tierName, "tier", string(usecase.TierLive), "sync tier to run (full, live, year)")
	cmd.Flags().DurationVar(&interval, "interval", 5*time.Minute, "delay between sync runs")

	return cmd
}

func runLoop(ctx context.Context, rt *runtime, tier usecase.Tier, interval time.Duration, tracker *status.Tracker) {
	for {
		startedAt := time.Now()
		err := runFlow(ctx, rt.app, tier)
		tracker.Record(string(tier), startedAt, time.Now(), err)
		if err != nil {
			rt.logger.Error("sync flow failed", "flow", string(tier), "error", err)
		} else {
			rt.logger.Info("sync flow finished",
				"flow", string(tier),
				"duration", time.Since(startedAt).String(),
			)
		}

		select {
		case <-ctx.Done():
			return
		case <-time.After(interval):
		}
	}
}

func runFlow(ctx context.Context, application *app.App, tier usecase.Tier) error {
	switch tier {
	case usecase.TierFull:
		return application.Sync.RunFull(ctx)
	case usecase.TierLive:
		return application.Sync.RunLive(ctx)
	default:
		return application.Sync.RunYear(ctx)
	}
}

type runtime struct {
	cfg      config.Config
	logger   *logging.Logger
	app      *app.App
	cleanups []func()
}

func setup() (*runtime, error) {
	_ = godotenv.Load()

	cfg, err := config.Load()
	if err != nil {
		return nil, fmt.Errorf("load config: %w", err)
	}

	logger := logging.NewJSON(logging.Options{
		Level:       cfg.LogLevel,
		FilePath:    cfg.LogFilePath,
		MaxSizeMB:   cfg.LogFileMaxSizeMB,
		MaxBackups:  cfg.LogFileMaxBackups,
		MaxAgeDays:  cfg.LogFileMaxAgeDays,
		CompressOld: cfg.LogFileCompress,
	})
	logging.SetDefault(logger)

	rt := &runtime{cfg: cfg, logger: logger}
	rt.cleanups = append(rt.cleanups, func() { _ = logger.Sync() })

	shutdownUptrace, err := observability.InitUptrace(cfg, logger)
	if err != nil {
		rt.teardown()
		return nil, fmt.Errorf("init uptrace: %w", err)
	}
	rt.cleanups = append(rt.cleanups, func() {
		ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		if err := shutdownUptrace(ctx); err != nil {
			logger.Error("uptrace shutdown failed", "error", err)
		}
	})

	stopPyroscope, err := observability.InitPyroscope(cfg, logger)
	if err != nil {
		rt.teardown()
		return nil, fmt.Errorf("init pyroscope: %w", err)
	}
	rt.cleanups = append(rt.cleanups, func() {
		if err := stopPyroscope(); err != nil {
			logger.Error("pyroscope stop failed", "error", err)
		}
	})

	pprofSrv, err := observability.StartPprofServer(cfg, logger)
	if err != nil {
		rt.teardown()
		return nil, fmt.Errorf("start pprof: %w", err)
	}
	rt.cleanups = append(rt.cleanups, func() {
		if err := observability.StopPprofServer(pprofSrv, logger, 5*time.Second); err != nil {
			logger.Error("pprof shutdown failed", "error", err)
		}
	})

	application, err := app.New(cfg, logger)
	if err != nil {
		rt.teardown()
		return nil, fmt.Errorf("build app: %w", err)
	}
	rt.app = application
	rt.cleanups = append(rt.cleanups, func() {
		if err := application.Close(); err != nil {
			logger.Error("close database failed", "error", err)
		}
	})

	return rt, nil
}

// teardown runs cleanups newest-first so the database closes before the
// telemetry exporters flush.
func (rt *runtime) teardown() {
	for i := len(rt.cleanups) - 1; i >= 0; i-- {
		rt.cleanups[i]()
	}
	rt.cleanups = nil
}
