package bootstrap

import (
	"context"
	"log/slog"

	"lab-scheduler/internal/pkg/config"
	"lab-scheduler/internal/usecase/commands"

	"github.com/go-co-op/gocron/v2"
	"go.uber.org/fx"
)

var SweeperModule = fx.Module("sweeper",
	fx.Invoke(StartCompletionSweeper),
)

// StartCompletionSweeper runs the completion sweep on a fixed interval so
// approved bookings whose end time passed become completed without waiting
// for a request to trigger it.
func StartCompletionSweeper(lc fx.Lifecycle, cfg config.Config, scheduler commands.SchedulerCommands) error {
	s, err := gocron.NewScheduler()
	if err != nil {
		return err
	}

	_, err = s.NewJob(
		gocron.DurationJob(cfg.Sweep.Interval),
		gocron.NewTask(func(ctx context.Context) {
			count, err := scheduler.SweepCompletions(ctx)
			if err != nil {
				slog.Error("completion sweep failed", "error", err.Error())
				return
			}
			if count > 0 {
				slog.Info("completion sweep finished", "completed", count)
			}
		}),
	)
	if err != nil {
		return err
	}

	lc.Append(fx.Hook{
		OnStart: func(_ context.Context) error {
			s.Start()
			return nil
		},
		OnStop: func(_ context.Context) error {
			return s.Shutdown()
		},
	})

	return nil
}
