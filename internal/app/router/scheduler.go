package router

import (
	"context"

	"github.com/robfig/cron/v3"
	"go.uber.org/zap"
)

const waitSeconds = 30

// Schedule refreshes the cached playlist and guide on the given cron spec.
func Schedule(ctx context.Context, gen *generator, spec string) error {
	c := cron.New()
	_, err := c.AddFunc(spec, func() {
		logger.Info("Start executing the scheduled refresh.")

		if err := refreshWithRetry(ctx, gen, 3); err != nil {
			logger.Error("Failed to refresh the guide.", zap.Error(err))
			return
		}

		logger.Info("The scheduled refresh has been completed.")
	})
	if err != nil {
		return err
	}
	c.Start()

	go func() {
		<-ctx.Done()
		c.Stop()
		logger.Info("The refresh scheduler has been stopped.")
	}()

	return nil
}
