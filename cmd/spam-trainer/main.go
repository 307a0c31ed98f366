package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/mikey/bayes-spam-classifier/internal/di"
	"github.com/mikey/bayes-spam-classifier/internal/trainer"
	"go.uber.org/zap"
)

func main() {
	// Build the dependency injection container
	container, err := di.BuildContainer()
	if err != nil {
		fmt.Printf("Failed to build dependency container: %v\n", err)
		os.Exit(1)
	}

	// Run the application
	if err := container.Invoke(run); err != nil {
		fmt.Printf("Application error: %v\n", err)
		os.Exit(1)
	}
}

// run is the main application function that gets all dependencies injected
func run(logger *zap.Logger, t *trainer.Trainer) error {
	defer logger.Sync()

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	if err := t.Run(ctx); err != nil {
		logger.Error("Training pipeline failed", zap.Error(err))
		return err
	}

	logger.Info("Training pipeline complete")
	return nil
}
