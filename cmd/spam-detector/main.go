package main

import (
	"bufio"
	"context"
	"fmt"
	"io"
	"net/mail"
	"os"
	"strings"
	"time"

	"github.com/mikey/bayes-spam-classifier/internal/core"
	"github.com/mikey/bayes-spam-classifier/internal/di"
	"go.uber.org/zap"
)

func main() {
	flags := di.ParseFlags()

	// Build the dependency injection container
	container, err := di.BuildCLIContainer(flags)
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

// run classifies a single email read from a file or stdin
func run(logger *zap.Logger, flags *di.CLIFlags, service *core.ClassifierService, cacheRepo core.CacheRepository) error {
	defer logger.Sync()

	// Stop cache cleanup routines on exit
	if stopper, ok := cacheRepo.(interface{ Stop() }); ok {
		defer stopper.Stop()
	}

	// Read email from file or stdin
	var emailReader io.Reader
	if flags.InputFile != "" {
		file, err := os.Open(flags.InputFile)
		if err != nil {
			logger.Error("Failed to open input file", zap.Error(err), zap.String("file", flags.InputFile))
			return err
		}
		defer file.Close()
		emailReader = file
		logger.Info("Reading email from file", zap.String("file", flags.InputFile))
	} else {
		emailReader = os.Stdin
		logger.Info("Reading email from stdin")
	}

	// Parse email
	msg, err := mail.ReadMessage(bufio.NewReader(emailReader))
	if err != nil {
		logger.Error("Failed to parse email", zap.Error(err))
		return err
	}

	// Extract email content
	from := msg.Header.Get("From")
	to := msg.Header.Get("To")
	subject := msg.Header.Get("Subject")

	// Read body
	bodyBytes, err := io.ReadAll(msg.Body)
	if err != nil {
		logger.Error("Failed to read email body", zap.Error(err))
		return err
	}
	body := string(bodyBytes)

	// Create message object
	message := &core.Message{
		From:    from,
		To:      strings.Split(to, ","),
		Subject: subject,
		Body:    body,
		Headers: make(map[string][]string),
	}

	// Copy headers
	for k, v := range msg.Header {
		message.Headers[k] = v
	}

	// Print email summary
	fmt.Printf("\n=== Email Summary ===\n")
	fmt.Printf("From: %s\n", from)
	fmt.Printf("To: %s\n", to)
	fmt.Printf("Subject: %s\n", subject)
	fmt.Printf("Body length: %d bytes\n", len(body))
	fmt.Printf("\n")

	// Classify email
	fmt.Printf("=== Analysis ===\n")
	fmt.Printf("Model: %s\n", flags.ModelPath)
	fmt.Printf("Spam threshold: %.2f\n", flags.SpamThreshold)

	startTime := time.Now()
	result, err := service.Classify(context.Background(), message)
	if err != nil {
		logger.Error("Failed to classify email", zap.Error(err))
		return err
	}
	duration := time.Since(startTime)

	// Print results
	fmt.Printf("\n=== Results ===\n")
	fmt.Printf("Is spam: %t\n", result.IsSpam)
	fmt.Printf("Spam score: %.4f\n", result.Score)
	fmt.Printf("Confidence: %.4f\n", result.Confidence)
	fmt.Printf("Explanation: %s\n", result.Explanation)
	fmt.Printf("Model used: %s\n", result.ModelUsed)
	fmt.Printf("Processing time: %v\n", duration)

	return nil
}
