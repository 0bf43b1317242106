package wiredump

import (
	"context"
	"crypto/sha256"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"time"

	"github.com/rs/zerolog"

	akonadi "github.com/kdepim/akonadi.go"
	"github.com/kdepim/akonadi.go/pkg/logger"
)

// Do executes a decode run based on the provided configuration.
// File output gets a manifest written next to it.
// The configuration should be validated before calling this function.
func Do(ctx context.Context, config *Config) error {
	level := zerolog.InfoLevel
	if config.Verbose {
		level = zerolog.DebugLevel
	}
	logData, err := logger.NewBuild().FromPath(config.LogFile).Level(level).Make()
	if err != nil {
		return fmt.Errorf("failed to open log file: %w", err)
	}
	defer logData.Close()
	log := logData.Handler()

	marshaler, err := MarshalerFor(config.Format)
	if err != nil {
		return err
	}

	helper := akonadi.NewProtocolHelper(
		akonadi.WithLogger(log),
		akonadi.WithPayloadLoader(akonadi.FilePayloadLoader{Dir: config.PayloadDir}),
	)
	dumper := New(helper, marshaler, log)
	dumper.MaxLiteralSize = config.MaxLiteralSize

	in, closeIn, err := openInput(config.Input)
	if err != nil {
		return err
	}
	defer closeIn()

	startTime := time.Now()
	outputPath := config.GetOutputPath()

	if outputPath == Stdio {
		summary, err := dumper.Dump(ctx, in, os.Stdout)
		if err != nil {
			return fmt.Errorf("decode failed: %w", err)
		}
		logSummary(log, summary, time.Since(startTime))
		return nil
	}

	file, err := os.Create(outputPath)
	if err != nil {
		return fmt.Errorf("failed to create output file: %w", err)
	}
	defer file.Close()

	hash := sha256.New()
	summary, err := dumper.Dump(ctx, in, io.MultiWriter(file, hash))
	if err != nil {
		return fmt.Errorf("decode failed: %w", err)
	}

	fileInfo, err := file.Stat()
	if err != nil {
		return fmt.Errorf("failed to get file info: %w", err)
	}

	manifest := &Manifest{
		Filename:  filepath.Base(outputPath),
		Format:    config.Format,
		CreatedAt: startTime,
		Size:      fileInfo.Size(),
		Source:    config.Input,
		Summary:   summary,
		SHA256:    fmt.Sprintf("%x", hash.Sum(nil)),
	}
	if err := WriteManifest(outputPath, manifest); err != nil {
		return fmt.Errorf("failed to write manifest: %w", err)
	}

	logSummary(log, summary, time.Since(startTime))
	if config.Verbose {
		log.Debug("manifest created", "path", outputPath+".manifest.json", "sha256", manifest.SHA256)
	}
	return nil
}

func openInput(path string) (io.Reader, func(), error) {
	if path == Stdio {
		return os.Stdin, func() {}, nil
	}
	f, err := os.Open(path)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to open input: %w", err)
	}
	return f, func() { f.Close() }, nil
}

func logSummary(log logger.Logger, summary Summary, elapsed time.Duration) {
	log.Info("decode completed",
		"items", summary.Items,
		"collections", summary.Collections,
		"skipped", summary.Skipped,
		"errors", summary.Errors,
		"elapsed", elapsed.String(),
	)
}
