package main

import (
	"context"
	"flag"
	"fmt"
	"log"
	"os"
	"os/signal"

	"github.com/kdepim/akonadi.go/contrib/wiredump"
)

func main() {
	configPath := flag.String("config", "", "YAML config file (WIREDUMP_* env vars override it)")
	input := flag.String("input", "", "Captured server responses, - for stdin")
	output := flag.String("output", "", "Output file path, - for stdout")
	format := flag.String("format", "", "Output format: json or cbor")
	payloadDir := flag.String("payload-dir", "", "Base directory of [FILE] payloads")
	maxLiteral := flag.Int("max-literal-size", 0, "Largest literal accepted, in bytes")
	dir := flag.String("dir", "", "Base directory for output (prefixes output path)")
	logFile := flag.String("log-file", "", "Log file path (default stderr)")
	verbose := flag.Bool("verbose", false, "Enable verbose logging")
	flag.Parse()

	config, err := wiredump.LoadConfig(*configPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}

	// Flags given on the command line win over file and environment
	flag.Visit(func(f *flag.Flag) {
		switch f.Name {
		case "input":
			config.Input = *input
		case "output":
			config.Output = *output
		case "format":
			config.Format = *format
		case "payload-dir":
			config.PayloadDir = *payloadDir
		case "max-literal-size":
			config.MaxLiteralSize = *maxLiteral
		case "dir":
			config.Dir = *dir
		case "log-file":
			config.LogFile = *logFile
		case "verbose":
			config.Verbose = *verbose
		}
	})

	if err := config.Validate(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		flag.Usage()
		os.Exit(1)
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	if err := wiredump.Do(ctx, config); err != nil {
		log.Fatal(err)
	}
}
