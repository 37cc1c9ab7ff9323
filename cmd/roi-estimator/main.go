package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/iwvelando/docuflow-roi/internal/config"
	"github.com/iwvelando/docuflow-roi/internal/logging"
	"github.com/iwvelando/docuflow-roi/internal/scenario"
	"github.com/iwvelando/docuflow-roi/pkg/constants"
	"github.com/iwvelando/docuflow-roi/pkg/output"
	"github.com/iwvelando/docuflow-roi/pkg/validation"
	"go.uber.org/zap"
)

func main() {
	// Process command line flags first to get config location
	configLocation := flag.String("config", constants.DefaultConfigFile, "path to configuration file")
	outputFormatFlag := flag.String("output-format", "", "type of output override: pretty, csv, json")
	logLevel := flag.String("log-level", "", "log level override (debug, info, warn, error)")
	watch := flag.Bool("watch", false, "re-run the estimates whenever the configuration file changes")
	flag.Parse()

	// Load the config file to get logging configuration
	conf, err := config.LoadConfiguration(*configLocation)
	if err != nil {
		fmt.Printf("{\"op\": \"main\", \"level\": \"fatal\", \"msg\": \"failed to load configuration at %s\", \"error\": \"%v\"}\n", *configLocation, err)
		os.Exit(1)
	}

	// Initialize logging based on config and CLI override
	logger, err := logging.New(conf.Logging, *logLevel)
	if err != nil {
		fmt.Printf("{\"op\": \"main\", \"level\": \"fatal\", \"msg\": \"failed to initialize logger\", \"error\": \"%v\"}\n", err)
		os.Exit(1)
	}
	defer func() {
		_ = logger.Sync()
	}()

	if !*watch {
		if err := run(logger, conf, *outputFormatFlag); err != nil {
			logger.Fatal("failed to estimate scenarios",
				zap.String("op", "main"),
				zap.Error(err),
			)
		}
		return
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	// Reloads keep the logger built from the initial configuration.
	err = config.Watch(ctx, *configLocation, logger, func(conf *config.Configuration) {
		if err := run(logger, conf, *outputFormatFlag); err != nil {
			logger.Error("failed to estimate scenarios",
				zap.String("op", "main"),
				zap.Error(err),
			)
		}
	})
	if err != nil {
		logger.Fatal("failed to watch configuration",
			zap.String("op", "main"),
			zap.Error(err),
		)
	}
}

// run validates conf, estimates every active scenario and writes the results
// to stdout.
func run(logger *zap.Logger, conf *config.Configuration, outputFormatOverride string) error {
	// Determine output format (CLI override takes precedence over config)
	outputFormat := conf.Output.Format
	if outputFormatOverride != "" {
		outputFormat = outputFormatOverride
	}
	if outputFormat == "" {
		outputFormat = constants.OutputFormatPretty
	}

	if err := validation.ValidateOutputFormat(outputFormat); err != nil {
		return err
	}

	// Validate configuration and display any warnings
	warnings := conf.ValidateConfiguration()
	for _, warning := range warnings {
		logger.Warn("Configuration warning: "+warning,
			zap.String("op", "main"),
		)
	}

	results, err := scenario.Evaluate(logger, *conf)
	if err != nil {
		return err
	}

	return output.Write(os.Stdout, outputFormat, results)
}
