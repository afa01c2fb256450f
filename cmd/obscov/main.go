package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"os"
	"path/filepath"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"

	"github.com/fishwatch/obscov/internal/config"
	"github.com/fishwatch/obscov/internal/simulate"
	"github.com/fishwatch/obscov/internal/solver"
	"github.com/fishwatch/obscov/pkg/constants"
	"github.com/fishwatch/obscov/pkg/distribution"
	"github.com/fishwatch/obscov/pkg/output"
)

// parseLogLevel maps a config or CLI level name onto a zap level. An
// empty name defaults to info.
func parseLogLevel(level string) (zapcore.Level, error) {
	switch level {
	case "", "info":
		return zapcore.InfoLevel, nil
	case "debug":
		return zapcore.DebugLevel, nil
	case "warn", "warning":
		return zapcore.WarnLevel, nil
	case "error":
		return zapcore.ErrorLevel, nil
	}
	return zapcore.InfoLevel, fmt.Errorf("invalid log level: %s", level)
}

// ensureLogFile creates the log directory if needed and verifies the
// file is writable before zap opens it.
func ensureLogFile(path string) error {
	if dir := filepath.Dir(path); dir != "." {
		if err := os.MkdirAll(dir, 0755); err != nil {
			return fmt.Errorf("failed to create log directory %s: %v", dir, err)
		}
	}
	file, err := os.OpenFile(path, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0644)
	if err != nil {
		return fmt.Errorf("failed to open log file %s: %v", path, err)
	}
	return file.Close()
}

// initializeLogger creates a zap logger based on configuration and CLI override
func initializeLogger(loggingConfig config.LoggingConfig, logLevelOverride string) (*zap.Logger, error) {
	// CLI override takes precedence over the config file.
	level := loggingConfig.Level
	if logLevelOverride != "" {
		level = logLevelOverride
	}
	zapLevel, err := parseLogLevel(level)
	if err != nil {
		return nil, err
	}

	var zapConfig zap.Config
	switch loggingConfig.Format {
	case "console":
		zapConfig = zap.NewDevelopmentConfig()
	case "", "json":
		zapConfig = zap.NewProductionConfig()
	default:
		return nil, fmt.Errorf("invalid log format: %s", loggingConfig.Format)
	}
	zapConfig.Level = zap.NewAtomicLevelAt(zapLevel)

	if loggingConfig.OutputFile != "" {
		if err := ensureLogFile(loggingConfig.OutputFile); err != nil {
			return nil, err
		}
		zapConfig.OutputPaths = []string{loggingConfig.OutputFile}
		zapConfig.ErrorOutputPaths = []string{loggingConfig.OutputFile}
	}

	return zapConfig.Build()
}

func main() {
	// Process command line flags first to get config location
	configLocation := flag.String("config", constants.DefaultConfigFile, "path to configuration file")
	outputFormatFlag := flag.String("output-format", "", "type of output override: pretty, csv")
	logLevel := flag.String("log-level", "", "log level override (debug, info, warn, error)")
	flag.Parse()

	// Load the config file to get logging configuration
	conf, err := config.LoadConfiguration(*configLocation)
	if err != nil {
		fmt.Printf("{\"op\": \"main\", \"level\": \"fatal\", \"msg\": \"failed to load configuration at %s\", \"error\": \"%v\"}\n", *configLocation, err)
		return
	}

	// Initialize logging based on config and CLI override
	logger, err := initializeLogger(conf.Logging, *logLevel)
	if err != nil {
		fmt.Printf("{\"op\": \"main\", \"level\": \"fatal\", \"msg\": \"failed to initialize logger\", \"error\": \"%v\"}\n", err)
		return
	}
	defer func() {
		_ = logger.Sync()
	}()

	// Determine output format (CLI override takes precedence over config)
	outputFormat := conf.Output.Format
	if *outputFormatFlag != "" {
		outputFormat = *outputFormatFlag
	}
	if outputFormat == "" {
		outputFormat = constants.OutputFormatPretty
	}
	if outputFormat != constants.OutputFormatPretty && outputFormat != constants.OutputFormatCSV {
		logger.Fatal(fmt.Sprintf("invalid output format: %s", outputFormat),
			zap.String("op", "main"),
		)
	}

	// Validate configuration and display any warnings
	warnings := conf.ValidateConfiguration()
	for _, warning := range warnings {
		logger.Warn("Configuration warning: "+warning,
			zap.String("op", "main"),
		)
	}

	// Run the simulation to get the coverage projection.
	progress := func(done, total int) {
		logger.Debug("simulation progress",
			zap.String("op", "main"),
			zap.Int("done", done),
			zap.Int("total", total),
		)
	}
	results, err := simulate.Run(context.Background(), logger, conf.Request(), progress)
	if err != nil {
		logger.Fatal("failed to run simulation",
			zap.String("op", "main"),
			zap.Error(err),
		)
	}

	// Handle output.
	switch outputFormat {
	case constants.OutputFormatPretty:
		output.PrettyFormat(results)
	case constants.OutputFormatCSV:
		output.CsvFormat(results)
	}

	// Solve whichever targets are configured and report recommendations.
	recommended := false
	diagnosticUnits := conf.Simulation.TotalEffort
	if conf.Targets.CV > 0 {
		target, err := solver.MinCoverageForCV(logger, results, conf.Targets.CV)
		switch {
		case errors.Is(err, solver.ErrTargetUnattainable):
			fmt.Printf("Target CV %.2f is not attainable at any coverage up to 100%%.\n", conf.Targets.CV)
		case err != nil:
			logger.Fatal("failed to solve CV target",
				zap.String("op", "main"),
				zap.Error(err),
			)
		default:
			fmt.Println(output.CVRecommendation(target, conf.Targets.CV, results.Request.Percentile))
			recommended = true
			diagnosticUnits = target.Units
		}
	}
	if conf.Targets.DetectionProbability > 0 {
		target, err := solver.MinCoverageForDetection(logger, conf.Simulation.TotalEffort,
			conf.Simulation.BycatchRate, conf.Simulation.Dispersion, conf.Targets.DetectionProbability)
		switch {
		case errors.Is(err, solver.ErrTargetUnattainable):
			fmt.Printf("Target detection probability %.0f%% is not attainable at any coverage up to 100%%.\n", conf.Targets.DetectionProbability)
		case err != nil:
			logger.Fatal("failed to solve detection-probability target",
				zap.String("op", "main"),
				zap.Error(err),
			)
		default:
			fmt.Println(output.DetectionRecommendation(target, conf.Targets.DetectionProbability))
			recommended = true
			diagnosticUnits = target.Units
		}
	}
	if conf.Targets.Confidence > 0 {
		ucl, err := distribution.UpperConfLimitZero(diagnosticUnits, conf.Simulation.Dispersion, conf.Targets.Confidence)
		if err != nil {
			logger.Fatal("failed to compute upper confidence limit",
				zap.String("op", "main"),
				zap.Error(err),
			)
		}
		fmt.Println(output.UCLNotice(diagnosticUnits, conf.Targets.Confidence, ucl))
	}
	if recommended {
		fmt.Println(output.Caveat())
	}
}
