package main

import (
	"context"
	"flag"
	"fmt"
	"net/http"
	"os"
	"path/filepath"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"

	"github.com/iwvelando/advisor-forecast/internal/config"
	"github.com/iwvelando/advisor-forecast/internal/report"
	"github.com/iwvelando/advisor-forecast/internal/server"
	"github.com/iwvelando/advisor-forecast/internal/store"
	"github.com/iwvelando/advisor-forecast/pkg/constants"
	"github.com/iwvelando/advisor-forecast/pkg/output"
	"github.com/iwvelando/advisor-forecast/pkg/validation"
)

// version is set at build time with -ldflags "-X main.version=...".
var version = "dev"

// initializeLogger creates a zap logger based on configuration and CLI override
func initializeLogger(loggingConfig config.LoggingConfig, logLevelOverride string) (*zap.Logger, error) {
	// Determine log level (CLI override takes precedence)
	level := loggingConfig.Level
	if logLevelOverride != "" {
		level = logLevelOverride
	}
	if level == "" {
		level = "info"
	}

	var zapLevel zapcore.Level
	switch level {
	case "debug":
		zapLevel = zapcore.DebugLevel
	case "info":
		zapLevel = zapcore.InfoLevel
	case "warn", "warning":
		zapLevel = zapcore.WarnLevel
	case "error":
		zapLevel = zapcore.ErrorLevel
	default:
		return nil, fmt.Errorf("invalid log level: %s", level)
	}

	format := loggingConfig.Format
	if format == "" {
		format = "json"
	}

	var config zap.Config
	switch format {
	case "console":
		config = zap.NewDevelopmentConfig()
	case "json":
		config = zap.NewProductionConfig()
	default:
		return nil, fmt.Errorf("invalid log format: %s", format)
	}
	config.Level = zap.NewAtomicLevelAt(zapLevel)

	if loggingConfig.OutputFile != "" {
		if dir := filepath.Dir(loggingConfig.OutputFile); dir != "." {
			if err := os.MkdirAll(dir, 0755); err != nil {
				return nil, fmt.Errorf("failed to create log directory %s: %v", dir, err)
			}
		}

		// Fail early rather than on the first log line.
		file, err := os.OpenFile(loggingConfig.OutputFile, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0644)
		if err != nil {
			return nil, fmt.Errorf("failed to open log file %s: %v", loggingConfig.OutputFile, err)
		}
		_ = file.Close()

		config.OutputPaths = []string{loggingConfig.OutputFile}
		config.ErrorOutputPaths = []string{loggingConfig.OutputFile}
	}

	return config.Build()
}

func main() {
	configLocation := flag.String("config", constants.DefaultConfigFile, "path to client file")
	outputFormatFlag := flag.String("output-format", "", "type of output override: pretty, csv, json")
	logLevel := flag.String("log-level", "", "log level override (debug, info, warn, error)")
	year := flag.Int("year", 0, "compute the report as of this year instead of currentYear")
	serve := flag.Bool("serve", false, "run the HTTP API instead of printing a report")
	serverConfig := flag.String("server-config", constants.DefaultServerConfigFile, "path to server configuration file")
	maxUploadSize := flag.String("max-upload-size", "", "upload limit override for -serve (e.g. 512K, 2M)")
	flag.Parse()

	if *serve {
		runServer(*serverConfig, *logLevel, *maxUploadSize)
		return
	}

	conf, err := config.LoadConfiguration(*configLocation)
	if err != nil {
		fmt.Printf("{\"op\": \"main\", \"level\": \"fatal\", \"msg\": \"failed to load client file at %s\", \"error\": \"%v\"}\n", *configLocation, err)
		os.Exit(1)
	}

	logger, err := initializeLogger(conf.Logging, *logLevel)
	if err != nil {
		fmt.Printf("{\"op\": \"main\", \"level\": \"fatal\", \"msg\": \"failed to initialize logger\", \"error\": \"%v\"}\n", err)
		os.Exit(1)
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

	if err := validation.ValidateOutputFormat(outputFormat); err != nil {
		logger.Fatal(err.Error(),
			zap.String("op", "main"),
		)
	}

	if *year > 0 {
		conf.CurrentYear = *year
	}

	for _, warning := range conf.ValidateConfiguration() {
		logger.Warn("Configuration warning: "+warning,
			zap.String("op", "main"),
		)
	}

	client, err := conf.ToClient()
	if err != nil {
		logger.Fatal("failed to normalize client",
			zap.String("op", "main"),
			zap.Error(err),
		)
	}

	results, err := report.GenerateWithFixedYear(logger, client, conf.Year())
	if err != nil {
		logger.Fatal("failed to compute report",
			zap.String("op", "main"),
			zap.Error(err),
		)
	}

	switch outputFormat {
	case constants.OutputFormatPretty:
		output.PrettyFormat(os.Stdout, results)
	case constants.OutputFormatCSV:
		err = output.CsvFormat(os.Stdout, results)
	case constants.OutputFormatJSON:
		err = output.JSONFormat(os.Stdout, results)
	}
	if err != nil {
		logger.Fatal("failed to write report",
			zap.String("op", "main"),
			zap.Error(err),
		)
	}
}

func runServer(path, logLevel, maxUploadSize string) {
	cfg, err := server.LoadConfig(path)
	if err != nil {
		fmt.Printf("{\"op\": \"main.runServer\", \"level\": \"fatal\", \"msg\": \"failed to load server config at %s\", \"error\": \"%v\"}\n", path, err)
		os.Exit(1)
	}
	if maxUploadSize != "" {
		size, err := server.ParseSize(maxUploadSize)
		if err != nil {
			fmt.Printf("{\"op\": \"main.runServer\", \"level\": \"fatal\", \"msg\": \"invalid -max-upload-size\", \"error\": \"%v\"}\n", err)
			os.Exit(1)
		}
		cfg.SetUploadSizeBytes(size)
	}

	logger, err := initializeLogger(cfg.Logging, logLevel)
	if err != nil {
		fmt.Printf("{\"op\": \"main.runServer\", \"level\": \"fatal\", \"msg\": \"failed to initialize logger\", \"error\": \"%v\"}\n", err)
		os.Exit(1)
	}
	defer func() {
		_ = logger.Sync()
	}()

	repo := store.NewMemory(logger)
	if _, err := cfg.SeedClients(context.Background(), logger, repo); err != nil {
		logger.Fatal("failed to load clients",
			zap.String("op", "main.runServer"),
			zap.Error(err),
		)
	}

	handler := server.NewHandlerWithFixedYear(logger, repo, cfg.UploadSizeBytes(), version, cfg.CurrentYear)
	logger.Info("listening",
		zap.String("op", "main.runServer"),
		zap.String("address", cfg.Address),
		zap.Int("clients", len(repo.IDs())),
	)
	if err := http.ListenAndServe(cfg.Address, handler); err != nil {
		logger.Fatal("server stopped",
			zap.String("op", "main.runServer"),
			zap.Error(err),
		)
	}
}
