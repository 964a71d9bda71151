package logging

import (
	"io"
	"os"
	"path/filepath"
	"sync"

	"github.com/grovetools/jjprompt/config"
	"github.com/mattn/go-isatty"
	"github.com/sirupsen/logrus"
)

var (
	loggers   = make(map[string]*logrus.Entry)
	loggersMu sync.Mutex
	verbose   bool
)

// NewLogger creates and returns a pre-configured logger for a specific component.
// It uses a singleton pattern per component to avoid re-initializing.
//
// Unlike a daemon, a prompt helper owns neither stdout nor stderr: stdout is
// the prompt segment the shell renders, and stderr may be captured alongside
// it. All loggers therefore discard output unless debugging is requested via
// JJPROMPT_DEBUG=1, JJPROMPT_LOG_LEVEL, a configured sink, or SetVerbose.
func NewLogger(component string) *logrus.Entry {
	loggersMu.Lock()
	defer loggersMu.Unlock()

	if logger, exists := loggers[component]; exists {
		return logger
	}

	logger := logrus.New()

	// Load the logging section from jjprompt.yaml, if present
	var logCfg Config
	if cfg, err := config.LoadDefault(); err == nil {
		// Decoding failures fall back to defaults; there is nowhere
		// safe to report them from here
		_ = cfg.UnmarshalExtension("logging", &logCfg)
	}

	// Configure Level
	levelStr := "info"
	envLevel := os.Getenv("JJPROMPT_LOG_LEVEL")
	if envLevel != "" {
		levelStr = envLevel
	} else if logCfg.Level != "" {
		levelStr = logCfg.Level
	}
	level, err := logrus.ParseLevel(levelStr)
	if err != nil {
		level = logrus.InfoLevel
	}
	if verbose {
		level = logrus.DebugLevel
	}
	logger.SetLevel(level)

	// Configure Caller Reporting
	if os.Getenv("JJPROMPT_LOG_CALLER") == "true" || logCfg.ReportCaller {
		logger.SetReportCaller(true)
	}

	// Configure Formatter
	interactive := isatty.IsTerminal(os.Stderr.Fd()) || isatty.IsCygwinTerminal(os.Stderr.Fd())
	switch logCfg.Format.Preset {
	case "json":
		logger.SetFormatter(&logrus.JSONFormatter{})
	case "simple":
		logger.SetFormatter(&TextFormatter{Config: FormatConfig{
			DisableTimestamp: true,
			DisableComponent: true,
		}, DisableColors: !interactive})
	default:
		logger.SetFormatter(&TextFormatter{Config: logCfg.Format, DisableColors: !interactive})
	}

	// Configure Output Sinks
	var writers []io.Writer

	// File sink, strictly opt-in
	logFilePath := os.Getenv("JJPROMPT_LOG_FILE")
	if logFilePath == "" && logCfg.File.Enabled && logCfg.File.Path != "" {
		logFilePath = expandPath(logCfg.File.Path)
	}
	if logFilePath != "" {
		if err := os.MkdirAll(filepath.Dir(logFilePath), 0755); err == nil {
			file, err := os.OpenFile(logFilePath, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0666)
			if err == nil {
				writers = append(writers, file)
			}
		}
	}

	// Stderr sink
	shouldLogToStderr := false
	stderrMode := "auto"
	if logCfg.Format.StructuredToStderr != "" {
		stderrMode = logCfg.Format.StructuredToStderr
	}

	switch stderrMode {
	case "always":
		shouldLogToStderr = true
	case "never":
		shouldLogToStderr = false
	case "auto":
		// Only an explicit debugging signal turns stderr on. The shell
		// invoking this process treats its output as prompt content, so
		// normal rendering must stay silent.
		isDebug := os.Getenv("JJPROMPT_DEBUG") == "1" ||
			envLevel != "" ||
			logger.GetLevel() == logrus.DebugLevel
		shouldLogToStderr = isDebug || verbose
	}

	if shouldLogToStderr {
		writers = append(writers, os.Stderr)
	}

	// Configure the output based on the number of writers
	if len(writers) == 0 {
		logger.SetOutput(io.Discard)
	} else if len(writers) == 1 {
		logger.SetOutput(writers[0])
	} else {
		logger.SetOutput(io.MultiWriter(writers...))
	}

	entry := logger.WithField("component", component)
	loggers[component] = entry
	return entry
}

// SetVerbose routes every component logger, existing and future, to stderr
// at debug level. Wired to the --verbose flag.
func SetVerbose(enabled bool) {
	loggersMu.Lock()
	defer loggersMu.Unlock()

	verbose = enabled
	if !enabled {
		return
	}
	for _, entry := range loggers {
		entry.Logger.SetLevel(logrus.DebugLevel)
		entry.Logger.SetOutput(os.Stderr)
	}
}

// expandPath expands tilde in file paths
func expandPath(path string) string {
	if len(path) > 0 && path[0] == '~' {
		home, err := os.UserHomeDir()
		if err == nil {
			return filepath.Join(home, path[1:])
		}
	}
	return path
}
