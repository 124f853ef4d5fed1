package ui

import (
	"fmt"
	"os"
	"strings"

	"github.com/rs/zerolog"
)

var (
	consoleLog = zerolog.Nop()
	debugLog   = zerolog.Nop()
	debugFile  *os.File
)

// InitDebugLogging writes debug level JSON logs to path
func InitDebugLogging(path string) error {
	f, err := os.OpenFile(path, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644)
	if err != nil {
		return fmt.Errorf("failed to open debug log %s: %w", path, err)
	}
	debugFile = f
	debugLog = zerolog.New(f).Level(zerolog.DebugLevel).With().Timestamp().Logger()
	return nil
}

// CloseDebugLog flushes and closes the debug log file, if any
func CloseDebugLog() {
	if debugFile == nil {
		return
	}
	debugFile.Sync()
	debugFile.Close()
	debugFile = nil
	debugLog = zerolog.Nop()
}

// SetConsoleLogger sets the logger that receives shell commands on the console
func SetConsoleLogger(logger zerolog.Logger) {
	consoleLog = logger
}

// LogShellCommand logs a git invocation at debug level
func LogShellCommand(command string, args []string, dir string) {
	line := strings.TrimSpace(command + " " + strings.Join(args, " "))
	for _, logger := range []*zerolog.Logger{&consoleLog, &debugLog} {
		logger.Debug().Str("dir", dir).Msgf("$ %s", line)
	}
}

// LogCommandOutput logs the output of a successful git invocation to the debug log
func LogCommandOutput(command string, args []string, output string) {
	output = strings.TrimSpace(output)
	if output == "" {
		return
	}
	debugLog.Debug().
		Str("command", command).
		Strs("args", args).
		Str("output", output).
		Msg("command output")
}

// record mirrors a user facing message into the debug log
func record(level zerolog.Level, msg string) {
	debugLog.WithLevel(level).Msg(msg)
}
