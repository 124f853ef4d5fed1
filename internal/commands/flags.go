package commands

import (
	"flag"
	"fmt"
	"os"
	"strconv"

	"github.com/MrLemur/dailycommits/internal/models"
)

var (
	// Command line flags
	Engine          string
	UseTUI          bool
	Verbose         bool
	DebugLogFile    string
	NoteModel       string
	NoteTemperature float64
)

// ParseFlags parses command line flags and returns the positional arguments
func ParseFlags() []string {
	flag.StringVar(&Engine, "engine", envOr("DAILY_COMMITS_ENGINE", EngineExec), "Git engine: exec runs the git binary, gogit uses go-git in-process")
	flag.BoolVar(&UseTUI, "tui", false, "Show progress in a terminal UI")
	flag.BoolVar(&Verbose, "verbose", false, "Log every git command to the console")
	flag.StringVar(&DebugLogFile, "debug-log", "", "Path to output debug log file")
	flag.StringVar(&NoteModel, "note-model", os.Getenv("COMMIT_NOTE_MODEL"), "Ollama model used to add a short note to each activity line (disabled when empty)")
	flag.Float64Var(&NoteTemperature, "note-temperature", envFloat("COMMIT_NOTE_TEMPERATURE", 0.7), "Temperature for note generation (0.0-1.0)")
	flag.Usage = usage
	flag.Parse()
	return flag.Args()
}

func usage() {
	out := flag.CommandLine.Output()
	fmt.Fprintf(out, "Usage: %s [flags] [target_file] [min_commits max_commits]\n\n", os.Args[0])
	fmt.Fprintf(out, "Appends to target_file (default %s) and creates %d to %d commits by default,\n", models.DefaultTargetFile, models.DefaultMinCommits, models.DefaultMaxCommits)
	fmt.Fprintf(out, "each backdated to a random time today, then pushes once.\n\n")
	fmt.Fprintf(out, "Environment:\n  %s  set to 0 or false to skip the final push (default 1)\n\nFlags:\n", PushEnvVar)
	flag.PrintDefaults()
}

func envOr(key, fallback string) string {
	if v, ok := os.LookupEnv(key); ok && v != "" {
		return v
	}
	return fallback
}

func envFloat(key string, fallback float64) float64 {
	v, ok := os.LookupEnv(key)
	if !ok {
		return fallback
	}
	f, err := strconv.ParseFloat(v, 64)
	if err != nil {
		return fallback
	}
	return f
}
