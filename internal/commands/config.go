package commands

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/MrLemur/dailycommits/internal/models"
	"github.com/MrLemur/dailycommits/internal/services"
)

// PushEnvVar disables the final push when set to 0 or false
const PushEnvVar = "PUSH_AFTER_RUN"

// LookupEnv has the signature of os.LookupEnv
type LookupEnv func(key string) (string, bool)

// ResolveConfig builds the run configuration from positional arguments
// ([target_file] [min_commits max_commits]) and the push flag in the
// environment. Reversed bounds are swapped rather than rejected.
func ResolveConfig(args []string, lookup LookupEnv) (models.RunConfig, error) {
	cfg := models.RunConfig{
		TargetFile: models.DefaultTargetFile,
		MinCommits: models.DefaultMinCommits,
		MaxCommits: models.DefaultMaxCommits,
	}
	if len(args) > 3 {
		return cfg, fmt.Errorf("%w: expected at most 3 arguments, got %d", services.ErrInvalidArgument, len(args))
	}

	if len(args) > 0 {
		target, err := services.CleanTargetPath(args[0])
		if err != nil {
			return cfg, err
		}
		cfg.TargetFile = target
	}
	if len(args) > 1 {
		n, err := parseBound("min_commits", args[1])
		if err != nil {
			return cfg, err
		}
		cfg.MinCommits = n
	}
	if len(args) > 2 {
		n, err := parseBound("max_commits", args[2])
		if err != nil {
			return cfg, err
		}
		cfg.MaxCommits = n
	}
	if cfg.MinCommits > cfg.MaxCommits {
		cfg.MinCommits, cfg.MaxCommits = cfg.MaxCommits, cfg.MinCommits
	}

	value, ok := lookup(PushEnvVar)
	if !ok {
		value = "1"
	}
	cfg.PushEnabled = pushEnabled(value)
	return cfg, nil
}

func parseBound(name, value string) (int, error) {
	n, err := strconv.Atoi(strings.TrimSpace(value))
	if err != nil {
		return 0, fmt.Errorf("%w: %s must be an integer, got %q", services.ErrInvalidArgument, name, value)
	}
	if n < 0 {
		return 0, fmt.Errorf("%w: %s must not be negative, got %d", services.ErrInvalidArgument, name, n)
	}
	return n, nil
}

func pushEnabled(value string) bool {
	switch strings.ToLower(strings.TrimSpace(value)) {
	case "0", "false":
		return false
	default:
		return true
	}
}
