package commands

import (
	"errors"
	"math"
	"testing"

	"github.com/MrLemur/dailycommits/internal/models"
	"github.com/MrLemur/dailycommits/internal/services"
)

func env(vars map[string]string) LookupEnv {
	return func(key string) (string, bool) {
		v, ok := vars[key]
		return v, ok
	}
}

func TestResolveConfig(t *testing.T) {
	tests := []struct {
		name string
		args []string
		env  map[string]string
		want models.RunConfig
	}{
		{
			name: "defaults",
			want: models.RunConfig{TargetFile: "activity.txt", MinCommits: 1, MaxCommits: 10, PushEnabled: true},
		},
		{
			name: "target only",
			args: []string{"logs/daily.md"},
			want: models.RunConfig{TargetFile: "logs/daily.md", MinCommits: 1, MaxCommits: 10, PushEnabled: true},
		},
		{
			name: "exact count",
			args: []string{"activity.txt", "5", "5"},
			want: models.RunConfig{TargetFile: "activity.txt", MinCommits: 5, MaxCommits: 5, PushEnabled: true},
		},
		{
			name: "reversed bounds are swapped",
			args: []string{"notes.md", "10", "1"},
			want: models.RunConfig{TargetFile: "notes.md", MinCommits: 1, MaxCommits: 10, PushEnabled: true},
		},
		{
			name: "single bound keeps default max",
			args: []string{"activity.txt", "4"},
			want: models.RunConfig{TargetFile: "activity.txt", MinCommits: 4, MaxCommits: 10, PushEnabled: true},
		},
		{
			name: "single bound above default max",
			args: []string{"activity.txt", "12"},
			want: models.RunConfig{TargetFile: "activity.txt", MinCommits: 10, MaxCommits: 12, PushEnabled: true},
		},
		{
			name: "absolute target is resolved after root discovery",
			args: []string{"/srv/repo/activity.txt", "1", "3"},
			want: models.RunConfig{TargetFile: "/srv/repo/activity.txt", MinCommits: 1, MaxCommits: 3, PushEnabled: true},
		},
		{
			name: "largest bound",
			args: []string{"activity.txt", "0", "9223372036854775807"},
			want: models.RunConfig{TargetFile: "activity.txt", MinCommits: 0, MaxCommits: math.MaxInt, PushEnabled: true},
		},
		{
			name: "zero commits",
			args: []string{"activity.txt", "0", "0"},
			want: models.RunConfig{TargetFile: "activity.txt", MinCommits: 0, MaxCommits: 0, PushEnabled: true},
		},
		{
			name: "push disabled with 0",
			env:  map[string]string{PushEnvVar: "0"},
			want: models.RunConfig{TargetFile: "activity.txt", MinCommits: 1, MaxCommits: 10},
		},
		{
			name: "push disabled with FALSE",
			env:  map[string]string{PushEnvVar: "FALSE"},
			want: models.RunConfig{TargetFile: "activity.txt", MinCommits: 1, MaxCommits: 10},
		},
		{
			name: "push disabled with padded false",
			env:  map[string]string{PushEnvVar: " false "},
			want: models.RunConfig{TargetFile: "activity.txt", MinCommits: 1, MaxCommits: 10},
		},
		{
			name: "push enabled with 1",
			env:  map[string]string{PushEnvVar: "1"},
			want: models.RunConfig{TargetFile: "activity.txt", MinCommits: 1, MaxCommits: 10, PushEnabled: true},
		},
		{
			name: "push enabled with any other value",
			env:  map[string]string{PushEnvVar: "no"},
			want: models.RunConfig{TargetFile: "activity.txt", MinCommits: 1, MaxCommits: 10, PushEnabled: true},
		},
		{
			name: "push enabled when empty",
			env:  map[string]string{PushEnvVar: ""},
			want: models.RunConfig{TargetFile: "activity.txt", MinCommits: 1, MaxCommits: 10, PushEnabled: true},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := ResolveConfig(tt.args, env(tt.env))
			if err != nil {
				t.Fatalf("Expected no error, got: %v", err)
			}
			if got != tt.want {
				t.Errorf("ResolveConfig(%q) = %+v, want %+v", tt.args, got, tt.want)
			}
		})
	}
}

func TestResolveConfigInvalid(t *testing.T) {
	tests := []struct {
		name string
		args []string
	}{
		{"non-integer min", []string{"activity.txt", "abc", "5"}},
		{"non-integer max", []string{"activity.txt", "1", "5.5"}},
		{"negative bound", []string{"activity.txt", "-1", "5"}},
		{"bound overflows int", []string{"activity.txt", "0", "9223372036854775808"}},
		{"too many arguments", []string{"activity.txt", "1", "5", "extra"}},
		{"escaping path", []string{"../activity.txt"}},
		{"root directory", []string{"."}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := ResolveConfig(tt.args, env(nil))
			if !errors.Is(err, services.ErrInvalidArgument) {
				t.Fatalf("Expected ErrInvalidArgument, got: %v", err)
			}
			if code := services.ExitCode(err); code != 2 {
				t.Errorf("Expected exit code 2, got %d", code)
			}
		})
	}
}
