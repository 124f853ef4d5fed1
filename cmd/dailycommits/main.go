package main

import (
	"os"

	"github.com/MrLemur/dailycommits/internal/commands"
)

func main() {
	// Parse command line flags; what remains is [target_file] [min max]
	args := commands.ParseFlags()

	os.Exit(commands.RunApplication(args))
}
