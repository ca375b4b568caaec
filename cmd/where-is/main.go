// Command where-is finds the configuration files of named programs.
package main

import (
	"os"

	"github.com/what-to-code-complete/where-is/internal/cli"
)

func main() {
	os.Exit(cli.Execute())
}
