// Command vexc is the Vex ahead-of-time compiler's command-line frontend.
package main

import (
	"fmt"
	"os"

	"github.com/vexlang/vexc/cmd/vexc/cmd"
)

func main() {
	if err := cmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
