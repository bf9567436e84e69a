// poftool is a CLI utility for inspecting POF model files and
// converting them to OBJ scenes, reading loose files or VP archives.
package main

import (
	"fmt"
	"os"

	"github.com/nova-forge/poftools/internal/logger"
)

func main() {
	rootCmd := newRootCmd()
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		logger.Sync()
		os.Exit(1)
	}
	logger.Sync()
}
