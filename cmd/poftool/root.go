package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/nova-forge/poftools/internal/config"
	"github.com/nova-forge/poftools/internal/convert"
	"github.com/nova-forge/poftools/internal/logger"
	"github.com/nova-forge/poftools/pkg/vp"
)

// Version is set at build time.
var Version = "0.1.0"

var (
	cfgFile   string
	debugFlag bool
	outDir    string
	cfg       *config.Config
)

func newRootCmd() *cobra.Command {
	rootCmd := &cobra.Command{
		Use:   "poftool",
		Short: "POF model inspection and conversion utility",
		Long: `poftool reads POF 3D model files, either loose on disk or inside
VP archives, and converts them to Wavefront OBJ scenes with a
plain-text conversion manifest alongside each model.`,
		Version:       Version,
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, _ []string) error {
			if cmd.Name() == "help" || cmd.Name() == "completion" || cmd.Name() == "__complete" {
				return nil
			}

			var err error
			cfg, err = config.Load(cfgFile)
			if err != nil {
				return err
			}
			if outDir != "" {
				cfg.Convert.OutputDir = outDir
			}

			level := cfg.Logging.Level
			if debugFlag {
				level = "debug"
			}
			return logger.Init(level, cfg.Logging.LogFile)
		},
	}

	rootCmd.PersistentFlags().StringVar(&cfgFile, "config", "", "config file (default: ./poftools.yaml)")
	rootCmd.PersistentFlags().BoolVar(&debugFlag, "debug", false, "enable debug logging")
	rootCmd.PersistentFlags().StringVarP(&outDir, "out", "o", "", "output directory for converted files")

	rootCmd.AddCommand(newConvertCmd())
	rootCmd.AddCommand(newInfoCmd())
	rootCmd.AddCommand(newListCmd())
	rootCmd.AddCommand(newExtractCmd())

	return rootCmd
}

// openSource opens path as a model source: a VP archive if it is a
// regular file, a DirSource if it is a directory.
func openSource(path string) (convert.Source, func() error, error) {
	info, err := os.Stat(path)
	if err != nil {
		return nil, nil, fmt.Errorf("opening source: %w", err)
	}
	if info.IsDir() {
		return convert.DirSource{Root: path}, func() error { return nil }, nil
	}
	archive, err := vp.Open(path)
	if err != nil {
		return nil, nil, err
	}
	return archive, archive.Close, nil
}
