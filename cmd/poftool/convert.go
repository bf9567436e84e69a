package main

import (
	"fmt"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/nova-forge/poftools/internal/convert"
	"github.com/nova-forge/poftools/internal/logger"
)

func newConvertCmd() *cobra.Command {
	var (
		all     bool
		pattern string
		workers int
	)

	cmd := &cobra.Command{
		Use:   "convert <source> [model...]",
		Short: "Convert POF models to OBJ with a conversion manifest",
		Example: `  # Convert one model from an archive
  poftool convert sparky.vp data/models/fighter01.pof

  # Convert every model in a directory
  poftool convert ./models --all

  # Convert all fighters from an archive, four at a time
  poftool convert sparky.vp --pattern "fighter*" --workers 4`,
		Args: cobra.MinimumNArgs(1),
		RunE: func(_ *cobra.Command, args []string) error {
			return runConvert(args, all, pattern, workers)
		},
	}

	cmd.Flags().BoolVar(&all, "all", false, "convert every POF file in the source")
	cmd.Flags().StringVar(&pattern, "pattern", "", "convert POF files matching a glob or substring pattern")
	cmd.Flags().IntVar(&workers, "workers", 0, "batch conversion workers (0 = number of CPUs)")

	return cmd
}

func runConvert(args []string, all bool, pattern string, workers int) error {
	src, closeSrc, err := openSource(args[0])
	if err != nil {
		return err
	}
	defer closeSrc()

	conv := convert.New(src, convert.Options{
		OutputDir: cfg.Convert.OutputDir,
		Logger:    logger.Log,
		Progress: func(model string, phase convert.Phase) {
			logger.Debug("pipeline", zap.String("model", model), zap.Stringer("phase", phase))
		},
	})

	if all || pattern != "" {
		if workers == 0 {
			workers = cfg.Convert.Workers
		}
		results := conv.ConvertAll(pattern, workers)
		if len(results) == 0 {
			return fmt.Errorf("no models match pattern %q", pattern)
		}

		failed := 0
		for _, r := range results {
			if r.Err != nil {
				failed++
				fmt.Printf("  FAIL  %s: %v\n", r.Name, r.Err)
				continue
			}
			status := "ok"
			if r.Warnings > 0 {
				status = fmt.Sprintf("%d warnings", r.Warnings)
			}
			fmt.Printf("  ok    %s (%s)\n", r.Name, status)
		}
		fmt.Printf("Converted %d of %d models to %s\n", len(results)-failed, len(results), cfg.Convert.OutputDir)
		if failed > 0 {
			return fmt.Errorf("%d of %d conversions failed", failed, len(results))
		}
		return nil
	}

	if len(args) < 2 {
		return fmt.Errorf("specify models to convert, or use --all / --pattern")
	}

	for _, name := range args[1:] {
		res, err := conv.Convert(name)
		if err != nil {
			return err
		}
		fmt.Printf("%s -> %s\n", name, res.OBJPath)
		for _, w := range res.Warnings {
			fmt.Printf("  warning: %s\n", w)
		}
	}
	return nil
}
