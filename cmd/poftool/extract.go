package main

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"

	"github.com/nova-forge/poftools/pkg/vp"
)

func newExtractCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "extract <archive.vp> <path> [output]",
		Short: "Extract files from a VP archive",
		Long: `Extract files from a VP archive to a directory, preserving the
archive's directory layout. The path argument is an exact archive
path or a glob pattern matched against file base names.`,
		Example: `  poftool extract sparky.vp data/models/fighter01.pof
  poftool extract sparky.vp "*.pof" ./extracted`,
		Args: cobra.RangeArgs(2, 3),
		RunE: func(_ *cobra.Command, args []string) error {
			archive, err := vp.Open(args[0])
			if err != nil {
				return err
			}
			defer archive.Close()

			outputDir := "."
			if len(args) > 2 {
				outputDir = args[2]
			}

			target := args[1]
			if archive.Contains(target) {
				return extractOne(archive, target, outputDir)
			}

			pattern := strings.ToLower(target)
			extracted := 0
			for _, name := range archive.List() {
				ok, _ := filepath.Match(pattern, strings.ToLower(filepath.Base(name)))
				if !ok {
					continue
				}
				if err := extractOne(archive, name, outputDir); err != nil {
					return err
				}
				extracted++
			}
			if extracted == 0 {
				return fmt.Errorf("no archive entry matches %q", target)
			}
			fmt.Printf("Extracted %d files to %s\n", extracted, outputDir)
			return nil
		},
	}
}

func extractOne(archive *vp.Archive, name, outputDir string) error {
	data, err := archive.Read(name)
	if err != nil {
		return err
	}

	dest := filepath.Join(outputDir, filepath.FromSlash(name))
	if err := os.MkdirAll(filepath.Dir(dest), 0755); err != nil {
		return err
	}
	if err := os.WriteFile(dest, data, 0644); err != nil {
		return err
	}
	fmt.Printf("%s -> %s\n", name, dest)
	return nil
}
