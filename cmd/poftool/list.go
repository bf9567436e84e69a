package main

import (
	"fmt"
	"path/filepath"
	"sort"
	"strings"

	"github.com/spf13/cobra"
)

func newListCmd() *cobra.Command {
	var limit int

	cmd := &cobra.Command{
		Use:   "list <source> [pattern]",
		Short: "List files in an archive or directory",
		Example: `  poftool list sparky.vp
  poftool list sparky.vp "*.pof"
  poftool list ./models fighter -n 20`,
		Args: cobra.RangeArgs(1, 2),
		RunE: func(_ *cobra.Command, args []string) error {
			src, closeSrc, err := openSource(args[0])
			if err != nil {
				return err
			}
			defer closeSrc()

			pattern := ""
			if len(args) > 1 {
				pattern = strings.ToLower(args[1])
			}

			names := src.List()
			sort.Strings(names)

			shown := 0
			for _, name := range names {
				if pattern != "" {
					ok, _ := filepath.Match(pattern, strings.ToLower(filepath.Base(name)))
					if !ok && !strings.Contains(strings.ToLower(name), pattern) {
						continue
					}
				}
				fmt.Println(name)
				shown++
				if limit > 0 && shown >= limit {
					break
				}
			}
			fmt.Printf("%d files\n", shown)
			return nil
		},
	}

	cmd.Flags().IntVarP(&limit, "limit", "n", 0, "limit output to N files (0 = all)")

	return cmd
}
