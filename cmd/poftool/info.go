package main

import (
	"os"

	"github.com/spf13/cobra"

	"github.com/nova-forge/poftools/internal/convert"
	"github.com/nova-forge/poftools/pkg/pof"
	"github.com/nova-forge/poftools/pkg/scene"
)

func newInfoCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "info <source> <model>",
		Short: "Show the conversion manifest for a model without writing files",
		Example: `  poftool info sparky.vp data/models/fighter01.pof
  poftool info ./models capship03.pof`,
		Args: cobra.ExactArgs(2),
		RunE: func(_ *cobra.Command, args []string) error {
			src, closeSrc, err := openSource(args[0])
			if err != nil {
				return err
			}
			defer closeSrc()

			data, err := src.Read(args[1])
			if err != nil {
				return err
			}
			model, err := pof.Parse(data)
			if err != nil {
				return err
			}
			s := scene.Assemble(model)

			warnings := make([]pof.Warning, 0, len(model.Warnings)+len(s.Warnings))
			warnings = append(warnings, model.Warnings...)
			warnings = append(warnings, s.Warnings...)

			return convert.WriteManifest(os.Stdout, &convert.Result{
				Name:     args[1],
				Model:    model,
				Scene:    s,
				Warnings: warnings,
			})
		},
	}
}
