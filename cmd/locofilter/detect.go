package main

import (
	"fmt"

	"github.com/spf13/cobra"
	"github.com/walteh/locofilter/pkg/backup"
	"gitlab.com/tozd/go/errors"
)

func newDetectCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "detect <backup-dir>",
		Short: "Report the layout version of a backup root",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()

			src, err := backup.Detect(ctx, args[0])
			if err != nil {
				return errors.Errorf("inspecting backup: %w", err)
			}

			fmt.Printf("%s: %s layout\n", src.Root, src.Layout)
			fmt.Printf("  items:   %s\n", src.ItemsDir())
			fmt.Printf("  samples: %s\n", src.SamplesDir())
			fmt.Printf("  places:  %s\n", src.PlacesDir())
			return nil
		},
	}
	return cmd
}
