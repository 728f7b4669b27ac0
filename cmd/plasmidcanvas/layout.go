package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/inodb/plasmidcanvas/internal/report"
)

func newLayoutCmd(a *app) *cobra.Command {
	var (
		src    mapSource
		output string
	)

	cmd := &cobra.Command{
		Use:   "layout [map.yaml]",
		Short: "Print the orbit and radius assigned to each feature",
		Example: `  plasmidcanvas layout pBR322.yaml
  plasmidcanvas layout --stored pBR322 -o pBR322.tsv`,
		Args: src.args(0),
		RunE: func(cmd *cobra.Command, args []string) error {
			p, _, err := src.load(a, cmd, args)
			if err != nil {
				return err
			}

			if output == "" {
				return report.Write(a.out, p)
			}
			f, err := os.Create(output)
			if err != nil {
				return fmt.Errorf("create output: %w", err)
			}
			if err := report.Write(f, p); err != nil {
				f.Close()
				return err
			}
			if err := f.Close(); err != nil {
				return fmt.Errorf("close output: %w", err)
			}
			return nil
		},
	}

	src.addFlags(cmd)
	cmd.Flags().StringVarP(&output, "output", "o", "", "output file (default: stdout)")
	return cmd
}
