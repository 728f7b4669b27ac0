package main

import (
	"fmt"
	"strconv"

	"github.com/spf13/cobra"

	"github.com/inodb/plasmidcanvas/internal/feature"
)

func newFeaturesCmd(a *app) *cobra.Command {
	var src mapSource

	cmd := &cobra.Command{
		Use:   "features [map.yaml] <position>",
		Short: "List the features covering a position",
		Example: `  plasmidcanvas features pBR322.yaml 375
  plasmidcanvas features --stored pBR322 4300`,
		Args: src.args(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			p, rest, err := src.load(a, cmd, args)
			if err != nil {
				return err
			}
			pos, err := strconv.Atoi(rest[0])
			if err != nil {
				return usageError{fmt.Errorf("position %q is not an integer", rest[0])}
			}

			for _, f := range p.FeaturesAt(pos) {
				switch f := f.(type) {
				case *feature.Interval:
					fmt.Fprintf(a.out, "%s\t%s\t%d\t%d\n", f.Name(), f.Shape(), f.Start(), f.End())
				case *feature.Point:
					fmt.Fprintf(a.out, "%s\tpoint\t%d\t%d\n", f.Name(), f.Position(), f.Position())
				}
			}
			return nil
		},
	}

	src.addFlags(cmd)
	return cmd
}
