package main

import (
	"errors"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"

	"github.com/inodb/plasmidcanvas/internal/feature"
	"github.com/inodb/plasmidcanvas/internal/render"
	"github.com/inodb/plasmidcanvas/internal/render/raster"
	"github.com/inodb/plasmidcanvas/internal/render/vector"
)

// Backend names accepted by --backend and render.backend.
const (
	backendVector = "vector"
	backendRaster = "raster"
)

func newRenderCmd(a *app) *cobra.Command {
	var (
		src    mapSource
		output string
	)

	cmd := &cobra.Command{
		Use:   "render [map.yaml]",
		Short: "Render a plasmid map to SVG, PNG or JPEG",
		Long: `Render lays out a plasmid map and writes it to the output file. The
output extension picks the format; a missing extension uses the backend's
default (.svg for vector, .png for raster).`,
		Example: `  plasmidcanvas render pBR322.yaml -o pBR322.svg
  plasmidcanvas render pBR322.yaml -o pBR322.png --dpi 600
  plasmidcanvas render --stored pBR322 -o pBR322.jpg --backend vector`,
		Args: src.args(0),
		RunE: func(cmd *cobra.Command, args []string) error {
			if output == "" {
				return usageError{errors.New("--output is required")}
			}
			p, _, err := src.load(a, cmd, args)
			if err != nil {
				return err
			}
			b, err := a.newBackend(cmd, output)
			if err != nil {
				return err
			}
			return p.SaveToFile(b, output)
		},
	}

	src.addFlags(cmd)
	addLayoutFlags(cmd)
	cmd.Flags().StringVarP(&output, "output", "o", "", "output file (required)")
	cmd.Flags().String("backend", "", "backend: vector or raster (default by output extension)")
	cmd.Flags().Int("size", 0, "image width and height in pixels")
	cmd.Flags().Float64("dpi", 0, "resolution used to size text and lines")
	cmd.Flags().String("chrome-path", "", "Chrome executable used to rasterise SVG")

	return cmd
}

// newBackend returns the backend named by --backend or render.backend. With
// neither set, .svg output and extensionless output use the vector backend
// and everything else the raster one.
func (a *app) newBackend(cmd *cobra.Command, output string) (render.Backend, error) {
	for key, flag := range map[string]string{
		keyBackend:    "backend",
		keySize:       "size",
		keyDPI:        "dpi",
		keyChromePath: "chrome-path",
	} {
		if err := a.v.BindPFlag(key, cmd.Flags().Lookup(flag)); err != nil {
			return nil, err
		}
	}

	name := strings.ToLower(a.v.GetString(keyBackend))
	if name == "" {
		switch strings.ToLower(filepath.Ext(output)) {
		case ".svg", "":
			name = backendVector
		default:
			name = backendRaster
		}
	}

	size := a.v.GetInt(keySize)
	dpi := a.v.GetFloat64(keyDPI)
	switch name {
	case backendVector:
		b := vector.New(size, dpi)
		b.SetChromePath(a.v.GetString(keyChromePath))
		b.SetLogger(a.logger)
		return b, nil
	case backendRaster:
		b := raster.New(size, dpi)
		b.SetLogger(a.logger)
		return b, nil
	default:
		return nil, feature.ConfigError("render.backend", name,
			"unsupported backend, supported: %s, %s", backendVector, backendRaster)
	}
}
