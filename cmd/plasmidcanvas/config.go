package main

import (
	"fmt"
	"os"
	"path/filepath"
	"strconv"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"
	"gopkg.in/yaml.v3"

	"github.com/inodb/plasmidcanvas/internal/render/raster"
)

// Config keys.
const (
	keyBackend       = "render.backend"
	keySize          = "render.size"
	keyDPI           = "render.dpi"
	keyChromePath    = "render.chrome_path"
	keyMarkerStyle   = "layout.marker_style"
	keyTickStyle     = "layout.tick_style"
	keyLabelFontSize = "layout.label_font_size"
	keyStorePath     = "store.path"
)

func setDefaults(v *viper.Viper) {
	v.SetDefault(keySize, raster.DefaultSize)
	v.SetDefault(keyDPI, raster.DefaultDPI)
	v.SetDefault(keyStorePath, defaultStorePath())
}

func defaultStorePath() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return filepath.Join(".plasmidcanvas", "library.duckdb")
	}
	return filepath.Join(home, ".plasmidcanvas", "library.duckdb")
}

func newConfigCmd(a *app) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "config",
		Short: "Manage plasmidcanvas configuration",
		Long:  "Show, get, or set configuration values. Config is stored in ~/.plasmidcanvas.yaml.",
		Example: `  plasmidcanvas config                            # show all config
  plasmidcanvas config set render.backend vector  # render SVG by default
  plasmidcanvas config get render.dpi             # get a value`,
		Args: usageArgs(cobra.NoArgs),
		RunE: func(cmd *cobra.Command, args []string) error {
			return a.runConfigShow()
		},
	}

	cmd.AddCommand(newConfigSetCmd(a))
	cmd.AddCommand(newConfigGetCmd(a))

	return cmd
}

func newConfigSetCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "set <key> <value>",
		Short: "Set a configuration value",
		Args:  usageArgs(cobra.ExactArgs(2)),
		RunE: func(cmd *cobra.Command, args []string) error {
			return a.runConfigSet(args[0], args[1])
		},
	}
}

func newConfigGetCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "get <key>",
		Short: "Get a configuration value",
		Args:  usageArgs(cobra.ExactArgs(1)),
		RunE: func(cmd *cobra.Command, args []string) error {
			return a.runConfigGet(args[0])
		},
	}
}

func (a *app) runConfigShow() error {
	out, err := yaml.Marshal(a.v.AllSettings())
	if err != nil {
		return fmt.Errorf("marshaling config: %w", err)
	}
	fmt.Fprint(a.out, string(out))
	return nil
}

// runConfigSet writes key to the config file. Only values already in the
// file are carried over, so defaults are never persisted.
func (a *app) runConfigSet(key, value string) error {
	cfgFile, err := a.configPath()
	if err != nil {
		return err
	}

	file := viper.New()
	file.SetConfigFile(cfgFile)
	file.SetConfigType("yaml")
	if _, err := os.Stat(cfgFile); err == nil {
		if err := file.ReadInConfig(); err != nil {
			return fmt.Errorf("reading config: %w", err)
		}
	}

	// Parse numeric and boolean-like values
	switch value {
	case "true", "yes", "on":
		file.Set(key, true)
	case "false", "no", "off":
		file.Set(key, false)
	default:
		if n, err := strconv.Atoi(value); err == nil {
			file.Set(key, n)
		} else if f, err := strconv.ParseFloat(value, 64); err == nil {
			file.Set(key, f)
		} else {
			file.Set(key, value)
		}
	}

	if err := file.WriteConfigAs(cfgFile); err != nil {
		return fmt.Errorf("writing config: %w", err)
	}

	fmt.Fprintf(a.out, "Set %s = %s in %s\n", key, value, cfgFile)
	return nil
}

func (a *app) runConfigGet(key string) error {
	val := a.v.Get(key)
	if val == nil {
		return fmt.Errorf("key %q is not set", key)
	}
	fmt.Fprintln(a.out, val)
	return nil
}
