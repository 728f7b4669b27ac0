// Package main provides the plasmidcanvas command-line tool.
package main

import (
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"
	"go.uber.org/zap"
)

// Exit codes
const (
	ExitSuccess = 0
	ExitError   = 1
	ExitUsage   = 2
)

// Version information (set at build time)
var (
	version = "dev"
	commit  = "none"
	date    = "unknown"
)

const (
	configName = ".plasmidcanvas"
	envPrefix  = "PLASMIDCANVAS"
)

// app carries the state shared by every subcommand.
type app struct {
	out     io.Writer
	v       *viper.Viper
	logger  *zap.Logger
	cfgFile string
	verbose bool
}

// usageError marks a bad invocation rather than a failed operation.
type usageError struct{ err error }

func (e usageError) Error() string { return e.err.Error() }
func (e usageError) Unwrap() error { return e.err }

func usageArgs(fn cobra.PositionalArgs) cobra.PositionalArgs {
	return func(cmd *cobra.Command, args []string) error {
		if err := fn(cmd, args); err != nil {
			return usageError{err}
		}
		return nil
	}
}

func main() {
	os.Exit(run(os.Args[1:], os.Stdout, os.Stderr))
}

func run(args []string, stdout, stderr io.Writer) int {
	a := &app{out: stdout, v: viper.New(), logger: zap.NewNop()}
	root := newRootCmd(a)
	root.SetArgs(args)
	root.SetOut(stdout)
	root.SetErr(stderr)

	err := root.Execute()
	_ = a.logger.Sync()
	if err == nil {
		return ExitSuccess
	}

	fmt.Fprintf(stderr, "Error: %v\n", err)
	var ue usageError
	if errors.As(err, &ue) || strings.HasPrefix(err.Error(), "unknown command") {
		return ExitUsage
	}
	return ExitError
}

func newRootCmd(a *app) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "plasmidcanvas",
		Short: "Draw circular plasmid maps",
		Long: `plasmidcanvas lays out annotated circular plasmid maps and renders them
as SVG, PNG or JPEG. Maps are described in YAML and can be kept in a
local DuckDB library.`,
		Version:       fmt.Sprintf("%s (%s) built %s", version, commit, date),
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, _ []string) error {
			if err := a.initConfig(); err != nil {
				return err
			}
			return a.initLogger()
		},
	}
	cmd.SetFlagErrorFunc(func(_ *cobra.Command, err error) error {
		return usageError{err}
	})

	cmd.PersistentFlags().BoolVarP(&a.verbose, "verbose", "v", false, "enable debug logging")
	cmd.PersistentFlags().StringVar(&a.cfgFile, "config", "", "config file (default ~/.plasmidcanvas.yaml)")

	cmd.AddCommand(newRenderCmd(a))
	cmd.AddCommand(newLayoutCmd(a))
	cmd.AddCommand(newFeaturesCmd(a))
	cmd.AddCommand(newStoreCmd(a))
	cmd.AddCommand(newConfigCmd(a))

	return cmd
}

// initConfig reads the user config file and the PLASMIDCANVAS_ environment.
// A missing config file is not an error.
func (a *app) initConfig() error {
	setDefaults(a.v)
	a.v.SetEnvPrefix(envPrefix)
	a.v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	a.v.AutomaticEnv()

	if a.cfgFile != "" {
		a.v.SetConfigFile(a.cfgFile)
	} else {
		home, err := os.UserHomeDir()
		if err != nil {
			return nil
		}
		a.v.AddConfigPath(home)
		a.v.SetConfigName(configName)
		a.v.SetConfigType("yaml")
	}

	if err := a.v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if errors.As(err, &notFound) || errors.Is(err, os.ErrNotExist) {
			return nil
		}
		return fmt.Errorf("reading config: %w", err)
	}
	return nil
}

func (a *app) initLogger() error {
	var (
		l   *zap.Logger
		err error
	)
	if a.verbose {
		l, err = zap.NewDevelopment()
	} else {
		l, err = zap.NewProduction()
	}
	if err != nil {
		return fmt.Errorf("creating logger: %w", err)
	}
	a.logger = l
	return nil
}

// configPath returns the file config set writes to.
func (a *app) configPath() (string, error) {
	if f := a.v.ConfigFileUsed(); f != "" {
		return f, nil
	}
	if a.cfgFile != "" {
		return a.cfgFile, nil
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("cannot determine home directory: %w", err)
	}
	return filepath.Join(home, configName+".yaml"), nil
}
