package main

import (
	"errors"
	"fmt"
	"strconv"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/inodb/plasmidcanvas/internal/mapfile"
	"github.com/inodb/plasmidcanvas/internal/plasmid"
	"github.com/inodb/plasmidcanvas/internal/store"
)

// mapSource selects where a command reads its map from: a YAML file given
// as the first argument, or a definition kept in the store.
type mapSource struct {
	stored string
}

func (s *mapSource) addFlags(cmd *cobra.Command) {
	cmd.Flags().StringVar(&s.stored, "stored", "", "load the named map from the store instead of a file")
	cmd.Flags().String("db", "", "store database (default from store.path)")
}

// args validates the positional arguments: a map file unless --stored is
// given, followed by extra arguments.
func (s *mapSource) args(extra int) cobra.PositionalArgs {
	return usageArgs(func(cmd *cobra.Command, args []string) error {
		want := extra + 1
		if s.stored != "" {
			want = extra
		}
		if len(args) != want {
			if s.stored == "" {
				return fmt.Errorf("expected a map file and %d more argument(s), got %d", extra, len(args))
			}
			return fmt.Errorf("expected %d argument(s) with --stored, got %d", extra, len(args))
		}
		return nil
	})
}

// load builds the plasmid and returns the remaining arguments.
func (s *mapSource) load(a *app, cmd *cobra.Command, args []string) (*plasmid.Plasmid, []string, error) {
	var (
		def mapfile.Definition
		err error
	)
	if s.stored != "" {
		st, oerr := a.openStore(cmd)
		if oerr != nil {
			return nil, nil, oerr
		}
		defer st.Close()
		if def, err = st.Load(s.stored); err != nil {
			return nil, nil, err
		}
	} else {
		if def, err = mapfile.Read(args[0]); err != nil {
			return nil, nil, err
		}
		args = args[1:]
	}

	p, err := def.Build()
	if err != nil {
		return nil, nil, err
	}
	if err := a.applyLayoutConfig(cmd, p, def.Style); err != nil {
		return nil, nil, err
	}
	p.SetLogger(a.logger)
	a.logger.Debug("loaded plasmid map",
		zap.String("plasmid", p.Name()),
		zap.Int("base_pairs", p.BasePairs()),
		zap.Int("features", len(p.Features())))
	return p, args, nil
}

// addLayoutFlags adds the flags that override the layout style of a map.
func addLayoutFlags(cmd *cobra.Command) {
	cmd.Flags().String("marker-style", "", "marker style: auto, n_markers or none")
	cmd.Flags().String("tick-style", "", "tick style: auto or none")
	cmd.Flags().Int("label-font-size", 0, "default font size of span labels")
}

// applyLayoutConfig applies layout settings. A flag always wins; a config
// value only fills in what the map leaves unset.
func (a *app) applyLayoutConfig(cmd *cobra.Command, p *plasmid.Plasmid, style mapfile.Style) error {
	setting := func(key, flag string, inMap bool) (string, bool) {
		if f := cmd.Flags().Lookup(flag); f != nil && f.Changed {
			return f.Value.String(), true
		}
		if !inMap && a.v.IsSet(key) {
			return a.v.GetString(key), true
		}
		return "", false
	}

	if s, ok := setting(keyMarkerStyle, "marker-style", style.MarkerStyle != ""); ok {
		if err := p.SetMarkerStyle(s); err != nil {
			return err
		}
	}
	if s, ok := setting(keyTickStyle, "tick-style", style.TickStyle != ""); ok {
		if err := p.SetTickStyle(s); err != nil {
			return err
		}
	}
	if s, ok := setting(keyLabelFontSize, "label-font-size", style.LabelFontSize != nil); ok {
		size, err := strconv.Atoi(s)
		if err != nil {
			return fmt.Errorf("%s: %w", keyLabelFontSize, err)
		}
		if err := p.SetFeatureLabelFontSize(size); err != nil {
			return err
		}
	}
	return nil
}

// openStore opens the map library at --db, or at store.path.
func (a *app) openStore(cmd *cobra.Command) (*store.Store, error) {
	path := a.v.GetString(keyStorePath)
	if f := cmd.Flags().Lookup("db"); f != nil && f.Changed {
		path = f.Value.String()
	}
	if path == "" {
		return nil, errors.New("no store configured, set store.path or pass --db")
	}
	st, err := store.Open(path)
	if err != nil {
		return nil, err
	}
	st.SetLogger(a.logger)
	return st, nil
}
