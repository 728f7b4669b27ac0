package main

import (
	"errors"
	"fmt"
	"time"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/inodb/plasmidcanvas/internal/mapfile"
	"github.com/inodb/plasmidcanvas/internal/store"
)

func newStoreCmd(a *app) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "store",
		Short: "Manage the local library of plasmid maps",
		Long:  "Import, list, show and search map definitions kept in a DuckDB database at store.path.",
		Args:  usageArgs(cobra.NoArgs),
	}
	cmd.PersistentFlags().String("db", "", "store database (default from store.path)")

	cmd.AddCommand(newStoreImportCmd(a))
	cmd.AddCommand(newStoreListCmd(a))
	cmd.AddCommand(newStoreShowCmd(a))
	cmd.AddCommand(newStoreDeleteCmd(a))
	cmd.AddCommand(newStoreSearchCmd(a))
	return cmd
}

func newStoreImportCmd(a *app) *cobra.Command {
	var force bool

	cmd := &cobra.Command{
		Use:   "import <map.yaml>...",
		Short: "Validate map files and store them by name",
		Long: `Import validates each map file and stores it under its name, replacing
any earlier copy. Files that have not changed since they were last
imported are skipped unless --force is given.`,
		Args: usageArgs(cobra.MinimumNArgs(1)),
		RunE: func(cmd *cobra.Command, args []string) error {
			st, err := a.openStore(cmd)
			if err != nil {
				return err
			}
			defer st.Close()

			for _, path := range args {
				if err := a.importMap(st, path, force); err != nil {
					return err
				}
			}
			return nil
		},
	}

	cmd.Flags().BoolVar(&force, "force", false, "re-import files that have not changed")
	return cmd
}

func (a *app) importMap(st *store.Store, path string, force bool) error {
	fp, err := store.StatFile(path)
	if err != nil {
		return fmt.Errorf("stat %s: %w", path, err)
	}
	def, err := mapfile.Read(path)
	if err != nil {
		return err
	}
	p, err := def.Build()
	if err != nil {
		return fmt.Errorf("%s: %w", path, err)
	}
	def.Name = p.Name()

	if !force {
		prev, err := st.Fingerprint(def.Name)
		switch {
		case err == nil && prev.Matches(fp):
			a.logger.Info("map unchanged, skipping", zap.String("plasmid", def.Name), zap.String("path", path))
			fmt.Fprintf(a.out, "Unchanged %s (%s)\n", def.Name, path)
			return nil
		case err != nil && !errors.Is(err, store.ErrNotFound):
			return err
		}
	}

	if err := st.Save(def, fp); err != nil {
		return err
	}
	fmt.Fprintf(a.out, "Imported %s (%d features) from %s\n", def.Name, len(def.Features), path)
	return nil
}

func newStoreListCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "list",
		Short: "List stored maps",
		Args:  usageArgs(cobra.NoArgs),
		RunE: func(cmd *cobra.Command, args []string) error {
			st, err := a.openStore(cmd)
			if err != nil {
				return err
			}
			defer st.Close()

			sums, err := st.List()
			if err != nil {
				return err
			}
			fmt.Fprintln(a.out, "#Name\tBase_pairs\tFeatures\tSource\tImported")
			for _, s := range sums {
				src := s.Source.Path
				if src == "" {
					src = "-"
				}
				fmt.Fprintf(a.out, "%s\t%d\t%d\t%s\t%s\n",
					s.Name, s.BasePairs, s.Features, src, s.ImportedAt.Format(time.RFC3339))
			}
			return nil
		},
	}
}

func newStoreShowCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "show <name>",
		Short: "Print a stored map as YAML",
		Args:  usageArgs(cobra.ExactArgs(1)),
		RunE: func(cmd *cobra.Command, args []string) error {
			st, err := a.openStore(cmd)
			if err != nil {
				return err
			}
			defer st.Close()

			def, err := st.Load(args[0])
			if err != nil {
				return err
			}
			out, err := mapfile.Encode(def)
			if err != nil {
				return err
			}
			_, err = a.out.Write(out)
			return err
		},
	}
}

func newStoreDeleteCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "delete <name>",
		Short: "Remove a stored map",
		Args:  usageArgs(cobra.ExactArgs(1)),
		RunE: func(cmd *cobra.Command, args []string) error {
			st, err := a.openStore(cmd)
			if err != nil {
				return err
			}
			defer st.Close()

			if err := st.Delete(args[0]); err != nil {
				return err
			}
			fmt.Fprintf(a.out, "Deleted %s\n", args[0])
			return nil
		},
	}
}

func newStoreSearchCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "search <feature-name>",
		Short: "Find a feature by name across stored maps",
		Args:  usageArgs(cobra.ExactArgs(1)),
		RunE: func(cmd *cobra.Command, args []string) error {
			st, err := a.openStore(cmd)
			if err != nil {
				return err
			}
			defer st.Close()

			hits, err := st.SearchFeatures(args[0])
			if err != nil {
				return err
			}
			for _, h := range hits {
				fmt.Fprintf(a.out, "%s\t%s\t%s\t%s\t%s\n",
					h.Plasmid, h.Name, h.Kind, span(h.Start, h.Position), span(h.End, h.Position))
			}
			return nil
		},
	}
}

// span formats a nullable coordinate, falling back to the point position.
func span(v, fallback *int) string {
	switch {
	case v != nil:
		return fmt.Sprint(*v)
	case fallback != nil:
		return fmt.Sprint(*fallback)
	default:
		return "-"
	}
}
