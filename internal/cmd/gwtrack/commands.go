package gwtrack

import (
	"context"
	"errors"
	"fmt"
	"io"
	"slices"
	"strings"
	"text/tabwriter"

	"github.com/louisbranch/gwtrack/internal/services/tracker/catalog"
	"github.com/louisbranch/gwtrack/internal/services/tracker/content"
	"github.com/louisbranch/gwtrack/internal/services/tracker/display"
	"github.com/louisbranch/gwtrack/internal/services/tracker/status"
	"github.com/louisbranch/gwtrack/internal/services/tracker/storage"
	"github.com/spf13/cobra"
)

const maxSuggestions = 3

func (a *app) validateCommand() *cobra.Command {
	var watch bool
	cmd := &cobra.Command{
		Use:   "validate",
		Short: "Load every content file and report problems",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			out := cmd.OutOrStdout()
			if !watch {
				reg, err := a.loader().Load(cmd.Context())
				if reg != nil {
					printCounts(out, reg)
				}
				return err
			}
			w := &catalog.Watcher{
				Dir:    a.cfg.ContentDir,
				Loader: a.loader(),
				Logger: a.logger.Named("watcher"),
				OnReload: func(reg *catalog.Registry, err error) {
					if reg != nil {
						printCounts(out, reg)
					}
					if err != nil {
						fmt.Fprintf(out, "error: %v\n", err)
					}
				},
			}
			return w.Run(cmd.Context())
		},
	}
	cmd.Flags().BoolVar(&watch, "watch", false, "reload whenever content files change")
	return cmd
}

func printCounts(w io.Writer, reg *catalog.Registry) {
	loaded := reg.Kinds()
	for _, kind := range loaded {
		fmt.Fprintf(w, "%s: %d areas\n", kind.Dir(), reg.Count(kind))
	}
	var empty []string
	for _, kind := range content.Kinds {
		if !slices.Contains(loaded, kind) {
			empty = append(empty, kind.Dir())
		}
	}
	if len(empty) > 0 {
		fmt.Fprintf(w, "no areas: %s\n", strings.Join(empty, ", "))
	}
}

func (a *app) areasCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "areas <kind>",
		Short: "List areas of a kind grouped for navigation",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			kind, err := content.ParseKind(args[0])
			if err != nil {
				return err
			}
			reg, err := a.loadCatalog(cmd.Context())
			if err != nil {
				return err
			}
			out := cmd.OutOrStdout()
			for _, group := range reg.Groupings(kind) {
				fmt.Fprintln(out, group.Title)
				for _, name := range group.Areas {
					fmt.Fprintf(out, "  %s\n", name)
				}
			}
			return nil
		},
	}
}

func (a *app) showCommand() *cobra.Command {
	var (
		charName string
		hard     bool
		detail   bool
	)
	cmd := &cobra.Command{
		Use:   "show <kind> <area>",
		Short: "Show the items of an area, with a character's progress when --char is set",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			kind, err := content.ParseKind(args[0])
			if err != nil {
				return err
			}
			reg, err := a.loadCatalog(ctx)
			if err != nil {
				return err
			}
			area, err := lookupArea(reg, kind, args[1])
			if err != nil {
				return err
			}

			table := display.AreaTable(area, a.formatter, a.icons)
			if detail {
				display.AddDetail(&table, area)
			}
			if charName != "" {
				roster := a.roster()
				defer roster.Close()
				store, err := roster.Switch(ctx, charName)
				if err != nil {
					return err
				}
				if err := addStatusColumn(ctx, &table, store, kind, area.AreaName(), hard); err != nil {
					return err
				}
			}
			return writeTable(cmd.OutOrStdout(), table)
		},
	}
	cmd.Flags().StringVar(&charName, "char", "", "character whose progress is shown")
	cmd.Flags().BoolVar(&hard, "hard", false, "show hard mode mission progress")
	cmd.Flags().BoolVar(&detail, "detail", false, "add wiki links and full reward text")
	return cmd
}

func addStatusColumn(ctx context.Context, table *display.Table, store storage.StatusStore, kind content.Kind, area string, hard bool) error {
	table.Header = append(table.Header, "Status")
	for i, row := range table.Rows {
		state, err := store.Get(ctx, status.Key(kind, area, row.Item, hard))
		if err != nil && !errors.Is(err, storage.ErrNotFound) {
			return err
		}
		table.Rows[i].Cells = append(row.Cells, state)
	}
	return nil
}

func writeTable(w io.Writer, table display.Table) error {
	tw := tabwriter.NewWriter(w, 0, 4, 2, ' ', 0)
	fmt.Fprintln(tw, strings.Join(table.Header, "\t"))
	for _, row := range table.Rows {
		fmt.Fprintln(tw, strings.Join(row.Cells, "\t"))
	}
	return tw.Flush()
}

func (a *app) charCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "char",
		Short: "List and create characters",
	}

	list := &cobra.Command{
		Use:   "list",
		Short: "List characters in the data directory",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			roster := a.roster()
			entries, err := roster.List(cmd.Context())
			if err != nil {
				return err
			}
			if len(entries) == 0 {
				fmt.Fprintf(cmd.OutOrStdout(), "no characters in %s\n", roster.Dir())
				return nil
			}
			tw := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 4, 2, ' ', 0)
			fmt.Fprintln(tw, "Name\tType\tFile")
			for _, e := range entries {
				charType := e.Type
				if e.Unsupported() {
					charType = fmt.Sprintf("(unsupported version %s)", e.UnsupportedVersion)
				}
				fmt.Fprintf(tw, "%s\t%s\t%s\n", e.Name, charType, e.File)
			}
			return tw.Flush()
		},
	}

	var profile storage.Profile
	create := &cobra.Command{
		Use:   "create",
		Short: "Create a character store",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			roster := a.roster()
			defer roster.Close()
			store, err := roster.Create(cmd.Context(), profile)
			if err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "created %s\n", store.Path())
			return nil
		},
	}
	create.Flags().StringVar(&profile.Name, "name", "", "character name")
	create.Flags().StringVar(&profile.Type, "type", "", "character type (Tyrian, Canthan, Elonian)")
	create.Flags().StringVar(&profile.Profession1, "profession", "", "primary profession")
	create.Flags().StringVar(&profile.Profession2, "profession2", "", "secondary profession")
	_ = create.MarkFlagRequired("name")
	_ = create.MarkFlagRequired("profession")

	cmd.AddCommand(list, create)
	return cmd
}

func (a *app) statusCommand() *cobra.Command {
	var (
		charName string
		hard     bool
	)
	cmd := &cobra.Command{
		Use:   "status",
		Short: "Read or change one item's progress for a character",
	}
	cmd.PersistentFlags().StringVar(&charName, "char", "", "character name")
	cmd.PersistentFlags().BoolVar(&hard, "hard", false, "address the hard mode mission key")
	_ = cmd.MarkPersistentFlagRequired("char")

	// withStore resolves the target item against the catalog, opens the
	// character, and hands both to fn.
	withStore := func(cmd *cobra.Command, args []string, fn func(ctx context.Context, store storage.StatusStore, key string) error) error {
		ctx := cmd.Context()
		kind, err := content.ParseKind(args[0])
		if err != nil {
			return err
		}
		reg, err := a.loadCatalog(ctx)
		if err != nil {
			return err
		}
		area, err := lookupArea(reg, kind, args[1])
		if err != nil {
			return err
		}
		if err := lookupItem(area, args[2]); err != nil {
			return err
		}
		roster := a.roster()
		defer roster.Close()
		store, err := roster.Switch(ctx, charName)
		if err != nil {
			return err
		}
		return fn(ctx, store, status.Key(kind, area.AreaName(), args[2], hard))
	}

	get := &cobra.Command{
		Use:   "get <kind> <area> <item>",
		Short: "Print an item's state",
		Args:  cobra.ExactArgs(3),
		RunE: func(cmd *cobra.Command, args []string) error {
			return withStore(cmd, args, func(ctx context.Context, store storage.StatusStore, key string) error {
				state, err := store.Get(ctx, key)
				switch {
				case errors.Is(err, storage.ErrNotFound):
					state = "(not set)"
				case err != nil:
					return err
				case state == status.Clear:
					state = "(cleared)"
				}
				fmt.Fprintf(cmd.OutOrStdout(), "%s\t%s\n", key, state)
				return nil
			})
		},
	}

	set := &cobra.Command{
		Use:   "set <kind> <area> <item> <state>",
		Short: "Set an item's state",
		Args:  cobra.ExactArgs(4),
		RunE: func(cmd *cobra.Command, args []string) error {
			return withStore(cmd, args[:3], func(ctx context.Context, store storage.StatusStore, key string) error {
				if err := store.Set(ctx, key, args[3]); err != nil {
					if errors.Is(err, status.ErrInvalidState) {
						return invalidStateError(err, key)
					}
					return err
				}
				fmt.Fprintf(cmd.OutOrStdout(), "%s\t%s\n", key, args[3])
				return nil
			})
		},
	}

	clearCmd := &cobra.Command{
		Use:   "clear <kind> <area> <item>",
		Short: "Clear an item's state",
		Args:  cobra.ExactArgs(3),
		RunE: func(cmd *cobra.Command, args []string) error {
			return withStore(cmd, args, func(ctx context.Context, store storage.StatusStore, key string) error {
				if err := store.Clear(ctx, key); err != nil {
					return err
				}
				fmt.Fprintf(cmd.OutOrStdout(), "%s\t(cleared)\n", key)
				return nil
			})
		},
	}

	list := &cobra.Command{
		Use:   "list",
		Short: "Print every stored state of a character",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			ctx := cmd.Context()
			roster := a.roster()
			defer roster.Close()
			store, err := roster.Switch(ctx, charName)
			if err != nil {
				return err
			}
			records, err := store.List(ctx)
			if err != nil {
				return err
			}
			tw := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 4, 2, ' ', 0)
			for _, rec := range records {
				state := rec.State
				if state == status.Clear {
					state = "(cleared)"
				}
				fmt.Fprintf(tw, "%s\t%s\n", rec.Key, state)
			}
			return tw.Flush()
		},
	}

	cmd.AddCommand(get, set, clearCmd, list)
	return cmd
}

func lookupArea(reg *catalog.Registry, kind content.Kind, name string) (content.Area, error) {
	if area, ok := reg.Lookup(kind, name); ok {
		return area, nil
	}
	return nil, missError(fmt.Sprintf("unknown %s area %q", strings.ToLower(kind.String()), name),
		reg.Suggest(kind, name, maxSuggestions))
}

func lookupItem(area content.Area, name string) error {
	if area.HasItem(name) {
		return nil
	}
	return missError(fmt.Sprintf("no item %q in %q", name, area.AreaName()),
		catalog.Closest(name, area.ItemNames(), maxSuggestions))
}

// invalidStateError lists the states the key's kind accepts.
func invalidStateError(err error, key string) error {
	target, parseErr := status.ParseKey(key)
	if parseErr != nil {
		return err
	}
	states := status.ValidStates(target.Kind)
	for i, state := range states {
		if state == status.Clear {
			states[i] = `""`
		}
	}
	return fmt.Errorf("%w (valid: %s)", err, strings.Join(states, ", "))
}

func missError(msg string, suggestions []string) error {
	if len(suggestions) == 0 {
		return errors.New(msg)
	}
	return fmt.Errorf("%s (did you mean: %s?)", msg, strings.Join(suggestions, ", "))
}

// ExitCode maps an error to the process exit status: 2 for content problems,
// 1 for everything else.
func ExitCode(err error) int {
	if errors.Is(err, content.ErrContentValidation) || errors.Is(err, catalog.ErrDuplicateArea) {
		return 2
	}
	return 1
}
