// Package gwtrack wires configuration, logging, and the command tree of the
// gwtrack CLI.
package gwtrack

import (
	"context"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/louisbranch/gwtrack/internal/platform/config"
	"github.com/louisbranch/gwtrack/internal/platform/logging"
	"github.com/louisbranch/gwtrack/internal/services/tracker/catalog"
	"github.com/louisbranch/gwtrack/internal/services/tracker/character"
	"github.com/louisbranch/gwtrack/internal/services/tracker/display"
	"github.com/louisbranch/gwtrack/internal/services/tracker/storage/sqlite"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

// Config holds gwtrack configuration. Environment values are defaults that
// command-line flags override.
type Config struct {
	ContentDir    string `env:"GWTRACK_CONTENT_DIR" envDefault:"."`
	DataDir       string `env:"GWTRACK_DATA_DIR"`
	LogLevel      string `env:"GWTRACK_LOG_LEVEL" envDefault:"info"`
	LogFormat     string `env:"GWTRACK_LOG_FORMAT" envDefault:"console"`
	Locale        string `env:"GWTRACK_LOCALE" envDefault:"en-US"`
	LenientStates bool   `env:"GWTRACK_LENIENT_STATES" envDefault:"false"`
	CollectErrors bool   `env:"GWTRACK_COLLECT_ERRORS" envDefault:"false"`
}

// ParseConfig loads Config from the environment. An unset data directory
// becomes ~/.gwtrack.
func ParseConfig() (Config, error) {
	var cfg Config
	if err := config.ParseEnv(&cfg); err != nil {
		return Config{}, err
	}
	if strings.TrimSpace(cfg.DataDir) == "" {
		home, err := os.UserHomeDir()
		if err != nil {
			return Config{}, fmt.Errorf("resolve data dir: %w", err)
		}
		cfg.DataDir = filepath.Join(home, ".gwtrack")
	}
	return cfg, nil
}

// Run executes the command line in args and writes results to out.
func Run(ctx context.Context, cfg Config, args []string, out, errOut io.Writer) error {
	root := NewRootCommand(&cfg)
	root.SetArgs(args)
	root.SetOut(out)
	root.SetErr(errOut)
	return root.ExecuteContext(ctx)
}

// app carries the resources built once flags are parsed.
type app struct {
	cfg       *Config
	logger    *zap.Logger
	formatter *display.Formatter
	icons     display.Icons
}

// NewRootCommand returns the gwtrack command tree bound to cfg.
func NewRootCommand(cfg *Config) *cobra.Command {
	a := &app{cfg: cfg}

	root := &cobra.Command{
		Use:   "gwtrack",
		Short: "Track quest, mission, skill, and vanquish progress per character",
		Long: `gwtrack reads game content from YAML files and keeps each character's
progress in its own SQLite file under the data directory.

Content is read from the quests, missions, skills, and vanquish directories of
the content root.`,
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, _ []string) error {
			return a.setup()
		},
		PersistentPostRunE: func(cmd *cobra.Command, _ []string) error {
			if a.logger != nil {
				_ = a.logger.Sync()
			}
			return nil
		},
	}

	flags := root.PersistentFlags()
	flags.StringVar(&cfg.ContentDir, "content", cfg.ContentDir, "content root directory")
	flags.StringVar(&cfg.DataDir, "data", cfg.DataDir, "character data directory")
	flags.StringVar(&cfg.LogLevel, "log-level", cfg.LogLevel, "log level (debug, info, warn, error)")
	flags.StringVar(&cfg.LogFormat, "log-format", cfg.LogFormat, "log format (console, json)")
	flags.StringVar(&cfg.Locale, "locale", cfg.Locale, "locale used for number formatting")
	flags.BoolVar(&cfg.LenientStates, "lenient-states", cfg.LenientStates, "accept any status state string")
	flags.BoolVar(&cfg.CollectErrors, "collect-errors", cfg.CollectErrors, "keep loading after a content error")

	root.AddCommand(
		a.validateCommand(),
		a.areasCommand(),
		a.showCommand(),
		a.charCommand(),
		a.statusCommand(),
	)
	return root
}

func (a *app) setup() error {
	logger, err := logging.New(logging.Config{Level: a.cfg.LogLevel, Format: logging.Format(a.cfg.LogFormat)})
	if err != nil {
		return err
	}
	formatter, err := display.NewFormatter(a.cfg.Locale)
	if err != nil {
		return err
	}
	a.logger = logger
	a.formatter = formatter
	a.icons = display.NewIcons()
	return nil
}

func (a *app) loader() *catalog.Loader {
	policy := catalog.FailFast
	if a.cfg.CollectErrors {
		policy = catalog.CollectErrors
	}
	return &catalog.Loader{
		FS:     os.DirFS(a.cfg.ContentDir),
		Policy: policy,
		Logger: a.logger.Named("catalog"),
	}
}

// loadCatalog loads content and treats any load error as fatal for the command.
func (a *app) loadCatalog(ctx context.Context) (*catalog.Registry, error) {
	reg, err := a.loader().Load(ctx)
	if err != nil {
		return nil, err
	}
	return reg, nil
}

func (a *app) roster() *character.Roster {
	var opts []sqlite.Option
	if a.cfg.LenientStates {
		opts = append(opts, sqlite.WithStateValidation(false))
	}
	return character.NewRoster(a.cfg.DataDir, a.logger.Named("roster"), opts...)
}
