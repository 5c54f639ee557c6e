// Package cmd provides the CLI commands for lazymvn.
package cmd

import (
	"context"
	"errors"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/spf13/cobra"
	"golang.org/x/term"

	"github.com/wexinc/lazymvn/internal/config"
	errs "github.com/wexinc/lazymvn/internal/errors"
	"github.com/wexinc/lazymvn/internal/logging"
	"github.com/wexinc/lazymvn/internal/loop"
	"github.com/wexinc/lazymvn/internal/pom"
	"github.com/wexinc/lazymvn/internal/registry"
	"github.com/wexinc/lazymvn/internal/tui"
	"github.com/wexinc/lazymvn/internal/tui/styles"
)

// Version information, set by main before Execute().
var (
	Version = "dev"
	Commit  = "none"
	Date    = "unknown"
)

// rootCmd represents the base command when called without any subcommands.
var rootCmd = &cobra.Command{
	Use:   "lazymvn",
	Short: "Edit the dependencies of a Maven pom.xml from the terminal",
	Long: `lazymvn is a terminal editor for the <dependencies> section of a Maven pom.xml.

It lists the dependencies of the pom, searches Maven Central for new ones,
shows the published versions of an artifact and writes the edited list back
without touching the rest of the file.

Keys (normal mode):
  j/k, up/down   move the cursor          tab/shift+tab  switch pane
  i or /         type a search phrase     s              search the registry
  enter          add result, pick version v              list versions
  d              remove dependency        w              write pom.xml
  q              quit

Examples:
  lazymvn                          # Edit ./pom.xml (or the nearest parent pom)
  lazymvn --file services/api/pom.xml
  lazymvn list                     # Print the dependencies
  lazymvn search jackson-databind  # Query the registry without the TUI`,
	SilenceUsage:  true,
	SilenceErrors: true,
	RunE:          runRoot,
}

func init() {
	addGlobalFlags(rootCmd)
}

// addGlobalFlags registers the flags shared by every command.
func addGlobalFlags(c *cobra.Command) {
	pf := c.PersistentFlags()
	pf.StringP("file", "f", "", "Path to pom.xml (default: search upward from the working directory)")
	pf.String("config", "", "Path to the config file (default: "+config.DefaultConfigPath+")")
	pf.Bool("no-color", false, "Render without colors")
	pf.Bool("debug", false, "Write debug level logs")
}

// Execute adds all child commands to the root command and sets flags appropriately.
// This is called by main.main(). It only needs to happen once to the rootCmd.
func Execute() {
	rootCmd.Version = fmt.Sprintf("%s (commit: %s, built: %s)", Version, Commit, Date)
	rootCmd.SetVersionTemplate("lazymvn {{.Version}}\n")

	if err := rootCmd.Execute(); err != nil {
		fmt.Fprint(os.Stderr, errs.FormatAny(err))
		os.Exit(1)
	}
}

// Root returns the root command for testing purposes.
func Root() *cobra.Command {
	return rootCmd
}

// runRoot starts the interactive editor.
func runRoot(cmd *cobra.Command, args []string) error {
	if !term.IsTerminal(int(os.Stdout.Fd())) || !term.IsTerminal(int(os.Stdin.Fd())) {
		return fmt.Errorf("lazymvn needs an interactive terminal; use 'lazymvn list' for scripted output")
	}

	cfg, err := loadConfig(cmd)
	if err != nil {
		return err
	}
	if cfg.UI.NoColor {
		styles.DisableColor()
	}
	closeLog := initLogging(cmd, cfg)
	defer closeLog()

	doc, err := openDocument(cmd, cfg)
	if err != nil {
		return err
	}
	deps, err := documentDependencies(doc)
	if err != nil {
		return err
	}
	logging.Info("lazymvn starting", "version", Version, "pom", doc.Path(), "dependencies", len(deps))

	ctx, stop := signal.NotifyContext(commandContext(cmd), os.Interrupt, syscall.SIGTERM)
	defer stop()

	keys := loop.DefaultKeyMap()
	focus, err := loop.NewFocusRegistry(loop.DefaultViews(keys)...)
	if err != nil {
		return fmt.Errorf("failed to create views: %w", err)
	}
	persister := loop.DocumentPersister{Document: doc}
	state := loop.NewState(deps, focus.Current())
	orchestrator := loop.NewOrchestrator(newRegistryClient(cfg), cfg.Registry.Timeout)

	runner := tui.NewRunner(tui.Options{
		PomPath:  doc.Path(),
		Keys:     keys,
		ShowHelp: cfg.UI.ShowHelp,
	}, tea.WithAltScreen())
	opts := &loop.Options{}
	runner.ConfigureLoop(opts)
	reducer := loop.NewReducer(focus, persister, loop.WithMatchMode(doc.MatchMode()))
	l := loop.NewLoop(state, loop.NewTranslator(keys, focus), reducer, orchestrator, opts)

	final, err := runner.Run(ctx, l)
	if err != nil && !errors.Is(err, context.Canceled) {
		logging.Error("session ended with error", "error", err)
		return err
	}
	if final == nil || !final.Dirty {
		return nil
	}

	if !cfg.Document.SaveOnExit {
		cmd.PrintErrln("Unsaved changes were discarded (set document.save_on_exit to keep them).")
		return nil
	}
	items := final.Dependencies.Items()
	if err := persister.Save(items); err != nil {
		return err
	}
	logging.Info("saved on exit", "pom", doc.Path(), "dependencies", len(items))
	cmd.Printf("Saved %d dependencies to %s\n", len(items), doc.Path())
	return nil
}

func commandContext(cmd *cobra.Command) context.Context {
	if ctx := cmd.Context(); ctx != nil {
		return ctx
	}
	return context.Background()
}

// loadConfig reads the config named by --config, or the default file when it
// exists, and applies the command line overrides.
func loadConfig(cmd *cobra.Command) (*config.Config, error) {
	path, _ := cmd.Flags().GetString("config")

	var cfg *config.Config
	var err error
	if cmd.Flags().Changed("config") {
		cfg, err = config.Load(path)
	} else {
		cfg, err = config.LoadOrDefault(path)
	}
	if err != nil {
		return nil, err
	}

	if noColor, _ := cmd.Flags().GetBool("no-color"); noColor {
		cfg.UI.NoColor = true
	}
	if debug, _ := cmd.Flags().GetBool("debug"); debug {
		cfg.Log.Level = "debug"
	}
	return cfg, nil
}

// initLogging opens the session log file. Logging failures are reported but
// never stop the command.
func initLogging(cmd *cobra.Command, cfg *config.Config) func() {
	if err := logging.InitGlobal(cfg.LoggingConfig()); err != nil {
		cmd.PrintErrf("Warning: failed to initialize logging: %v\n", err)
		return func() {}
	}
	return func() { _ = logging.CloseGlobal() }
}

// openDocument loads the pom named by --file, the config, or the nearest
// pom.xml above the working directory.
func openDocument(cmd *cobra.Command, cfg *config.Config) (*pom.Document, error) {
	path, _ := cmd.Flags().GetString("file")
	if path == "" {
		path = cfg.Document.Path
	}
	if path == "" {
		wd, err := os.Getwd()
		if err != nil {
			return nil, fmt.Errorf("failed to get working directory: %w", err)
		}
		if path, err = pom.Find(wd); err != nil {
			return nil, err
		}
	}
	return pom.Load(path,
		pom.WithMatchMode(cfg.Document.Match),
		pom.WithBackup(cfg.Document.Backup),
	)
}

// headlessLogging sends logs to stderr when --debug is set. Headless commands
// otherwise stay silent.
func headlessLogging(cmd *cobra.Command, cfg *config.Config) {
	if debug, _ := cmd.Flags().GetBool("debug"); !debug {
		return
	}
	lc := cfg.LoggingConfig()
	lc.Console = true
	logging.SetGlobal(logging.NewWriter(cmd.ErrOrStderr(), lc))
}

func documentDependencies(doc *pom.Document) ([]pom.Dependency, error) {
	deps, err := doc.Dependencies()
	if errors.Is(err, pom.ErrMissingSection) {
		return nil, errs.MissingDependencies(doc.Path())
	}
	return deps, err
}

func newRegistryClient(cfg *config.Config) *registry.Client {
	c := registry.NewClient()
	c.BaseURL = cfg.Registry.BaseURL
	c.Rows = cfg.Registry.Rows
	c.UserAgent = cfg.Registry.UserAgent
	return c
}
