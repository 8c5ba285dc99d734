package cmd

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/zjrosen/keyloom/internal/app"
	"github.com/zjrosen/keyloom/internal/config"
	"github.com/zjrosen/keyloom/internal/flags"
	"github.com/zjrosen/keyloom/internal/log"
	"github.com/zjrosen/keyloom/internal/prefs"
	"github.com/zjrosen/keyloom/internal/theme"
	"github.com/zjrosen/keyloom/internal/tracing"
)

func init() {
	// Force lipgloss/termenv to query terminal background color BEFORE
	// any Bubble Tea program starts. This prevents the terminal's OSC 11
	// response from racing with Bubble Tea's input loop and appearing as
	// garbage text in input fields.
	//
	// See: https://github.com/charmbracelet/bubbletea/issues/1036
	_ = lipgloss.HasDarkBackground()
}

var (
	version   = "dev"
	cfgFile   string
	debugFlag bool
	cfg       config.Config
)

var rootCmd = &cobra.Command{
	Use:     "keyloom",
	Short:   "A quiet terminal typing practice pad",
	Long:    `A terminal typing practice pad with themes, a focused mode, a music widget and a free typing coffee mode.`,
	Version: version,
	RunE:    runApp,
}

func init() {
	cobra.OnInitialize(initConfig)

	rootCmd.PersistentFlags().StringVarP(&cfgFile, "config", "c", "",
		"config file (default: ~/.config/keyloom/config.yaml)")
	rootCmd.PersistentFlags().BoolVar(&debugFlag, "debug", false,
		"write a debug log (also KEYLOOM_DEBUG=1)")
	rootCmd.PersistentFlags().String("store", "",
		"preference store backend: sqlite, file or memory")

	// Bind flags to viper
	_ = viper.BindPFlag("store.backend", rootCmd.PersistentFlags().Lookup("store"))
}

func initConfig() {
	loaded, err := loadConfig(viper.GetViper(), cfgFile)
	if err != nil {
		fmt.Fprintf(os.Stderr, "keyloom: %v\n", err)
	}
	cfg = loaded
}

// userConfigPath is ~/.config/keyloom/config.yaml.
func userConfigPath() string {
	home, _ := os.UserHomeDir()
	return filepath.Join(home, ".config", "keyloom", "config.yaml")
}

// loadConfig reads configuration into a Config seeded with defaults.
// Lookup order when path is empty:
//  1. .keyloom/config.yaml (current directory)
//  2. ~/.config/keyloom/config.yaml (user config, written on first run)
func loadConfig(v *viper.Viper, path string) (config.Config, error) {
	setDefaults(v)

	if path != "" {
		v.SetConfigFile(path)
	} else if _, err := os.Stat(".keyloom/config.yaml"); err == nil {
		v.SetConfigFile(".keyloom/config.yaml")
	} else {
		v.AddConfigPath(filepath.Dir(userConfigPath()))
		v.SetConfigName("config")
		v.SetConfigType("yaml")
	}

	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if !errors.As(err, &notFound) {
			return config.Defaults(), fmt.Errorf("reading config: %w", err)
		}
		// No config file found anywhere - create the default one
		defaultPath := userConfigPath()
		if writeErr := config.WriteDefaultConfig(defaultPath); writeErr == nil {
			v.SetConfigFile(defaultPath)
			_ = v.ReadInConfig()
		}
		// If write fails, just continue with defaults (no config file)
	}

	var loaded config.Config
	if err := v.Unmarshal(&loaded); err != nil {
		return config.Defaults(), fmt.Errorf("decoding config: %w", err)
	}
	return loaded, nil
}

func setDefaults(v *viper.Viper) {
	defaults := config.Defaults()
	v.SetDefault("debug", defaults.Debug)
	v.SetDefault("store.backend", defaults.Store.Backend)
	v.SetDefault("store.path", defaults.Store.Path)
	v.SetDefault("store.cache_ttl", defaults.Store.CacheTTL)
	v.SetDefault("store.watch", defaults.Store.Watch)
	v.SetDefault("theme.default", defaults.Theme.Default)
	v.SetDefault("ui.markdown_style", defaults.UI.MarkdownStyle)
	v.SetDefault("ui.show_logo", defaults.UI.ShowLogo)
	v.SetDefault("ui.prompt", defaults.UI.Prompt)
	v.SetDefault("tracing.enabled", defaults.Tracing.Enabled)
	v.SetDefault("tracing.exporter", defaults.Tracing.Exporter)
	v.SetDefault("tracing.file_path", defaults.Tracing.FilePath)
	v.SetDefault("tracing.otlp_endpoint", defaults.Tracing.OTLPEndpoint)
	v.SetDefault("tracing.sample_rate", defaults.Tracing.SampleRate)
}

// setupLogging enables the debug log when asked to. The returned cleanup
// is always safe to call.
func setupLogging(prefix string) (func(), error) {
	if os.Getenv("KEYLOOM_DEBUG") == "" && !debugFlag && !cfg.Debug {
		return func() {}, nil
	}
	logPath := os.Getenv("KEYLOOM_LOG")
	if logPath == "" {
		logPath = "debug.log"
	}
	cleanup, err := log.InitWithTeaLog(logPath, prefix)
	if err != nil {
		return func() {}, fmt.Errorf("initializing logging: %w", err)
	}
	log.Info(log.CatConfig, "keyloom starting", "version", version, "logPath", logPath, "config", viper.ConfigFileUsed())
	return cleanup, nil
}

// prepareConfig fills runtime defaults and validates cfg.
func prepareConfig(c *config.Config) error {
	if c.Tracing.FilePath == "" {
		c.Tracing.FilePath = config.DefaultTracesFilePath()
	}
	if err := config.Validate(*c); err != nil {
		return fmt.Errorf("invalid configuration: %w", err)
	}
	return nil
}

// session holds what every command needs to reach the preference store.
type session struct {
	store    *prefs.Persistent
	path     string
	provider *tracing.Provider
}

func openSession(c config.Config) (*session, error) {
	provider, err := newProvider(c)
	if err != nil {
		return nil, err
	}

	store, path, err := prefs.Open(c.Store, provider.Tracer())
	if err != nil {
		_ = provider.Shutdown(context.Background())
		return nil, fmt.Errorf("opening preference store: %w", err)
	}
	log.Info(log.CatPrefs, "Preference store opened", "backend", c.Store.Backend, "path", path)
	return &session{store: store, path: path, provider: provider}, nil
}

// openAppSession is openSession for the TUI. A store that cannot be opened
// is replaced by an in-memory one for this run, with nothing to watch.
func openAppSession(c config.Config) (*session, error) {
	provider, err := newProvider(c)
	if err != nil {
		return nil, err
	}

	store, path, err := prefs.Open(c.Store, provider.Tracer())
	if err != nil {
		log.Warn(log.CatPrefs, "Preference store unavailable, preferences will not persist",
			"backend", c.Store.Backend, "error", err)
		store = prefs.NewPersistent(prefs.NewMemoryBackend(nil), prefs.WithTracer(provider.Tracer()))
		path = ""
	}
	return &session{store: store, path: path, provider: provider}, nil
}

func newProvider(c config.Config) (*tracing.Provider, error) {
	provider, err := tracing.NewProvider(tracing.Config{
		Enabled:      c.Tracing.Enabled,
		Exporter:     c.Tracing.Exporter,
		FilePath:     c.Tracing.FilePath,
		OTLPEndpoint: c.Tracing.OTLPEndpoint,
		SampleRate:   c.Tracing.SampleRate,
	})
	if err != nil {
		return nil, fmt.Errorf("creating tracing provider: %w", err)
	}
	return provider, nil
}

// Close flushes spans and closes the store.
func (s *session) Close() error {
	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
	defer cancel()
	storeErr := s.store.Close()
	traceErr := s.provider.Shutdown(ctx)
	return errors.Join(storeErr, traceErr)
}

func runApp(_ *cobra.Command, _ []string) error {
	cleanup, err := setupLogging("keyloom")
	if err != nil {
		return err
	}
	defer cleanup()

	if err := prepareConfig(&cfg); err != nil {
		return err
	}

	s, err := openAppSession(cfg)
	if err != nil {
		return err
	}
	// the store itself is closed by the model
	defer func() {
		ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
		defer cancel()
		_ = s.provider.Shutdown(ctx)
	}()

	catalog := theme.DefaultCatalog()
	fallback, ok := catalog.Lookup(cfg.Theme.Default)
	if !ok {
		return fmt.Errorf("theme.default: unknown theme %q", cfg.Theme.Default)
	}

	model := app.New(app.Options{
		Store:     s.store,
		Catalog:   catalog,
		Fallback:  fallback,
		Config:    cfg,
		StorePath: s.path,
	})
	p := tea.NewProgram(&model, programOptions(flags.New(cfg.Flags))...)

	_, err = p.Run()

	// Stop the watcher and close the store
	if closeErr := model.Close(); closeErr != nil && err == nil {
		err = closeErr
	}

	if err != nil {
		return fmt.Errorf("running program: %w", err)
	}
	return nil
}

// programOptions picks the screen and mouse modes. Hover tracking needs
// all-motion reporting unless the cell-motion-mouse flag is set.
func programOptions(reg *flags.Registry) []tea.ProgramOption {
	var opts []tea.ProgramOption
	if !reg.Enabled(flags.FlagNoAltScreen) {
		opts = append(opts, tea.WithAltScreen())
	}
	if reg.Enabled(flags.FlagCellMotionMouse) {
		opts = append(opts, tea.WithMouseCellMotion())
	} else {
		opts = append(opts, tea.WithMouseAllMotion())
	}
	return opts
}

// Execute runs the root command
func Execute() error {
	return rootCmd.Execute()
}

// SetVersion sets the version string (called from main with ldflags)
func SetVersion(v string) {
	version = v
	rootCmd.Version = v
}
