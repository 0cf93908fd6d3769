// Package cmd provides the heroes command-line interface: the hero
// data-access operations run against a remote backend or an in-process one.
//
// Configuration, highest priority first:
//  1. Command-line flags (--api, --seed, --timeout)
//  2. Environment variables (HEROES_API_URL, HEROES_SEED_FILE, HEROES_TIMEOUT)
//  3. Defaults: in-process backend with the built-in heroes
package cmd

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"strings"
	"time"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/tourofheroes/heroes/internal/heroes"
	"github.com/tourofheroes/heroes/internal/messages"
	"github.com/tourofheroes/heroes/internal/modules/backend"
	"github.com/tourofheroes/heroes/internal/storage"
)

const (
	keyAPIURL   = "api_url"
	keySeedFile = "seed_file"
	keyTimeout  = "timeout"
)

// cliApp is the state shared by every command of one invocation.
type cliApp struct {
	v      *viper.Viper
	files  storage.Store
	log    *messages.Log
	client *heroes.Client
}

// Execute builds and runs the root command.
func Execute() error {
	return newRootCmd(storage.NewOSStore()).Execute()
}

func newRootCmd(files storage.Store) *cobra.Command {
	app := &cliApp{v: viper.New(), files: files}

	rootCmd := &cobra.Command{
		Use:   "heroes-cli",
		Short: "Manage heroes from the command line",
		Long: `heroes-cli runs the hero data-access operations from the command line.

Without --api every command runs against a fresh in-process backend, so
changes only last for that command. Point --api at a running server
(e.g. http://localhost:8080) to work with its heroes.

The message log is printed to stderr after each command.`,
		SilenceUsage: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			return app.connect(cmd)
		},
	}

	flags := rootCmd.PersistentFlags()
	flags.String("api", "", "base URL of the heroes API (env HEROES_API_URL)")
	flags.String("seed", "", "JSON or YAML seed file for the in-process backend (env HEROES_SEED_FILE)")
	flags.Duration("timeout", 10*time.Second, "HTTP client timeout (env HEROES_TIMEOUT)")
	app.v.BindPFlag(keyAPIURL, flags.Lookup("api"))
	app.v.BindPFlag(keySeedFile, flags.Lookup("seed"))
	app.v.BindPFlag(keyTimeout, flags.Lookup("timeout"))
	app.v.SetEnvPrefix("HEROES")
	app.v.AutomaticEnv()

	rootCmd.AddCommand(
		newListCmd(app),
		newGetCmd(app),
		newSearchCmd(app),
		newAddCmd(app),
		newRenameCmd(app),
		newDeleteCmd(app),
		newExportCmd(app),
		newVersionCmd(),
	)
	return rootCmd
}

// connect builds the hero client for the configured backend.
func (a *cliApp) connect(cmd *cobra.Command) error {
	ctx := commandContext(cmd)
	a.log = messages.New(nil)
	hc := &http.Client{Timeout: a.v.GetDuration(keyTimeout)}

	baseURL := strings.TrimRight(a.v.GetString(keyAPIURL), "/")
	if baseURL == "" {
		seed := backend.DefaultHeroes
		if path := a.v.GetString(keySeedFile); path != "" {
			loaded, err := storage.ReadHeroes(ctx, a.files, path)
			if err != nil {
				return fmt.Errorf("load hero seed: %w", err)
			}
			seed = loaded
		}
		hc.Transport = backend.Transport(backend.NewAPI(backend.NewStore(seed)))
		baseURL = backend.InProcessBaseURL
	}

	logger := slog.New(slog.NewTextHandler(cmd.ErrOrStderr(), &slog.HandlerOptions{Level: slog.LevelWarn}))
	a.client = heroes.NewClient(baseURL, a.log, heroes.WithHTTPClient(hc), heroes.WithLogger(logger))
	return nil
}

// withMessages wraps a command so the message log is printed after it ran,
// whether it succeeded or not.
func (a *cliApp) withMessages(run func(cmd *cobra.Command, args []string) error) func(*cobra.Command, []string) error {
	return func(cmd *cobra.Command, args []string) error {
		defer a.printMessages(cmd.ErrOrStderr())
		return run(cmd, args)
	}
}

func (a *cliApp) printMessages(w io.Writer) {
	if a.log == nil {
		return
	}
	for _, m := range a.log.All() {
		fmt.Fprintln(w, m)
	}
}

func commandContext(cmd *cobra.Command) context.Context {
	if ctx := cmd.Context(); ctx != nil {
		return ctx
	}
	return context.Background()
}
