package cmd

import (
	"database/sql"
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"github.com/vivahlabs/vivah-cli/internal"
)

var (
	verbose bool
	baseURL string
	dataDir string
	version string = "dev"
	commit  string = "unknown"
	date    string = "unknown"
)

// rootCmd represents the base command when called without any subcommands
var rootCmd = &cobra.Command{
	Use:   "vivah",
	Short: "Terminal client for the Vivah matchmaking service",
	Long: `A terminal client for the Vivah matrimonial matchmaking service.

Log in once and your session is stored locally; every command reuses
it until you log out.

Quick Start:
  vivah login --email you@example.com     # Authenticate
  vivah matches                           # Browse profiles
  vivah chats                             # List your conversations
  vivah chat 42                           # Open a live chat window

Configuration is read from VIVAH_* environment variables and an
optional config.yaml in the data directory (default ~/.vivah).`,
	Version: fmt.Sprintf("%s (commit: %s, built: %s)", version, commit, date),
	PersistentPreRun: func(cmd *cobra.Command, args []string) {
		internal.SetVerbose(verbose)
	},
}

// Execute adds all child commands to the root command and sets flags appropriately.
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func init() {
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "Enable verbose logging")
	rootCmd.PersistentFlags().StringVar(&baseURL, "base-url", "", "Backend base URL (overrides VIVAH_BASE_URL)")
	rootCmd.PersistentFlags().StringVar(&dataDir, "data", "", "Data directory (default ~/.vivah)")

	rootCmd.SetVersionTemplate(`{{printf "%s\n" .Version}}`)
}

// app bundles the pieces every command needs
type app struct {
	cfg    *internal.Config
	db     *sql.DB
	store  *internal.SessionStore
	client *internal.Client
}

// newApp resolves configuration, opens the local database, and wires
// the session store into the REST client.
func newApp() (*app, error) {
	cfg, err := internal.LoadConfig(baseURL, dataDir)
	if err != nil {
		return nil, fmt.Errorf("failed to load config: %w", err)
	}

	db, err := internal.OpenAppDatabase(cfg.DatabasePath())
	if err != nil {
		// The client still works without durable storage; the session
		// just will not survive a restart.
		internal.LogWarn("local database unavailable: %v", err)
		db = nil
	}

	store := internal.NewSessionStore(db)
	return &app{
		cfg:    cfg,
		db:     db,
		store:  store,
		client: internal.NewClient(cfg, store),
	}, nil
}

func (a *app) Close() {
	if a.db != nil {
		_ = a.db.Close()
	}
}

// requireSession hydrates the session from storage if needed and fails
// when no one is logged in.
func (a *app) requireSession() (internal.Session, error) {
	sess := a.store.Get()
	if !sess.Authenticated() {
		sess = a.store.LoadFromStorage()
	}
	if !sess.Authenticated() {
		return internal.Session{}, fmt.Errorf("not logged in (run: vivah login)")
	}
	return sess, nil
}
