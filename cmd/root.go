// ABOUTME: Root command for the helpdesk CLI
// ABOUTME: Global flags, configuration, and session wiring for subcommands

package cmd

import (
	"context"
	"fmt"
	"io"

	"github.com/spf13/cobra"

	"github.com/1234-ad/ticketing-system/internal/api"
	"github.com/1234-ad/ticketing-system/internal/config"
	"github.com/1234-ad/ticketing-system/internal/credentials"
	"github.com/1234-ad/ticketing-system/internal/logging"
	"github.com/1234-ad/ticketing-system/internal/session"
)

var (
	apiURL     string
	jsonOutput bool
)

// rootCmd is the base command
var rootCmd = &cobra.Command{
	Use:   "helpdesk",
	Short: "Terminal client for the support ticketing system",
	Long: `helpdesk is a terminal client for the support ticketing system.

Users create and track support tickets, agents triage and resolve them, and
administrators manage accounts. All data lives on the backend; helpdesk talks
to it over its REST API and keeps only a signed-in session token locally.

Environment Variables:
  HELPDESK_API_URL     Backend API URL (default: http://localhost:8080/api)
  HELPDESK_LOG_LEVEL   Debug log level: trace, debug, info, warn, error
  HELPDESK_CONFIG_DIR  Where the session token and debug log are stored`,
}

// Execute runs the root command
func Execute() error {
	return rootCmd.Execute()
}

func init() {
	rootCmd.PersistentFlags().StringVar(&apiURL, "api-url", "", "Backend API URL (overrides HELPDESK_API_URL)")
	rootCmd.PersistentFlags().BoolVar(&jsonOutput, "json", false, "Output JSON instead of human-readable text")
}

// IsJSONOutput returns whether JSON output is requested
func IsJSONOutput() bool {
	return jsonOutput
}

// env is the wired-up client stack a command runs against.
type env struct {
	cfg     *config.Config
	creds   *credentials.Store
	client  *api.Client
	session *session.Manager
}

// newEnv loads configuration and builds the credential store, API client, and
// session manager. The client's unauthorized hook drops the session so the
// token and session state can never disagree after a 401.
func newEnv(ctx context.Context) (*env, error) {
	cfg, err := config.Load(ctx)
	if err != nil {
		return nil, err
	}

	// A broken debug log must not take the CLI down
	if err := logging.Init(cfg.ConfigDir, cfg.LogLevel); err != nil {
		logging.Close()
	}

	creds := credentials.New(cfg.ConfigDir)

	baseURL := cfg.APIURL
	if apiURL != "" {
		baseURL = apiURL
	}

	client := api.New(baseURL, creds)
	sess := session.New(client, creds)
	client.OnUnauthorized(sess.Invalidate)

	return &env{cfg: cfg, creds: creds, client: client, session: sess}, nil
}

// requireUser resolves the session and returns the signed-in user. When the
// session settles Anonymous it prints guidance and reports false.
func (e *env) requireUser(ctx context.Context, w io.Writer) (*api.User, bool) {
	if e.session.Restore(ctx) != session.Authenticated {
		fmt.Fprintln(w, "Not signed in. Run 'helpdesk login' first.")
		return nil, false
	}
	return e.session.User(), true
}
