package main

import (
	"context"
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"go.uber.org/zap"
	"golang.org/x/oauth2"

	"github.com/provida/volunteer-portal/cmd/cli/commands"
	"github.com/provida/volunteer-portal/internal/config"
	"github.com/provida/volunteer-portal/pkg/clients/gmailclient"
	"github.com/provida/volunteer-portal/pkg/clients/sheetsclient"
	"github.com/provida/volunteer-portal/pkg/core/signup"
	"github.com/provida/volunteer-portal/pkg/core/visibility"
	"github.com/provida/volunteer-portal/pkg/db"
	"github.com/provida/volunteer-portal/pkg/postgres"
	"github.com/provida/volunteer-portal/pkg/sqlite"
	"github.com/provida/volunteer-portal/pkg/utils"
	"github.com/provida/volunteer-portal/pkg/utils/logging"
)

var (
	env     string
	verbose bool
	app     = &commands.AppContext{}
)

func main() {
	rootCmd := &cobra.Command{
		Use:   "portal",
		Short: "ProVida volunteer portal - browse activities and sign up",
		Long:  `A CLI for volunteers to browse the activities open to their level and sign up for a slot.`,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			return initApp()
		},
		PersistentPostRun: func(cmd *cobra.Command, args []string) {
			app.Close()
			if app.Logger != nil {
				_ = app.Logger.Sync()
			}
		},
		SilenceUsage: true,
	}

	rootCmd.PersistentFlags().StringVarP(&env, "env", "e", "", "Environment (required: test, prod, etc.)")
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "Log debug output to the console")
	_ = rootCmd.MarkPersistentFlagRequired("env")

	rootCmd.AddCommand(commands.LoginCmd(app))
	rootCmd.AddCommand(commands.WhoamiCmd(app))
	rootCmd.AddCommand(commands.LogoutCmd(app))
	rootCmd.AddCommand(commands.ListActivitiesCmd(app))
	rootCmd.AddCommand(commands.EventsCmd(app))
	rootCmd.AddCommand(commands.SignUpCmd(app))
	rootCmd.AddCommand(commands.RegisterCmd(app))
	rootCmd.AddCommand(commands.ListVolunteersCmd(app))
	rootCmd.AddCommand(commands.ScheduleActivitiesCmd(app))
	rootCmd.AddCommand(commands.ListSignupsCmd(app))
	rootCmd.AddCommand(commands.InteractiveCmd(app))

	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

// initApp sets up logger, config, the record store for the configured backend and the engines
func initApp() error {
	var err error
	app.Env = env
	app.Ctx = context.Background()

	app.Logger, err = logging.InitLogger(env, verbose)
	if err != nil {
		return fmt.Errorf("failed to initialize logger: %w", err)
	}

	app.Logger.Debug("Starting application")

	app.Cfg, err = config.Load(env)
	if err != nil {
		return fmt.Errorf("failed to load config: %w", err)
	}
	app.Logger.Debug("Configuration loaded", zap.String("backend", app.Cfg.Backend))

	app.Ordering, err = app.Cfg.Ordering()
	if err != nil {
		return fmt.Errorf("failed to build level table: %w", err)
	}
	policy, err := app.Cfg.Policy()
	if err != nil {
		return fmt.Errorf("failed to build visibility policy: %w", err)
	}
	app.Visibility = visibility.NewEngine(app.Ordering, policy)

	var oauthCfg *config.OAuthClientConfig
	if app.Cfg.Backend == config.BackendSheets || app.Cfg.Notifications.Enabled {
		oauthCfg, err = config.LoadOAuthClient(env)
		if err != nil {
			return fmt.Errorf("failed to load OAuth client config: %w", err)
		}
	}

	token, err := initBackend(oauthCfg)
	if err != nil {
		return err
	}

	opts := app.Cfg.SignupOptions()
	app.Signup = signup.NewEngine(app.Visibility, app.Store, opts, app.Logger)
	app.Logger.Debug("Sign-up engine ready",
		zap.Bool("prevent_duplicates", opts.PreventDuplicates),
		zap.Bool("check_conflicts", opts.CheckConflicts),
		zap.Bool("optimistic_guard", opts.OptimisticGuard))

	if app.Cfg.Notifications.Enabled {
		if err := initNotifier(oauthCfg, token); err != nil {
			return err
		}
	}

	if err := app.RestoreSession(); err != nil {
		app.Logger.Warn("Ignoring stored session", zap.Error(err))
	}

	return nil
}

// initBackend connects the record store and sign-up log. The sheets backend returns the
// OAuth token it obtained so the Gmail client can share it.
func initBackend(oauthCfg *config.OAuthClientConfig) (*oauth2.Token, error) {
	switch app.Cfg.Backend {
	case config.BackendPostgres:
		app.Logger.Debug("Connecting to postgres")
		pg, err := postgres.NewDB(app.Ctx, app.Cfg.PostgresURL)
		if err != nil {
			return nil, fmt.Errorf("failed to connect to postgres: %w", err)
		}
		app.OnClose(pg.Close)
		if err := pg.RunMigrations(app.Ctx); err != nil {
			return nil, fmt.Errorf("failed to run migrations: %w", err)
		}
		app.Store = pg
		app.SignupLog = pg
		return nil, nil

	case config.BackendSQLite:
		app.Logger.Debug("Opening sqlite database", zap.String("path", app.Cfg.SQLitePath))
		lite, err := sqlite.OpenDB(app.Cfg.SQLitePath)
		if err != nil {
			return nil, fmt.Errorf("failed to open sqlite database: %w", err)
		}
		app.OnClose(func() {
			if err := lite.Close(); err != nil {
				app.Logger.Warn("Failed to close sqlite database", zap.Error(err))
			}
		})
		app.Store = lite
		app.SignupLog = lite
		return nil, nil
	}

	app.Logger.Debug("Initializing sheets client")
	client, err := sheetsclient.NewClient(app.Ctx, oauthCfg, env, utils.Scopes(app.Cfg.Notifications.Enabled), app.Logger)
	if err != nil {
		return nil, fmt.Errorf("failed to create sheets client: %w", err)
	}
	app.Store = sheetsclient.NewStore(client, app.Cfg.ActivitySheetID, app.Cfg.ActivitiesTab, app.Cfg.VolunteersTab, app.Logger)

	if app.Cfg.DatabaseSheetID != "" {
		app.Logger.Debug("Connecting to sign-up log", zap.String("spreadsheet_id", app.Cfg.DatabaseSheetID))
		signupLog, err := db.NewDB(client, app.Cfg.DatabaseSheetID)
		if err != nil {
			return nil, fmt.Errorf("failed to initialize sign-up log: %w", err)
		}
		app.SignupLog = signupLog
	}

	return client.Token(), nil
}

// initNotifier creates the Gmail client, running the OAuth flow when no token is shared
func initNotifier(oauthCfg *config.OAuthClientConfig, token *oauth2.Token) error {
	if token == nil {
		oauthConfig, err := utils.GetOAuthConfig(oauthCfg, []string{utils.ScopeGmailSend})
		if err != nil {
			return fmt.Errorf("failed to get oauth config: %w", err)
		}
		token, err = utils.GetTokenWithFlow(app.Ctx, oauthConfig, env, app.Logger)
		if err != nil {
			return fmt.Errorf("failed to get oauth token: %w", err)
		}
	}

	app.Logger.Debug("Initializing gmail client")
	gmail, err := gmailclient.NewClient(app.Ctx, oauthCfg, token, app.Cfg.Notifications.GmailSender)
	if err != nil {
		return fmt.Errorf("failed to create gmail client: %w", err)
	}
	app.Notifier = gmail
	return nil
}
