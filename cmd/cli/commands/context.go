package commands

import (
	"context"
	"fmt"

	"go.uber.org/zap"

	"github.com/provida/volunteer-portal/internal/config"
	"github.com/provida/volunteer-portal/pkg/core/levels"
	"github.com/provida/volunteer-portal/pkg/core/model"
	"github.com/provida/volunteer-portal/pkg/core/services"
	"github.com/provida/volunteer-portal/pkg/core/signup"
	"github.com/provida/volunteer-portal/pkg/core/visibility"
	"github.com/provida/volunteer-portal/pkg/db"
	"github.com/provida/volunteer-portal/pkg/utils"
)

// AppContext holds the application dependencies shared across all commands
type AppContext struct {
	Env        string
	Cfg        *config.Config
	Store      db.RecordStore
	SignupLog  db.SignupLog         // nil when no sign-up log is configured
	Notifier   services.GmailClient // nil when notifications are disabled
	Ordering   *levels.Ordering
	Visibility *visibility.Engine
	Signup     *signup.Engine
	Session    *model.Session
	Logger     *zap.Logger
	Ctx        context.Context

	closers []func()
}

// OnClose registers fn to run when the app shuts down
func (app *AppContext) OnClose(fn func()) {
	app.closers = append(app.closers, fn)
}

// Close releases backend resources in reverse registration order
func (app *AppContext) Close() {
	for i := len(app.closers) - 1; i >= 0; i-- {
		app.closers[i]()
	}
	app.closers = nil
}

// RequireSession returns the active session or an error asking the user to log in
func (app *AppContext) RequireSession() (*model.Session, error) {
	if app.Session == nil {
		return nil, fmt.Errorf("not logged in, run 'login <name or e-mail> [level]' first")
	}
	return app.Session, nil
}

// RestoreSession loads the persisted session, re-ranking it against the current level table
func (app *AppContext) RestoreSession() error {
	session, err := utils.LoadSession(app.Env)
	if err != nil {
		return err
	}
	if session == nil {
		return nil
	}
	session.Rank = app.Ordering.Rank(session.Volunteer.Level)
	app.Session = session
	app.Logger.Debug("Session restored",
		zap.String("volunteer", session.Volunteer.DisplayName()),
		zap.Int("rank", session.Rank))
	return nil
}
