package cli

import (
	"bufio"
	"context"
	"database/sql"
	"io"
	"net/http"
	"os"
	"sync"
	"sync/atomic"
	"time"

	"github.com/dmitrijs2005/kioskadmin/internal/client/api"
	"github.com/dmitrijs2005/kioskadmin/internal/client/config"
	"github.com/dmitrijs2005/kioskadmin/internal/client/credentials"
	"github.com/dmitrijs2005/kioskadmin/internal/client/localdb"
	"github.com/dmitrijs2005/kioskadmin/internal/client/models"
	"github.com/dmitrijs2005/kioskadmin/internal/client/services"
	"github.com/dmitrijs2005/kioskadmin/internal/common"
	"github.com/dmitrijs2005/kioskadmin/internal/logging"
)

type Mode string

const (
	ModeOffline Mode = "offline"
	ModeOnline  Mode = "online"
)

type App struct {
	config    *config.Config
	auth      services.AuthService
	resources services.ResourceService
	logger    logging.Logger
	db        *sql.DB

	reader *bufio.Reader
	out    io.Writer

	mu   sync.RWMutex
	user *models.SessionUser
	role models.Role
	mode Mode

	// expired is set by the API client's navigator and consumed by the REPL.
	expired atomic.Bool
}

// NewApp opens the local database and builds the API client and services
// for cfg. Close releases the database.
func NewApp(ctx context.Context, cfg *config.Config, logger logging.Logger) (*App, error) {
	db, err := localdb.Open(ctx, cfg.DatabasePath)
	if err != nil {
		return nil, err
	}

	a := &App{
		config: cfg,
		logger: logger,
		db:     db,
		reader: bufio.NewReader(os.Stdin),
		out:    os.Stdout,
	}

	if cfg.ResetLocal {
		if err := credentials.Wipe(ctx, db); err != nil {
			_ = db.Close()
			return nil, err
		}
		logger.Info(ctx, "local session data wiped")
	}

	var storeOpts []credentials.SQLiteOption
	if cfg.StoreKey != "" {
		passphrase := []byte(cfg.StoreKey)
		c, err := credentials.NewPassphraseCipher(ctx, db, passphrase)
		common.WipeByteArray(passphrase)
		if err != nil {
			_ = db.Close()
			return nil, err
		}
		storeOpts = append(storeOpts, credentials.WithCipher(c))
	}

	store := credentials.NewSQLiteStore(db, storeOpts...)
	client := api.New(cfg.APIBaseURL, store,
		api.WithHTTPClient(&http.Client{Timeout: cfg.RequestTimeout}),
		api.WithLogger(logger.With("component", "api")),
		api.WithNavigator(a.sessionExpired),
	)
	a.auth = services.NewAuthService(client, store, cfg.HealthPath)
	a.resources = services.NewResourceService(client)
	return a, nil
}

func (a *App) Close() error {
	if a.db == nil {
		return nil
	}
	return a.db.Close()
}

func (a *App) Run(ctx context.Context) {
	defer a.Close()
	a.Root(ctx)
}

// sessionExpired is the API client's navigator.
func (a *App) sessionExpired(ctx context.Context) {
	a.expired.Store(true)
	a.logger.Warn(ctx, "session expired, returning to login")
}

func (a *App) isLoggedIn() bool {
	a.mu.RLock()
	defer a.mu.RUnlock()
	return a.role != ""
}

func (a *App) currentRole() models.Role {
	a.mu.RLock()
	defer a.mu.RUnlock()
	return a.role
}

func (a *App) setSession(user *models.SessionUser, role models.Role) {
	a.mu.Lock()
	defer a.mu.Unlock()
	a.user, a.role = user, role
}

func (a *App) currentMode() Mode {
	a.mu.RLock()
	defer a.mu.RUnlock()
	return a.mode
}

func (a *App) setMode(ctx context.Context, mode Mode) {
	a.mu.Lock()
	changed := a.mode != mode
	a.mode = mode
	a.mu.Unlock()
	if changed {
		a.logger.Info(ctx, "connectivity changed", "mode", mode)
	}
}

// consumeExpiry reports whether the session expired since the last call and
// forgets the signed-in user if so.
func (a *App) consumeExpiry() bool {
	if !a.expired.CompareAndSwap(true, false) {
		return false
	}
	a.setSession(nil, "")
	return true
}

// StartOnlineStatusWatcher checks the backend every interval and switches
// between online and offline mode. It returns when ctx is done.
func (a *App) StartOnlineStatusWatcher(ctx context.Context, interval time.Duration) {
	if interval <= 0 {
		return
	}
	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	for {
		select {
		case <-ticker.C:
			a.checkOnline(ctx)
		case <-ctx.Done():
			return
		}
	}
}

func (a *App) checkOnline(ctx context.Context) {
	pingCtx, cancel := context.WithTimeout(ctx, 3*time.Second)
	err := a.auth.Ping(pingCtx)
	cancel()

	if err != nil {
		a.setMode(ctx, ModeOffline)
		return
	}
	a.setMode(ctx, ModeOnline)
}
