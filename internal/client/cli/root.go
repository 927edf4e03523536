package cli

import (
	"context"
	"fmt"
	"strings"
)

func (a *App) getStatus() string {
	a.mu.RLock()
	defer a.mu.RUnlock()

	var parts []string
	if name := a.user.DisplayName(); name != "" {
		parts = append(parts, name)
	}
	if a.role != "" {
		parts = append(parts, string(a.role))
	}
	if a.mode != "" {
		parts = append(parts, string(a.mode))
	}
	if len(parts) == 0 {
		return ""
	}
	return fmt.Sprintf("(%s) ", strings.Join(parts, " "))
}

// Root restores or establishes a session, starts the connectivity watcher and
// runs the REPL until the user exits or stdin closes.
func (a *App) Root(ctx context.Context) {
	fmt.Fprintln(a.out, "Welcome to kioskadmin console (type 'help' for commands)")
	if a.config.APIBaseURL == "" {
		fmt.Fprintln(a.out, "Warning: API base URL is not configured (use -a or KIOSKADMIN_API_URL)")
	}

	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	a.checkOnline(ctx)
	go a.StartOnlineStatusWatcher(ctx, a.config.OnlineCheckInterval)

	restored, err := a.Restore(ctx)
	if err != nil {
		a.logger.Error(ctx, "failed to restore session", "error", err)
	}
	if !restored {
		_ = a.Login(ctx)
	}

	runREPL(ctx, a, a.getStatus, a.reader)
}
