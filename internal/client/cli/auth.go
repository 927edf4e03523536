package cli

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/dmitrijs2005/kioskadmin/internal/client/access"
	"github.com/dmitrijs2005/kioskadmin/internal/client/models"
	"github.com/dmitrijs2005/kioskadmin/internal/common"
)

// getSimpleText and getPassword are swapped in tests.
var getSimpleText = GetSimpleText
var getPassword = GetPassword

// Login prompts for a phone number (or username) and password and signs in.
// Failures are printed and returned.
func (a *App) Login(ctx context.Context) error {
	username, err := getSimpleText(a.reader, "Enter phone or username", a.out)
	if err != nil {
		return err
	}
	password, err := getPassword(a.out)
	if err != nil {
		return err
	}
	defer common.WipeByteArray(password)

	user, err := a.auth.Login(ctx, username, string(password))
	if err != nil {
		fmt.Fprintln(a.out, "Login failed:", err)
		return err
	}

	// the login payload may omit the profile; fall back to token claims
	session, err := a.auth.Session(ctx)
	if err != nil {
		return err
	}
	if user == nil {
		user = session.User
	}
	role := session.Role()
	a.expired.Store(false)
	a.setSession(user, role)

	fmt.Fprintf(a.out, "Welcome, %s (%s). Start with: list %s\n", displayName(user, username), role, access.Home(role))
	return nil
}

// Restore picks up a session saved by an earlier run. It reports whether one
// was found.
func (a *App) Restore(ctx context.Context) (bool, error) {
	session, err := a.auth.Session(ctx)
	if err != nil {
		return false, err
	}
	if !session.Authenticated {
		return false, nil
	}
	a.setSession(session.User, session.Role())
	fmt.Fprintf(a.out, "Restored session of %s (%s)\n", displayName(session.User, ""), session.Role())
	return true, nil
}

func (a *App) Logout(ctx context.Context) error {
	if err := a.auth.Logout(ctx); err != nil {
		fmt.Fprintln(a.out, "Logout failed:", err)
		return err
	}
	a.setSession(nil, "")
	fmt.Fprintln(a.out, "Logged out")
	return nil
}

// WhoAmI prints the signed-in user and the access-token expiry.
func (a *App) WhoAmI(ctx context.Context) error {
	session, err := a.auth.Session(ctx)
	if err != nil {
		return err
	}
	if !session.Authenticated {
		fmt.Fprintln(a.out, "Not logged in")
		return nil
	}

	rows := [][]string{{"role", string(session.Role())}}
	if u := session.User; u != nil {
		rows = append(rows,
			[]string{"id", u.ID.String()},
			[]string{"name", u.DisplayName()},
			[]string{"phone", u.Phone},
			[]string{"organization", u.OrganizationName},
		)
	}
	if c := session.Claims; c != nil {
		now := time.Now()
		if left, ok := c.ExpiresIn(now); ok {
			expiry := left.Round(time.Second).String()
			if c.Expired(now) {
				expiry = "expired (renewed on next call)"
			}
			rows = append(rows, []string{"token expires in", expiry})
		}
	}
	rows = append(rows,
		[]string{"sections", sectionList(session.Role())},
		[]string{"mode", string(a.currentMode())},
	)
	return printTable(a.out, []string{"FIELD", "VALUE"}, rows)
}

func sectionList(role models.Role) string {
	sections := access.Sections(role)
	names := make([]string, len(sections))
	for i, s := range sections {
		names[i] = string(s)
	}
	return strings.Join(names, ", ")
}

func displayName(u *models.SessionUser, fallback string) string {
	if name := u.DisplayName(); name != "" {
		return name
	}
	if fallback != "" {
		return fallback
	}
	return "admin"
}
