package cli

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/dmitrijs2005/kioskadmin/internal/client/api"
	"github.com/dmitrijs2005/kioskadmin/internal/client/models"
)

var errUsage = errors.New("usage")

// Resources prints the collections available to the signed-in role.
func (a *App) Resources(_ context.Context) error {
	infos := a.resources.Available(a.currentRole())
	rows := make([][]string, 0, len(infos))
	for _, info := range infos {
		rows = append(rows, []string{info.Name, info.Path, string(info.Section)})
	}
	return printTable(a.out, []string{"RESOURCE", "PATH", "SECTION"}, rows)
}

// List prints a collection: list <resource> [name=value ...].
func (a *App) List(ctx context.Context, args []string) error {
	if len(args) == 0 {
		return a.usage("list <resource> [name=value ...]")
	}
	pairs, err := models.PairsFromStrings(args[1:])
	if err != nil {
		return a.fail(err)
	}
	params := api.Params(pairs)
	role := a.currentRole()

	switch args[0] {
	case "organizations":
		return a.fail(a.listOrganizations(ctx, role, params))
	case "users":
		return a.fail(a.listUsers(ctx, role, params))
	}

	info, err := a.resources.Lookup(role, args[0])
	if err != nil {
		return a.fail(err)
	}
	payload, err := a.resources.Fetch(ctx, role, args[0], params)
	if err != nil {
		return a.fail(err)
	}
	return printPayload(a.out, payload, info.Columns)
}

func (a *App) listOrganizations(ctx context.Context, role models.Role, params api.Params) error {
	res, err := a.resources.Organizations(role)
	if err != nil {
		return err
	}
	orgs, err := res.List(ctx, params)
	if err != nil {
		return err
	}
	rows := make([][]string, 0, len(orgs))
	for _, o := range orgs {
		rows = append(rows, []string{o.ID.String(), o.DisplayName, o.Status, o.ExpiresAt, strconv.Itoa(len(o.Branches))})
	}
	return printTable(a.out, []string{"ID", "NAME", "STATUS", "EXPIRES", "BRANCHES"}, rows)
}

func (a *App) listUsers(ctx context.Context, role models.Role, params api.Params) error {
	res, err := a.resources.Users(role)
	if err != nil {
		return err
	}
	users, err := res.List(ctx, params)
	if err != nil {
		return err
	}
	rows := make([][]string, 0, len(users))
	for _, u := range users {
		rows = append(rows, []string{u.ID.String(), u.Name, u.Phone, u.Email, strconv.FormatBool(u.IsSuper)})
	}
	return printTable(a.out, []string{"ID", "NAME", "PHONE", "EMAIL", "SUPER"}, rows)
}

// Get prints one item: get <resource> <id>.
func (a *App) Get(ctx context.Context, args []string) error {
	if len(args) != 2 {
		return a.usage("get <resource> <id>")
	}
	res, err := a.resources.Records(a.currentRole(), args[0])
	if err != nil {
		return a.fail(err)
	}
	item, err := res.Get(ctx, args[1])
	if err != nil {
		return a.fail(err)
	}
	return printJSON(a.out, item)
}

// Create posts a JSON body: create <resource> <json>.
func (a *App) Create(ctx context.Context, args []string) error {
	if len(args) < 2 {
		return a.usage("create <resource> <json>")
	}
	res, body, err := a.recordsWithBody(args[0], args[1:])
	if err != nil {
		return a.fail(err)
	}
	item, err := res.Create(ctx, body)
	return a.printItem(item, err, "Created")
}

// Update replaces an item: update <resource> <id> <json>.
func (a *App) Update(ctx context.Context, args []string) error {
	if len(args) < 3 {
		return a.usage("update <resource> <id> <json>")
	}
	res, body, err := a.recordsWithBody(args[0], args[2:])
	if err != nil {
		return a.fail(err)
	}
	item, err := res.Update(ctx, args[1], body)
	return a.printItem(item, err, "Updated")
}

// Patch changes some fields: patch <resource> <id> <json>.
func (a *App) Patch(ctx context.Context, args []string) error {
	if len(args) < 3 {
		return a.usage("patch <resource> <id> <json>")
	}
	res, body, err := a.recordsWithBody(args[0], args[2:])
	if err != nil {
		return a.fail(err)
	}
	item, err := res.Patch(ctx, args[1], body)
	return a.printItem(item, err, "Updated")
}

// Delete removes an item: delete <resource> <id>.
func (a *App) Delete(ctx context.Context, args []string) error {
	if len(args) != 2 {
		return a.usage("delete <resource> <id>")
	}
	res, err := a.resources.Records(a.currentRole(), args[0])
	if err != nil {
		return a.fail(err)
	}
	if err := res.Remove(ctx, args[1]); err != nil {
		return a.fail(err)
	}
	fmt.Fprintln(a.out, "Deleted")
	return nil
}

// Upload sends a file as multipart form data:
// upload <resource> <file> [name=value ...].
func (a *App) Upload(ctx context.Context, args []string) error {
	if len(args) < 2 {
		return a.usage("upload <resource> <file> [name=value ...]")
	}
	fields, err := models.PairsFromStrings(args[2:])
	if err != nil {
		return a.fail(err)
	}
	content, err := os.ReadFile(args[1])
	if err != nil {
		return a.fail(err)
	}

	form := api.NewFormData()
	for name, value := range fields {
		switch v := value.(type) {
		case string:
			form.Add(name, v)
		case []string:
			for _, item := range v {
				form.Add(name, item)
			}
		}
	}
	form.AddFile("file", filepath.Base(args[1]), content)

	payload, err := a.resources.Upload(ctx, a.currentRole(), args[0], form)
	if err != nil {
		return a.fail(err)
	}
	fmt.Fprintln(a.out, "Uploaded")
	return printPayload(a.out, payload, nil)
}

func (a *App) recordsWithBody(name string, raw []string) (*api.Resource[models.Record], map[string]any, error) {
	res, err := a.resources.Records(a.currentRole(), name)
	if err != nil {
		return nil, nil, err
	}
	var body map[string]any
	if err := json.Unmarshal([]byte(strings.Join(raw, " ")), &body); err != nil {
		return nil, nil, fmt.Errorf("body must be a JSON object: %w", err)
	}
	return res, body, nil
}

func (a *App) printItem(item *models.Record, err error, verb string) error {
	if err != nil {
		return a.fail(err)
	}
	if item == nil {
		fmt.Fprintln(a.out, verb)
		return nil
	}
	fmt.Fprintf(a.out, "%s %s\n", verb, item.ID())
	return printJSON(a.out, item)
}

func (a *App) usage(text string) error {
	fmt.Fprintln(a.out, "Usage:", text)
	return errUsage
}

// fail prints err for the user and returns it. A nil err passes through.
func (a *App) fail(err error) error {
	if err == nil {
		return nil
	}
	var apiErr *api.APIError
	if errors.As(err, &apiErr) && apiErr.Status != 0 {
		fmt.Fprintf(a.out, "Error (%d): %s\n", apiErr.Status, apiErr.Message)
		return err
	}
	fmt.Fprintln(a.out, "Error:", err)
	return err
}
