package services

import (
	"context"
	"fmt"
	"sort"

	"github.com/dmitrijs2005/kioskadmin/internal/client/access"
	"github.com/dmitrijs2005/kioskadmin/internal/client/api"
	"github.com/dmitrijs2005/kioskadmin/internal/client/models"
)

// ResourceInfo describes one backend collection reachable from the console.
type ResourceInfo struct {
	Name    string
	Path    string
	Section access.Section
	// Columns are shown first when the collection is printed as a table.
	Columns []string
}

var catalog = []ResourceInfo{
	{Name: "organizations", Path: "/organizations", Section: access.Organizations, Columns: []string{"id", "display_name", "status", "expires_at"}},
	{Name: "users", Path: "/platform/users", Section: access.Users, Columns: []string{"id", "name", "phone", "email", "is_super"}},
	{Name: "accounts", Path: "/accounts", Section: access.Accounts, Columns: []string{"id", "name", "balance"}},
	{Name: "qr-codes", Path: "/qr-codes", Section: access.QRCodes, Columns: []string{"id", "code", "kiosk_id"}},
	{Name: "kiosks", Path: "/kiosks", Section: access.Kiosks, Columns: []string{"id", "name", "status", "branch"}},
	{Name: "cards", Path: "/cards", Section: access.Kiosks, Columns: []string{"id", "uid", "balance", "status"}},
	{Name: "price-goods", Path: "/price-goods", Section: access.PriceGoods, Columns: []string{"id", "name", "price"}},
	{Name: "advertisements", Path: "/advertisements", Section: access.Advertisements, Columns: []string{"id", "title", "status"}},
	{Name: "statistics", Path: "/statistics", Section: access.Statistics},
	{Name: "promotions", Path: "/promotions", Section: access.Promotions, Columns: []string{"id", "name", "starts_at", "ends_at"}},
	{Name: "workers", Path: "/workers", Section: access.Workers, Columns: []string{"id", "name", "phone"}},
}

// ResourceService resolves resource names to role-checked CRUD façades.
type ResourceService interface {
	// Available lists the resources role may open, sorted by name.
	Available(role models.Role) []ResourceInfo
	Lookup(role models.Role, name string) (ResourceInfo, error)
	Records(role models.Role, name string) (*api.Resource[models.Record], error)
	Organizations(role models.Role) (*api.Resource[models.Organization], error)
	Users(role models.Role) (*api.Resource[models.PlatformUser], error)
	// Fetch returns the raw collection payload, for collections that do not
	// answer with a plain array (statistics).
	Fetch(ctx context.Context, role models.Role, name string, params api.Params) (any, error)
	// Upload posts a multipart form to the collection.
	Upload(ctx context.Context, role models.Role, name string, form *api.FormData) (any, error)
}

type resourceService struct {
	client *api.Client
	byName map[string]ResourceInfo
}

func NewResourceService(client *api.Client) ResourceService {
	byName := make(map[string]ResourceInfo, len(catalog))
	for _, info := range catalog {
		byName[info.Name] = info
	}
	return &resourceService{client: client, byName: byName}
}

func (s *resourceService) Available(role models.Role) []ResourceInfo {
	out := make([]ResourceInfo, 0, len(catalog))
	for _, info := range catalog {
		if access.Allowed(role, info.Section) {
			out = append(out, info)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Name < out[j].Name })
	return out
}

func (s *resourceService) Lookup(role models.Role, name string) (ResourceInfo, error) {
	info, ok := s.byName[name]
	if !ok {
		return ResourceInfo{}, fmt.Errorf("%w: %s", ErrUnknownResource, name)
	}
	if !access.Allowed(role, info.Section) {
		return ResourceInfo{}, fmt.Errorf("%w: %s", ErrForbidden, info.Section)
	}
	return info, nil
}

func (s *resourceService) Records(role models.Role, name string) (*api.Resource[models.Record], error) {
	info, err := s.Lookup(role, name)
	if err != nil {
		return nil, err
	}
	return api.NewResource[models.Record](s.client, info.Path), nil
}

func (s *resourceService) Organizations(role models.Role) (*api.Resource[models.Organization], error) {
	info, err := s.Lookup(role, "organizations")
	if err != nil {
		return nil, err
	}
	return api.NewResource[models.Organization](s.client, info.Path), nil
}

func (s *resourceService) Users(role models.Role) (*api.Resource[models.PlatformUser], error) {
	info, err := s.Lookup(role, "users")
	if err != nil {
		return nil, err
	}
	return api.NewResource[models.PlatformUser](s.client, info.Path), nil
}

func (s *resourceService) Upload(ctx context.Context, role models.Role, name string, form *api.FormData) (any, error) {
	info, err := s.Lookup(role, name)
	if err != nil {
		return nil, err
	}
	res, err := s.client.Post(ctx, info.Path, form)
	if err != nil {
		return nil, err
	}
	return res.Payload, nil
}

func (s *resourceService) Fetch(ctx context.Context, role models.Role, name string, params api.Params) (any, error) {
	info, err := s.Lookup(role, name)
	if err != nil {
		return nil, err
	}
	res, err := s.client.Get(ctx, info.Path, api.WithParams(params))
	if err != nil {
		return nil, err
	}
	return res.Payload, nil
}
