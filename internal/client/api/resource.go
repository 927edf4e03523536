package api

import (
	"context"
	"net/url"
	"strings"
)

// Resource is the CRUD façade for one collection: {path} and {path}/{id}.
// List expects the backend to answer with a JSON array.
type Resource[T any] struct {
	client *Client
	path   string
}

// NewResource binds a collection path to c. Trailing slashes are dropped and
// a leading one is added.
func NewResource[T any](c *Client, path string) *Resource[T] {
	return &Resource[T]{client: c, path: normalizePath(strings.TrimRight(path, "/"))}
}

// Path returns the normalized collection path.
func (r *Resource[T]) Path() string {
	return r.path
}

func (r *Resource[T]) item(id string) string {
	return r.path + "/" + url.PathEscape(id)
}

// List fetches the collection filtered by params.
func (r *Resource[T]) List(ctx context.Context, params Params) ([]T, error) {
	res, err := r.client.Get(ctx, r.path, WithParams(params))
	if err != nil {
		return nil, err
	}
	var out []T
	if err := res.Decode(&out); err != nil {
		return nil, err
	}
	return out, nil
}

// Get fetches one item by id.
func (r *Resource[T]) Get(ctx context.Context, id string) (*T, error) {
	return decodeOne[T](r.client.Get(ctx, r.item(id)))
}

// Create posts body to the collection and returns the created item, or nil
// when the backend answers without a body.
func (r *Resource[T]) Create(ctx context.Context, body any) (*T, error) {
	return decodeOne[T](r.client.Post(ctx, r.path, body))
}

// Update replaces the item with body.
func (r *Resource[T]) Update(ctx context.Context, id string, body any) (*T, error) {
	return decodeOne[T](r.client.Put(ctx, r.item(id), body))
}

// Patch changes the fields present in body.
func (r *Resource[T]) Patch(ctx context.Context, id string, body any) (*T, error) {
	return decodeOne[T](r.client.Patch(ctx, r.item(id), body))
}

// Remove deletes the item. The response body is ignored.
func (r *Resource[T]) Remove(ctx context.Context, id string) error {
	_, err := r.client.Delete(ctx, r.item(id))
	return err
}

// decodeOne returns nil for an empty (e.g. 204) body.
func decodeOne[T any](res *Response, err error) (*T, error) {
	if err != nil {
		return nil, err
	}
	if res.Empty() {
		return nil, nil
	}
	out := new(T)
	if err := res.Decode(out); err != nil {
		return nil, err
	}
	return out, nil
}
