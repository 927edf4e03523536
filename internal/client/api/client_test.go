package api

import (
	"context"
	"errors"
	"io"
	"mime"
	"net/http"
	"sync/atomic"
	"testing"

	"github.com/go-chi/chi/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNew_NormalizesBaseURL(t *testing.T) {
	assert.Equal(t, "https://api.example.com", New(" https://api.example.com/ ", nil).BaseURL())
	assert.Equal(t, "https://api.example.com/v1", New("https://api.example.com/v1//", nil).BaseURL())
	assert.Empty(t, New("", nil).BaseURL())
}

func TestRequest_NoBaseURLFailsBeforeNetwork(t *testing.T) {
	var calls atomic.Int32
	hc := &http.Client{Transport: roundTripFunc(func(r *http.Request) (*http.Response, error) {
		calls.Add(1)
		return nil, errors.New("unexpected")
	})}
	c := New("", signedIn(t, "a", "r"), WithHTTPClient(hc))

	_, err := c.Get(context.Background(), "/kiosks")

	require.ErrorIs(t, err, ErrNoBaseURL)
	var apiErr *APIError
	require.ErrorAs(t, err, &apiErr)
	assert.Zero(t, apiErr.Status)
	assert.Zero(t, calls.Load())
}

func TestRequest_PathNormalization(t *testing.T) {
	var paths []string
	srv := newServer(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		paths = append(paths, r.URL.Path)
		w.WriteHeader(http.StatusNoContent)
	}))
	c := New(srv.URL+"/", nil)

	for _, p := range []string{"kiosks", "/kiosks", "//kiosks", "///kiosks"} {
		_, err := c.Get(context.Background(), p)
		require.NoError(t, err)
	}
	assert.Equal(t, []string{"/kiosks", "/kiosks", "/kiosks", "/kiosks"}, paths)
}

func TestRequest_QueryString(t *testing.T) {
	var rawQuery string
	srv := newServer(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		rawQuery = r.URL.RawQuery
		writeJSON(w, http.StatusOK, []any{})
	}))
	c := New(srv.URL, nil)

	_, err := c.Get(context.Background(), "/kiosks", WithParams(Params{
		"status": "active",
		"branch": []string{"1", "2"},
		"q":      "",
		"org":    nil,
	}))
	require.NoError(t, err)
	assert.Equal(t, "branch=1&branch=2&status=active", rawQuery)

	_, err = c.Get(context.Background(), "/kiosks", WithParams(Params{"q": ""}))
	require.NoError(t, err)
	assert.Empty(t, rawQuery)
}

func TestRequest_Headers(t *testing.T) {
	var got http.Header
	srv := newServer(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		got = r.Header.Clone()
		w.WriteHeader(http.StatusNoContent)
	}))
	ctx := context.Background()

	t.Run("defaults with stored token", func(t *testing.T) {
		c := New(srv.URL, signedIn(t, "a1", "r1"), WithRequestIDs(func() string { return "req-1" }))
		_, err := c.Get(ctx, "/kiosks")
		require.NoError(t, err)
		assert.Equal(t, "application/json", got.Get("Accept"))
		assert.Equal(t, "Bearer a1", got.Get("Authorization"))
		assert.Equal(t, "req-1", got.Get(RequestIDHeader))
		assert.Empty(t, got.Get("Content-Type"))
	})

	t.Run("no token no authorization", func(t *testing.T) {
		c := New(srv.URL, nil)
		_, err := c.Get(ctx, "/kiosks")
		require.NoError(t, err)
		assert.Empty(t, got.Values("Authorization"))
	})

	t.Run("explicit token overrides store", func(t *testing.T) {
		c := New(srv.URL, signedIn(t, "a1", "r1"))
		_, err := c.Get(ctx, "/kiosks", WithToken("override"))
		require.NoError(t, err)
		assert.Equal(t, "Bearer override", got.Get("Authorization"))
	})

	t.Run("empty explicit token falls back to store", func(t *testing.T) {
		c := New(srv.URL, signedIn(t, "a1", "r1"))
		_, err := c.Get(ctx, "/kiosks", WithToken(""))
		require.NoError(t, err)
		assert.Equal(t, "Bearer a1", got.Get("Authorization"))
	})

	t.Run("skip auth sends no token", func(t *testing.T) {
		c := New(srv.URL, signedIn(t, "a1", "r1"))
		_, err := c.Post(ctx, LoginPath, map[string]string{"username": "u"}, SkipAuth(), WithToken("x"))
		require.NoError(t, err)
		assert.Empty(t, got.Values("Authorization"))
	})

	t.Run("caller headers override defaults", func(t *testing.T) {
		c := New(srv.URL, nil)
		_, err := c.Post(ctx, "/kiosks", "x",
			WithHeader("Accept", "text/csv"),
			WithHeader("Content-Type", "application/merge-patch+json"),
			WithHeader(RequestIDHeader, "mine"))
		require.NoError(t, err)
		assert.Equal(t, "text/csv", got.Get("Accept"))
		assert.Equal(t, "application/merge-patch+json", got.Get("Content-Type"))
		assert.Equal(t, "mine", got.Get(RequestIDHeader))
	})
}

func TestRequest_Bodies(t *testing.T) {
	type seen struct {
		method, contentType, body string
	}
	var got seen
	srv := newServer(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		b, _ := io.ReadAll(r.Body)
		got = seen{method: r.Method, contentType: r.Header.Get("Content-Type"), body: string(b)}
		w.WriteHeader(http.StatusNoContent)
	}))
	c := New(srv.URL, nil)
	ctx := context.Background()

	_, err := c.Post(ctx, "/kiosks", map[string]any{"name": "K-1"})
	require.NoError(t, err)
	assert.Equal(t, seen{http.MethodPost, "application/json", `{"name":"K-1"}`}, got)

	_, err = c.Request(ctx, "/kiosks", WithMethod("get"), WithBody(map[string]any{"ignored": true}))
	require.NoError(t, err)
	assert.Equal(t, seen{http.MethodGet, "", ""}, got)

	_, err = c.Delete(ctx, "/kiosks/1")
	require.NoError(t, err)
	assert.Equal(t, seen{http.MethodDelete, "", ""}, got)

	form := NewFormData().Add("title", "Summer").AddFile("file", "a.txt", []byte("hello"))
	_, err = c.Post(ctx, "/advertisements", form, WithHeader("Content-Type", "application/json"))
	require.NoError(t, err)
	mediaType, params, err := mime.ParseMediaType(got.contentType)
	require.NoError(t, err)
	assert.Equal(t, "multipart/form-data", mediaType)
	assert.NotEmpty(t, params["boundary"])
	assert.Contains(t, got.body, `name="title"`)
	assert.Contains(t, got.body, "hello")
}

func TestRequest_UnencodableBody(t *testing.T) {
	c := New("http://unused", nil)
	_, err := c.Post(context.Background(), "/kiosks", map[string]any{"ch": make(chan int)})
	require.ErrorContains(t, err, "encode json body")
}

func TestRequest_ResponsePayloads(t *testing.T) {
	r := chi.NewRouter()
	r.Get("/json", func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, http.StatusOK, map[string]any{"ok": true})
	})
	r.Get("/json-as-text", func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "text/plain")
		_, _ = w.Write([]byte(`{"ok":true}`))
	})
	r.Get("/text", func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "text/plain")
		_, _ = w.Write([]byte("pong"))
	})
	r.Get("/empty", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusNoContent)
	})
	srv := newServer(t, r)
	c := New(srv.URL, nil)
	ctx := context.Background()

	res, err := c.Get(ctx, "/json")
	require.NoError(t, err)
	assert.Equal(t, map[string]any{"ok": true}, res.Payload)

	res, err = c.Get(ctx, "/json-as-text")
	require.NoError(t, err)
	assert.Equal(t, map[string]any{"ok": true}, res.Payload)

	res, err = c.Get(ctx, "/text")
	require.NoError(t, err)
	assert.Equal(t, "pong", res.Payload)
	var s string
	require.NoError(t, res.Decode(&s))
	assert.Equal(t, "pong", s)
	var m map[string]any
	assert.Error(t, res.Decode(&m))

	res, err = c.Get(ctx, "/empty")
	require.NoError(t, err)
	assert.Nil(t, res.Payload)
	assert.True(t, res.Empty())
	assert.Equal(t, http.StatusNoContent, res.StatusCode)
}

func TestRequest_ErrorResponses(t *testing.T) {
	r := chi.NewRouter()
	r.Get("/conflict", func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, http.StatusConflict, map[string]any{"message": "duplicate", "detail": "ignored"})
	})
	r.Get("/broken", func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "text/html")
		w.WriteHeader(http.StatusBadGateway)
		_, _ = w.Write([]byte("<html>bad gateway</html>"))
	})
	srv := newServer(t, r)
	c := New(srv.URL, nil)

	_, err := c.Get(context.Background(), "/conflict")
	var apiErr *APIError
	require.ErrorAs(t, err, &apiErr)
	assert.Equal(t, http.StatusConflict, apiErr.Status)
	assert.Equal(t, "duplicate", apiErr.Message)
	assert.Equal(t, map[string]any{"message": "duplicate", "detail": "ignored"}, apiErr.Details)
	assert.Equal(t, "api: 409 duplicate", apiErr.Error())

	_, err = c.Get(context.Background(), "/broken")
	require.ErrorAs(t, err, &apiErr)
	assert.Equal(t, http.StatusBadGateway, apiErr.Status)
	assert.Equal(t, "Bad Gateway", apiErr.Message)
	assert.Equal(t, "<html>bad gateway</html>", apiErr.Details)
}

func TestRequest_TransportErrorIsPropagated(t *testing.T) {
	boom := errors.New("connection refused")
	hc := &http.Client{Transport: roundTripFunc(func(r *http.Request) (*http.Response, error) {
		return nil, boom
	})}
	c := New("http://api.invalid", signedIn(t, "a", "r"), WithHTTPClient(hc))

	_, err := c.Get(context.Background(), "/kiosks")

	require.ErrorIs(t, err, boom)
	var apiErr *APIError
	assert.False(t, errors.As(err, &apiErr))
}

func TestRequest_CallerCancellation(t *testing.T) {
	release := make(chan struct{})
	srv := newServer(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		select {
		case <-release:
		case <-r.Context().Done():
		}
	}))
	defer close(release)
	c := New(srv.URL, nil)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	_, err := c.Get(ctx, "/slow")
	require.ErrorIs(t, err, context.Canceled)
}

func TestVerbs_UseFixedMethods(t *testing.T) {
	var methods []string
	srv := newServer(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		methods = append(methods, r.Method)
		w.WriteHeader(http.StatusNoContent)
	}))
	c := New(srv.URL, nil)
	ctx := context.Background()

	_, err := c.Get(ctx, "/x", WithMethod(http.MethodPost))
	require.NoError(t, err)
	_, err = c.Post(ctx, "/x", nil)
	require.NoError(t, err)
	_, err = c.Put(ctx, "/x", nil)
	require.NoError(t, err)
	_, err = c.Patch(ctx, "/x", nil)
	require.NoError(t, err)
	_, err = c.Delete(ctx, "/x")
	require.NoError(t, err)

	assert.Equal(t, []string{"GET", "POST", "PUT", "PATCH", "DELETE"}, methods)
}
