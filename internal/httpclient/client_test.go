package httpclient

import (
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDoInjectsUserAgent(t *testing.T) {
	var gotUA string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotUA = r.Header.Get("User-Agent")
	}))
	defer srv.Close()

	c := New(nil)
	defer c.Close()

	resp, err := c.Get(context.Background(), srv.URL)
	require.NoError(t, err)
	require.NoError(t, resp.Body.Close())
	assert.Equal(t, defaultUserAgent, gotUA)
}

func TestDoPreservesCallerUserAgent(t *testing.T) {
	var gotUA string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotUA = r.Header.Get("User-Agent")
	}))
	defer srv.Close()

	c := New(nil)
	defer c.Close()

	req, err := http.NewRequest(http.MethodGet, srv.URL, http.NoBody)
	require.NoError(t, err)
	req.Header.Set("User-Agent", "custom-agent")

	resp, err := c.Do(context.Background(), req)
	require.NoError(t, err)
	require.NoError(t, resp.Body.Close())
	assert.Equal(t, "custom-agent", gotUA)
}

// The default timeout context must stay alive until the body is consumed,
// not just until Do returns.
func TestDoBodyReadableAfterReturn(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte("payload"))
	}))
	defer srv.Close()

	c := New(&Config{DefaultTimeout: 5 * time.Second})
	defer c.Close()

	resp, err := c.Get(context.Background(), srv.URL)
	require.NoError(t, err)
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	require.NoError(t, err)
	assert.Equal(t, "payload", string(body))
}

func TestDoDefaultTimeoutExpires(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		time.Sleep(200 * time.Millisecond)
	}))
	defer srv.Close()

	c := New(&Config{DefaultTimeout: 20 * time.Millisecond})
	defer c.Close()

	_, err := c.Get(context.Background(), srv.URL) //nolint:bodyclose
	assert.Error(t, err)
}

func TestPostMarshalsStructsToJSON(t *testing.T) {
	var gotContentType string
	var gotBody map[string]string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotContentType = r.Header.Get("Content-Type")
		_ = json.NewDecoder(r.Body).Decode(&gotBody)
	}))
	defer srv.Close()

	c := New(nil)
	defer c.Close()

	resp, err := c.Post(context.Background(), srv.URL, "", map[string]string{"inputs": "hello"})
	require.NoError(t, err)
	require.NoError(t, resp.Body.Close())

	assert.Equal(t, "application/json", gotContentType)
	assert.Equal(t, "hello", gotBody["inputs"])
}

func TestDoNilRequest(t *testing.T) {
	c := New(nil)
	defer c.Close()

	_, err := c.Do(context.Background(), nil) //nolint:bodyclose
	assert.Error(t, err)
}
