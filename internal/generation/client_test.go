package generation

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newServer(t *testing.T, status int, body string) *httptest.Server {
	t.Helper()
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodGet, r.Method)
		assert.Equal(t, "/api/generate", r.URL.Path)
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(status)
		_, _ = w.Write([]byte(body))
	}))
	t.Cleanup(srv.Close)
	return srv
}

func TestClient_Fetch(t *testing.T) {
	tests := []struct {
		name       string
		status     int
		body       string
		wantURL    string
		wantReqErr bool
		wantStatus int
	}{
		{name: "image url", status: 200, body: `{"imageUrl":"/img/cat.png"}`, wantURL: "/img/cat.png"},
		{name: "extra fields ignored", status: 200, body: `{"imageUrl":"/img/dog.png","seed":42}`, wantURL: "/img/dog.png"},
		{name: "empty object", status: 200, body: `{}`},
		{name: "empty image url", status: 200, body: `{"imageUrl":""}`},
		{name: "foreign shape array", status: 200, body: `[1,2,3]`},
		{name: "foreign shape number field", status: 200, body: `{"imageUrl":7}`},
		{name: "null body", status: 200, body: `null`},
		{name: "malformed body", status: 200, body: `{"imageUrl":`, wantReqErr: true, wantStatus: 200},
		{name: "server error", status: 500, body: `{"detail":"boom"}`, wantReqErr: true, wantStatus: 500},
		{name: "not found with url", status: 404, body: `{"imageUrl":"/img/cat.png"}`, wantReqErr: true, wantStatus: 404},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			srv := newServer(t, tt.status, tt.body)
			c := NewClient(srv.URL+"/api/generate", 5*time.Second)

			res, err := c.Fetch(context.Background())
			if tt.wantReqErr {
				var reqErr *RequestError
				require.ErrorAs(t, err, &reqErr)
				assert.Equal(t, tt.wantStatus, reqErr.Status)
				assert.Equal(t, c.Endpoint(), reqErr.URL)
				assert.False(t, res.Usable())
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.wantURL, res.ImageURL)
			assert.Equal(t, tt.wantURL != "", res.Usable())
		})
	}
}

func TestClient_Fetch_NetworkError(t *testing.T) {
	srv := httptest.NewServer(http.NotFoundHandler())
	endpoint := srv.URL + "/api/generate"
	srv.Close()

	_, err := NewClient(endpoint, time.Second).Fetch(context.Background())
	require.Error(t, err)
	assert.True(t, IsRequestError(err))

	var reqErr *RequestError
	require.ErrorAs(t, err, &reqErr)
	assert.Zero(t, reqErr.Status)
}

func TestClient_Fetch_BodyTooLarge(t *testing.T) {
	big := `{"imageUrl":"` + strings.Repeat("a", MaxBodyBytes) + `"}`
	srv := newServer(t, 200, big)

	_, err := NewClient(srv.URL+"/api/generate", 5*time.Second).Fetch(context.Background())
	assert.ErrorIs(t, err, ErrBodyTooLarge)
}

func TestClient_Fetch_Timeout(t *testing.T) {
	release := make(chan struct{})
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		select {
		case <-release:
		case <-r.Context().Done():
		}
	}))
	defer srv.Close()
	defer close(release)

	_, err := NewClient(srv.URL, 50*time.Millisecond).Fetch(context.Background())
	assert.True(t, IsRequestError(err))
}

func TestDecode_MalformedIsRequestError(t *testing.T) {
	_, err := Decode([]byte("<html>"))
	assert.True(t, errors.Is(err, ErrMalformedBody))
}
