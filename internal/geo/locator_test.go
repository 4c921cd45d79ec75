package geo

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/mesika/account-service/internal/config"
)

func newTestLocator(t *testing.T, endpoint string) *Locator {
	logger, err := zap.NewDevelopment()
	require.NoError(t, err)
	return NewLocator(&config.GeoConfig{
		Endpoint: endpoint,
		APIKey:   "test-key",
		Timeout:  time.Second,
	}, logger)
}

func TestLocator_Locate(t *testing.T) {
	tests := []struct {
		name     string
		response string
		status   int
		want     string
		wantErr  bool
	}{
		{
			name:     "full location",
			response: `{"city": "Lagos", "region_name": "Lagos", "country_name": "Nigeria"}`,
			status:   http.StatusOK,
			want:     "Lagos, Lagos, Nigeria",
		},
		{
			name:     "partial fields dropped",
			response: `{"city": "", "region_name": "", "country_name": "Nigeria"}`,
			status:   http.StatusOK,
			want:     "Nigeria",
		},
		{
			name:     "all fields empty",
			response: `{}`,
			status:   http.StatusOK,
			wantErr:  true,
		},
		{
			name:     "server error",
			response: `oops`,
			status:   http.StatusInternalServerError,
			wantErr:  true,
		},
		{
			name:     "malformed body",
			response: `{not json`,
			status:   http.StatusOK,
			wantErr:  true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				assert.Equal(t, "test-key", r.URL.Query().Get("access_key"))
				w.WriteHeader(tt.status)
				_, _ = w.Write([]byte(tt.response))
			}))
			defer srv.Close()

			loc, err := newTestLocator(t, srv.URL).Locate(context.Background(), "1.2.3.4")
			if tt.wantErr {
				assert.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, loc)
		})
	}
}

func TestLocator_Timeout(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		time.Sleep(200 * time.Millisecond)
	}))
	defer srv.Close()

	logger, err := zap.NewDevelopment()
	require.NoError(t, err)
	locator := NewLocator(&config.GeoConfig{
		Endpoint: srv.URL,
		APIKey:   "test-key",
		Timeout:  20 * time.Millisecond,
	}, logger)

	_, err = locator.Locate(context.Background(), "1.2.3.4")
	assert.Error(t, err)
}

func TestLocator_Unreachable(t *testing.T) {
	// Closed server: connection refused
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {}))
	srv.Close()

	_, err := newTestLocator(t, srv.URL).Locate(context.Background(), "1.2.3.4")
	assert.Error(t, err)
}
