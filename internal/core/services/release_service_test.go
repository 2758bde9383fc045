package services

import (
	"context"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newReleaseServiceFor(t *testing.T, handler http.HandlerFunc) *ReleaseService {
	t.Helper()
	srv := httptest.NewServer(handler)
	t.Cleanup(srv.Close)
	return &ReleaseService{
		client: &http.Client{Timeout: time.Second},
		url:    srv.URL,
	}
}

func releaseJSON(tag string) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		fmt.Fprintf(w, `{"tag_name":%q,"html_url":"https://example.com/releases/%s"}`, tag, tag)
	}
}

func TestCheckForUpdates_NewerRelease(t *testing.T) {
	svc := newReleaseServiceFor(t, releaseJSON("v9.9.9"))

	info := svc.CheckForUpdates(context.Background())
	require.NotNil(t, info)
	assert.Equal(t, "9.9.9", info.Version)
	assert.True(t, info.Newer)
	assert.Equal(t, "https://example.com/releases/v9.9.9", info.DownloadURL)

	// The result is cached for the version endpoint
	cached := svc.Latest()
	require.NotNil(t, cached)
	assert.Equal(t, "9.9.9", cached.Version)
}

func TestCheckForUpdates_CurrentRelease(t *testing.T) {
	svc := newReleaseServiceFor(t, releaseJSON("v"+AppVersion))

	info := svc.CheckForUpdates(context.Background())
	require.NotNil(t, info)
	assert.False(t, info.Newer)
}

func TestCheckForUpdates_StringOrderedTags(t *testing.T) {
	// Tags compare as plain strings, so a hypothetical "1.10.0" sorts
	// below the running "1.2.0" and is not offered as an update.
	svc := newReleaseServiceFor(t, releaseJSON("v1.10.0"))

	info := svc.CheckForUpdates(context.Background())
	require.NotNil(t, info)
	assert.False(t, info.Newer)
}

func TestCheckForUpdates_FeedFailureIsNonFatal(t *testing.T) {
	svc := newReleaseServiceFor(t, func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusServiceUnavailable)
	})

	info := svc.CheckForUpdates(context.Background())
	assert.Nil(t, info)
	assert.Nil(t, svc.Latest())
}
