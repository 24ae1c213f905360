package loki

import (
	"context"
	"encoding/json"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"net/http"
	"net/http/httptest"
	"sync"
	"testing"
	"time"

	"compress/gzip"
)

type MockLogger struct{}

func (m *MockLogger) Error(msg string, args ...any) {
}

func Test_ConfigValidation(t *testing.T) {
	cfg := Config{}
	_, err := New(context.Background(), cfg, &MockLogger{})
	assert.Error(t, err)

	cfg.Url = "SomeUrl"
	pusher, err := New(context.Background(), cfg, &MockLogger{})
	assert.NoError(t, err)
	assert.Equal(t, cfg.Url, pusher.config.Url)
	assert.Equal(t, 1000, pusher.config.BatchMaxSize)
	assert.Equal(t, 5*time.Second, pusher.config.BatchMaxWait)
	assert.Equal(t, map[string]string{}, pusher.config.Labels)
}

func Test_StopFlushesPendingBatch(t *testing.T) {

	var mu sync.Mutex
	var received lokiPushRequest

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gz, err := gzip.NewReader(r.Body)
		require.NoError(t, err)

		mu.Lock()
		require.NoError(t, json.NewDecoder(gz).Decode(&received))
		mu.Unlock()

		w.WriteHeader(http.StatusNoContent)
	}))
	defer server.Close()

	pusher, err := New(context.Background(), Config{
		Url:          server.URL,
		BatchMaxWait: time.Minute,
		Labels:       map[string]string{"app": "test"},
	}, &MockLogger{})
	require.NoError(t, err)

	require.NoError(t, pusher.Push(LogEntry{Level: "info", Message: "first"}))
	require.NoError(t, pusher.Push(LogEntry{Level: "error", Message: "second"}))
	pusher.Stop()

	mu.Lock()
	defer mu.Unlock()
	require.Len(t, received.Streams, 1)
	assert.Equal(t, map[string]string{"app": "test"}, received.Streams[0].Stream)
	assert.Len(t, received.Streams[0].Values, 2)
}
