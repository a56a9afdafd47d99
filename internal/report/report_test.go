package report

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func fastConfig(url string) Config {
	cfg := DefaultConfig()
	cfg.BaseURL = url
	cfg.InitialWait = time.Millisecond
	cfg.MaxWait = 5 * time.Millisecond
	return cfg
}

func TestSendSuccess(t *testing.T) {
	var got Completion
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/v1/completions", r.URL.Path)
		assert.Equal(t, http.MethodPost, r.Method)
		assert.Equal(t, "Bearer secret", r.Header.Get("Authorization"))
		assert.NoError(t, json.NewDecoder(r.Body).Decode(&got))
		_ = json.NewEncoder(w).Encode(Ack{Message: "Nice work!"})
	}))
	defer srv.Close()

	cfg := fastConfig(srv.URL)
	cfg.Token = "secret"
	ack, err := NewClient(cfg).Send(context.Background(), "sess-1", 42, 580)
	require.NoError(t, err)
	assert.Equal(t, "Nice work!", ack)
	assert.Equal(t, Completion{SessionID: "sess-1", Score: 42, TimePlayedSeconds: 580}, got)
}

func TestSendRetriesServerErrors(t *testing.T) {
	var hits int
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		hits++
		if hits < 3 {
			w.WriteHeader(http.StatusServiceUnavailable)
			return
		}
		_ = json.NewEncoder(w).Encode(Ack{Message: "ok"})
	}))
	defer srv.Close()

	ack, err := NewClient(fastConfig(srv.URL)).Send(context.Background(), "sess-2", 10, 60)
	require.NoError(t, err)
	assert.Equal(t, "ok", ack)
	assert.Equal(t, 3, hits)
}

func TestSendGivesUpAfterMaxAttempts(t *testing.T) {
	var hits int
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		hits++
		w.WriteHeader(http.StatusInternalServerError)
	}))
	defer srv.Close()

	_, err := NewClient(fastConfig(srv.URL)).Send(context.Background(), "sess-3", 10, 60)
	var unavail *ErrServiceUnavailable
	require.ErrorAs(t, err, &unavail)
	assert.Equal(t, DefaultConfig().MaxAttempts, hits)
}

func TestSendDoesNotRetryRejections(t *testing.T) {
	var hits int
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		hits++
		w.WriteHeader(http.StatusUnprocessableEntity)
		_, _ = w.Write([]byte("unknown session"))
	}))
	defer srv.Close()

	_, err := NewClient(fastConfig(srv.URL)).Send(context.Background(), "sess-4", 10, 60)
	var rejected *ErrRejected
	require.ErrorAs(t, err, &rejected)
	assert.Equal(t, http.StatusUnprocessableEntity, rejected.Status)
	assert.Equal(t, "unknown session", rejected.Body)
	assert.Equal(t, 1, hits)
}

func TestSendHonorsRetryAfter(t *testing.T) {
	var hits int
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		hits++
		if hits == 1 {
			w.Header().Set("Retry-After", "0")
			w.WriteHeader(http.StatusTooManyRequests)
			return
		}
		_ = json.NewEncoder(w).Encode(Ack{Message: "ok"})
	}))
	defer srv.Close()

	_, err := NewClient(fastConfig(srv.URL)).Send(context.Background(), "sess-5", 10, 60)
	require.NoError(t, err)
	assert.Equal(t, 2, hits)
}

func TestSendRespectsContextCancellation(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusInternalServerError)
	}))
	defer srv.Close()

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := NewClient(fastConfig(srv.URL)).Send(ctx, "sess-6", 10, 60)
	require.Error(t, err)
}

func TestSendWithoutBaseURL(t *testing.T) {
	_, err := NewClient(DefaultConfig()).Send(context.Background(), "sess-7", 1, 1)
	require.Error(t, err)
}
