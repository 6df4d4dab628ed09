package utils

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"net/url"
	"strings"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testAPI(t *testing.T, handler http.HandlerFunc, attempts int) (*API, *bytes.Buffer) {
	t.Helper()
	server := httptest.NewServer(handler)
	t.Cleanup(server.Close)

	var logs bytes.Buffer
	api := NewAPI(server.URL+"/", APIOptions{
		Timeout:     2 * time.Second,
		MaxAttempts: attempts,
		RetryDelay:  time.Millisecond,
		UserAgent:   "qurandb-test",
		Logger:      slog.New(slog.NewTextHandler(&logs, nil)),
	})
	return api, &logs
}

func TestAPIGetSuccess(t *testing.T) {
	api, logs := testAPI(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/surah", r.URL.Path)
		assert.Equal(t, "qurandb-test", r.Header.Get("User-Agent"))
		assert.Equal(t, "application/json", r.Header.Get("Accept"))
		fmt.Fprint(w, `{"code":200,"data":[1,2,3]}`)
	}, 3)

	var out struct {
		Data []int `json:"data"`
	}
	require.NoError(t, api.Get(context.Background(), "/surah", nil, &out))
	assert.Equal(t, []int{1, 2, 3}, out.Data)
	assert.Empty(t, logs.String())
}

func TestAPIGetQueryParams(t *testing.T) {
	api, _ := testAPI(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "quran-uthmani", r.URL.Query().Get("edition"))
		fmt.Fprint(w, `{}`)
	}, 1)

	var out map[string]any
	require.NoError(t, api.Get(context.Background(), "/page/1", url.Values{"edition": {"quran-uthmani"}}, &out))
}

func TestAPIGetRetriesUntilSuccess(t *testing.T) {
	var hits int32
	api, logs := testAPI(t, func(w http.ResponseWriter, r *http.Request) {
		if atomic.AddInt32(&hits, 1) < 3 {
			http.Error(w, "busy", http.StatusServiceUnavailable)
			return
		}
		fmt.Fprint(w, `{"ok":true}`)
	}, 3)

	var out struct {
		OK bool `json:"ok"`
	}
	require.NoError(t, api.Get(context.Background(), "/juz/1", nil, &out))
	assert.True(t, out.OK)
	assert.Equal(t, int32(3), atomic.LoadInt32(&hits))
	assert.Equal(t, 2, strings.Count(logs.String(), "request failed, retrying"))
	assert.Contains(t, logs.String(), "attempt=1")
	assert.Contains(t, logs.String(), "max_attempts=3")
}

func TestAPIGetGivesUpAfterMaxAttempts(t *testing.T) {
	var hits int32
	api, logs := testAPI(t, func(w http.ResponseWriter, r *http.Request) {
		atomic.AddInt32(&hits, 1)
		http.Error(w, "boom", http.StatusInternalServerError)
	}, 3)

	var out map[string]any
	err := api.Get(context.Background(), "/page/37", nil, &out)
	require.Error(t, err)
	assert.Equal(t, int32(3), atomic.LoadInt32(&hits))
	assert.Equal(t, 2, strings.Count(logs.String(), "request failed, retrying"))

	var statusErr *StatusError
	require.True(t, errors.As(err, &statusErr))
	assert.Equal(t, http.StatusInternalServerError, statusErr.StatusCode)
	assert.Contains(t, statusErr.Error(), "/page/37")
}

func TestAPIGetRetriesMalformedBody(t *testing.T) {
	var hits int32
	api, _ := testAPI(t, func(w http.ResponseWriter, r *http.Request) {
		if atomic.AddInt32(&hits, 1) == 1 {
			fmt.Fprint(w, `{"data": [`)
			return
		}
		fmt.Fprint(w, `{"data": []}`)
	}, 3)

	var out struct {
		Data []int `json:"data"`
	}
	require.NoError(t, api.Get(context.Background(), "/surah", nil, &out))
	assert.Equal(t, int32(2), atomic.LoadInt32(&hits))
}

func TestAPIGetSingleAttempt(t *testing.T) {
	var hits int32
	api, logs := testAPI(t, func(w http.ResponseWriter, r *http.Request) {
		atomic.AddInt32(&hits, 1)
		w.WriteHeader(http.StatusNotFound)
	}, 1)

	var out map[string]any
	assert.Error(t, api.Get(context.Background(), "/missing", nil, &out))
	assert.Equal(t, int32(1), atomic.LoadInt32(&hits))
	assert.Empty(t, logs.String())
}

func TestAPIGetStopsOnCancel(t *testing.T) {
	var hits int32
	api, _ := testAPI(t, func(w http.ResponseWriter, r *http.Request) {
		atomic.AddInt32(&hits, 1)
		w.WriteHeader(http.StatusBadGateway)
	}, 5)
	api.retryDelay = time.Hour

	ctx, cancel := context.WithCancel(context.Background())
	go func() {
		time.Sleep(50 * time.Millisecond)
		cancel()
	}()

	var out map[string]any
	err := api.Get(ctx, "/surah", nil, &out)
	require.Error(t, err)
	assert.True(t, errors.Is(err, context.Canceled))
	assert.Equal(t, int32(1), atomic.LoadInt32(&hits))
}

func TestNewAPIDefaults(t *testing.T) {
	api := NewAPI("https://api.alquran.cloud/v1/", APIOptions{})
	assert.Equal(t, "https://api.alquran.cloud/v1", api.BaseURL())
	assert.Equal(t, 30*time.Second, api.client.Timeout)
	assert.Equal(t, 1, api.maxAttempts)
}
