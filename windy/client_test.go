package windy

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/jonboulle/clockwork"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/couchcryptid/windy-forecast/forecast"
	"github.com/couchcryptid/windy-forecast/internal/observability"
)

const (
	testKey           = "test_api_key_12345"
	contentTypeJSON   = "application/json"
	headerContentType = "Content-Type"

	samplePayload = `{
		"ts": [1700000000000, 1700010800000, 1700021600000],
		"units": {"temp-surface": "°C", "wind_u-surface": "m/s", "wind_v-surface": "m/s"},
		"temp-surface": [15.2, 14.8, 14.3],
		"wind_u-surface": [3.5, 4.2, 4.8],
		"wind_v-surface": [2.1, 2.3, 2.6]
	}`
)

func testClient(baseURL string) *Client {
	return &Client{
		key:        testKey,
		httpClient: &http.Client{Timeout: 5 * time.Second},
		baseURL:    baseURL,
		logger:     slog.New(slog.NewTextHandler(io.Discard, nil)),
		metrics:    observability.NewMetricsForTesting(),
		clock:      clockwork.NewRealClock(),
	}
}

func decodeBody(t *testing.T, r *http.Request) map[string]any {
	t.Helper()
	var body map[string]any
	require.NoError(t, json.NewDecoder(r.Body).Decode(&body))
	return body
}

func TestClient_PointForecast_Success(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodPost, r.Method)
		assert.Equal(t, contentTypeJSON, r.Header.Get(headerContentType))

		body := decodeBody(t, r)
		assert.Equal(t, 49.809, body["lat"])
		assert.Equal(t, 16.787, body["lon"])
		assert.Equal(t, "gfs", body["model"])
		assert.Equal(t, []any{"temp", "wind"}, body["parameters"])
		assert.Equal(t, []any{"surface"}, body["levels"])
		assert.Equal(t, testKey, body["key"])

		w.Header().Set(headerContentType, contentTypeJSON)
		_, _ = w.Write([]byte(samplePayload))
	}))
	defer srv.Close()

	c := testClient(srv.URL)
	resp, err := c.PointForecast(context.Background(), 49.809, 16.787, "gfs", []string{"temp", "wind"}, nil)
	require.NoError(t, err)

	require.Len(t, resp.Timestamps, 3)
	assert.Equal(t, time.Date(2023, 11, 14, 22, 13, 20, 0, time.UTC), resp.Timestamps[0])
	require.NotNil(t, resp.Data("temp-surface"))
	assert.Equal(t, 15.2, *resp.Data("temp-surface")[0])

	unit, ok := resp.Unit("temp-surface")
	require.True(t, ok)
	assert.Equal(t, "°C", unit)
}

func TestClient_PointForecast_NormalizesModelOnTheWire(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		body := decodeBody(t, r)
		assert.Equal(t, "iconEu", body["model"])
		_, _ = w.Write([]byte(samplePayload))
	}))
	defer srv.Close()

	c := testClient(srv.URL)
	_, err := c.PointForecast(context.Background(), 0, 0, "ICON-EU", []string{"temp"}, nil)
	require.NoError(t, err)
}

func TestClient_PointForecast_FiltersUnsupportedParameters(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		body := decodeBody(t, r)
		assert.Equal(t, []any{"temp"}, body["parameters"])
		_, _ = w.Write([]byte(samplePayload))
	}))
	defer srv.Close()

	c := testClient(srv.URL)
	_, err := c.PointForecast(context.Background(), 0, 0, "gfs", []string{"waves", "temp"}, nil)
	require.NoError(t, err)
}

func TestClient_PointForecast_DefaultsApplied(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		body := decodeBody(t, r)
		assert.Equal(t, []any{"temp", "wind"}, body["parameters"])
		assert.Equal(t, []any{"surface"}, body["levels"])
		_, _ = w.Write([]byte(samplePayload))
	}))
	defer srv.Close()

	c := testClient(srv.URL)
	_, err := c.PointForecast(context.Background(), 0, 0, "gfs", nil, nil)
	require.NoError(t, err)
}

func TestClient_PointForecast_StatusError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusUnauthorized)
		_, _ = w.Write([]byte(`{"message":"Invalid API key"}`))
	}))
	defer srv.Close()

	c := testClient(srv.URL)
	_, err := c.PointForecast(context.Background(), 0, 0, "gfs", []string{"temp"}, nil)
	require.Error(t, err)

	var statusErr *StatusError
	require.ErrorAs(t, err, &statusErr)
	assert.Equal(t, http.StatusUnauthorized, statusErr.Code)
	assert.Contains(t, err.Error(), "401")
	assert.Contains(t, err.Error(), "Invalid API key")
}

func TestClient_PointForecast_TransportError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(http.ResponseWriter, *http.Request) {}))
	srv.Close() // connection refused from here on

	c := testClient(srv.URL)
	_, err := c.PointForecast(context.Background(), 0, 0, "gfs", []string{"temp"}, nil)
	require.Error(t, err)

	var statusErr *StatusError
	assert.False(t, errors.As(err, &statusErr))
	assert.Contains(t, err.Error(), "point forecast request")
}

func TestClient_PointForecast_DecodeError(t *testing.T) {
	t.Run("invalid JSON", func(t *testing.T) {
		srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
			_, _ = w.Write([]byte(`{invalid json`))
		}))
		defer srv.Close()

		c := testClient(srv.URL)
		_, err := c.PointForecast(context.Background(), 0, 0, "gfs", []string{"temp"}, nil)

		var decodeErr *DecodeError
		require.ErrorAs(t, err, &decodeErr)
	})

	t.Run("missing required field", func(t *testing.T) {
		srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
			_, _ = w.Write([]byte(`{"units": {}}`))
		}))
		defer srv.Close()

		c := testClient(srv.URL)
		_, err := c.PointForecast(context.Background(), 0, 0, "gfs", []string{"temp"}, nil)

		var decodeErr *DecodeError
		require.ErrorAs(t, err, &decodeErr)
		assert.Contains(t, err.Error(), `"ts"`)
	})
}

func TestClient_PointForecast_ValidationBeforeNetwork(t *testing.T) {
	var calls int
	srv := httptest.NewServer(http.HandlerFunc(func(http.ResponseWriter, *http.Request) {
		calls++
	}))
	defer srv.Close()

	c := testClient(srv.URL)
	_, err := c.PointForecast(context.Background(), 90.0001, 0, "gfs", []string{"temp"}, nil)
	require.Error(t, err)

	var validationErr *forecast.ValidationError
	require.ErrorAs(t, err, &validationErr)
	assert.Equal(t, "lat", validationErr.Field)
	assert.Zero(t, calls)
}

func TestClient_PointForecast_UnknownModel(t *testing.T) {
	c := testClient("http://127.0.0.1:0")
	_, err := c.PointForecast(context.Background(), 0, 0, "ecmwf", []string{"temp"}, nil)

	var unknownErr *forecast.UnknownModelError
	require.ErrorAs(t, err, &unknownErr)
}

func TestClient_PointForecast_ContextCancellation(t *testing.T) {
	started := make(chan struct{})
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		close(started)
		<-r.Context().Done()
	}))
	defer srv.Close()

	ctx, cancel := context.WithCancel(context.Background())
	go func() {
		<-started
		cancel()
	}()

	c := testClient(srv.URL)
	_, err := c.PointForecast(ctx, 0, 0, "gfs", []string{"temp"}, nil)
	require.Error(t, err)
	assert.ErrorIs(t, err, context.Canceled)
}

func TestClient_Do_PrebuiltRequest(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		body := decodeBody(t, r)
		assert.Equal(t, "gfsWave", body["model"])
		_, _ = w.Write([]byte(samplePayload))
	}))
	defer srv.Close()

	req, err := forecast.NewPointRequest(0, 0, "gfsWave", []string{"waves"}, nil, testKey, slog.New(slog.NewTextHandler(io.Discard, nil)))
	require.NoError(t, err)

	c := testClient(srv.URL)
	resp, err := c.Do(context.Background(), req)
	require.NoError(t, err)
	assert.Len(t, resp.Timestamps, 3)
}

func TestClient_PointForecastAsync(t *testing.T) {
	t.Run("delivers one result and closes", func(t *testing.T) {
		srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
			_, _ = w.Write([]byte(samplePayload))
		}))
		defer srv.Close()

		c := testClient(srv.URL)
		ch := c.PointForecastAsync(context.Background(), 0, 0, "gfs", []string{"temp"}, nil)

		result, ok := <-ch
		require.True(t, ok)
		require.NoError(t, result.Err)
		assert.Len(t, result.Response.Timestamps, 3)

		_, ok = <-ch
		assert.False(t, ok, "channel should be closed after the single result")
	})

	t.Run("propagates cancellation", func(t *testing.T) {
		srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			<-r.Context().Done()
		}))
		defer srv.Close()

		ctx, cancel := context.WithTimeout(context.Background(), 50*time.Millisecond)
		defer cancel()

		c := testClient(srv.URL)
		result := <-c.PointForecastAsync(ctx, 0, 0, "gfs", []string{"temp"}, nil)
		require.Error(t, result.Err)
		assert.Nil(t, result.Response)
		assert.ErrorIs(t, result.Err, context.DeadlineExceeded)
	})
}

func TestNewClient_Defaults(t *testing.T) {
	c := NewClient(testKey, 10*time.Second, slog.New(slog.NewTextHandler(io.Discard, nil)))
	assert.Equal(t, DefaultBaseURL, c.baseURL)
	assert.Equal(t, 10*time.Second, c.httpClient.Timeout)

	c.SetBaseURL("http://localhost:8080")
	assert.Equal(t, "http://localhost:8080", c.baseURL)
}
