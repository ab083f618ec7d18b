package inference

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/require"

	"resistor-vision/internal/domain/entity"
)

func testBuffer(t *testing.T) *entity.PixelBuffer {
	t.Helper()
	buf, err := entity.NewPixelBufferFunc(2, func(x, y int) (float32, float32, float32) {
		return 0.25, 0.5, 1
	})
	require.NoError(t, err)
	return buf
}

func TestHTTPRunner_Run(t *testing.T) {
	var got predictRequest
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, http.MethodPost, r.Method)
		require.NoError(t, json.NewDecoder(r.Body).Decode(&got))
		_ = json.NewEncoder(w).Encode(predictResponse{Output: []float32{0.5, 0.5, 0.1, 0.1, 0.9}})
	}))
	defer srv.Close()

	runner, err := NewHTTPRunner(srv.URL, "locator", srv.Client())
	require.NoError(t, err)

	out, err := runner.Run(context.Background(), testBuffer(t))
	require.NoError(t, err)
	require.Equal(t, []float32{0.5, 0.5, 0.1, 0.1, 0.9}, out)

	require.Equal(t, "locator", got.Model)
	require.Equal(t, 2, got.Side)
	require.Len(t, got.Data, 12)
	require.Equal(t, float32(0.25), got.Data[0])
}

func TestHTTPRunner_Errors(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		switch r.URL.Path {
		case "/bad":
			http.Error(w, "model missing", http.StatusNotFound)
		case "/soft":
			_ = json.NewEncoder(w).Encode(predictResponse{Error: "out of memory"})
		default:
			_, _ = w.Write([]byte("{"))
		}
	}))
	defer srv.Close()

	runner, err := NewHTTPRunner(srv.URL+"/bad", "colors", srv.Client())
	require.NoError(t, err)
	_, err = runner.Run(context.Background(), testBuffer(t))
	require.ErrorIs(t, err, ErrRemoteInference)
	require.ErrorContains(t, err, "404")

	runner, _ = NewHTTPRunner(srv.URL+"/soft", "colors", srv.Client())
	_, err = runner.Run(context.Background(), testBuffer(t))
	require.ErrorIs(t, err, ErrRemoteInference)
	require.ErrorContains(t, err, "out of memory")

	runner, _ = NewHTTPRunner(srv.URL+"/broken", "colors", srv.Client())
	_, err = runner.Run(context.Background(), testBuffer(t))
	require.ErrorContains(t, err, "decode colors response")

	_, err = runner.Run(context.Background(), nil)
	require.ErrorIs(t, err, entity.ErrInvalidBuffer)
}

func TestHTTPRunner_CheckHealth(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path == "/v1/health" {
			w.WriteHeader(http.StatusOK)
			return
		}
		w.WriteHeader(http.StatusServiceUnavailable)
	}))
	defer srv.Close()

	runner, err := NewHTTPRunner(srv.URL+"/v1", "locator", srv.Client())
	require.NoError(t, err)
	require.NoError(t, runner.CheckHealth(context.Background()))

	runner, _ = NewHTTPRunner(srv.URL+"/v2", "locator", srv.Client())
	require.ErrorIs(t, runner.CheckHealth(context.Background()), ErrRemoteInference)
}

func TestNewHTTPRunner_RejectsScheme(t *testing.T) {
	_, err := NewHTTPRunner("ftp://example.com", "locator", nil)
	require.Error(t, err)
}

func TestTFLiteStubOrRunner(t *testing.T) {
	_, err := NewTFLiteRunner("locator", "/nonexistent/model.tflite", 1)
	require.Error(t, err)
}

func TestNewRunners(t *testing.T) {
	var paths []string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		paths = append(paths, r.URL.Path)
		_ = json.NewEncoder(w).Encode(predictResponse{Output: []float32{1}})
	}))
	defer srv.Close()

	runners, err := NewRunners(Settings{URL: srv.URL + "/models"})
	require.NoError(t, err)
	defer runners.Close()
	require.NotNil(t, runners.Remote)

	_, err = runners.Locator.Run(context.Background(), testBuffer(t))
	require.NoError(t, err)
	_, err = runners.Classifier.Run(context.Background(), testBuffer(t))
	require.NoError(t, err)
	require.Equal(t, []string{"/models/locator", "/models/classifier"}, paths)

	_, err = NewRunners(Settings{})
	require.Error(t, err)
}
