package embedding

import (
	"context"
	"encoding/json"
	"math"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/viterin/vek/vek32"
)

func newEmbedServer(t *testing.T, handler func(req ollamaEmbedRequest) (int, any)) *httptest.Server {
	t.Helper()
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/api/embed", r.URL.Path)

		var req ollamaEmbedRequest
		assert.NoError(t, json.NewDecoder(r.Body).Decode(&req))

		status, body := handler(req)
		w.WriteHeader(status)
		_ = json.NewEncoder(w).Encode(body)
	}))
	t.Cleanup(srv.Close)
	return srv
}

func TestOllamaEncoderEncodeKeepsOrder(t *testing.T) {
	srv := newEmbedServer(t, func(req ollamaEmbedRequest) (int, any) {
		assert.Equal(t, "all-minilm", req.Model)
		out := make([][]float64, len(req.Input))
		for i := range req.Input {
			out[i] = []float64{float64(i + 1), 0}
		}
		return http.StatusOK, ollamaEmbedResponse{Model: req.Model, Embeddings: out}
	})

	enc := NewOllamaEncoder(srv.URL+"/", "all-minilm", time.Second)
	vectors, err := enc.Encode(context.Background(), []string{"a", "b", "c"})
	require.NoError(t, err)
	require.Len(t, vectors, 3)

	for _, v := range vectors {
		assert.InDelta(t, 1.0, float64(v[0]), 1e-6)
		assert.InDelta(t, 0.0, float64(v[1]), 1e-6)
	}
	assert.Equal(t, 2, enc.Dimension())
	assert.Equal(t, "all-minilm", enc.Model())
}

func TestOllamaEncoderNormalizes(t *testing.T) {
	srv := newEmbedServer(t, func(req ollamaEmbedRequest) (int, any) {
		return http.StatusOK, ollamaEmbedResponse{Embeddings: [][]float64{{3, 4}}}
	})

	vectors, err := NewOllamaEncoder(srv.URL, "", time.Second).Encode(context.Background(), []string{"x"})
	require.NoError(t, err)

	var norm float64
	for _, v := range vectors[0] {
		norm += float64(v) * float64(v)
	}
	assert.InDelta(t, 1.0, math.Sqrt(norm), 1e-6)
	assert.InDelta(t, 0.6, float64(vectors[0][0]), 1e-6)
}

func TestNormalizeVector(t *testing.T) {
	unit := normalizeVector([]float32{0, 3, 4})
	assert.InDelta(t, 1.0, float64(vek32.Norm(unit)), 1e-6)
	assert.InDelta(t, 0.8, float64(unit[2]), 1e-6)

	zero := []float32{0, 0, 0}
	assert.Equal(t, zero, normalizeVector(zero))
}

func TestOllamaEncoderEmptyInput(t *testing.T) {
	enc := NewOllamaEncoder("http://127.0.0.1:1", "all-minilm", time.Second)
	_, err := enc.Encode(context.Background(), nil)
	assert.ErrorIs(t, err, ErrEmptyInput)
}

func TestOllamaEncoderCountMismatch(t *testing.T) {
	srv := newEmbedServer(t, func(req ollamaEmbedRequest) (int, any) {
		return http.StatusOK, ollamaEmbedResponse{Embeddings: [][]float64{{1, 0}}}
	})

	_, err := NewOllamaEncoder(srv.URL, "all-minilm", time.Second).Encode(context.Background(), []string{"a", "b"})
	assert.Error(t, err)
}

func TestOllamaEncoderDimensionIsFixed(t *testing.T) {
	var dims atomic.Int32
	dims.Store(3)
	srv := newEmbedServer(t, func(req ollamaEmbedRequest) (int, any) {
		v := make([]float64, dims.Load())
		v[0] = 1
		return http.StatusOK, ollamaEmbedResponse{Embeddings: [][]float64{v}}
	})

	enc := NewOllamaEncoder(srv.URL, "all-minilm", time.Second)
	require.NoError(t, enc.Warmup(context.Background()))
	assert.Equal(t, 3, enc.Dimension())

	dims.Store(4)
	_, err := enc.Encode(context.Background(), []string{"different model output"})
	assert.ErrorIs(t, err, ErrDimensionMismatch)
}

func TestOllamaEncoderServerError(t *testing.T) {
	srv := newEmbedServer(t, func(req ollamaEmbedRequest) (int, any) {
		return http.StatusInternalServerError, map[string]string{"error": "model not found"}
	})

	_, err := NewOllamaEncoder(srv.URL, "missing", time.Second).Encode(context.Background(), []string{"a"})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "model not found")
}
