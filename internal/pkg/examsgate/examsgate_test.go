package examsgate

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPostForwardsAPIKey(t *testing.T) {
	var gotKey, gotPath string
	upstream := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotKey = r.Header.Get("x-api-key")
		gotPath = r.URL.Path
		w.WriteHeader(http.StatusOK)
		w.Write([]byte(`{"valid":true}`))
	}))
	defer upstream.Close()

	client := New(upstream.URL, "secret-key")
	res, err := client.Post(context.Background(), "/students/validate", map[string]string{"regNumber": "HA/2024/001"})
	require.NoError(t, err)

	assert.Equal(t, "secret-key", gotKey)
	assert.Equal(t, "/students/validate", gotPath)
	assert.Equal(t, http.StatusOK, res.Status)
	assert.JSONEq(t, `{"valid":true}`, string(res.Body))
}

func TestGetPassesStatusThrough(t *testing.T) {
	upstream := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusNotFound)
		w.Write([]byte(`{"error":"school not found"}`))
	}))
	defer upstream.Close()

	client := New(upstream.URL, "")
	res, err := client.Get(context.Background(), "/sessions/school/missing")
	require.NoError(t, err)
	assert.Equal(t, http.StatusNotFound, res.Status)
}

func TestUnconfiguredClient(t *testing.T) {
	client := New("", "")
	assert.False(t, client.Enabled())

	_, err := client.Get(context.Background(), "/sessions/school/1")
	assert.Error(t, err)
}

func TestDecodeReportSheet(t *testing.T) {
	plain := `{"student":{"name":"Ada"},"term":{"id":"t1"}}`

	t.Run("single encoded", func(t *testing.T) {
		out, err := DecodeReportSheet([]byte(plain))
		require.NoError(t, err)
		assert.JSONEq(t, plain, string(out))
	})

	t.Run("double encoded", func(t *testing.T) {
		wrapped, err := json.Marshal(plain)
		require.NoError(t, err)

		out, err := DecodeReportSheet(wrapped)
		require.NoError(t, err)
		assert.JSONEq(t, plain, string(out))
	})

	t.Run("empty", func(t *testing.T) {
		_, err := DecodeReportSheet([]byte("  "))
		assert.Error(t, err)
	})

	t.Run("garbage", func(t *testing.T) {
		_, err := DecodeReportSheet([]byte(`"not json at all`))
		assert.Error(t, err)
	})
}
