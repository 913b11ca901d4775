package tutor

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestExplain(t *testing.T) {
	var got request
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "secret", r.Header.Get("x-api-key"))
		require.NoError(t, json.NewDecoder(r.Body).Decode(&got))
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"content":[{"type":"text","text":"  Pair after singles.  "}]}`))
	}))
	defer srv.Close()

	c := NewClientWithKey("secret", WithURL(srv.URL), WithModel("test-model"))
	text, err := c.Explain(context.Background(), Request{
		Element:   "Carbon (C, Z=6)",
		Violation: "2p(0) is still empty",
	})
	require.NoError(t, err)
	assert.Equal(t, "Pair after singles.", text)
	assert.Equal(t, "test-model", got.Model)
	require.Len(t, got.Messages, 1)
	assert.Contains(t, got.Messages[0].Content, "2p(0) is still empty")
}

func TestExplainAPIError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(`{"error":{"type":"overloaded","message":"try later"}}`))
	}))
	defer srv.Close()

	c := NewClientWithKey("k", WithURL(srv.URL))
	_, err := c.Explain(context.Background(), Request{Element: "H"})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "try later")
}

func TestNewClientNeedsKey(t *testing.T) {
	t.Setenv("ANTHROPIC_API_KEY", "")
	_, err := NewClient()
	assert.Error(t, err)

	t.Setenv("ANTHROPIC_API_KEY", " key \n")
	c, err := NewClient()
	require.NoError(t, err)
	assert.Equal(t, "key", c.apiKey)
}

func TestBuildPrompt(t *testing.T) {
	p := buildPrompt(Request{Element: "Chromium (Cr, Z=24)", Exception: "[Ar] 4s¹ 3d⁵"})
	assert.Contains(t, p, "Observed ground state")
	assert.Contains(t, p, "(empty)")
	assert.NotContains(t, p, "broke a rule")
}
