package dialogue

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const sampleDocument = `{
  "dialogue": [
    {"name": "Sheldon", "text": "I admit {satisfied} the design is clever."},
    {"name": "Penny", "text": "Well, {intrigued} that's new."}
  ],
  "emojies": [
    {"name": "satisfied", "url": "https://example.com/satisfied.png"}
  ],
  "avatars": [
    {"name": "Sheldon", "url": "https://example.com/sheldon.png", "position": "left"},
    {"name": "Penny", "url": "https://example.com/penny.png", "position": "right"},
    {"name": "Leonard", "url": "https://example.com/leonard.png"}
  ]
}`

func TestDecode(t *testing.T) {
	doc, err := Decode([]byte(sampleDocument))
	require.NoError(t, err)

	require.Len(t, doc.Dialogue, 2)
	assert.Equal(t, "Sheldon", doc.Dialogue[0].Name)
	require.Len(t, doc.Emojis, 1)
	assert.Equal(t, "satisfied", doc.Emojis[0].Name)

	a, ok := doc.Avatar("Sheldon")
	require.True(t, ok)
	assert.Equal(t, SideLeft, a.Side())

	a, ok = doc.Avatar("Penny")
	require.True(t, ok)
	assert.Equal(t, SideRight, a.Side())

	a, ok = doc.Avatar("Leonard")
	require.True(t, ok)
	assert.Equal(t, SideRight, a.Side(), "unspecified position is drawn on the right")

	_, ok = doc.Avatar("Howard")
	assert.False(t, ok)
}

func TestDecodeErrors(t *testing.T) {
	_, err := Decode([]byte(`{`))
	assert.Error(t, err)

	_, err = Decode([]byte(`{"dialogue": []}`))
	assert.Error(t, err)
}

func TestFetch(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		switch r.URL.Path {
		case "/ok":
			w.Header().Set("Content-Type", "application/json")
			_, _ = w.Write([]byte(sampleDocument))
		default:
			http.Error(w, "boom", http.StatusInternalServerError)
		}
	}))
	defer srv.Close()

	doc, err := Fetch(context.Background(), srv.Client(), srv.URL+"/ok")
	require.NoError(t, err)
	assert.Len(t, doc.Dialogue, 2)

	_, err = Fetch(context.Background(), srv.Client(), srv.URL+"/fail")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "500")
}

func TestFetchHonoursContext(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		<-r.Context().Done()
	}))
	defer srv.Close()

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	_, err := Fetch(ctx, srv.Client(), srv.URL)
	assert.ErrorIs(t, err, context.Canceled)
}
