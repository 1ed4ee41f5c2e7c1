package textservice

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/custodia-labs/deckroute/internal/core/domain"
	"github.com/custodia-labs/deckroute/internal/core/ports/driven"
)

func TestNew_RequiresBaseURL(t *testing.T) {
	_, err := New("")
	assert.ErrorIs(t, err, domain.ErrServiceNotConfigured)
}

func TestClient_GenerateContent(t *testing.T) {
	var got driven.ContentRequest
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, driven.ContentEndpoint, r.URL.Path)
		assert.NoError(t, json.NewDecoder(r.Body).Decode(&got))
		_, _ = w.Write([]byte(`{"success":true,"html":"<ul><li>one</li></ul>"}`))
	}))
	defer srv.Close()

	c, err := New(srv.URL)
	require.NoError(t, err)

	content, err := c.GenerateContent(context.Background(), &driven.ContentRequest{
		VariantID: "matrix_2x2",
		SlideID:   "s2",
		SlideSpec: driven.SlideSpec{SlideTitle: "Options"},
	})

	require.NoError(t, err)
	assert.Equal(t, "<ul><li>one</li></ul>", content.HTML)
	assert.Equal(t, "matrix_2x2", got.VariantID)
	assert.Equal(t, "Options", got.SlideSpec.SlideTitle)
}

func TestClient_GenerateHero_Endpoints(t *testing.T) {
	tests := []struct {
		class domain.Classification
		path  string
	}{
		{domain.ClassTitleSlide, driven.HeroTitleEndpoint},
		{domain.ClassSectionDivider, driven.HeroSectionEndpoint},
		{domain.ClassClosingSlide, driven.HeroClosingEndpoint},
	}

	for _, tt := range tests {
		t.Run(string(tt.class), func(t *testing.T) {
			srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				assert.Equal(t, tt.path, r.URL.Path)
				_, _ = w.Write([]byte(`{"content":"<h1>Hero</h1>","metadata":{"slide_type":"hero"}}`))
			}))
			defer srv.Close()

			c, err := New(srv.URL)
			require.NoError(t, err)

			content, err := c.GenerateHero(context.Background(), tt.class, &driven.HeroRequest{SlideID: "s1"})

			require.NoError(t, err)
			assert.Equal(t, "<h1>Hero</h1>", content.HTML)
		})
	}
}

func TestClient_GenerateContent_Failure(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		_, _ = w.Write([]byte(`{"success":false,"error":"unknown variant"}`))
	}))
	defer srv.Close()

	c, err := New(srv.URL)
	require.NoError(t, err)

	_, err = c.GenerateContent(context.Background(), &driven.ContentRequest{VariantID: "nope"})

	assert.ErrorIs(t, err, domain.ErrInvalidResponse)
	assert.Contains(t, err.Error(), "unknown variant")
}
