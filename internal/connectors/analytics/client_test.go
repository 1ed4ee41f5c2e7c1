package analytics

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

func TestClient_GenerateChart(t *testing.T) {
	var body map[string]any
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, driven.ChartEndpoint("line"), r.URL.Path)
		assert.NoError(t, json.NewDecoder(r.Body).Decode(&body))
		_, _ = w.Write([]byte(`{"content":{"chart_html":"<canvas/>","observations":"Revenue grew"}}`))
	}))
	defer srv.Close()

	c, err := New(srv.URL)
	require.NoError(t, err)

	content, err := c.GenerateChart(context.Background(), &driven.ChartRequest{
		ChartType: "line",
		SlideID:   "s5",
		Title:     "Growth",
		Data:      []domain.DataPoint{{Label: "Q1", Value: 1}, {Label: "Q2", Value: 2}},
	})

	require.NoError(t, err)
	assert.Equal(t, "<canvas/>", content.Fields["chart_html"])
	assert.Equal(t, "Revenue grew", content.Fields["observations"])
	assert.NotContains(t, body, "ChartType")
	assert.Len(t, body["data"], 2)
}

func TestClient_GenerateChart_InvalidInput(t *testing.T) {
	c, err := New("http://127.0.0.1:1")
	require.NoError(t, err)
	data := []domain.DataPoint{{Label: "a", Value: 1}}

	for _, req := range []*driven.ChartRequest{
		{ChartType: "", Data: data},
		{ChartType: "  ", Data: data},
		{ChartType: "../admin", Data: data},
		{ChartType: "bar_vertical"},
	} {
		_, err := c.GenerateChart(context.Background(), req)
		assert.ErrorIs(t, err, domain.ErrInvalidInput, req.ChartType)
	}
}
