package metrics

import (
	"errors"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"codeberg.org/docrouter/server/internal/retriever"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestObserveAsk(t *testing.T) {
	m := New()

	m.ObserveAsk(time.Second, nil)
	m.ObserveAsk(time.Second, nil)
	m.ObserveAsk(time.Second, errors.New("boom"))

	assert.InDelta(t, 2, testutil.ToFloat64(m.questionsTotal.WithLabelValues("answered")), 1e-9)
	assert.InDelta(t, 1, testutil.ToFloat64(m.questionsTotal.WithLabelValues("failed")), 1e-9)
}

func TestObserveRoute(t *testing.T) {
	m := New()

	m.ObserveRoute([]retriever.Described{{Key: "rag"}, {Key: "web"}}, false)
	m.ObserveRoute([]retriever.Described{{Key: "rag"}}, false)
	m.ObserveRoute(nil, true)

	assert.InDelta(t, 2, testutil.ToFloat64(m.routerSelections.WithLabelValues("rag")), 1e-9)
	assert.InDelta(t, 1, testutil.ToFloat64(m.routerSelections.WithLabelValues("web")), 1e-9)
	assert.InDelta(t, 1, testutil.ToFloat64(m.routerFallbacks), 1e-9)
}

func TestObserveRetrievalAndIngest(t *testing.T) {
	m := New()

	m.ObserveRetrieval("WebSearchRetriever(Tavily)", 3, nil)
	m.ObserveRetrieval("WebSearchRetriever(Tavily)", 0, errors.New("down"))
	m.ObserveIngest("finance", 42)

	assert.InDelta(t, 3, testutil.ToFloat64(m.retrievedSegments.WithLabelValues("WebSearchRetriever(Tavily)")), 1e-9)
	assert.InDelta(t, 1, testutil.ToFloat64(m.retrievalErrors.WithLabelValues("WebSearchRetriever(Tavily)")), 1e-9)
	assert.InDelta(t, 42, testutil.ToFloat64(m.ingestedSegments.WithLabelValues("finance")), 1e-9)
}

func TestHandler(t *testing.T) {
	m := New()
	m.ObserveIngest("rag", 1)

	server := httptest.NewServer(m.Handler())
	defer server.Close()

	resp, err := http.Get(server.URL)
	require.NoError(t, err)
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	require.NoError(t, err)

	assert.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Contains(t, string(body), `docrouter_ingested_segments_total{source="rag"} 1`)
}
