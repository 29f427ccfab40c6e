package metrics

import (
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
)

func TestObserveHTTPRequest(t *testing.T) {
	before := testutil.ToFloat64(HTTPRequestsTotal.WithLabelValues("GET", "/api/v1/books/:id", "200"))

	ObserveHTTPRequest("GET", "/api/v1/books/:id", 200, 15*time.Millisecond)
	ObserveHTTPRequest("GET", "/api/v1/books/:id", 200, 5*time.Millisecond)

	after := testutil.ToFloat64(HTTPRequestsTotal.WithLabelValues("GET", "/api/v1/books/:id", "200"))
	assert.Equal(t, before+2, after)
}

func TestBusinessCounters(t *testing.T) {
	ratings := testutil.ToFloat64(RatingsRecordedTotal)
	ObserveRatingRecorded(time.Millisecond)
	assert.Equal(t, ratings+1, testutil.ToFloat64(RatingsRecordedTotal))

	repriced := testutil.ToFloat64(BooksRepricedTotal)
	AddRepriced(3)
	assert.Equal(t, repriced+3, testutil.ToFloat64(BooksRepricedTotal))

	AddDuplicatesRemoved("author", 2)
	assert.GreaterOrEqual(t, testutil.ToFloat64(DuplicatesRemovedTotal.WithLabelValues("author")), 2.0)

	failures := testutil.ToFloat64(CartTransfersTotal.WithLabelValues("failure"))
	IncCartTransfer(errors.New("boom"))
	assert.Equal(t, failures+1, testutil.ToFloat64(CartTransfersTotal.WithLabelValues("failure")))
}

func TestHandler(t *testing.T) {
	IncEventPublished("book.registered", nil)

	w := httptest.NewRecorder()
	Handler().ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/metrics", nil))

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), "bookcatalog_events_published_total")
}
