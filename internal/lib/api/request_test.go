package api

import (
	"net/http"
	"net/http/httptest"
	"net/url"
	"testing"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"prodlog/internal/storage"
)

func TestEntryFilterFromQuery_Empty(t *testing.T) {
	f := EntryFilterFromQuery(url.Values{})

	assert.Nil(t, f.UserID)
	assert.Empty(t, f.Process)
	assert.Empty(t, f.Station)
	assert.Nil(t, f.StartDate)
	assert.Nil(t, f.EndDate)
}

func TestEntryFilterFromQuery_AllFields(t *testing.T) {
	q := url.Values{}
	q.Set("userId", "1")
	q.Set("process", "Painting")
	q.Set("station", "3")
	q.Set("startDate", "2026-01-15")
	q.Set("endDate", "2026-01-16T10:30:00Z")

	f := EntryFilterFromQuery(q)

	require.NotNil(t, f.UserID)
	assert.Equal(t, int64(1), *f.UserID)
	assert.Equal(t, "Painting", f.Process)
	assert.Equal(t, "3", f.Station)
	require.NotNil(t, f.StartDate)
	assert.True(t, f.StartDate.Equal(time.Date(2026, 1, 15, 0, 0, 0, 0, time.UTC)))
	require.NotNil(t, f.EndDate)
	assert.True(t, f.EndDate.Equal(time.Date(2026, 1, 16, 10, 30, 0, 0, time.UTC)))
}

func TestEntryFilterFromQuery_NonIntegerUserMatchesNothing(t *testing.T) {
	q := url.Values{}
	q.Set("userId", "abc")

	f := EntryFilterFromQuery(q)

	require.NotNil(t, f.UserID)
	assert.False(t, f.Match(storage.ProductionEntry{ID: 1, UserID: 1}))
	assert.False(t, f.Match(storage.ProductionEntry{ID: 2, UserID: 12275}))
}

func TestEntryFilterFromQuery_BadDatesIgnored(t *testing.T) {
	q := url.Values{}
	q.Set("startDate", "garbage")
	q.Set("endDate", "yesterday")
	q.Set("process", "QAQC")

	f := EntryFilterFromQuery(q)

	assert.Nil(t, f.StartDate)
	assert.Nil(t, f.EndDate)
	assert.Equal(t, "QAQC", f.Process)
}

func TestIDParam(t *testing.T) {
	cases := []struct {
		raw    string
		wantID int64
		wantOK bool
	}{
		{"5", 5, true},
		{"abc", 0, false},
		{"0", 0, false},
		{"-3", 0, false},
		{"1.5", 0, false},
	}

	for _, tc := range cases {
		t.Run(tc.raw, func(t *testing.T) {
			var (
				gotID int64
				gotOK bool
			)

			router := chi.NewRouter()
			router.Get("/items/{id}", func(w http.ResponseWriter, r *http.Request) {
				gotID, gotOK = IDParam(r, "id")
			})
			router.ServeHTTP(httptest.NewRecorder(), httptest.NewRequest(http.MethodGet, "/items/"+tc.raw, nil))

			assert.Equal(t, tc.wantID, gotID)
			assert.Equal(t, tc.wantOK, gotOK)
		})
	}
}

func TestParseTime_RoundTrip(t *testing.T) {
	orig := time.Date(2026, 3, 1, 9, 45, 12, 123456789, time.UTC)

	got, err := ParseTime(orig.Format(time.RFC3339Nano))
	require.NoError(t, err)
	assert.True(t, orig.Equal(got))
}
