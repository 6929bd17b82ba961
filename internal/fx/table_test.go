package fx

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"MarketDigest/internal/model"
)

func tableServer(t *testing.T, status int, body string) *TableSource {
	t.Helper()
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(status)
		w.Write([]byte(body))
	}))
	t.Cleanup(srv.Close)
	return NewTableSource(srv.URL, 5, "")
}

func TestTableSpot_Supported(t *testing.T) {
	s := tableServer(t, http.StatusOK, `{"amount":1.0,"base":"KRW","rates":{"USD":0.000724999}}`)

	q, err := s.Spot(context.Background(), "KRW", "USD")
	require.NoError(t, err)
	assert.True(t, q.Supported)
	assert.Equal(t, 0.00072, q.Rate, "rate rounded to configured precision")
	assert.False(t, q.HasChanges, "table strategy carries no history")
}

func TestTableSpot_TargetAbsentIsNotAnError(t *testing.T) {
	s := tableServer(t, http.StatusOK, `{"rates":{"EUR":0.85}}`)

	q, err := s.Spot(context.Background(), "KRW", "GBP")
	require.NoError(t, err, "unsupported pair is a normal outcome")
	assert.False(t, q.Supported)
	assert.Zero(t, q.Rate)
}

func TestTableSpot_TransportFailure(t *testing.T) {
	s := tableServer(t, http.StatusInternalServerError, "boom")

	_, err := s.Spot(context.Background(), "KRW", "USD")
	require.ErrorIs(t, err, model.ErrProviderUnavailable)
}

func TestTableSpot_MalformedPayload(t *testing.T) {
	s := tableServer(t, http.StatusOK, "<html>not json</html>")

	_, err := s.Spot(context.Background(), "KRW", "USD")
	require.ErrorIs(t, err, model.ErrProviderUnavailable)
}

func TestTableSpot_ServerDown(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {}))
	url := srv.URL
	srv.Close()

	s := NewTableSource(url, 5, "")
	_, err := s.Spot(context.Background(), "KRW", "USD")
	require.ErrorIs(t, err, model.ErrProviderUnavailable)
}
