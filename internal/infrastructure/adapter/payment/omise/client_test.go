package omise

import (
	"context"
	"net/http"
	"net/http/httptest"
	"net/url"
	"strings"
	"testing"

	errs "github.com/amirhossein-jamali/venue-reservation/internal/domain/error"
	"github.com/amirhossein-jamali/venue-reservation/internal/domain/port/gateway"
	"github.com/amirhossein-jamali/venue-reservation/internal/infrastructure/adapter/logger"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// rewriteTransport sends every Omise API call to the test server
type rewriteTransport struct {
	target *url.URL
}

func (t rewriteTransport) RoundTrip(req *http.Request) (*http.Response, error) {
	req = req.Clone(req.Context())
	req.URL.Scheme = t.target.Scheme
	req.URL.Host = t.target.Host
	return http.DefaultTransport.RoundTrip(req)
}

func newTestClient(t *testing.T, routes map[string]string) *Client {
	t.Helper()
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		body, ok := routes[r.Method+" "+r.URL.Path]
		if !ok {
			w.WriteHeader(http.StatusNotFound)
			_, _ = w.Write([]byte(`{"object":"error","code":"not_found","message":"not found"}`))
			return
		}
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(body))
	}))
	t.Cleanup(srv.Close)

	target, err := url.Parse(srv.URL)
	require.NoError(t, err)

	c, err := NewClient(Config{
		PublicKey:  "pkey_test_123",
		SecretKey:  "skey_test_123",
		SourceType: "paypay",
	}, &http.Client{Transport: rewriteTransport{target: target}}, logger.NewNoopLogger())
	require.NoError(t, err)
	return c
}

func charge(status string, authorized bool) string {
	auth := "false"
	if authorized {
		auth = "true"
	}
	return strings.NewReplacer("STATUS", status, "AUTH", auth).Replace(
		`{"object":"charge","id":"chrg_test_1","amount":500,"currency":"jpy","status":"STATUS","authorized":AUTH,"authorize_uri":"https://pay.omise.co/offsites/ofsp_1/pay"}`)
}

func TestReserve(t *testing.T) {
	c := newTestClient(t, map[string]string{
		"POST /sources": `{"object":"source","id":"src_test_1","type":"paypay","amount":500,"currency":"jpy"}`,
		"POST /charges": charge("pending", false),
	})

	res, err := c.Reserve(context.Background(), gateway.ReserveRequest{
		Amount: 500, Currency: "JPY", OrderID: "U1-1", ConfirmURL: "https://example.com/pay/confirm",
	})

	require.NoError(t, err)
	assert.Equal(t, "chrg_test_1", res.TransactionID)
	assert.Equal(t, "https://pay.omise.co/offsites/ofsp_1/pay", res.PaymentURL)
}

func TestConfirm(t *testing.T) {
	t.Run("already successful", func(t *testing.T) {
		c := newTestClient(t, map[string]string{"GET /charges/chrg_test_1": charge("successful", true)})
		assert.NoError(t, c.Confirm(context.Background(), "chrg_test_1", 500, "JPY"))
	})

	t.Run("authorized charge is captured", func(t *testing.T) {
		c := newTestClient(t, map[string]string{
			"GET /charges/chrg_test_1":          charge("pending", true),
			"POST /charges/chrg_test_1/capture": charge("successful", true),
		})
		assert.NoError(t, c.Confirm(context.Background(), "chrg_test_1", 500, "JPY"))
	})

	t.Run("amount mismatch", func(t *testing.T) {
		c := newTestClient(t, map[string]string{"GET /charges/chrg_test_1": charge("successful", true)})
		err := c.Confirm(context.Background(), "chrg_test_1", 300, "JPY")
		assert.ErrorIs(t, err, errs.ErrPayment)
	})

	t.Run("unknown charge", func(t *testing.T) {
		c := newTestClient(t, map[string]string{})
		err := c.Confirm(context.Background(), "chrg_missing", 500, "JPY")
		assert.ErrorIs(t, err, errs.ErrPayment)
	})
}
