package apiclient

import (
	"context"
	"errors"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"go-pos-dashboard/internal/models"
)

func newTestClient(t *testing.T, handler http.HandlerFunc) *Client {
	t.Helper()
	srv := httptest.NewServer(handler)
	t.Cleanup(srv.Close)
	return New(Config{Origin: srv.URL + "/"}, nil)
}

func TestRequest_HeadersAndURL(t *testing.T) {
	var gotPath, gotCSRF, gotType, gotCookie string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotPath = r.URL.Path
		gotCSRF = r.Header.Get(CSRFHeader)
		gotType = r.Header.Get("Content-Type")
		gotCookie = r.Header.Get("Cookie")
		w.Write([]byte(`[]`))
	}))
	defer srv.Close()
	c := New(Config{Origin: srv.URL, SessionCookie: "sessionid=abc"}, nil)

	ctx := WithCSRFToken(context.Background(), "tok-123")
	_, err := c.Products(ctx)
	require.NoError(t, err)

	assert.Equal(t, "/api/products/", gotPath)
	assert.Equal(t, "tok-123", gotCSRF)
	assert.Equal(t, "application/json", gotType)
	assert.Equal(t, "sessionid=abc", gotCookie)
}

func TestRequest_MissingCSRFTokenSendsEmpty(t *testing.T) {
	var present bool
	var value string
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		_, present = r.Header[http.CanonicalHeaderKey(CSRFHeader)]
		value = r.Header.Get(CSRFHeader)
		w.Write([]byte(`{}`))
	})

	_, err := c.DashboardData(context.Background())
	require.NoError(t, err)
	assert.True(t, present)
	assert.Equal(t, "", value)
}

func TestDecodeList_BareAndEnvelope(t *testing.T) {
	tests := []struct {
		name string
		body string
		want int
	}{
		{"bare array", `[{"id":1,"name":"Cash"},{"id":2,"name":"bKash"}]`, 2},
		{"envelope", `{"count":2,"next":null,"results":[{"id":1,"name":"Cash"},{"id":2,"name":"bKash"}]}`, 2},
		{"envelope without results", `{"count":0}`, 0},
		{"null results", `{"results":null}`, 0},
		{"empty array", `[]`, 0},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
				io.WriteString(w, tt.body)
			})
			methods, err := c.PaymentMethods(context.Background())
			require.NoError(t, err)
			assert.NotNil(t, methods)
			assert.Len(t, methods, tt.want)
		})
	}
}

func TestProducts_DecimalPriceAsStringOrNumber(t *testing.T) {
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		io.WriteString(w, `[
			{"id":1,"name":"Tea","price":"20.00","product_type":"non_stockable","category_name":"Hot Drinks"},
			{"id":2,"name":"Samosa","price":15.5,"product_type":"stockable","stock_quantity":3,"min_stock_level":5,"category_name":"Snacks"}
		]`)
	})

	products, err := c.Products(context.Background())
	require.NoError(t, err)
	require.Len(t, products, 2)
	assert.Equal(t, "20", products[0].Price.String())
	assert.Equal(t, models.Instant, products[0].ProductType)
	assert.Equal(t, "15.5", products[1].Price.String())
	assert.True(t, products[1].IsStockable())
	assert.Equal(t, 3, products[1].StockQuantity)
}

func TestRequest_HTTPError(t *testing.T) {
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusBadRequest)
		io.WriteString(w, `{"error":"Insufficient stock for 'Samosa'! Available: 2, Requested: 5"}`)
	})

	_, err := c.CreateSale(context.Background(), models.SalePayload{Product: 2, Quantity: 5})
	require.Error(t, err)

	var httpErr *HTTPError
	require.True(t, errors.As(err, &httpErr))
	assert.Equal(t, http.StatusBadRequest, httpErr.Status)
	assert.Contains(t, httpErr.Message, "Insufficient stock")
	assert.True(t, IsRequestFailure(err))

	msg, ok := ServerMessage(err)
	assert.True(t, ok)
	assert.Equal(t, httpErr.Message, msg)
}

func TestRequest_HTTPErrorWithoutStructuredMessage(t *testing.T) {
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusInternalServerError)
		io.WriteString(w, `<html>oops</html>`)
	})

	_, err := c.DashboardData(context.Background())
	var httpErr *HTTPError
	require.True(t, errors.As(err, &httpErr))
	assert.Equal(t, "", httpErr.Message)
	assert.Contains(t, err.Error(), "status: 500")

	_, ok := ServerMessage(err)
	assert.False(t, ok)
}

func TestRequest_NetworkError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {}))
	origin := srv.URL
	srv.Close()

	c := New(Config{Origin: origin}, nil)
	_, err := c.Products(context.Background())
	require.Error(t, err)

	var netErr *NetworkError
	assert.True(t, errors.As(err, &netErr))
	assert.True(t, IsRequestFailure(err))
	assert.False(t, c.Ping(context.Background()))
}

func TestRequest_MalformedBody(t *testing.T) {
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		io.WriteString(w, `{"today_total": [`)
	})

	_, err := c.DashboardData(context.Background())
	require.Error(t, err)
	assert.True(t, errors.Is(err, ErrMalformedResponse))
	assert.True(t, IsRequestFailure(err))
}

func TestCreateSale_PostsPayload(t *testing.T) {
	var method string
	var body map[string]interface{}
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		method = r.Method
		require.NoError(t, json.NewDecoder(r.Body).Decode(&body))
		w.WriteHeader(http.StatusCreated)
		io.WriteString(w, `{"id":9,"quantity":2,"total_amount":"40.00"}`)
	})

	created, err := c.CreateSale(context.Background(), models.SalePayload{
		Product: 1, Quantity: 2, UnitPrice: 20, PaymentMethod: 1,
	})
	require.NoError(t, err)

	assert.Equal(t, http.MethodPost, method)
	assert.Equal(t, float64(1), body["product"])
	assert.Equal(t, float64(20), body["unit_price"])
	assert.Equal(t, "", body["customer_name"])
	assert.Equal(t, "", body["notes"])
	assert.Equal(t, 9, created.ID)
	assert.Equal(t, "40", created.TotalAmount.String())
}

func TestCreateSale_AcceptedDespiteUnexpectedEcho(t *testing.T) {
	tests := []struct {
		name string
		body string
		id   int
	}{
		{"naive timestamp", `{"id":12,"quantity":2,"total_amount":"40.00","created_at":"2025-05-01T10:00:00.123456"}`, 12},
		{"not a record", `["created"]`, 0},
		{"empty body", ``, 0},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			calls := 0
			c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
				calls++
				w.WriteHeader(http.StatusCreated)
				io.WriteString(w, tt.body)
			})

			created, err := c.CreateSale(context.Background(), models.SalePayload{
				Product: 1, Quantity: 2, UnitPrice: 20, PaymentMethod: 1,
			})
			require.NoError(t, err)
			assert.False(t, IsRequestFailure(err))
			assert.Equal(t, 1, calls)
			assert.Equal(t, tt.id, created.ID)
			assert.Equal(t, 2, created.Quantity)
			assert.Equal(t, "40.00", created.TotalAmount.StringFixed(2))
		})
	}
}

func TestTodaysSales_NaiveAndBadTimestamps(t *testing.T) {
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		io.WriteString(w, `[
			{"id":1,"product_name":"Tea","quantity":1,"total_amount":"20.00","created_at":"2025-05-01T10:00:00.123456"},
			{"id":2,"product_name":"Cake","quantity":1,"total_amount":"80.00","created_at":"2025-05-01T04:30:00Z"},
			{"id":3,"product_name":"Bun","quantity":1,"total_amount":"10.00","created_at":"yesterday"}
		]`)
	})

	sales, err := c.TodaysSales(context.Background())
	require.NoError(t, err)
	require.Len(t, sales, 3)

	dhaka := time.FixedZone("BDT", 6*60*60)
	assert.True(t, sales[0].CreatedAt.Naive)
	assert.Equal(t, "10:00", sales[0].CreatedAt.In(dhaka).Format("15:04"))
	assert.False(t, sales[1].CreatedAt.Naive)
	assert.Equal(t, "10:30", sales[1].CreatedAt.In(dhaka).Format("15:04"))
	assert.True(t, sales[2].CreatedAt.IsZero())
}

func TestPing_AnyResponseIsReachable(t *testing.T) {
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusForbidden)
	})
	assert.True(t, c.Ping(context.Background()))
}
