package handler

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Raymond9734/sales-date-prediction/internal/models"
	"github.com/Raymond9734/sales-date-prediction/internal/service"
)

const testOrigin = "http://localhost:4200"

type stubCatalogService struct {
	employees  []models.Employee
	err        error
	lastParams *models.PaginationParams
}

func (s *stubCatalogService) ListEmployees(ctx context.Context, params *models.PaginationParams) (*models.PaginationResponse[models.Employee], error) {
	s.lastParams = params
	if s.err != nil {
		return nil, s.err
	}
	if params == nil {
		return models.NewUnpagedResponse(s.employees), nil
	}
	return models.NewPagedResponse(s.employees, len(s.employees), params.PageSize), nil
}

func (s *stubCatalogService) ListProducts(ctx context.Context, params *models.PaginationParams) (*models.PaginationResponse[models.Product], error) {
	return models.NewUnpagedResponse([]models.Product{{ID: 1, Name: "Product HHYDP", UnitPrice: decimal.NewFromInt(18)}}), nil
}

func (s *stubCatalogService) ListShippers(ctx context.Context, params *models.PaginationParams) (*models.PaginationResponse[models.Shipper], error) {
	return models.NewUnpagedResponse[models.Shipper](nil), nil
}

type stubPredictionService struct{}

func (stubPredictionService) List(ctx context.Context, params *models.PaginationParams) (*models.PaginationResponse[models.CustomerPrediction], error) {
	last := time.Date(2008, 1, 21, 0, 0, 0, 0, time.UTC)
	next := last.AddDate(0, 0, 10)
	return models.NewUnpagedResponse([]models.CustomerPrediction{
		{CustomerID: 1, CustomerName: "Customer B", LastOrderDate: last, NextPredictedOrder: &next},
	}), nil
}

type stubOrderService struct {
	orders    map[int64]*service.OrderDTO
	createErr error
	created   *service.CreateOrderRequest
	panicOn   bool
}

func (s *stubOrderService) GetClientOrders(ctx context.Context, customerID int64) ([]service.ClientOrderDTO, error) {
	if s.panicOn {
		panic("boom")
	}
	if customerID == 85 {
		return []service.ClientOrderDTO{{OrderID: 11077, ShipCity: "Reims"}}, nil
	}
	return []service.ClientOrderDTO{}, nil
}

func (s *stubOrderService) GetByID(ctx context.Context, id int64) (*service.OrderDTO, error) {
	if o, ok := s.orders[id]; ok {
		return o, nil
	}
	return nil, models.ErrNotFoundWithMsg("order not found")
}

func (s *stubOrderService) Create(ctx context.Context, req *service.CreateOrderRequest) (*service.CreateOrderResult, error) {
	if s.createErr != nil {
		return nil, s.createErr
	}
	s.created = req
	return &service.CreateOrderResult{OrderID: 11078}, nil
}

type stubPinger struct{ err error }

func (p stubPinger) Health(ctx context.Context) error { return p.err }

type testServer struct {
	handler http.Handler
	catalog *stubCatalogService
	orders  *stubOrderService
}

func newTestServer(t *testing.T, dbErr error) *testServer {
	t.Helper()
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))

	catalog := &stubCatalogService{employees: []models.Employee{
		{ID: 2, FullName: "Don Funk"},
		{ID: 1, FullName: "Sara Davis"},
	}}
	orders := &stubOrderService{orders: map[int64]*service.OrderDTO{
		11077: {OrderID: 11077, EmpID: 1, Details: []service.OrderDetailDTO{{ProductID: 2, ProductName: "Product RECZE", Qty: 24}}},
	}}

	h := NewRouter(RouterConfig{
		Catalog:       NewCatalogHandler(catalog, logger),
		Predictions:   NewPredictionHandler(stubPredictionService{}, logger),
		Orders:        NewOrderHandler(orders, logger),
		Health:        NewHealthHandler(stubPinger{err: dbErr}, nil, logger),
		AllowedOrigin: testOrigin,
		Logger:        logger,
	})

	return &testServer{handler: h, catalog: catalog, orders: orders}
}

func (s *testServer) do(method, target, body string) *httptest.ResponseRecorder {
	var r io.Reader
	if body != "" {
		r = strings.NewReader(body)
	}
	req := httptest.NewRequest(method, target, r)
	rec := httptest.NewRecorder()
	s.handler.ServeHTTP(rec, req)
	return rec
}

func decodeBody(t *testing.T, rec *httptest.ResponseRecorder) map[string]any {
	t.Helper()
	var body map[string]any
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	return body
}

func errorCode(t *testing.T, rec *httptest.ResponseRecorder) string {
	t.Helper()
	var resp ErrorResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	return resp.Error.Code
}

func TestListEmployees(t *testing.T) {
	tests := []struct {
		name       string
		query      string
		wantStatus int
		wantParams *models.PaginationParams
		wantCode   string
	}{
		{name: "unpaged", query: "", wantStatus: http.StatusOK},
		{
			name:       "paged",
			query:      "?pageNumber=2&pageSize=5",
			wantStatus: http.StatusOK,
			wantParams: &models.PaginationParams{PageNumber: 2, PageSize: 5},
		},
		{
			name:       "page size only",
			query:      "?pageSize=5",
			wantStatus: http.StatusOK,
			wantParams: &models.PaginationParams{PageNumber: 1, PageSize: 5},
		},
		{name: "zero page", query: "?pageNumber=0", wantStatus: http.StatusBadRequest, wantCode: models.CodeInvalidInput},
		{name: "not a number", query: "?pageSize=ten", wantStatus: http.StatusBadRequest, wantCode: models.CodeInvalidInput},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			srv := newTestServer(t, nil)
			rec := srv.do(http.MethodGet, "/api/employees"+tt.query, "")

			require.Equal(t, tt.wantStatus, rec.Code)
			if tt.wantCode != "" {
				assert.Equal(t, tt.wantCode, errorCode(t, rec))
				return
			}

			assert.Equal(t, tt.wantParams, srv.catalog.lastParams)

			body := decodeBody(t, rec)
			assert.Contains(t, body, "data")
			assert.EqualValues(t, 2, body["totalRows"])
			data := body["data"].([]any)
			assert.Equal(t, "Don Funk", data[0].(map[string]any)["fullName"])
		})
	}
}

func TestListShippersEmpty(t *testing.T) {
	srv := newTestServer(t, nil)
	rec := srv.do(http.MethodGet, "/api/shippers", "")

	require.Equal(t, http.StatusOK, rec.Code)
	assert.JSONEq(t, `{"data":[],"totalPages":0,"totalRows":0}`, rec.Body.String())
}

func TestListPredictions(t *testing.T) {
	srv := newTestServer(t, nil)
	rec := srv.do(http.MethodGet, "/api/predictions", "")

	require.Equal(t, http.StatusOK, rec.Code)
	data := decodeBody(t, rec)["data"].([]any)
	require.Len(t, data, 1)
	row := data[0].(map[string]any)
	assert.Equal(t, "Customer B", row["customerName"])
	assert.Equal(t, "2008-01-31T00:00:00Z", row["nextPredictedOrder"])
}

func TestGetClientOrders(t *testing.T) {
	srv := newTestServer(t, nil)

	rec := srv.do(http.MethodGet, "/api/customers/85/orders", "")
	require.Equal(t, http.StatusOK, rec.Code)
	var orders []map[string]any
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &orders))
	require.Len(t, orders, 1)
	assert.EqualValues(t, 11077, orders[0]["orderId"])

	rec = srv.do(http.MethodGet, "/api/customers/1/orders", "")
	require.Equal(t, http.StatusOK, rec.Code)
	assert.JSONEq(t, `[]`, rec.Body.String())

	rec = srv.do(http.MethodGet, "/api/customers/abc/orders", "")
	require.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Equal(t, codeInvalidID, errorCode(t, rec))
}

func TestGetOrder(t *testing.T) {
	srv := newTestServer(t, nil)

	rec := srv.do(http.MethodGet, "/api/orders/11077", "")
	require.Equal(t, http.StatusOK, rec.Code)
	body := decodeBody(t, rec)
	assert.EqualValues(t, 11077, body["orderId"])
	assert.Nil(t, body["custId"])
	assert.Len(t, body["details"], 1)

	rec = srv.do(http.MethodGet, "/api/orders/99999", "")
	require.Equal(t, http.StatusNotFound, rec.Code)
	assert.Equal(t, models.CodeNotFound, errorCode(t, rec))

	rec = srv.do(http.MethodGet, "/api/orders/-4", "")
	require.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Equal(t, codeInvalidID, errorCode(t, rec))
}

func TestCreateOrder(t *testing.T) {
	validBody := `{
		"custId": 85,
		"empId": 5,
		"shipperId": 3,
		"shipName": "Ship to 85-B",
		"shipAddress": "6789 rue de l'Abbaye",
		"shipCity": "Reims",
		"shipCountry": "France",
		"freight": 32.38,
		"details": [{"productId": 11, "qty": 12, "discount": 0}]
	}`

	tests := []struct {
		name       string
		body       string
		createErr  error
		wantStatus int
		wantCode   string
	}{
		{name: "created", body: validBody, wantStatus: http.StatusCreated},
		{name: "malformed json", body: `{"empId":`, wantStatus: http.StatusBadRequest, wantCode: codeInvalidJSON},
		{
			name:       "validation failure",
			body:       validBody,
			createErr:  models.ErrInvalidInput("at least one order line is required"),
			wantStatus: http.StatusBadRequest,
			wantCode:   models.CodeInvalidInput,
		},
		{
			name:       "database failure",
			body:       validBody,
			createErr:  errors.New("connection reset"),
			wantStatus: http.StatusInternalServerError,
			wantCode:   codeInternal,
		},
		{
			name:       "body too large",
			body:       `{"shipName":"` + strings.Repeat("x", MaxRequestBodyBytes) + `"}`,
			wantStatus: http.StatusRequestEntityTooLarge,
			wantCode:   codePayloadTooLarge,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			srv := newTestServer(t, nil)
			srv.orders.createErr = tt.createErr

			rec := srv.do(http.MethodPost, "/api/orders", tt.body)
			require.Equal(t, tt.wantStatus, rec.Code)

			if tt.wantCode != "" {
				assert.Equal(t, tt.wantCode, errorCode(t, rec))
				return
			}

			assert.JSONEq(t, `{"orderId":11078}`, rec.Body.String())
			assert.Equal(t, "/api/orders/11078", rec.Header().Get("Location"))

			require.NotNil(t, srv.orders.created)
			require.NotNil(t, srv.orders.created.CustID)
			assert.Equal(t, int64(85), *srv.orders.created.CustID)
			require.Len(t, srv.orders.created.Details, 1)
			assert.Nil(t, srv.orders.created.Details[0].UnitPrice)
			assert.True(t, decimal.RequireFromString("32.38").Equal(srv.orders.created.Freight))
		})
	}
}

func TestHealth(t *testing.T) {
	rec := newTestServer(t, nil).do(http.MethodGet, "/health", "")
	require.Equal(t, http.StatusOK, rec.Code)
	assert.JSONEq(t, `{"status":"healthy","services":{"database":"healthy","queue":"not_configured"}}`, rec.Body.String())

	rec = newTestServer(t, errors.New("db down")).do(http.MethodGet, "/health", "")
	require.Equal(t, http.StatusServiceUnavailable, rec.Code)
	assert.Equal(t, "unhealthy", decodeBody(t, rec)["status"])
}

func TestMiddleware(t *testing.T) {
	t.Run("request id is generated and echoed", func(t *testing.T) {
		rec := newTestServer(t, nil).do(http.MethodGet, "/api/orders/99999", "")
		id := rec.Header().Get(requestIDHeader)
		require.NotEmpty(t, id)

		var resp ErrorResponse
		require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
		assert.Equal(t, id, resp.Error.RequestID)
	})

	t.Run("safe caller request id is kept", func(t *testing.T) {
		srv := newTestServer(t, nil)
		req := httptest.NewRequest(http.MethodGet, "/health", nil)
		req.Header.Set(requestIDHeader, "abc-123")
		rec := httptest.NewRecorder()
		srv.handler.ServeHTTP(rec, req)
		assert.Equal(t, "abc-123", rec.Header().Get(requestIDHeader))
	})

	t.Run("cors preflight for allowed origin", func(t *testing.T) {
		srv := newTestServer(t, nil)
		req := httptest.NewRequest(http.MethodOptions, "/api/orders", nil)
		req.Header.Set("Origin", testOrigin)
		rec := httptest.NewRecorder()
		srv.handler.ServeHTTP(rec, req)

		assert.Equal(t, http.StatusNoContent, rec.Code)
		assert.Equal(t, testOrigin, rec.Header().Get("Access-Control-Allow-Origin"))
		assert.Equal(t, "true", rec.Header().Get("Access-Control-Allow-Credentials"))
	})

	t.Run("other origins get no cors headers", func(t *testing.T) {
		srv := newTestServer(t, nil)
		req := httptest.NewRequest(http.MethodGet, "/health", nil)
		req.Header.Set("Origin", "http://evil.example")
		rec := httptest.NewRecorder()
		srv.handler.ServeHTTP(rec, req)

		assert.Empty(t, rec.Header().Get("Access-Control-Allow-Origin"))
	})

	t.Run("panic becomes 500", func(t *testing.T) {
		srv := newTestServer(t, nil)
		srv.orders.panicOn = true
		rec := srv.do(http.MethodGet, "/api/customers/85/orders", "")

		require.Equal(t, http.StatusInternalServerError, rec.Code)
		assert.Equal(t, codeInternal, errorCode(t, rec))
	})

	t.Run("unknown route", func(t *testing.T) {
		rec := newTestServer(t, nil).do(http.MethodGet, "/api/unknown", "")
		assert.Equal(t, http.StatusNotFound, rec.Code)
	})
}
