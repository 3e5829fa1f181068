package transport

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"meridian-be/internal/order"
	"meridian-be/internal/product"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

type MockOrderService struct {
	mock.Mock
}

func (m *MockOrderService) CreateOrderFromPayment(ctx context.Context, input order.PaymentInput) (*order.Order, error) {
	args := m.Called(ctx, input)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*order.Order), args.Error(1)
}

func (m *MockOrderService) FindByPaymentReference(ctx context.Context, ref string) (*order.Order, error) {
	args := m.Called(ctx, ref)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*order.Order), args.Error(1)
}

func (m *MockOrderService) GetOrderDetail(ctx context.Context, orderID string) (*order.Order, error) {
	args := m.Called(ctx, orderID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*order.Order), args.Error(1)
}

type MockProductService struct {
	mock.Mock
}

func (m *MockProductService) GetByID(ctx context.Context, id string) (*product.Product, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*product.Product), args.Error(1)
}

func (m *MockProductService) List(ctx context.Context) ([]product.Product, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]product.Product), args.Error(1)
}

func (m *MockProductService) CheckAvailability(ctx context.Context, productID string, quantity int) (product.StockCheck, error) {
	args := m.Called(ctx, productID, quantity)
	return args.Get(0).(product.StockCheck), args.Error(1)
}

func newTestHandler() (*MockOrderService, *MockProductService, http.Handler) {
	orders := new(MockOrderService)
	products := new(MockProductService)
	return orders, products, NewHandler(orders, products).Routes()
}

func TestHandler_CreateOrder(t *testing.T) {
	body := `{
		"paymentIntentId": "pi_123",
		"total": 349.49,
		"items": [{"productId": "prod-1", "quantity": 3, "price": 83.33}],
		"customerEmail": "ada@example.com"
	}`

	t.Run("Created", func(t *testing.T) {
		orders, _, handler := newTestHandler()

		created := &order.Order{ID: "order-1", PaymentReference: "pi_123"}
		orders.On("CreateOrderFromPayment", mock.Anything, mock.MatchedBy(func(in order.PaymentInput) bool {
			return in.PaymentReference == "pi_123" &&
				len(in.Items) == 1 &&
				in.Items[0].Quantity == 3 &&
				in.CustomerEmail != nil && *in.CustomerEmail == "ada@example.com"
		})).Return(created, nil)

		req := httptest.NewRequest("POST", "/payment/create-order", bytes.NewBufferString(body))
		w := httptest.NewRecorder()
		handler.ServeHTTP(w, req)

		assert.Equal(t, http.StatusCreated, w.Code)

		var resp order.Order
		require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
		assert.Equal(t, "order-1", resp.ID)
	})

	t.Run("InsufficientStock", func(t *testing.T) {
		orders, _, handler := newTestHandler()

		orders.On("CreateOrderFromPayment", mock.Anything, mock.Anything).
			Return(nil, &product.InsufficientStockError{Product: "Walnut Desk", Available: 2, Requested: 3})

		req := httptest.NewRequest("POST", "/payment/create-order", bytes.NewBufferString(body))
		w := httptest.NewRecorder()
		handler.ServeHTTP(w, req)

		assert.Equal(t, http.StatusConflict, w.Code)

		var resp map[string]any
		require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
		assert.Equal(t, "Walnut Desk", resp["product"])
		assert.Equal(t, float64(2), resp["available"])
		assert.Equal(t, float64(3), resp["requested"])
	})

	t.Run("InvalidBody", func(t *testing.T) {
		_, _, handler := newTestHandler()

		req := httptest.NewRequest("POST", "/payment/create-order", bytes.NewBufferString("{not json"))
		w := httptest.NewRecorder()
		handler.ServeHTTP(w, req)

		assert.Equal(t, http.StatusBadRequest, w.Code)
	})

	t.Run("ValidationError", func(t *testing.T) {
		orders, _, handler := newTestHandler()
		orders.On("CreateOrderFromPayment", mock.Anything, mock.Anything).
			Return(nil, order.ErrEmptyReference)

		req := httptest.NewRequest("POST", "/payment/create-order", bytes.NewBufferString(`{"total": 1}`))
		w := httptest.NewRecorder()
		handler.ServeHTTP(w, req)

		assert.Equal(t, http.StatusBadRequest, w.Code)
	})

	t.Run("InfrastructureError", func(t *testing.T) {
		orders, _, handler := newTestHandler()
		orders.On("CreateOrderFromPayment", mock.Anything, mock.Anything).
			Return(nil, errors.New("connection reset"))

		req := httptest.NewRequest("POST", "/payment/create-order", bytes.NewBufferString(body))
		w := httptest.NewRecorder()
		handler.ServeHTTP(w, req)

		assert.Equal(t, http.StatusInternalServerError, w.Code)
	})
}

func TestHandler_GetOrderByReference(t *testing.T) {
	t.Run("Found", func(t *testing.T) {
		orders, _, handler := newTestHandler()
		orders.On("FindByPaymentReference", mock.Anything, "pi_123").
			Return(&order.Order{ID: "order-1", PaymentReference: "pi_123"}, nil)

		req := httptest.NewRequest("GET", "/payment/order/pi_123", nil)
		w := httptest.NewRecorder()
		handler.ServeHTTP(w, req)

		assert.Equal(t, http.StatusOK, w.Code)
	})

	t.Run("NotFound", func(t *testing.T) {
		orders, _, handler := newTestHandler()
		orders.On("FindByPaymentReference", mock.Anything, "pi_x").
			Return(nil, order.ErrOrderNotFound)

		req := httptest.NewRequest("GET", "/payment/order/pi_x", nil)
		w := httptest.NewRecorder()
		handler.ServeHTTP(w, req)

		assert.Equal(t, http.StatusNotFound, w.Code)
	})
}

func TestHandler_GetOrder(t *testing.T) {
	orders, _, handler := newTestHandler()
	orders.On("GetOrderDetail", mock.Anything, "order-1").
		Return(&order.Order{ID: "order-1"}, nil)

	req := httptest.NewRequest("GET", "/orders/order-1", nil)
	w := httptest.NewRecorder()
	handler.ServeHTTP(w, req)

	assert.Equal(t, http.StatusOK, w.Code)
}

func TestHandler_GetProduct(t *testing.T) {
	t.Run("Found", func(t *testing.T) {
		_, products, handler := newTestHandler()
		products.On("GetByID", mock.Anything, "prod-1").
			Return(&product.Product{ID: "prod-1", Name: "Walnut Desk"}, nil)

		req := httptest.NewRequest("GET", "/products/prod-1", nil)
		w := httptest.NewRecorder()
		handler.ServeHTTP(w, req)

		assert.Equal(t, http.StatusOK, w.Code)
	})

	t.Run("NotFound", func(t *testing.T) {
		_, products, handler := newTestHandler()
		products.On("GetByID", mock.Anything, "missing").
			Return(nil, product.ErrProductNotFound)

		req := httptest.NewRequest("GET", "/products/missing", nil)
		w := httptest.NewRecorder()
		handler.ServeHTTP(w, req)

		assert.Equal(t, http.StatusNotFound, w.Code)
	})
}

func TestHandler_ListProducts(t *testing.T) {
	_, products, handler := newTestHandler()
	products.On("List", mock.Anything).Return([]product.Product{
		{ID: "prod-1", Name: "Walnut Desk", Stock: 12, Status: product.StatusInStock},
	}, nil)

	req := httptest.NewRequest("GET", "/products", nil)
	w := httptest.NewRecorder()
	handler.ServeHTTP(w, req)

	assert.Equal(t, http.StatusOK, w.Code)

	var resp []product.Product
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	require.Len(t, resp, 1)
	assert.Equal(t, product.StatusInStock, resp[0].Status)
}
