package transport

import (
	"encoding/json"
	"errors"
	"net/http"

	"meridian-be/internal/logger"
	"meridian-be/internal/order"
	"meridian-be/internal/product"

	"go.uber.org/zap"
)

// Handler binds JSON and translates errors; all fulfillment semantics live in
// the order service.
type Handler struct {
	orders   order.Service
	products product.Service
}

func NewHandler(orders order.Service, products product.Service) *Handler {
	return &Handler{orders: orders, products: products}
}

func (h *Handler) Routes() http.Handler {
	mux := http.NewServeMux()
	mux.Handle("POST /payment/create-order", http.HandlerFunc(h.createOrder))
	mux.Handle("GET /payment/order/{ref}", http.HandlerFunc(h.getOrderByReference))
	mux.Handle("GET /orders/{id}", http.HandlerFunc(h.getOrder))
	mux.Handle("GET /products", http.HandlerFunc(h.listProducts))
	mux.Handle("GET /products/{id}", http.HandlerFunc(h.getProduct))
	return mux
}

type orderItemRequest struct {
	ProductID string  `json:"productId"`
	Quantity  int     `json:"quantity"`
	Price     float64 `json:"price"`
}

type createOrderRequest struct {
	PaymentIntentID string             `json:"paymentIntentId"`
	Total           float64            `json:"total"`
	Items           []orderItemRequest `json:"items"`
	UserID          *string            `json:"userId,omitempty"`
	CustomerEmail   *string            `json:"customerEmail,omitempty"`
	CustomerName    *string            `json:"customerName,omitempty"`
}

func (h *Handler) createOrder(w http.ResponseWriter, r *http.Request) {
	var req createOrderRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	input := order.PaymentInput{
		PaymentReference: req.PaymentIntentID,
		Total:            req.Total,
		CustomerID:       req.UserID,
		CustomerEmail:    req.CustomerEmail,
		CustomerName:     req.CustomerName,
	}
	for _, it := range req.Items {
		input.Items = append(input.Items, order.PaymentItem{
			ProductID: it.ProductID,
			Quantity:  it.Quantity,
			Price:     it.Price,
		})
	}

	o, err := h.orders.CreateOrderFromPayment(r.Context(), input)
	if err != nil {
		h.writeOrderError(w, r, err)
		return
	}

	writeJSON(w, http.StatusCreated, o)
}

func (h *Handler) getOrderByReference(w http.ResponseWriter, r *http.Request) {
	ref := r.PathValue("ref")

	o, err := h.orders.FindByPaymentReference(r.Context(), ref)
	if err != nil {
		h.writeOrderError(w, r, err)
		return
	}

	writeJSON(w, http.StatusOK, o)
}

func (h *Handler) getOrder(w http.ResponseWriter, r *http.Request) {
	o, err := h.orders.GetOrderDetail(r.Context(), r.PathValue("id"))
	if err != nil {
		h.writeOrderError(w, r, err)
		return
	}

	writeJSON(w, http.StatusOK, o)
}

func (h *Handler) getProduct(w http.ResponseWriter, r *http.Request) {
	p, err := h.products.GetByID(r.Context(), r.PathValue("id"))
	if err != nil {
		if errors.Is(err, product.ErrProductNotFound) {
			writeError(w, http.StatusNotFound, err.Error())
			return
		}
		writeError(w, http.StatusInternalServerError, "failed to fetch product")
		return
	}

	writeJSON(w, http.StatusOK, p)
}

func (h *Handler) listProducts(w http.ResponseWriter, r *http.Request) {
	products, err := h.products.List(r.Context())
	if err != nil {
		writeError(w, http.StatusInternalServerError, "failed to fetch products")
		return
	}

	writeJSON(w, http.StatusOK, products)
}

func (h *Handler) writeOrderError(w http.ResponseWriter, r *http.Request, err error) {
	var stockErr *product.InsufficientStockError

	switch {
	case errors.As(err, &stockErr):
		writeJSON(w, http.StatusConflict, map[string]any{
			"error":     stockErr.Error(),
			"product":   stockErr.Product,
			"available": stockErr.Available,
			"requested": stockErr.Requested,
		})
	case errors.Is(err, order.ErrOrderNotFound), errors.Is(err, product.ErrProductNotFound):
		writeError(w, http.StatusNotFound, err.Error())
	case errors.Is(err, order.ErrEmptyReference),
		errors.Is(err, order.ErrNoItems),
		errors.Is(err, order.ErrInvalidItem):
		writeError(w, http.StatusBadRequest, err.Error())
	default:
		logger.FromCtx(r.Context()).Error("order request failed", zap.Error(err))
		writeError(w, http.StatusInternalServerError, "internal server error")
	}
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

func writeError(w http.ResponseWriter, status int, msg string) {
	writeJSON(w, status, map[string]string{"error": msg})
}
