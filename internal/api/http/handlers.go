package httpapi

import (
	"encoding/json"
	"errors"
	"log"
	"net/http"
	"strconv"
	"time"

	"mealdrop/internal/domain"
	"mealdrop/internal/service"

	"github.com/gorilla/mux"
)

type Handler struct {
	Catalog service.CatalogServiceInterface
	Pricing service.PricingServiceInterface
	Orders  service.OrderServiceInterface
}

func NewHandler(catalog service.CatalogServiceInterface, pricing service.PricingServiceInterface, orders service.OrderServiceInterface) *Handler {
	return &Handler{
		Catalog: catalog,
		Pricing: pricing,
		Orders:  orders,
	}
}

func (h *Handler) RegisterRoutes(r *mux.Router) {
	r.HandleFunc("/health", h.healthCheck).Methods("GET")

	r.HandleFunc("/restaurants", h.getRestaurants).Methods("GET")
	r.HandleFunc("/restaurants/{id}/menu", h.getRestaurantMenu).Methods("GET")

	r.HandleFunc("/cart/price", h.priceCart).Methods("POST")

	r.HandleFunc("/orders", h.requireUser(h.createOrder)).Methods("POST")
	r.HandleFunc("/orders/me", h.requireUser(h.listMyOrders)).Methods("GET")
	r.HandleFunc("/orders/{id}/deliver", h.requireUser(h.deliverOrder)).Methods("PATCH")
	r.HandleFunc("/orders/{id}/qrcode", h.getOrderQRCode).Methods("GET")
}

type priceCartRequest struct {
	Items []domain.CartItem `json:"items"`
}

type createOrderRequest struct {
	Items           []domain.CartItem `json:"items"`
	DeliveryAddress string            `json:"deliveryAddress"`
}

type deliverOrderRequest struct {
	DeliveredBy string `json:"deliveredBy"`
}

type deliverOrderResponse struct {
	Message string        `json:"message"`
	Order   *domain.Order `json:"order"`
}

func (h *Handler) healthCheck(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]interface{}{
		"status":    "healthy",
		"service":   "mealdrop",
		"timestamp": time.Now().Format(time.RFC3339),
	})
}

func (h *Handler) getRestaurants(w http.ResponseWriter, r *http.Request) {
	restaurants, err := h.Catalog.Restaurants(r.Context())
	if err != nil {
		h.writeServiceError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, restaurants)
}

func (h *Handler) getRestaurantMenu(w http.ResponseWriter, r *http.Request) {
	id, err := strconv.Atoi(mux.Vars(r)["id"])
	if err != nil {
		writeError(w, http.StatusBadRequest, "Invalid restaurant id")
		return
	}
	items, err := h.Catalog.Menu(r.Context(), id)
	if err != nil {
		h.writeServiceError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, items)
}

func (h *Handler) priceCart(w http.ResponseWriter, r *http.Request) {
	var req priceCartRequest
	if !decodeBody(w, r, &req) {
		return
	}

	quote, err := h.Pricing.Quote(r.Context(), req.Items)
	if err != nil {
		h.writeServiceError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, quote)
}

func (h *Handler) createOrder(w http.ResponseWriter, r *http.Request, userID string) {
	var req createOrderRequest
	if !decodeBody(w, r, &req) {
		return
	}

	order, err := h.Orders.Create(r.Context(), userID, req.Items, req.DeliveryAddress)
	if err != nil {
		h.writeServiceError(w, err)
		return
	}
	writeJSON(w, http.StatusCreated, order)
}

func (h *Handler) listMyOrders(w http.ResponseWriter, r *http.Request, userID string) {
	orders, err := h.Orders.ListForUser(r.Context(), userID)
	if err != nil {
		h.writeServiceError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, orders)
}

func (h *Handler) deliverOrder(w http.ResponseWriter, r *http.Request, userID string) {
	id, err := strconv.Atoi(mux.Vars(r)["id"])
	if err != nil {
		writeError(w, http.StatusBadRequest, "Invalid order id")
		return
	}

	// Body is optional here; an empty body means no deliveredBy tag.
	var req deliverOrderRequest
	if r.Body != nil && r.ContentLength != 0 {
		if !decodeBody(w, r, &req) {
			return
		}
	}

	order, already, err := h.Orders.MarkDelivered(r.Context(), id, req.DeliveredBy)
	if err != nil {
		h.writeServiceError(w, err)
		return
	}

	message := "Order marked as delivered"
	if already {
		message = "Order already delivered"
	}
	writeJSON(w, http.StatusOK, deliverOrderResponse{Message: message, Order: order})
}

func (h *Handler) getOrderQRCode(w http.ResponseWriter, r *http.Request) {
	id, err := strconv.Atoi(mux.Vars(r)["id"])
	if err != nil {
		writeError(w, http.StatusBadRequest, "Invalid order id")
		return
	}

	qr, err := h.Orders.GetQRCode(r.Context(), id)
	if err != nil {
		h.writeServiceError(w, err)
		return
	}
	if len(qr) == 0 {
		writeError(w, http.StatusNotFound, "QR code not found")
		return
	}

	w.Header().Set("Content-Type", "image/png")
	w.Header().Set("Cache-Control", "public, max-age=3600")
	w.WriteHeader(http.StatusOK)
	w.Write(qr)
}

// decodeBody parses a JSON request body into dst, rejecting unknown
// fields. Writes a 400 and returns false on failure.
func decodeBody(w http.ResponseWriter, r *http.Request, dst interface{}) bool {
	decoder := json.NewDecoder(r.Body)
	decoder.DisallowUnknownFields()
	if err := decoder.Decode(dst); err != nil {
		writeError(w, http.StatusBadRequest, "Invalid request body: "+err.Error())
		return false
	}
	return true
}

func (h *Handler) writeServiceError(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, service.ErrOrderNotFound):
		writeError(w, http.StatusNotFound, err.Error())
	case errors.Is(err, service.ErrNoItems),
		errors.Is(err, service.ErrInvalidItem),
		errors.Is(err, service.ErrMixedRestaurant),
		errors.Is(err, service.ErrItemNotFound),
		errors.Is(err, service.ErrInvalidQuantity),
		errors.Is(err, service.ErrEmptyAddress),
		errors.Is(err, service.ErrCancelledOrder):
		writeError(w, http.StatusBadRequest, err.Error())
	default:
		log.Printf("[mealdrop] internal error: %v", err)
		writeError(w, http.StatusInternalServerError, "Server error")
	}
}

func writeJSON(w http.ResponseWriter, status int, body interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(body)
}

func writeError(w http.ResponseWriter, status int, message string) {
	writeJSON(w, status, map[string]string{"message": message})
}
