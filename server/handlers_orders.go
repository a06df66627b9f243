package server

import (
	"net/http"
	"strings"

	mallerrors "github.com/jrsteele09/go-mall-client/internal/errors"
	"github.com/jrsteele09/go-mall-client/mallmodel"
	"github.com/jrsteele09/go-mall-client/users"
	"github.com/rs/zerolog/log"
)

// CreateOrderHandler turns the named cart lines into an order. The lines are
// consumed by the order.
func (s *Server) CreateOrderHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var draft mallmodel.OrderDraft
		if err := decodeJSON(r, &draft); err != nil {
			writeDomainError(w, err, "failed to create order")
			return
		}
		if strings.TrimSpace(draft.ShippingAddress) == "" || len(draft.CartItemIDs) == 0 {
			writeError(w, http.StatusBadRequest, "shipping address and cart items are required")
			return
		}

		user := userFromContext(r.Context())
		order, err := s.shop.CreateOrder(user.ID, strings.TrimSpace(draft.ShippingAddress), draft.CartItemIDs, s.now())
		if err != nil {
			writeDomainError(w, err, "failed to create order")
			return
		}

		log.Info().
			Int64("order_id", order.ID).
			Int64("customer_id", user.ID).
			Float64("total", order.TotalAmount).
			Msg("[Server CreateOrderHandler] order created")
		writeSuccess(w, http.StatusCreated, "order created", envelope{"orderId": order.ID})
	}
}

func (s *Server) ListOrdersHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		user := userFromContext(r.Context())
		orders, err := s.shop.OrdersByCustomer(user.ID)
		if err != nil {
			writeDomainError(w, err, "failed to load orders")
			return
		}
		for i := range orders {
			orders[i].CustomerName = user.Username
		}
		writeSuccess(w, http.StatusOK, "", envelope{"orders": orders})
	}
}

func (s *Server) ListAllOrdersHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		orders, err := s.shop.AllOrders()
		if err != nil {
			writeDomainError(w, err, "failed to load orders")
			return
		}
		names := map[int64]string{}
		for i := range orders {
			orders[i].CustomerName = s.customerName(names, orders[i].CustomerID)
		}
		writeSuccess(w, http.StatusOK, "", envelope{"orders": orders})
	}
}

func (s *Server) customerName(cache map[int64]string, id int64) string {
	if name, ok := cache[id]; ok {
		return name
	}
	name := ""
	if u, err := s.users.GetByID(id); err == nil {
		name = u.Username
	}
	cache[id] = name
	return name
}

// OrderHandler returns one order to its owner or an administrator
func (s *Server) OrderHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		order, ok := s.ownedOrder(w, r, "failed to load order")
		if !ok {
			return
		}
		order.CustomerName = s.customerName(map[int64]string{}, order.CustomerID)
		writeSuccess(w, http.StatusOK, "", envelope{"order": order})
	}
}

// DeleteOrderHandler removes an order; owners may delete their own orders
func (s *Server) DeleteOrderHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		order, ok := s.ownedOrder(w, r, "failed to delete order")
		if !ok {
			return
		}
		if err := s.shop.DeleteOrder(order.ID); err != nil {
			writeDomainError(w, err, "failed to delete order")
			return
		}
		log.Info().Int64("order_id", order.ID).Msg("[Server DeleteOrderHandler] order deleted")
		writeSuccess(w, http.StatusOK, "order deleted", nil)
	}
}

func (s *Server) UpdateOrderStatusHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id, err := pathID(r)
		if err != nil {
			writeDomainError(w, err, "failed to update order status")
			return
		}
		var req mallmodel.UpdateOrderStatusRequest
		if err := decodeJSON(r, &req); err != nil {
			writeDomainError(w, err, "failed to update order status")
			return
		}
		status, ok := mallmodel.ParseOrderStatus(string(req.Status))
		if !ok {
			writeError(w, http.StatusBadRequest, "unknown order status: "+string(req.Status))
			return
		}
		if err := s.shop.UpdateOrderStatus(id, status); err != nil {
			writeDomainError(w, err, "failed to update order status")
			return
		}
		writeSuccess(w, http.StatusOK, "order status updated", nil)
	}
}

// ownedOrder loads the {id} order and checks the caller may see it, writing
// the error response when not
func (s *Server) ownedOrder(w http.ResponseWriter, r *http.Request, fallback string) (mallmodel.Order, bool) {
	id, err := pathID(r)
	if err != nil {
		writeDomainError(w, err, fallback)
		return mallmodel.Order{}, false
	}
	order, err := s.shop.GetOrder(id)
	if err != nil {
		writeDomainError(w, err, fallback)
		return mallmodel.Order{}, false
	}
	if !canAccessOrder(userFromContext(r.Context()), order) {
		writeDomainError(w, mallerrors.Wrapf(mallerrors.ErrForbidden, "order %d belongs to another customer", id), fallback)
		return mallmodel.Order{}, false
	}
	return order, true
}

func canAccessOrder(user *users.User, order mallmodel.Order) bool {
	return user != nil && (user.IsAdmin || user.ID == order.CustomerID)
}
