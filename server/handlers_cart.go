package server

import (
	"net/http"

	"github.com/jrsteele09/go-mall-client/mallmodel"
)

func (s *Server) CartHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		items, err := s.shop.CartItems(userFromContext(r.Context()).ID)
		if err != nil {
			writeDomainError(w, err, "failed to fetch cart")
			return
		}
		writeSuccess(w, http.StatusOK, "", envelope{"data": items})
	}
}

// AddCartItemHandler adds to the caller's line for a product, creating it when absent
func (s *Server) AddCartItemHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req mallmodel.AddCartItemRequest
		if err := decodeJSON(r, &req); err != nil {
			writeDomainError(w, err, "failed to add item to cart")
			return
		}
		if req.Quantity == 0 {
			req.Quantity = 1
		}
		if err := s.shop.AddCartItem(userFromContext(r.Context()).ID, req.ProductID, req.Quantity); err != nil {
			writeDomainError(w, err, "failed to add item to cart")
			return
		}
		writeSuccess(w, http.StatusOK, "item added to cart", nil)
	}
}

func (s *Server) UpdateCartItemHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		cartID, err := pathID(r)
		if err != nil {
			writeDomainError(w, err, "failed to update cart item quantity")
			return
		}
		var req mallmodel.UpdateQuantityRequest
		if err := decodeJSON(r, &req); err != nil {
			writeDomainError(w, err, "failed to update cart item quantity")
			return
		}
		if err := s.shop.UpdateCartQuantity(userFromContext(r.Context()).ID, cartID, req.Quantity); err != nil {
			writeDomainError(w, err, "failed to update cart item quantity")
			return
		}
		writeSuccess(w, http.StatusOK, "quantity updated", nil)
	}
}

func (s *Server) DeleteCartItemHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		cartID, err := pathID(r)
		if err != nil {
			writeDomainError(w, err, "failed to remove cart item")
			return
		}
		if err := s.shop.RemoveCartItem(userFromContext(r.Context()).ID, cartID); err != nil {
			writeDomainError(w, err, "failed to remove cart item")
			return
		}
		writeSuccess(w, http.StatusOK, "item removed from cart", nil)
	}
}
