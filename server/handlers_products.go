package server

import (
	"net/http"

	"github.com/jrsteele09/go-mall-client/mallmodel"
	"github.com/rs/zerolog/log"
)

func (s *Server) ListProductsHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		products, err := s.shop.ListProducts()
		if err != nil {
			writeDomainError(w, err, "failed to load products")
			return
		}
		writeSuccess(w, http.StatusOK, "", envelope{"data": products})
	}
}

func (s *Server) ProductHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id, err := pathID(r)
		if err != nil {
			writeDomainError(w, err, "product not found")
			return
		}
		product, err := s.shop.GetProduct(id)
		if err != nil {
			writeDomainError(w, err, "product not found")
			return
		}
		writeSuccess(w, http.StatusOK, "", envelope{"data": product})
	}
}

func (s *Server) CreateProductHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var input mallmodel.ProductInput
		if err := decodeJSON(r, &input); err != nil {
			writeDomainError(w, err, "failed to add product")
			return
		}
		product, err := s.shop.CreateProduct(input)
		if err != nil {
			writeDomainError(w, err, "failed to add product")
			return
		}
		log.Info().Int64("product_id", product.ID).Str("name", product.Name).Msg("[Server CreateProductHandler] product added")
		writeSuccess(w, http.StatusCreated, "product added", envelope{"data": product})
	}
}

func (s *Server) UpdateProductHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id, err := pathID(r)
		if err != nil {
			writeDomainError(w, err, "failed to update product")
			return
		}
		var input mallmodel.ProductInput
		if err := decodeJSON(r, &input); err != nil {
			writeDomainError(w, err, "failed to update product")
			return
		}
		product, err := s.shop.UpdateProduct(id, input)
		if err != nil {
			writeDomainError(w, err, "failed to update product")
			return
		}
		writeSuccess(w, http.StatusOK, "product updated", envelope{"data": product})
	}
}

func (s *Server) DeleteProductHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id, err := pathID(r)
		if err != nil {
			writeDomainError(w, err, "failed to delete product")
			return
		}
		if err := s.shop.DeleteProduct(id); err != nil {
			writeDomainError(w, err, "failed to delete product")
			return
		}
		log.Info().Int64("product_id", id).Msg("[Server DeleteProductHandler] product removed")
		writeSuccess(w, http.StatusOK, "product deleted", nil)
	}
}
