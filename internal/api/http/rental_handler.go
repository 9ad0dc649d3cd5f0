package http

import (
	"encoding/json"
	"net/http"

	"drivehub-backend/internal/service"
)

type RentalHandler struct {
	rentals service.RentalService
}

func NewRentalHandler(rentals service.RentalService) *RentalHandler {
	return &RentalHandler{rentals: rentals}
}

type createRentalRequest struct {
	VehicleID string     `json:"v_id"`
	Price     looseFloat `json:"price"`
	Coupon    string     `json:"coupon"`
	PaymentID string     `json:"pay_id"`
}

func (h *RentalHandler) Create(w http.ResponseWriter, r *http.Request) {
	var req createRentalRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "invalid request body"})
		return
	}

	actor := ActorFromContext(r)
	rental, err := h.rentals.Create(r.Context(), actor, req.VehicleID, float64(req.Price), req.Coupon, req.PaymentID)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]string{
		"status": "success",
		"tx_id":  rental.TxID,
		"date":   rental.Date,
	})
}

type returnRentalRequest struct {
	TxID string     `json:"tx_id"`
	Kms  looseInt   `json:"kms"`
	Fine looseFloat `json:"fine"`
}

func (h *RentalHandler) Return(w http.ResponseWriter, r *http.Request) {
	var req returnRentalRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "invalid request body"})
		return
	}

	actor := ActorFromContext(r)
	if _, err := h.rentals.Return(r.Context(), actor, req.TxID, int(req.Kms), float64(req.Fine)); err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]string{"status": "success"})
}
