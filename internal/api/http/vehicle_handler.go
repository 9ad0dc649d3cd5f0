package http

import (
	"encoding/json"
	"net/http"

	"drivehub-backend/internal/logger"
	"drivehub-backend/internal/service"
	"drivehub-backend/internal/storage"
)

type VehicleHandler struct {
	fleet     service.FleetService
	images    *storage.ImageStore
	maxUpload int64
}

func NewVehicleHandler(fleet service.FleetService, images *storage.ImageStore, maxUploadBytes int64) *VehicleHandler {
	return &VehicleHandler{fleet: fleet, images: images, maxUpload: maxUploadBytes}
}

// Manage creates or updates a vehicle from a multipart form. An empty or
// "null" id means create; an optional image part replaces the stored photo.
func (h *VehicleHandler) Manage(w http.ResponseWriter, r *http.Request) {
	r.Body = http.MaxBytesReader(w, r.Body, h.maxUpload)
	if err := r.ParseMultipartForm(h.maxUpload); err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "invalid form data"})
		return
	}

	in := service.VehicleInput{
		Model:        r.FormValue("model"),
		Price:        r.FormValue("price"),
		Year:         r.FormValue("year"),
		Fuel:         r.FormValue("fuel"),
		Transmission: r.FormValue("transmission"),
		Seats:        r.FormValue("seats"),
		Health:       r.FormValue("health"),
		Kms:          r.FormValue("kms"),
		Status:       r.FormValue("status"),
	}

	var imageName string
	if file, header, err := r.FormFile("image"); err == nil {
		defer file.Close()
		imageName, err = h.images.Save(file, header.Filename)
		if err != nil {
			logger.Error("Failed to store vehicle image", "error", err)
			writeJSON(w, http.StatusInternalServerError, map[string]string{"error": "could not store image"})
			return
		}
	}

	actor := ActorFromContext(r)
	if _, err := h.fleet.SaveVehicle(r.Context(), actor, r.FormValue("id"), in, imageName); err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]string{"status": "success"})
}

type deleteVehicleRequest struct {
	ID string `json:"id"`
}

func (h *VehicleHandler) Delete(w http.ResponseWriter, r *http.Request) {
	var req deleteVehicleRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "invalid request body"})
		return
	}

	actor := ActorFromContext(r)
	if err := h.fleet.DeleteVehicle(r.Context(), actor, req.ID); err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]string{"status": "success"})
}
