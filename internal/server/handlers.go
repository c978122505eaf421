package server

import (
	"encoding/json"
	"errors"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"

	"parking-allocator/internal/parking"
)

type Handler struct {
	lot         *parking.Lot
	serviceName string
}

func NewHandler(lot *parking.Lot, serviceName string) *Handler {
	return &Handler{
		lot:         lot,
		serviceName: serviceName,
	}
}

func (h *Handler) HealthCheck(w http.ResponseWriter, r *http.Request) {
	WriteJSON(w, http.StatusOK, HealthResponse{
		Status:  "healthy",
		Service: h.serviceName,
		Meta:    extractMeta(r.Context()),
	})
}

func (h *Handler) AddSpot(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	var req AddSpotRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		WriteError(ctx, w, http.StatusBadRequest, "Invalid request body")
		return
	}

	category, err := parking.ParseCategory(req.Category)
	if err != nil {
		WriteError(ctx, w, http.StatusBadRequest, err.Error())
		return
	}

	if req.ID <= 0 {
		WriteError(ctx, w, http.StatusBadRequest, "Spot id must be greater than 0")
		return
	}

	spot, err := h.lot.AddSpot(ctx, category, req.ID)
	if err != nil {
		WriteError(ctx, w, statusFor(err), err.Error())
		return
	}

	WriteSuccess(ctx, w, "Spot added successfully", spotResponse(spot))
}

func (h *Handler) RemoveSpot(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	category, err := parking.ParseCategory(chi.URLParam(r, "category"))
	if err != nil {
		WriteError(ctx, w, http.StatusBadRequest, err.Error())
		return
	}

	id, err := strconv.Atoi(chi.URLParam(r, "id"))
	if err != nil || id <= 0 {
		WriteError(ctx, w, http.StatusBadRequest, "Spot id must be a positive integer")
		return
	}

	if err := h.lot.RemoveSpot(ctx, category, id); err != nil {
		WriteError(ctx, w, statusFor(err), err.Error())
		return
	}

	WriteSuccess(ctx, w, "Spot removed successfully", map[string]any{
		"id":       id,
		"category": category.String(),
	})
}

func (h *Handler) Entry(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	vehicle, ok := decodeVehicle(w, r)
	if !ok {
		return
	}

	spot, err := h.lot.Park(ctx, vehicle)
	if err != nil {
		WriteError(ctx, w, statusFor(err), err.Error())
		return
	}

	WriteSuccess(ctx, w, "Vehicle parked successfully", spotResponse(spot))
}

func (h *Handler) Exit(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	vehicle, ok := decodeVehicle(w, r)
	if !ok {
		return
	}

	spot, err := h.lot.Leave(ctx, vehicle)
	if err != nil {
		WriteError(ctx, w, statusFor(err), err.Error())
		return
	}

	WriteSuccess(ctx, w, "Spot vacated successfully", spotResponse(spot))
}

func (h *Handler) GetStatus(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	response := StatusResponse{
		Strategy: h.lot.Strategy().Name(),
	}

	for _, status := range h.lot.Status() {
		cs := CategoryStatusResponse{
			Category:  status.Category.String(),
			Price:     status.Price,
			Capacity:  status.Capacity,
			Occupied:  status.Occupied,
			Available: status.Available,
			Spots:     make([]SpotResponse, 0, len(status.Spots)),
		}
		for _, spot := range status.Spots {
			cs.Spots = append(cs.Spots, SpotResponse{
				ID:            spot.ID,
				Category:      status.Category.String(),
				Price:         status.Price,
				Occupied:      spot.Occupied,
				VehicleNumber: vehicleNumber(spot.Occupied, spot.VehicleNumber),
			})
		}
		response.Categories = append(response.Categories, cs)
	}

	WriteSuccess(ctx, w, "Status retrieved successfully", response)
}

func (h *Handler) FindVehicle(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	number, err := strconv.Atoi(chi.URLParam(r, "number"))
	if err != nil {
		WriteError(ctx, w, http.StatusBadRequest, "Vehicle number must be an integer")
		return
	}

	spot, err := h.lot.Locate(ctx, number)
	if err != nil {
		WriteError(ctx, w, http.StatusNotFound, "Vehicle not found")
		return
	}

	WriteSuccess(ctx, w, "Vehicle found", spotResponse(spot))
}

func (h *Handler) GetPrices(w http.ResponseWriter, r *http.Request) {
	prices := make(map[string]int)
	for category, price := range h.lot.Prices() {
		prices[category.String()] = price
	}
	WriteSuccess(r.Context(), w, "Prices retrieved successfully", prices)
}

func decodeVehicle(w http.ResponseWriter, r *http.Request) (*parking.Vehicle, bool) {
	ctx := r.Context()
	var req VehicleRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		WriteError(ctx, w, http.StatusBadRequest, "Invalid request body")
		return nil, false
	}

	if req.Number <= 0 {
		WriteError(ctx, w, http.StatusBadRequest, parking.ErrInvalidVehicle.Error())
		return nil, false
	}

	category, err := parking.ParseCategory(req.Category)
	if err != nil {
		WriteError(ctx, w, http.StatusBadRequest, err.Error())
		return nil, false
	}

	return parking.NewVehicle(req.Number, category), true
}

func spotResponse(spot *parking.Spot) SpotResponse {
	resp := SpotResponse{
		ID:       spot.ID,
		Category: spot.Category.String(),
		Price:    spot.Price(),
		Occupied: !spot.IsAvailable(),
	}
	if v := spot.Occupant(); v != nil {
		resp.VehicleNumber = vehicleNumber(true, v.Number)
	}
	return resp
}

// vehicleNumber is set only for occupied spots so the field is present
// exactly when a vehicle is.
func vehicleNumber(occupied bool, number int) *int {
	if !occupied {
		return nil
	}
	return &number
}

func statusFor(err error) int {
	switch {
	case errors.Is(err, parking.ErrUnknownCategory), errors.Is(err, parking.ErrInvalidVehicle):
		return http.StatusBadRequest
	case errors.Is(err, parking.ErrSpotNotFound), errors.Is(err, parking.ErrVehicleNotParked):
		return http.StatusNotFound
	case errors.Is(err, parking.ErrNoSpotAvailable),
		errors.Is(err, parking.ErrVehicleParked),
		errors.Is(err, parking.ErrDuplicateSpot),
		errors.Is(err, parking.ErrSpotOccupied):
		return http.StatusConflict
	}
	return http.StatusInternalServerError
}
