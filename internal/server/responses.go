package server

import (
	"context"
	"encoding/json"
	"net/http"

	"go.opentelemetry.io/otel/trace"

	"parking-allocator/internal/logging"
)

type Meta struct {
	TraceID   string `json:"trace_id,omitempty"`
	RequestID string `json:"request_id,omitempty"`
}

type Response struct {
	Success bool   `json:"success"`
	Message string `json:"message,omitempty"`
	Data    any    `json:"data,omitempty"`
	Error   string `json:"error,omitempty"`
	Meta    *Meta  `json:"meta,omitempty"`
}

type HealthResponse struct {
	Status  string `json:"status"`
	Service string `json:"service"`
	Meta    *Meta  `json:"meta,omitempty"`
}

type AddSpotRequest struct {
	Category string `json:"category"`
	ID       int    `json:"id"`
}

type VehicleRequest struct {
	Number   int    `json:"number"`
	Category string `json:"category"`
}

type SpotResponse struct {
	ID            int    `json:"id"`
	Category      string `json:"category"`
	Price         int    `json:"price"`
	Occupied      bool   `json:"occupied"`
	VehicleNumber *int   `json:"vehicle_number,omitempty"`
}

type CategoryStatusResponse struct {
	Category  string         `json:"category"`
	Price     int            `json:"price"`
	Capacity  int            `json:"capacity"`
	Occupied  int            `json:"occupied"`
	Available int            `json:"available"`
	Spots     []SpotResponse `json:"spots"`
}

type StatusResponse struct {
	Strategy   string                   `json:"strategy"`
	Categories []CategoryStatusResponse `json:"categories"`
}

func WriteJSON(w http.ResponseWriter, status int, data any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(data); err != nil {
		logging.Logger().Error("failed to encode response", "error", err)
	}
}

func extractMeta(ctx context.Context) *Meta {
	meta := &Meta{}

	span := trace.SpanFromContext(ctx)
	if span.SpanContext().HasTraceID() {
		meta.TraceID = span.SpanContext().TraceID().String()
	}

	if reqID, ok := ctx.Value(RequestIDKey).(string); ok {
		meta.RequestID = reqID
	}

	return meta
}

func WriteSuccess(ctx context.Context, w http.ResponseWriter, message string, data any) {
	WriteJSON(w, http.StatusOK, Response{
		Success: true,
		Message: message,
		Data:    data,
		Meta:    extractMeta(ctx),
	})
}

func WriteError(ctx context.Context, w http.ResponseWriter, status int, message string) {
	WriteJSON(w, status, Response{
		Success: false,
		Error:   message,
		Meta:    extractMeta(ctx),
	})
}
