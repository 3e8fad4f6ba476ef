package httpapi

import (
	"context"
	"net/http"

	sonic "github.com/bytedance/sonic"
)

// errorBody is the error contract of the API: every failed request gets
// HTTP 400 and a single message, regardless of the failure class. Only a
// recovered panic answers 500.
type errorBody struct {
	Error string `json:"error"`
}

func writeJSON(ctx context.Context, w http.ResponseWriter, status int, payload any) {
	_, span := startSpan(ctx, "httpapi.writeJSON")
	defer span.End()

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = sonic.ConfigDefault.NewEncoder(w).Encode(payload)
}

func writeError(ctx context.Context, w http.ResponseWriter, err error) {
	writeJSON(ctx, w, http.StatusBadRequest, errorBody{Error: err.Error()})
}

func writeInternalError(ctx context.Context, w http.ResponseWriter) {
	writeJSON(ctx, w, http.StatusInternalServerError, errorBody{Error: "internal server error"})
}
