// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

// Package handlers implements the JSON HTTP API. Handler groups wrap
// the stores and translate domain faults into HTTP status codes; all
// responses are JSON.
package handlers

import (
	"encoding/json"
	"log/slog"
	"net/http"

	"inkwell/internal/fault"
)

// respondJSON writes v as a JSON response with the given status.
func respondJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		slog.Error("encode response failed", "error", err)
	}
}

// respondMessage writes a {"message": ...} JSON body.
func respondMessage(w http.ResponseWriter, status int, msg string) {
	respondJSON(w, status, map[string]string{"message": msg})
}

// respondError maps a domain fault to its HTTP status and writes the
// fault message. Errors outside the taxonomy are logged and surface as
// an opaque 500.
func respondError(w http.ResponseWriter, err error) {
	status := http.StatusInternalServerError
	switch fault.KindOf(err) {
	case fault.KindNotFound:
		status = http.StatusNotFound
	case fault.KindInvalidArgument:
		status = http.StatusBadRequest
	case fault.KindPermissionDenied:
		status = http.StatusForbidden
	case fault.KindConflict:
		status = http.StatusConflict
	case fault.KindUnavailable:
		status = http.StatusServiceUnavailable
	default:
		slog.Error("request failed", "error", err)
		respondMessage(w, status, "internal server error")
		return
	}
	respondMessage(w, status, fault.MessageOf(err, "request failed"))
}
