// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

package handlers

import (
	"encoding/json"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"

	"inkwell/internal/middleware"
	"inkwell/internal/store"
)

// Registry serves one user-owned label collection. Categories and tags
// share the same behavior, so the router mounts two instances of this
// group backed by different stores.
type Registry struct {
	entities *store.OwnedEntityStore
}

// NewRegistry creates a Registry handler group over the given store.
func NewRegistry(entities *store.OwnedEntityStore) *Registry {
	return &Registry{entities: entities}
}

// Create adds a new entry owned by the caller.
func (h *Registry) Create(w http.ResponseWriter, r *http.Request) {
	caller := middleware.IdentityFromCtx(r.Context())

	var req struct {
		Name        string `json:"name"`
		Description string `json:"description"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondMessage(w, http.StatusBadRequest, "invalid request body")
		return
	}
	if msg := validateOwnedEntity(req.Name, req.Description); msg != "" {
		respondMessage(w, http.StatusBadRequest, msg)
		return
	}

	entity, err := h.entities.Create(req.Name, req.Description, caller.UserID)
	if err != nil {
		respondError(w, err)
		return
	}
	respondJSON(w, http.StatusCreated, entity)
}

// List returns all entries with the owner display names resolved.
func (h *Registry) List(w http.ResponseWriter, r *http.Request) {
	items, err := h.entities.List()
	if err != nil {
		respondError(w, err)
		return
	}
	respondJSON(w, http.StatusOK, items)
}

// Delete removes an entry. Owner only.
func (h *Registry) Delete(w http.ResponseWriter, r *http.Request) {
	id, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		respondMessage(w, http.StatusBadRequest, "invalid id")
		return
	}
	caller := middleware.IdentityFromCtx(r.Context())

	if err := h.entities.Delete(id, caller.UserID); err != nil {
		respondError(w, err)
		return
	}
	respondMessage(w, http.StatusOK, "deleted")
}
