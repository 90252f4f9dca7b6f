// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

package models

import (
	"time"

	"github.com/google/uuid"
)

// OwnedEntity is a user-owned label record. Categories and tags share
// this shape and differ only in the table they live in; articles refer
// to them by name, not by id.
type OwnedEntity struct {
	ID          uuid.UUID `json:"id"`
	Name        string    `json:"name"`
	Description string    `json:"description"`
	OwnerID     uuid.UUID `json:"owner_id"`
	OwnerName   string    `json:"owner_name,omitempty"` // Virtual, populated on list
	CreatedAt   time.Time `json:"created_at"`
}
