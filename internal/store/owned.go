// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

package store

import (
	"database/sql"
	"fmt"

	"github.com/google/uuid"

	"inkwell/internal/fault"
	"inkwell/internal/models"
)

// OwnedEntityStore manages a table of user-owned label records.
// Categories and tags are structurally identical, so both are served by
// this one store parameterized over the table and entity name.
type OwnedEntityStore struct {
	db    *sql.DB
	table string // "categories" or "tags"
	kind  string // singular name used in messages, e.g. "category"
}

// NewCategoryStore returns the owned-entity store for categories.
func NewCategoryStore(db *sql.DB) *OwnedEntityStore {
	return &OwnedEntityStore{db: db, table: "categories", kind: "category"}
}

// NewTagStore returns the owned-entity store for tags.
func NewTagStore(db *sql.DB) *OwnedEntityStore {
	return &OwnedEntityStore{db: db, table: "tags", kind: "tag"}
}

// Create inserts a new entity owned by the given user.
func (s *OwnedEntityStore) Create(name, description string, ownerID uuid.UUID) (*models.OwnedEntity, error) {
	e := &models.OwnedEntity{}
	err := s.db.QueryRow(`
		INSERT INTO `+s.table+` (name, description, owner_id)
		VALUES ($1, $2, $3)
		RETURNING id, name, description, owner_id, created_at
	`, name, description, ownerID).Scan(&e.ID, &e.Name, &e.Description, &e.OwnerID, &e.CreatedAt)
	if err != nil {
		return nil, fmt.Errorf("create %s: %w", s.kind, err)
	}
	return e, nil
}

// List returns all entities with the owner's display name resolved.
func (s *OwnedEntityStore) List() ([]models.OwnedEntity, error) {
	rows, err := s.db.Query(`
		SELECT e.id, e.name, e.description, e.owner_id, u.name, e.created_at
		FROM ` + s.table + ` e
		JOIN users u ON u.id = e.owner_id
		ORDER BY e.created_at ASC
	`)
	if err != nil {
		return nil, fmt.Errorf("list %s: %w", s.table, err)
	}
	defer rows.Close()

	var items []models.OwnedEntity
	for rows.Next() {
		var e models.OwnedEntity
		if err := rows.Scan(&e.ID, &e.Name, &e.Description, &e.OwnerID, &e.OwnerName, &e.CreatedAt); err != nil {
			return nil, fmt.Errorf("scan %s: %w", s.kind, err)
		}
		items = append(items, e)
	}
	return items, rows.Err()
}

// Delete removes an entity after an ownership check: only the owner may
// delete, comparing canonical uuid values.
func (s *OwnedEntityStore) Delete(id, actingUserID uuid.UUID) error {
	var ownerID uuid.UUID
	err := s.db.QueryRow(`SELECT owner_id FROM `+s.table+` WHERE id = $1`, id).Scan(&ownerID)
	if err == sql.ErrNoRows {
		return fault.NotFound("no " + s.kind + " found")
	}
	if err != nil {
		return fmt.Errorf("load %s owner: %w", s.kind, err)
	}
	if ownerID != actingUserID {
		return fault.Denied("not allowed to delete this " + s.kind)
	}

	_, err = s.db.Exec(`DELETE FROM `+s.table+` WHERE id = $1 AND owner_id = $2`, id, actingUserID)
	if err != nil {
		return fmt.Errorf("delete %s: %w", s.kind, err)
	}
	return nil
}
