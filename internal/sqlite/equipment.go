package sqlite

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/oncampus/gearbot/internal/domain/booking"
	"github.com/oncampus/gearbot/internal/domain/equipment"
)

// EquipmentRepository implements booking.EquipmentRepository for SQLite
type EquipmentRepository struct {
	db *DB
}

// NewEquipmentRepository creates a new EquipmentRepository
func NewEquipmentRepository(db *DB) *EquipmentRepository {
	return &EquipmentRepository{db: db}
}

// List returns all equipment ordered alphabetically by name
func (r *EquipmentRepository) List(ctx context.Context) ([]equipment.Equipment, error) {
	query := `
		SELECT id, name, total_quantity, available_quantity, condition
		FROM equipment
		ORDER BY name ASC
	`

	rows, err := r.db.QueryContext(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("failed to list equipment: %w", err)
	}
	defer rows.Close()

	var items []equipment.Equipment
	for rows.Next() {
		var eq equipment.Equipment
		if err := rows.Scan(&eq.ID, &eq.Name, &eq.TotalQuantity, &eq.AvailableQuantity, &eq.Condition); err != nil {
			return nil, fmt.Errorf("failed to scan equipment: %w", err)
		}
		items = append(items, eq)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate equipment: %w", err)
	}

	return items, nil
}

// GetByName retrieves equipment by name. The name column collates NOCASE so
// the match is case-insensitive.
func (r *EquipmentRepository) GetByName(ctx context.Context, name string) (*equipment.Equipment, error) {
	query := `
		SELECT id, name, total_quantity, available_quantity, condition
		FROM equipment
		WHERE name = ?
	`

	var eq equipment.Equipment
	err := r.db.QueryRowContext(ctx, query, name).Scan(
		&eq.ID,
		&eq.Name,
		&eq.TotalQuantity,
		&eq.AvailableQuantity,
		&eq.Condition,
	)

	if errors.Is(err, sql.ErrNoRows) {
		return nil, booking.ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get equipment: %w", err)
	}

	return &eq, nil
}
