package sqlite

import (
	"context"
	"fmt"
)

type seedItem struct {
	name      string
	total     int
	condition string
}

var seedEquipment = []seedItem{
	{"Projector", 2, "good"},
	{"Microphone", 3, "good"},
	{"Bluetooth Speaker", 2, "good"},
	{"Laptop", 2, "good"},
	{"HDMI Cable", 5, "good"},
	{"Extension Cord", 4, "good"},
	{"DSLR Camera", 1, "good"},
	{"Tripod", 2, "good"},
}

// Seed inserts the starter equipment catalog. Items already present keep
// their current quantities, so reseeding an existing database is a no-op.
func (db *DB) Seed(ctx context.Context) error {
	for _, item := range seedEquipment {
		_, err := db.ExecContext(ctx,
			`INSERT OR IGNORE INTO equipment (name, total_quantity, available_quantity, condition)
			 VALUES (?, ?, ?, ?)`,
			item.name, item.total, item.total, item.condition)
		if err != nil {
			return fmt.Errorf("failed to seed %s: %w", item.name, err)
		}
	}
	return nil
}
