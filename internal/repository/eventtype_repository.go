package repository

import (
	"context"
	"database/sql"
)

// EventType is static reference data for the category dropdowns and filters.
type EventType struct {
	ID   uint64
	Name string
}

type EventTypeRepo struct{ DB *sql.DB }

func NewEventTypeRepo(db *sql.DB) *EventTypeRepo { return &EventTypeRepo{DB: db} }

// ListByName returns all event types ordered alphabetically.
func (r *EventTypeRepo) ListByName(ctx context.Context) ([]EventType, error) {
	rows, err := r.DB.QueryContext(ctx,
		"SELECT eventtypeid, eventtypename FROM eventtypes ORDER BY eventtypename ASC")
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var types []EventType
	for rows.Next() {
		var t EventType
		if err := rows.Scan(&t.ID, &t.Name); err != nil {
			return nil, err
		}
		types = append(types, t)
	}
	return types, rows.Err()
}
