package models

import (
	"time"

	"gorm.io/datatypes"

	"boda-backend/seating"
)

// Layout rows are append-only; the newest one is the current seating chart.
type Layout struct {
	ID        uint                              `gorm:"primaryKey;autoIncrement" json:"_id"`
	Espacios  datatypes.JSONSlice[seating.Slot] `gorm:"column:espacios;not null" json:"espacios"`
	Version   int                               `gorm:"default:2" json:"version"`
	CreatedAt time.Time                         `gorm:"index" json:"createdAt"`
	UpdatedAt time.Time                         `json:"updatedAt"`
}

func (l Layout) ToSeating() *seating.Layout {
	return &seating.Layout{
		ID:        l.ID,
		Espacios:  seating.Grid(l.Espacios),
		Version:   l.Version,
		CreatedAt: l.CreatedAt,
	}
}
