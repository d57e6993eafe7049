package services

import (
	"context"
	"errors"
	"fmt"
	"log"

	"gorm.io/datatypes"
	"gorm.io/gorm"

	"boda-backend/layoutsync"
	"boda-backend/models"
	"boda-backend/seating"
)

// LayoutService is the store of record for seating layouts. Rows are never deleted;
// the most recently created one is current.
type LayoutService struct {
	DB    *gorm.DB
	Slots int
}

func NewLayoutService(db *gorm.DB, slots int) *LayoutService {
	if slots <= 0 {
		slots = seating.DefaultSlots
	}
	return &LayoutService{DB: db, Slots: slots}
}

func (s *LayoutService) Latest(ctx context.Context) (*seating.Layout, error) {
	var row models.Layout
	err := s.DB.WithContext(ctx).Order("created_at DESC, id DESC").Take(&row).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, layoutsync.ErrNoLayout
	}
	if err != nil {
		return nil, err
	}
	return row.ToSeating(), nil
}

// Current returns the latest layout, creating an empty one when none exists yet.
func (s *LayoutService) Current(ctx context.Context) (*seating.Layout, error) {
	l, err := s.Latest(ctx)
	if errors.Is(err, layoutsync.ErrNoLayout) {
		log.Printf("ℹ️ no layout stored, creating an empty one with %d slots", s.Slots)
		return s.Create(ctx, seating.EmptyGrid(s.Slots))
	}
	return l, err
}

func (s *LayoutService) checked(espacios seating.Grid) (seating.Grid, error) {
	if len(espacios) != s.Slots {
		return nil, fmt.Errorf("%w: %d slots, want %d", seating.ErrInvalidLayout, len(espacios), s.Slots)
	}
	// legacy espacio-N ids are rewritten here
	g := seating.Normalize(espacios, s.Slots)
	// a guest's tickets can grow after they were seated, so this is stored as is
	if over := seating.OverCapacity(g); len(over) > 0 {
		log.Printf("⚠️ layout saved with tables over capacity: %v", over)
	}
	return g, nil
}

func (s *LayoutService) Create(ctx context.Context, espacios seating.Grid) (*seating.Layout, error) {
	g, err := s.checked(espacios)
	if err != nil {
		return nil, err
	}
	row := models.Layout{Espacios: datatypes.JSONSlice[seating.Slot](g), Version: seating.CurrentVersion}
	if err := s.DB.WithContext(ctx).Create(&row).Error; err != nil {
		return nil, err
	}
	log.Printf("✅ layout %d created", row.ID)
	return row.ToSeating(), nil
}

func (s *LayoutService) Replace(ctx context.Context, id uint, espacios seating.Grid) (*seating.Layout, error) {
	g, err := s.checked(espacios)
	if err != nil {
		return nil, err
	}

	var row models.Layout
	if err := s.DB.WithContext(ctx).First(&row, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, fmt.Errorf("%w: id %d", layoutsync.ErrNoLayout, id)
		}
		return nil, err
	}

	row.Espacios = datatypes.JSONSlice[seating.Slot](g)
	row.Version = seating.CurrentVersion
	if err := s.DB.WithContext(ctx).Model(&row).Select("espacios", "version").Updates(&row).Error; err != nil {
		return nil, err
	}
	return row.ToSeating(), nil
}
