package services

import (
	"context"
	"log"

	"gorm.io/gorm"

	"boda-backend/models"
	"boda-backend/seating"
)

type GuestService struct {
	DB *gorm.DB
}

func NewGuestService(db *gorm.DB) *GuestService {
	return &GuestService{DB: db}
}

// ----------------------------------------------------
// CREATE
// ----------------------------------------------------
func (s *GuestService) Create(ctx context.Context, guest *models.Guest) error {
	log.Printf("➡️ GuestService.Create nombre=%q", guest.Nombre)
	if err := guest.Validate(); err != nil {
		return err
	}
	err := s.DB.WithContext(ctx).Create(guest).Error
	log.Printf("⬅️ GuestService.Create id=%d (err: %v)", guest.ID, err)
	return err
}

func (s *GuestService) GetAll(ctx context.Context) ([]models.Guest, error) {
	var guests []models.Guest
	if err := s.DB.WithContext(ctx).Order("id ASC").Find(&guests).Error; err != nil {
		log.Printf("⬅️ GuestService.GetAll error: %v", err)
		return nil, err
	}
	return guests, nil
}

func (s *GuestService) GetByID(ctx context.Context, id uint) (*models.Guest, error) {
	var guest models.Guest
	if err := s.DB.WithContext(ctx).First(&guest, id).Error; err != nil {
		return nil, err
	}
	return &guest, nil
}

// ----------------------------------------------------
// UPDATE (full record, caller merges the payload first)
// ----------------------------------------------------
func (s *GuestService) Update(ctx context.Context, guest *models.Guest) error {
	log.Printf("➡️ GuestService.Update id=%d", guest.ID)
	if err := guest.Validate(); err != nil {
		return err
	}
	res := s.DB.WithContext(ctx).Save(guest)
	if res.Error != nil {
		log.Printf("⬅️ GuestService.Update err=%v", res.Error)
	}
	return res.Error
}

func (s *GuestService) Delete(ctx context.Context, id uint) error {
	res := s.DB.WithContext(ctx).Delete(&models.Guest{}, id)
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	log.Printf("🗑️ guest %d deleted", id)
	return nil
}

// Parties lists the guest directory in the form the seating engine uses.
func (s *GuestService) Parties(ctx context.Context) ([]seating.Party, error) {
	guests, err := s.GetAll(ctx)
	if err != nil {
		return nil, err
	}
	return models.GuestsToParties(guests), nil
}
