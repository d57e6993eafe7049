package services

import (
	"context"
	"log"

	"gorm.io/gorm"
)

// Resource is satisfied by pointers to the planner models that embed models.Base.
type Resource[T any] interface {
	*T
	SetID(id uint)
}

// ResourceService is the plain CRUD used by vendors, documents, inspiration, songs
// and expenses.
type ResourceService[T any, PT Resource[T]] struct {
	DB    *gorm.DB
	Name  string
	Order string
}

func NewResourceService[T any, PT Resource[T]](db *gorm.DB, name string) *ResourceService[T, PT] {
	return &ResourceService[T, PT]{DB: db, Name: name, Order: "id ASC"}
}

func (s *ResourceService[T, PT]) List(ctx context.Context) ([]T, error) {
	items := []T{}
	if err := s.DB.WithContext(ctx).Order(s.Order).Find(&items).Error; err != nil {
		log.Printf("❌ list %s: %v", s.Name, err)
		return nil, err
	}
	return items, nil
}

func (s *ResourceService[T, PT]) Get(ctx context.Context, id uint) (PT, error) {
	item := PT(new(T))
	if err := s.DB.WithContext(ctx).First(item, id).Error; err != nil {
		return nil, err
	}
	return item, nil
}

func (s *ResourceService[T, PT]) Create(ctx context.Context, item PT) error {
	item.SetID(0)
	if err := s.DB.WithContext(ctx).Create(item).Error; err != nil {
		log.Printf("❌ create %s: %v", s.Name, err)
		return err
	}
	return nil
}

// Save writes every column of item under id.
func (s *ResourceService[T, PT]) Save(ctx context.Context, id uint, item PT) error {
	item.SetID(id)
	return s.DB.WithContext(ctx).Save(item).Error
}

func (s *ResourceService[T, PT]) Delete(ctx context.Context, id uint) error {
	res := s.DB.WithContext(ctx).Delete(PT(new(T)), id)
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	log.Printf("🗑️ %s %d deleted", s.Name, id)
	return nil
}
