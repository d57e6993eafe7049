package services

import (
	"context"
	"fmt"
	"time"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"boda-backend/models"
)

// TaskFilter narrows the task list. Zero values mean no filter.
type TaskFilter struct {
	Completed *bool
	From      *time.Time
	To        *time.Time
}

type TaskService struct {
	*ResourceService[models.Task, *models.Task]
	Now func() time.Time
}

func NewTaskService(db *gorm.DB) *TaskService {
	base := NewResourceService[models.Task](db, "task")
	base.Order = "prioridad DESC, fecha_limite ASC, id ASC"
	return &TaskService{ResourceService: base, Now: time.Now}
}

func (s *TaskService) ListFiltered(ctx context.Context, f TaskFilter) ([]models.Task, error) {
	q := s.DB.WithContext(ctx).Model(&models.Task{})
	if f.Completed != nil {
		q = q.Where("completada = ?", *f.Completed)
	}
	if f.From != nil {
		q = q.Where("fecha_limite >= ?", *f.From)
	}
	if f.To != nil {
		q = q.Where("fecha_limite <= ?", *f.To)
	}
	tasks := []models.Task{}
	err := q.Order(s.Order).Find(&tasks).Error
	return tasks, err
}

func (s *TaskService) Create(ctx context.Context, t *models.Task) error {
	if err := t.Validate(s.Now()); err != nil {
		return err
	}
	for i := range t.Subtareas {
		if t.Subtareas[i].ID == "" {
			t.Subtareas[i] = models.NewSubtask(t.Subtareas[i].Descripcion)
		}
	}
	t.RecomputeProgress()
	return s.ResourceService.Create(ctx, t)
}

// Save replaces task id. The past-deadline rule only applies when the deadline changes.
func (s *TaskService) Save(ctx context.Context, id uint, t *models.Task) error {
	prev, err := s.Get(ctx, id)
	if err != nil {
		return err
	}
	check := s.Now()
	if prev.FechaLimite != nil && t.FechaLimite != nil && prev.FechaLimite.Equal(*t.FechaLimite) {
		check = time.Time{}
	}
	if err := t.Validate(check); err != nil {
		return err
	}
	t.RecomputeProgress()
	return s.ResourceService.Save(ctx, id, t)
}

// AddSubtask appends a pending subtask and returns the updated task.
func (s *TaskService) AddSubtask(ctx context.Context, id uint, descripcion string) (*models.Task, error) {
	sub := models.NewSubtask(descripcion)
	if err := sub.Validate(); err != nil {
		return nil, err
	}
	return s.editSubtasks(ctx, id, func(t *models.Task) error {
		t.Subtareas = append(t.Subtareas, sub)
		return nil
	})
}

// SetSubtask marks subID done or pending and recomputes the task progress.
func (s *TaskService) SetSubtask(ctx context.Context, id uint, subID string, done bool) (*models.Task, error) {
	return s.editSubtasks(ctx, id, func(t *models.Task) error {
		for i := range t.Subtareas {
			if t.Subtareas[i].ID == subID {
				t.Subtareas[i].Completada = done
				return nil
			}
		}
		return fmt.Errorf("subtask %s: %w", subID, gorm.ErrRecordNotFound)
	})
}

func (s *TaskService) editSubtasks(ctx context.Context, id uint, edit func(*models.Task) error) (*models.Task, error) {
	var task models.Task
	err := s.DB.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Clauses(clause.Locking{Strength: "UPDATE"}).First(&task, id).Error; err != nil {
			return err
		}
		if err := edit(&task); err != nil {
			return err
		}
		task.RecomputeProgress()
		return tx.Model(&task).Select("subtareas", "progreso").Updates(&task).Error
	})
	if err != nil {
		return nil, err
	}
	return &task, nil
}
