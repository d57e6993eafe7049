package models

import (
	"fmt"
	"math"
	"strings"
	"time"

	"github.com/google/uuid"
	"gorm.io/datatypes"
)

type Subtask struct {
	ID          string `json:"_id"`
	Descripcion string `json:"descripcion" binding:"required"`
	Completada  bool   `json:"completada"`
}

func (s Subtask) Validate() error {
	return validateStruct(s)
}

func NewSubtask(descripcion string) Subtask {
	return Subtask{ID: uuid.NewString(), Descripcion: strings.TrimSpace(descripcion)}
}

type Task struct {
	Base

	Titulo      string                       `gorm:"size:200;not null" json:"titulo" binding:"required,max=200"`
	Categoria   string                       `gorm:"size:50" json:"categoria"`
	Prioridad   int                          `gorm:"default:0" json:"prioridad"`
	Completada  bool                         `gorm:"default:false" json:"completada"`
	FechaLimite *time.Time                   `gorm:"column:fecha_limite;index" json:"fechaLimite,omitempty"`
	Subtareas   datatypes.JSONSlice[Subtask] `gorm:"column:subtareas" json:"subtareas"`
	Progreso    int                          `gorm:"default:0" json:"progreso"`
}

// Validate checks the binding rules and rejects a deadline before now.
func (t *Task) Validate(now time.Time) error {
	t.Titulo = strings.TrimSpace(t.Titulo)
	if err := validateStruct(t); err != nil {
		return err
	}
	if t.FechaLimite != nil && t.FechaLimite.Before(now) {
		return fmt.Errorf("%w: fechaLimite cannot be in the past", ErrValidation)
	}
	return nil
}

// RecomputeProgress sets Progreso to the rounded percentage of completed subtasks.
func (t *Task) RecomputeProgress() {
	if len(t.Subtareas) == 0 {
		t.Progreso = 0
		return
	}
	done := 0
	for _, st := range t.Subtareas {
		if st.Completada {
			done++
		}
	}
	t.Progreso = int(math.Round(float64(done) * 100 / float64(len(t.Subtareas))))
}
