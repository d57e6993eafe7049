package models

import (
	"errors"
	"fmt"
	"reflect"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"
)

// ErrValidation marks a payload that breaks a model rule.
var ErrValidation = errors.New("validation failed")

// structValidator reads the same binding tags gin checks on request bodies, so a
// record saved outside a handler obeys the same rules.
var structValidator = func() *validator.Validate {
	v := validator.New()
	v.SetTagName("binding")
	v.RegisterTagNameFunc(func(f reflect.StructField) string {
		name, _, _ := strings.Cut(f.Tag.Get("json"), ",")
		if name == "" || name == "-" {
			return f.Name
		}
		return name
	})
	return v
}()

func validateStruct(v any) error {
	if err := structValidator.Struct(v); err != nil {
		return fmt.Errorf("%w: %v", ErrValidation, err)
	}
	return nil
}

// Base carries the columns every planner record shares.
type Base struct {
	ID        uint      `gorm:"primaryKey;autoIncrement" json:"_id"`
	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}

func (b *Base) SetID(id uint) { b.ID = id }
