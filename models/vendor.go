package models

import (
	"strings"

	"gorm.io/datatypes"
)

type Contact struct {
	Telefono string `json:"telefono,omitempty"`
	Email    string `json:"email,omitempty"`
}

type Vendor struct {
	Base

	Nombre     string                      `gorm:"size:150;not null" json:"nombre" binding:"required,max=150"`
	Servicio   string                      `gorm:"size:150" json:"servicio"`
	Contacto   datatypes.JSONType[Contact] `gorm:"column:contacto" json:"contacto"`
	Contratado bool                        `gorm:"default:false" json:"contratado"`
	Notas      string                      `gorm:"type:text" json:"notas"`
}

func (v *Vendor) Validate() error {
	v.Nombre = strings.TrimSpace(v.Nombre)
	return validateStruct(v)
}
