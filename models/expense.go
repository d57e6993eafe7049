package models

import (
	"strings"
	"time"

	"gorm.io/datatypes"
	"gorm.io/gorm"
)

type ExpenseVendor struct {
	Nombre   string `json:"nombre,omitempty"`
	Contacto string `json:"contacto,omitempty"`
}

type Expense struct {
	Base

	Descripcion string                            `gorm:"size:100;not null" json:"descripcion" binding:"required,max=100"`
	Monto       float64                           `gorm:"not null" json:"monto" binding:"min=0"`
	Categoria   string                            `gorm:"size:30;default:otros" json:"categoria" binding:"omitempty,oneof=banquete vestuario decoracion fotografia musica invitaciones salon otros"`
	Fecha       time.Time                         `json:"fecha"`
	Proveedor   datatypes.JSONType[ExpenseVendor] `gorm:"column:proveedor" json:"proveedor"`
	EstadoPago  string                            `gorm:"column:estado_pago;size:20;default:pendiente" json:"estadoPago" binding:"omitempty,oneof=pendiente parcial pagado"`
	MontoPagado float64                           `gorm:"column:monto_pagado;default:0" json:"montoPagado" binding:"min=0,ltefield=Monto"`
	Comprobante string                            `gorm:"size:500" json:"comprobante"`
}

// Validate fills the defaults and checks the binding rules.
func (e *Expense) Validate() error {
	e.Descripcion = strings.TrimSpace(e.Descripcion)
	if e.Categoria == "" {
		e.Categoria = "otros"
	}
	if e.EstadoPago == "" {
		e.EstadoPago = "pendiente"
	}
	if e.Fecha.IsZero() {
		e.Fecha = time.Now()
	}
	return validateStruct(e)
}

func (e *Expense) BeforeSave(tx *gorm.DB) error {
	return e.Validate()
}

// Pending is what is still owed on the expense.
func (e Expense) Pending() float64 {
	return e.Monto - e.MontoPagado
}
