package models

import (
	"strings"
	"time"
)

type Document struct {
	Base

	Titulo     string     `gorm:"size:200;not null" json:"titulo" binding:"required,max=200"`
	Tipo       string     `gorm:"size:50" json:"tipo"`
	ArchivoURL string     `gorm:"column:archivo_url;size:500" json:"archivoUrl"`
	Fecha      *time.Time `json:"fecha,omitempty"`

	// 🔹 upload only: a data URI or raw base64 file, stored under uploads/documentos
	ArchivoBase64 string `gorm:"-" json:"archivoBase64,omitempty"`
}

func (d *Document) Validate() error {
	d.Titulo = strings.TrimSpace(d.Titulo)
	return validateStruct(d)
}

func (d *Document) Attachment() (string, string) { return d.ArchivoBase64, "documentos" }

func (d *Document) SetAttachmentURL(url string) {
	d.ArchivoURL = url
	d.ArchivoBase64 = ""
}

type Inspiration struct {
	Base

	Titulo      string `gorm:"size:200" json:"titulo"`
	ImagenURL   string `gorm:"column:imagen_url;size:500" json:"imagenUrl"`
	Descripcion string `gorm:"type:text" json:"descripcion"`

	ImagenBase64 string `gorm:"-" json:"imagenBase64,omitempty"`
}

func (i *Inspiration) Attachment() (string, string) { return i.ImagenBase64, "inspiracion" }

func (i *Inspiration) SetAttachmentURL(url string) {
	i.ImagenURL = url
	i.ImagenBase64 = ""
}

// Song is a track picked for one moment of the day (ceremonia, recepcion, fiesta).
type Song struct {
	Base

	Titulo  string `gorm:"size:200" json:"titulo"`
	Artista string `gorm:"size:200" json:"artista"`
	Momento string `gorm:"size:50" json:"momento"`
	Enlace  string `gorm:"size:500" json:"enlace"`
}
