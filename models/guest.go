package models

import (
	"strings"
	"time"

	"github.com/samber/lo"
	"gorm.io/datatypes"

	"boda-backend/seating"
)

type Companion struct {
	Nombre string `json:"nombre"`
	EsNino bool   `json:"esNino"`
}

// Guest is one invitation: the named guest plus companions and extra tickets.
type Guest struct {
	ID uint `gorm:"primaryKey;autoIncrement" json:"_id"`

	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`

	Nombre              string `gorm:"size:150;not null" json:"nombre" binding:"required,max=150"`
	BoletosExtraAdultos int    `gorm:"column:boletos_extra_adultos;default:0" json:"boletosExtraAdultos" binding:"min=0"`
	BoletosExtraNinos   int    `gorm:"column:boletos_extra_ninos;default:0" json:"boletosExtraNinos" binding:"min=0"`

	Acompanantes  datatypes.JSONSlice[Companion] `gorm:"column:acompanantes" json:"acompanantes"`
	RelacionarCon datatypes.JSONSlice[uint]      `gorm:"column:relacionar_con" json:"relacionarCon"`

	// 🔹 computed from the current layout, not stored
	AsignadoEnMesa bool `gorm:"-" json:"asignadoEnMesa"`
}

// Validate checks the binding rules and drops a relation to the guest itself.
func (g *Guest) Validate() error {
	g.Nombre = strings.TrimSpace(g.Nombre)
	if err := validateStruct(g); err != nil {
		return err
	}
	if g.ID != 0 {
		g.RelacionarCon = lo.Without(g.RelacionarCon, g.ID)
	}
	return nil
}

// ToParty converts the stored guest into the value the seating engine works with.
func (g Guest) ToParty() seating.Party {
	p := seating.Party{
		ID:                g.ID,
		PrimaryName:       g.Nombre,
		ExtraAdultTickets: g.BoletosExtraAdultos,
		ExtraChildTickets: g.BoletosExtraNinos,
	}
	for _, c := range g.Acompanantes {
		p.Companions = append(p.Companions, seating.Companion{Name: c.Nombre, IsChild: c.EsNino})
	}
	if len(g.RelacionarCon) > 0 {
		p.RelatedTo = append([]uint(nil), g.RelacionarCon...)
	}
	return p
}

func GuestsToParties(guests []Guest) []seating.Party {
	out := make([]seating.Party, 0, len(guests))
	for _, g := range guests {
		out = append(out, g.ToParty())
	}
	return out
}
