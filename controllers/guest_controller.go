package controllers

import (
	"context"
	"log"
	"net/http"

	"github.com/gin-gonic/gin"

	"boda-backend/models"
	"boda-backend/seating"
	"boda-backend/utils"
)

type GuestStore interface {
	GetAll(ctx context.Context) ([]models.Guest, error)
	GetByID(ctx context.Context, id uint) (*models.Guest, error)
	Create(ctx context.Context, guest *models.Guest) error
	Update(ctx context.Context, guest *models.Guest) error
	Delete(ctx context.Context, id uint) error
}

// LatestLayout is used to flag guests that already have a seat.
type LatestLayout interface {
	Latest(ctx context.Context) (*seating.Layout, error)
}

type GuestController struct {
	GuestSvc GuestStore
	Layouts  LatestLayout
}

func NewGuestController(svc GuestStore, layouts LatestLayout) *GuestController {
	return &GuestController{GuestSvc: svc, Layouts: layouts}
}

func (gc *GuestController) seated(ctx context.Context) map[uint]struct{} {
	if gc.Layouts == nil {
		return nil
	}
	l, err := gc.Layouts.Latest(ctx)
	if err != nil {
		return nil
	}
	return l.Espacios.AssignedIDs()
}

// GET /api/invitados
func (gc *GuestController) GetGuests(c *gin.Context) {
	guests, err := gc.GuestSvc.GetAll(c.Request.Context())
	if err != nil {
		respondError(c, err)
		return
	}
	seated := gc.seated(c.Request.Context())
	for i := range guests {
		_, guests[i].AsignadoEnMesa = seated[guests[i].ID]
	}
	c.JSON(http.StatusOK, guests)
}

// GET /api/invitados/resumen
func (gc *GuestController) GetSummary(c *gin.Context) {
	guests, err := gc.GuestSvc.GetAll(c.Request.Context())
	if err != nil {
		respondError(c, err)
		return
	}
	parties := models.GuestsToParties(guests)
	seated := gc.seated(c.Request.Context())
	seatedPeople := 0
	for _, p := range parties {
		if _, ok := seated[p.ID]; ok {
			seatedPeople += p.Size()
		}
	}
	totals := seating.SummarizeParties(parties)
	c.JSON(http.StatusOK, gin.H{
		"invitaciones": totals.Parties,
		"adultos":      totals.Adults,
		"ninos":        totals.Children,
		"total":        totals.Total,
		"sentados":     seatedPeople,
	})
}

func (gc *GuestController) GetGuestByID(c *gin.Context) {
	id, ok := utils.ParseID(c, "id")
	if !ok {
		return
	}
	guest, err := gc.GuestSvc.GetByID(c.Request.Context(), id)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, guest)
}

// POST /api/invitados
func (gc *GuestController) CreateGuest(c *gin.Context) {
	var payload models.Guest
	if err := c.ShouldBindJSON(&payload); err != nil {
		utils.JSONError(c, http.StatusBadRequest, err.Error())
		return
	}
	payload.ID = 0
	log.Printf("➡️ CreateGuest nombre=%q acompanantes=%d", payload.Nombre, len(payload.Acompanantes))

	if err := gc.GuestSvc.Create(c.Request.Context(), &payload); err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, payload)
}

// PUT /api/invitados/:id
// Fields missing from the body keep their stored value.
func (gc *GuestController) UpdateGuest(c *gin.Context) {
	id, ok := utils.ParseID(c, "id")
	if !ok {
		return
	}
	guest, err := gc.GuestSvc.GetByID(c.Request.Context(), id)
	if err != nil {
		respondError(c, err)
		return
	}
	if err := c.ShouldBindJSON(guest); err != nil {
		utils.JSONError(c, http.StatusBadRequest, err.Error())
		return
	}
	guest.ID = id

	if err := gc.GuestSvc.Update(c.Request.Context(), guest); err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, guest)
}

func (gc *GuestController) DeleteGuest(c *gin.Context) {
	id, ok := utils.ParseID(c, "id")
	if !ok {
		return
	}
	if err := gc.GuestSvc.Delete(c.Request.Context(), id); err != nil {
		respondError(c, err)
		return
	}
	utils.JSONMessage(c, http.StatusOK, "Invitado eliminado correctamente")
}
