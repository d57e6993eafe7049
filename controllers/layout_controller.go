package controllers

import (
	"context"
	"log"
	"net/http"

	"github.com/gin-gonic/gin"

	"boda-backend/layoutsync"
	"boda-backend/seating"
	"boda-backend/utils"
)

// LayoutStore is the layout persistence the controller needs: the synchronizer's
// store plus Current, which creates the first layout on demand.
type LayoutStore interface {
	layoutsync.Store
	Current(ctx context.Context) (*seating.Layout, error)
}

type LayoutController struct {
	Layouts LayoutStore
	Guests  layoutsync.GuestDirectory
	Slots   int
}

func NewLayoutController(layouts LayoutStore, guests layoutsync.GuestDirectory, slots int) *LayoutController {
	if slots <= 0 {
		slots = seating.DefaultSlots
	}
	return &LayoutController{Layouts: layouts, Guests: guests, Slots: slots}
}

type layoutPayload struct {
	Espacios []seating.Slot `json:"espacios"`
}

// GET /api/layout
func (lc *LayoutController) GetLayout(c *gin.Context) {
	l, err := lc.Layouts.Current(c.Request.Context())
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, l)
}

// POST /api/layout
// A payload with the wrong number of slots stores an empty layout instead.
func (lc *LayoutController) CreateLayout(c *gin.Context) {
	var body layoutPayload
	if err := c.ShouldBindJSON(&body); err != nil {
		utils.JSONError(c, http.StatusBadRequest, err.Error())
		return
	}

	espacios := seating.Grid(body.Espacios)
	if len(espacios) != lc.Slots {
		log.Printf("⚠️ POST layout with %d slots, storing an empty one", len(espacios))
		espacios = seating.EmptyGrid(lc.Slots)
	}

	l, err := lc.Layouts.Create(c.Request.Context(), espacios)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, l)
}

// PUT /api/layout/:id
func (lc *LayoutController) ReplaceLayout(c *gin.Context) {
	id, ok := utils.ParseID(c, "id")
	if !ok {
		return
	}
	var body layoutPayload
	if err := c.ShouldBindJSON(&body); err != nil {
		utils.JSONError(c, http.StatusBadRequest, err.Error())
		return
	}

	l, err := lc.Layouts.Replace(c.Request.Context(), id, seating.Grid(body.Espacios))
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, l)
}

func (lc *LayoutController) current(c *gin.Context) (*seating.Layout, []seating.Party, bool) {
	ctx := c.Request.Context()
	l, err := lc.Layouts.Current(ctx)
	if err != nil {
		respondError(c, err)
		return nil, nil, false
	}
	seating.NormalizeLayout(l, lc.Slots)

	parties, err := lc.Guests.Parties(ctx)
	if err != nil {
		respondError(c, err)
		return nil, nil, false
	}
	return l, parties, true
}

// GET /api/layout/stats
func (lc *LayoutController) GetStats(c *gin.Context) {
	l, parties, ok := lc.current(c)
	if !ok {
		return
	}
	assigned := l.Espacios.AssignedIDs()
	unseated := 0
	for _, p := range parties {
		if _, seated := assigned[p.ID]; !seated {
			unseated++
		}
	}
	c.JSON(http.StatusOK, gin.H{
		"layoutId":        l.ID,
		"layout":          seating.Summarize(l.Espacios, seating.KnownIDs(parties)),
		"guests":          seating.SummarizeParties(parties),
		"unseatedParties": unseated,
	})
}

// GET /api/layout/tables/:tableId/candidates
func (lc *LayoutController) GetCandidates(c *gin.Context) {
	l, parties, ok := lc.current(c)
	if !ok {
		return
	}
	tableID := c.Param("tableId")
	table, _ := l.Espacios.FindTable(tableID)
	if table == nil {
		utils.JSONError(c, http.StatusNotFound, "table not found: "+tableID)
		return
	}
	c.JSON(http.StatusOK, gin.H{
		"table":      table,
		"available":  seating.AvailableCapacity(table),
		"candidates": seating.CandidateParties(table, parties, l.Espacios.AssignedIDs(), seating.BuildIndex(parties)),
	})
}
