package controllers

import (
	"context"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/gin-gonic/gin"

	"boda-backend/models"
	"boda-backend/services"
	"boda-backend/utils"
)

type TaskStore interface {
	ResourceStore[models.Task, *models.Task]
	ListFiltered(ctx context.Context, f services.TaskFilter) ([]models.Task, error)
	AddSubtask(ctx context.Context, id uint, descripcion string) (*models.Task, error)
	SetSubtask(ctx context.Context, id uint, subID string, done bool) (*models.Task, error)
}

type TaskController struct {
	*ResourceController[models.Task, *models.Task]
	Tasks TaskStore
}

func NewTaskController(svc TaskStore) *TaskController {
	return &TaskController{
		ResourceController: NewResourceController[models.Task, *models.Task](svc, "task"),
		Tasks:              svc,
	}
}

func parseDate(raw string) (*time.Time, error) {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return nil, nil
	}
	for _, layout := range []string{time.RFC3339, "2006-01-02"} {
		if t, err := time.Parse(layout, raw); err == nil {
			return &t, nil
		}
	}
	return nil, &time.ParseError{Layout: "2006-01-02", Value: raw}
}

// GET /api/tareas?completadas=true&fechaDesde=2025-01-01&fechaHasta=2025-06-30
func (tc *TaskController) List(c *gin.Context) {
	var f services.TaskFilter
	if raw := c.Query("completadas"); raw != "" {
		done, err := strconv.ParseBool(raw)
		if err != nil {
			utils.JSONError(c, http.StatusBadRequest, "invalid completadas")
			return
		}
		f.Completed = &done
	}
	var err error
	if f.From, err = parseDate(c.Query("fechaDesde")); err != nil {
		utils.JSONError(c, http.StatusBadRequest, "invalid fechaDesde")
		return
	}
	if f.To, err = parseDate(c.Query("fechaHasta")); err != nil {
		utils.JSONError(c, http.StatusBadRequest, "invalid fechaHasta")
		return
	}

	tasks, err := tc.Tasks.ListFiltered(c.Request.Context(), f)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, tasks)
}

// POST /api/tareas/:id/subtareas
func (tc *TaskController) AddSubtask(c *gin.Context) {
	id, ok := utils.ParseID(c, "id")
	if !ok {
		return
	}
	var body struct {
		Descripcion string `json:"descripcion" binding:"required"`
	}
	if err := c.ShouldBindJSON(&body); err != nil {
		utils.JSONError(c, http.StatusBadRequest, err.Error())
		return
	}
	task, err := tc.Tasks.AddSubtask(c.Request.Context(), id, body.Descripcion)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, task)
}

// PUT /api/tareas/:id/subtareas/:subId
func (tc *TaskController) UpdateSubtask(c *gin.Context) {
	id, ok := utils.ParseID(c, "id")
	if !ok {
		return
	}
	var body struct {
		Completada bool `json:"completada"`
	}
	if err := c.ShouldBindJSON(&body); err != nil {
		utils.JSONError(c, http.StatusBadRequest, err.Error())
		return
	}
	task, err := tc.Tasks.SetSubtask(c.Request.Context(), id, c.Param("subId"), body.Completada)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, task)
}

func (tc *TaskController) Register(g *gin.RouterGroup) {
	g.GET("", tc.List)
	g.GET("/:id", tc.Get)
	g.POST("", tc.Create)
	g.PUT("/:id", tc.Update)
	g.DELETE("/:id", tc.Delete)
	g.POST("/:id/subtareas", tc.AddSubtask)
	g.PUT("/:id/subtareas/:subId", tc.UpdateSubtask)
}
