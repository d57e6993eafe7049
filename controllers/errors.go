package controllers

import (
	"errors"
	"log"
	"net/http"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"boda-backend/layoutsync"
	"boda-backend/models"
	"boda-backend/seating"
	"boda-backend/utils"
)

func statusFor(err error) int {
	switch {
	case errors.Is(err, gorm.ErrRecordNotFound),
		errors.Is(err, layoutsync.ErrNoLayout),
		errors.Is(err, seating.ErrTableNotFound),
		errors.Is(err, seating.ErrSlotNotFound),
		errors.Is(err, seating.ErrPartyNotFound):
		return http.StatusNotFound
	case errors.Is(err, models.ErrValidation),
		errors.Is(err, seating.ErrInvalidLayout),
		errors.Is(err, seating.ErrInvalidShape):
		return http.StatusBadRequest
	case errors.Is(err, seating.ErrCapacityExceeded),
		errors.Is(err, seating.ErrAlreadySeated):
		return http.StatusUnprocessableEntity
	default:
		return http.StatusInternalServerError
	}
}

func respondError(c *gin.Context, err error) {
	code := statusFor(err)
	if code == http.StatusInternalServerError {
		log.Printf("❌ %s %s: %v", c.Request.Method, c.Request.URL.Path, err)
	}
	utils.JSONError(c, code, err.Error())
}
