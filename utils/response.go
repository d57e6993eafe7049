package utils

import (
	"net/http"
	"strconv"
	"strings"

	"github.com/gin-gonic/gin"
)

func JSONSuccess(c *gin.Context, code int, data interface{}) {
	c.JSON(code, gin.H{"status": "success", "data": data})
}

func JSONMessage(c *gin.Context, code int, message string) {
	c.JSON(code, gin.H{"status": "success", "message": message})
}

func JSONError(c *gin.Context, code int, message string) {
	c.JSON(code, gin.H{"status": "error", "message": message})
}

// ParseID reads a positive numeric path parameter. On failure it writes a 400 and
// returns false.
func ParseID(c *gin.Context, param string) (uint, bool) {
	raw := strings.TrimSpace(c.Param(param))
	id, err := strconv.ParseUint(raw, 10, 32)
	if err != nil || id == 0 {
		JSONError(c, http.StatusBadRequest, "invalid "+param)
		return 0, false
	}
	return uint(id), true
}
