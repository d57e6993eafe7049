package routes

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"boda-backend/controllers"
	"boda-backend/models"
)

func testRouter() *gin.Engine {
	gin.SetMode(gin.TestMode)
	return SetupRouter(Controllers{
		Guests:      controllers.NewGuestController(nil, nil),
		Layout:      controllers.NewLayoutController(nil, nil, 0),
		Tasks:       controllers.NewTaskController(nil),
		Expenses:    controllers.NewResourceController[models.Expense, *models.Expense](nil, "expense"),
		Vendors:     controllers.NewResourceController[models.Vendor, *models.Vendor](nil, "vendor"),
		Documents:   controllers.NewResourceController[models.Document, *models.Document](nil, "document"),
		Inspiration: controllers.NewResourceController[models.Inspiration, *models.Inspiration](nil, "inspiration"),
		Songs:       controllers.NewResourceController[models.Song, *models.Song](nil, "song"),
	})
}

func TestParseCorsOrigins(t *testing.T) {
	t.Setenv("CORS_ORIGINS", "")
	assert.Equal(t, []string{"*"}, parseCorsOrigins())

	t.Setenv("CORS_ORIGINS", " https://boda.example.com, ,http://localhost:5173 ")
	assert.Equal(t, []string{"https://boda.example.com", "http://localhost:5173"}, parseCorsOrigins())

	t.Setenv("CORS_ORIGINS", " , ")
	assert.Equal(t, []string{"*"}, parseCorsOrigins())
}

func TestHealth(t *testing.T) {
	w := httptest.NewRecorder()
	testRouter().ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/health", nil))
	require.Equal(t, http.StatusOK, w.Code)
	assert.JSONEq(t, `{"status":"ok"}`, w.Body.String())
}

func TestCorsPreflight(t *testing.T) {
	t.Setenv("CORS_ORIGINS", "https://boda.example.com")
	r := testRouter()

	req := httptest.NewRequest(http.MethodOptions, "/api/layout", nil)
	req.Header.Set("Origin", "https://boda.example.com")
	req.Header.Set("Access-Control-Request-Method", http.MethodPut)
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	assert.Equal(t, http.StatusNoContent, w.Code)
	assert.Equal(t, "https://boda.example.com", w.Header().Get("Access-Control-Allow-Origin"))
	assert.Equal(t, "true", w.Header().Get("Access-Control-Allow-Credentials"))
}

func TestRoutesRegistered(t *testing.T) {
	registered := map[string]bool{}
	for _, ri := range testRouter().Routes() {
		registered[ri.Method+" "+ri.Path] = true
	}

	for _, want := range []string{
		"GET /api/layout",
		"POST /api/layout",
		"PUT /api/layout/:id",
		"GET /api/layout/stats",
		"GET /api/layout/tables/:tableId/candidates",
		"GET /api/invitados",
		"GET /api/invitados/resumen",
		"DELETE /api/invitados/:id",
		"GET /api/tareas",
		"POST /api/tareas/:id/subtareas",
		"PUT /api/tareas/:id/subtareas/:subId",
		"PUT /api/gastos/:id",
		"POST /api/proveedores",
		"GET /api/documentos/:id",
		"GET /api/inspiracion",
		"DELETE /api/musica/:id",
	} {
		assert.True(t, registered[want], want)
	}
}

func TestBadIDIsRejectedBeforeStore(t *testing.T) {
	w := httptest.NewRecorder()
	testRouter().ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/api/musica/cero", nil))
	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.JSONEq(t, `{"status":"error","message":"invalid id"}`, w.Body.String())
}
