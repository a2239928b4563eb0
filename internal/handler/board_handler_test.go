package handler_test

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"taskboard/internal/access"
	"taskboard/internal/handler"
	"taskboard/internal/repository"
	"taskboard/internal/service"
	"taskboard/internal/storage"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
)

func setupBoardRouter(t *testing.T) (*gin.Engine, sqlmock.Sqlmock) {
	gin.SetMode(gin.TestMode)
	db, mock, err := sqlmock.New()
	assert.NoError(t, err)

	dialector := postgres.New(postgres.Config{
		DSN:                  "sqlmock_db_0",
		DriverName:           "postgres",
		Conn:                 db,
		PreferSimpleProtocol: true,
	})
	gormDB, err := gorm.Open(dialector, &gorm.Config{})
	assert.NoError(t, err)

	store, err := storage.NewLocalStore(t.TempDir())
	assert.NoError(t, err)

	users := repository.NewUserRepository(gormDB)
	boards := repository.NewBoardRepository(gormDB)
	collabs := repository.NewCollaborationRepository(gormDB)
	attachments := repository.NewAttachmentRepository(gormDB)
	engine := access.NewEngine(collabs, users)
	svc := service.NewBoardService(boards, collabs, users, attachments, engine, store)

	r := gin.Default()
	// No auth middleware mounted: every request stays anonymous.
	r.POST("/boards", handler.NewBoardHandler(svc).Create)
	return r, mock
}

func TestBoardHandler_Create_AnonymousBlankNameDenied(t *testing.T) {
	router, mock := setupBoardRouter(t)

	// A blank name alone would be a 400, but the missing credential wins.
	resp := postJSON(router, "/boards", map[string]string{"name": ""})

	assert.Equal(t, http.StatusForbidden, resp.Code)

	var response map[string]string
	assert.NoError(t, json.Unmarshal(resp.Body.Bytes(), &response))
	assert.Equal(t, "Authentication required", response["error"])
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestBoardHandler_Create_AnonymousMalformedBodyDenied(t *testing.T) {
	router, mock := setupBoardRouter(t)

	req, _ := http.NewRequest("POST", "/boards", strings.NewReader("{"))
	req.Header.Set("Content-Type", "application/json")
	resp := httptest.NewRecorder()
	router.ServeHTTP(resp, req)

	assert.Equal(t, http.StatusForbidden, resp.Code)
	assert.NoError(t, mock.ExpectationsWereMet())
}
