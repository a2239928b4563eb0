package service_test

import (
	"testing"

	"taskboard/internal/access"
	"taskboard/internal/model"
	"taskboard/internal/repository"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
)

// fixture wires the repositories and the access engine on top of a mocked
// database, the same way the server does it against a real one.
type fixture struct {
	mock        sqlmock.Sqlmock
	users       *repository.UserRepository
	boards      *repository.BoardRepository
	statuses    *repository.StatusRepository
	tasks       *repository.TaskRepository
	collabs     *repository.CollaborationRepository
	attachments *repository.AttachmentRepository
	engine      *access.Engine
}

func newFixture(t *testing.T) *fixture {
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

	users := repository.NewUserRepository(gormDB)
	boards := repository.NewBoardRepository(gormDB)
	statuses := repository.NewStatusRepository(gormDB)
	tasks := repository.NewTaskRepository(gormDB)
	collabs := repository.NewCollaborationRepository(gormDB)
	attachments := repository.NewAttachmentRepository(gormDB)

	return &fixture{
		mock:        mock,
		users:       users,
		boards:      boards,
		statuses:    statuses,
		tasks:       tasks,
		collabs:     collabs,
		attachments: attachments,
		engine:      access.NewEngine(collabs, users),
	}
}

func testBoard(ownerID uuid.UUID, visibility string) *model.Board {
	return &model.Board{
		ID:         "aB3dE5fG7h",
		Name:       "Sprint 1",
		OwnerID:    ownerID,
		Visibility: visibility,
	}
}

// expectBoardLookup mocks the board fetch every board-scoped operation starts
// with, including the owner preload.
func (f *fixture) expectBoardLookup(board *model.Board) {
	f.mock.ExpectQuery(`SELECT \* FROM "boards" WHERE id = \$1`).
		WithArgs(board.ID, 1).
		WillReturnRows(sqlmock.NewRows([]string{"id", "name", "owner_id", "visibility"}).
			AddRow(board.ID, board.Name, board.OwnerID.String(), board.Visibility))
	f.mock.ExpectQuery(`SELECT \* FROM "users" WHERE "users"\."id" = \$1`).
		WithArgs(board.OwnerID.String()).
		WillReturnRows(sqlmock.NewRows([]string{"id", "email", "username", "name"}))
}

func (f *fixture) expectBoardMissing(boardID string) {
	f.mock.ExpectQuery(`SELECT \* FROM "boards" WHERE id = \$1`).
		WithArgs(boardID, 1).
		WillReturnError(gorm.ErrRecordNotFound)
}

// expectRequesterLookup mocks the engine's user existence check for
// non-owner requesters.
func (f *fixture) expectRequesterLookup(userID uuid.UUID) {
	f.mock.ExpectQuery(`SELECT \* FROM "users" WHERE id = \$1`).
		WithArgs(userID.String(), 1).
		WillReturnRows(sqlmock.NewRows([]string{"id", "email", "username", "name"}).
			AddRow(userID.String(), "collab@example.com", "collab", "Collaborator"))
}

func (f *fixture) expectCollabLookup(boardID string, userID uuid.UUID, accessRight string) {
	f.mock.ExpectQuery(`SELECT \* FROM "collaborations" WHERE board_id = \$1 AND user_id = \$2`).
		WithArgs(boardID, userID.String(), 1).
		WillReturnRows(sqlmock.NewRows([]string{"board_id", "user_id", "name", "email", "access_right", "invitation"}).
			AddRow(boardID, userID.String(), "Collaborator", "collab@example.com", accessRight, model.InvitationAccepted))
}

func (f *fixture) expectCollabMissing(boardID string, userID uuid.UUID) {
	f.mock.ExpectQuery(`SELECT \* FROM "collaborations" WHERE board_id = \$1 AND user_id = \$2`).
		WithArgs(boardID, userID.String(), 1).
		WillReturnError(gorm.ErrRecordNotFound)
}

// expectTaskLookup mocks a single-task fetch including the status preload.
func (f *fixture) expectTaskLookup(boardID string, taskID, statusID int) {
	f.mock.ExpectQuery(`SELECT \* FROM "tasks" WHERE id = \$1 AND board_id = \$2`).
		WithArgs(taskID, boardID, 1).
		WillReturnRows(sqlmock.NewRows([]string{"id", "board_id", "status_id", "title", "description", "assignees"}).
			AddRow(taskID, boardID, statusID, "Fix login", "", ""))
	f.mock.ExpectQuery(`SELECT \* FROM "statuses" WHERE "statuses"\."id" = \$1`).
		WithArgs(statusID).
		WillReturnRows(sqlmock.NewRows([]string{"id", "board_id", "name", "description"}))
}

func (f *fixture) expectTaskMissing(boardID string, taskID int) {
	f.mock.ExpectQuery(`SELECT \* FROM "tasks" WHERE id = \$1 AND board_id = \$2`).
		WithArgs(taskID, boardID, 1).
		WillReturnError(gorm.ErrRecordNotFound)
}

func (f *fixture) expectStatusLookup(boardID string, statusID int, name string) {
	f.mock.ExpectQuery(`SELECT \* FROM "statuses" WHERE id = \$1 AND board_id = \$2`).
		WithArgs(statusID, boardID, 1).
		WillReturnRows(sqlmock.NewRows([]string{"id", "board_id", "name", "description"}).
			AddRow(statusID, boardID, name, ""))
}
