package repository_test

import (
	"context"
	"testing"

	"taskboard/internal/model"
	"taskboard/internal/repository"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"gorm.io/gorm"
)

func TestBoardRepository_CreateWithStatuses(t *testing.T) {
	// Arrange
	gormDB, mock := setupMockDB(t)
	boardRepo := repository.NewBoardRepository(gormDB)

	ownerID := uuid.New()
	board := &model.Board{
		ID:         "aB3dE5fG7h",
		Name:       "Sprint 1",
		OwnerID:    ownerID,
		Visibility: model.VisibilityPrivate,
	}

	mock.ExpectBegin()
	mock.ExpectExec(`INSERT INTO "boards"`).
		WithArgs(board.ID, board.Name, ownerID.String(), board.Visibility, sqlmock.AnyArg(), sqlmock.AnyArg()).
		WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectQuery(`INSERT INTO "statuses"`).
		WillReturnRows(sqlmock.NewRows([]string{"id"}).AddRow(1).AddRow(2).AddRow(3).AddRow(4))
	mock.ExpectCommit()

	// Act
	err := boardRepo.CreateWithStatuses(context.Background(), board)

	// Assert
	assert.NoError(t, err)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestBoardRepository_CreateWithStatuses_RollsBackOnStatusFailure(t *testing.T) {
	// Arrange
	gormDB, mock := setupMockDB(t)
	boardRepo := repository.NewBoardRepository(gormDB)

	board := &model.Board{
		ID:         "aB3dE5fG7h",
		Name:       "Sprint 1",
		OwnerID:    uuid.New(),
		Visibility: model.VisibilityPrivate,
	}

	mock.ExpectBegin()
	mock.ExpectExec(`INSERT INTO "boards"`).
		WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectQuery(`INSERT INTO "statuses"`).
		WillReturnError(assert.AnError)
	mock.ExpectRollback()

	// Act
	err := boardRepo.CreateWithStatuses(context.Background(), board)

	// Assert
	assert.Error(t, err)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestBoardRepository_GetByID_Found(t *testing.T) {
	// Arrange
	gormDB, mock := setupMockDB(t)
	boardRepo := repository.NewBoardRepository(gormDB)

	ownerID := uuid.New()
	boardID := "aB3dE5fG7h"

	mock.ExpectQuery(`SELECT \* FROM "boards" WHERE id = \$1`).
		WithArgs(boardID, 1).
		WillReturnRows(sqlmock.NewRows([]string{"id", "name", "owner_id", "visibility"}).
			AddRow(boardID, "Sprint 1", ownerID.String(), model.VisibilityPublic))
	// Owner preload
	mock.ExpectQuery(`SELECT \* FROM "users" WHERE "users"\."id" = \$1`).
		WithArgs(ownerID.String()).
		WillReturnRows(sqlmock.NewRows([]string{"id", "email", "username", "name"}).
			AddRow(ownerID.String(), "owner@example.com", "owner", "Board Owner"))

	// Act
	board, err := boardRepo.GetByID(context.Background(), boardID)

	// Assert
	assert.NoError(t, err)
	assert.NotNil(t, board)
	assert.Equal(t, boardID, board.ID)
	assert.Equal(t, ownerID, board.OwnerID)
	assert.Equal(t, "owner", board.Owner.Username)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestBoardRepository_GetByID_NotFound(t *testing.T) {
	// Arrange
	gormDB, mock := setupMockDB(t)
	boardRepo := repository.NewBoardRepository(gormDB)

	mock.ExpectQuery(`SELECT \* FROM "boards" WHERE id = \$1`).
		WithArgs("missing0000", 1).
		WillReturnError(gorm.ErrRecordNotFound)

	// Act
	board, err := boardRepo.GetByID(context.Background(), "missing0000")

	// Assert
	assert.NoError(t, err)
	assert.Nil(t, board)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestBoardRepository_GetOwned(t *testing.T) {
	// Arrange
	gormDB, mock := setupMockDB(t)
	boardRepo := repository.NewBoardRepository(gormDB)

	ownerID := uuid.New()

	mock.ExpectQuery(`SELECT \* FROM "boards" WHERE owner_id = \$1`).
		WithArgs(ownerID.String()).
		WillReturnRows(sqlmock.NewRows([]string{"id", "name", "owner_id", "visibility"}).
			AddRow("aB3dE5fG7h", "Sprint 1", ownerID.String(), model.VisibilityPrivate).
			AddRow("zY9xW7vU5t", "Sprint 2", ownerID.String(), model.VisibilityPublic))
	mock.ExpectQuery(`SELECT \* FROM "users" WHERE "users"\."id" = \$1`).
		WithArgs(ownerID.String()).
		WillReturnRows(sqlmock.NewRows([]string{"id", "email", "username", "name"}).
			AddRow(ownerID.String(), "owner@example.com", "owner", "Board Owner"))

	// Act
	boards, err := boardRepo.GetOwned(context.Background(), ownerID)

	// Assert
	assert.NoError(t, err)
	assert.Len(t, boards, 2)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestBoardRepository_DeleteCascade(t *testing.T) {
	// Arrange
	gormDB, mock := setupMockDB(t)
	boardRepo := repository.NewBoardRepository(gormDB)

	boardID := "aB3dE5fG7h"

	// Dependents go first, the board row goes last.
	mock.ExpectBegin()
	mock.ExpectExec(`DELETE FROM "attachments" WHERE task_id IN`).
		WithArgs(boardID).
		WillReturnResult(sqlmock.NewResult(0, 3))
	mock.ExpectExec(`DELETE FROM "tasks" WHERE board_id = \$1`).
		WithArgs(boardID).
		WillReturnResult(sqlmock.NewResult(0, 2))
	mock.ExpectExec(`DELETE FROM "collaborations" WHERE board_id = \$1`).
		WithArgs(boardID).
		WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectExec(`DELETE FROM "statuses" WHERE board_id = \$1`).
		WithArgs(boardID).
		WillReturnResult(sqlmock.NewResult(0, 4))
	mock.ExpectExec(`DELETE FROM "boards" WHERE id = \$1`).
		WithArgs(boardID).
		WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectCommit()

	// Act
	err := boardRepo.DeleteCascade(context.Background(), boardID)

	// Assert
	assert.NoError(t, err)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestBoardRepository_DeleteCascade_AbortsOnFailure(t *testing.T) {
	// Arrange
	gormDB, mock := setupMockDB(t)
	boardRepo := repository.NewBoardRepository(gormDB)

	boardID := "aB3dE5fG7h"

	mock.ExpectBegin()
	mock.ExpectExec(`DELETE FROM "attachments" WHERE task_id IN`).
		WithArgs(boardID).
		WillReturnResult(sqlmock.NewResult(0, 0))
	mock.ExpectExec(`DELETE FROM "tasks" WHERE board_id = \$1`).
		WithArgs(boardID).
		WillReturnError(assert.AnError)
	mock.ExpectRollback()

	// Act
	err := boardRepo.DeleteCascade(context.Background(), boardID)

	// Assert
	assert.Error(t, err)
	assert.NoError(t, mock.ExpectationsWereMet())
}
