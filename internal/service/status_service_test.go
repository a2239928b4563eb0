package service_test

import (
	"context"
	"strings"
	"testing"

	"taskboard/internal/model"
	"taskboard/internal/service"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"gorm.io/gorm"
)

func newStatusService(f *fixture) *service.StatusService {
	return service.NewStatusService(f.statuses, f.tasks, f.boards, f.engine)
}

func TestStatusService_List_ReadCollaboratorAllowed(t *testing.T) {
	f := newFixture(t)
	svc := newStatusService(f)
	board := testBoard(uuid.New(), model.VisibilityPrivate)
	requester := uuid.New()

	f.expectBoardLookup(board)
	f.expectRequesterLookup(requester)
	f.expectCollabLookup(board.ID, requester, model.AccessRead)
	f.mock.ExpectQuery(`SELECT \* FROM "statuses" WHERE board_id = \$1 ORDER BY id`).
		WithArgs(board.ID).
		WillReturnRows(sqlmock.NewRows([]string{"id", "board_id", "name", "description"}).
			AddRow(1, board.ID, model.StatusNoStatus, "The default status").
			AddRow(4, board.ID, model.StatusDone, "Finished"))

	statuses, err := svc.List(context.Background(), board.ID, &requester)

	assert.NoError(t, err)
	assert.Len(t, statuses, 2)
	assert.NoError(t, f.mock.ExpectationsWereMet())
}

func TestStatusService_Create_ReadCollaboratorForbidden(t *testing.T) {
	f := newFixture(t)
	svc := newStatusService(f)
	board := testBoard(uuid.New(), model.VisibilityPrivate)
	requester := uuid.New()

	f.expectBoardLookup(board)
	f.expectRequesterLookup(requester)
	f.expectCollabLookup(board.ID, requester, model.AccessRead)

	_, err := svc.Create(context.Background(), board.ID, &requester, "Review", "")

	assert.Equal(t, service.CodeForbidden, service.CodeOf(err))
	assert.EqualError(t, err, "Read-only collaborators cannot modify this board")
}

func TestStatusService_Create_BlankName(t *testing.T) {
	f := newFixture(t)
	svc := newStatusService(f)
	owner := uuid.New()
	board := testBoard(owner, model.VisibilityPrivate)

	f.expectBoardLookup(board)

	_, err := svc.Create(context.Background(), board.ID, &owner, "  ", "")

	assert.Equal(t, service.CodeInvalidArgument, service.CodeOf(err))
	assert.EqualError(t, err, "Name must not be null or empty")
}

func TestStatusService_Create_OverlongName(t *testing.T) {
	f := newFixture(t)
	svc := newStatusService(f)
	owner := uuid.New()
	board := testBoard(owner, model.VisibilityPrivate)

	f.expectBoardLookup(board)

	_, err := svc.Create(context.Background(), board.ID, &owner, strings.Repeat("x", 51), "")

	assert.Equal(t, service.CodeInvalidArgument, service.CodeOf(err))
	assert.EqualError(t, err, "Name size must be between 1 and 50")
}

func TestStatusService_Create_DuplicateName(t *testing.T) {
	f := newFixture(t)
	svc := newStatusService(f)
	owner := uuid.New()
	board := testBoard(owner, model.VisibilityPrivate)

	f.expectBoardLookup(board)
	f.mock.ExpectQuery(`SELECT count\(\*\) FROM "statuses" WHERE board_id = \$1 AND name = \$2`).
		WithArgs(board.ID, "Done").
		WillReturnRows(sqlmock.NewRows([]string{"count"}).AddRow(1))

	_, err := svc.Create(context.Background(), board.ID, &owner, "Done", "")

	assert.Equal(t, service.CodeConflict, service.CodeOf(err))
	assert.EqualError(t, err, "Status name must be unique within the board")
}

func TestStatusService_Create_Success(t *testing.T) {
	f := newFixture(t)
	svc := newStatusService(f)
	owner := uuid.New()
	board := testBoard(owner, model.VisibilityPrivate)

	f.expectBoardLookup(board)
	f.mock.ExpectQuery(`SELECT count\(\*\) FROM "statuses" WHERE board_id = \$1 AND name = \$2`).
		WithArgs(board.ID, "Review").
		WillReturnRows(sqlmock.NewRows([]string{"count"}).AddRow(0))
	f.mock.ExpectBegin()
	f.mock.ExpectQuery(`INSERT INTO "statuses"`).
		WithArgs(board.ID, "Review", "Waiting for code review").
		WillReturnRows(sqlmock.NewRows([]string{"id"}).AddRow(5))
	f.mock.ExpectCommit()

	status, err := svc.Create(context.Background(), board.ID, &owner, "Review", "Waiting for code review")

	assert.NoError(t, err)
	assert.Equal(t, 5, status.ID)
	assert.NoError(t, f.mock.ExpectationsWereMet())
}

func TestStatusService_Update_UnchangedNameSkipsUniquenessCheck(t *testing.T) {
	f := newFixture(t)
	svc := newStatusService(f)
	owner := uuid.New()
	board := testBoard(owner, model.VisibilityPrivate)

	f.expectBoardLookup(board)
	f.expectStatusLookup(board.ID, 5, "Review")
	// No ExistsByName query here: the name did not change.
	f.mock.ExpectBegin()
	f.mock.ExpectExec(`UPDATE "statuses" SET`).
		WillReturnResult(sqlmock.NewResult(0, 1))
	f.mock.ExpectCommit()

	name := "Review"
	description := "Updated description"
	status, err := svc.Update(context.Background(), board.ID, 5, &owner, service.StatusPatch{Name: &name, Description: &description})

	assert.NoError(t, err)
	assert.Equal(t, "Updated description", status.Description)
	assert.NoError(t, f.mock.ExpectationsWereMet())
}

func TestStatusService_Update_StatusNotFound(t *testing.T) {
	f := newFixture(t)
	svc := newStatusService(f)
	owner := uuid.New()
	board := testBoard(owner, model.VisibilityPrivate)

	f.expectBoardLookup(board)
	f.mock.ExpectQuery(`SELECT \* FROM "statuses" WHERE id = \$1 AND board_id = \$2`).
		WithArgs(99, board.ID, 1).
		WillReturnError(gorm.ErrRecordNotFound)

	name := "Renamed"
	_, err := svc.Update(context.Background(), board.ID, 99, &owner, service.StatusPatch{Name: &name})

	assert.Equal(t, service.CodeNotFound, service.CodeOf(err))
	assert.EqualError(t, err, "Status not found in this board")
}

func TestStatusService_Delete_SentinelRejected(t *testing.T) {
	f := newFixture(t)
	svc := newStatusService(f)
	owner := uuid.New()
	board := testBoard(owner, model.VisibilityPrivate)

	f.expectBoardLookup(board)
	f.expectStatusLookup(board.ID, 1, model.StatusNoStatus)

	err := svc.Delete(context.Background(), board.ID, 1, &owner)

	assert.Equal(t, service.CodeInvalidArgument, service.CodeOf(err))
	assert.EqualError(t, err, "Cannot delete 'No Status' or 'Done' status")
}

func TestStatusService_Delete_InUseRejected(t *testing.T) {
	f := newFixture(t)
	svc := newStatusService(f)
	owner := uuid.New()
	board := testBoard(owner, model.VisibilityPrivate)

	f.expectBoardLookup(board)
	f.expectStatusLookup(board.ID, 5, "Review")
	f.mock.ExpectQuery(`SELECT count\(\*\) FROM "tasks" WHERE status_id = \$1`).
		WithArgs(5).
		WillReturnRows(sqlmock.NewRows([]string{"count"}).AddRow(2))

	err := svc.Delete(context.Background(), board.ID, 5, &owner)

	assert.Equal(t, service.CodeInUse, service.CodeOf(err))
	assert.EqualError(t, err, "Cannot delete status as it is currently in use")
}

func TestStatusService_Delete_Success(t *testing.T) {
	f := newFixture(t)
	svc := newStatusService(f)
	owner := uuid.New()
	board := testBoard(owner, model.VisibilityPrivate)

	f.expectBoardLookup(board)
	f.expectStatusLookup(board.ID, 5, "Review")
	f.mock.ExpectQuery(`SELECT count\(\*\) FROM "tasks" WHERE status_id = \$1`).
		WithArgs(5).
		WillReturnRows(sqlmock.NewRows([]string{"count"}).AddRow(0))
	f.mock.ExpectBegin()
	f.mock.ExpectExec(`DELETE FROM "statuses"`).
		WillReturnResult(sqlmock.NewResult(0, 1))
	f.mock.ExpectCommit()

	err := svc.Delete(context.Background(), board.ID, 5, &owner)

	assert.NoError(t, err)
	assert.NoError(t, f.mock.ExpectationsWereMet())
}

func TestStatusService_DeleteAndTransfer_SameStatusRejected(t *testing.T) {
	f := newFixture(t)
	svc := newStatusService(f)
	owner := uuid.New()
	board := testBoard(owner, model.VisibilityPrivate)

	f.expectBoardLookup(board)
	f.expectStatusLookup(board.ID, 5, "Review")
	f.expectStatusLookup(board.ID, 5, "Review")

	err := svc.DeleteAndTransfer(context.Background(), board.ID, 5, 5, &owner)

	assert.Equal(t, service.CodeInvalidArgument, service.CodeOf(err))
	assert.EqualError(t, err, "Destination status must be different from current status")
}

func TestStatusService_DeleteAndTransfer_MissingDestination(t *testing.T) {
	f := newFixture(t)
	svc := newStatusService(f)
	owner := uuid.New()
	board := testBoard(owner, model.VisibilityPrivate)

	f.expectBoardLookup(board)
	f.expectStatusLookup(board.ID, 5, "Review")
	f.mock.ExpectQuery(`SELECT \* FROM "statuses" WHERE id = \$1 AND board_id = \$2`).
		WithArgs(99, board.ID, 1).
		WillReturnError(gorm.ErrRecordNotFound)

	err := svc.DeleteAndTransfer(context.Background(), board.ID, 5, 99, &owner)

	assert.Equal(t, service.CodeNotFound, service.CodeOf(err))
	assert.EqualError(t, err, "New status not found in this board")
}

func TestStatusService_DeleteAndTransfer_Success(t *testing.T) {
	f := newFixture(t)
	svc := newStatusService(f)
	owner := uuid.New()
	board := testBoard(owner, model.VisibilityPrivate)

	f.expectBoardLookup(board)
	f.expectStatusLookup(board.ID, 5, "Review")
	f.expectStatusLookup(board.ID, 2, "To Do")
	f.mock.ExpectBegin()
	f.mock.ExpectExec(`UPDATE "tasks" SET "status_id"=\$1`).
		WithArgs(2, sqlmock.AnyArg(), board.ID, 5).
		WillReturnResult(sqlmock.NewResult(0, 3))
	f.mock.ExpectExec(`DELETE FROM "statuses" WHERE id = \$1 AND board_id = \$2`).
		WithArgs(5, board.ID).
		WillReturnResult(sqlmock.NewResult(0, 1))
	f.mock.ExpectCommit()

	err := svc.DeleteAndTransfer(context.Background(), board.ID, 5, 2, &owner)

	assert.NoError(t, err)
	assert.NoError(t, f.mock.ExpectationsWereMet())
}
