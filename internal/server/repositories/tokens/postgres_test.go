package tokens

import (
	"context"
	"database/sql"
	"errors"
	"regexp"
	"testing"

	"github.com/DATA-DOG/go-sqlmock"

	"github.com/itemgallery/backend/internal/common"
)

func newRepoWithMock(t *testing.T) (*PostgresRepository, sqlmock.Sqlmock, *sql.DB) {
	t.Helper()
	db, mock, err := sqlmock.New(sqlmock.QueryMatcherOption(sqlmock.QueryMatcherRegexp))
	if err != nil {
		t.Fatalf("sqlmock.New error: %v", err)
	}
	return NewPostgresRepository(db), mock, db
}

const insertQ = `(?s)^\s*INSERT\s+INTO\s+auth_tokens\s*\(token,\s*user_id\)\s*VALUES\s*\(\$1,\s*\$2\)\s*$`
const findQ = `(?s)^\s*SELECT\s+user_id\s+FROM\s+auth_tokens\s+WHERE\s+token\s*=\s*\$1\s*$`
const deleteQ = `(?s)^\s*DELETE\s+FROM\s+auth_tokens\s+WHERE\s+user_id\s*=\s*\$1\s*$`

func TestCreate_Success(t *testing.T) {
	repo, mock, db := newRepoWithMock(t)
	defer db.Close()

	mock.ExpectExec(insertQ).
		WithArgs("tok-1", int64(5)).
		WillReturnResult(sqlmock.NewResult(1, 1))

	if err := repo.Create(context.Background(), 5, "tok-1"); err != nil {
		t.Fatalf("Create error: %v", err)
	}
}

func TestCreate_DBError(t *testing.T) {
	repo, mock, db := newRepoWithMock(t)
	defer db.Close()

	mock.ExpectExec(insertQ).
		WithArgs("tok-1", int64(5)).
		WillReturnError(errors.New("db down"))

	err := repo.Create(context.Background(), 5, "tok-1")
	if err == nil || !regexp.MustCompile(`db error: .*db down`).MatchString(err.Error()) {
		t.Fatalf("expected wrapped db error, got %v", err)
	}
}

func TestFindUserID_Found(t *testing.T) {
	repo, mock, db := newRepoWithMock(t)
	defer db.Close()

	rows := sqlmock.NewRows([]string{"user_id"}).AddRow(int64(9))
	mock.ExpectQuery(findQ).
		WithArgs("tok-1").
		WillReturnRows(rows)

	got, err := repo.FindUserID(context.Background(), "tok-1")
	if err != nil {
		t.Fatalf("FindUserID error: %v", err)
	}
	if got != 9 {
		t.Fatalf("unexpected user id: %d", got)
	}
}

func TestFindUserID_NotFound(t *testing.T) {
	repo, mock, db := newRepoWithMock(t)
	defer db.Close()

	mock.ExpectQuery(findQ).
		WithArgs("unknown").
		WillReturnError(sql.ErrNoRows)

	_, err := repo.FindUserID(context.Background(), "unknown")
	if !errors.Is(err, common.ErrorNotFound) {
		t.Fatalf("want common.ErrorNotFound, got %v", err)
	}
}

func TestDeleteAllForUser_IsIdempotent(t *testing.T) {
	repo, mock, db := newRepoWithMock(t)
	defer db.Close()

	// zero rows deleted is still success
	mock.ExpectExec(deleteQ).
		WithArgs(int64(9)).
		WillReturnResult(sqlmock.NewResult(0, 0))

	if err := repo.DeleteAllForUser(context.Background(), 9); err != nil {
		t.Fatalf("DeleteAllForUser error: %v", err)
	}
}

func TestDeleteAllForUser_DBError(t *testing.T) {
	repo, mock, db := newRepoWithMock(t)
	defer db.Close()

	mock.ExpectExec(deleteQ).
		WithArgs(int64(9)).
		WillReturnError(errors.New("db down"))

	err := repo.DeleteAllForUser(context.Background(), 9)
	if err == nil || !regexp.MustCompile(`db error: .*db down`).MatchString(err.Error()) {
		t.Fatalf("expected wrapped db error, got %v", err)
	}
}
