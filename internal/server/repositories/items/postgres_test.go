package items

import (
	"context"
	"database/sql"
	"errors"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"

	"github.com/itemgallery/backend/internal/common"
	"github.com/itemgallery/backend/internal/server/models"
)

func newRepoWithMock(t *testing.T) (*PostgresRepository, sqlmock.Sqlmock, *sql.DB) {
	t.Helper()
	db, mock, err := sqlmock.New(sqlmock.QueryMatcherOption(sqlmock.QueryMatcherRegexp))
	if err != nil {
		t.Fatalf("sqlmock.New error: %v", err)
	}
	return NewPostgresRepository(db), mock, db
}

const insertQ = `(?s)^\s*INSERT\s+INTO\s+items\s*\(user_id,\s*title,\s*description,\s*cover_image,\s*images\).*RETURNING\s+id,\s*created_at\s*$`
const selectQ = `(?s)^\s*SELECT\s+id,\s*user_id,\s*title.*FROM\s+items\s+WHERE\s+id\s*=\s*\$1\s*$`
const updateQ = `(?s)^\s*UPDATE\s+items\s+SET\s+title.*WHERE\s+id\s*=\s*\$5\s+AND\s+user_id\s*=\s*\$6\s*$`
const deleteQ = `(?s)^\s*DELETE\s+FROM\s+items\s+WHERE\s+id\s*=\s*\$1\s+AND\s+user_id\s*=\s*\$2\s*$`

func TestCreate_SerializesImages(t *testing.T) {
	repo, mock, db := newRepoWithMock(t)
	defer db.Close()

	rows := sqlmock.NewRows([]string{"id", "created_at"}).AddRow(int64(3), time.Now())
	mock.ExpectQuery(insertQ).
		WithArgs(int64(1), "Sword", "sharp", "covers/sword.png", `["a.png","b.png"]`).
		WillReturnRows(rows)

	item := &models.Item{
		UserID:      1,
		Title:       "Sword",
		Description: "sharp",
		CoverImage:  "covers/sword.png",
		Images:      []string{"a.png", "b.png"},
	}
	got, err := repo.Create(context.Background(), item)
	if err != nil {
		t.Fatalf("Create error: %v", err)
	}
	if got.ID != 3 {
		t.Fatalf("unexpected item: %+v", got)
	}
}

func TestCreate_NilImagesStoredAsEmptyList(t *testing.T) {
	repo, mock, db := newRepoWithMock(t)
	defer db.Close()

	rows := sqlmock.NewRows([]string{"id", "created_at"}).AddRow(int64(4), time.Now())
	mock.ExpectQuery(insertQ).
		WithArgs(int64(1), "Shield", "", "", "[]").
		WillReturnRows(rows)

	got, err := repo.Create(context.Background(), &models.Item{UserID: 1, Title: "Shield"})
	if err != nil {
		t.Fatalf("Create error: %v", err)
	}
	if got.Images == nil || len(got.Images) != 0 {
		t.Fatalf("want empty image list, got %#v", got.Images)
	}
}

func itemRows(id, userID int64, title, images string) *sqlmock.Rows {
	return sqlmock.NewRows([]string{"id", "user_id", "title", "description", "cover_image", "images", "created_at"}).
		AddRow(id, userID, title, nil, nil, images, time.Now())
}

func TestGetByID_DecodesImages(t *testing.T) {
	repo, mock, db := newRepoWithMock(t)
	defer db.Close()

	mock.ExpectQuery(selectQ).
		WithArgs(int64(3)).
		WillReturnRows(itemRows(3, 1, "Sword", `["a.png","b.png"]`))

	got, err := repo.GetByID(context.Background(), 3)
	if err != nil {
		t.Fatalf("GetByID error: %v", err)
	}
	if len(got.Images) != 2 || got.Images[0] != "a.png" || got.Images[1] != "b.png" {
		t.Fatalf("unexpected images: %#v", got.Images)
	}
}

func TestGetByID_MalformedImagesReadAsEmpty(t *testing.T) {
	repo, mock, db := newRepoWithMock(t)
	defer db.Close()

	mock.ExpectQuery(selectQ).
		WithArgs(int64(3)).
		WillReturnRows(itemRows(3, 1, "Sword", "not json"))

	got, err := repo.GetByID(context.Background(), 3)
	if err != nil {
		t.Fatalf("GetByID error: %v", err)
	}
	if len(got.Images) != 0 {
		t.Fatalf("want empty images, got %#v", got.Images)
	}
}

func TestGetByID_NotFound(t *testing.T) {
	repo, mock, db := newRepoWithMock(t)
	defer db.Close()

	mock.ExpectQuery(selectQ).
		WithArgs(int64(404)).
		WillReturnError(sql.ErrNoRows)

	_, err := repo.GetByID(context.Background(), 404)
	if !errors.Is(err, common.ErrorNotFound) {
		t.Fatalf("want common.ErrorNotFound, got %v", err)
	}
}

func TestList_Paging(t *testing.T) {
	repo, mock, db := newRepoWithMock(t)
	defer db.Close()

	q := `(?s)^\s*SELECT\s+id,\s*user_id,\s*title.*FROM\s+items\s+ORDER\s+BY\s+created_at\s+DESC.*OFFSET\s+\$1\s+LIMIT\s+\$2\s*$`
	rows := itemRows(2, 1, "Second", "[]").
		AddRow(int64(1), int64(1), "First", nil, nil, "[]", time.Now())
	mock.ExpectQuery(q).
		WithArgs(0, 50).
		WillReturnRows(rows)

	got, err := repo.List(context.Background(), 0, 50)
	if err != nil {
		t.Fatalf("List error: %v", err)
	}
	if len(got) != 2 || got[0].Title != "Second" {
		t.Fatalf("unexpected items: %#v", got)
	}
}

func TestListByUser_EmptyIsNotNil(t *testing.T) {
	repo, mock, db := newRepoWithMock(t)
	defer db.Close()

	q := `(?s)^\s*SELECT\s+id,\s*user_id,\s*title.*FROM\s+items\s+WHERE\s+user_id\s*=\s*\$1\s+ORDER\s+BY\s+created_at\s+DESC`
	mock.ExpectQuery(q).
		WithArgs(int64(1)).
		WillReturnRows(sqlmock.NewRows([]string{"id", "user_id", "title", "description", "cover_image", "images", "created_at"}))

	got, err := repo.ListByUser(context.Background(), 1)
	if err != nil {
		t.Fatalf("ListByUser error: %v", err)
	}
	if got == nil || len(got) != 0 {
		t.Fatalf("want empty non-nil slice, got %#v", got)
	}
}

func TestUpdate_OtherOwnerReadsAsNotFound(t *testing.T) {
	repo, mock, db := newRepoWithMock(t)
	defer db.Close()

	mock.ExpectExec(updateQ).
		WithArgs("Sword", "sharp", "", "[]", int64(3), int64(2)).
		WillReturnResult(sqlmock.NewResult(0, 0))

	item := &models.Item{ID: 3, Title: "Sword", Description: "sharp"}
	err := repo.Update(context.Background(), 2, item)
	if !errors.Is(err, common.ErrorNotFound) {
		t.Fatalf("want common.ErrorNotFound, got %v", err)
	}
}

func TestUpdate_Success(t *testing.T) {
	repo, mock, db := newRepoWithMock(t)
	defer db.Close()

	mock.ExpectExec(updateQ).
		WithArgs("Sword", "sharp", "", `["a.png"]`, int64(3), int64(1)).
		WillReturnResult(sqlmock.NewResult(0, 1))

	item := &models.Item{ID: 3, Title: "Sword", Description: "sharp", Images: []string{"a.png"}}
	if err := repo.Update(context.Background(), 1, item); err != nil {
		t.Fatalf("Update error: %v", err)
	}
}

func TestDelete_OtherOwnerReadsAsNotFound(t *testing.T) {
	repo, mock, db := newRepoWithMock(t)
	defer db.Close()

	mock.ExpectExec(deleteQ).
		WithArgs(int64(3), int64(2)).
		WillReturnResult(sqlmock.NewResult(0, 0))

	err := repo.Delete(context.Background(), 2, 3)
	if !errors.Is(err, common.ErrorNotFound) {
		t.Fatalf("want common.ErrorNotFound, got %v", err)
	}
}

func TestDelete_Success(t *testing.T) {
	repo, mock, db := newRepoWithMock(t)
	defer db.Close()

	mock.ExpectExec(deleteQ).
		WithArgs(int64(3), int64(1)).
		WillReturnResult(sqlmock.NewResult(0, 1))

	if err := repo.Delete(context.Background(), 1, 3); err != nil {
		t.Fatalf("Delete error: %v", err)
	}
}
