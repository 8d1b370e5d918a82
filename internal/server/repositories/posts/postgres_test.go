package posts

import (
	"context"
	"database/sql"
	"errors"
	"regexp"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/avosk/threadhub/internal/common"
	"github.com/avosk/threadhub/internal/server/models"
)

func newRepoWithMock(t *testing.T) (*PostgresRepository, sqlmock.Sqlmock, *sql.DB) {
	t.Helper()
	db, mock, err := sqlmock.New(sqlmock.QueryMatcherOption(sqlmock.QueryMatcherRegexp))
	if err != nil {
		t.Fatalf("sqlmock.New error: %v", err)
	}
	return NewPostgresRepository(db), mock, db
}

var postCols = []string{"id", "topic_id", "author_id", "title", "content", "created_at", "updated_at", "username", "name"}

func TestCreate_Success(t *testing.T) {
	repo, mock, db := newRepoWithMock(t)
	defer db.Close()

	q := `(?s)^\s*INSERT\s+INTO\s+posts\s*\(topic_id,\s*author_id,\s*title,\s*content,\s*created_at,\s*updated_at\)\s*VALUES\s*\(\$1,\s*\$2,\s*\$3,\s*\$4,\s*\$5,\s*\$6\)\s*RETURNING\s+id\s*$`

	now := time.Now()
	mock.ExpectQuery(q).
		WithArgs(int64(5), int64(7), "hello", "world", now, now).
		WillReturnRows(sqlmock.NewRows([]string{"id"}).AddRow(int64(42)))

	p := &models.Post{TopicID: 5, AuthorID: 7, Title: "hello", Content: "world", CreatedAt: now, UpdatedAt: now}
	got, err := repo.Create(context.Background(), p)
	if err != nil {
		t.Fatalf("Create error: %v", err)
	}
	if got.ID != 42 {
		t.Fatalf("unexpected post: %+v", got)
	}
}

func TestCreate_DBError(t *testing.T) {
	repo, mock, db := newRepoWithMock(t)
	defer db.Close()

	mock.ExpectQuery(`INSERT\s+INTO\s+posts`).
		WillReturnError(errors.New("db down"))

	_, err := repo.Create(context.Background(), &models.Post{TopicID: 5})
	if err == nil || !regexp.MustCompile(`db error: .*db down`).MatchString(err.Error()) {
		t.Fatalf("expected wrapped db error, got %v", err)
	}
}

func TestFindByID_Found(t *testing.T) {
	repo, mock, db := newRepoWithMock(t)
	defer db.Close()

	now := time.Now()
	rows := sqlmock.NewRows(postCols).
		AddRow(int64(3), int64(5), int64(7), "hello", "world", now, now, "alice", "golang")

	mock.ExpectQuery(`(?s)FROM\s+posts\s+p\s+JOIN\s+users\s+u\s+ON\s+u\.id\s*=\s*p\.author_id\s+JOIN\s+topics\s+t\s+ON\s+t\.id\s*=\s*p\.topic_id\s+WHERE\s+p\.id\s*=\s*\$1`).
		WithArgs(int64(3)).
		WillReturnRows(rows)

	got, err := repo.FindByID(context.Background(), 3)
	if err != nil {
		t.Fatalf("FindByID error: %v", err)
	}
	if got.Title != "hello" || got.AuthorName != "alice" || got.TopicName != "golang" {
		t.Fatalf("unexpected post: %+v", got)
	}
}

func TestFindByID_NotFound(t *testing.T) {
	repo, mock, db := newRepoWithMock(t)
	defer db.Close()

	mock.ExpectQuery(`(?s)FROM\s+posts\s+p\s+.*WHERE\s+p\.id\s*=\s*\$1`).
		WithArgs(int64(404)).
		WillReturnError(sql.ErrNoRows)

	_, err := repo.FindByID(context.Background(), 404)
	if !errors.Is(err, common.ErrorNotFound) {
		t.Fatalf("want common.ErrorNotFound, got %v", err)
	}
}

func TestFindByTopic_Success(t *testing.T) {
	repo, mock, db := newRepoWithMock(t)
	defer db.Close()

	now := time.Now()
	rows := sqlmock.NewRows(postCols).
		AddRow(int64(2), int64(5), int64(7), "second", "b", now, now, "alice", "golang").
		AddRow(int64(1), int64(5), int64(7), "first", "a", now.Add(-time.Hour), now.Add(-time.Hour), "alice", "golang")

	mock.ExpectQuery(`(?s)FROM\s+posts\s+p\s+.*WHERE\s+p\.topic_id\s*=\s*\$1\s+ORDER\s+BY\s+p\.created_at\s+DESC`).
		WithArgs(int64(5)).
		WillReturnRows(rows)

	got, err := repo.FindByTopic(context.Background(), 5)
	if err != nil {
		t.Fatalf("FindByTopic error: %v", err)
	}
	if len(got) != 2 || got[0].Title != "second" {
		t.Fatalf("unexpected posts: %+v", got)
	}
}

func TestFindFeed_Success(t *testing.T) {
	repo, mock, db := newRepoWithMock(t)
	defer db.Close()

	now := time.Now()
	rows := sqlmock.NewRows(postCols).
		AddRow(int64(9), int64(5), int64(2), "news", "x", now, now, "bob", "golang")

	mock.ExpectQuery(`(?s)JOIN\s+topic_subscribers\s+s\s+ON\s+s\.topic_id\s*=\s*p\.topic_id\s+WHERE\s+s\.user_id\s*=\s*\$1\s+ORDER\s+BY\s+p\.created_at\s+DESC`).
		WithArgs(int64(7)).
		WillReturnRows(rows)

	got, err := repo.FindFeed(context.Background(), 7)
	if err != nil {
		t.Fatalf("FindFeed error: %v", err)
	}
	if len(got) != 1 || got[0].Title != "news" {
		t.Fatalf("unexpected feed: %+v", got)
	}
}

func TestAddComment_Success(t *testing.T) {
	repo, mock, db := newRepoWithMock(t)
	defer db.Close()

	q := `(?s)^\s*INSERT\s+INTO\s+comments\s*\(post_id,\s*author_id,\s*content,\s*created_at\)\s*VALUES\s*\(\$1,\s*\$2,\s*\$3,\s*\$4\)\s*RETURNING\s+id\s*$`

	now := time.Now()
	mock.ExpectQuery(q).
		WithArgs(int64(3), int64(7), "nice", now).
		WillReturnRows(sqlmock.NewRows([]string{"id"}).AddRow(int64(42)))

	c := &models.Comment{PostID: 3, AuthorID: 7, Content: "nice", CreatedAt: now}
	got, err := repo.AddComment(context.Background(), c)
	if err != nil {
		t.Fatalf("AddComment error: %v", err)
	}
	if got.ID != 42 {
		t.Fatalf("unexpected comment: %+v", got)
	}
}

func TestFindCommentsByPost_Success(t *testing.T) {
	repo, mock, db := newRepoWithMock(t)
	defer db.Close()

	now := time.Now()
	rows := sqlmock.NewRows([]string{"id", "post_id", "author_id", "content", "created_at", "username"}).
		AddRow(int64(1), int64(3), int64(7), "first", now.Add(-time.Minute), "alice").
		AddRow(int64(2), int64(3), int64(2), "second", now, "bob")

	mock.ExpectQuery(`(?s)FROM\s+comments\s+c\s+JOIN\s+users\s+u\s+ON\s+u\.id\s*=\s*c\.author_id\s+WHERE\s+c\.post_id\s*=\s*\$1\s+ORDER\s+BY\s+c\.created_at`).
		WithArgs(int64(3)).
		WillReturnRows(rows)

	got, err := repo.FindCommentsByPost(context.Background(), 3)
	if err != nil {
		t.Fatalf("FindCommentsByPost error: %v", err)
	}
	if len(got) != 2 || got[0].Content != "first" || got[1].AuthorName != "bob" {
		t.Fatalf("unexpected comments: %+v", got)
	}
}
