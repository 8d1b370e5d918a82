package services

import (
	"context"
	"database/sql"
	"io"
	"log/slog"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/avosk/threadhub/internal/dbx"
	"github.com/avosk/threadhub/internal/logging"
	"github.com/avosk/threadhub/internal/server/models"
	postsrepo "github.com/avosk/threadhub/internal/server/repositories/posts"
	refreshtokensrepo "github.com/avosk/threadhub/internal/server/repositories/refreshtokens"
	topicsrepo "github.com/avosk/threadhub/internal/server/repositories/topics"
	usersrepo "github.com/avosk/threadhub/internal/server/repositories/users"
)

// --- helpers ---

func newSQLMockDB(t *testing.T) (*sql.DB, sqlmock.Sqlmock) {
	t.Helper()
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("sqlmock.New error: %v", err)
	}
	return db, mock
}

func testLogger() logging.Logger {
	return logging.NewSlogLogger(slog.New(slog.NewJSONHandler(io.Discard, nil)))
}

type errBoom struct{}

func (errBoom) Error() string { return "boom" }

// --- fakes ---

type fakeUsersRepo struct {
	allOut []*models.User
	allErr error

	byIDOut *models.User
	byIDErr error

	byUsernameOut *models.User
	byUsernameErr error

	byEmailOut *models.User
	byEmailErr error

	createdIn *models.User
	createErr error

	updatedIn *models.User
	updateErr error

	deleteErr error
	deleted   []int64
}

func (f *fakeUsersRepo) FindAll(ctx context.Context) ([]*models.User, error) {
	return f.allOut, f.allErr
}

func (f *fakeUsersRepo) FindByID(ctx context.Context, id int64) (*models.User, error) {
	if f.byIDErr != nil {
		return nil, f.byIDErr
	}
	return f.byIDOut, nil
}

func (f *fakeUsersRepo) FindByUsername(ctx context.Context, username string) (*models.User, error) {
	if f.byUsernameErr != nil {
		return nil, f.byUsernameErr
	}
	return f.byUsernameOut, nil
}

func (f *fakeUsersRepo) FindByEmail(ctx context.Context, email string) (*models.User, error) {
	if f.byEmailErr != nil {
		return nil, f.byEmailErr
	}
	return f.byEmailOut, nil
}

func (f *fakeUsersRepo) Create(ctx context.Context, user *models.User) (*models.User, error) {
	if f.createErr != nil {
		return nil, f.createErr
	}
	user.ID = 42
	f.createdIn = user
	return user, nil
}

func (f *fakeUsersRepo) Update(ctx context.Context, user *models.User) (*models.User, error) {
	if f.updateErr != nil {
		return nil, f.updateErr
	}
	f.updatedIn = user
	return user, nil
}

func (f *fakeUsersRepo) Delete(ctx context.Context, id int64) error {
	if f.deleteErr != nil {
		return f.deleteErr
	}
	f.deleted = append(f.deleted, id)
	return nil
}

type fakeTopicsRepo struct {
	allOut []*models.Topic
	allErr error

	byIDOut *models.Topic
	byIDErr error

	createErr error
	updateErr error
	deleteErr error
	deleted   []int64

	addErr      error
	addCalls    [][2]int64
	removeErr   error
	removeCalls [][2]int64

	bySubscriberOut []*models.Topic
	bySubscriberErr error

	countOut int64
	countErr error
}

func (f *fakeTopicsRepo) FindAll(ctx context.Context) ([]*models.Topic, error) {
	return f.allOut, f.allErr
}

func (f *fakeTopicsRepo) FindByID(ctx context.Context, id int64) (*models.Topic, error) {
	if f.byIDErr != nil {
		return nil, f.byIDErr
	}
	return f.byIDOut, nil
}

func (f *fakeTopicsRepo) Create(ctx context.Context, topic *models.Topic) (*models.Topic, error) {
	if f.createErr != nil {
		return nil, f.createErr
	}
	topic.ID = 42
	return topic, nil
}

func (f *fakeTopicsRepo) Update(ctx context.Context, topic *models.Topic) (*models.Topic, error) {
	if f.updateErr != nil {
		return nil, f.updateErr
	}
	return topic, nil
}

func (f *fakeTopicsRepo) Delete(ctx context.Context, id int64) error {
	if f.deleteErr != nil {
		return f.deleteErr
	}
	f.deleted = append(f.deleted, id)
	return nil
}

func (f *fakeTopicsRepo) AddSubscriber(ctx context.Context, topicID, userID int64) error {
	if f.addErr != nil {
		return f.addErr
	}
	f.addCalls = append(f.addCalls, [2]int64{topicID, userID})
	return nil
}

func (f *fakeTopicsRepo) RemoveSubscriber(ctx context.Context, topicID, userID int64) error {
	if f.removeErr != nil {
		return f.removeErr
	}
	f.removeCalls = append(f.removeCalls, [2]int64{topicID, userID})
	return nil
}

func (f *fakeTopicsRepo) FindBySubscriberID(ctx context.Context, userID int64) ([]*models.Topic, error) {
	if f.bySubscriberErr != nil {
		return nil, f.bySubscriberErr
	}
	return f.bySubscriberOut, nil
}

func (f *fakeTopicsRepo) CountSubscribers(ctx context.Context, topicID int64) (int64, error) {
	if f.countErr != nil {
		return 0, f.countErr
	}
	return f.countOut, nil
}

type fakePostsRepo struct {
	createdIn *models.Post
	createErr error

	byIDOut *models.Post
	byIDErr error

	byTopicOut []*models.Post
	byTopicErr error

	feedOut []*models.Post
	feedErr error

	commentIn   *models.Comment
	commentErr  error
	commentsOut []*models.Comment
	commentsErr error
}

func (f *fakePostsRepo) Create(ctx context.Context, post *models.Post) (*models.Post, error) {
	if f.createErr != nil {
		return nil, f.createErr
	}
	post.ID = 42
	f.createdIn = post
	return post, nil
}

func (f *fakePostsRepo) FindByID(ctx context.Context, id int64) (*models.Post, error) {
	if f.byIDErr != nil {
		return nil, f.byIDErr
	}
	return f.byIDOut, nil
}

func (f *fakePostsRepo) FindByTopic(ctx context.Context, topicID int64) ([]*models.Post, error) {
	if f.byTopicErr != nil {
		return nil, f.byTopicErr
	}
	return f.byTopicOut, nil
}

func (f *fakePostsRepo) FindFeed(ctx context.Context, userID int64) ([]*models.Post, error) {
	if f.feedErr != nil {
		return nil, f.feedErr
	}
	return f.feedOut, nil
}

func (f *fakePostsRepo) AddComment(ctx context.Context, comment *models.Comment) (*models.Comment, error) {
	if f.commentErr != nil {
		return nil, f.commentErr
	}
	comment.ID = 42
	f.commentIn = comment
	return comment, nil
}

func (f *fakePostsRepo) FindCommentsByPost(ctx context.Context, postID int64) ([]*models.Comment, error) {
	if f.commentsErr != nil {
		return nil, f.commentsErr
	}
	return f.commentsOut, nil
}

type fakeRefreshRepo struct {
	createErr error

	findOut *models.RefreshToken
	findErr error

	delErr  error
	deleted []string
}

func (f *fakeRefreshRepo) Create(ctx context.Context, userID int64, token string, validity time.Duration) error {
	return f.createErr
}

func (f *fakeRefreshRepo) Find(ctx context.Context, token string) (*models.RefreshToken, error) {
	if f.findErr != nil {
		return nil, f.findErr
	}
	return f.findOut, nil
}

func (f *fakeRefreshRepo) Delete(ctx context.Context, token string) error {
	if f.delErr != nil {
		return f.delErr
	}
	f.deleted = append(f.deleted, token)
	return nil
}

type fakeRepoManager struct {
	u *fakeUsersRepo
	t *fakeTopicsRepo
	p *fakePostsRepo
	r *fakeRefreshRepo
}

func (m *fakeRepoManager) RunMigrations(context.Context, *sql.DB) error               { return nil }
func (m *fakeRepoManager) Users(db dbx.DBTX) usersrepo.Repository                     { return m.u }
func (m *fakeRepoManager) Topics(db dbx.DBTX) topicsrepo.Repository                   { return m.t }
func (m *fakeRepoManager) Posts(db dbx.DBTX) postsrepo.Repository                     { return m.p }
func (m *fakeRepoManager) RefreshTokens(db dbx.DBTX) refreshtokensrepo.Repository     { return m.r }
