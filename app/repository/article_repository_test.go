package repository

import (
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/mysql"
	"gorm.io/gorm"

	"github.com/conduitapp/conduit/app/models"
)

// newMockDB opens a gorm handle over a sqlmock connection so the
// repositories' generated SQL can be exercised without a live MySQL.
func newMockDB(t *testing.T) (*gorm.DB, sqlmock.Sqlmock) {
	t.Helper()

	conn, mock, err := sqlmock.New()
	require.NoError(t, err)
	t.Cleanup(func() { conn.Close() })

	db, err := gorm.Open(mysql.New(mysql.Config{
		Conn:                      conn,
		SkipInitializeWithVersion: true,
	}), &gorm.Config{TranslateError: true})
	require.NoError(t, err)

	return db, mock
}

func TestDedupeNamesDropsDuplicates(t *testing.T) {
	assert.Equal(t, []string{"x", "y"}, dedupeNames([]string{"x", "x", "y"}))
}

func TestDedupeNamesPreservesFirstOccurrenceOrder(t *testing.T) {
	in := []string{"web", "go", "web", "testing", "go"}
	assert.Equal(t, []string{"web", "go", "testing"}, dedupeNames(in))
}

func TestDedupeNamesSkipsEmpty(t *testing.T) {
	assert.Equal(t, []string{"go"}, dedupeNames([]string{"", "go", ""}))
}

func TestDedupeNamesEmptyInput(t *testing.T) {
	assert.Empty(t, dedupeNames(nil))
	assert.Empty(t, dedupeNames([]string{}))
}

func TestFavoriteTwiceIsNoOp(t *testing.T) {
	db, mock := newMockDB(t)
	repo := NewArticleRepository(db)

	// second insert hits the composite PK and affects zero rows
	for _, affected := range []int64{1, 0} {
		mock.ExpectBegin()
		mock.ExpectExec("INSERT INTO `article_favorites`").
			WillReturnResult(sqlmock.NewResult(0, affected))
		mock.ExpectCommit()
	}

	require.NoError(t, repo.Favorite(1, 2))
	require.NoError(t, repo.Favorite(1, 2))
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestUnfavoriteMissingEdgeIsNoOp(t *testing.T) {
	db, mock := newMockDB(t)
	repo := NewArticleRepository(db)

	mock.ExpectBegin()
	mock.ExpectExec("DELETE FROM `article_favorites`").
		WillReturnResult(sqlmock.NewResult(0, 0))
	mock.ExpectCommit()

	require.NoError(t, repo.Unfavorite(1, 2))
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestListFavoritedByReturnsFilteredSetWithTotal(t *testing.T) {
	db, mock := newMockDB(t)
	repo := NewArticleRepository(db)

	now := time.Now()
	mock.ExpectQuery("SELECT COUNT").
		WillReturnRows(sqlmock.NewRows([]string{"count"}).AddRow(1))
	mock.ExpectQuery("FROM `articles` JOIN article_favorites(.+)ORDER BY articles\\.created_at DESC, articles\\.id DESC").
		WillReturnRows(sqlmock.NewRows(
			[]string{"id", "slug", "title", "description", "body", "user_id", "created_at", "updated_at"}).
			AddRow(1, "a-abc12345", "A", "", "body", 7, now, now))
	mock.ExpectQuery("FROM `users`").
		WillReturnRows(sqlmock.NewRows([]string{"id", "username"}).AddRow(7, "alice"))

	articles, total, err := repo.List(ArticleFilter{FavoritedBy: "bob"})
	require.NoError(t, err)
	assert.EqualValues(t, 1, total)
	require.Len(t, articles, 1)
	assert.Equal(t, "a-abc12345", articles[0].Slug)
	assert.Equal(t, "alice", articles[0].Author.Username)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestUpdateWithTagsRollsBackScalarChangeOnTagFailure(t *testing.T) {
	db, mock := newMockDB(t)
	repo := NewArticleRepository(db)

	article := &models.Article{ID: 1, UserID: 7, Slug: "title-abc12345", Title: "Title"}

	// one transaction covers both statements: a failing tag lookup must
	// roll back the already-executed scalar update
	mock.ExpectBegin()
	mock.ExpectExec("UPDATE `articles`").
		WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectExec("DELETE FROM `article_tags`").
		WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectQuery("SELECT (.+) FROM `tags`").
		WillReturnError(assert.AnError)
	mock.ExpectRollback()

	err := repo.UpdateWithTags(article, []string{"go"})
	assert.Error(t, err)
	assert.NoError(t, mock.ExpectationsWereMet())
}
