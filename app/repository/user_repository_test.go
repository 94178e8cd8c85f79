package repository

import (
	"testing"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFollowTwiceIsNoOp(t *testing.T) {
	db, mock := newMockDB(t)
	repo := NewUserRepository(db)

	// second insert hits the composite PK and affects zero rows
	for _, affected := range []int64{1, 0} {
		mock.ExpectBegin()
		mock.ExpectExec("INSERT INTO `follows`").
			WillReturnResult(sqlmock.NewResult(0, affected))
		mock.ExpectCommit()
	}

	require.NoError(t, repo.Follow(1, 2))
	require.NoError(t, repo.Follow(1, 2))
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestUnfollowMissingEdgeIsNoOp(t *testing.T) {
	db, mock := newMockDB(t)
	repo := NewUserRepository(db)

	mock.ExpectBegin()
	mock.ExpectExec("DELETE FROM `follows`").
		WillReturnResult(sqlmock.NewResult(0, 0))
	mock.ExpectCommit()

	require.NoError(t, repo.Unfollow(1, 2))
	assert.NoError(t, mock.ExpectationsWereMet())
}
