package repository

import (
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/mysql"
	"gorm.io/gorm"

	"ranked_arena_backend/internal/model"
	"ranked_arena_backend/internal/util"
)

func newMockDB(t *testing.T) (*gorm.DB, sqlmock.Sqlmock) {
	t.Helper()

	sqlDB, mock, err := sqlmock.New()
	require.NoError(t, err)
	t.Cleanup(func() { sqlDB.Close() })

	db, err := gorm.Open(mysql.New(mysql.Config{
		Conn:                      sqlDB,
		SkipInitializeWithVersion: true,
	}), &gorm.Config{})
	require.NoError(t, err)

	return db, mock
}

func TestRunRepositorySaveWithVersion(t *testing.T) {
	t.Run("FreshVersionUpdatesRow", func(t *testing.T) {
		db, mock := newMockDB(t)
		repo := NewRunRepository(db)

		run := &model.Run{
			UUIDBase:          model.UUIDBase{ID: "run-1"},
			LivesRemaining:    2,
			CurrentDifficulty: 3,
			TotalMoney:        4500,
			QuestionsAnswered: 5,
			QuestionsCorrect:  4,
			Status:            model.RunActive,
		}

		mock.ExpectBegin()
		mock.ExpectExec("UPDATE `runs` SET").
			WillReturnResult(sqlmock.NewResult(0, 1))
		mock.ExpectCommit()

		err := db.Transaction(func(tx *gorm.DB) error {
			return repo.SaveWithVersion(tx, run, 7)
		})
		require.NoError(t, err)
		assert.Equal(t, 8, run.Version)
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("StaleVersionConflicts", func(t *testing.T) {
		db, mock := newMockDB(t)
		repo := NewRunRepository(db)

		run := &model.Run{UUIDBase: model.UUIDBase{ID: "run-1"}, Status: model.RunActive}

		mock.ExpectBegin()
		mock.ExpectExec("UPDATE `runs` SET").
			WillReturnResult(sqlmock.NewResult(0, 0))
		mock.ExpectRollback()

		err := db.Transaction(func(tx *gorm.DB) error {
			return repo.SaveWithVersion(tx, run, 7)
		})
		assert.ErrorIs(t, err, util.ErrVersionConflict)
		assert.NoError(t, mock.ExpectationsWereMet())
	})
}

func TestRunRepositoryCountAnswers(t *testing.T) {
	db, mock := newMockDB(t)
	repo := NewRunRepository(db)

	mock.ExpectQuery("SELECT count\\(\\*\\) FROM `run_answers`").
		WithArgs("run-1").
		WillReturnRows(sqlmock.NewRows([]string{"count"}).AddRow(6))

	count, err := repo.CountAnswers("run-1")
	require.NoError(t, err)
	assert.Equal(t, int64(6), count)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestRunRepositoryExpireOverdue(t *testing.T) {
	db, mock := newMockDB(t)
	repo := NewRunRepository(db)

	mock.ExpectBegin()
	mock.ExpectExec("UPDATE `runs` SET").
		WillReturnResult(sqlmock.NewResult(0, 3))
	mock.ExpectCommit()

	expired, err := repo.ExpireOverdue(time.Now())
	require.NoError(t, err)
	assert.Equal(t, int64(3), expired)
	assert.NoError(t, mock.ExpectationsWereMet())
}
