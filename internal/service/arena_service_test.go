package service

import (
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	sqldriver "github.com/go-sql-driver/mysql"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/mysql"
	"gorm.io/gorm"

	"ranked_arena_backend/internal/config"
	"ranked_arena_backend/internal/model"
	"ranked_arena_backend/internal/repository"
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

func newArenaService(t *testing.T) (*ArenaService, sqlmock.Sqlmock) {
	t.Helper()

	db, mock := newMockDB(t)
	cfg := &config.Config{}
	cfg.Arena = config.ArenaConfig{LivesTotal: 3, RunDurationSec: 600}

	svc := NewArenaService(
		repository.NewRunRepository(db),
		repository.NewQuestionRepository(db),
		repository.NewRatingRepository(db),
		nil,
		cfg,
		db,
	)
	return svc, mock
}

var runColumns = []string{
	"id", "user_id", "started_at", "duration_sec", "lives_total",
	"lives_remaining", "current_difficulty", "streak", "total_money",
	"questions_answered", "questions_correct", "highest_difficulty",
	"avg_difficulty", "status", "finalized", "version",
}

func activeRunRow(userID uint, startedAt time.Time, answered int) *sqlmock.Rows {
	return sqlmock.NewRows(runColumns).AddRow(
		"run-1", userID, startedAt, 600, 3,
		2, 2, 1, 3000,
		answered, answered, 2,
		2.0, "active", false, 4,
	)
}

func expectQuestionAndRating(mock sqlmock.Sqlmock) {
	mock.ExpectQuery("SELECT \\* FROM `questions`").
		WillReturnRows(sqlmock.NewRows([]string{"id", "difficulty", "format", "correct_answer", "expected_time_sec"}).
			AddRow(11, 2, "mcq", "Opposite", 20))
	mock.ExpectQuery("SELECT \\* FROM `ratings`").
		WillReturnRows(sqlmock.NewRows([]string{"id", "user_id", "market_value", "peak_market_value", "title", "version"}).
			AddRow(5, 7, 120_000, 120_000, "Analyst", 2))
}

func TestSubmitAnswerSequenceGuards(t *testing.T) {
	t.Run("ReplayedSeqRejected", func(t *testing.T) {
		svc, mock := newArenaService(t)
		mock.ExpectQuery("SELECT \\* FROM `runs`").
			WillReturnRows(activeRunRow(7, time.Now(), 2))

		_, err := svc.SubmitAnswer(7, "run-1", &SubmitAnswerRequest{QuestionID: 11, Seq: 2})
		assert.ErrorIs(t, err, util.ErrDuplicateAnswer)
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("SkippedSeqRejected", func(t *testing.T) {
		svc, mock := newArenaService(t)
		mock.ExpectQuery("SELECT \\* FROM `runs`").
			WillReturnRows(activeRunRow(7, time.Now(), 2))

		_, err := svc.SubmitAnswer(7, "run-1", &SubmitAnswerRequest{QuestionID: 11, Seq: 4})
		assert.ErrorIs(t, err, util.ErrOutOfOrderAnswer)
		assert.NoError(t, mock.ExpectationsWereMet())
	})
}

func TestSubmitAnswerDeadline(t *testing.T) {
	// lives remain but the wall-clock budget is spent
	svc, mock := newArenaService(t)
	mock.ExpectQuery("SELECT \\* FROM `runs`").
		WillReturnRows(activeRunRow(7, time.Now().Add(-20*time.Minute), 2))

	_, err := svc.SubmitAnswer(7, "run-1", &SubmitAnswerRequest{QuestionID: 11, Seq: 3})
	assert.ErrorIs(t, err, util.ErrRunExpired)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestSubmitAnswerWrongOwnerRejected(t *testing.T) {
	svc, mock := newArenaService(t)
	mock.ExpectQuery("SELECT \\* FROM `runs`").
		WillReturnRows(activeRunRow(7, time.Now(), 0))

	_, err := svc.SubmitAnswer(8, "run-1", &SubmitAnswerRequest{QuestionID: 11, Seq: 1})
	assert.ErrorIs(t, err, util.ErrPermissionDenied)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestSubmitAnswerVersionConflictRetriesThenFails(t *testing.T) {
	svc, mock := newArenaService(t)

	// every attempt loses the optimistic save; the bounded retry loop
	// must give up with the conflict rather than spin
	for attempt := 0; attempt < casRetries; attempt++ {
		mock.ExpectQuery("SELECT \\* FROM `runs`").
			WillReturnRows(activeRunRow(7, time.Now(), 0))
		expectQuestionAndRating(mock)
		mock.ExpectBegin()
		mock.ExpectExec("INSERT INTO `run_answers`").
			WillReturnResult(sqlmock.NewResult(1, 1))
		mock.ExpectExec("UPDATE `runs` SET").
			WillReturnResult(sqlmock.NewResult(0, 0))
		mock.ExpectRollback()
	}

	_, err := svc.SubmitAnswer(7, "run-1", &SubmitAnswerRequest{QuestionID: 11, Seq: 1, Response: "Opposite"})
	assert.ErrorIs(t, err, util.ErrVersionConflict)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestSubmitAnswerDuplicateInsertMapsToDuplicateAnswer(t *testing.T) {
	// a replay that raced past the seq check still dies on the unique
	// (run_id, seq) index and is reported as a duplicate, not retried
	svc, mock := newArenaService(t)

	mock.ExpectQuery("SELECT \\* FROM `runs`").
		WillReturnRows(activeRunRow(7, time.Now(), 0))
	expectQuestionAndRating(mock)
	mock.ExpectBegin()
	mock.ExpectExec("INSERT INTO `run_answers`").
		WillReturnError(&sqldriver.MySQLError{Number: 1062, Message: "Duplicate entry 'run-1-1' for key 'run_answers.idx_run_seq'"})
	mock.ExpectRollback()

	_, err := svc.SubmitAnswer(7, "run-1", &SubmitAnswerRequest{QuestionID: 11, Seq: 1, Response: "Opposite"})
	assert.ErrorIs(t, err, util.ErrDuplicateAnswer)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestSubmitAnswerSuccess(t *testing.T) {
	svc, mock := newArenaService(t)

	mock.ExpectQuery("SELECT \\* FROM `runs`").
		WillReturnRows(activeRunRow(7, time.Now(), 0))
	expectQuestionAndRating(mock)
	mock.ExpectBegin()
	mock.ExpectExec("INSERT INTO `run_answers`").
		WillReturnResult(sqlmock.NewResult(1, 1))
	mock.ExpectExec("UPDATE `runs` SET").
		WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectCommit()

	result, err := svc.SubmitAnswer(7, "run-1", &SubmitAnswerRequest{QuestionID: 11, Seq: 1, Response: "Opposite", TimeTakenSec: 10})
	require.NoError(t, err)
	assert.Equal(t, 1.0, result.Score)
	assert.Greater(t, result.MoneyAwarded, 0)
	assert.Equal(t, model.RunActive, result.RunStatus)
	assert.NoError(t, mock.ExpectationsWereMet())
}
