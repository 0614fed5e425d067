package repository

import (
	"context"
	"database/sql"
	"errors"
	"regexp"
	"testing"
	"time"

	sqlmock "github.com/DATA-DOG/go-sqlmock"
	"github.com/jmoiron/sqlx"
	"github.com/lib/pq"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/noah-isme/exam-marks-api/internal/models"
)

var markRowColumns = []string{"id", "name", "father_name", "register_number", "class_name", "exam_type", "subjects", "created_at", "updated_at"}

func newMarkRepoMock(t *testing.T) (*MarkRepository, sqlmock.Sqlmock, func()) {
	db, mock, err := sqlmock.New(sqlmock.QueryMatcherOption(sqlmock.QueryMatcherRegexp))
	require.NoError(t, err)
	return NewMarkRepository(sqlx.NewDb(db, "sqlmock")), mock, func() { db.Close() }
}

func sampleMark() *models.StudentMark {
	return &models.StudentMark{
		Name:           "Aisha",
		FatherName:     "Rahman",
		RegisterNumber: "R-101",
		ClassName:      "10A",
		ExamType:       string(models.ExamTypeModel),
		Subjects: []models.Subject{
			{SubjectName: "Fiqh", Mark: 45},
			{SubjectName: "Akhlaq", Mark: 18},
		},
	}
}

func TestMarkRepositoryCreate(t *testing.T) {
	repo, mock, cleanup := newMarkRepoMock(t)
	defer cleanup()

	mock.ExpectExec(regexp.QuoteMeta("INSERT INTO student_marks")).
		WillReturnResult(sqlmock.NewResult(0, 1))

	mark := sampleMark()
	require.NoError(t, repo.Create(context.Background(), mark))
	assert.NotEmpty(t, mark.ID)
	assert.False(t, mark.CreatedAt.IsZero())
	assert.Equal(t, mark.CreatedAt, mark.UpdatedAt)
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestMarkRepositoryCreateConflict(t *testing.T) {
	repo, mock, cleanup := newMarkRepoMock(t)
	defer cleanup()

	mock.ExpectExec(regexp.QuoteMeta("ON CONFLICT (register_number, exam_type) DO NOTHING")).
		WillReturnResult(sqlmock.NewResult(0, 0))

	err := repo.Create(context.Background(), sampleMark())
	require.ErrorIs(t, err, ErrDuplicateExam)
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestMarkRepositoryUpdate(t *testing.T) {
	repo, mock, cleanup := newMarkRepoMock(t)
	defer cleanup()

	mark := sampleMark()
	mark.ID = "9b2f8c1e-4d3a-4f7e-8a61-0c5d2e7f9a10"

	mock.ExpectExec(regexp.QuoteMeta("UPDATE student_marks SET")).
		WillReturnResult(sqlmock.NewResult(0, 1))
	require.NoError(t, repo.Update(context.Background(), mark))

	mock.ExpectExec(regexp.QuoteMeta("UPDATE student_marks SET")).
		WillReturnResult(sqlmock.NewResult(0, 0))
	err := repo.Update(context.Background(), mark)
	require.True(t, errors.Is(err, sql.ErrNoRows))

	mock.ExpectExec(regexp.QuoteMeta("UPDATE student_marks SET")).
		WillReturnError(&pq.Error{Code: "23505"})
	err = repo.Update(context.Background(), mark)
	require.ErrorIs(t, err, ErrDuplicateExam)

	require.NoError(t, mock.ExpectationsWereMet())
}

func TestMarkRepositoryFindByID(t *testing.T) {
	repo, mock, cleanup := newMarkRepoMock(t)
	defer cleanup()

	now := time.Now()
	rows := sqlmock.NewRows(markRowColumns).
		AddRow("id-1", "Aisha", "Rahman", "R-101", "10A", "Model Exam", []byte(`[{"subjectName":"Fiqh","mark":45}]`), now, now)
	mock.ExpectQuery(regexp.QuoteMeta("SELECT id, name, father_name")).
		WithArgs("id-1").
		WillReturnRows(rows)

	mark, err := repo.FindByID(context.Background(), "id-1")
	require.NoError(t, err)
	assert.Equal(t, "Aisha", mark.Name)
	require.Len(t, mark.Subjects, 1)
	assert.Equal(t, "Fiqh", mark.Subjects[0].SubjectName)
	assert.Equal(t, 45.0, mark.Subjects[0].Mark)

	mock.ExpectQuery(regexp.QuoteMeta("SELECT id, name, father_name")).
		WithArgs("missing").
		WillReturnError(sql.ErrNoRows)
	_, err = repo.FindByID(context.Background(), "missing")
	require.ErrorIs(t, err, sql.ErrNoRows)

	require.NoError(t, mock.ExpectationsWereMet())
}

func TestMarkRepositoryFindByRegisterNumber(t *testing.T) {
	repo, mock, cleanup := newMarkRepoMock(t)
	defer cleanup()

	now := time.Now()
	rows := sqlmock.NewRows(markRowColumns).
		AddRow("id-1", "Aisha", "", "R-101", "10A", "Internal / Series Exam", []byte(`[]`), now, now).
		AddRow("id-2", "Aisha", "", "R-101", "10A", "Model Exam", []byte(`[{"subjectName":"Fiqh","mark":30}]`), now, now)
	mock.ExpectQuery(regexp.QuoteMeta("WHERE register_number = $1 ORDER BY created_at ASC")).
		WithArgs("R-101").
		WillReturnRows(rows)

	marks, err := repo.FindByRegisterNumber(context.Background(), "R-101")
	require.NoError(t, err)
	require.Len(t, marks, 2)
	assert.Empty(t, marks[0].Subjects)
	assert.Equal(t, "Model Exam", marks[1].ExamType)
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestMarkRepositoryListAll(t *testing.T) {
	repo, mock, cleanup := newMarkRepoMock(t)
	defer cleanup()

	mock.ExpectQuery(regexp.QuoteMeta("ORDER BY updated_at DESC")).
		WillReturnRows(sqlmock.NewRows(markRowColumns))

	marks, err := repo.ListAll(context.Background())
	require.NoError(t, err)
	assert.Empty(t, marks)
	assert.NotNil(t, marks)

	mock.ExpectQuery(regexp.QuoteMeta("ORDER BY updated_at DESC")).
		WillReturnError(errors.New("connection reset"))
	_, err = repo.ListAll(context.Background())
	require.Error(t, err)

	require.NoError(t, mock.ExpectationsWereMet())
}

func TestMarkRepositoryRejectsCorruptSubjects(t *testing.T) {
	repo, mock, cleanup := newMarkRepoMock(t)
	defer cleanup()

	now := time.Now()
	rows := sqlmock.NewRows(markRowColumns).
		AddRow("id-1", "Aisha", "", "R-101", "10A", "Model Exam", []byte(`{"bad":true}`), now, now)
	mock.ExpectQuery(regexp.QuoteMeta("SELECT id, name, father_name")).
		WithArgs("id-1").
		WillReturnRows(rows)

	_, err := repo.FindByID(context.Background(), "id-1")
	require.Error(t, err)
}
