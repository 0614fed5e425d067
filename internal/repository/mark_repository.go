package repository

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"
	"github.com/jmoiron/sqlx/types"
	"github.com/lib/pq"

	"github.com/noah-isme/exam-marks-api/internal/models"
)

// ErrDuplicateExam reports a second record for the same register number and exam.
var ErrDuplicateExam = errors.New("marks already recorded for register number and exam type")

const uniqueViolation = "23505"

const markColumns = "id, name, father_name, register_number, class_name, exam_type, subjects, created_at, updated_at"

type markRow struct {
	ID             string         `db:"id"`
	Name           string         `db:"name"`
	FatherName     string         `db:"father_name"`
	RegisterNumber string         `db:"register_number"`
	ClassName      string         `db:"class_name"`
	ExamType       string         `db:"exam_type"`
	Subjects       types.JSONText `db:"subjects"`
	CreatedAt      time.Time      `db:"created_at"`
	UpdatedAt      time.Time      `db:"updated_at"`
}

func newMarkRow(mark *models.StudentMark) (*markRow, error) {
	subjects := mark.Subjects
	if subjects == nil {
		subjects = []models.Subject{}
	}
	raw, err := json.Marshal(subjects)
	if err != nil {
		return nil, fmt.Errorf("encode subjects: %w", err)
	}
	return &markRow{
		ID:             mark.ID,
		Name:           mark.Name,
		FatherName:     mark.FatherName,
		RegisterNumber: mark.RegisterNumber,
		ClassName:      mark.ClassName,
		ExamType:       mark.ExamType,
		Subjects:       types.JSONText(raw),
		CreatedAt:      mark.CreatedAt,
		UpdatedAt:      mark.UpdatedAt,
	}, nil
}

func (r markRow) toModel() (models.StudentMark, error) {
	mark := models.StudentMark{
		ID:             r.ID,
		Name:           r.Name,
		FatherName:     r.FatherName,
		RegisterNumber: r.RegisterNumber,
		ClassName:      r.ClassName,
		ExamType:       r.ExamType,
		Subjects:       []models.Subject{},
		CreatedAt:      r.CreatedAt,
		UpdatedAt:      r.UpdatedAt,
	}
	if len(r.Subjects) > 0 {
		if err := r.Subjects.Unmarshal(&mark.Subjects); err != nil {
			return models.StudentMark{}, fmt.Errorf("decode subjects for %s: %w", r.ID, err)
		}
	}
	return mark, nil
}

func toModels(rows []markRow) ([]models.StudentMark, error) {
	marks := make([]models.StudentMark, 0, len(rows))
	for _, row := range rows {
		mark, err := row.toModel()
		if err != nil {
			return nil, err
		}
		marks = append(marks, mark)
	}
	return marks, nil
}

// MarkRepository persists student mark records.
type MarkRepository struct {
	db *sqlx.DB
}

// NewMarkRepository constructs a MarkRepository.
func NewMarkRepository(db *sqlx.DB) *MarkRepository {
	return &MarkRepository{db: db}
}

// Create inserts a record unless one already exists for its register number and exam type.
// The conflict check and the insert are a single statement.
func (r *MarkRepository) Create(ctx context.Context, mark *models.StudentMark) error {
	if mark.ID == "" {
		mark.ID = uuid.NewString()
	}
	now := time.Now().UTC()
	if mark.CreatedAt.IsZero() {
		mark.CreatedAt = now
	}
	mark.UpdatedAt = now

	row, err := newMarkRow(mark)
	if err != nil {
		return err
	}
	const query = `INSERT INTO student_marks (id, name, father_name, register_number, class_name, exam_type, subjects, created_at, updated_at)
        VALUES (:id, :name, :father_name, :register_number, :class_name, :exam_type, :subjects, :created_at, :updated_at)
        ON CONFLICT (register_number, exam_type) DO NOTHING`
	res, err := r.db.NamedExecContext(ctx, query, row)
	if err != nil {
		return fmt.Errorf("create mark: %w", err)
	}
	affected, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("create mark rows affected: %w", err)
	}
	if affected == 0 {
		return ErrDuplicateExam
	}
	return nil
}

// Update overwrites every mutable field of the record identified by mark.ID.
func (r *MarkRepository) Update(ctx context.Context, mark *models.StudentMark) error {
	mark.UpdatedAt = time.Now().UTC()
	row, err := newMarkRow(mark)
	if err != nil {
		return err
	}
	const query = `UPDATE student_marks SET name = :name, father_name = :father_name, register_number = :register_number,
        class_name = :class_name, exam_type = :exam_type, subjects = :subjects, updated_at = :updated_at WHERE id = :id`
	res, err := r.db.NamedExecContext(ctx, query, row)
	if err != nil {
		var pqErr *pq.Error
		if errors.As(err, &pqErr) && pqErr.Code == uniqueViolation {
			return ErrDuplicateExam
		}
		return fmt.Errorf("update mark: %w", err)
	}
	affected, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("update mark rows affected: %w", err)
	}
	if affected == 0 {
		return sql.ErrNoRows
	}
	return nil
}

// FindByID fetches a record by its identifier.
func (r *MarkRepository) FindByID(ctx context.Context, id string) (*models.StudentMark, error) {
	query := fmt.Sprintf("SELECT %s FROM student_marks WHERE id = $1", markColumns)
	var row markRow
	if err := r.db.GetContext(ctx, &row, query, id); err != nil {
		return nil, err
	}
	mark, err := row.toModel()
	if err != nil {
		return nil, err
	}
	return &mark, nil
}

// FindByRegisterNumber returns every exam record of a student in entry order.
func (r *MarkRepository) FindByRegisterNumber(ctx context.Context, registerNumber string) ([]models.StudentMark, error) {
	query := fmt.Sprintf("SELECT %s FROM student_marks WHERE register_number = $1 ORDER BY created_at ASC", markColumns)
	var rows []markRow
	if err := r.db.SelectContext(ctx, &rows, query, registerNumber); err != nil {
		return nil, fmt.Errorf("find marks by register number: %w", err)
	}
	return toModels(rows)
}

// ListAll returns every record, most recently updated first.
func (r *MarkRepository) ListAll(ctx context.Context) ([]models.StudentMark, error) {
	query := fmt.Sprintf("SELECT %s FROM student_marks ORDER BY updated_at DESC", markColumns)
	var rows []markRow
	if err := r.db.SelectContext(ctx, &rows, query); err != nil {
		return nil, fmt.Errorf("list marks: %w", err)
	}
	return toModels(rows)
}

// Ping checks store connectivity.
func (r *MarkRepository) Ping(ctx context.Context) error {
	if r.db == nil {
		return errors.New("database not configured")
	}
	return r.db.PingContext(ctx)
}
