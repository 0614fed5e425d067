package service

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"
	"sync/atomic"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/noah-isme/exam-marks-api/internal/dto"
	"github.com/noah-isme/exam-marks-api/internal/models"
	"github.com/noah-isme/exam-marks-api/internal/repository"
	appErrors "github.com/noah-isme/exam-marks-api/pkg/errors"
	"github.com/noah-isme/exam-marks-api/pkg/validation"
)

const (
	lookupCachePrefix = "lookup:"

	msgRequiredFields  = "All required fields (Name, Register Number, Class, Exam Type) must be provided"
	msgRegisterMissing = "Register number is required"
	msgRecordNotFound  = "Record not found"
	msgStudentNotFound = "Student not found"
)

type markRepository interface {
	Create(ctx context.Context, mark *models.StudentMark) error
	Update(ctx context.Context, mark *models.StudentMark) error
	FindByID(ctx context.Context, id string) (*models.StudentMark, error)
	FindByRegisterNumber(ctx context.Context, registerNumber string) ([]models.StudentMark, error)
	ListAll(ctx context.Context) ([]models.StudentMark, error)
}

type lookupCache interface {
	Get(ctx context.Context, key string, dest interface{}) bool
	Set(ctx context.Context, key string, value interface{}, ttl time.Duration)
	Delete(ctx context.Context, keys ...string)
}

// MarkServiceConfig tunes the mark service.
type MarkServiceConfig struct {
	LookupCacheTTL time.Duration
}

// MarkService implements record administration and public lookup.
type MarkService struct {
	repo      markRepository
	cache     lookupCache
	metrics   *MetricsService
	validator *validation.Validator
	logger    *zap.Logger
	cfg       MarkServiceConfig

	// bumped after every successful write; lookups that overlap a write skip the cache fill
	writes atomic.Uint64
}

// NewMarkService constructs the mark service. cache and metrics may be nil.
func NewMarkService(repo markRepository, cache lookupCache, metrics *MetricsService, validate *validation.Validator, logger *zap.Logger, cfg MarkServiceConfig) *MarkService {
	if validate == nil {
		validate = validation.New()
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	return &MarkService{repo: repo, cache: cache, metrics: metrics, validator: validate, logger: logger, cfg: cfg}
}

// FilterSubjects drops placeholder rows: a subject needs a name and a mark.
func FilterSubjects(inputs []dto.SubjectInput) []models.Subject {
	subjects := make([]models.Subject, 0, len(inputs))
	for _, in := range inputs {
		name := strings.TrimSpace(in.SubjectName)
		if name == "" || !in.Mark.Valid {
			continue
		}
		subjects = append(subjects, models.Subject{SubjectName: name, Mark: in.Mark.Value})
	}
	return subjects
}

func normalizeRequest(req dto.MarkRequest) dto.MarkRequest {
	req.Name = strings.TrimSpace(req.Name)
	req.FatherName = strings.TrimSpace(req.FatherName)
	req.RegisterNumber = strings.TrimSpace(req.RegisterNumber)
	req.ClassName = strings.TrimSpace(req.ClassName)
	req.ExamType = strings.TrimSpace(req.ExamType)
	return req
}

func duplicateError(name, registerNumber, examType string) error {
	return appErrors.Clone(appErrors.ErrDuplicateExam,
		fmt.Sprintf("Student %s (%s) already has marks for %s.", name, registerNumber, examType))
}

// AddMark validates and stores a new record. A second record for the same
// register number and exam type is rejected with a duplicate error.
func (s *MarkService) AddMark(ctx context.Context, req dto.MarkRequest) (*models.StudentMark, error) {
	req = normalizeRequest(req)
	if details := s.validator.Struct(req); details != nil {
		return nil, appErrors.WithDetails(appErrors.Clone(appErrors.ErrValidation, msgRequiredFields), details)
	}
	if !models.IsExamType(req.ExamType) {
		return nil, appErrors.WithDetails(
			appErrors.Clone(appErrors.ErrValidation, fmt.Sprintf("Unknown exam type %q", req.ExamType)),
			map[string]string{"examType": "examType must be one of the listed exam types"},
		)
	}

	mark := &models.StudentMark{
		Name:           req.Name,
		FatherName:     req.FatherName,
		RegisterNumber: req.RegisterNumber,
		ClassName:      req.ClassName,
		ExamType:       req.ExamType,
		Subjects:       FilterSubjects(req.Subjects),
	}

	start := time.Now()
	err := s.repo.Create(ctx, mark)
	s.metrics.ObserveDBQuery("mark_create", time.Since(start))
	s.metrics.RecordMarkWrite("create", err)
	if err != nil {
		if errors.Is(err, repository.ErrDuplicateExam) {
			return nil, duplicateError(req.Name, req.RegisterNumber, req.ExamType)
		}
		s.logger.Error("add mark failed", zap.String("register_number", req.RegisterNumber), zap.Error(err))
		return nil, appErrors.Store(err, "Error adding mark")
	}

	s.invalidateLookups(ctx, mark.RegisterNumber)
	s.logger.Info("mark added",
		zap.String("id", mark.ID),
		zap.String("register_number", mark.RegisterNumber),
		zap.String("exam_type", mark.ExamType),
		zap.Int("subjects", len(mark.Subjects)),
	)
	return mark, nil
}

// UpdateMark overwrites every field of an existing record. Required fields are
// not re-validated; the store's uniqueness constraint still applies.
func (s *MarkService) UpdateMark(ctx context.Context, id string, req dto.MarkRequest) (*models.StudentMark, error) {
	subjects := FilterSubjects(req.Subjects)

	existing, err := s.find(ctx, id)
	if err != nil {
		return nil, err
	}

	previousRegister := existing.RegisterNumber
	req = normalizeRequest(req)
	existing.Name = req.Name
	existing.FatherName = req.FatherName
	existing.RegisterNumber = req.RegisterNumber
	existing.ClassName = req.ClassName
	existing.ExamType = req.ExamType
	existing.Subjects = subjects

	start := time.Now()
	err = s.repo.Update(ctx, existing)
	s.metrics.ObserveDBQuery("mark_update", time.Since(start))
	s.metrics.RecordMarkWrite("update", err)
	if err != nil {
		switch {
		case errors.Is(err, sql.ErrNoRows):
			return nil, appErrors.Clone(appErrors.ErrNotFound, msgRecordNotFound)
		case errors.Is(err, repository.ErrDuplicateExam):
			return nil, duplicateError(req.Name, req.RegisterNumber, req.ExamType)
		}
		s.logger.Error("update mark failed", zap.String("id", id), zap.Error(err))
		return nil, appErrors.Store(err, "Error updating mark")
	}

	s.invalidateLookups(ctx, previousRegister, existing.RegisterNumber)
	s.logger.Info("mark updated", zap.String("id", existing.ID), zap.String("register_number", existing.RegisterNumber))
	return existing, nil
}

// GetMark loads a single record for the edit form.
func (s *MarkService) GetMark(ctx context.Context, id string) (*models.StudentMark, error) {
	return s.find(ctx, id)
}

func (s *MarkService) find(ctx context.Context, id string) (*models.StudentMark, error) {
	if _, err := uuid.Parse(id); err != nil {
		return nil, appErrors.Clone(appErrors.ErrNotFound, msgRecordNotFound)
	}
	start := time.Now()
	mark, err := s.repo.FindByID(ctx, id)
	s.metrics.ObserveDBQuery("mark_find_by_id", time.Since(start))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, appErrors.Clone(appErrors.ErrNotFound, msgRecordNotFound)
		}
		return nil, appErrors.Store(err, "Error loading mark")
	}
	return mark, nil
}

// ListAllMarks returns every record, most recently updated first.
func (s *MarkService) ListAllMarks(ctx context.Context) ([]models.StudentMark, error) {
	start := time.Now()
	marks, err := s.repo.ListAll(ctx)
	s.metrics.ObserveDBQuery("mark_list_all", time.Since(start))
	if err != nil {
		s.logger.Error("list marks failed", zap.Error(err))
		return nil, appErrors.Store(err, "Error fetching marks")
	}
	if marks == nil {
		marks = []models.StudentMark{}
	}
	return marks, nil
}

// CheckMark finds every record of a register number. A miss is a normal
// result with Found=false, not an error.
func (s *MarkService) CheckMark(ctx context.Context, req dto.CheckMarkRequest) (*dto.CheckMarkResponse, error) {
	lookup := models.MarkLookup{
		RegisterNumber: strings.TrimSpace(req.RegisterNumber),
		Name:           strings.TrimSpace(req.Name),
	}
	if lookup.RegisterNumber == "" {
		return nil, appErrors.WithDetails(appErrors.Clone(appErrors.ErrValidation, msgRegisterMissing),
			map[string]string{"registerNumber": "registerNumber is a required field"})
	}

	records, err := s.recordsFor(ctx, lookup.RegisterNumber)
	if err != nil {
		return nil, err
	}

	if lookup.Name != "" {
		matched := make([]models.StudentMark, 0, len(records))
		for _, record := range records {
			if strings.EqualFold(strings.TrimSpace(record.Name), lookup.Name) {
				matched = append(matched, record)
			}
		}
		records = matched
	}

	found := len(records) > 0
	s.metrics.RecordLookup(found)
	if !found {
		return &dto.CheckMarkResponse{Found: false, Data: []models.StudentMark{}, Message: msgStudentNotFound}, nil
	}
	return &dto.CheckMarkResponse{Found: true, Data: records}, nil
}

func (s *MarkService) recordsFor(ctx context.Context, registerNumber string) ([]models.StudentMark, error) {
	key := lookupCachePrefix + registerNumber
	generation := s.writes.Load()
	var cached []models.StudentMark
	if s.cache != nil && s.cache.Get(ctx, key, &cached) {
		return cached, nil
	}

	start := time.Now()
	records, err := s.repo.FindByRegisterNumber(ctx, registerNumber)
	s.metrics.ObserveDBQuery("mark_find_by_register", time.Since(start))
	if err != nil {
		s.logger.Error("check mark failed", zap.String("register_number", registerNumber), zap.Error(err))
		return nil, appErrors.Store(err, "Server error")
	}
	if records == nil {
		records = []models.StudentMark{}
	}
	if s.cache != nil && s.writes.Load() == generation {
		s.cache.Set(ctx, key, records, s.cfg.LookupCacheTTL)
	}
	return records, nil
}

// invalidateLookups drops the cached lookups of every register number a write touched.
func (s *MarkService) invalidateLookups(ctx context.Context, registerNumbers ...string) {
	s.writes.Add(1)
	if s.cache == nil {
		return
	}
	keys := make([]string, 0, len(registerNumbers))
	seen := make(map[string]struct{}, len(registerNumbers))
	for _, reg := range registerNumbers {
		if _, ok := seen[reg]; ok {
			continue
		}
		seen[reg] = struct{}{}
		keys = append(keys, lookupCachePrefix+reg)
	}
	s.cache.Delete(ctx, keys...)
}
