package dto

import (
	"bytes"
	"encoding/json"
	"fmt"
	"strconv"
	"strings"

	"github.com/noah-isme/exam-marks-api/internal/models"
)

// MarkValue is a mark as posted by a form: a number, a numeric string, "" or null.
type MarkValue struct {
	Value float64
	Valid bool
}

// NewMarkValue wraps a present mark.
func NewMarkValue(v float64) MarkValue {
	return MarkValue{Value: v, Valid: true}
}

// UnmarshalJSON treats "" and null as a missing mark.
func (m *MarkValue) UnmarshalJSON(data []byte) error {
	data = bytes.TrimSpace(data)
	if len(data) == 0 || bytes.Equal(data, []byte("null")) {
		*m = MarkValue{}
		return nil
	}
	if data[0] == '"' {
		var raw string
		if err := json.Unmarshal(data, &raw); err != nil {
			return err
		}
		raw = strings.TrimSpace(raw)
		if raw == "" {
			*m = MarkValue{}
			return nil
		}
		v, err := strconv.ParseFloat(raw, 64)
		if err != nil {
			return fmt.Errorf("mark %q is not a number", raw)
		}
		*m = NewMarkValue(v)
		return nil
	}
	var v float64
	if err := json.Unmarshal(data, &v); err != nil {
		return fmt.Errorf("mark must be a number: %w", err)
	}
	*m = NewMarkValue(v)
	return nil
}

// MarshalJSON writes null for a missing mark.
func (m MarkValue) MarshalJSON() ([]byte, error) {
	if !m.Valid {
		return []byte("null"), nil
	}
	return json.Marshal(m.Value)
}

// SubjectInput is one subject row of the admin form.
type SubjectInput struct {
	SubjectName string    `json:"subjectName"`
	Mark        MarkValue `json:"mark"`
}

// MarkRequest is the admin add/update payload.
type MarkRequest struct {
	Name           string         `json:"name" validate:"required"`
	FatherName     string         `json:"fatherName"`
	RegisterNumber string         `json:"registerNumber" validate:"required"`
	ClassName      string         `json:"className" validate:"required"`
	ExamType       string         `json:"examType" validate:"required"`
	Subjects       []SubjectInput `json:"subjects"`
}

// CheckMarkRequest is the public lookup payload. Name is optional.
type CheckMarkRequest struct {
	RegisterNumber string `json:"registerNumber"`
	Name           string `json:"name"`
}

// CheckMarkResponse keeps the found/data shape clients rely on.
type CheckMarkResponse struct {
	Found   bool                 `json:"found"`
	Data    []models.StudentMark `json:"data"`
	Message string               `json:"message,omitempty"`
}

// HealthStatus is the liveness probe payload.
type HealthStatus struct {
	Status    string `json:"status"`
	Database  string `json:"database"`
	Cache     string `json:"cache,omitempty"`
	Timestamp string `json:"timestamp"`
}
