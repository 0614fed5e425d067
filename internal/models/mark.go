package models

import "time"

// MaxMarkPerSubject is the fixed ceiling for every subject on a report card.
const MaxMarkPerSubject = 50

// ExamType labels the assessment a record belongs to.
type ExamType string

const (
	ExamTypeInternal ExamType = "Internal / Series Exam"
	ExamTypeModel    ExamType = "Model Exam"
	ExamTypeFinal    ExamType = "Semester / Final Exam"
)

// ExamTypes lists the accepted exam labels in display order.
var ExamTypes = []ExamType{ExamTypeInternal, ExamTypeModel, ExamTypeFinal}

// IsExamType reports whether raw is one of the accepted labels.
func IsExamType(raw string) bool {
	for _, t := range ExamTypes {
		if string(t) == raw {
			return true
		}
	}
	return false
}

// Subject is one scored line of a record.
type Subject struct {
	SubjectName string  `json:"subjectName"`
	Mark        float64 `json:"mark"`
}

// StudentMark is the stored result of one student for one exam.
type StudentMark struct {
	ID             string    `db:"id" json:"id"`
	Name           string    `db:"name" json:"name"`
	FatherName     string    `db:"father_name" json:"fatherName"`
	RegisterNumber string    `db:"register_number" json:"registerNumber"`
	ClassName      string    `db:"class_name" json:"className"`
	ExamType       string    `db:"exam_type" json:"examType"`
	Subjects       []Subject `db:"-" json:"subjects"`
	CreatedAt      time.Time `db:"created_at" json:"createdAt"`
	UpdatedAt      time.Time `db:"updated_at" json:"updatedAt"`
}

// MarkLookup scopes a public result query.
type MarkLookup struct {
	RegisterNumber string
	Name           string
}
