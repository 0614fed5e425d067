package service

import (
	"fmt"
	"math"
	"strconv"

	"github.com/noah-isme/exam-marks-api/internal/dto"
	"github.com/noah-isme/exam-marks-api/internal/models"
)

// PassMark is the lowest mark a subject may have for the record to pass.
const PassMark = 18

const (
	StatusPassed = "PASSED"
	StatusFailed = "FAILED"
)

type gradeBand struct {
	min   float64
	grade string
}

// Inclusive lower bounds, highest first.
var gradeBands = []gradeBand{
	{min: 45, grade: "A+"},
	{min: 40, grade: "A"},
	{min: 35, grade: "B+"},
	{min: 30, grade: "B"},
	{min: 25, grade: "C+"},
	{min: 20, grade: "C"},
	{min: 18, grade: "D+"},
}

// GradeOf maps a mark out of 50 to its letter grade.
func GradeOf(mark float64) string {
	for _, band := range gradeBands {
		if mark >= band.min {
			return band.grade
		}
	}
	return "D"
}

// IsPassed reports whether every subject reached PassMark. A record without subjects fails.
func IsPassed(subjects []models.Subject) bool {
	if len(subjects) == 0 {
		return false
	}
	for _, subject := range subjects {
		if subject.Mark < PassMark {
			return false
		}
	}
	return true
}

// Summarize computes totals, percentage and pass status for a record.
func Summarize(subjects []models.Subject) dto.ResultSummary {
	summary := dto.ResultSummary{SubjectCount: len(subjects)}
	for _, subject := range subjects {
		summary.TotalEarned += subject.Mark
	}
	summary.TotalMax = float64(len(subjects) * models.MaxMarkPerSubject)

	var pct float64
	if summary.TotalMax > 0 {
		pct = summary.TotalEarned / summary.TotalMax * 100
	}
	summary.Percentage = math.Round(pct*10) / 10
	summary.PercentageLabel = FormatPercentage(summary.Percentage)
	summary.Passed = IsPassed(subjects)
	summary.Status = StatusFailed
	if summary.Passed {
		summary.Status = StatusPassed
	}
	return summary
}

// FormatPercentage renders a percentage with one decimal place.
func FormatPercentage(pct float64) string {
	return fmt.Sprintf("%.1f%%", pct)
}

// FormatMark renders a mark without trailing zeros.
func FormatMark(mark float64) string {
	return strconv.FormatFloat(mark, 'f', -1, 64)
}
