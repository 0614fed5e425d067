package service

import (
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/noah-isme/exam-marks-api/internal/models"
)

func TestGradeOfBoundaries(t *testing.T) {
	cases := []struct {
		mark  float64
		grade string
	}{
		{50, "A+"}, {45, "A+"}, {44.9, "A"}, {40, "A"},
		{39, "B+"}, {35, "B+"}, {30, "B"}, {25, "C+"},
		{20, "C"}, {19.5, "D+"}, {18, "D+"}, {17, "D"}, {0, "D"},
	}
	for _, tc := range cases {
		assert.Equal(t, tc.grade, GradeOf(tc.mark), "mark %v", tc.mark)
	}
}

func TestIsPassed(t *testing.T) {
	assert.False(t, IsPassed(nil))
	assert.False(t, IsPassed([]models.Subject{{SubjectName: "Fiqh", Mark: 10}, {SubjectName: "Tajweed", Mark: 20}}))
	assert.True(t, IsPassed([]models.Subject{{SubjectName: "Fiqh", Mark: 18}, {SubjectName: "Tajweed", Mark: 45}}))
}

func TestSummarize(t *testing.T) {
	summary := Summarize([]models.Subject{{SubjectName: "Fiqh", Mark: 18}, {SubjectName: "Tajweed", Mark: 45}})
	assert.Equal(t, 2, summary.SubjectCount)
	assert.Equal(t, 63.0, summary.TotalEarned)
	assert.Equal(t, 100.0, summary.TotalMax)
	assert.Equal(t, 63.0, summary.Percentage)
	assert.Equal(t, "63.0%", summary.PercentageLabel)
	assert.True(t, summary.Passed)
	assert.Equal(t, StatusPassed, summary.Status)

	failed := Summarize([]models.Subject{{SubjectName: "Fiqh", Mark: 10}, {SubjectName: "Tajweed", Mark: 20}})
	assert.Equal(t, "30.0%", failed.PercentageLabel)
	assert.Equal(t, StatusFailed, failed.Status)
}

func TestSummarizeEmpty(t *testing.T) {
	summary := Summarize(nil)
	assert.Zero(t, summary.TotalMax)
	assert.Equal(t, "0.0%", summary.PercentageLabel)
	assert.False(t, summary.Passed)
	assert.Equal(t, StatusFailed, summary.Status)
}

func TestSummarizeRoundsPercentage(t *testing.T) {
	summary := Summarize([]models.Subject{{SubjectName: "A", Mark: 33}, {SubjectName: "B", Mark: 34}, {SubjectName: "C", Mark: 35}})
	assert.Equal(t, "68.0%", summary.PercentageLabel)

	summary = Summarize([]models.Subject{{SubjectName: "A", Mark: 20}, {SubjectName: "B", Mark: 21}, {SubjectName: "C", Mark: 22}})
	assert.Equal(t, 42.0, summary.Percentage)

	summary = Summarize([]models.Subject{{SubjectName: "A", Mark: 19}, {SubjectName: "B", Mark: 20}, {SubjectName: "C", Mark: 20}})
	assert.Equal(t, 39.3, summary.Percentage)
	assert.Equal(t, "39.3%", summary.PercentageLabel)

	cases := []struct {
		marks []float64
		label string
	}{
		{[]float64{49, 0, 0, 0, 0, 0, 0, 0}, "12.3%"},
		{[]float64{24.25, 0}, "24.3%"},
		{[]float64{40.125}, "80.3%"},
	}
	for _, tc := range cases {
		subjects := make([]models.Subject, 0, len(tc.marks))
		for i, mark := range tc.marks {
			subjects = append(subjects, models.Subject{SubjectName: fmt.Sprintf("S%d", i), Mark: mark})
		}
		summary := Summarize(subjects)
		assert.Equal(t, tc.label, summary.PercentageLabel, "marks %v", tc.marks)
		assert.Equal(t, FormatPercentage(summary.Percentage), summary.PercentageLabel)
	}
}

func TestFormatMark(t *testing.T) {
	assert.Equal(t, "45", FormatMark(45))
	assert.Equal(t, "17.5", FormatMark(17.5))
}
