package dto

import "github.com/noah-isme/exam-marks-api/internal/models"

// ResultSummary is the derived outcome of one record.
type ResultSummary struct {
	SubjectCount    int     `json:"subjectCount"`
	TotalEarned     float64 `json:"totalEarned"`
	TotalMax        float64 `json:"totalMax"`
	Percentage      float64 `json:"percentage"`
	PercentageLabel string  `json:"percentageLabel"`
	Passed          bool    `json:"isPassed"`
	Status          string  `json:"status"`
}

// ReportRow is a subject line on a report card.
type ReportRow struct {
	SubjectName string  `json:"subjectName"`
	MaxMark     float64 `json:"maxMark"`
	Mark        float64 `json:"mark"`
	Grade       string  `json:"grade"`
}

// ReportCard is a record rendered for printing.
type ReportCard struct {
	models.StudentMark
	Rows    []ReportRow   `json:"rows"`
	Summary ResultSummary `json:"summary"`
}

// ReportResponse wraps the cards of a lookup.
type ReportResponse struct {
	Found   bool         `json:"found"`
	Data    []ReportCard `json:"data"`
	Message string       `json:"message,omitempty"`
}

// MarkListItem is a record in the admin browse list.
type MarkListItem struct {
	models.StudentMark
	ClassLabel string        `json:"classLabel"`
	Summary    ResultSummary `json:"summary"`
}

// ClassGroup bundles the records of one class.
type ClassGroup struct {
	ClassName   string         `json:"className"`
	ClassLabel  string         `json:"classLabel"`
	Count       int            `json:"count"`
	PassedCount int            `json:"passedCount"`
	Records     []MarkListItem `json:"records"`
}

// BrowseFilter holds the admin list query parameters.
type BrowseFilter struct {
	Class    string `form:"class"`
	Page     int    `form:"page"`
	PageSize int    `form:"page_size"`
}
