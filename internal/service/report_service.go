package service

import (
	"context"
	"fmt"
	"regexp"
	"strings"

	"go.uber.org/zap"

	"github.com/noah-isme/exam-marks-api/internal/dto"
	"github.com/noah-isme/exam-marks-api/internal/models"
	appErrors "github.com/noah-isme/exam-marks-api/pkg/errors"
	"github.com/noah-isme/exam-marks-api/pkg/export"
)

var unsafeFilename = regexp.MustCompile(`[^A-Za-z0-9_-]+`)

var csvHeaders = []string{
	"Register Number", "Name", "Father Name", "Class", "Exam Type",
	"Subject", "Max Mark", "Mark", "Grade", "Total", "Max Total", "Percentage", "Status",
}

type markFinder interface {
	CheckMark(ctx context.Context, req dto.CheckMarkRequest) (*dto.CheckMarkResponse, error)
	ListAllMarks(ctx context.Context) ([]models.StudentMark, error)
}

type csvRenderer interface {
	Render(data export.Dataset) ([]byte, error)
}

type cardRenderer interface {
	Render(cards []export.ReportCard) ([]byte, error)
}

// ReportService builds printable report cards and exports.
type ReportService struct {
	marks  markFinder
	csv    csvRenderer
	pdf    cardRenderer
	logger *zap.Logger
}

// NewReportService constructs a ReportService. Nil renderers fall back to the defaults.
func NewReportService(marks markFinder, header export.ReportHeader, logger *zap.Logger, csv csvRenderer, pdf cardRenderer) *ReportService {
	if logger == nil {
		logger = zap.NewNop()
	}
	if csv == nil {
		csv = export.NewCSVExporter()
	}
	if pdf == nil {
		pdf = export.NewReportCardPDF(header)
	}
	return &ReportService{marks: marks, csv: csv, pdf: pdf, logger: logger}
}

// BuildReportCard derives the graded rows and summary of a record.
func BuildReportCard(mark models.StudentMark) dto.ReportCard {
	rows := make([]dto.ReportRow, 0, len(mark.Subjects))
	for _, subject := range mark.Subjects {
		rows = append(rows, dto.ReportRow{
			SubjectName: subject.SubjectName,
			MaxMark:     models.MaxMarkPerSubject,
			Mark:        subject.Mark,
			Grade:       GradeOf(subject.Mark),
		})
	}
	return dto.ReportCard{StudentMark: mark, Rows: rows, Summary: Summarize(mark.Subjects)}
}

// Cards looks up a register number and returns a report card per record.
func (s *ReportService) Cards(ctx context.Context, req dto.CheckMarkRequest) (*dto.ReportResponse, error) {
	result, err := s.marks.CheckMark(ctx, req)
	if err != nil {
		return nil, err
	}
	cards := make([]dto.ReportCard, 0, len(result.Data))
	for _, mark := range result.Data {
		cards = append(cards, BuildReportCard(mark))
	}
	return &dto.ReportResponse{Found: result.Found, Data: cards, Message: result.Message}, nil
}

// PDF renders the report cards of a lookup. A miss is a not-found error here
// since there is nothing to print.
func (s *ReportService) PDF(ctx context.Context, req dto.CheckMarkRequest) (string, []byte, error) {
	report, err := s.Cards(ctx, req)
	if err != nil {
		return "", nil, err
	}
	if !report.Found {
		return "", nil, appErrors.Clone(appErrors.ErrNotFound, msgStudentNotFound)
	}

	cards := make([]export.ReportCard, 0, len(report.Data))
	for _, card := range report.Data {
		cards = append(cards, toPrintable(card))
	}
	payload, err := s.pdf.Render(cards)
	if err != nil {
		s.logger.Error("render report pdf failed", zap.String("register_number", req.RegisterNumber), zap.Error(err))
		return "", nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to render report")
	}
	return reportFilename(report.Data[0].RegisterNumber), payload, nil
}

// ExportCSV writes one line per subject of every record, with record totals repeated.
func (s *ReportService) ExportCSV(ctx context.Context) ([]byte, error) {
	marks, err := s.marks.ListAllMarks(ctx)
	if err != nil {
		return nil, err
	}
	data := export.Dataset{Headers: csvHeaders}
	for _, mark := range marks {
		summary := Summarize(mark.Subjects)
		base := []string{mark.RegisterNumber, mark.Name, mark.FatherName, mark.ClassName, mark.ExamType}
		tail := []string{FormatMark(summary.TotalEarned), FormatMark(summary.TotalMax), summary.PercentageLabel, summary.Status}
		if len(mark.Subjects) == 0 {
			data.Add(join(base, []string{"", "", "", ""}, tail)...)
			continue
		}
		for _, subject := range mark.Subjects {
			line := []string{subject.SubjectName, FormatMark(models.MaxMarkPerSubject), FormatMark(subject.Mark), GradeOf(subject.Mark)}
			data.Add(join(base, line, tail)...)
		}
	}
	payload, err := s.csv.Render(data)
	if err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to export marks")
	}
	s.logger.Info("marks exported", zap.Int("records", len(marks)), zap.Int("rows", len(data.Rows)))
	return payload, nil
}

func toPrintable(card dto.ReportCard) export.ReportCard {
	rows := make([]export.ReportRow, 0, len(card.Rows))
	for _, row := range card.Rows {
		rows = append(rows, export.ReportRow{
			Subject: row.SubjectName,
			MaxMark: FormatMark(row.MaxMark),
			Mark:    FormatMark(row.Mark),
			Grade:   row.Grade,
		})
	}
	return export.ReportCard{
		Name:           card.Name,
		FatherName:     card.FatherName,
		RegisterNumber: card.RegisterNumber,
		ClassName:      card.ClassName,
		ExamType:       card.ExamType,
		Rows:           rows,
		TotalMax:       FormatMark(card.Summary.TotalMax),
		TotalEarned:    FormatMark(card.Summary.TotalEarned),
		Percentage:     card.Summary.PercentageLabel,
		Passed:         card.Summary.Passed,
	}
}

func reportFilename(registerNumber string) string {
	safe := strings.Trim(unsafeFilename.ReplaceAllString(registerNumber, "_"), "_")
	if safe == "" {
		safe = "student"
	}
	return fmt.Sprintf("result_%s.pdf", safe)
}

func join(parts ...[]string) []string {
	var out []string
	for _, p := range parts {
		out = append(out, p...)
	}
	return out
}
