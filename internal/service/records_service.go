package service

import (
	"context"
	"fmt"
	"strconv"

	"go.uber.org/zap"

	"github.com/pranav-ms/uni-records-api/internal/models"
	appErrors "github.com/pranav-ms/uni-records-api/pkg/errors"
	"github.com/pranav-ms/uni-records-api/pkg/export"
)

type recordsSource interface {
	ListAcademicRecords(ctx context.Context, studentID string) ([]models.AcademicRecord, error)
}

// ExportFormat selects the roster export renderer.
type ExportFormat string

// Supported export formats.
const (
	ExportCSV ExportFormat = "csv"
	ExportPDF ExportFormat = "pdf"
)

// ExportResult carries rendered bytes with their content type and filename.
type ExportResult struct {
	Content     []byte
	ContentType string
	Filename    string
}

// RecordsService renders academic record views and roster exports.
type RecordsService struct {
	enrollments recordsSource
	csv         *export.CSVExporter
	pdf         *export.PDFExporter
	logger      *zap.Logger
}

// NewRecordsService constructs RecordsService.
func NewRecordsService(enrollments recordsSource, logger *zap.Logger) *RecordsService {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &RecordsService{
		enrollments: enrollments,
		csv:         export.NewCSVExporter(),
		pdf:         export.NewPDFExporter(),
		logger:      logger,
	}
}

// AcademicRecords returns all of a student's enrollments with marks, grades
// and attendance. Ungraded enrollments appear with null marks and grade.
func (s *RecordsService) AcademicRecords(ctx context.Context, studentID string) ([]models.AcademicRecord, error) {
	records, err := s.enrollments.ListAcademicRecords(ctx, studentID)
	if err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to load academic records")
	}
	return records, nil
}

// ExportRoster renders a class roster in the requested format.
func (s *RecordsService) ExportRoster(classID string, roster []models.RosterEntry, format ExportFormat) (*ExportResult, error) {
	dataset := rosterDataset(roster)
	switch format {
	case ExportCSV:
		content, err := s.csv.Render(dataset)
		if err != nil {
			return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to render csv")
		}
		return &ExportResult{
			Content:     content,
			ContentType: "text/csv",
			Filename:    fmt.Sprintf("roster-%s.csv", classID),
		}, nil
	case ExportPDF:
		content, err := s.pdf.Render(dataset, fmt.Sprintf("Class Roster %s", classID))
		if err != nil {
			return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to render pdf")
		}
		return &ExportResult{
			Content:     content,
			ContentType: "application/pdf",
			Filename:    fmt.Sprintf("roster-%s.pdf", classID),
		}, nil
	default:
		return nil, appErrors.Clone(appErrors.ErrValidation, "unsupported export format")
	}
}

func rosterDataset(roster []models.RosterEntry) export.Dataset {
	rows := make([][]string, 0, len(roster))
	for _, entry := range roster {
		marks := ""
		if entry.Marks != nil {
			marks = strconv.FormatFloat(*entry.Marks, 'f', 2, 64)
		}
		grade := ""
		if entry.Grade != nil {
			grade = string(*entry.Grade)
		}
		rows = append(rows, []string{
			entry.StudentID,
			entry.FullName,
			entry.Username,
			marks,
			grade,
			strconv.FormatFloat(entry.AttendancePercentage, 'f', 2, 64),
		})
	}
	return export.Dataset{
		Headers: []string{"Student ID", "Name", "Username", "Marks", "Grade", "Attendance %"},
		Rows:    rows,
	}
}
