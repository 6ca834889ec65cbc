package service

import (
	"context"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/pranav-ms/uni-records-api/internal/models"
	appErrors "github.com/pranav-ms/uni-records-api/pkg/errors"
)

type fakeRecordsSource struct {
	records []models.AcademicRecord
}

func (f *fakeRecordsSource) ListAcademicRecords(ctx context.Context, studentID string) ([]models.AcademicRecord, error) {
	return f.records, nil
}

func sampleRoster() []models.RosterEntry {
	marks := 87.5
	grade := models.GradeA
	return []models.RosterEntry{
		{StudentID: "stu-1", FullName: "Asha K", Username: "asha", Marks: &marks, Grade: &grade, AttendancePercentage: 92.31},
		{StudentID: "stu-2", FullName: "Vikram S", Username: "vikram", AttendancePercentage: 80},
	}
}

func TestAcademicRecords(t *testing.T) {
	source := &fakeRecordsSource{records: []models.AcademicRecord{
		{CourseCode: "CS101", CourseName: "Programming", Slot: "A1", Credits: 4},
	}}
	svc := NewRecordsService(source, zap.NewNop())

	records, err := svc.AcademicRecords(context.Background(), "stu-1")
	require.NoError(t, err)
	require.Len(t, records, 1)
	assert.Nil(t, records[0].Grade, "ungraded enrollment keeps null grade")
}

func TestExportRosterCSV(t *testing.T) {
	svc := NewRecordsService(&fakeRecordsSource{}, zap.NewNop())

	result, err := svc.ExportRoster("class-1", sampleRoster(), ExportCSV)
	require.NoError(t, err)
	assert.Equal(t, "text/csv", result.ContentType)
	assert.Equal(t, "roster-class-1.csv", result.Filename)

	body := string(result.Content)
	lines := strings.Split(strings.TrimSpace(body), "\n")
	require.Len(t, lines, 3)
	assert.Contains(t, lines[1], "87.50")
	assert.Contains(t, lines[1], "A")
	// Ungraded students export with empty marks and grade cells.
	assert.Contains(t, lines[2], ",,")
}

func TestExportRosterPDF(t *testing.T) {
	svc := NewRecordsService(&fakeRecordsSource{}, zap.NewNop())

	result, err := svc.ExportRoster("class-1", sampleRoster(), ExportPDF)
	require.NoError(t, err)
	assert.Equal(t, "application/pdf", result.ContentType)
	assert.Equal(t, "roster-class-1.pdf", result.Filename)
	assert.True(t, strings.HasPrefix(string(result.Content), "%PDF"))
}

func TestExportRosterUnknownFormat(t *testing.T) {
	svc := NewRecordsService(&fakeRecordsSource{}, zap.NewNop())
	_, err := svc.ExportRoster("class-1", sampleRoster(), ExportFormat("xlsx"))
	assert.Equal(t, appErrors.ErrValidation.Code, appErrors.FromError(err).Code)
}
