package service

import (
	"context"
	"errors"
	"sort"
	"strings"
	"time"

	"go.uber.org/zap"

	"github.com/pranav-ms/uni-records-api/internal/models"
	appErrors "github.com/pranav-ms/uni-records-api/pkg/errors"
)

type timetableSource interface {
	TimetableRows(ctx context.Context, studentID string) ([]models.TimetableRow, error)
}

type viewCache interface {
	Get(ctx context.Context, key string, dest interface{}) error
	Set(ctx context.Context, key string, value interface{}, ttl time.Duration) error
	Delete(ctx context.Context, key string) error
}

var dayOrder = map[string]int{
	"Monday":    0,
	"Tuesday":   1,
	"Wednesday": 2,
	"Thursday":  3,
	"Friday":    4,
	"Saturday":  5,
	"Sunday":    6,
}

// TimetableService composes a student's weekly timetable from their
// enrollments and the static slot table. Composed views are cached; the
// cache is invalidated whenever the student's enrollments change.
type TimetableService struct {
	enrollments timetableSource
	cache       viewCache
	cacheTTL    time.Duration
	logger      *zap.Logger
}

// NewTimetableService constructs TimetableService.
func NewTimetableService(enrollments timetableSource, cache viewCache, cacheTTL time.Duration, logger *zap.Logger) *TimetableService {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &TimetableService{enrollments: enrollments, cache: cache, cacheTTL: cacheTTL, logger: logger}
}

func timetableCacheKey(studentID string) string {
	return "timetable:" + studentID
}

// ForStudent returns the student's timetable sorted by weekday and start
// time. The cached copy is served when present; composition only hits the
// database on a miss.
func (s *TimetableService) ForStudent(ctx context.Context, studentID string) ([]models.TimetableEntry, error) {
	key := timetableCacheKey(studentID)
	if s.cache != nil {
		var cached []models.TimetableEntry
		err := s.cache.Get(ctx, key, &cached)
		if err == nil {
			return cached, nil
		}
		if !errors.Is(err, appErrors.ErrCacheMiss) {
			s.logger.Warn("timetable cache read failed", zap.String("student_id", studentID), zap.Error(err))
		}
	}

	rows, err := s.enrollments.TimetableRows(ctx, studentID)
	if err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to load enrollments")
	}

	entries := composeTimetable(rows)

	if s.cache != nil {
		if err := s.cache.Set(ctx, key, entries, s.cacheTTL); err != nil {
			s.logger.Warn("timetable cache write failed", zap.String("student_id", studentID), zap.Error(err))
		}
	}
	return entries, nil
}

// Invalidate drops the student's cached timetable. Failures are logged and
// swallowed: a stale entry expires on its own TTL.
func (s *TimetableService) Invalidate(ctx context.Context, studentID string) {
	if s.cache == nil {
		return
	}
	if err := s.cache.Delete(ctx, timetableCacheKey(studentID)); err != nil {
		s.logger.Warn("timetable cache invalidation failed", zap.String("student_id", studentID), zap.Error(err))
	}
}

func composeTimetable(rows []models.TimetableRow) []models.TimetableEntry {
	entries := make([]models.TimetableEntry, 0, len(rows)*2)
	for _, row := range rows {
		for _, session := range SlotSessions(row.Slot) {
			entries = append(entries, models.TimetableEntry{
				CourseCode:  row.CourseCode,
				CourseName:  row.CourseName,
				FacultyName: row.FacultyName,
				Slot:        row.Slot,
				Day:         session.Day,
				Time:        session.Time,
			})
		}
	}

	sort.SliceStable(entries, func(i, j int) bool {
		if dayOrder[entries[i].Day] != dayOrder[entries[j].Day] {
			return dayOrder[entries[i].Day] < dayOrder[entries[j].Day]
		}
		return sessionStart(entries[i].Time).Before(sessionStart(entries[j].Time))
	})
	return entries
}

// sessionStart parses the leading clock time of a "08:00 AM - 08:50 AM"
// range. Unparseable values sort first rather than erroring out.
func sessionStart(window string) time.Time {
	start, _, _ := strings.Cut(window, " - ")
	t, err := time.Parse("03:04 PM", strings.TrimSpace(start))
	if err != nil {
		return time.Time{}
	}
	return t
}
