package service

import (
	"context"
	"database/sql"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/pranav-ms/uni-records-api/internal/models"
	"github.com/pranav-ms/uni-records-api/internal/repository"
	appErrors "github.com/pranav-ms/uni-records-api/pkg/errors"
)

type fakeCatalogStore struct {
	courses map[string]*models.Course
	classes map[string]*models.Class
}

func newFakeCatalogStore() *fakeCatalogStore {
	return &fakeCatalogStore{
		courses: make(map[string]*models.Course),
		classes: make(map[string]*models.Class),
	}
}

func (f *fakeCatalogStore) FindCourseByCode(ctx context.Context, code string) (*models.Course, error) {
	course, ok := f.courses[code]
	if !ok {
		return nil, sql.ErrNoRows
	}
	return course, nil
}

func (f *fakeCatalogStore) CreateCourse(ctx context.Context, course *models.Course) error {
	if _, exists := f.courses[course.Code]; exists {
		return repository.ErrDuplicateCourse
	}
	f.courses[course.Code] = course
	return nil
}

func (f *fakeCatalogStore) FindClassByID(ctx context.Context, id string) (*models.Class, error) {
	class, ok := f.classes[id]
	if !ok {
		return nil, sql.ErrNoRows
	}
	return class, nil
}

func (f *fakeCatalogStore) CreateClass(ctx context.Context, class *models.Class) error {
	if class.ID == "" {
		class.ID = "class-" + class.CourseCode
	}
	class.AvailableSeats = class.TotalSeats
	f.classes[class.ID] = class
	return nil
}

func (f *fakeCatalogStore) FacultyTeachesSlot(ctx context.Context, facultyID, slot string) (bool, error) {
	for _, class := range f.classes {
		if class.FacultyID == facultyID && class.Slot == slot {
			return true, nil
		}
	}
	return false, nil
}

func (f *fakeCatalogStore) ListClasses(ctx context.Context) ([]models.ClassDetail, error) {
	var out []models.ClassDetail
	for _, class := range f.classes {
		out = append(out, models.ClassDetail{Class: *class})
	}
	return out, nil
}

type fakeAccountReader struct {
	users map[string]*models.User
}

func (f *fakeAccountReader) FindByID(ctx context.Context, id string) (*models.User, error) {
	user, ok := f.users[id]
	if !ok {
		return nil, sql.ErrNoRows
	}
	return user, nil
}

func newCatalogFixture() (*CatalogService, *fakeCatalogStore) {
	store := newFakeCatalogStore()
	accounts := &fakeAccountReader{users: map[string]*models.User{
		"fac-1": {ID: "fac-1", Role: models.RoleFaculty, FullName: "Dr. Rao"},
		"stu-1": {ID: "stu-1", Role: models.RoleStudent},
	}}
	return NewCatalogService(store, accounts, nil, zap.NewNop()), store
}

func TestCreateCourse(t *testing.T) {
	svc, store := newCatalogFixture()

	course, err := svc.CreateCourse(context.Background(), CreateCourseRequest{Code: "CS101", Name: "Programming", Credits: 4})
	require.NoError(t, err)
	assert.Equal(t, "CS101", course.Code)
	assert.Contains(t, store.courses, "CS101")

	_, err = svc.CreateCourse(context.Background(), CreateCourseRequest{Code: "CS101", Name: "Programming", Credits: 4})
	assert.Equal(t, appErrors.ErrConflict.Code, appErrors.FromError(err).Code)
}

func TestOpenClass(t *testing.T) {
	svc, store := newCatalogFixture()
	_, err := svc.CreateCourse(context.Background(), CreateCourseRequest{Code: "CS101", Name: "Programming", Credits: 4})
	require.NoError(t, err)

	class, err := svc.OpenClass(context.Background(), OpenClassRequest{
		CourseCode: "CS101", FacultyID: "fac-1", Slot: "A1", TotalSeats: 60,
	})
	require.NoError(t, err)
	assert.Equal(t, 60, class.AvailableSeats, "all seats start available")
	assert.Contains(t, store.classes, class.ID)
}

func TestOpenClassUnknownCourse(t *testing.T) {
	svc, _ := newCatalogFixture()
	_, err := svc.OpenClass(context.Background(), OpenClassRequest{
		CourseCode: "NOPE", FacultyID: "fac-1", Slot: "A1", TotalSeats: 60,
	})
	assert.Equal(t, appErrors.ErrNotFound.Code, appErrors.FromError(err).Code)
}

func TestOpenClassRejectsNonFaculty(t *testing.T) {
	svc, _ := newCatalogFixture()
	_, err := svc.CreateCourse(context.Background(), CreateCourseRequest{Code: "CS101", Name: "Programming", Credits: 4})
	require.NoError(t, err)

	_, err = svc.OpenClass(context.Background(), OpenClassRequest{
		CourseCode: "CS101", FacultyID: "stu-1", Slot: "A1", TotalSeats: 60,
	})
	assert.Equal(t, appErrors.ErrValidation.Code, appErrors.FromError(err).Code)
}

func TestOpenClassUnknownSlot(t *testing.T) {
	svc, _ := newCatalogFixture()
	_, err := svc.OpenClass(context.Background(), OpenClassRequest{
		CourseCode: "CS101", FacultyID: "fac-1", Slot: "Z9", TotalSeats: 60,
	})
	assert.Equal(t, appErrors.ErrValidation.Code, appErrors.FromError(err).Code)
}

func TestOpenClassFacultySlotClash(t *testing.T) {
	svc, _ := newCatalogFixture()
	_, err := svc.CreateCourse(context.Background(), CreateCourseRequest{Code: "CS101", Name: "Programming", Credits: 4})
	require.NoError(t, err)
	_, err = svc.CreateCourse(context.Background(), CreateCourseRequest{Code: "CS201", Name: "Algorithms", Credits: 4})
	require.NoError(t, err)

	_, err = svc.OpenClass(context.Background(), OpenClassRequest{
		CourseCode: "CS101", FacultyID: "fac-1", Slot: "A1", TotalSeats: 60,
	})
	require.NoError(t, err)

	_, err = svc.OpenClass(context.Background(), OpenClassRequest{
		CourseCode: "CS201", FacultyID: "fac-1", Slot: "A1", TotalSeats: 60,
	})
	assert.Equal(t, appErrors.ErrConflict.Code, appErrors.FromError(err).Code)
}
