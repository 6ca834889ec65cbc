package service

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/pranav-ms/uni-records-api/internal/models"
	"github.com/pranav-ms/uni-records-api/internal/repository"
	appErrors "github.com/pranav-ms/uni-records-api/pkg/errors"
)

func snapshotWith(target *models.ClassSnapshot, current ...models.EnrolledCourse) repository.RegistrationSnapshot {
	return repository.RegistrationSnapshot{Target: target, Current: current}
}

func TestEvaluateEligibilityAdmits(t *testing.T) {
	target := &models.ClassSnapshot{ID: "class-1", Slot: "A1", Credits: 4, AvailableSeats: 10}
	err := evaluateEligibility("class-1", snapshotWith(target,
		models.EnrolledCourse{ClassID: "class-2", Slot: "B1", Credits: 4},
	))
	require.NoError(t, err)
}

func TestEvaluateEligibilityUnknownClass(t *testing.T) {
	err := evaluateEligibility("missing", snapshotWith(nil))
	assert.ErrorIs(t, err, appErrors.ErrClassNotFound)
}

func TestEvaluateEligibilityFullClass(t *testing.T) {
	target := &models.ClassSnapshot{ID: "class-1", Slot: "A1", Credits: 4, AvailableSeats: 0}
	err := evaluateEligibility("class-1", snapshotWith(target))
	assert.ErrorIs(t, err, appErrors.ErrClassFull)
}

func TestEvaluateEligibilityDuplicate(t *testing.T) {
	target := &models.ClassSnapshot{ID: "class-1", Slot: "A1", Credits: 4, AvailableSeats: 5}
	err := evaluateEligibility("class-1", snapshotWith(target,
		models.EnrolledCourse{ClassID: "class-1", Slot: "A1", Credits: 4},
	))
	assert.ErrorIs(t, err, appErrors.ErrAlreadyEnrolled)
}

func TestEvaluateEligibilitySlotConflict(t *testing.T) {
	target := &models.ClassSnapshot{ID: "class-1", Slot: "A1", Credits: 4, AvailableSeats: 5}
	err := evaluateEligibility("class-1", snapshotWith(target,
		models.EnrolledCourse{ClassID: "class-2", Slot: "A1", Credits: 4},
	))
	assert.ErrorIs(t, err, appErrors.ErrSlotConflict)
}

func TestEvaluateEligibilityCreditCeiling(t *testing.T) {
	target := &models.ClassSnapshot{ID: "class-1", Slot: "A1", Credits: 4, AvailableSeats: 5}
	err := evaluateEligibility("class-1", snapshotWith(target,
		models.EnrolledCourse{ClassID: "class-2", Slot: "B1", Credits: 12},
		models.EnrolledCourse{ClassID: "class-3", Slot: "C1", Credits: 12},
	))
	assert.ErrorIs(t, err, appErrors.ErrCreditLimitExceeded)
}

func TestEvaluateEligibilityExactCeilingAdmits(t *testing.T) {
	target := &models.ClassSnapshot{ID: "class-1", Slot: "A1", Credits: 3, AvailableSeats: 5}
	err := evaluateEligibility("class-1", snapshotWith(target,
		models.EnrolledCourse{ClassID: "class-2", Slot: "B1", Credits: 12},
		models.EnrolledCourse{ClassID: "class-3", Slot: "C1", Credits: 12},
	))
	require.NoError(t, err)
}

// The checks run in a fixed order; a snapshot failing several checks must
// surface the first one.
func TestEvaluateEligibilityOrder(t *testing.T) {
	// Full class AND duplicate AND slot clash: capacity wins.
	target := &models.ClassSnapshot{ID: "class-1", Slot: "A1", Credits: 4, AvailableSeats: 0}
	err := evaluateEligibility("class-1", snapshotWith(target,
		models.EnrolledCourse{ClassID: "class-1", Slot: "A1", Credits: 30},
	))
	assert.ErrorIs(t, err, appErrors.ErrClassFull)

	// Duplicate AND slot clash AND over-credit: duplicate wins.
	target.AvailableSeats = 3
	err = evaluateEligibility("class-1", snapshotWith(target,
		models.EnrolledCourse{ClassID: "class-1", Slot: "A1", Credits: 30},
	))
	assert.ErrorIs(t, err, appErrors.ErrAlreadyEnrolled)

	// Slot clash AND over-credit: slot clash wins.
	err = evaluateEligibility("class-1", snapshotWith(target,
		models.EnrolledCourse{ClassID: "class-2", Slot: "A1", Credits: 30},
	))
	assert.ErrorIs(t, err, appErrors.ErrSlotConflict)
}
