package service

import (
	"github.com/pranav-ms/uni-records-api/internal/repository"
	appErrors "github.com/pranav-ms/uni-records-api/pkg/errors"
)

// MaxCreditLoad is the ceiling on a student's summed enrolled credits.
const MaxCreditLoad = 27

// evaluateEligibility is the pure admission decision. It inspects only the
// snapshot it is given and must be re-run against a fresh snapshot inside the
// commit region, since an earlier snapshot may be stale by commit time.
// Checks run in a fixed order; the first failure wins.
func evaluateEligibility(candidateClassID string, snapshot repository.RegistrationSnapshot) error {
	target := snapshot.Target
	if target == nil {
		return appErrors.ErrClassNotFound
	}
	if target.AvailableSeats <= 0 {
		return appErrors.ErrClassFull
	}

	currentCredits := 0
	for _, enrolled := range snapshot.Current {
		if enrolled.ClassID == candidateClassID {
			return appErrors.ErrAlreadyEnrolled
		}
		currentCredits += enrolled.Credits
	}
	for _, enrolled := range snapshot.Current {
		if enrolled.Slot == target.Slot {
			return appErrors.ErrSlotConflict
		}
	}
	if currentCredits+target.Credits > MaxCreditLoad {
		return appErrors.ErrCreditLimitExceeded
	}

	return nil
}
