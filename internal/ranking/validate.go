// internal/ranking/validate.go
package ranking

import (
	"fmt"

	apperrors "consult-ranking/internal/common/errors"
	"consult-ranking/internal/models"
)

// ValidateQuery rejects malformed queries before any store is touched.
// Bounds are never silently swapped; a min above max is the caller's bug.
func ValidateQuery(q *models.Query) error {
	if q == nil {
		return apperrors.NewInvalidQueryError("query is nil")
	}
	if !models.ValidDeviceType(q.DeviceType) {
		return apperrors.NewInvalidQueryError(fmt.Sprintf("unknown device type %q", q.DeviceType))
	}
	if q.MinBudget != nil && *q.MinBudget < 0 {
		return apperrors.NewInvalidQueryError(fmt.Sprintf("negative min budget %d", *q.MinBudget))
	}
	if q.MaxBudget != nil && *q.MaxBudget < 0 {
		return apperrors.NewInvalidQueryError(fmt.Sprintf("negative max budget %d", *q.MaxBudget))
	}
	if q.MinBudget != nil && q.MaxBudget != nil && *q.MinBudget > *q.MaxBudget {
		return apperrors.NewInvalidQueryError(fmt.Sprintf("min budget %d exceeds max budget %d", *q.MinBudget, *q.MaxBudget))
	}
	return nil
}
