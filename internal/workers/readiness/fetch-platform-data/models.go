// internal/workers/readiness/fetch-platform-data/models.go
package fetchplatformdata

import (
	"readiness-workers/internal/common/validation"
	"readiness-workers/internal/models"
)

// Input is the candidate profile as carried in the process variables.
type Input struct {
	models.Profile
}

type Output struct {
	PlatformData *models.PlatformMetrics `json:"platformData"`
}

var inputValidator = validation.MustValidator(validation.ProfileSchema())
