package readiness

import (
	"fmt"
	"math"

	"readiness-workers/internal/common/errors"
	"readiness-workers/internal/models"
)

// ValidateProfile enforces the pipeline precondition. A positive cgpa is the
// only required field; the other checks reject values no formula can use.
func ValidateProfile(profile *models.Profile) error {
	if profile == nil {
		return errors.NewProfileInvalidError("profile is required")
	}

	switch {
	case math.IsNaN(profile.CGPA) || math.IsInf(profile.CGPA, 0):
		return invalid("cgpa", "cgpa must be a number")
	case profile.CGPA <= 0:
		return invalid("cgpa", "cgpa must be a positive number")
	case profile.CGPA > 10:
		return invalid("cgpa", fmt.Sprintf("cgpa %.2f exceeds 10", profile.CGPA))
	case profile.ProjectCount < 0:
		return invalid("projectCount", "projectCount must not be negative")
	case math.IsNaN(profile.WorkExperience) || math.IsInf(profile.WorkExperience, 0) || profile.WorkExperience < 0:
		return invalid("workExperience", "workExperience must not be negative")
	case profile.EnglishProficiency != "" && !profile.EnglishProficiency.Valid():
		return invalid("englishProficiency", fmt.Sprintf("unknown englishProficiency %q", profile.EnglishProficiency))
	}
	return nil
}

func invalid(field, details string) error {
	return errors.NewProfileInvalidError(details).WithMetadata("field", field)
}
