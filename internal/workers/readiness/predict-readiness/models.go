// internal/workers/readiness/predict-readiness/models.go
package predictreadiness

import (
	"readiness-workers/internal/common/validation"
	"readiness-workers/internal/models"
)

// Input is a profile plus, optionally, metrics from an earlier
// fetch-platform-data step. Without platformData the worker fetches itself.
type Input struct {
	models.Profile
	PlatformData *models.PlatformMetrics `json:"platformData,omitempty"`
}

type Output struct {
	Prediction   *models.PredictionResult `json:"prediction"`
	PlatformData *models.PlatformMetrics  `json:"platformData"`
}

var inputValidator = validation.MustValidator(inputSchema())

func inputSchema() map[string]interface{} {
	schema := validation.ProfileSchema()
	schema["properties"].(map[string]interface{})["platformData"] = validation.PlatformMetricsSchema()
	return schema
}
