// internal/workers/readiness/save-analysis/models.go
package saveanalysis

import (
	"readiness-workers/internal/common/validation"
	"readiness-workers/internal/models"
)

type Input struct {
	models.Profile
	PlatformData *models.PlatformMetrics  `json:"platformData,omitempty"`
	Prediction   *models.PredictionResult `json:"prediction"`
}

type Output struct {
	AnalysisID string `json:"analysisId"`
	CreatedAt  string `json:"createdAt"`
}

var inputValidator = validation.MustValidator(inputSchema())

func inputSchema() map[string]interface{} {
	schema := validation.ProfileSchema()
	schema["required"] = []interface{}{"cgpa", "prediction"}

	props := schema["properties"].(map[string]interface{})
	props["platformData"] = validation.PlatformMetricsSchema()
	props["prediction"] = map[string]interface{}{
		"type":     "object",
		"required": []interface{}{"overallScore"},
		"properties": map[string]interface{}{
			"overallScore": map[string]interface{}{"type": "integer", "minimum": 0, "maximum": 100},
		},
	}
	return schema
}
