// internal/workers/readiness/analyze-resume/models.go
package analyzeresume

import "readiness-workers/internal/common/validation"

type Input struct {
	UserID    string   `json:"userId,omitempty"`
	ResumeRef string   `json:"resumeRef"`
	Skills    []string `json:"skills"`
}

// Output leaves both fields unset when there is no resume to analyze.
type Output struct {
	ResumeScore    *int     `json:"resumeScore,omitempty"`
	ResumeKeywords []string `json:"resumeKeywords,omitempty"`
}

var inputValidator = validation.MustValidator(map[string]interface{}{
	"type": "object",
	"properties": map[string]interface{}{
		"userId":    map[string]interface{}{"type": "string"},
		"resumeRef": map[string]interface{}{"type": "string", "maxLength": 1024},
		"skills": map[string]interface{}{
			"type":  "array",
			"items": map[string]interface{}{"type": "string", "minLength": 1},
		},
	},
})
