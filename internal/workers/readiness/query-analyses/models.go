// internal/workers/readiness/query-analyses/models.go
package queryanalyses

import (
	"readiness-workers/internal/common/validation"
	"readiness-workers/internal/models"
)

type Input struct {
	QueryType string `json:"queryType"`
	UserID    string `json:"userId,omitempty"`
	Limit     int    `json:"limit,omitempty"`
}

type Output struct {
	Data               interface{} `json:"data"`
	RowCount           int         `json:"rowCount"`
	QueryExecutionTime int64       `json:"queryExecutionTime"` // milliseconds
}

type QueryType = models.AnalysisQueryType

var (
	QueryTypeAnalysisHistory  = models.QueryTypeAnalysisHistory
	QueryTypeAnalyticsSummary = models.QueryTypeAnalyticsSummary
)

var inputValidator = validation.MustValidator(map[string]interface{}{
	"type":     "object",
	"required": []interface{}{"queryType"},
	"properties": map[string]interface{}{
		"queryType": map[string]interface{}{"type": "string", "minLength": 1},
		"userId":    map[string]interface{}{"type": "string"},
		"limit":     map[string]interface{}{"type": "integer", "minimum": 0},
	},
})
