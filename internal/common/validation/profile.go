package validation

// ProfileSchema describes a candidate profile as it arrives in job variables.
// cgpa is the only required field.
func ProfileSchema() map[string]interface{} {
	username := map[string]interface{}{"type": "string", "maxLength": 100}
	stringList := map[string]interface{}{
		"type":  "array",
		"items": map[string]interface{}{"type": "string", "minLength": 1},
	}

	return map[string]interface{}{
		"type":     "object",
		"required": []interface{}{"cgpa"},
		"properties": map[string]interface{}{
			"userId":             map[string]interface{}{"type": "string"},
			"leetcodeUsername":   username,
			"codeforcesUsername": username,
			"codechefUsername":   username,
			"githubUsername":     username,
			"hackerrankUsername": username,
			"linkedinProfile":    map[string]interface{}{"type": "string", "maxLength": 300},
			"cgpa": map[string]interface{}{
				"type":             "number",
				"exclusiveMinimum": 0,
				"maximum":          10,
			},
			"skills":             stringList,
			"preferredCountries": stringList,
			"projectCount":       map[string]interface{}{"type": "integer", "minimum": 0},
			"workExperience":     map[string]interface{}{"type": "number", "minimum": 0},
			"englishProficiency": map[string]interface{}{
				"type": "string",
				"enum": []interface{}{"", "Basic", "Intermediate", "Advanced", "Native"},
			},
			"resumeRef": map[string]interface{}{"type": "string"},
		},
	}
}

// PlatformMetricsSchema accepts any subset of platform slots; each slot is an
// object of non-negative counters.
func PlatformMetricsSchema() map[string]interface{} {
	slot := map[string]interface{}{
		"type": "object",
		"additionalProperties": map[string]interface{}{
			"anyOf": []interface{}{
				map[string]interface{}{"type": "number", "minimum": 0},
				map[string]interface{}{"type": "array", "items": map[string]interface{}{"type": "string"}},
			},
		},
	}
	return map[string]interface{}{
		"type": "object",
		"properties": map[string]interface{}{
			"leetcode":   slot,
			"codeforces": slot,
			"codechef":   slot,
			"github":     slot,
			"hackerrank": slot,
			"linkedin":   slot,
		},
	}
}
