package repository

import "fmt"

// normalizeID converts the _id field from numeric (float64) to string,
// since the store returns auto-increment numeric IDs.
func normalizeID(doc map[string]any) {
	if id, ok := doc["_id"]; ok {
		switch v := id.(type) {
		case float64:
			doc["_id"] = fmt.Sprintf("%.0f", v)
		case int:
			doc["_id"] = fmt.Sprintf("%d", v)
		}
	}
}

// extractID gets the inserted document ID from a store insert response.
func extractID(result map[string]any) string {
	if id, ok := result["id"]; ok {
		switch v := id.(type) {
		case string:
			return v
		case float64:
			return fmt.Sprintf("%.0f", v)
		}
	}
	return ""
}

// affected reads the row count out of an update/delete response,
// whichever count key the store reported it under.
func affected(result map[string]any) int {
	for _, key := range []string{"modified", "matched", "deleted", "count"} {
		if v, ok := result[key].(float64); ok {
			return int(v)
		}
	}
	return 0
}
