// Package output serializes estimation results and writes estimates back
// to their sources.
package output

import (
	"encoding/json"

	"github.com/ukaji3/missingplot-go/pkg/missingplot/models"
)

// ToJSON serializes an estimation result.
func ToJSON(res *models.EstimationResult, pretty bool) ([]byte, error) {
	return marshal(res, pretty)
}

// BatchToJSON serializes the results of a batch.
func BatchToJSON(items []models.BatchItem, pretty bool) ([]byte, error) {
	return marshal(items, pretty)
}

func marshal(v any, pretty bool) ([]byte, error) {
	if pretty {
		return json.MarshalIndent(v, "", "  ")
	}
	return json.Marshal(v)
}
