package output

import (
	"encoding/json"

	"github.com/fincity/investing-engine/internal/domain"
)

// JSONFormatter serializes the full result as pretty-printed JSON.
type JSONFormatter struct{}

func (j JSONFormatter) Name() string { return "json" }

func (j JSONFormatter) Format(result *domain.SimulationResult) ([]byte, error) {
	return json.MarshalIndent(result, "", "  ")
}
