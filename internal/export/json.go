package export

import (
	"encoding/json"
	"io"

	"github.com/limaJavier/floorplan/pkg/model"
)

type document struct {
	RunId       string         `json:"runId,omitempty"`
	Status      string         `json:"status"`
	Variables   int            `json:"variables"`
	Constraints int            `json:"constraints"`
	Layouts     []model.Layout `json:"layouts"`
}

func WriteJson(w io.Writer, runId string, result model.Result) error {
	layouts := result.Layouts
	if layouts == nil {
		layouts = []model.Layout{}
	}
	encoder := json.NewEncoder(w)
	encoder.SetIndent("", "  ")
	return encoder.Encode(document{
		RunId:       runId,
		Status:      result.Status.String(),
		Variables:   result.Variables,
		Constraints: result.Constraints,
		Layouts:     layouts,
	})
}
