package spectate

import (
	"encoding/json"
	"fmt"

	"github.com/invopop/jsonschema"

	"github.com/vovakirdan/tui-forager/internal/games/forager"
)

// Schema describes the snapshot documents streamed to spectators.
func Schema() *jsonschema.Schema {
	reflector := jsonschema.Reflector{
		DoNotReference: true,
	}
	s := reflector.Reflect(&forager.Snapshot{})
	s.Title = "Forager Snapshot"
	s.Description = "Read-only view of one forager session after a simulation tick."
	return s
}

// SchemaJSON returns the indented schema document.
func SchemaJSON() ([]byte, error) {
	data, err := json.MarshalIndent(Schema(), "", "  ")
	if err != nil {
		return nil, fmt.Errorf("spectate: marshal schema: %w", err)
	}
	return append(data, '\n'), nil
}
