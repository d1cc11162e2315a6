package modelio

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/germolinal/simple-sub002/pkg/model"
)

const minimalJSON = `{
  "meta": {"latitude_deg": 40, "longitude_deg": -105, "standard_meridian_deg": -105, "elevation": 1600},
  "substances": [{"name": "brick", "type": "Normal", "conductivity": 0.8, "specific_heat": 840, "density": 1700}],
  "materials": [{"name": "brick-layer", "substance": "brick", "thickness": 0.2}],
  "constructions": [{"name": "wall-construction", "materials": ["brick-layer"]}],
  "spaces": [{"name": "room", "volume": 60}],
  "surfaces": [
    {
      "name": "wall",
      "vertices": [[0,0,0],[3,0,0],[3,0,3],[0,0,3]],
      "construction": "wall-construction",
      "front": {"type": "Outdoor"},
      "back": {"type": "Space", "space": "room"}
    }
  ],
  "outputs": [{"kind": "SpaceDryBulbTemperature", "entity": "room", "node_index": -1}]
}`

func TestParseJSON_ResolvesMinimalModel(t *testing.T) {
	m, err := ParseJSON(strings.NewReader(minimalJSON))
	require.NoError(t, err)
	require.Contains(t, m.Spaces, "room")
	require.Contains(t, m.Surfaces, "wall")
	assert.Equal(t, model.BoundarySpace, m.Surfaces["wall"].Back.Kind)
	assert.Len(t, m.Outputs, 1)
}

func TestParseJSON_RejectsUnknownField(t *testing.T) {
	_, err := ParseJSON(strings.NewReader(`{"not_a_real_field": 1}`))
	assert.Error(t, err)
}

func TestParseJSON_UndefinedConstructionIsUserInputError(t *testing.T) {
	bad := `{
  "spaces": [{"name": "room", "volume": 60}],
  "surfaces": [{"name": "wall", "vertices": [[0,0,0],[1,0,0],[1,0,1]], "construction": "missing", "front": {"type": "Outdoor"}, "back": {"type": "Adiabatic"}}]
}`
	_, err := ParseJSON(strings.NewReader(bad))
	assert.Error(t, err)
}

const minimalYAML = `
meta:
  latitude_deg: 40
substances:
  - name: brick
    type: Normal
    conductivity: 0.8
    specific_heat: 840
    density: 1700
materials:
  - name: brick-layer
    substance: brick
    thickness: 0.2
constructions:
  - name: wall-construction
    materials: [brick-layer]
spaces:
  - name: room
    volume: 60
surfaces:
  - name: wall
    vertices: [[0,0,0],[3,0,0],[3,0,3],[0,0,3]]
    construction: wall-construction
    front: {type: Outdoor}
    back: {type: Space, space: room}
`

func TestParseYAML_ResolvesMinimalModel(t *testing.T) {
	m, err := ParseYAML(strings.NewReader(minimalYAML))
	require.NoError(t, err)
	require.Contains(t, m.Spaces, "room")
	require.Contains(t, m.Surfaces, "wall")
}

func TestParseYAML_RejectsUnknownField(t *testing.T) {
	_, err := ParseYAML(strings.NewReader("not_a_real_field: 1\n"))
	assert.Error(t, err)
}
