package inventory_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/KirkDiggler/rpg-inventory/internal/entities/inventory"
	"github.com/KirkDiggler/rpg-inventory/internal/errors"
)

func TestDecode_Empty(t *testing.T) {
	for _, doc := range []string{"", "null", "  "} {
		state, err := inventory.Decode([]byte(doc))
		require.NoError(t, err)
		assert.Empty(t, state.Characters())
	}
}

func TestDecode_SingleCommandLegacyShape(t *testing.T) {
	doc := `{
		"char": {
			"items": {"cloak": {"name": "Cloak", "count": 2}},
			"equipped": {"cloak": {"name": "Cloak", "count": 2}}
		},
		"user": {"items": {}, "equipped": {}}
	}`

	state, err := inventory.Decode([]byte(doc))
	require.NoError(t, err)

	char := state.Inventory("char")
	require.Contains(t, char.Items, "cloak")
	assert.Equal(t, "cloak", char.Items["cloak"].ID)
	assert.Equal(t, 2, char.Items["cloak"].Count)
	assert.Equal(t, []string{"cloak"}, char.EquippedIDs())
	assert.Equal(t, []string{"char", "user"}, state.Characters())
	assert.Equal(t, inventory.SchemaVersion, state.Version)
}

func TestDecode_StatBearingLegacyShape(t *testing.T) {
	doc := `{
		"inventory": {
			"char": {"inventory": {"torch": {"name": "Torch", "count": 3}}, "equipped": ["torch"]}
		},
		"stats": {
			"char": {"hp": {"description": "Hit points", "value": 9}, "mood": {"value": "grim"}}
		}
	}`

	state, err := inventory.Decode([]byte(doc))
	require.NoError(t, err)

	assert.Equal(t, 3, state.Inventory("char").Items["torch"].Count)
	assert.True(t, state.Inventory("char").IsEquipped("torch"))

	hp := state.CharacterStats("char")["hp"]
	require.NotNil(t, hp)
	assert.Equal(t, "hp", hp.Name)
	assert.Equal(t, "Hit points", hp.Description)
	assert.Equal(t, inventory.Number(9), hp.Value)
	assert.Equal(t, inventory.Text("grim"), state.CharacterStats("char")["mood"].Value)
}

func TestDecode_DropsNonPositiveCounts(t *testing.T) {
	doc := `{"version": 2, "inventories": {"char": {"items": {"a": {"id": "a", "count": 0}, "b": {"id": "b", "count": 1}}, "equipped": []}}}`

	state, err := inventory.Decode([]byte(doc))
	require.NoError(t, err)
	assert.NotContains(t, state.Inventory("char").Items, "a")
	assert.Contains(t, state.Inventory("char").Items, "b")
}

func TestDecode_Rejects(t *testing.T) {
	testCases := []struct {
		name string
		doc  string
	}{
		{name: "not an object", doc: `[1, 2]`},
		{name: "character is not an object", doc: `{"char": 3}`},
		{name: "future version", doc: `{"version": 3}`},
		{name: "bad stat value", doc: `{"version": 2, "stats": {"char": {"hp": {"value": [1]}}}}`},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			_, err := inventory.Decode([]byte(tc.doc))
			require.Error(t, err)
			assert.True(t, errors.IsInvalidArgument(err), "got %v", err)
		})
	}
}
