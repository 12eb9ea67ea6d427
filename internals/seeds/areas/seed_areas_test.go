package areas

import (
	"os"
	"path/filepath"
	"testing"

	"medaid_backend/internals/features/cases/areas/model"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseAreaTable(t *testing.T) {
	table, err := ParseAreaTable([]byte(`[
		{"area_name": "Lyari", "district": "South", "class": "lower"},
		{"area_name": "Clifton", "district": "South", "class": "Elite"}
	]`))
	require.NoError(t, err)

	recs := table.Records()
	require.Len(t, recs, 2)
	assert.Equal(t, model.ClassLower, recs[0].Class)
	assert.Equal(t, model.ClassElite, recs[1].Class)
	assert.Equal(t, []string{"South"}, table.Districts())
}

func TestParseAreaTable_Errors(t *testing.T) {
	tests := map[string]string{
		"bad json":      `{`,
		"unknown class": `[{"area_name": "Lyari", "district": "South", "class": "Royal"}]`,
		"missing name":  `[{"area_name": " ", "district": "South", "class": "Lower"}]`,
	}
	for name, raw := range tests {
		t.Run(name, func(t *testing.T) {
			_, err := ParseAreaTable([]byte(raw))
			assert.Error(t, err)
		})
	}
}

func TestLoadAreaTable_FromFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "areas.json")
	require.NoError(t, os.WriteFile(path, []byte(`[{"area_name": "Korangi", "district": "Korangi", "class": "Lower"}]`), 0o600))

	table, err := LoadAreaTable(path)
	require.NoError(t, err)
	assert.Equal(t, 1, table.Len())
}

func TestLoadAreaTable_DefaultWhenNoPath(t *testing.T) {
	table, err := LoadAreaTable("")
	require.NoError(t, err)
	assert.Greater(t, table.Len(), 10)
}
