package company

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const sampleRegistry = `
companies:
  - id: company1
    name: LC Technologies Pvt. Ltd.
    address: Pune
  - id: " company2 "
    name: ARR Solutions Pvt. Ltd.
    signatory_name: R. Rao
`

func TestParseRegistryKeepsOrder(t *testing.T) {
	reg, err := ParseRegistry([]byte(sampleRegistry))
	require.NoError(t, err)

	list := reg.List()
	require.Len(t, list, 2)
	assert.Equal(t, "company1", list[0].ID)
	assert.Equal(t, "company2", list[1].ID)
	assert.Equal(t, "R. Rao", list[1].SignatoryName)
}

func TestParseRegistryRejectsDuplicatesAndBlankIDs(t *testing.T) {
	_, err := ParseRegistry([]byte("companies:\n  - id: a\n  - id: a\n"))
	assert.Error(t, err)

	_, err = ParseRegistry([]byte("companies:\n  - name: nameless\n"))
	assert.Error(t, err)
}

func TestLookupUnknownCompany(t *testing.T) {
	reg := DefaultRegistry()

	c, err := reg.Lookup("company2")
	require.NoError(t, err)
	assert.Equal(t, "ARR Solutions Pvt. Ltd.", c.Name)

	_, err = reg.Lookup("company9")
	assert.ErrorIs(t, err, ErrCompanyNotFound)
}

func TestLoadRegistry(t *testing.T) {
	reg, err := LoadRegistry("")
	require.NoError(t, err)
	assert.Len(t, reg.List(), 2)

	path := filepath.Join(t.TempDir(), "companies.yaml")
	require.NoError(t, os.WriteFile(path, []byte(sampleRegistry), 0o600))
	reg, err = LoadRegistry(path)
	require.NoError(t, err)
	assert.Len(t, reg.List(), 2)

	_, err = LoadRegistry(filepath.Join(t.TempDir(), "missing.yaml"))
	assert.Error(t, err)
}

func TestListReturnsCopy(t *testing.T) {
	reg := DefaultRegistry()
	list := reg.List()
	list[0].Name = "mutated"
	c, err := reg.Lookup("company1")
	require.NoError(t, err)
	assert.NotEqual(t, "mutated", c.Name)
}

func TestWatermarkFallsBack(t *testing.T) {
	assert.Equal(t, "lc_logo.png", Watermark("company1"))
	assert.Equal(t, "arr_logo.png", Watermark("company2"))
	assert.Equal(t, DefaultWatermark, Watermark("unknown"))
	assert.Equal(t, DefaultWatermark, Watermark(""))
}
