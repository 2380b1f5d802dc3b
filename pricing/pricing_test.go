package pricing

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDefault_KnownModelCost(t *testing.T) {
	table := Default()

	b, ok := table.Cost("claude-sonnet-4-5", 1000, 2000)
	require.True(t, ok)
	assert.InDelta(t, 1000*3.0/1_000_000, b.InputCost, 1e-12)
	assert.InDelta(t, 2000*15.0/1_000_000, b.OutputCost, 1e-12)
	assert.InDelta(t, b.InputCost+b.OutputCost, b.TotalCost, 1e-12)
	assert.Equal(t, int64(1000), b.InputTokens)
	assert.Equal(t, int64(2000), b.OutputTokens)
}

func TestDefault_GatewayAliases(t *testing.T) {
	table := Default()

	bare, ok := table.Cost("claude-opus-4-5", 100, 100)
	require.True(t, ok)
	aliased, ok := table.Cost("anthropic/claude-opus-4-5", 100, 100)
	require.True(t, ok)
	assert.Equal(t, bare.TotalCost, aliased.TotalCost)
}

func TestCost_UnknownModel_ZeroCostKeepsTokens(t *testing.T) {
	table := Default()

	b, ok := table.Cost("gpt-unknown", 500, 700)
	assert.False(t, ok)
	assert.Zero(t, b.TotalCost)
	assert.Equal(t, int64(500), b.InputTokens)
	assert.Equal(t, int64(700), b.OutputTokens)
	assert.False(t, table.Known("gpt-unknown"))
}

func TestLoadFile_OverridesRates(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "pricing.yaml")
	content := `
my-model:
  input_per_mtok: 10.0
  output_per_mtok: 20.0
`
	require.NoError(t, os.WriteFile(path, []byte(content), 0o600))

	table, err := LoadFile(path)
	require.NoError(t, err)

	b, ok := table.Cost("my-model", 1_000_000, 1_000_000)
	require.True(t, ok)
	assert.InDelta(t, 30.0, b.TotalCost, 1e-9)

	_, ok = table.Cost("claude-sonnet-4-5", 1, 1)
	assert.False(t, ok, "loaded table replaces defaults")
}

func TestLoadFile_MissingFile(t *testing.T) {
	_, err := LoadFile(filepath.Join(t.TempDir(), "absent.yaml"))
	require.Error(t, err)
}

func TestLoadFile_BadYaml(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "pricing.yaml")
	require.NoError(t, os.WriteFile(path, []byte("not: [valid"), 0o600))

	_, err := LoadFile(path)
	require.Error(t, err)
}

func TestFormatCost(t *testing.T) {
	assert.Equal(t, "$0.00", FormatCost(0))
	assert.Equal(t, "$0.5000", FormatCost(0.005))
	assert.Equal(t, "$1.2346", FormatCost(1.23456))
}
