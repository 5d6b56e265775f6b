package main

import (
	"bytes"
	"encoding/json"
	"strings"
	"testing"

	"github.com/spf13/afero"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gopkg.in/yaml.v3"

	"github.com/unkn0wn-root/hashkit"
)

func run(t *testing.T, fs afero.Fs, args ...string) (string, error) {
	t.Helper()

	cmd := newRootCommand(fs)
	var out bytes.Buffer
	cmd.SetOut(&out)
	cmd.SetErr(&out)
	cmd.SetArgs(args)
	err := cmd.Execute()
	return out.String(), err
}

func TestEvaluateJSON(t *testing.T) {
	out, err := run(t, afero.NewMemMapFs(), "evaluate", "-o", "json", "-n", "1000", "-b", "100")
	require.NoError(t, err)

	var rows []qualityRow
	require.NoError(t, json.Unmarshal([]byte(out), &rows))
	require.Len(t, rows, 1)

	r := rows[0]
	assert.Equal(t, "default", r.Algorithm)
	assert.Equal(t, 1000, r.Items)
	assert.Equal(t, 100, r.Buckets)
	assert.InDelta(t, 0.5, r.Uniformity, 0.5)
	assert.Zero(t, r.CollisionRate)
	assert.InDelta(t, 0.5, r.AvalancheScore, 0.5)
}

func TestEvaluateMatchesLibrary(t *testing.T) {
	out, err := run(t, afero.NewMemMapFs(), "evaluate", "-a", "fnv1a", "-s", "0x10", "-n", "200", "-b", "16", "-o", "json")
	require.NoError(t, err)

	var rows []qualityRow
	require.NoError(t, json.Unmarshal([]byte(out), &rows))
	require.Len(t, rows, 1)

	want := hashkit.Evaluate(hashkit.NewWithSeed(hashkit.FNV1a, 0x10), generateItems(200), 16)
	assert.Equal(t, "0x10", rows[0].Seed)
	assert.InDelta(t, want.Uniformity, rows[0].Uniformity, 1e-12)
	assert.InDelta(t, want.CollisionRate, rows[0].CollisionRate, 1e-12)
	assert.InDelta(t, want.AvalancheScore, rows[0].AvalancheScore, 1e-12)
}

func TestEvaluateInputFile(t *testing.T) {
	fs := afero.NewMemMapFs()
	require.NoError(t, afero.WriteFile(fs, "/data/keys.txt", []byte("alpha\r\nbeta\n\ngamma\n"), 0o644))

	out, err := run(t, fs, "evaluate", "-i", "/data/keys.txt", "-o", "yaml", "--buckets", "3")
	require.NoError(t, err)

	var rows []qualityRow
	require.NoError(t, yaml.Unmarshal([]byte(out), &rows))
	require.Len(t, rows, 1)
	assert.Equal(t, 3, rows[0].Items)
	assert.Equal(t, 3, rows[0].Buckets)
}

func TestEvaluateMissingInput(t *testing.T) {
	_, err := run(t, afero.NewMemMapFs(), "evaluate", "-i", "/nope.txt")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "read dataset")
}

func TestEvaluatePow2Buckets(t *testing.T) {
	out, err := run(t, afero.NewMemMapFs(), "evaluate", "-b", "100", "--pow2", "-n", "10", "-o", "json")
	require.NoError(t, err)

	var rows []qualityRow
	require.NoError(t, json.Unmarshal([]byte(out), &rows))
	require.Len(t, rows, 1)
	assert.Equal(t, 128, rows[0].Buckets)
}

func TestEvaluateTable(t *testing.T) {
	out, err := run(t, afero.NewMemMapFs(), "evaluate", "-a", "murmur3", "-n", "50")
	require.NoError(t, err)
	assert.Contains(t, out, "murmur3")
	assert.Contains(t, strings.ToLower(out), "uniformity")
}

func TestCompare(t *testing.T) {
	out, err := run(t, afero.NewMemMapFs(), "compare", "-n", "300", "-o", "json")
	require.NoError(t, err)

	var rows []qualityRow
	require.NoError(t, json.Unmarshal([]byte(out), &rows))
	require.Len(t, rows, 3)
	assert.Equal(t, "default", rows[0].Algorithm)
	assert.Equal(t, "murmur3", rows[1].Algorithm)
	assert.Equal(t, "fnv1a", rows[2].Algorithm)
}

func TestCompareIncludesSeededAlgorithm(t *testing.T) {
	out, err := run(t, afero.NewMemMapFs(), "compare", "-a", "seeded:7", "-n", "30", "-o", "json")
	require.NoError(t, err)

	var rows []qualityRow
	require.NoError(t, json.Unmarshal([]byte(out), &rows))
	require.Len(t, rows, 4)
	assert.Equal(t, "seeded(7)", rows[3].Algorithm)
}

func TestIndices(t *testing.T) {
	out, err := run(t, afero.NewMemMapFs(), "indices", "test", "-k", "5", "-m", "100", "-o", "json")
	require.NoError(t, err)

	var rows []indexRow
	require.NoError(t, json.Unmarshal([]byte(out), &rows))
	require.Len(t, rows, 5)

	want := hashkit.NewDoubleHasher().HashMultiple("test", 5, 100)
	for i, r := range rows {
		assert.Equal(t, i, r.Probe)
		assert.Less(t, r.Index, uint64(100))
		assert.Equal(t, want[i], r.Index)
	}
}

func TestIndicesZeroBound(t *testing.T) {
	out, err := run(t, afero.NewMemMapFs(), "indices", "test", "-k", "4", "-m", "0", "-o", "json")
	require.NoError(t, err)

	var rows []indexRow
	require.NoError(t, json.Unmarshal([]byte(out), &rows))
	require.Len(t, rows, 4)
	for _, r := range rows {
		assert.Zero(t, r.Index)
	}
}

func TestIndicesRequiresItem(t *testing.T) {
	_, err := run(t, afero.NewMemMapFs(), "indices")
	require.Error(t, err)
}

func TestFunctions(t *testing.T) {
	out, err := run(t, afero.NewMemMapFs(), "functions", "--number", "5", "-o", "json")
	require.NoError(t, err)

	var rows []functionRow
	require.NoError(t, json.Unmarshal([]byte(out), &rows))
	require.Len(t, rows, 5)

	wantAlgs := []string{"default", "murmur3", "fnv1a", "default", "murmur3"}
	for i, r := range rows {
		assert.Equal(t, wantAlgs[i], r.Algorithm)
	}
	assert.Equal(t, "0x9e3779b97f4a7c15", rows[1].Seed)
}

func TestFunctionsTable(t *testing.T) {
	out, err := run(t, afero.NewMemMapFs(), "functions", "--number", "2")
	require.NoError(t, err)
	assert.Contains(t, strings.ToLower(out), "total: 2")
}

func TestInvalidAlgorithm(t *testing.T) {
	_, err := run(t, afero.NewMemMapFs(), "evaluate", "-a", "sha1")
	require.ErrorIs(t, err, hashkit.ErrUnknownAlgorithm)
}
