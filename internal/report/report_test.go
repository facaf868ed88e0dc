package report

import (
	"bytes"
	"encoding/json"
	"testing"

	"github.com/pterm/pterm"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/TrevorS/dbscan"
)

var points = [][]float64{
	{1, 1.1},
	{1.2, 0.8},
	{0.8, 1},
	{3.7, 4},
	{3.9, 3.9},
	{3.6, 4.1},
	{10, 10},
}

func cluster(t *testing.T) *dbscan.Result {
	t.Helper()
	cfg := dbscan.DefaultConfig()
	cfg.MinPts = 2
	r, err := dbscan.Cluster(points, cfg)
	require.NoError(t, err)
	return r
}

func TestRenderJSON(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, Render(&buf, "json", "run-1", points, cluster(t)))

	var s Summary
	require.NoError(t, json.Unmarshal(buf.Bytes(), &s))
	assert.Equal(t, "run-1", s.RunID)
	assert.Equal(t, 7, s.Points)
	assert.Equal(t, 2, s.Clusters)
	assert.Equal(t, 1, s.Noise)
	assert.Equal(t, []int{3, 3}, s.ClusterSizes)
	assert.Equal(t, []int{0, 1, 2, 3, 4, 5}, s.CoreIndices)
	assert.Equal(t, []int{1, 1, 1, 2, 2, 2, -1}, s.Labels)
}

func TestRenderLabels(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, Render(&buf, "labels", "", points, cluster(t)))
	assert.Equal(t, "1\n1\n1\n2\n2\n2\n-1\n", buf.String())
}

func TestRenderTable(t *testing.T) {
	pterm.DisableStyling()
	t.Cleanup(pterm.EnableStyling)

	var buf bytes.Buffer
	require.NoError(t, Render(&buf, "table", "", points, cluster(t)))

	out := buf.String()
	assert.Contains(t, out, "(10, 10)")
	assert.Contains(t, out, "cluster 2")
	assert.Contains(t, out, OutlierLabel)
	assert.NotContains(t, out, "cluster -1")
}

func TestRenderUnknownFormat(t *testing.T) {
	var buf bytes.Buffer
	assert.Error(t, Render(&buf, "xml", "", points, cluster(t)))
}

func TestLabelText(t *testing.T) {
	assert.Equal(t, OutlierLabel, LabelText(dbscan.Noise))
	assert.Equal(t, "cluster 3", LabelText(3))
}

func TestRenderEmptyResult(t *testing.T) {
	r, err := dbscan.Cluster(nil, dbscan.DefaultConfig())
	require.NoError(t, err)

	var buf bytes.Buffer
	require.NoError(t, Render(&buf, "json", "empty", nil, r))

	var s Summary
	require.NoError(t, json.Unmarshal(buf.Bytes(), &s))
	assert.Equal(t, 0, s.Points)
	assert.Empty(t, s.Labels)
}
