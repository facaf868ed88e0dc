// Package report renders clustering results for the dbscan CLI.
package report

import (
	"bufio"
	"encoding/json"
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/cockroachdb/errors"
	"github.com/pterm/pterm"

	"github.com/TrevorS/dbscan"
)

// OutlierLabel is how noise points are shown in human-readable output.
const OutlierLabel = "outlier"

// Summary is the JSON document written for the json format.
type Summary struct {
	RunID        string `json:"run_id"`
	Points       int    `json:"points"`
	Clusters     int    `json:"clusters"`
	Noise        int    `json:"noise"`
	ClusterSizes []int  `json:"cluster_sizes"`
	CoreIndices  []int  `json:"core_indices"`
	Labels       []int  `json:"labels"`
}

// NewSummary collects the JSON view of a result.
func NewSummary(runID string, r *dbscan.Result) Summary {
	return Summary{
		RunID:        runID,
		Points:       len(r.Labels),
		Clusters:     r.NumClusters,
		Noise:        r.NumNoise,
		ClusterSizes: r.ClusterSizes,
		CoreIndices:  r.CoreIndices(),
		Labels:       r.Labels,
	}
}

// Render writes r to w in the given format ("json", "table" or "labels").
// data is only read, for the coordinates shown by the table format.
func Render(w io.Writer, format string, runID string, data [][]float64, r *dbscan.Result) error {
	switch format {
	case "json":
		return renderJSON(w, runID, r)
	case "labels":
		return renderLabels(w, r)
	case "table":
		return renderTable(w, data, r)
	default:
		return errors.Newf("unknown output format %q", format)
	}
}

func renderJSON(w io.Writer, runID string, r *dbscan.Result) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return errors.Wrap(enc.Encode(NewSummary(runID, r)), "failed to write JSON")
}

func renderLabels(w io.Writer, r *dbscan.Result) error {
	bw := bufio.NewWriter(w)
	for _, l := range r.Labels {
		bw.WriteString(strconv.Itoa(l))
		bw.WriteByte('\n')
	}
	return errors.Wrap(bw.Flush(), "failed to write labels")
}

// LabelText returns the human-readable form of a label.
func LabelText(label int) string {
	if label == dbscan.Noise {
		return OutlierLabel
	}
	return "cluster " + strconv.Itoa(label)
}

func renderTable(w io.Writer, data [][]float64, r *dbscan.Result) error {
	points := pterm.TableData{{"point", "coordinates", "label", "core"}}
	for i, l := range r.Labels {
		core := ""
		if r.Core[i] {
			core = "yes"
		}
		points = append(points, []string{strconv.Itoa(i), formatPoint(data[i]), LabelText(l), core})
	}

	out, err := pterm.DefaultTable.WithHasHeader().WithData(points).Srender()
	if err != nil {
		return errors.Wrap(err, "failed to render points table")
	}

	clusters := pterm.TableData{{"cluster", "size", "core points"}}
	coreCounts := make([]int, r.NumClusters)
	for i, l := range r.Labels {
		if l > 0 && r.Core[i] {
			coreCounts[l-1]++
		}
	}
	for k, size := range r.ClusterSizes {
		clusters = append(clusters, []string{strconv.Itoa(k + 1), strconv.Itoa(size), strconv.Itoa(coreCounts[k])})
	}
	clusters = append(clusters, []string{OutlierLabel, strconv.Itoa(r.NumNoise), "0"})

	summary, err := pterm.DefaultTable.WithHasHeader().WithData(clusters).Srender()
	if err != nil {
		return errors.Wrap(err, "failed to render cluster table")
	}

	_, err = fmt.Fprintf(w, "%s\n\n%s\n", out, summary)
	return errors.Wrap(err, "failed to write table")
}

func formatPoint(p []float64) string {
	parts := make([]string, len(p))
	for i, v := range p {
		parts[i] = strconv.FormatFloat(v, 'g', -1, 64)
	}
	return "(" + strings.Join(parts, ", ") + ")"
}
