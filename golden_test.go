package dbscan

import (
	"encoding/json"
	"os"
	"path/filepath"
	"reflect"
	"testing"
)

type goldenConfig struct {
	Eps    float64 `json:"eps"`
	MinPts int     `json:"min_pts"`
	Metric string  `json:"metric"`
}

type goldenData struct {
	Dataset string       `json:"dataset"`
	Config  goldenConfig `json:"config"`
	Data    [][]float64  `json:"data"`
	Labels  []int        `json:"labels"`
	Core    []bool       `json:"core"`
}

// labelsEquivalent checks if two label arrays are equivalent under label
// permutation. Noise (-1) must match exactly.
func labelsEquivalent(a, b []int) bool {
	if len(a) != len(b) {
		return false
	}

	// Map from a-labels to b-labels
	mapping := make(map[int]int)
	for i := range a {
		if a[i] == -1 && b[i] == -1 {
			continue
		}
		if a[i] == -1 || b[i] == -1 {
			return false
		}
		if mapped, ok := mapping[a[i]]; ok {
			if mapped != b[i] {
				return false
			}
		} else {
			mapping[a[i]] = b[i]
		}
	}

	// Check reverse mapping is injective
	reverse := make(map[int]int)
	for k, v := range mapping {
		if rk, ok := reverse[v]; ok && rk != k {
			return false
		}
		reverse[v] = k
	}
	return true
}

func loadGoldenFile(t *testing.T, path string) goldenData {
	t.Helper()
	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("failed to read golden file %s: %v", path, err)
	}
	var gd goldenData
	if err := json.Unmarshal(data, &gd); err != nil {
		t.Fatalf("failed to parse golden file %s: %v", path, err)
	}
	return gd
}

func goldenConfigToConfig(t *testing.T, gc goldenConfig) Config {
	t.Helper()
	cfg := DefaultConfig()
	cfg.Eps = gc.Eps
	cfg.MinPts = gc.MinPts
	switch gc.Metric {
	case "", "euclidean":
		cfg.Metric = EuclideanMetric{}
	case "manhattan":
		cfg.Metric = ManhattanMetric{}
	case "chebyshev":
		cfg.Metric = ChebyshevMetric{}
	default:
		t.Fatalf("unknown golden metric %q", gc.Metric)
	}
	return cfg
}

// TestGoldenLabels verifies labels and core flags against hand-checked
// fixtures for every neighbor query backend. Cluster numbering is part of
// the contract, so labels must match exactly.
func TestGoldenLabels(t *testing.T) {
	files, err := filepath.Glob("testdata/*.json")
	if err != nil {
		t.Fatalf("failed to glob testdata: %v", err)
	}
	if len(files) == 0 {
		t.Fatal("no golden test files found in testdata/")
	}

	for _, f := range files {
		t.Run(filepath.Base(f), func(t *testing.T) {
			gd := loadGoldenFile(t, f)

			for _, algo := range []Algorithm{AlgorithmBrute, AlgorithmKDTree, AlgorithmBallTree} {
				cfg := goldenConfigToConfig(t, gd.Config)
				cfg.Algorithm = algo

				result, err := Cluster(gd.Data, cfg)
				if err != nil {
					t.Fatalf("%s: Cluster() error: %v", algo, err)
				}
				if !reflect.DeepEqual(result.Labels, gd.Labels) {
					t.Errorf("%s: labels = %v, golden %v", algo, result.Labels, gd.Labels)
				}
				if !reflect.DeepEqual(result.Core, gd.Core) {
					t.Errorf("%s: core = %v, golden %v", algo, result.Core, gd.Core)
				}
				checkInvariants(t, gd.Data, cfg.Eps, cfg.MinPts, cfg.Metric, result)
			}
		})
	}
}

func TestLabelsEquivalent(t *testing.T) {
	if !labelsEquivalent([]int{1, 1, 2, -1}, []int{2, 2, 1, -1}) {
		t.Error("swapped ids should be equivalent")
	}
	if labelsEquivalent([]int{1, 1, 2}, []int{1, 2, 2}) {
		t.Error("different partitions reported equivalent")
	}
	if labelsEquivalent([]int{1, -1}, []int{1, 1}) {
		t.Error("noise mismatch reported equivalent")
	}
	if labelsEquivalent([]int{1, 2}, []int{1, 1}) {
		t.Error("merged clusters reported equivalent")
	}
}
