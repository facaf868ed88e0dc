// Package dataset reads point sets for the dbscan CLI from CSV, JSON or
// YAML.
package dataset

import (
	"bytes"
	"encoding/csv"
	"encoding/json"
	"io"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/cockroachdb/errors"
	"gopkg.in/yaml.v3"
)

// Format identifies a dataset encoding.
type Format string

const (
	FormatAuto Format = "auto"
	FormatCSV  Format = "csv"
	FormatJSON Format = "json"
	FormatYAML Format = "yaml"
)

// ErrUnknownFormat is returned for format names and file extensions the
// loader does not recognise.
var ErrUnknownFormat = errors.New("unknown dataset format")

// document is the object form of JSON and YAML datasets. The bare form is
// a list of points.
type document struct {
	Points [][]float64 `json:"points" yaml:"points"`
}

// ParseFormat converts a user-supplied name into a Format.
func ParseFormat(name string) (Format, error) {
	switch f := Format(strings.ToLower(name)); f {
	case "", FormatAuto:
		return FormatAuto, nil
	case FormatCSV, FormatJSON, FormatYAML:
		return f, nil
	case "yml":
		return FormatYAML, nil
	default:
		return "", errors.WithHint(errors.Wrapf(ErrUnknownFormat, "%q", name),
			"use one of auto, csv, json, yaml")
	}
}

// DetectFormat picks a format from a file extension. "-" (stdin) and
// unrecognised extensions fall back to CSV.
func DetectFormat(path string) Format {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".json":
		return FormatJSON
	case ".yaml", ".yml":
		return FormatYAML
	default:
		return FormatCSV
	}
}

// LoadFile reads the dataset at path, or stdin when path is "-".
func LoadFile(path string, format Format) ([][]float64, error) {
	if format == FormatAuto || format == "" {
		format = DetectFormat(path)
	}

	if path == "-" {
		return Load(os.Stdin, format)
	}

	f, err := os.Open(path)
	if err != nil {
		return nil, errors.Wrapf(err, "failed to open dataset %s", path)
	}
	defer f.Close()

	points, err := Load(f, format)
	if err != nil {
		return nil, errors.Wrapf(err, "dataset %s", path)
	}
	return points, nil
}

// Load decodes a dataset from r. FormatAuto is treated as CSV.
func Load(r io.Reader, format Format) ([][]float64, error) {
	switch format {
	case FormatAuto, "", FormatCSV:
		return loadCSV(r)
	case FormatJSON:
		return loadJSON(r)
	case FormatYAML:
		return loadYAML(r)
	default:
		return nil, errors.Wrapf(ErrUnknownFormat, "%q", format)
	}
}

// loadCSV reads one point per record. A first record that does not parse
// as numbers is treated as a header and skipped.
func loadCSV(r io.Reader) ([][]float64, error) {
	cr := csv.NewReader(r)
	cr.TrimLeadingSpace = true
	cr.Comment = '#'

	var points [][]float64
	for line := 1; ; line++ {
		record, err := cr.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, errors.Wrap(err, "failed to read CSV")
		}

		point, err := parseRecord(record)
		if err != nil {
			if line == 1 {
				continue
			}
			return nil, errors.Wrapf(err, "CSV record %d", line)
		}
		points = append(points, point)
	}
	return points, nil
}

func parseRecord(record []string) ([]float64, error) {
	point := make([]float64, len(record))
	for i, field := range record {
		v, err := strconv.ParseFloat(strings.TrimSpace(field), 64)
		if err != nil {
			return nil, errors.Wrapf(err, "field %d", i+1)
		}
		point[i] = v
	}
	return point, nil
}

func loadJSON(r io.Reader) ([][]float64, error) {
	raw, err := io.ReadAll(r)
	if err != nil {
		return nil, errors.Wrap(err, "failed to read JSON")
	}

	raw = bytes.TrimSpace(raw)
	if len(raw) > 0 && raw[0] == '{' {
		var doc document
		if err := json.Unmarshal(raw, &doc); err != nil {
			return nil, errors.Wrap(err, "failed to parse JSON dataset")
		}
		return doc.Points, nil
	}

	var points [][]float64
	if err := json.Unmarshal(raw, &points); err != nil {
		return nil, errors.WithHint(errors.Wrap(err, "failed to parse JSON dataset"),
			`expected [[x, y, ...], ...] or {"points": [[x, y, ...], ...]}`)
	}
	return points, nil
}

func loadYAML(r io.Reader) ([][]float64, error) {
	var node yaml.Node
	if err := yaml.NewDecoder(r).Decode(&node); err != nil {
		if err == io.EOF {
			return nil, nil
		}
		return nil, errors.Wrap(err, "failed to parse YAML dataset")
	}

	root := &node
	if root.Kind == yaml.DocumentNode && len(root.Content) > 0 {
		root = root.Content[0]
	}

	if root.Kind == yaml.MappingNode {
		var doc document
		if err := root.Decode(&doc); err != nil {
			return nil, errors.Wrap(err, "failed to decode YAML dataset")
		}
		return doc.Points, nil
	}

	var points [][]float64
	if err := root.Decode(&points); err != nil {
		return nil, errors.WithHint(errors.Wrap(err, "failed to decode YAML dataset"),
			"expected a list of points or a mapping with a points key")
	}
	return points, nil
}
