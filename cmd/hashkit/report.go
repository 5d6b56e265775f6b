package main

import (
	"encoding/json"
	"fmt"
	"io"

	"github.com/jedib0t/go-pretty/v6/table"
	"gopkg.in/yaml.v3"

	"github.com/unkn0wn-root/hashkit"
)

type qualityRow struct {
	Algorithm      string  `json:"algorithm" yaml:"algorithm"`
	Seed           string  `json:"seed" yaml:"seed"`
	Items          int     `json:"items" yaml:"items"`
	Buckets        int     `json:"buckets" yaml:"buckets"`
	Uniformity     float64 `json:"uniformity" yaml:"uniformity"`
	CollisionRate  float64 `json:"collision_rate" yaml:"collision_rate"`
	AvalancheScore float64 `json:"avalanche_score" yaml:"avalanche_score"`
}

func newQualityRow(f hashkit.Function, items, buckets int, q hashkit.Quality) qualityRow {
	return qualityRow{
		Algorithm:      f.Algorithm().String(),
		Seed:           fmt.Sprintf("%#x", f.Seed()),
		Items:          items,
		Buckets:        buckets,
		Uniformity:     q.Uniformity,
		CollisionRate:  q.CollisionRate,
		AvalancheScore: q.AvalancheScore,
	}
}

type indexRow struct {
	Probe int    `json:"probe" yaml:"probe"`
	Index uint64 `json:"index" yaml:"index"`
}

type functionRow struct {
	Index     int    `json:"index" yaml:"index"`
	Algorithm string `json:"algorithm" yaml:"algorithm"`
	Seed      string `json:"seed" yaml:"seed"`
}

func newTable() table.Writer {
	tbl := table.NewWriter()
	tbl.SetStyle(table.StyleLight)
	return tbl
}

func renderQualities(w io.Writer, format string, rows []qualityRow) error {
	if format != formatTable {
		return encode(w, format, rows)
	}

	tbl := newTable()
	tbl.AppendHeader(table.Row{"Algorithm", "Seed", "Items", "Buckets", "Uniformity", "Collision rate", "Avalanche"})
	for _, r := range rows {
		tbl.AppendRow(table.Row{
			r.Algorithm, r.Seed, r.Items, r.Buckets,
			fmt.Sprintf("%.4f", r.Uniformity),
			fmt.Sprintf("%.4f", r.CollisionRate),
			fmt.Sprintf("%.4f", r.AvalancheScore),
		})
	}
	_, err := fmt.Fprintln(w, tbl.Render())
	return err
}

func renderIndices(w io.Writer, format string, rows []indexRow) error {
	if format != formatTable {
		return encode(w, format, rows)
	}

	tbl := newTable()
	tbl.AppendHeader(table.Row{"Probe", "Index"})
	for _, r := range rows {
		tbl.AppendRow(table.Row{r.Probe, r.Index})
	}
	_, err := fmt.Fprintln(w, tbl.Render())
	return err
}

func renderFunctions(w io.Writer, format string, rows []functionRow) error {
	if format != formatTable {
		return encode(w, format, rows)
	}

	tbl := newTable()
	tbl.AppendHeader(table.Row{"#", "Algorithm", "Seed"})
	for _, r := range rows {
		tbl.AppendRow(table.Row{r.Index, r.Algorithm, r.Seed})
	}
	tbl.AppendFooter(table.Row{"", fmt.Sprintf("Total: %d", len(rows)), ""})
	_, err := fmt.Fprintln(w, tbl.Render())
	return err
}

func encode(w io.Writer, format string, v any) error {
	switch format {
	case formatJSON:
		enc := json.NewEncoder(w)
		enc.SetIndent("", "  ")
		return enc.Encode(v)
	case formatYAML:
		enc := yaml.NewEncoder(w)
		if err := enc.Encode(v); err != nil {
			return err
		}
		return enc.Close()
	default:
		return fmt.Errorf("%w: %q", errInvalidFormat, format)
	}
}
