// Package results accumulates experiment result rows and persists them as
// timestamped CSV files, one file per experiment run.
package results

import (
	"encoding/csv"
	"fmt"
	"os"
	"path/filepath"
	"time"
)

// Row maps column names to rendered values. Columns absent from a row are
// written as empty fields, never dropped.
type Row map[string]string

// Column schemas per experiment type. Order is the CSV column order.
var (
	ThroughputSchema = []string{
		"poly_degree", "vector_size", "operation_type",
		"enc_time", "op_time", "dec_time", "memory_usage",
		"correct", "error",
	}
	DepthSchema = []string{
		"poly_degree", "total_modulus_bits", "modulus_chain",
		"operations_count", "plaintext_modulus", "operation_type",
		"noise_budget_status", "error",
	}
	RotationSchema = []string{
		"poly_degree", "vector_size", "rotation_step",
		"rot_time", "memory_usage", "correct", "error",
	}
)

// Sink is the single-writer, append-only result collection of one
// experiment run. Rows are kept in insertion order and never mutated.
type Sink struct {
	experiment string
	schema     []string
	rows       []Row
}

// NewSink creates a sink for one experiment with a fixed column schema.
func NewSink(experiment string, schema []string) *Sink {
	return &Sink{
		experiment: experiment,
		schema:     append([]string(nil), schema...),
	}
}

// Name returns the experiment name this sink collects for.
func (s *Sink) Name() string {
	return s.experiment
}

// Append adds one row. The row is copied so callers cannot mutate it later.
func (s *Sink) Append(row Row) {
	cp := make(Row, len(row))
	for k, v := range row {
		cp[k] = v
	}
	s.rows = append(s.rows, cp)
}

// Len returns the number of accumulated rows.
func (s *Sink) Len() int {
	return len(s.rows)
}

// Rows returns the accumulated rows in insertion order.
func (s *Sink) Rows() []Row {
	out := make([]Row, len(s.rows))
	copy(out, s.rows)
	return out
}

// Schema returns the column order of this sink.
func (s *Sink) Schema() []string {
	return append([]string(nil), s.schema...)
}

// Filename renders the per-run CSV name from the experiment name and a
// timestamp, e.g. Vector_Benchmark_20250114_153012.csv.
func (s *Sink) Filename(now time.Time) string {
	return fmt.Sprintf("%s_%s.csv", s.experiment, now.Format("20060102_150405"))
}

// WriteCSV persists all rows under dir, creating it if needed. The header
// row is the schema; missing columns are emitted as empty fields. Any write
// or close failure comes back as the error, never as a panic.
func (s *Sink) WriteCSV(dir string) (path string, err error) {
	if err = os.MkdirAll(dir, 0o755); err != nil {
		return "", err
	}
	path = filepath.Join(dir, s.Filename(time.Now()))

	file, err := os.Create(path)
	if err != nil {
		return "", err
	}
	defer func() {
		if cerr := file.Close(); cerr != nil && err == nil {
			err = cerr
		}
	}()

	writer := csv.NewWriter(file)
	if err = writer.Write(s.schema); err != nil {
		return path, err
	}
	record := make([]string, len(s.schema))
	for _, row := range s.rows {
		for i, col := range s.schema {
			record[i] = row[col]
		}
		if err = writer.Write(record); err != nil {
			return path, err
		}
	}
	writer.Flush()
	return path, writer.Error()
}
