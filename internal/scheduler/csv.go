package scheduler

import (
	"encoding/csv"
	"io"
	"strconv"

	simerrors "github.com/germolinal/simple-sub002/internal/errors"
)

// CSVWriter serializes one header row of output element names followed by
// one row per main timestep, matching the engine's output-CSV contract: a
// header naming each requested output, then decimal values in request
// order.
type CSVWriter struct {
	w *csv.Writer
}

// NewCSVWriter wraps an io.Writer (typically an *os.File) for output
// serialization.
func NewCSVWriter(w io.Writer) *CSVWriter {
	return &CSVWriter{w: csv.NewWriter(w)}
}

// WriteHeader writes the column names once, before the first data row.
func (c *CSVWriter) WriteHeader(names []string) error {
	if err := c.w.Write(names); err != nil {
		return simerrors.Wrap(moduleName, simerrors.CodeResource, err, "writing output CSV header")
	}
	c.w.Flush()
	return c.w.Error()
}

// WriteRow appends one main-timestep's resolved output values.
func (c *CSVWriter) WriteRow(values []float64) error {
	record := make([]string, len(values))
	for i, v := range values {
		record[i] = strconv.FormatFloat(v, 'g', -1, 64)
	}
	if err := c.w.Write(record); err != nil {
		return simerrors.Wrap(moduleName, simerrors.CodeResource, err, "writing output CSV row")
	}
	c.w.Flush()
	return c.w.Error()
}
