// Package matrix implements the dense and banded matrix storage and the
// linear solvers the thermal engine's conduction solve depends on: banded
// Gaussian elimination with a Gauss-Seidel fallback.
package matrix

import "fmt"

// Dense is a row-major dense matrix with pre-allocated-result arithmetic:
// results are written into a caller-supplied matrix. The thermal engine
// uses Band, not Dense.
type Dense struct {
	Rows, Cols int
	Data       []float64
}

// NewDense returns a zeroed rows x cols matrix.
func NewDense(rows, cols int) *Dense {
	return &Dense{Rows: rows, Cols: cols, Data: make([]float64, rows*cols)}
}

// At returns element (i, j).
func (m *Dense) At(i, j int) float64 { return m.Data[i*m.Cols+j] }

// Set assigns element (i, j).
func (m *Dense) Set(i, j int, v float64) { m.Data[i*m.Cols+j] = v }

// AddInto computes m + o into dst, which must share m's dimensions.
func (m *Dense) AddInto(o, dst *Dense) error {
	if err := m.checkSameShape(o); err != nil {
		return err
	}
	if err := m.checkSameShape(dst); err != nil {
		return err
	}
	for i := range m.Data {
		dst.Data[i] = m.Data[i] + o.Data[i]
	}
	return nil
}

// SubInto computes m - o into dst.
func (m *Dense) SubInto(o, dst *Dense) error {
	if err := m.checkSameShape(o); err != nil {
		return err
	}
	if err := m.checkSameShape(dst); err != nil {
		return err
	}
	for i := range m.Data {
		dst.Data[i] = m.Data[i] - o.Data[i]
	}
	return nil
}

// ScaleInto computes s*m into dst.
func (m *Dense) ScaleInto(s float64, dst *Dense) error {
	if err := m.checkSameShape(dst); err != nil {
		return err
	}
	for i := range m.Data {
		dst.Data[i] = s * m.Data[i]
	}
	return nil
}

// MulInto computes m * o into a pre-allocated dst (m.Rows x o.Cols), never
// allocating internally so it is safe to call from a per-sub-step hot loop.
func (m *Dense) MulInto(o, dst *Dense) error {
	if m.Cols != o.Rows {
		return fmt.Errorf("matrix: cannot multiply %dx%d by %dx%d", m.Rows, m.Cols, o.Rows, o.Cols)
	}
	if dst.Rows != m.Rows || dst.Cols != o.Cols {
		return fmt.Errorf("matrix: result must be %dx%d, got %dx%d", m.Rows, o.Cols, dst.Rows, dst.Cols)
	}
	for i := 0; i < m.Rows; i++ {
		for j := 0; j < o.Cols; j++ {
			var sum float64
			for k := 0; k < m.Cols; k++ {
				sum += m.At(i, k) * o.At(k, j)
			}
			dst.Set(i, j, sum)
		}
	}
	return nil
}

func (m *Dense) checkSameShape(o *Dense) error {
	if m.Rows != o.Rows || m.Cols != o.Cols {
		return fmt.Errorf("matrix: shape mismatch %dx%d vs %dx%d", m.Rows, m.Cols, o.Rows, o.Cols)
	}
	return nil
}
