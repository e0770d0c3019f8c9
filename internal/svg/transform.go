package svg

import (
	"fmt"
	"math"
	"strconv"
	"strings"
)

// Matrix is a 2D affine transform in SVG matrix(a b c d e f) order:
//
//	x' = a*x + c*y + e
//	y' = b*x + d*y + f
type Matrix struct {
	A, B, C, D, E, F float64
}

// Identity is the identity transform.
var Identity = Matrix{A: 1, D: 1}

// Mult returns m composed with n (m applied after n).
func (m Matrix) Mult(n Matrix) Matrix {
	return Matrix{
		A: m.A*n.A + m.C*n.B,
		B: m.B*n.A + m.D*n.B,
		C: m.A*n.C + m.C*n.D,
		D: m.B*n.C + m.D*n.D,
		E: m.A*n.E + m.C*n.F + m.E,
		F: m.B*n.E + m.D*n.F + m.F,
	}
}

// TransformPoint applies the transform to a point.
func (m Matrix) TransformPoint(x, y float64) (float64, float64) {
	return m.A*x + m.C*y + m.E, m.B*x + m.D*y + m.F
}

// Det returns the determinant of the linear part.
func (m Matrix) Det() float64 {
	return m.A*m.D - m.B*m.C
}

// Invert returns the inverse transform. Singular matrices cannot be
// inverted.
func (m Matrix) Invert() (Matrix, error) {
	det := m.Det()
	if det == 0 {
		return Matrix{}, fmt.Errorf("singular transform matrix")
	}
	inv := 1 / det
	return Matrix{
		A: m.D * inv,
		B: -m.B * inv,
		C: -m.C * inv,
		D: m.A * inv,
		E: (m.C*m.F - m.D*m.E) * inv,
		F: (m.B*m.E - m.A*m.F) * inv,
	}, nil
}

// ScaleFactor returns the uniform scale approximation sqrt(|det|),
// used when scaling arc radii through a flattened transform.
func (m Matrix) ScaleFactor() float64 {
	return math.Sqrt(math.Abs(m.Det()))
}

// IsIdentity reports whether the matrix is exactly the identity.
func (m Matrix) IsIdentity() bool {
	return m == Identity
}

// ParseTransform parses an SVG transform attribute: a list of
// matrix, translate, scale, rotate, skewX and skewY operations,
// composed left to right.
func ParseTransform(raw string) (Matrix, error) {
	m := Identity
	s := strings.TrimSpace(raw)

	for len(s) > 0 {
		open := strings.IndexByte(s, '(')
		if open < 0 {
			return Identity, fmt.Errorf("parsing transform %q: missing '('", raw)
		}
		close := strings.IndexByte(s[open:], ')')
		if close < 0 {
			return Identity, fmt.Errorf("parsing transform %q: missing ')'", raw)
		}
		close += open

		name := strings.TrimSpace(s[:open])
		args, err := parseNumberList(s[open+1 : close])
		if err != nil {
			return Identity, fmt.Errorf("parsing transform %q: %w", raw, err)
		}

		op, err := transformOp(name, args)
		if err != nil {
			return Identity, fmt.Errorf("parsing transform %q: %w", raw, err)
		}
		m = m.Mult(op)

		s = strings.TrimLeft(s[close+1:], " ,\t\n\r")
	}

	return m, nil
}

// transformOp builds the matrix for a single transform operation.
func transformOp(name string, args []float64) (Matrix, error) {
	switch name {
	case "matrix":
		if len(args) != 6 {
			return Matrix{}, fmt.Errorf("matrix needs 6 values, got %d", len(args))
		}
		return Matrix{A: args[0], B: args[1], C: args[2], D: args[3], E: args[4], F: args[5]}, nil
	case "translate":
		switch len(args) {
		case 1:
			return Matrix{A: 1, D: 1, E: args[0]}, nil
		case 2:
			return Matrix{A: 1, D: 1, E: args[0], F: args[1]}, nil
		}
		return Matrix{}, fmt.Errorf("translate needs 1 or 2 values, got %d", len(args))
	case "scale":
		switch len(args) {
		case 1:
			return Matrix{A: args[0], D: args[0]}, nil
		case 2:
			return Matrix{A: args[0], D: args[1]}, nil
		}
		return Matrix{}, fmt.Errorf("scale needs 1 or 2 values, got %d", len(args))
	case "rotate":
		switch len(args) {
		case 1, 3:
			rad := args[0] * math.Pi / 180
			rot := Matrix{A: math.Cos(rad), B: math.Sin(rad), C: -math.Sin(rad), D: math.Cos(rad)}
			if len(args) == 1 {
				return rot, nil
			}
			cx, cy := args[1], args[2]
			to := Matrix{A: 1, D: 1, E: cx, F: cy}
			back := Matrix{A: 1, D: 1, E: -cx, F: -cy}
			return to.Mult(rot).Mult(back), nil
		}
		return Matrix{}, fmt.Errorf("rotate needs 1 or 3 values, got %d", len(args))
	case "skewX":
		if len(args) != 1 {
			return Matrix{}, fmt.Errorf("skewX needs 1 value, got %d", len(args))
		}
		return Matrix{A: 1, D: 1, C: math.Tan(args[0] * math.Pi / 180)}, nil
	case "skewY":
		if len(args) != 1 {
			return Matrix{}, fmt.Errorf("skewY needs 1 value, got %d", len(args))
		}
		return Matrix{A: 1, D: 1, B: math.Tan(args[0] * math.Pi / 180)}, nil
	}
	return Matrix{}, fmt.Errorf("unknown transform operation %q", name)
}

// parseNumberList splits a comma/space separated list of numbers.
func parseNumberList(s string) ([]float64, error) {
	fields := strings.FieldsFunc(s, func(r rune) bool {
		return r == ' ' || r == ',' || r == '\t' || r == '\n' || r == '\r'
	})
	out := make([]float64, 0, len(fields))
	for _, f := range fields {
		v, err := strconv.ParseFloat(f, 64)
		if err != nil {
			return nil, fmt.Errorf("bad number %q", f)
		}
		out = append(out, v)
	}
	return out, nil
}
