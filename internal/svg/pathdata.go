package svg

import (
	"strconv"
	"strings"
)

// PathCommand is a single path command with its absolute arguments.
// Op is always an uppercase command letter after ToAbsolute.
type PathCommand struct {
	Op   byte
	Args []float64
}

// argCounts maps each command letter to its argument count per
// repetition. Z takes none.
var argCounts = map[byte]int{
	'M': 2, 'L': 2, 'H': 1, 'V': 1,
	'C': 6, 'S': 4, 'Q': 4, 'T': 2,
	'A': 7, 'Z': 0,
}

// ParsePathData tokenizes an SVG path data string into commands.
// Implicit command repetition is expanded (an M followed by extra
// coordinate pairs yields L commands, per the SVG grammar). Relative
// commands keep their lowercase letter; ToAbsolute resolves them.
// Malformed trailing tokens are dropped rather than reported.
func ParsePathData(d string) []PathCommand {
	var cmds []PathCommand
	i := 0
	n := len(d)

	for i < n {
		c := d[i]
		if isPathSeparator(c) {
			i++
			continue
		}
		upper := toUpper(c)
		count, ok := argCounts[upper]
		if !ok {
			// Unknown command letter; skip it.
			i++
			continue
		}
		i++

		if count == 0 {
			cmds = append(cmds, PathCommand{Op: c})
			continue
		}

		first := true
		for {
			args, next, ok := scanNumbers(d, i, count, upper)
			if !ok {
				break
			}
			i = next

			op := c
			if !first {
				// Implicit repetition; repeated moveto pairs are
				// linetos.
				if upper == 'M' {
					if c == 'M' {
						op = 'L'
					} else {
						op = 'l'
					}
				}
			}
			cmds = append(cmds, PathCommand{Op: op, Args: args})
			first = false

			// Stop repeating at the next command letter.
			j := i
			for j < n && isPathSeparator(d[j]) {
				j++
			}
			if j >= n || isCommandLetter(d[j]) {
				break
			}
		}
	}

	return cmds
}

// scanNumbers reads count numbers starting at offset i. op is the
// uppercase command letter being scanned; the fourth and fifth
// arguments of A are single-digit flags that the compact grammar
// allows to run into the following number without a separator.
func scanNumbers(d string, i, count int, op byte) ([]float64, int, bool) {
	args := make([]float64, 0, count)
	n := len(d)
	for len(args) < count {
		for i < n && isPathSeparator(d[i]) {
			i++
		}
		if op == 'A' && (len(args) == 3 || len(args) == 4) {
			if i < n && (d[i] == '0' || d[i] == '1') {
				args = append(args, float64(d[i]-'0'))
				i++
				continue
			}
			return nil, i, false
		}
		start := i
		if i < n && (d[i] == '-' || d[i] == '+') {
			i++
		}
		seenDot := false
		for i < n {
			c := d[i]
			if c >= '0' && c <= '9' {
				i++
				continue
			}
			if c == '.' && !seenDot {
				seenDot = true
				i++
				continue
			}
			if (c == 'e' || c == 'E') && i+1 < n {
				// Exponent with optional sign.
				j := i + 1
				if d[j] == '-' || d[j] == '+' {
					j++
				}
				if j < n && d[j] >= '0' && d[j] <= '9' {
					i = j
					continue
				}
			}
			break
		}
		if i == start {
			return nil, i, false
		}
		v, err := strconv.ParseFloat(d[start:i], 64)
		if err != nil {
			return nil, i, false
		}
		args = append(args, v)
	}
	return args, i, true
}

func isPathSeparator(c byte) bool {
	return c == ' ' || c == ',' || c == '\t' || c == '\n' || c == '\r'
}

func isCommandLetter(c byte) bool {
	_, ok := argCounts[toUpper(c)]
	return ok
}

func toUpper(c byte) byte {
	if c >= 'a' && c <= 'z' {
		return c - 'a' + 'A'
	}
	return c
}

// ToAbsolute rewrites every command as its absolute uppercase form.
// H and V survive as absolute H/V; transform flattening later rewrites
// them as L. S/T shorthand keeps its shorthand form (the reflected
// control point is positional, so absolutizing the stated coordinates
// is enough).
func ToAbsolute(cmds []PathCommand) []PathCommand {
	out := make([]PathCommand, 0, len(cmds))
	var cx, cy float64
	var startX, startY float64

	for _, cmd := range cmds {
		op := cmd.Op
		upper := toUpper(op)
		rel := op >= 'a' && op <= 'z'
		args := append([]float64(nil), cmd.Args...)

		switch upper {
		case 'M', 'L', 'T':
			if rel {
				args[0] += cx
				args[1] += cy
			}
			cx, cy = args[0], args[1]
			if upper == 'M' {
				startX, startY = cx, cy
			}
		case 'H':
			if rel {
				args[0] += cx
			}
			cx = args[0]
		case 'V':
			if rel {
				args[0] += cy
			}
			cy = args[0]
		case 'C':
			if rel {
				for i := 0; i < 6; i += 2 {
					args[i] += cx
					args[i+1] += cy
				}
			}
			cx, cy = args[4], args[5]
		case 'S', 'Q':
			if rel {
				for i := 0; i < 4; i += 2 {
					args[i] += cx
					args[i+1] += cy
				}
			}
			cx, cy = args[2], args[3]
		case 'A':
			if rel {
				args[5] += cx
				args[6] += cy
			}
			cx, cy = args[5], args[6]
		case 'Z':
			cx, cy = startX, startY
		}

		out = append(out, PathCommand{Op: upper, Args: args})
	}
	return out
}

// WritePathData serializes commands back to a path data string.
func WritePathData(cmds []PathCommand) string {
	var sb strings.Builder
	for i, cmd := range cmds {
		if i > 0 {
			sb.WriteByte(' ')
		}
		sb.WriteByte(cmd.Op)
		for _, a := range cmd.Args {
			sb.WriteByte(' ')
			sb.WriteString(formatCoord(a))
		}
	}
	return sb.String()
}

// formatCoord trims trailing zeros so serialized paths stay compact.
func formatCoord(v float64) string {
	s := strconv.FormatFloat(v, 'f', 4, 64)
	s = strings.TrimRight(s, "0")
	s = strings.TrimRight(s, ".")
	if s == "" || s == "-" || s == "-0" {
		return "0"
	}
	return s
}

// CountSubpaths returns the number of moveto commands in the sequence.
func CountSubpaths(cmds []PathCommand) int {
	n := 0
	for _, c := range cmds {
		if toUpper(c.Op) == 'M' {
			n++
		}
	}
	return n
}

// SplitSubpaths splits an absolute command sequence at each moveto.
// Commands before the first moveto (malformed input) are dropped.
func SplitSubpaths(cmds []PathCommand) [][]PathCommand {
	var out [][]PathCommand
	var current []PathCommand
	for _, c := range cmds {
		if toUpper(c.Op) == 'M' {
			if len(current) > 0 {
				out = append(out, current)
			}
			current = []PathCommand{c}
			continue
		}
		if current != nil {
			current = append(current, c)
		}
	}
	if len(current) > 0 {
		out = append(out, current)
	}
	return out
}
