package dataset

import (
	"bytes"
	"fmt"
	"strconv"

	"github.com/rodgzilla/langton-ant-machine-learning/internal/core"
)

// EncodePattern renders a binary grid as text: a "width height" header line
// followed by one row of '0'/'1' characters per grid row.
func EncodePattern(pattern [][]core.Cell) []byte {
	var buf bytes.Buffer
	h := len(pattern)
	w := 0
	if h > 0 {
		w = len(pattern[0])
	}
	fmt.Fprintf(&buf, "%d %d\n", w, h)
	for _, row := range pattern {
		for _, c := range row {
			if c != core.White {
				buf.WriteByte('1')
			} else {
				buf.WriteByte('0')
			}
		}
		buf.WriteByte('\n')
	}
	return buf.Bytes()
}

// DecodePattern parses the format produced by EncodePattern.
func DecodePattern(data []byte) ([][]core.Cell, error) {
	lines := bytes.Split(bytes.TrimRight(data, "\n"), []byte("\n"))
	if len(lines) == 0 {
		return nil, fmt.Errorf("pattern file is empty")
	}
	header := bytes.Fields(lines[0])
	if len(header) != 2 {
		return nil, fmt.Errorf("malformed pattern header %q", lines[0])
	}
	w, err := strconv.Atoi(string(header[0]))
	if err != nil {
		return nil, fmt.Errorf("malformed pattern width: %w", err)
	}
	h, err := strconv.Atoi(string(header[1]))
	if err != nil {
		return nil, fmt.Errorf("malformed pattern height: %w", err)
	}
	if len(lines)-1 != h {
		return nil, fmt.Errorf("pattern declares %d rows, file has %d", h, len(lines)-1)
	}
	pattern := make([][]core.Cell, h)
	for y, line := range lines[1:] {
		if len(line) != w {
			return nil, fmt.Errorf("pattern row %d has %d cells, header declares %d", y, len(line), w)
		}
		row := make([]core.Cell, w)
		for x, ch := range line {
			switch ch {
			case '0':
				row[x] = core.White
			case '1':
				row[x] = core.Black
			default:
				return nil, fmt.Errorf("pattern row %d has invalid cell %q", y, ch)
			}
		}
		pattern[y] = row
	}
	return pattern, nil
}
