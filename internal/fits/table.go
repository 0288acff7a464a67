package fits

import (
	"encoding/binary"
	"fmt"
	"math"
	"strconv"
	"strings"
)

// Table is a decoded BINTABLE extension. Rows are fixed-length byte
// records; columns are located by their TFORMn layout and named by TTYPEn.
type Table struct {
	cols   []column
	byName map[string]int
	raw    []byte
	rowLen int
	nrows  int
}

// column describes one BINTABLE field.
type column struct {
	name   string
	code   byte
	repeat int
	offset int // byte offset of the field inside a row
	width  int // element width in bytes (bits pack for code X)
}

// byteWidth returns the per-element byte width of a TFORM code, or 0 for
// codes with no fixed element width handled here.
func byteWidth(code byte) int {
	switch code {
	case 'L', 'B', 'A':
		return 1
	case 'I':
		return 2
	case 'J', 'E':
		return 4
	case 'K', 'D', 'C', 'P':
		return 8
	case 'M', 'Q':
		return 16
	}
	return 0
}

// NumRows returns the number of table rows.
func (t *Table) NumRows() int { return t.nrows }

// NumCols returns the number of table columns.
func (t *Table) NumCols() int { return len(t.cols) }

// HasColumn reports whether a column with the given TTYPE name exists.
func (t *Table) HasColumn(name string) bool {
	_, ok := t.byName[name]
	return ok
}

// col resolves a column by name.
func (t *Table) col(name string) (*column, error) {
	i, ok := t.byName[name]
	if !ok {
		return nil, fmt.Errorf("table column %q not found", name)
	}
	return &t.cols[i], nil
}

// cell returns the raw bytes of one cell.
func (t *Table) cell(c *column, row int) ([]byte, error) {
	if row < 0 || row >= t.nrows {
		return nil, fmt.Errorf("row %d out of range [0,%d)", row, t.nrows)
	}
	start := row*t.rowLen + c.offset
	return t.raw[start : start+c.width*c.repeat], nil
}

// Float returns the first element of a numeric cell as float64.
func (t *Table) Float(name string, row int) (float64, error) {
	v, err := t.FloatVec(name, row)
	if err != nil {
		return 0, err
	}
	if len(v) == 0 {
		return 0, fmt.Errorf("column %q has zero repeat", name)
	}
	return v[0], nil
}

// FloatVec returns every element of a numeric cell as float64.
func (t *Table) FloatVec(name string, row int) ([]float64, error) {
	c, err := t.col(name)
	if err != nil {
		return nil, err
	}
	raw, err := t.cell(c, row)
	if err != nil {
		return nil, err
	}
	out := make([]float64, c.repeat)
	for i := range out {
		e := raw[i*c.width:]
		switch c.code {
		case 'L', 'B':
			out[i] = float64(e[0])
		case 'I':
			out[i] = float64(int16(binary.BigEndian.Uint16(e)))
		case 'J':
			out[i] = float64(int32(binary.BigEndian.Uint32(e)))
		case 'K':
			out[i] = float64(int64(binary.BigEndian.Uint64(e)))
		case 'E':
			out[i] = float64(math.Float32frombits(binary.BigEndian.Uint32(e)))
		case 'D':
			out[i] = math.Float64frombits(binary.BigEndian.Uint64(e))
		default:
			return nil, fmt.Errorf("%w: numeric access to TFORM code %c", ErrUnsupported, c.code)
		}
	}
	return out, nil
}

// FloatCol returns a whole numeric column, one value per row (the first
// element when the column has a repeat count).
func (t *Table) FloatCol(name string) ([]float64, error) {
	out := make([]float64, t.nrows)
	for row := range out {
		v, err := t.Float(name, row)
		if err != nil {
			return nil, err
		}
		out[row] = v
	}
	return out, nil
}

// Str returns a string cell (TFORM code A).
func (t *Table) Str(name string, row int) (string, error) {
	c, err := t.col(name)
	if err != nil {
		return "", err
	}
	if c.code != 'A' {
		return "", fmt.Errorf("%w: string access to TFORM code %c", ErrUnsupported, c.code)
	}
	raw, err := t.cell(c, row)
	if err != nil {
		return "", err
	}
	return strings.TrimRight(string(raw), " \x00"), nil
}

// decodeTable reads a BINTABLE data section and lays out its columns.
// Unsupported column types still contribute to the row layout so the
// supported columns around them decode correctly; accessing them errors.
func decodeTable(h *Header, b *blockReader) (*Table, error) {
	axes, err := h.Axes()
	if err != nil {
		return nil, err
	}
	if len(axes) != 2 {
		return nil, fmt.Errorf("%w: BINTABLE NAXIS = %d", ErrBadHeader, len(axes))
	}
	tfields, ok := h.Int("TFIELDS")
	if !ok {
		return nil, fmt.Errorf("%w: missing TFIELDS", ErrBadHeader)
	}

	t := &Table{
		cols:   make([]column, 0, tfields),
		byName: make(map[string]int, tfields),
		rowLen: axes[0],
		nrows:  axes[1],
	}

	offset := 0
	for i := 1; i <= tfields; i++ {
		form, ok := h.Str(nth("TFORM", i))
		if !ok {
			return nil, fmt.Errorf("%w: missing %s", ErrBadHeader, nth("TFORM", i))
		}
		c, err := parseTForm(form)
		if err != nil {
			return nil, fmt.Errorf("%s: %w", nth("TFORM", i), err)
		}
		c.offset = offset
		if c.code == 'X' {
			// Bit arrays pack eight to a byte.
			offset += (c.repeat + 7) / 8
		} else {
			offset += c.width * c.repeat
		}
		c.name = h.StrDefault(nth("TTYPE", i), nth("COL", i))
		t.byName[c.name] = len(t.cols)
		t.cols = append(t.cols, c)
	}
	if offset > t.rowLen {
		return nil, fmt.Errorf("%w: columns span %d bytes but NAXIS1 = %d", ErrBadHeader, offset, t.rowLen)
	}

	raw, err := b.readData(t.rowLen * t.nrows)
	if err != nil {
		return nil, fmt.Errorf("read table data: %w", err)
	}
	t.raw = raw
	return t, nil
}

// parseTForm splits a binary-table TFORM like "1E", "16A", or "D" into a
// repeat count and type code.
func parseTForm(form string) (column, error) {
	j := strings.IndexAny(form, "ABCDEIJKLMPQX")
	if j < 0 {
		return column{}, fmt.Errorf("%w: TFORM %q", ErrBadValue, form)
	}
	repeat := 1
	if j > 0 {
		r, err := strconv.Atoi(form[:j])
		if err != nil {
			return column{}, fmt.Errorf("%w: TFORM repeat %q", ErrBadValue, form)
		}
		repeat = r
	}
	code := form[j]
	return column{code: code, repeat: repeat, width: byteWidth(code)}, nil
}
