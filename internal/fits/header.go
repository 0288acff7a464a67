package fits

import (
	"fmt"
	"strconv"
	"strings"
)

// cardLen is the fixed length of one header keyword card.
const cardLen = 80

// Header holds the parsed keyword cards of one HDU. Values are typed per
// the FITS grammar: string, int, float64, or bool. Commentary cards
// (COMMENT, HISTORY, blank keyword) and cards with empty values are stored
// with a nil value so Has still reports them.
type Header struct {
	keys map[string]any
}

// Has reports whether the keyword appears in the header at all.
func (h *Header) Has(key string) bool {
	_, ok := h.keys[key]
	return ok
}

// Int returns an integer-valued keyword.
func (h *Header) Int(key string) (int, bool) {
	v, ok := h.keys[key].(int)
	return v, ok
}

// Float returns a numeric keyword, accepting both integer and float cards.
func (h *Header) Float(key string) (float64, bool) {
	switch v := h.keys[key].(type) {
	case float64:
		return v, true
	case int:
		return float64(v), true
	}
	return 0, false
}

// Str returns a string-valued keyword.
func (h *Header) Str(key string) (string, bool) {
	v, ok := h.keys[key].(string)
	return v, ok
}

// Bool returns a logical keyword.
func (h *Header) Bool(key string) (bool, bool) {
	v, ok := h.keys[key].(bool)
	return v, ok
}

// StrDefault returns a string keyword or def when the card is absent. A
// numeric card under the key is formatted rather than discarded, since
// instrument headers store some nominally textual fields as numbers.
func (h *Header) StrDefault(key, def string) string {
	switch v := h.keys[key].(type) {
	case string:
		return v
	case int:
		return strconv.Itoa(v)
	case float64:
		return strconv.FormatFloat(v, 'g', -1, 64)
	}
	return def
}

// Axes returns the NAXISn sizes in FITS axis order (axis 1 first, the
// fastest-varying axis).
func (h *Header) Axes() ([]int, error) {
	n, ok := h.Int("NAXIS")
	if !ok {
		return nil, fmt.Errorf("%w: missing NAXIS", ErrBadHeader)
	}
	axes := make([]int, n)
	for i := 1; i <= n; i++ {
		size, ok := h.Int(nth("NAXIS", i))
		if !ok {
			return nil, fmt.Errorf("%w: missing %s", ErrBadHeader, nth("NAXIS", i))
		}
		axes[i-1] = size
	}
	return axes, nil
}

// nth concatenates a keyword prefix with an axis or column number.
func nth(prefix string, n int) string {
	return prefix + strconv.Itoa(n)
}

// parseHeader consumes header blocks until the END card.
func parseHeader(b *blockReader) (*Header, error) {
	h := &Header{keys: make(map[string]any, 64)}
	for {
		blk, err := b.nextBlock()
		if err != nil {
			return nil, fmt.Errorf("read header block: %w", err)
		}
		for i := 0; i < cardsPerBlock; i++ {
			card := string(blk[i*cardLen : (i+1)*cardLen])
			key, val := parseCard(card)
			if key == "" {
				continue
			}
			h.keys[key] = val
			if key == "END" {
				return h, nil
			}
		}
	}
}

// parseCard splits one 80-byte card into keyword and typed value.
// Cards without the "= " value indicator (commentary, END) yield a nil
// value. Unparseable values are also stored as nil rather than failing the
// whole header; real instrument headers carry occasional junk cards.
func parseCard(card string) (string, any) {
	key := strings.TrimSpace(card[:8])
	if key == "" {
		return "", nil
	}
	if card[8:10] != "= " {
		return key, nil
	}

	s := strings.TrimSpace(card[10:])
	if s == "" {
		return key, nil
	}

	if s[0] == '\'' {
		v, err := parseStringValue(s)
		if err != nil {
			return key, nil
		}
		return key, v
	}

	// Strip the inline comment. This must come after the string case
	// because '/' is valid inside a quoted value.
	if j := strings.IndexByte(s, '/'); j >= 0 {
		s = strings.TrimSpace(s[:j])
	}
	if s == "" {
		return key, nil
	}

	switch c := s[0]; {
	case c == 'T':
		return key, true
	case c == 'F':
		return key, false
	case c >= '0' && c <= '9' || c == '+' || c == '-' || c == '.':
		if strings.ContainsAny(s, ".DE") {
			// FORTRAN D exponents are FITS-legal; Go only parses E.
			s = strings.Replace(s, "D", "E", 1)
			if v, err := strconv.ParseFloat(s, 64); err == nil {
				return key, v
			}
			return key, nil
		}
		if v, err := strconv.ParseInt(s, 10, 64); err == nil {
			return key, int(v)
		}
	}
	return key, nil
}

// parseStringValue decodes a quoted FITS string, where a doubled single
// quote escapes a literal quote. Trailing spaces are not significant.
func parseStringValue(s string) (string, error) {
	var buf strings.Builder
	const (
		start = iota
		inside
		quote // just saw a quote while inside
	)
	state := start
	for _, ch := range s {
		isQuote := ch == '\''
		switch state {
		case start:
			if !isQuote {
				return "", fmt.Errorf("%w: string does not start with a quote", ErrBadValue)
			}
			state = inside
		case inside:
			if isQuote {
				state = quote
			} else {
				buf.WriteRune(ch)
			}
		case quote:
			if isQuote {
				buf.WriteRune(ch)
				state = inside
			} else {
				return strings.TrimRight(buf.String(), " "), nil
			}
		}
	}
	if state == quote { // closing quote ended the card
		return strings.TrimRight(buf.String(), " "), nil
	}
	return "", fmt.Errorf("%w: unterminated string", ErrBadValue)
}
