package parsers

import (
	"bufio"
	"io"
	"math"
	"strconv"
	"strings"

	"github.com/shopspring/decimal"
	"golang.org/x/text/encoding/charmap"
	"golang.org/x/text/transform"
)

// CorruptError distinguishes an unparseable legacy table from one that is
// legitimately empty. Callers are expected to log it and proceed with an
// empty ledger rather than abort startup.
type CorruptError struct {
	Err error
}

func (e *CorruptError) Error() string {
	return "legacy table is corrupt: " + e.Err.Error()
}

func (e *CorruptError) Unwrap() error { return e.Err }

// SkipBOM strips a UTF-8 BOM if present.
func SkipBOM(r io.Reader) io.Reader {
	br := bufio.NewReader(r)
	peeked, err := br.Peek(3)
	if err != nil {
		return br
	}
	if peeked[0] == 0xEF && peeked[1] == 0xBB && peeked[2] == 0xBF {
		br.Discard(3)
	}
	return br
}

// DecodeReader wraps r with a charset decoder for legacy exports written by
// Windows spreadsheet tools. An empty or "utf-8" encoding passes through.
func DecodeReader(r io.Reader, encoding string) io.Reader {
	switch strings.ToLower(encoding) {
	case "windows-1252", "latin1", "iso-8859-1":
		return transform.NewReader(r, charmap.Windows1252.NewDecoder())
	default:
		return r
	}
}

// columnIndex maps trimmed header names to their positions. Legacy files may
// miss columns entirely; lookups that fail are backfilled by the caller.
func columnIndex(header []string) map[string]int {
	idx := make(map[string]int, len(header))
	for i, name := range header {
		idx[strings.TrimSpace(name)] = i
	}
	return idx
}

func field(rec []string, idx map[string]int, name string) string {
	i, ok := idx[name]
	if !ok || i >= len(rec) {
		return ""
	}
	return strings.TrimSpace(rec[i])
}

// coerceInt mirrors the lenient numeric coercion of the legacy tables:
// non-numeric values become 0, fractional values are truncated.
func coerceInt(s string) int {
	if n, err := strconv.Atoi(s); err == nil {
		return n
	}
	if f, err := strconv.ParseFloat(s, 64); err == nil && !math.IsNaN(f) && !math.IsInf(f, 0) {
		return int(f)
	}
	return 0
}

func coerceDecimal(s string) decimal.Decimal {
	d, err := decimal.NewFromString(s)
	if err != nil {
		return decimal.Zero
	}
	return d
}
