package normalize

import (
	"fmt"
	"math"
	"strconv"
	"strings"
	"time"
)

// ParseNumber coerces a raw cell into a float. Every character that is not a
// digit, dot, comma or minus is stripped, commas become decimal points, and
// the longest leading numeric prefix is parsed. Unparseable values resolve
// to def, never to an error.
func ParseNumber(value interface{}, def float64) float64 {
	switch v := value.(type) {
	case nil:
		return def
	case float64:
		return v
	case float32:
		return float64(v)
	case int:
		return float64(v)
	case int64:
		return float64(v)
	}

	s := fmt.Sprintf("%v", value)
	var b strings.Builder
	for _, r := range s {
		if (r >= '0' && r <= '9') || r == '.' || r == ',' || r == '-' {
			b.WriteRune(r)
		}
	}
	clean := strings.ReplaceAll(b.String(), ",", ".")

	parsed, ok := parseFloatPrefix(clean)
	if !ok {
		return def
	}
	return parsed
}

// parseFloatPrefix parses the longest valid floating-point prefix of s, the
// way spreadsheet tooling treats trailing garbage like "1.234.56".
func parseFloatPrefix(s string) (float64, bool) {
	end := 0
	seenDot := false
	seenDigit := false
	for i, r := range s {
		switch {
		case r == '-' && i == 0:
			end = i + 1
		case r == '.' && !seenDot:
			seenDot = true
			end = i + 1
		case r >= '0' && r <= '9':
			seenDigit = true
			end = i + 1
		default:
			goto done
		}
	}
done:
	if !seenDigit {
		return 0, false
	}
	f, err := strconv.ParseFloat(strings.TrimSuffix(s[:end], "."), 64)
	if err != nil {
		return 0, false
	}
	return f, true
}

// ParseInteger floors ParseNumber and substitutes def for non-positive
// results, so quantities are always at least 1 (or the caller's fallback).
func ParseInteger(value interface{}, def int) int {
	parsed := int(math.Floor(ParseNumber(value, float64(def))))
	if parsed <= 0 {
		return def
	}
	return parsed
}

// ParseDiscount normalizes a discount cell to a fraction in [0,1]. Values
// above 1 are read as percentages.
func ParseDiscount(value interface{}) float64 {
	n := ParseNumber(value, 0)
	if n > 1 {
		n = n / 100
	}
	return math.Max(0, math.Min(1, n))
}

// serialEpoch is the classic spreadsheet epoch, 1899-12-30 (the off-by-two
// convention shared by Excel and its descendants).
var serialEpoch = time.Date(1899, time.December, 30, 0, 0, 0, 0, time.UTC)

// Unpadded layouts so both "5.3.2024" and "15.03.2024" match.
var datePatterns = []string{
	"2.1.2006", // DD.MM.YYYY
	"2/1/2006", // DD/MM/YYYY
	"1.2.2006", // MM.DD.YYYY
	"1/2/2006", // MM/DD/YYYY
	"2006-1-2", // YYYY-MM-DD
	"2-1-2006", // DD-MM-YYYY
}

var nativeLayouts = []string{
	time.RFC3339,
	"2006-1-2 15:04:05",
	"2006-1-2",
	"2006/1/2",
	"January 2, 2006",
	"Jan 2, 2006",
}

// ParseDate coerces a raw cell into an ISO date string. Spreadsheet serial
// numbers and a set of explicit day-first and month-first patterns are
// supported; anything unrecognizable falls back to now's date. The fallback
// is deliberate and lossy - directional analytics beats a failed upload.
func ParseDate(value interface{}, now time.Time) string {
	fallback := now.Format("2006-01-02")
	if value == nil {
		return fallback
	}

	switch v := value.(type) {
	case float64:
		if d, ok := fromSerial(v); ok {
			return d
		}
	case float32:
		if d, ok := fromSerial(float64(v)); ok {
			return d
		}
	case int:
		if d, ok := fromSerial(float64(v)); ok {
			return d
		}
	case int64:
		if d, ok := fromSerial(float64(v)); ok {
			return d
		}
	case string:
		if d, ok := fromString(v); ok {
			return d
		}
	}

	return fallback
}

func fromSerial(serial float64) (string, bool) {
	if serial <= 1 {
		return "", false
	}
	t := serialEpoch.Add(time.Duration(serial * 24 * float64(time.Hour)))
	if !yearInBounds(t) {
		return "", false
	}
	return t.Format("2006-01-02"), true
}

func fromString(raw string) (string, bool) {
	s := strings.TrimSpace(raw)
	if s == "" {
		return "", false
	}

	// A digits-only cell is a serial that survived text conversion.
	if isDigits(s) {
		if serial, err := strconv.ParseFloat(s, 64); err == nil {
			if d, ok := fromSerial(serial); ok {
				return d, true
			}
		}
	}

	for _, layout := range nativeLayouts {
		if t, err := time.Parse(layout, s); err == nil && yearInBounds(t) {
			return t.Format("2006-01-02"), true
		}
	}

	for i, layout := range datePatterns {
		t, err := time.Parse(layout, s)
		if err != nil {
			continue
		}
		// Month-first patterns defer to day-first when the leading part
		// cannot be a month.
		if (i == 2 || i == 3) && firstPart(s) > 12 {
			continue
		}
		if yearInBounds(t) {
			return t.Format("2006-01-02"), true
		}
	}

	return "", false
}

func firstPart(s string) int {
	for i, r := range s {
		if r < '0' || r > '9' {
			n, _ := strconv.Atoi(s[:i])
			return n
		}
	}
	n, _ := strconv.Atoi(s)
	return n
}

func isDigits(s string) bool {
	for _, r := range s {
		if r < '0' || r > '9' {
			return false
		}
	}
	return len(s) > 0
}

func yearInBounds(t time.Time) bool {
	return t.Year() > 1900 && t.Year() < 2100
}
