package streamstats

import (
	"math"
	"strconv"

	"golang.org/x/text/language"
	"golang.org/x/text/message"
	"golang.org/x/text/number"
)

// DefaultLocale is used when no locale is configured or the configured one
// cannot be parsed.
const DefaultLocale = "en-US"

// byteUnits are binary multiples (1 KB = 1024 B).
var byteUnits = []string{"B", "KB", "MB", "GB", "TB", "PB", "EB"}

// FormatBytes scales n to the largest unit it fills at least once and renders
// it with precision fractional digits. Plain bytes are always whole numbers,
// so zero renders as "0 B".
func FormatBytes(n uint64, precision int) string {
	if precision < 0 {
		precision = 0
	}
	if n < 1024 {
		return strconv.FormatUint(n, 10) + " " + byteUnits[0]
	}

	value := float64(n)
	unit := 0

	for value >= 1024 && unit < len(byteUnits)-1 {
		value /= 1024
		unit++
	}

	text := strconv.FormatFloat(value, 'f', precision, 64)

	// 1023.999 KB rounds to "1024.00"; carry into the next unit.
	if rounded, _ := strconv.ParseFloat(text, 64); rounded >= 1024 && unit < len(byteUnits)-1 {
		value /= 1024
		unit++
		text = strconv.FormatFloat(value, 'f', precision, 64)
	}

	return text + " " + byteUnits[unit]
}

// integerTolerance is the relative distance under which a product is taken to
// be the integer it was meant to be (0.024*1000 = 24.000000000000004).
const integerTolerance = 1e-9

// RoundToMillis converts a duration in seconds to whole milliseconds, rounding
// up.
func RoundToMillis(seconds float64) int64 {
	return CeilMillis(seconds * 1000)
}

// CeilMillis rounds a millisecond reading up to a whole number. It never rounds
// down except to absorb representation noise around a non-zero integer.
func CeilMillis(ms float64) int64 {
	if r := math.Round(ms); r != 0 && math.Abs(ms-r) <= integerTolerance*math.Abs(r) {
		return int64(r)
	}
	return int64(math.Ceil(ms))
}

// formatNumber renders a float the way a plain number prints: no exponent,
// no trailing zeros.
func formatNumber(v float64) string {
	return strconv.FormatFloat(v, 'f', -1, 64)
}

// NumberFormatter renders integers with locale-specific digit grouping.
type NumberFormatter interface {
	FormatInteger(n int64) string
}

// NumberFormatterFunc adapts a function to NumberFormatter.
type NumberFormatterFunc func(n int64) string

func (f NumberFormatterFunc) FormatInteger(n int64) string {
	return f(n)
}

type localeFormatter struct {
	printer *message.Printer
}

// NewNumberFormatter returns a formatter for the given BCP 47 locale. An empty
// or malformed locale falls back to DefaultLocale.
func NewNumberFormatter(locale string) NumberFormatter {
	tag, err := language.Parse(locale)
	if err != nil || locale == "" {
		tag = language.MustParse(DefaultLocale)
	}
	return &localeFormatter{printer: message.NewPrinter(tag)}
}

func (f *localeFormatter) FormatInteger(n int64) string {
	return f.printer.Sprint(number.Decimal(n, number.MaxFractionDigits(0)))
}

// FormatInteger renders n with the digit grouping of locale and no fractional
// digits.
func FormatInteger(n int64, locale string) string {
	return NewNumberFormatter(locale).FormatInteger(n)
}
