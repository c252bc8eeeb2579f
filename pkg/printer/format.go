package printer

import (
	"fmt"
	"math"
	"strings"
	"time"

	"golang.org/x/text/language"
	"golang.org/x/text/message"
)

var countPrinter = message.NewPrinter(language.English)

// FormatScore renders a 0-100 trust score as "N/100", rounding half away
// from zero. Out-of-range values are clamped; NaN and infinities render "?/100".
func FormatScore(score float64) string {
	if math.IsNaN(score) || math.IsInf(score, 0) {
		return "?/100"
	}
	score = math.Max(0, math.Min(100, score))
	return fmt.Sprintf("%d/100", int(math.Round(score)))
}

// FormatCount renders an integer with thousands separators, e.g. 12,345.
func FormatCount(n int64) string {
	return countPrinter.Sprintf("%d", n)
}

// Timestamps emitted by the registry. Fractional seconds are accepted by
// time.Parse even when the layout omits them.
var dateLayouts = []string{
	time.RFC3339,
	"2006-01-02T15:04:05",
	"2006-01-02 15:04:05",
	"2006-01-02",
}

// FormatDate renders a timestamp as a calendar date. Input that cannot be
// parsed is returned unchanged.
func FormatDate(ts string) string {
	trimmed := strings.TrimSpace(ts)
	for _, layout := range dateLayouts {
		if t, err := time.Parse(layout, trimmed); err == nil {
			return t.Format(time.DateOnly)
		}
	}
	return ts
}
