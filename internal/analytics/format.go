package analytics

import (
	"fmt"
	"strconv"
	"strings"
)

// FormatWatchTime renders minutes as "1,234h 5m", or "45m" under an hour
func FormatWatchTime(minutes int) string {
	if minutes >= 60 {
		return fmt.Sprintf("%sh %dm", FormatThousands(minutes/60), minutes%60)
	}
	return fmt.Sprintf("%dm", minutes)
}

// FormatNumber abbreviates large figures: 1.2M, 3.4K
func FormatNumber(n int) string {
	switch {
	case n >= 1000000:
		return fmt.Sprintf("%.1fM", float64(n)/1000000)
	case n >= 1000:
		return fmt.Sprintf("%.1fK", float64(n)/1000)
	default:
		return strconv.Itoa(n)
	}
}

// FormatViews abbreviates view counts, dropping a trailing ".0": 2K, 2.3K
func FormatViews(n int) string {
	if n >= 1000 {
		return strings.TrimSuffix(fmt.Sprintf("%.1f", float64(n)/1000), ".0") + "K"
	}
	return strconv.Itoa(n)
}

// FormatDuration renders seconds as m:ss
func FormatDuration(seconds int) string {
	return fmt.Sprintf("%d:%02d", seconds/60, seconds%60)
}

// FormatThousands inserts comma separators
func FormatThousands(n int) string {
	s := strconv.Itoa(n)
	neg := strings.HasPrefix(s, "-")
	if neg {
		s = s[1:]
	}

	var b strings.Builder
	for i, r := range s {
		if i > 0 && (len(s)-i)%3 == 0 {
			b.WriteByte(',')
		}
		b.WriteRune(r)
	}

	if neg {
		return "-" + b.String()
	}
	return b.String()
}
