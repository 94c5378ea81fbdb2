package cli

import (
	"fmt"
	"io"
	"strings"

	"github.com/AI2HU/gdc/internal/analytics"
	"github.com/AI2HU/gdc/internal/models"
)

// ANSI color codes for consistent styling across all CLI commands
const (
	Reset = "\033[0m"

	Red     = "\033[31m"
	Green   = "\033[32m"
	Yellow  = "\033[33m"
	Blue    = "\033[34m"
	Magenta = "\033[35m"
	Cyan    = "\033[36m"
	White   = "\033[37m"
	Gray    = "\033[90m"

	Bold = "\033[1m"
	Dim  = "\033[2m"
)

// Predefined color combinations for consistency
var (
	HeaderStyle = Cyan + Bold
	TitleStyle  = Magenta + Bold

	SuccessStyle = Green + Bold
	ErrorStyle   = Red + Bold
	WarningStyle = Yellow + Bold
	InfoStyle    = Blue + Bold

	LabelStyle = Cyan
	ValueStyle = White + Bold
	DimStyle   = Dim
	CountStyle = Yellow + Bold
	MetaStyle  = Gray
)

func FormatHeader(text string) string {
	return HeaderStyle + text + Reset
}

func FormatTitle(text string) string {
	return TitleStyle + text + Reset
}

func FormatError(text string) string {
	return ErrorStyle + text + Reset
}

func FormatInfo(text string) string {
	return InfoStyle + text + Reset
}

func FormatSuccess(text string) string {
	return SuccessStyle + text + Reset
}

func FormatWarning(text string) string {
	return WarningStyle + text + Reset
}

func FormatLabel(text string) string {
	return LabelStyle + text + Reset
}

func FormatValue(text string) string {
	return ValueStyle + text + Reset
}

// FormatCount renders an integer with thousands separators
func FormatCount(count int) string {
	return CountStyle + analytics.FormatThousands(count) + Reset
}

func FormatMeta(text string) string {
	return MetaStyle + text + Reset
}

// FormatLabelValue formats a label-value pair
func FormatLabelValue(label, value string) string {
	return LabelStyle + label + Reset + " " + ValueStyle + value + Reset
}

// FormatState colours a display state: green when playable, yellow when coming soon
func FormatState(state models.DisplayState) string {
	if state == models.ComingSoon {
		return WarningStyle + "coming soon" + Reset
	}
	return SuccessStyle + "playable" + Reset
}

// FormatPercent renders a percentage with a proportional bar, 1 cell per 2 points
func FormatPercent(pct float64) string {
	cells := int(pct / 2)
	if cells < 1 {
		cells = 1
	}
	return fmt.Sprintf("%s%5.1f%%%s %s%s%s", CountStyle, pct, Reset, Blue, strings.Repeat("█", cells), Reset)
}

// banner prints an emoji title with an underline sized to it
func banner(w io.Writer, title string) {
	fmt.Fprintln(w, FormatHeader(title))
	fmt.Fprintf(w, "%s%s%s\n\n", DimStyle, strings.Repeat("=", len([]rune(title))+1), Reset)
}
