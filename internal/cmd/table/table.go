// Package table converts roster data into rows for table output.
package table

import (
	"strconv"
)

// Align represents column alignment in tables.
type Align int

const (
	// AlignDefault uses the default alignment (skip).
	AlignDefault Align = iota
	// AlignLeft aligns content to the left.
	AlignLeft
	// AlignCenter centers content.
	AlignCenter
	// AlignRight aligns content to the right.
	AlignRight
)

// Data represents table formatting data to avoid import cycles.
type Data struct {
	Headers         []string
	Rows            [][]string
	ColumnAlignment []Align // Optional: column alignment
}

// FormatNumber formats integers with comma separators.
func FormatNumber(n int) string {
	str := strconv.Itoa(n)
	sign := ""
	if n < 0 {
		sign, str = "-", str[1:]
	}
	if len(str) <= 3 {
		return sign + str
	}

	result := ""
	for i, r := range str {
		if i > 0 && (len(str)-i)%3 == 0 {
			result += ","
		}
		result += string(r)
	}
	return sign + result
}

// FormatChange formats a signed change the way the leaderboard shows it:
// "+12", "-3" or "0".
func FormatChange(n int) string {
	if n > 0 {
		return "+" + FormatNumber(n)
	}
	return FormatNumber(n)
}

// orDash substitutes "-" for empty cells.
func orDash(s string) string {
	if s == "" {
		return "-"
	}
	return s
}
