// Package dateformat formats times with the mask syntax used by the JavaScript dateformat
// package (for example "yyyy-mm-dd HH:MM:ss"), which is what report configs carry.
package dateformat

import (
	"fmt"
	"regexp"
	"strconv"
	"time"
)

// Default is the mask used when none is configured.
const Default = "yyyy-mm-dd HH:MM:ss"

var tokenPattern = regexp.MustCompile(`d{1,4}|m{1,4}|yy(?:yy)?|HH?|hh?|MM?|ss?|TT?|tt?|[LlSZo]|"[^"]*"|'[^']*'`)

// Format renders t with the mask. Characters which are not part of a token are copied as is,
// quoted sections are copied without their quotes.
func Format(t time.Time, mask string) string {
	return tokenPattern.ReplaceAllStringFunc(mask, func(token string) string {
		return formatToken(t, token)
	})
}

// FromEpochMillis converts a runner timestamp to local time.
func FromEpochMillis(ms float64) time.Time {
	return time.UnixMilli(int64(ms))
}

func formatToken(t time.Time, token string) string {
	switch token {
	case "d":
		return strconv.Itoa(t.Day())
	case "dd":
		return pad(t.Day(), 2)
	case "ddd":
		return t.Weekday().String()[:3]
	case "dddd":
		return t.Weekday().String()
	case "m":
		return strconv.Itoa(int(t.Month()))
	case "mm":
		return pad(int(t.Month()), 2)
	case "mmm":
		return t.Month().String()[:3]
	case "mmmm":
		return t.Month().String()
	case "yy":
		return pad(t.Year()%100, 2)
	case "yyyy":
		return pad(t.Year(), 4)
	case "h":
		return strconv.Itoa(twelveHour(t))
	case "hh":
		return pad(twelveHour(t), 2)
	case "H":
		return strconv.Itoa(t.Hour())
	case "HH":
		return pad(t.Hour(), 2)
	case "M":
		return strconv.Itoa(t.Minute())
	case "MM":
		return pad(t.Minute(), 2)
	case "s":
		return strconv.Itoa(t.Second())
	case "ss":
		return pad(t.Second(), 2)
	case "l":
		return pad(millis(t), 3)
	case "L":
		return pad(millis(t)/10, 2)
	case "t":
		return meridiem(t, "a", "p")
	case "tt":
		return meridiem(t, "am", "pm")
	case "T":
		return meridiem(t, "A", "P")
	case "TT":
		return meridiem(t, "AM", "PM")
	case "Z":
		return t.Format("MST")
	case "o":
		return t.Format("-0700")
	case "S":
		return ordinal(t.Day())
	default:
		// quoted literal
		return token[1 : len(token)-1]
	}
}

func pad(n, width int) string {
	return fmt.Sprintf("%0*d", width, n)
}

func millis(t time.Time) int {
	return t.Nanosecond() / int(time.Millisecond)
}

func twelveHour(t time.Time) int {
	if h := t.Hour() % 12; h != 0 {
		return h
	}
	return 12
}

func meridiem(t time.Time, am, pm string) string {
	if t.Hour() < 12 {
		return am
	}
	return pm
}

func ordinal(day int) string {
	if day%100 >= 11 && day%100 <= 13 {
		return "th"
	}
	switch day % 10 {
	case 1:
		return "st"
	case 2:
		return "nd"
	case 3:
		return "rd"
	default:
		return "th"
	}
}
