package clock

import (
	"fmt"
	"math"
	"time"
)

// The epoch counter is anchored at 2017-01-01 00:00:00 UTC.
const anchorUnix int64 = 1483228800

var monthNames = [12]string{
	"Jan", "Feb", "Mar",
	"Apr", "May", "Jun",
	"Jul", "Aug", "Sep",
	"Oct", "Nov", "Dec",
}

var monthLengths = [12]int64{31, 28, 31, 30, 31, 30, 31, 31, 30, 31, 30, 31}

// EpochAt returns the epoch for a wall-clock instant, so a freshly
// started simulation shows the present date.
func EpochAt(t time.Time) float64 {
	return float64(t.Unix() - anchorUnix)
}

// FormatEpoch renders an epoch second count as a calendar date such as
// "Jan. 1 2017 00:00:00 UTC". Counts before the anchor clamp to it.
func FormatEpoch(epochSeconds int64) string {
	if epochSeconds < 0 {
		epochSeconds = 0
	}

	seconds := epochSeconds % 60
	minutes := (epochSeconds / 60) % 60
	hours := (epochSeconds / 3600) % 24
	days := epochSeconds / 86400

	year := 2017
	for {
		daysInYear := int64(365)
		if isLeapYear(year) {
			daysInYear = 366
		}
		if days < daysInYear {
			break
		}
		days -= daysInYear
		year++
	}

	month := 0
	for {
		daysInMonth := monthLengths[month]
		if month == 1 && isLeapYear(year) {
			daysInMonth = 29
		}
		if days < daysInMonth {
			break
		}
		days -= daysInMonth
		month++
	}

	return fmt.Sprintf("%s. %d %d %02d:%02d:%02d UTC",
		monthNames[month], days+1, year, hours, minutes, seconds)
}

// FormatWarp renders a warp multiplier for the HUD, collapsing the
// ladder steps to their natural unit.
func FormatWarp(warp float64) string {
	switch {
	case warp >= 31536000:
		return fmt.Sprintf("%gy/s", warp/31536000)
	case warp >= 86400:
		return fmt.Sprintf("%gd/s", warp/86400)
	case warp >= 3600:
		return fmt.Sprintf("%gh/s", warp/3600)
	case warp >= 60:
		return fmt.Sprintf("%gm/s", warp/60)
	default:
		return fmt.Sprintf("%gx", warp)
	}
}

// FloorEpoch truncates a fractional epoch toward negative infinity for
// display purposes.
func FloorEpoch(epoch float64) int64 {
	return int64(math.Floor(epoch))
}

// isLeapYear follows the Gregorian rule.
func isLeapYear(year int) bool {
	return (year%4 == 0 && year%100 != 0) || year%400 == 0
}
