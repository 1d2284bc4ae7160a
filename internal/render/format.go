package render

import (
	"math"
	"strconv"
	"strings"
	"time"

	"github.com/dustin/go-humanize"
)

var byteUnits = []string{"B", "KB", "MB", "GB", "TB"}

// FormatBytes renders a byte count in 1024-based units, rounded to two
// decimals with trailing zeros dropped ("1.5 KB", "512 B"). Zero is "0 B"
// and never reaches the logarithm. Counts past the TB range stay in TB and
// fractions of a byte stay in B.
func FormatBytes(bytes float64) string {
	if bytes <= 0 || math.IsNaN(bytes) {
		return "0 B"
	}
	i := int(math.Floor(math.Log(bytes) / math.Log(1024)))
	i = max(0, min(i, len(byteUnits)-1))

	v := bytes / math.Pow(1024, float64(i))
	v = math.Round(v*100) / 100
	return strconv.FormatFloat(v, 'f', -1, 64) + " " + byteUnits[i]
}

// uptimeMagnitudes phrase a duration by its largest unit. Counts are
// truncated, and a unit reads in the singular ("a day") until two whole
// units have passed. go-humanize months are 30 days and years 360.
var uptimeMagnitudes = []humanize.RelTimeMagnitude{
	{D: 45 * time.Second, Format: "a few seconds", DivBy: time.Second},
	{D: 2 * time.Minute, Format: "a minute", DivBy: time.Minute},
	{D: 45 * time.Minute, Format: "%d minutes", DivBy: time.Minute},
	{D: 2 * time.Hour, Format: "an hour", DivBy: time.Hour},
	{D: 22 * time.Hour, Format: "%d hours", DivBy: time.Hour},
	{D: 2 * humanize.Day, Format: "a day", DivBy: humanize.Day},
	{D: 26 * humanize.Day, Format: "%d days", DivBy: humanize.Day},
	{D: 60 * humanize.Day, Format: "a month", DivBy: humanize.Month},
	{D: 320 * humanize.Day, Format: "%d months", DivBy: humanize.Month},
	{D: 2 * humanize.Year, Format: "a year", DivBy: humanize.Year},
	{D: math.MaxInt64, Format: "%d years", DivBy: humanize.Year},
}

// maxUptime keeps the seconds-to-Duration conversion from overflowing.
const maxUptime = 200 * humanize.Year

// HumanizeUptime phrases an uptime in seconds, e.g. "3 days".
func HumanizeUptime(seconds float64) string {
	if seconds < 0 || math.IsNaN(seconds) {
		seconds = 0
	}
	d := maxUptime
	if seconds < maxUptime.Seconds() {
		d = time.Duration(seconds * float64(time.Second))
	}

	start := time.Unix(0, 0)
	return strings.TrimSpace(humanize.CustomRelTime(start, start.Add(d), "", "", uptimeMagnitudes))
}
