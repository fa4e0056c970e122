// Package utils provides shared formatting and classification helpers
package utils

import (
	"math"
	"regexp"
	"strconv"
	"strings"
	"time"
)

const (
	// DefaultByteDecimals is the precision used by FormatBytes
	DefaultByteDecimals = 2
	// DefaultPercentDecimals is the precision used by CalculatePercentage
	DefaultPercentDecimals = 1

	maxDecimals = 15
	bytesUnit   = 1024
	gigabyte    = bytesUnit * bytesUnit * bytesUnit
)

var byteUnits = []string{"Bytes", "KB", "MB", "GB", "TB", "PB"}

// QualityCategories lists every QualityCategory label, best first
var QualityCategories = []string{"4K", "1080p", "720p", "480p", "SD", "Unknown"}

// SizeCategories lists every SizeCategory label, largest first
var SizeCategories = []string{
	"Very Large (50GB+)",
	"Large (20-50GB)",
	"Medium (5-20GB)",
	"Small (1-5GB)",
	"Very Small (<1GB)",
}

var (
	resolutionPattern = regexp.MustCompile(`(\d+)x(\d+)`)
	reservedChars     = regexp.MustCompile(`[<>:"/\\|?*]`)
	// Matches the JavaScript \s class so names sanitize the same in the browser.
	whitespaceRun = regexp.MustCompile(`[\t\n\v\f\r \x{00A0}\x{1680}\x{2000}-\x{200A}\x{2028}\x{2029}\x{202F}\x{205F}\x{3000}\x{FEFF}]+`)
)

// nowFunc is swapped in tests
var nowFunc = time.Now

// Resolution is a parsed "<width>x<height>" pair
type Resolution struct {
	Width  int
	Height int
}

// String renders the resolution back as "WxH"
func (r Resolution) String() string {
	return strconv.Itoa(r.Width) + "x" + strconv.Itoa(r.Height)
}

// FormatBytes converts bytes to a human-readable string with two decimals (e.g. "1.5 KB")
func FormatBytes(bytes float64) string {
	return FormatBytesPrecision(bytes, DefaultByteDecimals)
}

// FormatBytesPrecision is FormatBytes with an explicit number of decimals.
// Trailing zeros are dropped, so 1024 renders as "1 KB".
func FormatBytesPrecision(bytes float64, decimals int) string {
	bytes = nonNegative(bytes)
	if bytes == 0 {
		return "0 Bytes"
	}
	if decimals < 0 {
		decimals = 0
	}

	// Dividing by 1024 is exact, unlike log(bytes)/log(1024) at tier edges
	i := 0
	for bytes >= bytesUnit && i < len(byteUnits)-1 {
		bytes /= bytesUnit
		i++
	}

	value := roundTo(bytes, decimals)
	return strconv.FormatFloat(value, 'f', -1, 64) + " " + byteUnits[i]
}

// FormatFileSize converts file size (int64) to human-readable format
func FormatFileSize(size int64) string {
	return FormatBytes(float64(size))
}

// FormatDuration renders milliseconds as "1h 1m", "1m 5s" or "5s"
func FormatDuration(ms int64) string {
	if ms < 0 {
		ms = 0
	}
	seconds := ms / 1000
	minutes := seconds / 60
	hours := minutes / 60

	switch {
	case hours > 0:
		return strconv.FormatInt(hours, 10) + "h " + strconv.FormatInt(minutes%60, 10) + "m"
	case minutes > 0:
		return strconv.FormatInt(minutes, 10) + "m " + strconv.FormatInt(seconds%60, 10) + "s"
	default:
		return strconv.FormatInt(seconds, 10) + "s"
	}
}

// FormatBitrate renders bits per second as Mbps, Kbps or bps
func FormatBitrate(bps int64) string {
	if bps < 0 {
		bps = 0
	}
	switch {
	case bps >= 1_000_000:
		return strconv.FormatFloat(roundTo(float64(bps)/1_000_000, 1), 'f', 1, 64) + " Mbps"
	case bps >= 1_000:
		return strconv.FormatFloat(roundTo(float64(bps)/1_000, 0), 'f', 0, 64) + " Kbps"
	default:
		return strconv.FormatInt(bps, 10) + " bps"
	}
}

// ParseResolution extracts the first "<digits>x<digits>" in text.
// ok is false when nothing matches or a side does not fit in an int.
func ParseResolution(text string) (res Resolution, ok bool) {
	m := resolutionPattern.FindStringSubmatch(text)
	if m == nil {
		return Resolution{}, false
	}
	w, err := strconv.Atoi(m[1])
	if err != nil {
		return Resolution{}, false
	}
	h, err := strconv.Atoi(m[2])
	if err != nil {
		return Resolution{}, false
	}
	return Resolution{Width: w, Height: h}, true
}

// QualityCategory buckets a resolution string by its height
func QualityCategory(resolution string) string {
	res, ok := ParseResolution(resolution)
	if !ok {
		return "Unknown"
	}
	switch {
	case res.Height >= 2160:
		return "4K"
	case res.Height >= 1080:
		return "1080p"
	case res.Height >= 720:
		return "720p"
	case res.Height >= 480:
		return "480p"
	default:
		return "SD"
	}
}

// SizeCategory buckets a byte count by its size in gigabytes
func SizeCategory(bytes int64) string {
	gb := float64(max(bytes, 0)) / gigabyte
	switch {
	case gb >= 50:
		return "Very Large (50GB+)"
	case gb >= 20:
		return "Large (20-50GB)"
	case gb >= 5:
		return "Medium (5-20GB)"
	case gb >= 1:
		return "Small (1-5GB)"
	default:
		return "Very Small (<1GB)"
	}
}

// CalculatePercentage returns value as a percentage of total, rounded to one decimal
func CalculatePercentage(value, total float64) float64 {
	return CalculatePercentagePrecision(value, total, DefaultPercentDecimals)
}

// CalculatePercentagePrecision is CalculatePercentage with an explicit number of decimals.
// A zero total yields 0.
func CalculatePercentagePrecision(value, total float64, decimals int) float64 {
	value, total = nonNegative(value), nonNegative(total)
	if total == 0 {
		return 0
	}
	if decimals < 0 {
		decimals = 0
	}
	return roundTo(value/total*100, decimals)
}

// SanitizeFilename replaces reserved characters and whitespace runs with "_" and lower-cases the result
func SanitizeFilename(name string) string {
	name = reservedChars.ReplaceAllString(name, "_")
	name = whitespaceRun.ReplaceAllString(name, "_")
	return strings.ToLower(name)
}

// TimestampString returns today's UTC date as YYYY-MM-DD
func TimestampString() string {
	return nowFunc().UTC().Format(time.DateOnly)
}

// roundTo rounds half away from zero at the given number of decimals
func roundTo(v float64, decimals int) float64 {
	if decimals > maxDecimals {
		decimals = maxDecimals
	}
	p := math.Pow(10, float64(decimals))
	return math.Round(v*p) / p
}

// nonNegative maps negative, NaN and infinite input to zero
func nonNegative(v float64) float64 {
	if v < 0 || math.IsNaN(v) || math.IsInf(v, 0) {
		return 0
	}
	return v
}
