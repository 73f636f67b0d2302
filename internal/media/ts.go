package media

import (
	"fmt"
	"strconv"
	"strings"
)

// TS is a media timestamp or duration in seconds.
type TS float64

// Milliseconds builds a timestamp from an integer millisecond count.
func Milliseconds(ms int64) TS {
	return TS(float64(ms) / 1000.0)
}

// ParseTS parses an ffmpeg interval definition such as "123:59:59.999",
// "59:59.25" or plain "12.5".
func ParseTS(value string) (TS, error) {
	value = strings.TrimSpace(value)
	if value == "" {
		return 0, fmt.Errorf("parse timestamp: empty value")
	}
	whole := value
	fractional := 0.0
	if idx := strings.IndexByte(value, '.'); idx >= 0 {
		whole = value[:idx]
		parsed, err := strconv.ParseFloat("0."+value[idx+1:], 64)
		if err != nil {
			return 0, fmt.Errorf("parse timestamp %q: %w", value, err)
		}
		fractional = parsed
	}
	seconds := 0
	for _, part := range strings.Split(whole, ":") {
		n, err := strconv.Atoi(part)
		if err != nil {
			return 0, fmt.Errorf("parse timestamp %q: %w", value, err)
		}
		seconds = seconds*60 + n
	}
	return TS(float64(seconds) + fractional), nil
}

// Seconds returns the timestamp as a plain float64 second count.
func (t TS) Seconds() float64 {
	return float64(t)
}

// Milliseconds returns the timestamp as whole milliseconds.
func (t TS) Milliseconds() int64 {
	return int64(float64(t) * 1000)
}

// String renders the timestamp in ffmpeg seconds form ("123456.999"),
// without trailing zeros in the fractional part.
func (t TS) String() string {
	return strconv.FormatFloat(float64(t), 'f', -1, 64)
}
