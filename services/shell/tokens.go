package shell

import (
	"math"
	"strconv"

	"ads1115-go/drivers/ads1115"
)

// Accepted command-line tokens. Parsing happens once here; the harness only
// sees typed values.
var (
	addressTokens = map[string]ads1115.Address{
		"GND": ads1115.AddrGND,
		"VCC": ads1115.AddrVCC,
		"SDA": ads1115.AddrSDA,
		"SCL": ads1115.AddrSCL,
	}
	channelTokens = map[string]ads1115.Channel{
		"AIN0_AIN1": ads1115.ChannelAIN0AIN1,
		"AIN0_AIN3": ads1115.ChannelAIN0AIN3,
		"AIN1_AIN3": ads1115.ChannelAIN1AIN3,
		"AIN2_AIN3": ads1115.ChannelAIN2AIN3,
		"AIN0_GND":  ads1115.ChannelAIN0GND,
		"AIN1_GND":  ads1115.ChannelAIN1GND,
		"AIN2_GND":  ads1115.ChannelAIN2GND,
		"AIN3_GND":  ads1115.ChannelAIN3GND,
	}
	compareTokens = map[string]ads1115.CompareMode{
		"THRESHOLD": ads1115.CompareThreshold,
		"WINDOW":    ads1115.CompareWindow,
	}
)

// lookup resolves tok in m by exact match.
func lookup[T any](m map[string]T, tok string) (T, bool) {
	v, ok := m[tok]
	return v, ok
}

// parseTimes accepts a non-negative decimal count.
func parseTimes(tok string) (int, bool) {
	n, err := strconv.Atoi(tok)
	if err != nil || n < 0 {
		return 0, false
	}
	return n, true
}

func parseVolts(tok string) (float64, bool) {
	v, err := strconv.ParseFloat(tok, 64)
	if err != nil || math.IsNaN(v) || math.IsInf(v, 0) {
		return 0, false
	}
	return v, true
}
