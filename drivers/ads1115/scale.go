package ads1115

import (
	"math"

	"ads1115-go/x/mathx"
)

// ScaleToVoltage converts a conversion code to volts: raw * FS / 32768.
// The code range is asymmetric, so -32768 maps to exactly -FS while 32767
// stops one LSB short of +FS.
func ScaleToVoltage(raw int16, g Gain) float64 {
	return float64(raw) * g.FullScale() / 32768.0
}

// VoltageToCode converts volts to the nearest code, saturating at the
// representable range of the gain.
func VoltageToCode(v float64, g Gain) int16 {
	code := math.Round(v * 32768.0 / g.FullScale())
	return int16(mathx.Clamp(code, math.MinInt16, math.MaxInt16))
}

// Sample is one conversion result with its calibrated voltage.
type Sample struct {
	Raw   int16
	Volts float64
}

func newSample(raw int16, g Gain) Sample {
	return Sample{Raw: raw, Volts: ScaleToVoltage(raw, g)}
}
