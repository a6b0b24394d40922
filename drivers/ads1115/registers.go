// Package ads1115 provides constants for register addresses and bitfields used
// in the operation of the ADS1115 16-bit delta-sigma ADC.
package ads1115

// 7-bit I2C addresses selected by the ADDR strap.
const (
	AddressGND = 0x48
	AddressVCC = 0x49
	AddressSDA = 0x4A
	AddressSCL = 0x4B
)

// Register is a register pointer value.
type Register uint8

const (
	RegConversion    Register = 0x00 // R
	RegConfig        Register = 0x01 // R/W
	RegLowThreshold  Register = 0x02 // R/W
	RegHighThreshold Register = 0x03 // R/W
)

func (r Register) String() string {
	switch r {
	case RegConversion:
		return "conversion"
	case RegConfig:
		return "config"
	case RegLowThreshold:
		return "lo_thresh"
	case RegHighThreshold:
		return "hi_thresh"
	default:
		return "unknown"
	}
}

// --- CONFIG register bit positions (0x01) ---
const (
	cfgOSShift       = 15
	cfgMuxShift      = 12
	cfgPGAShift      = 9
	cfgModeShift     = 8
	cfgDRShift       = 5
	cfgCompModeShift = 4
	cfgCompPolShift  = 3
	cfgCompLatShift  = 2
	cfgCompQueShift  = 0

	cfgOS       uint16 = 1 << cfgOSShift
	cfgMuxMask  uint16 = 0x7 << cfgMuxShift
	cfgPGAMask  uint16 = 0x7 << cfgPGAShift
	cfgMode     uint16 = 1 << cfgModeShift
	cfgDRMask   uint16 = 0x7 << cfgDRShift
	cfgCompMode uint16 = 1 << cfgCompModeShift
	cfgCompPol  uint16 = 1 << cfgCompPolShift
	cfgCompLat  uint16 = 1 << cfgCompLatShift
	cfgQueMask  uint16 = 0x3 << cfgCompQueShift
)

const (
	// ConfigPowerOn is the register value after reset (AIN0-AIN1, ±2.048 V,
	// single-shot, 128 SPS, comparator disabled).
	ConfigPowerOn ConfigWord = 0x8583

	// ConfigReadMask drops the OS bit, which reads back as conversion status
	// rather than the value last written.
	ConfigReadMask uint16 = ^cfgOS

	// Threshold register values after reset.
	LowThresholdPowerOn  int16 = -32768
	HighThresholdPowerOn int16 = 32767
)
