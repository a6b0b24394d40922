package ads1115

// I2C 16-bit register operations (big-endian: MSB then LSB).

// ReadRegister writes the register pointer and reads two bytes back.
// Bus errors are returned as *TransportError without retry.
func (d *Device) ReadRegister(reg Register) (uint16, error) {
	d.w[0] = byte(reg)
	if err := d.i2c.Tx(d.addr, d.w[:1], d.r[:2]); err != nil {
		return 0, &TransportError{Op: "read", Reg: reg, Err: err}
	}
	return uint16(d.r[0])<<8 | uint16(d.r[1]), nil
}

// WriteRegister writes the register pointer followed by the 16-bit value.
func (d *Device) WriteRegister(reg Register, val uint16) error {
	d.w[0] = byte(reg)
	d.w[1] = byte(val >> 8) // high
	d.w[2] = byte(val)      // low
	if err := d.i2c.Tx(d.addr, d.w[:3], nil); err != nil {
		return &TransportError{Op: "write", Reg: reg, Err: err}
	}
	return nil
}

func (d *Device) readS16(reg Register) (int16, error) {
	u, err := d.ReadRegister(reg)
	return int16(u), err
}
