package ads1115

import (
	"errors"
	"math"
	"testing"
	"time"

	"ads1115-go/drivers/ads1115/adssim"
	"ads1115-go/types"
)

// Compile-time check.
var _ AlertSignal = (*flag)(nil)

type flag struct{ set bool }

func (f *flag) Observed() bool { return f.set }
func (f *flag) Clear()         { f.set = false }

func newDev(t *testing.T) (*Device, *adssim.Chip) {
	t.Helper()
	chip := adssim.New(AddressGND)
	d, err := New(chip, Config{Address: AddrGND, Sleep: chip.Advance})
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	if err := d.Init(); err != nil {
		t.Fatalf("Init: %v", err)
	}
	return d, chip
}

func TestNewRejectsAddress(t *testing.T) {
	_, err := New(adssim.New(AddressGND), Config{Address: 4})
	if !errors.Is(err, ErrConfig) {
		t.Fatalf("err=%v want ErrConfig", err)
	}
}

func TestInitAdoptsPowerOn(t *testing.T) {
	d, _ := newDev(t)
	if d.Cached() != ConfigPowerOn&ConfigWord(ConfigReadMask) {
		t.Fatalf("cached=%#04x", uint16(d.Cached()))
	}
	if d.State() != StateIdle || d.Gain() != Gain2V048 {
		t.Fatalf("state=%v gain=%v", d.State(), d.Gain())
	}
	th, err := d.ReadThresholds()
	if err != nil {
		t.Fatal(err)
	}
	if th.Low != LowThresholdPowerOn || th.High != HighThresholdPowerOn {
		t.Fatalf("thresholds=%+v", th)
	}
}

func TestRegisterBigEndian(t *testing.T) {
	d, chip := newDev(t)
	if err := d.WriteRegister(RegHighThreshold, 0x1234); err != nil {
		t.Fatal(err)
	}
	if got := chip.Peek(uint8(RegHighThreshold)); got != 0x1234 {
		t.Fatalf("stored=%#04x", got)
	}
	v, err := d.ReadRegister(RegHighThreshold)
	if err != nil || v != 0x1234 {
		t.Fatalf("read=%#04x err=%v", v, err)
	}
}

func TestReadSingleScalesAtGain(t *testing.T) {
	d, chip := newDev(t)
	chip.SetInput(0, 1.024)
	s, err := d.ReadSingle(ChannelAIN0GND, Gain2V048)
	if err != nil {
		t.Fatalf("ReadSingle: %v", err)
	}
	if s.Raw != 16384 || math.Abs(s.Volts-1.024) > 1e-12 {
		t.Fatalf("sample=%+v", s)
	}
	if d.State() != StateIdle {
		t.Fatalf("state=%v want idle", d.State())
	}
}

func TestChannelIsolation(t *testing.T) {
	d, chip := newDev(t)
	chip.SetInput(0, 0.5)
	chip.SetInput(1, 1.0)
	chip.SetInput(2, 1.5)
	chip.SetInput(3, 0.25)
	want := map[Channel]float64{
		ChannelAIN0AIN1: -0.5,
		ChannelAIN0AIN3: 0.25,
		ChannelAIN1AIN3: 0.75,
		ChannelAIN2AIN3: 1.25,
		ChannelAIN0GND:  0.5,
		ChannelAIN1GND:  1.0,
		ChannelAIN2GND:  1.5,
		ChannelAIN3GND:  0.25,
	}
	for _, ch := range Channels {
		s, err := d.ReadSingle(ch, Gain2V048)
		if err != nil {
			t.Fatalf("%v: %v", ch, err)
		}
		if math.Abs(s.Volts-want[ch]) > Gain2V048.LSB() {
			t.Fatalf("%v: %.5f V want %.5f", ch, s.Volts, want[ch])
		}
	}
}

func TestMuxReadbackOnlyLatestChannel(t *testing.T) {
	d, _ := newDev(t)
	if err := d.StartContinuous(ChannelAIN3GND, Gain2V048, Rate128SPS); err != nil {
		t.Fatal(err)
	}
	if err := d.SelectInput(ChannelAIN0AIN1, Gain2V048); err != nil {
		t.Fatal(err)
	}
	w, err := d.ReadConfig()
	if err != nil {
		t.Fatal(err)
	}
	if w.Channel() != ChannelAIN0AIN1 {
		t.Fatalf("mux=%v want AIN0_AIN1", w.Channel())
	}
}

func TestPollBoundAt128SPS(t *testing.T) {
	d, _ := newDev(t)
	// ceil((7.813 ms + 10 ms) / 1 ms) + 1
	if got := d.PollBound(Rate128SPS); got != 19 {
		t.Fatalf("PollBound=%d want 19", got)
	}
}

func TestPollTimeout(t *testing.T) {
	d, chip := newDev(t)
	chip.SetStuck(true)
	if err := d.StartSingleShot(ChannelAIN0GND, Gain2V048); err != nil {
		t.Fatal(err)
	}
	before := chip.Stats().Reads[RegConfig]
	err := d.PollUntilReady(Rate128SPS)
	if !errors.Is(err, ErrConversionTimeout) {
		t.Fatalf("err=%v want ErrConversionTimeout", err)
	}
	if n := chip.Stats().Reads[RegConfig] - before; n != 19 {
		t.Fatalf("config reads=%d want 19", n)
	}
	if d.State() != StateConverting {
		t.Fatalf("state=%v", d.State())
	}
}

func TestTransportErrorWrapped(t *testing.T) {
	d, chip := newDev(t)
	boom := errors.New("bus fault")
	chip.FailWith(boom, 0)
	_, err := d.ReadSingle(ChannelAIN0GND, Gain2V048)
	var te *TransportError
	if !errors.As(err, &te) || te.Op != "write" || te.Reg != RegConfig {
		t.Fatalf("err=%v", err)
	}
	if !errors.Is(err, boom) || !IsTransport(err) {
		t.Fatal("transport error should unwrap to the bus error")
	}
	if d.State() != StateIdle {
		t.Fatalf("state=%v want idle after failed write", d.State())
	}
}

func TestInvalidParamsTouchNothing(t *testing.T) {
	d, chip := newDev(t)
	before := chip.Stats().Tx
	if err := d.StartSingleShot(Channel(9), Gain2V048); !errors.Is(err, ErrConfig) {
		t.Fatalf("err=%v", err)
	}
	if err := d.StartContinuous(ChannelAIN0GND, Gain(7), Rate128SPS); !errors.Is(err, ErrConfig) {
		t.Fatalf("err=%v", err)
	}
	if err := d.SetDataRate(DataRate(9)); !errors.Is(err, ErrConfig) {
		t.Fatalf("err=%v", err)
	}
	if chip.Stats().Tx != before {
		t.Fatal("invalid parameters reached the bus")
	}
}

func TestContinuousSettlesBeforeFirstRead(t *testing.T) {
	d, chip := newDev(t)
	chip.SetInput(0, 1.0)
	chip.SetInput(1, 0.5)
	if err := d.StartContinuous(ChannelAIN0GND, Gain2V048, Rate128SPS); err != nil {
		t.Fatal(err)
	}
	s, err := d.ReadConversion()
	if err != nil || s.Raw != 16000 {
		t.Fatalf("first read %+v err=%v", s, err)
	}
	if err := d.SelectInput(ChannelAIN1GND, Gain2V048); err != nil {
		t.Fatal(err)
	}
	s, err = d.ReadConversion()
	if err != nil || s.Raw != 8000 {
		t.Fatalf("after SelectInput %+v err=%v", s, err)
	}
}

func TestStaleSampleWithoutSettle(t *testing.T) {
	d, chip := newDev(t)
	chip.SetInput(0, 1.0)
	chip.SetInput(1, 0.5)
	if err := d.StartContinuous(ChannelAIN0GND, Gain2V048, Rate128SPS); err != nil {
		t.Fatal(err)
	}
	// Reprogram the MUX by hand, skipping the settle wait.
	f := d.Fields()
	f.Channel = ChannelAIN1GND
	if err := d.WriteConfig(f); err != nil {
		t.Fatal(err)
	}
	s, _ := d.ReadConversion()
	if s.Raw != 16000 {
		t.Fatalf("raw=%d want stale 16000", s.Raw)
	}
	chip.Advance(d.SettleTime(Rate128SPS))
	s, _ = d.ReadConversion()
	if s.Raw != 8000 {
		t.Fatalf("raw=%d want 8000 after settle", s.Raw)
	}
}

func TestSelectInputNeedsContinuous(t *testing.T) {
	d, _ := newDev(t)
	if err := d.SelectInput(ChannelAIN1GND, Gain2V048); !errors.Is(err, ErrNotContinuous) {
		t.Fatalf("err=%v", err)
	}
}

func TestSetDataRateSingleShotIsCacheOnly(t *testing.T) {
	d, chip := newDev(t)
	before := chip.Stats().Writes[RegConfig]
	if err := d.SetDataRate(Rate860SPS); err != nil {
		t.Fatal(err)
	}
	if chip.Stats().Writes[RegConfig] != before {
		t.Fatal("single-shot SetDataRate wrote the register")
	}
	if d.Fields().DataRate != Rate860SPS {
		t.Fatal("cache not updated")
	}
}

func TestArmComparatorRejectsOrderWithoutWrites(t *testing.T) {
	d, chip := newDev(t)
	before := chip.Stats().Tx
	err := d.ArmComparator(ComparatorConfig{
		ComparatorSettings: ComparatorSettings{
			Channel: ChannelAIN0GND, Gain: Gain4V096, DataRate: Rate128SPS,
			Mode: CompareThreshold, Queue: QueueOne,
		},
		Low: 1.0, High: 0.5,
	})
	var ce *ConfigError
	if !errors.As(err, &ce) || ce.Field != "thresholds" {
		t.Fatalf("err=%v", err)
	}
	if chip.Stats().Tx != before {
		t.Fatal("rejected comparator config reached the bus")
	}
}

func TestEnableComparatorNeedsQueue(t *testing.T) {
	d, _ := newDev(t)
	err := d.EnableComparator(ComparatorSettings{Queue: QueueDisabled})
	if !errors.Is(err, ErrConfig) {
		t.Fatalf("err=%v", err)
	}
}

func TestWindowAlertEndToEnd(t *testing.T) {
	d, chip := newDev(t)
	var sig flag
	pin := chip.Pin()
	if err := pin.SetIRQ(types.EdgeFalling, func() { sig.set = true }); err != nil {
		t.Fatal(err)
	}

	cfg := ComparatorConfig{
		ComparatorSettings: ComparatorSettings{
			Channel:  ChannelAIN0GND,
			Gain:     Gain4V096,
			DataRate: Rate128SPS,
			Mode:     CompareWindow,
			Polarity: ActiveLow,
			Latch:    true,
			Queue:    QueueOne,
		},
		Low: -1.0, High: 1.0,
	}
	if err := d.ArmComparator(cfg); err != nil {
		t.Fatalf("ArmComparator: %v", err)
	}
	th, _ := d.ReadThresholds()
	if th != (Thresholds{Low: -8000, High: 8000}) {
		t.Fatalf("thresholds=%+v", th)
	}
	if !d.ComparatorEnabled() {
		t.Fatal("comparator not enabled")
	}

	// In range: no alert within the timeout.
	if _, err := d.WaitForAlert(&sig, 3); !errors.Is(err, ErrAlertTimeout) {
		t.Fatalf("in-range wait err=%v", err)
	}

	chip.SetInput(0, 2.0)
	s, err := d.WaitForAlert(&sig, 3)
	if err != nil {
		t.Fatalf("WaitForAlert: %v", err)
	}
	if s.Raw != 16000 || !th.Outside(s.Raw, CompareWindow) {
		t.Fatalf("trigger sample %+v", s)
	}
	if chip.Alerting() {
		t.Fatal("conversion read should release the latch")
	}

	chip.SetInput(0, 0.0)
	if _, err := d.WaitForAlert(&sig, 3); !errors.Is(err, ErrAlertTimeout) {
		t.Fatalf("re-trigger err=%v", err)
	}

	if err := d.DisableComparator(); err != nil {
		t.Fatal(err)
	}
	if d.ComparatorEnabled() || !pin.Get() {
		t.Fatal("disable should release ALERT")
	}
}

func TestWaitForAlertQueueFour(t *testing.T) {
	d, chip := newDev(t)
	var sig flag
	if err := chip.Pin().SetIRQ(types.EdgeFalling, func() { sig.set = true }); err != nil {
		t.Fatal(err)
	}
	cfg := ComparatorConfig{
		ComparatorSettings: ComparatorSettings{
			Channel:  ChannelAIN0GND,
			Gain:     Gain4V096,
			DataRate: Rate128SPS,
			Mode:     CompareWindow,
			Polarity: ActiveLow,
			Latch:    true,
			Queue:    QueueFour,
		},
		Low: -1.0, High: 1.0,
	}
	if err := d.ArmComparator(cfg); err != nil {
		t.Fatalf("ArmComparator: %v", err)
	}

	chip.SetInput(0, 2.0)
	start := chip.Now()
	// Two sample periods hold at most three conversions.
	if _, err := d.WaitForAlert(&sig, 2); !errors.Is(err, ErrAlertTimeout) {
		t.Fatalf("early wait err=%v", err)
	}
	if chip.Alerting() {
		t.Fatal("asserted before four out-of-range samples")
	}
	s, err := d.WaitForAlert(&sig, 4)
	if err != nil {
		t.Fatalf("WaitForAlert: %v", err)
	}
	if s.Raw != 16000 {
		t.Fatalf("trigger sample %+v", s)
	}
	// The fourth conversion lands more than three periods after the change.
	if elapsed := chip.Now() - start; elapsed <= 3*7812500*time.Nanosecond {
		t.Fatalf("alert after %v, before the fourth conversion", elapsed)
	}
}

func TestWaitForAlertArgs(t *testing.T) {
	d, _ := newDev(t)
	if _, err := d.WaitForAlert(nil, 1); !errors.Is(err, ErrNoSignal) {
		t.Fatalf("nil signal err=%v", err)
	}
	if _, err := d.WaitForAlert(&flag{}, 0); !errors.Is(err, ErrConfig) {
		t.Fatalf("zero timeout err=%v", err)
	}
}

func TestCloseDisablesAndPowersDown(t *testing.T) {
	d, chip := newDev(t)
	if err := d.StartContinuous(ChannelAIN0GND, Gain2V048, Rate128SPS); err != nil {
		t.Fatal(err)
	}
	if err := d.Close(); err != nil {
		t.Fatal(err)
	}
	f := Decode(ConfigWord(chip.Peek(uint8(RegConfig))))
	if f.Mode != ModeSingleShot || f.Queue != QueueDisabled {
		t.Fatalf("after close %+v", f)
	}
}
