package config

// -----------------------------------------------------------------------------
// Embedded profiles
//
// Key: profile name passed to Default/Load
// Val: complete YAML document for that profile
// -----------------------------------------------------------------------------

const cfgSim = `
bus:
  kind: sim
alert:
  pin: ALERT
driver:
  poll_interval: 1ms
  poll_margin: 10ms
  settle_samples: 1
harness:
  gain: 6.144
  rate: 128
  read_channel: AIN0_GND
  delay: 1s
  alert_timeout_samples: 64
sim:
  address: GND
  inputs: [1.25, 0.5, 2.0, 0.0]
console:
  prompt: "ads1115> "
  baud: 115200
pins:
  scl: simulated bus
  sda: simulated bus
  int: simulated ALERT/RDY
report:
  path: ""
`

const cfgRaspberryPi = `
bus:
  kind: linux
  name: "1"
alert:
  pin: GPIO17
driver:
  poll_interval: 1ms
  poll_margin: 10ms
  settle_samples: 1
harness:
  gain: 6.144
  rate: 128
  read_channel: AIN0_GND
  delay: 1s
  alert_timeout_samples: 64
sim:
  address: GND
console:
  prompt: "ads1115> "
  baud: 115200
pins:
  scl: GPIO3 (pin 5)
  sda: GPIO2 (pin 3)
  int: GPIO17 (pin 11)
report:
  path: ads1115-report.yaml
`

const cfgPico = `
bus:
  kind: machine
  name: i2c0
alert:
  pin: GP6
driver:
  poll_interval: 1ms
  poll_margin: 10ms
  settle_samples: 1
harness:
  gain: 6.144
  rate: 128
  read_channel: AIN0_GND
  delay: 1s
  alert_timeout_samples: 64
sim:
  address: GND
console:
  device: uart0
  baud: 115200
pins:
  scl: GP5
  sda: GP4
  int: GP6
`

var embeddedConfigs = map[string][]byte{
	"sim":  []byte(cfgSim),
	"rpi":  []byte(cfgRaspberryPi),
	"pico": []byte(cfgPico),
}
