package shell

import (
	"ads1115-go/drivers/ads1115"
	"ads1115-go/errcode"
)

// args is a parsed command line.
type args struct {
	times int
	addr  ads1115.Address
	ch    ads1115.Channel
	hasCh bool
	mode  ads1115.CompareMode
	low   float64
	high  float64
}

// option is a named flag and the number of values it takes.
type option struct {
	name  string
	arity int
}

var (
	optAddr    = option{"-a", 1}
	optChannel = option{"-ch", 1}
	optMode    = option{"-m", 1}
	optThresh  = option{"-th", 2}
)

// command is one row of the command table.
type command struct {
	group string // "-t" or "-c"
	name  string
	times bool // takes a <times> positional
	need  []option
	opt   []option
	usage string
	help  string
	run   func(s *Shell, a args) errcode.Status
}

const (
	addrUsage    = "(VCC | GND | SCL | SDA)"
	channelUsage = "(AIN0_AIN1 | AIN0_AIN3 | AIN1_AIN3 | AIN2_AIN3 | AIN0_GND | AIN1_GND | AIN2_GND | AIN3_GND)"
	modeUsage    = "(THRESHOLD | WINDOW)"
	threshUsage  = "<low_threshold> <high_threshold>"
)

var commands = []command{
	{
		group: "-t", name: "reg",
		need:  []option{optAddr},
		usage: "ads1115 -t reg -a " + addrUsage,
		help:  "run ads1115 register test.",
		run: func(s *Shell, a args) errcode.Status {
			return s.h.RegisterTest(a.addr)
		},
	},
	{
		group: "-t", name: "read", times: true,
		need:  []option{optAddr},
		usage: "ads1115 -t read <times> -a " + addrUsage,
		help:  "run ads1115 read test.times means test times.",
		run: func(s *Shell, a args) errcode.Status {
			return s.h.ReadTest(a.addr, a.times)
		},
	},
	{
		group: "-t", name: "muti", times: true,
		need:  []option{optAddr},
		opt:   []option{optChannel},
		usage: "ads1115 -t muti <times> -a " + addrUsage + " [-ch " + channelUsage + "]",
		help:  "run ads1115 multichannel test.times means test times.without -ch every channel is tested.",
		run: func(s *Shell, a args) errcode.Status {
			if a.hasCh {
				return s.h.MultichannelTest(a.addr, a.times, a.ch)
			}
			return s.h.MultichannelTest(a.addr, a.times)
		},
	},
	{
		group: "-t", name: "int", times: true,
		need:  []option{optAddr, optChannel, optMode, optThresh},
		usage: "ads1115 -t int <times> -a " + addrUsage + " -ch " + channelUsage + " -m " + modeUsage + " -th " + threshUsage,
		help:  "run ads1115 interrupt test.times means test times.low_threshold and high_threshold means interrupt threshold.",
		run: func(s *Shell, a args) errcode.Status {
			return s.h.CompareTest(a.addr, a.ch, a.mode, a.low, a.high, a.times)
		},
	},
	{
		group: "-c", name: "read", times: true,
		need:  []option{optAddr, optChannel},
		usage: "ads1115 -c read <times> -a " + addrUsage + " -ch " + channelUsage,
		help:  "run ads1115 read function.times means read times.",
		run: func(s *Shell, a args) errcode.Status {
			return s.h.BasicRead(a.addr, a.ch, a.times)
		},
	},
	{
		group: "-c", name: "shot", times: true,
		need:  []option{optAddr, optChannel},
		usage: "ads1115 -c shot <times> -a " + addrUsage + " -ch " + channelUsage,
		help:  "run ads1115 shot function.times means read times.",
		run: func(s *Shell, a args) errcode.Status {
			return s.h.ShotRead(a.addr, a.ch, a.times)
		},
	},
	{
		group: "-c", name: "int", times: true,
		need:  []option{optAddr, optChannel, optMode, optThresh},
		usage: "ads1115 -c int <times> -a " + addrUsage + " -ch " + channelUsage + " -m " + modeUsage + " -th " + threshUsage,
		help:  "run ads1115 interrupt function.times means read times.low_threshold and high_threshold means interrupt threshold.",
		run: func(s *Shell, a args) errcode.Status {
			return s.h.InterruptRead(a.addr, a.ch, a.mode, a.low, a.high, a.times)
		},
	},
}

func findCommand(group, name string) (*command, bool) {
	for i := range commands {
		if commands[i].group == group && commands[i].name == name {
			return &commands[i], true
		}
	}
	return nil, false
}

// parse fills args from the words after "<group> <name>".
func (c *command) parse(words []string) (args, bool) {
	var a args
	if c.times {
		if len(words) == 0 {
			return a, false
		}
		n, ok := parseTimes(words[0])
		if !ok {
			return a, false
		}
		a.times = n
		words = words[1:]
	}
	seen := map[string]bool{}
	for len(words) > 0 {
		o, ok := c.option(words[0])
		if !ok || seen[o.name] || len(words) < 1+o.arity {
			return a, false
		}
		seen[o.name] = true
		vals := words[1 : 1+o.arity]
		words = words[1+o.arity:]
		if !a.set(o, vals) {
			return a, false
		}
	}
	for _, o := range c.need {
		if !seen[o.name] {
			return a, false
		}
	}
	return a, true
}

func (c *command) option(name string) (option, bool) {
	for _, o := range c.need {
		if o.name == name {
			return o, true
		}
	}
	for _, o := range c.opt {
		if o.name == name {
			return o, true
		}
	}
	return option{}, false
}

func (a *args) set(o option, vals []string) bool {
	var ok bool
	switch o {
	case optAddr:
		a.addr, ok = lookup(addressTokens, vals[0])
	case optChannel:
		a.ch, ok = lookup(channelTokens, vals[0])
		a.hasCh = ok
	case optMode:
		a.mode, ok = lookup(compareTokens, vals[0])
	case optThresh:
		var lok, hok bool
		a.low, lok = parseVolts(vals[0])
		a.high, hok = parseVolts(vals[1])
		ok = lok && hok
	}
	return ok
}
