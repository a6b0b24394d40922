package shell

import (
	"io"
	"os"
	"sync"
	"time"

	"github.com/google/uuid"
	"gopkg.in/yaml.v3"

	"ads1115-go/errcode"
)

// Report collects the commands of one session and their statuses.
type Report struct {
	mu      sync.Mutex
	RunID   string    `yaml:"run_id"`
	Started time.Time `yaml:"started"`
	Board   string    `yaml:"board,omitempty"`
	Entries []Entry   `yaml:"entries"`
}

type Entry struct {
	At      time.Time `yaml:"at"`
	Command string    `yaml:"command"`
	Status  uint8     `yaml:"status"`
	Result  string    `yaml:"result"`
}

// NewReport starts a report with a fresh run id.
func NewReport(started time.Time, board string) *Report {
	return &Report{RunID: uuid.NewString(), Started: started, Board: board}
}

func (r *Report) Add(at time.Time, command string, st errcode.Status) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.Entries = append(r.Entries, Entry{At: at, Command: command, Status: uint8(st), Result: resultText(st)})
}

// Failed counts entries with a non-zero status.
func (r *Report) Failed() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	n := 0
	for _, e := range r.Entries {
		if e.Status != 0 {
			n++
		}
	}
	return n
}

// WriteYAML encodes the report.
func (r *Report) WriteYAML(w io.Writer) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	enc := yaml.NewEncoder(w)
	enc.SetIndent(2)
	if err := enc.Encode(r); err != nil {
		return err
	}
	return enc.Close()
}

// Save writes the report to path.
func (r *Report) Save(path string) error {
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	if err := r.WriteYAML(f); err != nil {
		f.Close()
		return err
	}
	return f.Close()
}

func resultText(st errcode.Status) string {
	if st == StatusUnknownCommand {
		return "unknown command"
	}
	return st.String()
}
