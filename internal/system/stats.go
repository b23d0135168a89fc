package system

import (
	"fmt"
	"os"
	"time"

	"github.com/shirou/gopsutil/v3/process"
)

// Stats collects a coarse run summary for the --stats flag.
type Stats struct {
	start  time.Time
	proc   *process.Process
	phases []phase
}

type phase struct {
	name    string
	elapsed time.Duration
}

func NewStats() *Stats {
	proc, _ := process.NewProcess(int32(os.Getpid()))
	return &Stats{start: time.Now(), proc: proc}
}

// Phase records the duration of one pipeline stage.
func (s *Stats) Phase(name string, since time.Time) {
	s.phases = append(s.phases, phase{name: name, elapsed: time.Since(since)})
}

// Report renders the summary. Process metrics are best-effort: a failed
// gopsutil probe drops the line rather than failing the run.
func (s *Stats) Report() string {
	out := fmt.Sprintf("total: %.2fs", time.Since(s.start).Seconds())
	for _, p := range s.phases {
		out += fmt.Sprintf(" | %s: %.2fs", p.name, p.elapsed.Seconds())
	}
	if s.proc != nil {
		if mem, err := s.proc.MemoryInfo(); err == nil {
			out += fmt.Sprintf(" | rss: %.1fMiB", float64(mem.RSS)/(1024*1024))
		}
		if cpu, err := s.proc.CPUPercent(); err == nil {
			out += fmt.Sprintf(" | cpu: %.0f%%", cpu)
		}
	}
	return out
}
