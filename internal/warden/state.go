package warden

import (
	"sync"
	"time"
)

// IfaceStats is one capture interface's counters.
type IfaceStats struct {
	Pkts    uint64 `json:"pkts"`
	Drops   uint64 `json:"drops"`
	Invalid uint64 `json:"invalid-checksums"`
}

// State is the mock engine's mutable state. Guarded for concurrent
// control connections.
type State struct {
	mu          sync.Mutex
	started     time.Time
	runningMode string
	captureMode string
	filter      string
	counters    map[string]uint64
	ifaces      map[string]IfaceStats
	conf        map[string]string
}

func NewState() *State {
	return &State{
		started:     time.Now(),
		runningMode: "workers",
		captureMode: "af-packet",
		counters: map[string]uint64{
			"capture.kernel_packets": 0,
			"capture.kernel_drops":   0,
			"decoder.pkts":           0,
			"control.commands":       0,
		},
		ifaces: map[string]IfaceStats{
			"eth0": {},
		},
		conf: map[string]string{
			"default-log-dir": "/var/log/warden",
			"runmode":         "workers",
		},
	}
}

// UptimeSeconds reports whole seconds since the engine started.
func (s *State) UptimeSeconds() int64 {
	s.mu.Lock()
	defer s.mu.Unlock()
	return int64(time.Since(s.started) / time.Second)
}

func (s *State) RunningMode() string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.runningMode
}

func (s *State) CaptureMode() string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.captureMode
}

func (s *State) SetFilter(filter string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.filter = filter
}

func (s *State) Filter() string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.filter
}

func (s *State) BumpCounter(name string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.counters[name]++
}

// Counters snapshots the counter table.
func (s *State) Counters() map[string]uint64 {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make(map[string]uint64, len(s.counters))
	for k, v := range s.counters {
		out[k] = v
	}
	return out
}

// Ifaces lists capture interface names.
func (s *State) Ifaces() []string {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([]string, 0, len(s.ifaces))
	for name := range s.ifaces {
		out = append(out, name)
	}
	return out
}

func (s *State) IfaceStat(name string) (IfaceStats, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	stats, ok := s.ifaces[name]
	return stats, ok
}

func (s *State) ConfGet(variable string) (string, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	value, ok := s.conf[variable]
	return value, ok
}
