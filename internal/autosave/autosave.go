// Package autosave runs the periodic bulk-save timer. At most one timer is
// live at a time; Apply persists the settings before restarting it.
package autosave

import (
	"fmt"
	"strconv"
	"strings"
	"sync"
	"time"
)

const (
	KeyEnabled = "fishInventory.autosave.enabled"
	KeyMinutes = "fishInventory.autosave.minutes"

	DefaultMinutes = 30
)

// Intervals are the selectable periods, in minutes.
var Intervals = []int{10, 30, 60}

type Config struct {
	Enabled         bool
	IntervalMinutes int
}

func DefaultConfig() Config {
	return Config{Enabled: false, IntervalMinutes: DefaultMinutes}
}

func ValidInterval(minutes int) bool {
	for _, m := range Intervals {
		if m == minutes {
			return true
		}
	}
	return false
}

// Normalize replaces an unsupported interval with the default.
func (c Config) Normalize() Config {
	if !ValidInterval(c.IntervalMinutes) {
		c.IntervalMinutes = DefaultMinutes
	}
	return c
}

func (c Config) Period() time.Duration {
	return time.Duration(c.Normalize().IntervalMinutes) * time.Minute
}

func (c Config) String() string {
	if !c.Enabled {
		return "off"
	}
	return fmt.Sprintf("every %dm", c.Normalize().IntervalMinutes)
}

// PrefStore is the persisted key-value store (store.Prefs).
type PrefStore interface {
	GetOr(key, def string) string
	SetMany(kv map[string]string) error
}

// Ticker is a running repeating timer.
type Ticker interface {
	Stop()
}

// TickerFunc starts a repeating timer calling f every d.
type TickerFunc func(d time.Duration, f func()) Ticker

type Options struct {
	Prefs PrefStore
	// OnTick runs on the timer goroutine every period.
	OnTick func()
	// NewTicker defaults to a time.Ticker-backed implementation.
	NewTicker TickerFunc
}

type Scheduler struct {
	prefs     PrefStore
	onTick    func()
	newTicker TickerFunc

	mu     sync.Mutex
	cfg    Config
	ticker Ticker
	period time.Duration
}

func New(opts Options) *Scheduler {
	nt := opts.NewTicker
	if nt == nil {
		nt = newTimeTicker
	}
	return &Scheduler{
		prefs:     opts.Prefs,
		onTick:    opts.OnTick,
		newTicker: nt,
		cfg:       DefaultConfig(),
	}
}

// LoadSettings reads the persisted settings. Absent keys give the defaults
// (disabled, 30 minutes); an unparsable or unsupported minute value is 30.
func (s *Scheduler) LoadSettings() Config {
	cfg := DefaultConfig()
	if s.prefs == nil {
		return cfg
	}
	cfg.Enabled = strings.TrimSpace(s.prefs.GetOr(KeyEnabled, "false")) == "true"
	if n, err := strconv.Atoi(strings.TrimSpace(s.prefs.GetOr(KeyMinutes, strconv.Itoa(DefaultMinutes)))); err == nil {
		cfg.IntervalMinutes = n
	}
	return cfg.Normalize()
}

// Apply persists cfg, then stops any running timer and starts a new one when
// enabled. The timer state follows cfg even if persisting fails; the
// persistence error is returned.
func (s *Scheduler) Apply(cfg Config) error {
	cfg = cfg.Normalize()
	var perr error
	if s.prefs != nil {
		perr = s.prefs.SetMany(map[string]string{
			KeyEnabled: strconv.FormatBool(cfg.Enabled),
			KeyMinutes: strconv.Itoa(cfg.IntervalMinutes),
		})
		if perr != nil {
			perr = fmt.Errorf("persist autosave settings: %w", perr)
		}
	}
	s.Stop()
	s.Start(cfg)
	return perr
}

// Start records cfg and starts the timer when cfg is enabled. A running timer
// is replaced.
func (s *Scheduler) Start(cfg Config) {
	cfg = cfg.Normalize()

	s.mu.Lock()
	defer s.mu.Unlock()
	s.stopLocked()
	s.cfg = cfg
	if !cfg.Enabled {
		return
	}
	s.period = cfg.Period()
	s.ticker = s.newTicker(s.period, s.fire)
}

func (s *Scheduler) Stop() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.stopLocked()
}

func (s *Scheduler) stopLocked() {
	if s.ticker != nil {
		s.ticker.Stop()
		s.ticker = nil
	}
	s.period = 0
}

func (s *Scheduler) fire() {
	if s.onTick != nil {
		s.onTick()
	}
}

func (s *Scheduler) Active() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.ticker != nil
}

// Period is the running timer's period, or 0 when disabled.
func (s *Scheduler) Period() time.Duration {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.period
}

func (s *Scheduler) Config() Config {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.cfg
}

type timeTicker struct {
	t    *time.Ticker
	done chan struct{}
	once sync.Once
}

func newTimeTicker(d time.Duration, f func()) Ticker {
	tt := &timeTicker{t: time.NewTicker(d), done: make(chan struct{})}
	go func() {
		for {
			select {
			case <-tt.t.C:
				f()
			case <-tt.done:
				return
			}
		}
	}()
	return tt
}

func (tt *timeTicker) Stop() {
	tt.once.Do(func() {
		tt.t.Stop()
		close(tt.done)
	})
}
