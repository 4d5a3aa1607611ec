// Package raid runs the open-and-decide dialogue around container renders.
//
// A raid starts by opening a random container. The player then replies
// "continue" to open another one or "extract" to leave with the loot. Every
// continue risks death, the session times out when the player stays silent,
// and the number of continues is capped. Replies that are neither command are
// ignored and do not reset the timer.
//
// [Session] is a pure state machine: it never renders, sleeps or reads
// input. The caller feeds it replies and the current time (through the clock)
// and acts on the returned [Event], typically by rendering Event.Opened.
package raid

import (
	"fmt"
	"math/rand/v2"
	"strings"
	"time"

	"github.com/matzehuels/lootgrid/pkg/errors"
)

// Defaults for Config.
const (
	DefaultTimeout     = 60 * time.Second
	DefaultMaxRetries  = 5
	DefaultDeathChance = 0.3
)

// DefaultContainers is the container rotation used when none is configured.
var DefaultContainers = []string{"small_safe", "large_safe", "bird_nest", "air_box", "cnw", "gjcwx"}

// Reply words. Matching ignores surrounding space and, for the English
// words, case.
var (
	ContinueWords = []string{"continue", "还要吃"}
	ExtractWords  = []string{"extract", "撤离"}
)

// Config controls one raid.
type Config struct {
	Timeout     time.Duration
	MaxRetries  int
	DeathChance float64
	Containers  []string
}

// DefaultConfig returns the standard raid settings.
func DefaultConfig() Config {
	return Config{
		Timeout:     DefaultTimeout,
		MaxRetries:  DefaultMaxRetries,
		DeathChance: DefaultDeathChance,
		Containers:  append([]string(nil), DefaultContainers...),
	}
}

// Validate checks the configuration.
func (c Config) Validate() error {
	if len(c.Containers) == 0 {
		return errors.New(errors.ErrCodeInvalidConfig, "raid needs at least one container")
	}
	if c.Timeout <= 0 {
		return errors.New(errors.ErrCodeInvalidConfig, "raid timeout must be positive")
	}
	if c.MaxRetries < 0 {
		return errors.New(errors.ErrCodeInvalidConfig, "max retries cannot be negative")
	}
	if c.DeathChance < 0 || c.DeathChance > 1 {
		return errors.New(errors.ErrCodeInvalidConfig, "death chance must be within [0, 1]")
	}
	return nil
}

// Ending says why a session is over.
type Ending int

const (
	// Running means the session is still waiting for replies.
	Running Ending = iota
	Extracted
	Died
	TimedOut
	MaxRetriesReached
)

func (e Ending) String() string {
	switch e {
	case Running:
		return "running"
	case Extracted:
		return "extracted"
	case Died:
		return "died"
	case TimedOut:
		return "timed out"
	case MaxRetriesReached:
		return "max retries reached"
	default:
		return fmt.Sprintf("Ending(%d)", int(e))
	}
}

// Event is the result of one step.
type Event struct {
	// Opened is the container key to open, or "".
	Opened string
	// Ignored reports a reply that was neither continue nor extract.
	Ignored bool
	// End is Running unless this step ended the session.
	End Ending
}

// Option configures a Session.
type Option func(*Session)

// WithClock replaces time.Now.
func WithClock(now func() time.Time) Option {
	return func(s *Session) { s.now = now }
}

// WithSeed makes container picks and deaths reproducible.
func WithSeed(seed uint64) Option {
	return func(s *Session) { s.rng = rand.New(rand.NewPCG(seed, seed^0xdeadbeef)) }
}

// Session is one raid. It is not safe for concurrent use.
type Session struct {
	cfg        Config
	rng        *rand.Rand
	now        func() time.Time
	started    bool
	retries    int
	lastAction time.Time
	end        Ending
	opened     []string
}

// New creates a session. It fails with INVALID_CONFIG for a bad cfg.
func New(cfg Config, opts ...Option) (*Session, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	s := &Session{cfg: cfg, now: time.Now}
	for _, opt := range opts {
		opt(s)
	}
	if s.rng == nil {
		seed := rand.Uint64()
		s.rng = rand.New(rand.NewPCG(seed, seed^0xdeadbeef))
	}
	return s, nil
}

// Start opens the first container. Calling it again returns the current
// state without opening anything.
func (s *Session) Start() Event {
	if s.started {
		return Event{End: s.end}
	}
	s.started = true
	s.lastAction = s.now()
	return s.open()
}

// Reply handles one line of player input.
func (s *Session) Reply(text string) Event {
	if !s.started || s.end != Running {
		return Event{End: s.end}
	}
	if s.now().Sub(s.lastAction) > s.cfg.Timeout {
		return s.finish(TimedOut)
	}

	text = strings.TrimSpace(text)
	switch {
	case matches(text, ContinueWords):
		if s.rng.Float64() < s.cfg.DeathChance {
			return s.finish(Died)
		}
		s.lastAction = s.now()
		s.retries++
		return s.open()
	case matches(text, ExtractWords):
		return s.finish(Extracted)
	default:
		return Event{Ignored: true}
	}
}

// Expire ends the session if the timeout has passed. Callers use it when a
// prompt deadline fires without input.
func (s *Session) Expire() Event {
	if s.started && s.end == Running && s.Remaining() == 0 {
		return s.finish(TimedOut)
	}
	return Event{End: s.end}
}

// Remaining returns the time left before the session times out.
func (s *Session) Remaining() time.Duration {
	if s.end != Running {
		return 0
	}
	left := s.cfg.Timeout - s.now().Sub(s.lastAction)
	return max(left, 0)
}

// Done reports whether the session has ended.
func (s *Session) Done() bool { return s.end != Running }

// Ending returns how the session ended, or Running.
func (s *Session) Ending() Ending { return s.end }

// Retries returns the number of accepted continues.
func (s *Session) Retries() int { return s.retries }

// Opened returns the container keys opened so far, in order.
func (s *Session) Opened() []string {
	return append([]string(nil), s.opened...)
}

func (s *Session) open() Event {
	key := s.cfg.Containers[s.rng.IntN(len(s.cfg.Containers))]
	s.opened = append(s.opened, key)
	ev := Event{Opened: key}
	if s.retries >= s.cfg.MaxRetries {
		s.end = MaxRetriesReached
		ev.End = s.end
	}
	return ev
}

func (s *Session) finish(e Ending) Event {
	s.end = e
	return Event{End: e}
}

func matches(text string, words []string) bool {
	for _, w := range words {
		if strings.EqualFold(text, w) {
			return true
		}
	}
	return false
}
