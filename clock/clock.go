// Package clock abstracts the busy-wait delay primitive so the scan loop
// can be driven deterministically in tests without real-time delays.
package clock

import "time"

type Clock interface {
	Sleep(d time.Duration)
	Now() time.Time
}

type systemClock struct{}

func (systemClock) Sleep(d time.Duration) {
	time.Sleep(d)
}

func (systemClock) Now() time.Time {
	return time.Now()
}

// New returns the real sleeping clock.
func New() Clock {
	return systemClock{}
}

// FakeClock advances a virtual time instead of sleeping. Single-threaded,
// like everything else in the scan loop.
type FakeClock struct {
	Current time.Time
	Slept   []time.Duration
}

func (c *FakeClock) Sleep(d time.Duration) {
	c.Current = c.Current.Add(d)
	c.Slept = append(c.Slept, d)
}

func (c *FakeClock) Now() time.Time {
	return c.Current
}

// SleepTotal is the virtual time spent sleeping so far.
func (c *FakeClock) SleepTotal() time.Duration {
	var total time.Duration
	for _, d := range c.Slept {
		total += d
	}
	return total
}
