package tower

import "time"

// Easing maps linear progress in [0, 1] to eased progress.
type Easing func(t float64) float64

// Linear is the identity easing.
func Linear(t float64) float64 { return t }

// EaseOutQuad decelerates toward the end.
func EaseOutQuad(t float64) float64 { return 1 - (1-t)*(1-t) }

// EaseInQuad accelerates from rest.
func EaseInQuad(t float64) float64 { return t * t }

// Animation is a time-interpolated update evaluated once per tick.
type Animation struct {
	Name     string
	Start    time.Duration // Clock time the animation was scheduled at
	Delay    time.Duration
	Duration time.Duration
	Ease     Easing

	// Update receives eased progress. Done runs once after the final Update.
	Update func(t float64)
	Done   func()
}

// Progress returns the linear progress of a at clock time now.
func (a *Animation) Progress(now time.Duration) float64 {
	elapsed := now - a.Start - a.Delay
	if elapsed < 0 {
		return 0
	}
	if a.Duration <= 0 || elapsed >= a.Duration {
		return 1
	}
	return float64(elapsed) / float64(a.Duration)
}

// Scheduler is an inspectable list of running animations.
type Scheduler struct {
	anims   []*Animation
	cleared bool
}

// Add schedules an animation.
func (s *Scheduler) Add(a *Animation) {
	if a.Ease == nil {
		a.Ease = Linear
	}
	s.anims = append(s.anims, a)
}

// Advance evaluates every animation at clock time now and drops the ones that
// finished. Animations added from a callback start on the next Advance.
func (s *Scheduler) Advance(now time.Duration) {
	current := s.anims
	s.anims = nil
	s.cleared = false

	var keep []*Animation
	for _, a := range current {
		if s.cleared {
			return
		}
		if now < a.Start+a.Delay {
			keep = append(keep, a)
			continue
		}
		p := a.Progress(now)
		if a.Update != nil {
			a.Update(a.Ease(p))
		}
		if p >= 1 {
			if a.Done != nil {
				a.Done()
			}
			continue
		}
		keep = append(keep, a)
	}
	if s.cleared {
		return
	}
	s.anims = append(keep, s.anims...)
}

// Len returns the number of pending animations.
func (s *Scheduler) Len() int { return len(s.anims) }

// Active returns the names of pending animations in scheduling order.
func (s *Scheduler) Active() []string {
	names := make([]string, len(s.anims))
	for i, a := range s.anims {
		names[i] = a.Name
	}
	return names
}

// Clear drops all pending animations without running their callbacks.
func (s *Scheduler) Clear() {
	s.anims = nil
	s.cleared = true
}
