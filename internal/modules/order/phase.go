// README: Time-based alert phases and the per-role visibility filters.
package order

import "time"

// Phase is the render urgency of an order. It is derived from wall-clock
// time on every tick and never persisted, so there is no stale state to
// transition out of.
type Phase string

const (
	PhaseRedBlink Phase = "red_blink"
	PhaseRedSolid Phase = "red_solid"
	PhaseOrange   Phase = "orange"
	PhaseGreen    Phase = "green"
	PhaseExpired  Phase = "expired"
)

// MinAutoHideMinutes is the floor for configured auto-hide values. Anything
// below it (except the explicit 0 sentinel) would let an order expire before
// it ever turns green.
const MinAutoHideMinutes = 5

// ClampAutoHide normalises a configured auto-hide value: 0 stays 0 (never
// expire), everything else is raised to the minimum.
func ClampAutoHide(minutes int) int {
	if minutes == 0 {
		return 0
	}
	if minutes < MinAutoHideMinutes {
		return MinAutoHideMinutes
	}
	return minutes
}

// Classify maps elapsed time since creation to a phase. Pure; callers
// re-evaluate it on every refresh tick.
func Classify(createdAt, now time.Time, autoHideMinutes int) Phase {
	autoHideMinutes = ClampAutoHide(autoHideMinutes)
	elapsed := now.Sub(createdAt)
	switch {
	case elapsed < time.Minute:
		return PhaseRedBlink
	case elapsed < 2*time.Minute:
		return PhaseRedSolid
	case elapsed < 4*time.Minute:
		return PhaseOrange
	}
	if autoHideMinutes == 0 {
		return PhaseGreen
	}
	if elapsed < time.Duration(autoHideMinutes)*time.Minute {
		return PhaseGreen
	}
	return PhaseExpired
}

// VisibleToBar drops expired and soft-completed orders. Input order is
// preserved and the input slice is never mutated.
func VisibleToBar(orders []Order, now time.Time, autoHideMinutes int) []Order {
	out := make([]Order, 0, len(orders))
	for _, o := range orders {
		if o.HiddenFromBar {
			continue
		}
		if Classify(o.CreatedAt, now, autoHideMinutes) == PhaseExpired {
			continue
		}
		out = append(out, o)
	}
	return out
}

// VisibleToWaiter drops only expired orders; HiddenFromBar is bar-local.
func VisibleToWaiter(orders []Order, now time.Time, autoHideMinutes int) []Order {
	out := make([]Order, 0, len(orders))
	for _, o := range orders {
		if Classify(o.CreatedAt, now, autoHideMinutes) == PhaseExpired {
			continue
		}
		out = append(out, o)
	}
	return out
}
