package amino

import (
	"time"
)

// Time is the wall clock as seen by the current tick. Dt covers rendering or idling plus the
// previous poll pass, so an idle viewer reports Dt close to one pacing quantum.
type Time struct {
	Start time.Time
	Time  time.Time
	Dt    time.Duration
	now   func() time.Time
}

// Elapsed is the time from install to the current tick.
func (t *Time) Elapsed() time.Duration {
	return t.Time.Sub(t.Start)
}

type TimeModule struct {
	// Now overrides the clock, mainly for tests.
	Now func() time.Time
}

func (mod TimeModule) Install(app *App, cmd *Commands) {
	now := mod.Now
	if now == nil {
		now = time.Now
	}
	start := now()
	cmd.AddResources(&Time{
		Start: start,
		Time:  start,
		Dt:    0,
		now:   now,
	})
	cmd.UseSystem(
		System(timeSystem).
			InStage(Prelude).
			RunAlways(),
	)
}

func timeSystem(timeResource *Time) {
	now := timeResource.now()

	timeResource.Dt = now.Sub(timeResource.Time)
	timeResource.Time = now
}
