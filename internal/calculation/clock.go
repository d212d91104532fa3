package calculation

import "time"

// nowFunc supplies the wall clock. Scenario defaults and report timestamps
// read it; tests pin it with SetNowFunc.
var nowFunc = time.Now

// SetNowFunc replaces the clock. Pass time.Now to restore it.
func SetNowFunc(f func() time.Time) { nowFunc = f }

// CurrentYear is the calendar year scenarios start in when they leave the
// start year unset.
func CurrentYear() int { return nowFunc().Year() }
