// Package marketclock decides whether the exchange is inside its regular
// trading session.
package marketclock

import "time"

// NSE regular session, expressed in exchange-local time.
const (
	openHour    = 9
	openMinute  = 15
	closeHour   = 15
	closeMinute = 30
)

// Clock answers session-open questions for one exchange location.
// It knows nothing about exchange holidays; callers accept that a
// holiday weekday is reported as open.
type Clock struct {
	loc *time.Location
}

// NewClock creates a Clock for the given location.
func NewClock(loc *time.Location) *Clock {
	return &Clock{loc: loc}
}

// NewIST creates a Clock for the NSE (Asia/Kolkata). When tzdata is not
// available on the host, a fixed +05:30 zone is used instead.
func NewIST() *Clock {
	loc, err := time.LoadLocation("Asia/Kolkata")
	if err != nil {
		loc = time.FixedZone("IST", 5*60*60+30*60)
	}
	return &Clock{loc: loc}
}

// IsSessionOpen は与えられた時刻が通常取引時間内（09:15〜15:30、両端を含む）
// かどうかを返します。土日は常にfalseです。
func (c *Clock) IsSessionOpen(t time.Time) bool {
	lt := t.In(c.loc)

	switch lt.Weekday() {
	case time.Saturday, time.Sunday:
		return false
	}

	open := time.Date(lt.Year(), lt.Month(), lt.Day(), openHour, openMinute, 0, 0, c.loc)
	close := time.Date(lt.Year(), lt.Month(), lt.Day(), closeHour, closeMinute, 0, 0, c.loc)

	return !lt.Before(open) && !lt.After(close)
}

// Location returns the exchange location the clock evaluates times in.
func (c *Clock) Location() *time.Location {
	return c.loc
}
