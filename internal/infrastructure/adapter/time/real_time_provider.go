package time

import (
	"time"

	"github.com/amirhossein-jamali/venue-reservation/internal/domain/port/core"
)

// RealTimeProvider implements the TimeProvider interface with the wall clock,
// reporting times in a fixed location
type RealTimeProvider struct {
	loc *time.Location
}

// NewRealTimeProvider creates a provider reporting times in loc; nil means local time
func NewRealTimeProvider(loc *time.Location) core.TimeProvider {
	if loc == nil {
		loc = time.Local
	}
	return &RealTimeProvider{loc: loc}
}

// LoadLocation resolves an IANA zone name, falling back to UTC for an empty name
func LoadLocation(name string) (*time.Location, error) {
	if name == "" {
		return time.UTC, nil
	}
	return time.LoadLocation(name)
}

// Now returns the current time in the provider's location
func (p *RealTimeProvider) Now() time.Time {
	return time.Now().In(p.loc)
}

// Since returns the time elapsed since t
func (p *RealTimeProvider) Since(t time.Time) core.Duration {
	return core.Duration(time.Since(t))
}
