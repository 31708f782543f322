package eventmodels

import (
	"fmt"
	"time"
)

const DisplayTimeFormat = "2006-01-02 15:04:05"

const DefaultDisplayTimezone = "America/New_York"

func LoadDisplayLocation(name string) (*time.Location, error) {
	if name == "" {
		name = DefaultDisplayTimezone
	}

	loc, err := time.LoadLocation(name)
	if err != nil {
		return nil, fmt.Errorf("LoadDisplayLocation: failed to load %s: %w", name, err)
	}

	return loc, nil
}

func FormatDisplayTime(t time.Time, loc *time.Location) string {
	return t.In(loc).Format(DisplayTimeFormat)
}

// ParseDisplayTime reads a timestamp previously written by FormatDisplayTime.
func ParseDisplayTime(s string, loc *time.Location) (time.Time, error) {
	t, err := time.ParseInLocation(DisplayTimeFormat, s, loc)
	if err != nil {
		return time.Time{}, fmt.Errorf("ParseDisplayTime: %w", err)
	}

	return t, nil
}
