package ofx

import (
	"errors"
	"regexp"
	"strconv"
	"strings"
	"time"
)

var errBadDate = errors.New("error - date string can not be parsed")

// datePattern matches YYYYMMDD, optionally followed by HHMMSS, milliseconds and a
// [offset:TZ] suffix, e.g. 20180313093000.000[-5:EST].
var datePattern = regexp.MustCompile(`^(\d{8})(\d{6})?(?:\.(\d{3}))?(?:\[([+-]?\d+(?:\.\d+)?)(?::([^\]]*))?\])?$`)

// ParseDate parses the given OFX formatted date string to a time.Time object.
// Dates without an explicit offset are read in loc, or UTC when loc is nil.
func ParseDate(d string, loc *time.Location) (*time.Time, error) {
	parts := datePattern.FindStringSubmatch(strings.TrimSpace(d))
	if parts == nil {
		return nil, errBadDate
	}
	if loc == nil {
		loc = time.UTC
	}
	if parts[4] != "" {
		hours, err := strconv.ParseFloat(parts[4], 64)
		if err != nil {
			return nil, errBadDate
		}
		name := parts[5]
		if name == "" {
			name = "UTC" + parts[4]
		}
		loc = time.FixedZone(name, int(hours*60*60))
	}

	value, layout := parts[1], "20060102"
	if parts[2] != "" {
		value += parts[2]
		layout += "150405"
	}
	if parts[3] != "" {
		value += "." + parts[3]
		layout += ".000"
	}
	t, err := time.ParseInLocation(layout, value, loc)
	if err != nil {
		return nil, errBadDate
	}
	return &t, nil
}

// FormatDate formats t as an OFX date, YYYYMMDD.
func FormatDate(t time.Time) string {
	return t.Format("20060102")
}

// FormatDateTime formats t as an OFX date time, YYYYMMDDHHMMSS.
func FormatDateTime(t time.Time) string {
	return t.Format("20060102150405")
}

// parseOptionalDate returns the zero time for an empty date string.
func parseOptionalDate(d string, loc *time.Location) (time.Time, error) {
	if strings.TrimSpace(d) == "" {
		return time.Time{}, nil
	}
	t, err := ParseDate(d, loc)
	if err != nil {
		return time.Time{}, err
	}
	return *t, nil
}
