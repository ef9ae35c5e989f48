package dates

import (
	"strings"
	"time"
)

const (
	ISOLayout  = "2006-01-02"
	LongLayout = "02 January 2006"

	// NoticePeriodDays is the fixed gap between resignation and relieving.
	NoticePeriodDays = 30
)

// Date is a parsed calendar date that may be absent. Malformed input yields
// an invalid Date instead of an error so documents still render.
type Date struct {
	Time  time.Time
	Valid bool
}

func ParseISO(raw string) Date {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return Date{}
	}
	parsed, err := time.Parse(ISOLayout, raw)
	if err != nil {
		return Date{}
	}
	return Date{Time: parsed, Valid: true}
}

func Of(t time.Time) Date {
	if t.IsZero() {
		return Date{}
	}
	return Date{Time: t, Valid: true}
}

func (d Date) ISO() string {
	if !d.Valid {
		return ""
	}
	return d.Time.Format(ISOLayout)
}

func IsWorkday(t time.Time) bool {
	wd := t.Weekday()
	return wd != time.Saturday && wd != time.Sunday
}

// PreviousWorkday walks back from date one calendar day at a time until n
// Monday-Friday days have been counted.
func PreviousWorkday(date time.Time, n int) time.Time {
	current := date
	for count := 0; count < n; {
		current = current.AddDate(0, 0, -1)
		if IsWorkday(current) {
			count++
		}
	}
	return current
}

func RelievingDate(resignation time.Time) time.Time {
	return resignation.AddDate(0, 0, NoticePeriodDays)
}

// FormatDate renders value with layout (LongLayout when empty). value may be
// a time.Time, *time.Time, Date or an ISO string; anything absent or
// unparseable reports false.
func FormatDate(value any, layout string) (string, bool) {
	if layout == "" {
		layout = LongLayout
	}
	switch v := value.(type) {
	case nil:
		return "", false
	case time.Time:
		if v.IsZero() {
			return "", false
		}
		return v.Format(layout), true
	case *time.Time:
		if v == nil || v.IsZero() {
			return "", false
		}
		return v.Format(layout), true
	case Date:
		if !v.Valid {
			return "", false
		}
		return v.Time.Format(layout), true
	case string:
		d := ParseISO(v)
		if !d.Valid {
			return "", false
		}
		return d.Time.Format(layout), true
	default:
		return "", false
	}
}
