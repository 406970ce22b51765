package chats

import (
	"encoding/json"
	"math"
	"time"
)

// epochMillisThreshold separates epoch seconds from epoch milliseconds:
// any magnitude above it is taken as milliseconds.
const epochMillisThreshold = 1e12

// isoLayouts are tried, in order, for strings RFC3339 cannot parse; all are
// interpreted as UTC since they carry no offset.
var isoLayouts = []string{
	"2006-01-02T15:04:05.999999999",
	"2006-01-02T15:04:05",
	"2006-01-02 15:04:05",
	"2006-01-02",
}

// ParseTimestamp normalizes the timestamp shapes seen across networks:
// RFC3339 strings (a trailing Z reads as +00:00), offset-less ISO-8601
// strings (assumed UTC), epoch seconds, epoch milliseconds, and native
// time.Time values. It never fails visibly: absent or malformed input
// returns ok=false so a bad timestamp degrades to "unknown" instead of
// aborting the request.
func ParseTimestamp(v any) (time.Time, bool) {
	switch t := v.(type) {
	case nil:
		return time.Time{}, false
	case time.Time:
		if t.IsZero() {
			return time.Time{}, false
		}
		return t, true
	case float64:
		return fromEpoch(t), true
	case int:
		return fromEpoch(float64(t)), true
	case int64:
		return fromEpoch(float64(t)), true
	case json.Number:
		f, err := t.Float64()
		if err != nil {
			return time.Time{}, false
		}
		return fromEpoch(f), true
	case string:
		if t == "" {
			return time.Time{}, false
		}
		if ts, err := time.Parse(time.RFC3339, t); err == nil {
			return ts, true
		}
		for _, layout := range isoLayouts {
			if ts, err := time.ParseInLocation(layout, t, time.UTC); err == nil {
				return ts, true
			}
		}
		return time.Time{}, false
	}
	return time.Time{}, false
}

func fromEpoch(v float64) time.Time {
	if math.Abs(v) > epochMillisThreshold {
		return time.UnixMilli(int64(v)).UTC()
	}
	sec := int64(v)
	nsec := int64((v - float64(sec)) * float64(time.Second))
	return time.Unix(sec, nsec).UTC()
}
