package forecast

import (
	"encoding/json"
	"fmt"
	"sort"
	"sync"
	"time"
)

// Response is one decoded point-forecast payload. It is read-only after
// decoding; the accessor cache is the only mutable state and is guarded
// for concurrent first use.
type Response struct {
	// Timestamps are the forecast steps in UTC. Upstream sends millisecond
	// epoch integers; series in the payload are expected to be the same
	// length but this is not enforced.
	Timestamps []time.Time

	// Warning carries the upstream "warning" key when present (e.g. a
	// deprecation notice); it is not a data series.
	Warning string

	// FetchedAt records when the payload was decoded.
	FetchedAt time.Time

	units map[string]string
	data  map[string][]*float64

	mu        sync.Mutex
	accessors map[string]Accessor
}

// UnmarshalJSON decodes the open-schema payload: "ts" and "units" are
// required, every remaining key is a nullable data series.
func (r *Response) UnmarshalJSON(b []byte) error {
	var raw map[string]json.RawMessage
	if err := json.Unmarshal(b, &raw); err != nil {
		return err
	}

	tsRaw, ok := raw["ts"]
	if !ok {
		return fmt.Errorf("forecast response missing %q field", "ts")
	}
	ts, err := decodeTimestamps(tsRaw)
	if err != nil {
		return err
	}
	delete(raw, "ts")

	unitsRaw, ok := raw["units"]
	if !ok {
		return fmt.Errorf("forecast response missing %q field", "units")
	}
	var units map[string]*string
	if err := json.Unmarshal(unitsRaw, &units); err != nil {
		return fmt.Errorf("units: %w", err)
	}
	delete(raw, "units")

	if warnRaw, ok := raw["warning"]; ok {
		if err := json.Unmarshal(warnRaw, &r.Warning); err != nil {
			return fmt.Errorf("warning: %w", err)
		}
		delete(raw, "warning")
	}

	data := make(map[string][]*float64, len(raw))
	for key, val := range raw {
		var series []*float64
		if err := json.Unmarshal(val, &series); err != nil {
			return fmt.Errorf("series %q: %w", key, err)
		}
		data[key] = series
	}

	r.Timestamps = ts
	r.units = make(map[string]string, len(units))
	for key, unit := range units {
		if unit != nil {
			r.units[key] = *unit
		}
	}
	r.data = data
	r.FetchedAt = clock.Now().UTC()
	return nil
}

// decodeTimestamps converts millisecond epoch integers to UTC instants.
// Already-converted RFC 3339 instants pass through unchanged so that
// re-decoding a serialized response is idempotent.
func decodeTimestamps(raw json.RawMessage) ([]time.Time, error) {
	var millis []int64
	if err := json.Unmarshal(raw, &millis); err == nil {
		out := make([]time.Time, len(millis))
		for i, ms := range millis {
			out[i] = time.UnixMilli(ms).UTC()
		}
		return out, nil
	}

	var instants []time.Time
	if err := json.Unmarshal(raw, &instants); err != nil {
		return nil, fmt.Errorf("timestamps: %w", err)
	}
	return instants, nil
}

// Data returns the series for an exact raw parameter-level key such as
// "temp-surface", or nil when the key is absent from the payload.
func (r *Response) Data(rawKey string) []*float64 {
	return r.data[rawKey]
}

// Unit returns the unit for a raw key. ok is false when the key is absent
// or upstream reported a null unit.
func (r *Response) Unit(rawKey string) (string, bool) {
	unit, ok := r.units[rawKey]
	return unit, ok
}

// Keys returns the raw series keys present in the payload, sorted.
func (r *Response) Keys() []string {
	out := make([]string, 0, len(r.data))
	for key := range r.data {
		out = append(out, key)
	}
	sort.Strings(out)
	return out
}

// Age returns how long ago the response was fetched.
func (r *Response) Age() time.Duration {
	return clock.Now().UTC().Sub(r.FetchedAt)
}
