package stocksapi

import (
	"bytes"
	"encoding/json"
	"fmt"
	"math"
)

// ReservedKey is the database id every document carries next to its symbols.
const ReservedKey = "_id"

// Time frames served by the price-series endpoint.
const (
	TimeFrame1Month  = "1mo"
	TimeFrame3Months = "3mo"
	TimeFrame1Year   = "1y"
	TimeFrame5Years  = "5y"
)

// Stat is the per-symbol statistics entry.
type Stat struct {
	BookValue float64 `json:"bookValue"`
	Profit    float64 `json:"profit"`
}

// Profile is the per-symbol profile entry. Summary is trusted HTML.
type Profile struct {
	Summary string
	Raw     json.RawMessage
}

func (p *Profile) UnmarshalJSON(b []byte) error {
	var v struct {
		Summary string `json:"summary"`
	}
	if err := json.Unmarshal(b, &v); err != nil {
		return err
	}
	p.Summary = v.Summary
	p.Raw = append(p.Raw[:0], b...)
	return nil
}

// Series is one price history. Value and TimeStamp are index-aligned; a null
// price decodes to NaN.
type Series struct {
	Value     []float64
	TimeStamp []int64
}

func (s *Series) UnmarshalJSON(b []byte) error {
	var v struct {
		Value     []*float64 `json:"value"`
		TimeStamp []int64    `json:"timeStamp"`
	}
	if err := json.Unmarshal(b, &v); err != nil {
		return err
	}
	s.Value = make([]float64, len(v.Value))
	for i, p := range v.Value {
		if p == nil {
			s.Value[i] = math.NaN()
			continue
		}
		s.Value[i] = *p
	}
	s.TimeStamp = v.TimeStamp
	return nil
}

// Len returns the number of points.
func (s Series) Len() int { return len(s.Value) }

// ---------------------------------------------------------------------------
// Documents
// ---------------------------------------------------------------------------

// StatsDoc maps symbols to statistics and remembers the order in which the
// symbols appeared in the response.
type StatsDoc struct {
	symbols []string
	stats   map[string]Stat
}

// Symbols returns the symbols in document order, without the reserved key.
func (d *StatsDoc) Symbols() []string {
	out := make([]string, len(d.symbols))
	copy(out, d.symbols)
	return out
}

// Len returns the number of symbols.
func (d *StatsDoc) Len() int { return len(d.symbols) }

// Get returns the statistics for sym.
func (d *StatsDoc) Get(sym string) (Stat, bool) {
	s, ok := d.stats[sym]
	return s, ok
}

// Set adds or replaces sym. New symbols are appended to the order.
func (d *StatsDoc) Set(sym string, s Stat) {
	if sym == ReservedKey {
		return
	}
	if d.stats == nil {
		d.stats = make(map[string]Stat)
	}
	if _, ok := d.stats[sym]; !ok {
		d.symbols = append(d.symbols, sym)
	}
	d.stats[sym] = s
}

func (d *StatsDoc) UnmarshalJSON(b []byte) error {
	*d = StatsDoc{}
	return decodeObject(b, func(key string, raw json.RawMessage) error {
		var s Stat
		if err := json.Unmarshal(raw, &s); err != nil {
			return fmt.Errorf("stats %q: %w", key, err)
		}
		d.Set(key, s)
		return nil
	})
}

// ProfileDoc maps symbols to profiles.
type ProfileDoc struct {
	profiles map[string]Profile
}

// Get returns the profile for sym.
func (d *ProfileDoc) Get(sym string) (Profile, bool) {
	p, ok := d.profiles[sym]
	return p, ok
}

// Set adds or replaces sym.
func (d *ProfileDoc) Set(sym string, p Profile) {
	if sym == ReservedKey {
		return
	}
	if d.profiles == nil {
		d.profiles = make(map[string]Profile)
	}
	d.profiles[sym] = p
}

// Len returns the number of symbols.
func (d *ProfileDoc) Len() int { return len(d.profiles) }

func (d *ProfileDoc) UnmarshalJSON(b []byte) error {
	*d = ProfileDoc{}
	return decodeObject(b, func(key string, raw json.RawMessage) error {
		var p Profile
		if err := json.Unmarshal(raw, &p); err != nil {
			return fmt.Errorf("profile %q: %w", key, err)
		}
		d.Set(key, p)
		return nil
	})
}

// SeriesDoc maps symbol and time frame to a price history.
type SeriesDoc struct {
	series map[string]map[string]Series
}

// Get returns the history for sym at time frame tf.
func (d *SeriesDoc) Get(sym, tf string) (Series, bool) {
	s, ok := d.series[sym][tf]
	return s, ok
}

// Has reports whether sym has any history.
func (d *SeriesDoc) Has(sym string) bool {
	_, ok := d.series[sym]
	return ok
}

// Set adds or replaces the history for sym at tf.
func (d *SeriesDoc) Set(sym, tf string, s Series) {
	if sym == ReservedKey {
		return
	}
	if d.series == nil {
		d.series = make(map[string]map[string]Series)
	}
	if d.series[sym] == nil {
		d.series[sym] = make(map[string]Series)
	}
	d.series[sym][tf] = s
}

// Len returns the number of symbols.
func (d *SeriesDoc) Len() int { return len(d.series) }

func (d *SeriesDoc) UnmarshalJSON(b []byte) error {
	*d = SeriesDoc{}
	return decodeObject(b, func(key string, raw json.RawMessage) error {
		var frames map[string]Series
		if err := json.Unmarshal(raw, &frames); err != nil {
			return fmt.Errorf("series %q: %w", key, err)
		}
		for tf, s := range frames {
			d.Set(key, tf, s)
		}
		return nil
	})
}

// Documents is the result of one fetch: the three documents are adopted or
// discarded together.
type Documents struct {
	Profiles ProfileDoc
	Stats    StatsDoc
	Series   SeriesDoc
}

// IsZero reports whether no document has been loaded.
func (d *Documents) IsZero() bool {
	return d.Stats.Len() == 0 && d.Profiles.Len() == 0 && d.Series.Len() == 0
}

// Stat looks up the statistics for sym.
func (d *Documents) Stat(sym string) (Stat, error) {
	s, ok := d.Stats.Get(sym)
	if !ok {
		return Stat{}, &MissingKeyError{Document: "stats", Key: sym}
	}
	return s, nil
}

// Profile looks up the profile for sym.
func (d *Documents) Profile(sym string) (Profile, error) {
	p, ok := d.Profiles.Get(sym)
	if !ok {
		return Profile{}, &MissingKeyError{Document: "profile", Key: sym}
	}
	return p, nil
}

// PriceSeries looks up the history for sym at time frame tf.
func (d *Documents) PriceSeries(sym, tf string) (Series, error) {
	if !d.Series.Has(sym) {
		return Series{}, &MissingKeyError{Document: "series", Key: sym}
	}
	s, ok := d.Series.Get(sym, tf)
	if !ok {
		return Series{}, &MissingKeyError{Document: "series", Key: sym + "/" + tf}
	}
	return s, nil
}

// decodeObject walks a JSON object in document order, calling fn for every
// key except the reserved one.
func decodeObject(b []byte, fn func(key string, raw json.RawMessage) error) error {
	dec := json.NewDecoder(bytes.NewReader(b))
	tok, err := dec.Token()
	if err != nil {
		return err
	}
	if delim, ok := tok.(json.Delim); !ok || delim != '{' {
		return fmt.Errorf("expected object, got %v", tok)
	}
	for dec.More() {
		tok, err := dec.Token()
		if err != nil {
			return err
		}
		key, ok := tok.(string)
		if !ok {
			return fmt.Errorf("expected object key, got %v", tok)
		}
		var raw json.RawMessage
		if err := dec.Decode(&raw); err != nil {
			return fmt.Errorf("value for %q: %w", key, err)
		}
		if key == ReservedKey {
			continue
		}
		if err := fn(key, raw); err != nil {
			return err
		}
	}
	if _, err := dec.Token(); err != nil {
		return err
	}
	return nil
}
