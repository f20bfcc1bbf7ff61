package stocksapi

import (
	"encoding/json"
	"errors"
	"math"
	"reflect"
	"testing"
)

func TestStatsDocOrderAndReservedKey(t *testing.T) {
	raw := `{"_id":"x","TSLA":{"bookValue":19.1,"profit":0.12},"AAPL":{"bookValue":150,"profit":0.2345},"MSFT":{"bookValue":29,"profit":0.5}}`

	var d StatsDoc
	if err := json.Unmarshal([]byte(raw), &d); err != nil {
		t.Fatalf("Unmarshal: %v", err)
	}

	want := []string{"TSLA", "AAPL", "MSFT"}
	if got := d.Symbols(); !reflect.DeepEqual(got, want) {
		t.Errorf("Symbols() = %v, want %v", got, want)
	}
	if _, ok := d.Get(ReservedKey); ok {
		t.Error("Get(_id) found an entry, want none")
	}
	s, ok := d.Get("AAPL")
	if !ok {
		t.Fatal("Get(AAPL) not found")
	}
	if s.BookValue != 150 || s.Profit != 0.2345 {
		t.Errorf("AAPL = %+v, want {150 0.2345}", s)
	}
}

func TestStatsDocReservedKeyAnyShape(t *testing.T) {
	raw := `{"AAPL":{"bookValue":1,"profit":0.1},"_id":{"$oid":"65a1"}}`
	var d StatsDoc
	if err := json.Unmarshal([]byte(raw), &d); err != nil {
		t.Fatalf("Unmarshal: %v", err)
	}
	if d.Len() != 1 {
		t.Errorf("Len() = %d, want 1", d.Len())
	}
}

func TestStatsDocSetKeepsOrder(t *testing.T) {
	var d StatsDoc
	d.Set("B", Stat{BookValue: 1})
	d.Set("A", Stat{BookValue: 2})
	d.Set("B", Stat{BookValue: 3})
	d.Set(ReservedKey, Stat{})

	if got, want := d.Symbols(), []string{"B", "A"}; !reflect.DeepEqual(got, want) {
		t.Errorf("Symbols() = %v, want %v", got, want)
	}
	if s, _ := d.Get("B"); s.BookValue != 3 {
		t.Errorf("B.BookValue = %v, want 3", s.BookValue)
	}
}

func TestStatsDocRejectsNonObject(t *testing.T) {
	var d StatsDoc
	if err := json.Unmarshal([]byte(`[1,2]`), &d); err == nil {
		t.Error("Unmarshal(array) = nil, want error")
	}
	if err := json.Unmarshal([]byte(`{"AAPL":"oops"}`), &d); err == nil {
		t.Error("Unmarshal(bad entry) = nil, want error")
	}
}

func TestProfileDoc(t *testing.T) {
	raw := `{"_id":"x","AAPL":{"summary":"<b>Apple</b>","sector":"Technology"}}`
	var d ProfileDoc
	if err := json.Unmarshal([]byte(raw), &d); err != nil {
		t.Fatalf("Unmarshal: %v", err)
	}
	p, ok := d.Get("AAPL")
	if !ok {
		t.Fatal("Get(AAPL) not found")
	}
	if p.Summary != "<b>Apple</b>" {
		t.Errorf("Summary = %q, want %q", p.Summary, "<b>Apple</b>")
	}
	var extra map[string]string
	if err := json.Unmarshal(p.Raw, &extra); err != nil {
		t.Fatalf("Raw is not JSON: %v", err)
	}
	if extra["sector"] != "Technology" {
		t.Errorf("Raw sector = %q, want Technology", extra["sector"])
	}
}

func TestSeriesDocNullPrices(t *testing.T) {
	raw := `{"_id":"x","AAPL":{"5y":{"value":[100,null,120],"timeStamp":[0,86400,172800]}}}`
	var d SeriesDoc
	if err := json.Unmarshal([]byte(raw), &d); err != nil {
		t.Fatalf("Unmarshal: %v", err)
	}
	s, ok := d.Get("AAPL", "5y")
	if !ok {
		t.Fatal("Get(AAPL, 5y) not found")
	}
	if s.Len() != 3 {
		t.Fatalf("Len() = %d, want 3", s.Len())
	}
	if s.Value[0] != 100 || !math.IsNaN(s.Value[1]) || s.Value[2] != 120 {
		t.Errorf("Value = %v, want [100 NaN 120]", s.Value)
	}
	if !reflect.DeepEqual(s.TimeStamp, []int64{0, 86400, 172800}) {
		t.Errorf("TimeStamp = %v", s.TimeStamp)
	}
}

func TestDocumentsLookups(t *testing.T) {
	var docs Documents
	docs.Stats.Set("AAPL", Stat{BookValue: 150, Profit: 0.2})
	docs.Profiles.Set("AAPL", Profile{Summary: "Apple"})
	docs.Series.Set("AAPL", TimeFrame5Years, Series{Value: []float64{1}, TimeStamp: []int64{0}})

	if docs.IsZero() {
		t.Error("IsZero() = true after Set")
	}
	if _, err := docs.Stat("AAPL"); err != nil {
		t.Errorf("Stat(AAPL) = %v", err)
	}
	if _, err := docs.Profile("AAPL"); err != nil {
		t.Errorf("Profile(AAPL) = %v", err)
	}
	if _, err := docs.PriceSeries("AAPL", TimeFrame5Years); err != nil {
		t.Errorf("PriceSeries(AAPL, 5y) = %v", err)
	}

	tests := []struct {
		name    string
		err     error
		doc     string
		wantKey string
	}{
		{"stat", func() error { _, err := docs.Stat("MSFT"); return err }(), "stats", "MSFT"},
		{"profile", func() error { _, err := docs.Profile("MSFT"); return err }(), "profile", "MSFT"},
		{"series symbol", func() error { _, err := docs.PriceSeries("MSFT", "5y"); return err }(), "series", "MSFT"},
		{"series frame", func() error { _, err := docs.PriceSeries("AAPL", "1mo"); return err }(), "series", "AAPL/1mo"},
	}
	for _, tt := range tests {
		var mk *MissingKeyError
		if !errors.As(tt.err, &mk) {
			t.Errorf("%s: error = %v, want *MissingKeyError", tt.name, tt.err)
			continue
		}
		if mk.Document != tt.doc || mk.Key != tt.wantKey {
			t.Errorf("%s: MissingKeyError = %+v, want {%s %s}", tt.name, mk, tt.doc, tt.wantKey)
		}
	}

	var empty Documents
	if !empty.IsZero() {
		t.Error("IsZero() = false for empty documents")
	}
}

func TestDecodeEnvelope(t *testing.T) {
	tests := []struct {
		name       string
		body       string
		wantErr    bool
		wantSingle bool
	}{
		{"ok", `{"stocksStatsData":[{"AAPL":{"bookValue":1,"profit":0.1}}]}`, false, false},
		{"not json", `<html>oops</html>`, true, false},
		{"missing field", `{"other":[]}`, true, false},
		{"not array", `{"stocksStatsData":{"AAPL":{}}}`, true, false},
		{"empty array", `{"stocksStatsData":[]}`, true, true},
		{"two elements", `{"stocksStatsData":[{},{}]}`, true, true},
		{"bad document", `{"stocksStatsData":[{"AAPL":5}]}`, true, false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var d StatsDoc
			err := DecodeEnvelope(StatsEndpoint, []byte(tt.body), &d)
			if !tt.wantErr {
				if err != nil {
					t.Fatalf("DecodeEnvelope: %v", err)
				}
				if d.Len() != 1 {
					t.Errorf("Len() = %d, want 1", d.Len())
				}
				return
			}
			var mr *MalformedResponseError
			if !errors.As(err, &mr) {
				t.Fatalf("error = %v, want *MalformedResponseError", err)
			}
			if mr.Endpoint != "stats" {
				t.Errorf("Endpoint = %q, want stats", mr.Endpoint)
			}
			if got := errors.Is(err, ErrNotSingleElement); got != tt.wantSingle {
				t.Errorf("errors.Is(ErrNotSingleElement) = %v, want %v", got, tt.wantSingle)
			}
		})
	}
}
