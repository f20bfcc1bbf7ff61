package dashboard

import "testing"

func TestParseSummary(t *testing.T) {
	lines := ParseSummary("<p><b>Apple Inc.</b> designs &amp; sells\n   phones.</p><p>Second <em>para</em></p>")

	if len(lines) != 3 {
		t.Fatalf("got %d lines, want 3: %q", len(lines), PlainText(lines))
	}
	if got := lines[0].String(); got != "Apple Inc. designs & sells phones." {
		t.Errorf("line 0 = %q", got)
	}
	if !lines[0][0].Bold || lines[0][0].Text != "Apple Inc." {
		t.Errorf("first span = %+v, want bold Apple Inc.", lines[0][0])
	}
	if lines[0][1].Bold {
		t.Errorf("second span is bold: %+v", lines[0][1])
	}
	if len(lines[1]) != 0 {
		t.Errorf("line 1 = %q, want blank separator", lines[1].String())
	}
	if got := lines[2].String(); got != "Second para" {
		t.Errorf("line 2 = %q", got)
	}
	if last := lines[2][len(lines[2])-1]; !last.Italic {
		t.Errorf("last span = %+v, want italic", last)
	}
}

func TestParseSummaryBreaksAndLists(t *testing.T) {
	lines := ParseSummary("one<br>two<br/><ul><li>a</li><li>b</li></ul><script>x()</script>")
	want := []string{"one", "two", "", "• a", "• b"}
	if len(lines) != len(want) {
		t.Fatalf("got %q, want %q", PlainText(lines), want)
	}
	for i := range want {
		if lines[i].String() != want[i] {
			t.Errorf("line %d = %q, want %q", i, lines[i].String(), want[i])
		}
	}
}

func TestParseSummaryPlain(t *testing.T) {
	if got := PlainText(ParseSummary("  Just text.  ")); got != "Just text." {
		t.Errorf("plain = %q", got)
	}
	if got := ParseSummary(""); len(got) != 0 {
		t.Errorf("empty summary produced %d lines", len(got))
	}
}
