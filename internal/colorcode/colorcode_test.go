// v0
// internal/colorcode/colorcode_test.go
package colorcode

import (
	"strings"
	"testing"
)

var red = Color{R: 0xff, A: 0xff}

func TestDecodeSingleDirective(t *testing.T) {
	got := Decode("#ffffffffHello")
	if len(got) != 1 {
		t.Fatalf("expected one segment, got %d", len(got))
	}
	if got[0].Text != "Hello" || got[0].Color != White {
		t.Fatalf("unexpected segment %+v", got[0])
	}
}

func TestDecodeLeadingPlainText(t *testing.T) {
	got := Decode("Hi#ff0000ffThere")
	want := []Segment{{Text: "Hi", Color: White}, {Text: "There", Color: red}}
	assertSegments(t, got, want)
}

func TestDecodeEdgeCases(t *testing.T) {
	tests := []struct {
		name string
		raw  string
		want []Segment
	}{
		{name: "empty", raw: "", want: nil},
		{name: "plain", raw: "pewpew", want: []Segment{{Text: "pewpew", Color: White}}},
		{name: "short part", raw: "#abc", want: []Segment{{Text: "abc", Color: White}}},
		{name: "non hex part", raw: "#zzzzzzzzName", want: []Segment{{Text: "zzzzzzzzName", Color: White}}},
		{name: "uppercase hex", raw: "#FF0000FFx", want: []Segment{{Text: "x", Color: red}}},
		{name: "adjacent directives", raw: "#ff0000ff#00ff0080go", want: []Segment{{Text: "go", Color: Color{G: 0xff, A: 0x80}}}},
		{name: "double sentinel", raw: "a##b", want: []Segment{{Text: "a", Color: White}, {Text: "b", Color: White}}},
		{name: "trailing sentinel", raw: "name#", want: []Segment{{Text: "name", Color: White}}},
		{name: "directive only", raw: "#12345678", want: nil},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			assertSegments(t, Decode(tc.raw), tc.want)
		})
	}
}

func TestStripCodes(t *testing.T) {
	tests := map[string]string{
		"":                      "",
		"plain":                 "plain",
		"#ffffffffHello":        "Hello",
		"joh#ff0000ffn":         "john",
		"#abc":                  "abc",
		"a##b":                  "ab",
		"#ff0000ff#00ff00ffX":   "X",
		"#zzzzzzzzName":         "zzzzzzzzName",
		"x#1234567":             "x1234567",
		"#00000000#abcdefab#12": "12",
	}
	for raw, want := range tests {
		if got := StripCodes(raw); got != want {
			t.Fatalf("StripCodes(%q) = %q, want %q", raw, got, want)
		}
	}
}

func TestDecodeAgreesWithStrip(t *testing.T) {
	inputs := []string{
		"",
		"plain name",
		"#ff8800ffOrange#0000ffffBlue",
		"lead#11223344mid#abtail",
		"#zzzzzzzzfake#ffffffffreal",
		"ümlaut#ff00ff80ünïcode",
	}
	for _, raw := range inputs {
		var b strings.Builder
		for _, seg := range Decode(raw) {
			b.WriteString(seg.Text)
		}
		if got, want := b.String(), StripCodes(raw); got != want {
			t.Fatalf("decode/strip mismatch for %q: %q vs %q", raw, got, want)
		}
	}
}

func TestEncodeRoundTrip(t *testing.T) {
	segments := []Segment{
		{Text: "Pew", Color: Color{R: 0x12, G: 0x34, B: 0x56, A: 0x78}},
		{Text: "Pew", Color: White},
	}
	encoded := Encode(segments)
	if encoded != "#12345678Pew#ffffffffPew" {
		t.Fatalf("unexpected encoding %q", encoded)
	}
	assertSegments(t, Decode(encoded), segments)
}

func TestColorAccessors(t *testing.T) {
	c := Color{R: 0xff, G: 0x80, B: 0x00, A: 0x00}
	if c.Hex() != "ff800000" {
		t.Fatalf("unexpected hex %s", c.Hex())
	}
	if c.Alpha() != 0 {
		t.Fatalf("expected zero alpha, got %v", c.Alpha())
	}
	if White.Alpha() != 1 {
		t.Fatalf("expected opaque white, got %v", White.Alpha())
	}
	if White.CSS() != "rgba(255, 255, 255, 1)" {
		t.Fatalf("unexpected css %s", White.CSS())
	}
}

func TestAdjustForBackground(t *testing.T) {
	black := Color{A: 0x40}
	lifted := AdjustForBackground(black, true)
	if lifted.R == 0 || lifted.A != black.A {
		t.Fatalf("expected lighter colour with alpha kept, got %+v", lifted)
	}
	if got := AdjustForBackground(White, true); got != White {
		t.Fatalf("white should stay white on dark backgrounds, got %+v", got)
	}
	dimmed := AdjustForBackground(White, false)
	if dimmed.R == 0xff || dimmed.A != White.A {
		t.Fatalf("expected darker colour with alpha kept, got %+v", dimmed)
	}
	if got := AdjustForBackground(black, false); got != black {
		t.Fatalf("black should stay black on light backgrounds, got %+v", got)
	}
}

func assertSegments(t *testing.T, got, want []Segment) {
	t.Helper()
	if len(got) != len(want) {
		t.Fatalf("expected %d segments, got %d: %+v", len(want), len(got), got)
	}
	for i := range want {
		if got[i] != want[i] {
			t.Fatalf("segment %d: expected %+v, got %+v", i, want[i], got[i])
		}
	}
}
