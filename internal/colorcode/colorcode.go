// v0
// internal/colorcode/colorcode.go

// Package colorcode reads and writes the inline colour format used by every
// player and level name: a '#' followed by eight hex digits (RRGGBBAA) colours
// the text that follows it until the next directive or the end of the string.
package colorcode

import (
	"encoding/hex"
	"fmt"
	"strings"
)

// directiveLen is the number of hex digits following the '#' sentinel.
const directiveLen = 8

// Color is an 8-bit RGBA colour carried by a directive.
type Color struct {
	R uint8 `json:"r"`
	G uint8 `json:"g"`
	B uint8 `json:"b"`
	A uint8 `json:"a"`
}

// White is applied to text that precedes any directive.
var White = Color{R: 0xff, G: 0xff, B: 0xff, A: 0xff}

// Alpha returns the alpha channel normalized to [0,1].
func (c Color) Alpha() float64 {
	return float64(c.A) / 255.0
}

// Hex renders the colour as the eight lowercase digits used on the wire.
func (c Color) Hex() string {
	return hex.EncodeToString([]byte{c.R, c.G, c.B, c.A})
}

// CSS renders the colour as a CSS rgba() expression.
func (c Color) CSS() string {
	return fmt.Sprintf("rgba(%d, %d, %d, %.3g)", c.R, c.G, c.B, c.Alpha())
}

// Segment is a run of text sharing a single colour.
type Segment struct {
	Text  string `json:"text"`
	Color Color  `json:"color"`
}

// Decode splits raw into coloured segments in input order. It never fails:
// a part that does not start with eight hex digits is kept as white literal
// text without its '#'. Parts that carry a directive but no text produce no
// segment.
func Decode(raw string) []Segment {
	parts := strings.Split(raw, "#")
	segments := make([]Segment, 0, len(parts))
	if parts[0] != "" {
		segments = append(segments, Segment{Text: parts[0], Color: White})
	}
	for _, part := range parts[1:] {
		color, ok := parseDirective(part)
		if !ok {
			if part != "" {
				segments = append(segments, Segment{Text: part, Color: White})
			}
			continue
		}
		if text := part[directiveLen:]; text != "" {
			segments = append(segments, Segment{Text: text, Color: color})
		}
	}
	return segments
}

// StripCodes returns the plain text of raw with every well-formed directive
// removed. Unlike Decode it keeps every part, so it is the projection used
// for searching and ordering names.
func StripCodes(raw string) string {
	if strings.IndexByte(raw, '#') < 0 {
		return raw
	}
	var b strings.Builder
	b.Grow(len(raw))
	rest := raw
	leading := true
	for {
		idx := strings.IndexByte(rest, '#')
		part := rest
		if idx >= 0 {
			part = rest[:idx]
		}
		if !leading && hasDirective(part) {
			part = part[directiveLen:]
		}
		b.WriteString(part)
		if idx < 0 {
			return b.String()
		}
		leading = false
		rest = rest[idx+1:]
	}
}

// Encode writes segments back into the wire format. Every segment gets an
// explicit directive, so Decode(Encode(s)) returns s whenever no segment text
// is empty or contains '#'.
func Encode(segments []Segment) string {
	var b strings.Builder
	for _, seg := range segments {
		b.WriteByte('#')
		b.WriteString(seg.Color.Hex())
		b.WriteString(seg.Text)
	}
	return b.String()
}

func parseDirective(part string) (Color, bool) {
	if len(part) < directiveLen {
		return Color{}, false
	}
	raw, err := hex.DecodeString(part[:directiveLen])
	if err != nil {
		return Color{}, false
	}
	return Color{R: raw[0], G: raw[1], B: raw[2], A: raw[3]}, true
}

func hasDirective(part string) bool {
	if len(part) < directiveLen {
		return false
	}
	for i := 0; i < directiveLen; i++ {
		if !isHexDigit(part[i]) {
			return false
		}
	}
	return true
}

func isHexDigit(c byte) bool {
	return ('0' <= c && c <= '9') || ('a' <= c && c <= 'f') || ('A' <= c && c <= 'F')
}
