package render

// Theme is the set of glyphs a board is drawn with. Glyphs are chat
// shortcodes, so their byte length counts against the message budget.
type Theme struct {
	Background string
	Food       string
	// Body is drawn for segments deeper than the lettered ones.
	Body string
	// HeadTag spells out the head and the first segments behind it, one
	// regional indicator letter per segment.
	HeadTag string
}

// DefaultTheme letters the first 12 segments.
var DefaultTheme = Theme{
	Background: ":black_large_square:",
	Food:       ":lemon:",
	Body:       ":blue_square:",
	HeadTag:    "chatsnakebot",
}

// SegmentGlyph returns the glyph for the segment depth cells behind the head.
func (t Theme) SegmentGlyph(depth int) string {
	if depth >= 0 && depth < len(t.HeadTag) {
		return ":regional_indicator_" + t.HeadTag[depth:depth+1] + ":"
	}
	return t.Body
}
