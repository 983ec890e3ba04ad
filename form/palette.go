package form

// Concrete display colors for the fixed task palette and the semantic
// label roles. Values match the mobile wireframes; clients that theme
// themselves can ignore these and map the keys on their own.

var colorHex = map[Color]string{
	ColorRed:    "#FF6B6B",
	ColorBlue:   "#4D96FF",
	ColorGreen:  "#6BCB77",
	ColorYellow: "#FFD93D",
	ColorPurple: "#9D4EDD",
	ColorTeal:   "#2EC4B6",
	ColorOrange: "#FF9F1C",
}

var semanticHex = map[Semantic]string{
	SemanticSuccess:   "#6BCB77",
	SemanticError:     "#FF6B6B",
	SemanticWarning:   "#FF9F1C",
	SemanticInfo:      "#4D96FF",
	SemanticPurple:    "#9D4EDD",
	SemanticSecondary: "#8D99AE",
}

// Hex returns the display color for a palette key, falling back to the
// blue default for unknown keys.
func (c Color) Hex() string {
	if hex, ok := colorHex[c]; ok {
		return hex
	}
	return colorHex[ColorBlue]
}

// Hex returns the display color for a semantic role, falling back to
// the neutral secondary for unknown roles.
func (s Semantic) Hex() string {
	if hex, ok := semanticHex[s]; ok {
		return hex
	}
	return semanticHex[SemanticSecondary]
}
