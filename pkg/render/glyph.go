package render

import "math"

// Ratio buckets used to pick container glyph variants.
const (
	WideRatio = 1.5
	TallRatio = 0.667
)

const idPrefix = "tp-"

// WordGlyphID returns the glyph identifier of a word or punctuation tag.
func WordGlyphID(word string) string {
	return idPrefix + "wg-" + word
}

// SyllableGlyphID returns the glyph identifier of a cartouche syllable.
func SyllableGlyphID(syllable string) string {
	return idPrefix + "syl-" + syllable
}

// ContainerGlyphID returns the identifier of the glyph drawn around a
// container with the given separator. Wide and tall containers use their
// own variants.
func ContainerGlyphID(separator string, ratio float64) string {
	id := idPrefix + "c-" + separator
	switch {
	case ratio > WideRatio:
		return id + "-wide"
	case ratio < TallRatio:
		return id + "-tall"
	default:
		return id
	}
}

func isSquare(ratio float64) bool {
	return math.Abs(ratio-1) < 1e-6
}

// SeparatorScale returns the transform of a separator glyph as
// [scaleX, scaleY, offsetX, offsetY] for a container of the given ratio.
func SeparatorScale(separator string, ratio, base float64) [4]float64 {
	tall := ratio < TallRatio
	wide := ratio > WideRatio
	square := isSquare(ratio)

	s := [4]float64{base * 0.92, base * 0.92, 0, 0}
	if tall {
		s[0], s[1] = base*1.2, base*0.9
	}

	switch separator {
	case "li":
		if !tall {
			s[0], s[1] = base*0.88, base*0.88
		}
	case "o":
		switch {
		case square:
			s[1], s[3] = base, -10
		case tall:
			s[0], s[1], s[3] = base, base*0.88, -15
		case wide:
			s[1], s[2], s[3] = base, -15, -10
		}
	case "e":
		switch {
		case square:
			s[0], s[2] = base, 10
		case wide:
			s[2] = 5
		}
	case "tawa":
		switch {
		case square:
			s[0], s[1], s[2], s[3] = base*0.9, base*0.9, 5, -10
		case tall:
			s[0], s[3] = base*0.9, -10
		case wide:
			s[2] = 10
		}
	case "poka", "kepeken", "tan":
		prepositionScale(&s, base, square, tall, wide, -20)
	case "sama", "lon":
		prepositionScale(&s, base, square, tall, wide, -15)
	}
	return s
}

func prepositionScale(s *[4]float64, base float64, square, tall, wide bool, squareOffset float64) {
	switch {
	case square:
		s[0], s[1], s[3] = base*0.9, base*1.1, squareOffset
	case tall:
		s[0], s[3] = base*0.9, -10
	case wide:
		s[2] = 10
	}
}

// ContainerScale returns the zoom applied to a container's contents so they
// fit inside its separator glyph.
func ContainerScale(separator string, ratio, base float64) float64 {
	if separator == "" {
		return 1.02
	}

	switch separator {
	case "e", "tawa":
		if isSquare(ratio) {
			return base * 1.2
		}
	case "tan":
		switch {
		case ratio > WideRatio, ratio < TallRatio:
			return base * 1.2
		case isSquare(ratio):
			return base * 1.4
		}
	case "kepeken":
		if ratio > WideRatio || ratio < TallRatio {
			return base * 1.2
		}
	case "lon":
		if isSquare(ratio) {
			return base * 1.3
		}
	}
	return base * 1.1
}
