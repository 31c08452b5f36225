package swfio

import (
	"fmt"
	"math"
)

// Maximum reasonable counts for SWF structures.
// These limits prevent malicious files from claiming unreasonably large counts
// that could lead to excessive memory allocation.
const (
	MaxStyleCount    = 65535   // fill or line styles in one style array
	MaxGradientCount = 15      // gradient records (4-bit count)
	MaxGlyphCount    = 65535   // glyphs of a font definition
	MaxStringLength  = 1 << 20 // NUL-terminated strings
	MaxShapeRecords  = 1 << 22 // records of a single shape
)

// Maximum nesting depths to prevent stack overflow.
const (
	MaxSpriteNesting = 16 // DefineSprite tags within DefineSprite tags
)

// CheckedAddInt64 checks for overflow in addition of two offsets.
func CheckedAddInt64(a, b int64) (int64, error) {
	if b > 0 && a > math.MaxInt64-b {
		return 0, fmt.Errorf("integer overflow: %d + %d", a, b)
	}
	if b < 0 && a < math.MinInt64-b {
		return 0, fmt.Errorf("integer overflow: %d + %d", a, b)
	}
	return a + b, nil
}

// CheckedMulInt checks for overflow in multiplication of two integers
func CheckedMulInt(a, b int) (int, error) {
	if a == 0 || b == 0 {
		return 0, nil
	}
	if a < 0 || b < 0 {
		return 0, fmt.Errorf("negative factor: %d * %d", a, b)
	}
	if a > math.MaxInt/b {
		return 0, fmt.Errorf("integer overflow: %d * %d", a, b)
	}
	return a * b, nil
}
