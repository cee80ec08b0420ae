package units

import "strconv"

// DisplayPrecision is the number of decimals shown to the user.
const DisplayPrecision = 2

// Converter turns on-screen pixel displacement into meters.
type Converter struct {
	// ScaleFactor is expressed in pixels per meter
	ScaleFactor float64
}

func NewConverter(scaleFactor float64) Converter {
	return Converter{ScaleFactor: scaleFactor}
}

// PixelsToDistance converts a pixel displacement to meters.
// The result is not rounded; use Format at the presentation boundary.
func (c Converter) PixelsToDistance(pixels float64) float64 {
	return pixels / c.ScaleFactor
}

// Format renders a distance with DisplayPrecision decimals.
func Format(distance float64) string {
	return strconv.FormatFloat(distance, 'f', DisplayPrecision, 64)
}
