// Package geometry provides the box type used by detection results.
package geometry

// Rect represents an axis-aligned rectangle with floating-point coordinates.
// X and Y are the top-left corner (xmin, ymin).
type Rect struct {
	X      float64 `json:"x"`
	Y      float64 `json:"y"`
	Width  float64 `json:"width"`
	Height float64 `json:"height"`
}
