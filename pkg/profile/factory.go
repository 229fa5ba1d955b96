package profile

import "fmt"

const mmPerInch = 25.4

// SquareTube builds a square tube profile from imperial stock dimensions,
// the way structural tube is actually sold. A 2x2x0.125 call produces a
// 50.8mm tube with a 3.175mm wall. Mill corner radius runs about 1.5x wall.
func SquareTube(sizeInch, wallInch float64) *TubeProfile {
	sizeMM := sizeInch * mmPerInch
	wallMM := wallInch * mmPerInch

	p := New(
		fmt.Sprintf("%gx%gx%g", sizeInch, sizeInch, wallInch),
		Geometry{
			OuterWidth:   sizeMM,
			OuterHeight:  sizeMM,
			Wall:         wallMM,
			CornerRadius: wallMM * 1.5,
		},
	)
	p.Description = fmt.Sprintf("%g\"x%g\" square tube, %g\" wall", sizeInch, sizeInch, wallInch)
	return p
}

// RectTube builds a rectangular tube profile from imperial stock dimensions.
func RectTube(widthInch, heightInch, wallInch float64) *TubeProfile {
	wallMM := wallInch * mmPerInch

	p := New(
		fmt.Sprintf("%gx%gx%g", widthInch, heightInch, wallInch),
		Geometry{
			OuterWidth:   widthInch * mmPerInch,
			OuterHeight:  heightInch * mmPerInch,
			Wall:         wallMM,
			CornerRadius: wallMM * 1.5,
		},
	)
	p.Description = fmt.Sprintf("%g\"x%g\" rectangular tube, %g\" wall", widthInch, heightInch, wallInch)
	return p
}
