package core

import "image/color"

// Palette colors shared by the stage background and the demo scenes.
var (
	ColorTransparent = color.RGBA{}
	ColorBlack       = color.RGBA{0, 0, 0, 255}
	ColorWhite       = color.RGBA{255, 255, 255, 255}
	ColorRed         = color.RGBA{220, 50, 47, 255}
	ColorGreen       = color.RGBA{133, 153, 0, 255}
	ColorYellow      = color.RGBA{181, 137, 0, 255}
	ColorBlue        = color.RGBA{38, 139, 210, 255}
	ColorCyan        = color.RGBA{42, 161, 152, 255}
	ColorMagenta     = color.RGBA{211, 54, 130, 255}
	ColorOrange      = color.RGBA{203, 75, 22, 255}
	ColorGray        = color.RGBA{88, 110, 117, 255}
	ColorNavy        = color.RGBA{25, 109, 159, 255}
	ColorDeepNavy    = color.RGBA{2, 71, 127, 255}
)
