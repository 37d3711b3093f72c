package marker

// glyphFont is a 3x5 bitmap font covering the letters used by corner
// labels. Each row is a 3-bit mask, most significant bit leftmost.
var glyphFont = map[byte][5]byte{
	'T': {0b111, 0b010, 0b010, 0b010, 0b010},
	'L': {0b100, 0b100, 0b100, 0b100, 0b111},
	'R': {0b110, 0b101, 0b110, 0b101, 0b101},
	'B': {0b110, 0b101, 0b110, 0b101, 0b110},
}

// drawGlyph paints one letter into a marker image at full brightness with
// its top-left pixel at (x, y). Letters outside the font are skipped.
func drawGlyph(img []byte, size, x, y int, letter byte) {
	rows, ok := glyphFont[letter]
	if !ok {
		return
	}
	for dy, row := range rows {
		for dx := 0; dx < 3; dx++ {
			if row>>(2-dx)&1 == 1 {
				setImagePixel(img, size, x+dx, y+dy, 255)
			}
		}
	}
}
