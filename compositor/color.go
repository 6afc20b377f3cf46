// This file is part of fifopacer.
//
// fifopacer is free software: you can redistribute it and/or modify
// it under the terms of the GNU General Public License as published by
// the Free Software Foundation, either version 3 of the License, or
// (at your option) any later version.
//
// fifopacer is distributed in the hope that it will be useful,
// but WITHOUT ANY WARRANTY; without even the implied warranty of
// MERCHANTABILITY or FITNESS FOR A PARTICULAR PURPOSE.  See the
// GNU General Public License for more details.
//
// You should have received a copy of the GNU General Public License
// along with fifopacer.  If not, see <https://www.gnu.org/licenses/>.

package compositor

import "fmt"

// FormatARGB8888 is the only pixel format used. It is also the value of the
// format in the Wayland protocol.
const FormatARGB8888 = 0

// BytesPerPixel for FormatARGB8888.
const BytesPerPixel = 4

// Color is a non-premultiplied colour.
type Color struct {
	R, G, B, A uint8
}

// Some colours.
var (
	White = Color{R: 255, G: 255, B: 255, A: 255}
	Black = Color{R: 0, G: 0, B: 0, A: 255}
)

// Pixel returns the colour as a single ARGB8888 pixel. The format is defined
// as a little-endian 32bit value so the bytes in memory are in the order
// blue, green, red, alpha.
func (c Color) Pixel() [BytesPerPixel]byte {
	return [BytesPerPixel]byte{c.B, c.G, c.R, c.A}
}

// RGBA implements the color.Color interface.
func (c Color) RGBA() (r, g, b, a uint32) {
	r = uint32(c.R)
	r |= r << 8
	g = uint32(c.G)
	g |= g << 8
	b = uint32(c.B)
	b |= b << 8
	a = uint32(c.A)
	a |= a << 8

	// color.Color expects premultiplied values
	r = r * a / 0xffff
	g = g * a / 0xffff
	b = b * a / 0xffff

	return r, g, b, a
}

// Floats returns the colour as four floats in the range 0.0 to 1.0.
func (c Color) Floats() (r, g, b, a float32) {
	return float32(c.R) / 255, float32(c.G) / 255, float32(c.B) / 255, float32(c.A) / 255
}

func (c Color) String() string {
	return fmt.Sprintf("#%02x%02x%02x%02x", c.A, c.R, c.G, c.B)
}
