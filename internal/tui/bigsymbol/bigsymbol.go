// Package bigsymbol renders element symbols as large block art using half-block characters.
package bigsymbol

import (
	"fmt"
	"image"
	"image/color"
	"image/draw"
	"strings"
	"sync"

	"golang.org/x/image/font"
	"golang.org/x/image/font/gofont/gobold"
	"golang.org/x/image/font/opentype"
	"golang.org/x/image/math/fixed"
)

const (
	fontSize  = 64
	padding   = 4
	threshold = 40
)

var (
	loadOnce   sync.Once
	loadedFace font.Face

	mu    sync.Mutex
	cache = make(map[string]string)
)

// face parses the embedded Go Bold font once.
func face() font.Face {
	loadOnce.Do(func() {
		fnt, err := opentype.Parse(gobold.TTF)
		if err != nil {
			return
		}
		f, err := opentype.NewFace(fnt, &opentype.FaceOptions{
			Size: fontSize,
			DPI:  72,
		})
		if err != nil {
			return
		}
		loadedFace = f
	})
	return loadedFace
}

// Render draws text (one or two letter symbols work best) using half-block
// characters (▀▄█). cols and rows define the output size in terminal cells.
func Render(text string, cols, rows int) string {
	f := face()
	if text == "" || f == nil || cols <= 0 || rows <= 0 {
		return ""
	}

	// Measure the whole string, not just one glyph.
	b, advance := font.BoundString(f, text)
	glyphWidth := advance.Ceil()
	glyphHeight := (b.Max.Y - b.Min.Y).Ceil()

	srcWidth := glyphWidth + padding*2
	srcHeight := glyphHeight + padding*2

	src := image.NewGray(image.Rect(0, 0, srcWidth, srcHeight))
	draw.Draw(src, src.Bounds(), &image.Uniform{color.Black}, image.Point{}, draw.Src)

	d := &font.Drawer{
		Dst:  src,
		Src:  image.White,
		Face: f,
		Dot:  fixed.P(padding, srcHeight-padding-b.Max.Y.Ceil()),
	}
	d.DrawString(text)

	// rows*2 because each cell holds two vertical pixels
	scaled := scaleDown(src, cols, rows*2)
	return toHalfBlocks(scaled, cols, rows)
}

// Cached returns a cached rendering or renders a new one.
func Cached(text string, cols, rows int) string {
	key := fmt.Sprintf("%s/%dx%d", text, cols, rows)

	mu.Lock()
	defer mu.Unlock()
	if s, ok := cache[key]; ok {
		return s
	}
	s := Render(text, cols, rows)
	cache[key] = s
	return s
}

// Available reports whether the font loaded.
func Available() bool {
	return face() != nil
}

// scaleDown scales a grayscale image using area averaging
func scaleDown(src *image.Gray, dstWidth, dstHeight int) *image.Gray {
	srcWidth := src.Bounds().Max.X
	srcHeight := src.Bounds().Max.Y

	dst := image.NewGray(image.Rect(0, 0, dstWidth, dstHeight))

	xRatio := float64(srcWidth) / float64(dstWidth)
	yRatio := float64(srcHeight) / float64(dstHeight)

	for dy := 0; dy < dstHeight; dy++ {
		for dx := 0; dx < dstWidth; dx++ {
			sx1 := int(float64(dx) * xRatio)
			sy1 := int(float64(dy) * yRatio)
			sx2 := min(int(float64(dx+1)*xRatio), srcWidth)
			sy2 := min(int(float64(dy+1)*yRatio), srcHeight)

			var sum, count int
			for sy := sy1; sy < sy2; sy++ {
				for sx := sx1; sx < sx2; sx++ {
					sum += int(src.GrayAt(sx, sy).Y)
					count++
				}
			}
			if count > 0 {
				dst.SetGray(dx, dy, color.Gray{Y: uint8(sum / count)})
			}
		}
	}

	return dst
}

// toHalfBlocks converts a grayscale image to half-block art
func toHalfBlocks(img *image.Gray, cols, rows int) string {
	var sb strings.Builder

	for row := 0; row < rows; row++ {
		for col := 0; col < cols; col++ {
			top := brightness(img, col, row*2) > threshold
			bottom := brightness(img, col, row*2+1) > threshold

			switch {
			case top && bottom:
				sb.WriteRune('█')
			case top:
				sb.WriteRune('▀')
			case bottom:
				sb.WriteRune('▄')
			default:
				sb.WriteRune(' ')
			}
		}
		if row < rows-1 {
			sb.WriteRune('\n')
		}
	}

	return sb.String()
}

func brightness(img *image.Gray, x, y int) uint8 {
	if x < 0 || y < 0 || x >= img.Bounds().Max.X || y >= img.Bounds().Max.Y {
		return 0
	}
	return img.GrayAt(x, y).Y
}
