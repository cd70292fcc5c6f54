package render

import (
	"image"
	"image/color"
	"image/draw"
	"image/png"
	"io"

	"golang.org/x/image/bmp"
)

// DefaultBackground — цвет неба по умолчанию
var DefaultBackground = color.RGBA{R: 154, G: 216, B: 224, A: 255}

// Canvas представляет пиксельный холст с результатом рендера.
// Создаётся заново на каждый вызов рендера и после него принадлежит
// вызывающему
type Canvas struct {
	img *image.RGBA
}

// newCanvas создаёт холст указанных размеров, залитый цветом фона
func newCanvas(width, height int, background color.Color) *Canvas {
	img := image.NewRGBA(image.Rect(0, 0, width, height))
	draw.Draw(img, img.Bounds(), image.NewUniform(background), image.Point{}, draw.Src)
	return &Canvas{img: img}
}

// Width возвращает ширину холста в пикселях
func (c *Canvas) Width() int {
	return c.img.Bounds().Dx()
}

// Height возвращает высоту холста в пикселях
func (c *Canvas) Height() int {
	return c.img.Bounds().Dy()
}

// Image возвращает пиксельный буфер холста
func (c *Canvas) Image() *image.RGBA {
	return c.img
}

// EncodePNG кодирует холст в PNG
func (c *Canvas) EncodePNG(w io.Writer) error {
	return png.Encode(w, c.img)
}

// EncodeBMP кодирует холст в BMP
func (c *Canvas) EncodeBMP(w io.Writer) error {
	return bmp.Encode(w, c.img)
}
