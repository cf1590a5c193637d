package tui

import (
	"fmt"
	"image"
	"os"
	"strings"

	// Preview decoding supports exactly the accepted source extensions.
	_ "image/gif"
	_ "image/jpeg"
	_ "image/png"

	"github.com/bonntanname/figure-checker/internal/model"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
)

type previewMsg struct {
	seq      int
	name     string
	rendered string
	err      error
}

// loadPreviewCmd decodes and renders an image off the update loop. seq lets
// the model drop stale results when the cursor moved again meanwhile.
func loadPreviewCmd(seq int, entry model.ImageEntry, maxW, maxH int) tea.Cmd {
	return func() tea.Msg {
		rendered, err := renderImageFile(entry.Path, maxW, maxH)
		return previewMsg{seq: seq, name: entry.Name, rendered: rendered, err: err}
	}
}

func renderImageFile(path string, maxW, maxH int) (string, error) {
	f, err := os.Open(path)
	if err != nil {
		return "", err
	}
	defer f.Close()

	img, _, err := image.Decode(f)
	if err != nil {
		return "", err
	}
	return renderImage(img, maxW, maxH), nil
}

// renderImage draws img as terminal half-blocks: each text row carries two
// pixel rows ("▀" with the top pixel as foreground, the bottom as
// background). Nearest-neighbor sampling; aspect ratio preserved.
func renderImage(img image.Image, maxW, maxH int) string {
	if maxW < 2 || maxH < 2 {
		return ""
	}

	b := img.Bounds()
	srcW, srcH := b.Dx(), b.Dy()
	if srcW == 0 || srcH == 0 {
		return ""
	}

	// Target size in pixels: one cell is 1 px wide and 2 px tall.
	dstW, dstH := fitInto(srcW, srcH, maxW, maxH*2)
	if dstW < 1 {
		dstW = 1
	}
	if dstH < 2 {
		dstH = 2
	}

	var out strings.Builder
	for y := 0; y+1 < dstH; y += 2 {
		for x := 0; x < dstW; x++ {
			top := sampleAt(img, b, x, y, dstW, dstH)
			bottom := sampleAt(img, b, x, y+1, dstW, dstH)
			cell := lipgloss.NewStyle().
				Foreground(lipgloss.Color(top)).
				Background(lipgloss.Color(bottom)).
				Render("▀")
			out.WriteString(cell)
		}
		if y+2 < dstH {
			out.WriteString("\n")
		}
	}
	return out.String()
}

// fitInto scales (w, h) down to fit (maxW, maxH), preserving aspect ratio.
// Images already smaller than the box keep their native size.
func fitInto(w, h, maxW, maxH int) (int, int) {
	if w <= maxW && h <= maxH {
		return w, h
	}
	if w*maxH > h*maxW {
		return maxW, h * maxW / w
	}
	return w * maxH / h, maxH
}

func sampleAt(img image.Image, b image.Rectangle, x, y, dstW, dstH int) string {
	sx := b.Min.X + x*b.Dx()/dstW
	sy := b.Min.Y + y*b.Dy()/dstH
	r, g, bl, _ := img.At(sx, sy).RGBA()
	return fmt.Sprintf("#%02x%02x%02x", uint8(r>>8), uint8(g>>8), uint8(bl>>8))
}
