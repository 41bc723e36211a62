package main

import (
	"image"
	"image/color"
	"math"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/text/v2"
	"github.com/hajimehoshi/ebiten/v2/vector"
	"golang.org/x/image/colornames"

	"github.com/milk9111/dungeonmap/editor"
	"github.com/milk9111/dungeonmap/mapdata"
)

const (
	wallWidth        = 5
	wallPreviewWidth = 3
	exitButtonSize   = 30
)

// exitButton is the immersion-mode close box in the top-right corner.
func (g *EditorGame) exitButton() image.Rectangle {
	return image.Rect(g.width-40, 10, g.width-40+exitButtonSize, 10+exitButtonSize)
}

// viewSize is the on-screen size of the map area.
func (g *EditorGame) viewSize() (int, int) {
	if g.session.Immersion() {
		return g.width, g.height
	}
	return g.cfg.MapViewport(g.width, g.height)
}

func (g *EditorGame) Draw(screen *ebiten.Image) {
	s := g.session
	screen.Fill(colorWindowBG)

	o := g.mapOrigin()
	vw, vh := g.viewSize()
	vector.FillRect(screen, float32(o.X), float32(o.Y), float32(vw), float32(vh), colorViewBG, false)

	view := screen.SubImage(image.Rect(o.X, o.Y, o.X+vw, o.Y+vh)).(*ebiten.Image)
	if !s.Immersion() {
		g.drawGridLines(view, o)
	}
	g.drawTiles(view, o)
	g.drawWalls(view, o)

	if s.Immersion() {
		r := g.exitButton()
		vector.FillRect(screen, float32(r.Min.X), float32(r.Min.Y), exitButtonSize, exitButtonSize, colornames.Darkred, false)
		g.drawText(screen, "X", float64(r.Min.X+10), float64(r.Min.Y+6), colorText)
	} else {
		g.ui.UI.Draw(screen)
		g.drawCarried(screen)
	}
	g.drawStatus(screen)
}

func (g *EditorGame) drawGridLines(dst *ebiten.Image, o image.Point) {
	grid := g.session.Grid()
	ts := grid.TileSize()
	gw, gh := grid.PixelSize()
	for x := 0; x <= grid.Cols(); x++ {
		px := float32(o.X + x*ts)
		vector.StrokeLine(dst, px, float32(o.Y), px, float32(o.Y+gh), 1, colorGridLine, false)
	}
	for y := 0; y <= grid.Rows(); y++ {
		py := float32(o.Y + y*ts)
		vector.StrokeLine(dst, float32(o.X), py, float32(o.X+gw), py, 1, colorGridLine, false)
	}
}

// drawTile draws img centred on (cx, cy), turned counter-clockwise by rot.
func drawTile(dst, img *ebiten.Image, cx, cy float64, rot mapdata.Rotation, alpha float32) {
	b := img.Bounds()
	op := &ebiten.DrawImageOptions{}
	op.GeoM.Translate(-float64(b.Dx())/2, -float64(b.Dy())/2)
	op.GeoM.Rotate(-float64(rot) * math.Pi / 180)
	op.GeoM.Translate(cx, cy)
	op.Filter = ebiten.FilterLinear
	if alpha < 1 {
		op.ColorScale.ScaleAlpha(alpha)
	}
	dst.DrawImage(img, op)
}

func (g *EditorGame) drawTiles(dst *ebiten.Image, o image.Point) {
	s := g.session
	assets := s.Assets()
	if assets == nil {
		return
	}
	ts := s.Grid().TileSize()
	for _, item := range s.DrawItems() {
		img := g.images.Full(item.Tile.Key)
		if img == nil {
			continue
		}
		fp, ok := assets.Footprint(item.Tile.Key)
		if !ok {
			fp = 1
		}
		anchor := mapdata.AnchorOffset(fp, ts)
		cx := float64(o.X + item.X*ts + anchor)
		cy := float64(o.Y + item.Y*ts + anchor)
		drawTile(dst, img, cx, cy, item.Tile.Rotation, 1)
	}
}

func (g *EditorGame) drawWalls(dst *ebiten.Image, o image.Point) {
	s := g.session
	ox, oy := float32(o.X), float32(o.Y)
	for _, w := range s.Walls() {
		x1, y1 := ox+float32(w.X1), oy+float32(w.Y1)
		x2, y2 := ox+float32(w.X2), oy+float32(w.Y2)
		vector.StrokeLine(dst, x1, y1, x2, y2, wallWidth, colornames.Crimson, true)
		vector.FillCircle(dst, x1, y1, wallWidth, colornames.Crimson, true)
		vector.FillCircle(dst, x2, y2, wallWidth, colornames.Crimson, true)
	}

	start, ok := s.WallStart()
	if !ok || s.Modal() != editor.ModalNone {
		return
	}
	mx, my := ebiten.CursorPosition()
	lx, ly := g.toMap(mx, my)
	end := mapdata.SnapPoint(lx, ly, s.Grid().TileSize())
	vector.StrokeLine(dst,
		ox+float32(start.X), oy+float32(start.Y),
		ox+float32(end.X), oy+float32(end.Y),
		wallPreviewWidth, colornames.White, true)
}

// drawCarried shows the asset being dragged under the cursor.
func (g *EditorGame) drawCarried(dst *ebiten.Image) {
	s := g.session
	if !s.Dragging() {
		return
	}
	key, rot, _ := s.Carried()
	img := g.images.Full(key)
	if img == nil {
		return
	}
	mx, my := ebiten.CursorPosition()
	drawTile(dst, img, float64(mx), float64(my), rot, 0.7)
}

func (g *EditorGame) drawText(dst *ebiten.Image, str string, x, y float64, clr color.Color) {
	op := &text.DrawOptions{}
	op.GeoM.Translate(x, y)
	op.ColorScale.ScaleWithColor(clr)
	text.Draw(dst, str, g.face, op)
}

// drawStatus shows the current message centred on the window.
func (g *EditorGame) drawStatus(dst *ebiten.Image) {
	msg := g.session.Status()
	if msg == "" {
		return
	}
	tw, th := text.Measure(msg, g.face, 0)
	w := float32(tw) + 40
	h := float32(60)
	x := float32(g.width)/2 - w/2
	y := float32(g.height)/2 - h/2
	vector.FillRect(dst, x, y, w, h, colorOverlay, false)
	g.drawText(dst, msg, float64(x)+20, float64(y)+(float64(h)-th)/2, colornames.White)
}
