package main

import (
	"fmt"
	"image"
	"slices"

	"github.com/ebitenui/ebitenui/widget"
	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/text/v2"

	"github.com/milk9111/dungeonmap/editor"
)

const (
	paletteColumns = 4
	paletteStep    = 74
)

// sidePanel is the right-hand column: levels, layers, tools, category
// switcher and the asset palette.
type sidePanel struct {
	Container *widget.Container

	levelLabel  *widget.Label
	layers      *RadioRow
	tools       *RadioRow
	categoryBtn *widget.Button
	categories  *widget.Container
	palette     *palette

	theme    *widget.Theme
	fontFace *text.Face

	shownLevel    int
	shownCategory string
	menuOpen      bool
}

func buildSidePanel(theme *widget.Theme, fontFace *text.Face, width int, s *editor.Session, images *tileImages) *sidePanel {
	p := &sidePanel{theme: theme, fontFace: fontFace, shownLevel: -1}

	p.Container = widget.NewContainer(
		widget.ContainerOpts.WidgetOpts(
			widget.WidgetOpts.MinSize(width, 1),
		),
		widget.ContainerOpts.BackgroundImage(solidNineSlice(colorPanelBG)),
		widget.ContainerOpts.Layout(
			widget.NewRowLayout(
				widget.RowLayoutOpts.Direction(widget.DirectionVertical),
				widget.RowLayoutOpts.Spacing(8),
				widget.RowLayoutOpts.Padding(widget.NewInsetsSimple(10)),
			),
		),
	)

	levelRow := widget.NewContainer(
		widget.ContainerOpts.Layout(
			widget.NewRowLayout(
				widget.RowLayoutOpts.Direction(widget.DirectionHorizontal),
				widget.RowLayoutOpts.Spacing(10),
			),
		),
	)
	levelBtn := func(label string, delta int) *widget.Button {
		return widget.NewButton(
			widget.ButtonOpts.Image(theme.ButtonTheme.Image),
			widget.ButtonOpts.Text(label, fontFace, theme.ButtonTheme.TextColor),
			widget.ButtonOpts.WidgetOpts(widget.WidgetOpts.MinSize(70, 32)),
			widget.ButtonOpts.ClickedHandler(func(args *widget.ButtonClickedEventArgs) {
				s.SwitchLevel(delta)
			}),
		)
	}
	p.levelLabel = widget.NewLabel(
		widget.LabelOpts.Text("", fontFace, &widget.LabelColor{Idle: colorText}),
		widget.LabelOpts.TextOpts(widget.TextOpts.WidgetOpts(widget.WidgetOpts.MinSize(120, 32))),
	)
	levelRow.AddChild(levelBtn("Down", -1))
	levelRow.AddChild(p.levelLabel)
	levelRow.AddChild(levelBtn("Up", 1))
	p.Container.AddChild(levelRow)

	layerRow, layers := buildLayerBar(theme, fontFace, s)
	toolRow, tools := buildToolBar(theme, fontFace, s)
	p.layers = layers
	p.tools = tools
	p.Container.AddChild(layerRow)
	p.Container.AddChild(toolRow)

	p.Container.AddChild(widget.NewButton(
		widget.ButtonOpts.Image(theme.ButtonTheme.Image),
		widget.ButtonOpts.Text("Rotate (R)", fontFace, theme.ButtonTheme.TextColor),
		widget.ButtonOpts.WidgetOpts(widget.WidgetOpts.MinSize(295, 32)),
		widget.ButtonOpts.ClickedHandler(func(args *widget.ButtonClickedEventArgs) {
			s.RotateSelection()
		}),
	))

	p.categoryBtn = widget.NewButton(
		widget.ButtonOpts.Image(theme.ButtonTheme.Image),
		widget.ButtonOpts.Text("", fontFace, theme.ButtonTheme.TextColor),
		widget.ButtonOpts.WidgetOpts(widget.WidgetOpts.MinSize(295, 32)),
		widget.ButtonOpts.ClickedHandler(func(args *widget.ButtonClickedEventArgs) {
			s.ToggleCategoryMenu()
		}),
	)
	p.Container.AddChild(p.categoryBtn)

	p.categories = widget.NewContainer(
		widget.ContainerOpts.BackgroundImage(solidNineSlice(colorDialog)),
		widget.ContainerOpts.Layout(
			widget.NewRowLayout(
				widget.RowLayoutOpts.Direction(widget.DirectionVertical),
				widget.RowLayoutOpts.Spacing(2),
			),
		),
	)
	setVisible(p.categories, false)
	p.Container.AddChild(p.categories)

	p.palette = newPalette(images, s)
	p.Container.AddChild(p.palette.Container)
	return p
}

// Sync mirrors session state into the widgets. Work is only done when the
// displayed values changed.
func (p *sidePanel) Sync(s *editor.Session, paletteRows int) {
	if s.Level() != p.shownLevel {
		p.shownLevel = s.Level()
		p.levelLabel.Label = fmt.Sprintf("Level %d", p.shownLevel)
	}
	p.layers.Set(int(s.Layer()))
	p.tools.Set(int(s.Tool()))

	if s.Category() != p.shownCategory {
		p.shownCategory = s.Category()
		label := "No assets"
		if p.shownCategory != "" {
			label = "Category: " + p.shownCategory
		}
		p.categoryBtn.Text().Label = label
	}

	open := s.Modal() == editor.ModalCategoryMenu
	if open != p.menuOpen {
		p.menuOpen = open
		p.categories.RemoveChildren()
		if open {
			for _, name := range s.OtherCategories() {
				cat := name
				p.categories.AddChild(widget.NewButton(
					widget.ButtonOpts.Image(p.theme.ButtonTheme.Image),
					widget.ButtonOpts.Text(cat, p.fontFace, p.theme.ButtonTheme.TextColor),
					widget.ButtonOpts.WidgetOpts(widget.WidgetOpts.MinSize(295, 28)),
					widget.ButtonOpts.ClickedHandler(func(args *widget.ButtonClickedEventArgs) {
						s.SelectCategory(cat)
					}),
				))
			}
		}
		setVisible(p.categories, open)
		p.Container.RequestRelayout()
	}

	p.palette.Sync(s.Palette(), paletteRows)
}

// CategoryMenuHit reports whether (x, y) is on the category toggle or list,
// which handle their own clicks.
func (p *sidePanel) CategoryMenuHit(x, y int) bool {
	pt := image.Pt(x, y)
	if pt.In(p.categoryBtn.GetWidget().Rect) {
		return true
	}
	return p.menuOpen && pt.In(p.categories.GetWidget().Rect)
}

// Scroll moves the palette by whole rows.
func (p *sidePanel) Scroll(rows int) {
	p.palette.Scroll(rows)
}

// Invalidate forces the palette to rebuild its thumbnails.
func (p *sidePanel) Invalidate() {
	p.palette.built = false
}

// palette shows a scrolling window of asset thumbnails in a fixed grid.
type palette struct {
	Container *widget.Container

	images  *tileImages
	session *editor.Session

	keys   []string
	offset int
	rows   int
	built  bool
}

func newPalette(images *tileImages, s *editor.Session) *palette {
	return &palette{
		images:  images,
		session: s,
		Container: widget.NewContainer(
			widget.ContainerOpts.Layout(
				widget.NewGridLayout(
					widget.GridLayoutOpts.Columns(paletteColumns),
					widget.GridLayoutOpts.Spacing(paletteStep-64, paletteStep-64),
				),
			),
		),
	}
}

func (p *palette) totalRows() int {
	return (len(p.keys) + paletteColumns - 1) / paletteColumns
}

func (p *palette) clamp() {
	maxOffset := max(p.totalRows()-p.rows, 0)
	p.offset = min(max(p.offset, 0), maxOffset)
}

func (p *palette) Scroll(rows int) {
	before := p.offset
	p.offset += rows
	p.clamp()
	if p.offset != before {
		p.built = false
	}
}

func (p *palette) Sync(keys []string, rows int) {
	rows = max(rows, 1)
	if !slices.Equal(keys, p.keys) {
		p.keys = slices.Clone(keys)
		p.offset = 0
		p.built = false
	}
	if rows != p.rows {
		p.rows = rows
		p.built = false
	}
	if p.built {
		return
	}
	p.clamp()
	p.rebuild()
	p.built = true
}

func (p *palette) rebuild() {
	p.Container.RemoveChildren()
	start := p.offset * paletteColumns
	end := min(start+p.rows*paletteColumns, len(p.keys))
	for _, key := range p.keys[start:end] {
		k := key
		img := p.images.Thumb(k)
		if img == nil {
			continue
		}
		side := img.Bounds().Dx()
		p.Container.AddChild(widget.NewGraphic(
			widget.GraphicOpts.Image(img),
			widget.GraphicOpts.WidgetOpts(
				widget.WidgetOpts.MinSize(side, side),
				widget.WidgetOpts.MouseButtonPressedHandler(func(args *widget.WidgetMouseButtonPressedEventArgs) {
					if args.Button == ebiten.MouseButtonLeft {
						p.session.SelectAsset(k)
					}
				}),
			),
		))
	}
	p.Container.RequestRelayout()
}
