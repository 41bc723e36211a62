package main

import (
	"image"
	"log"
	"time"

	ebuiinput "github.com/ebitenui/ebitenui/input"
	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/inpututil"
	"github.com/hajimehoshi/ebiten/v2/text/v2"

	"github.com/milk9111/dungeonmap/catalog"
	"github.com/milk9111/dungeonmap/config"
	"github.com/milk9111/dungeonmap/editor"
	"github.com/milk9111/dungeonmap/mapdata"
	"github.com/milk9111/dungeonmap/render"
	"github.com/milk9111/dungeonmap/vtt"
)

// EditorGame is the Ebiten game driving one editing session.
type EditorGame struct {
	cfg     config.Config
	session *editor.Session
	images  *tileImages
	ui      *EditorUI
	face    text.Face

	watcher     *catalog.Watcher
	compositors []*render.Compositor
	clip        *cellClipboard

	width, height int
	mapPress      bool
	shownModal    editor.Modal
	shownImmerse  bool
	quit          bool
}

func NewEditorGame(cfg config.Config, cat *catalog.Catalog, watcher *catalog.Watcher) (*EditorGame, error) {
	imageRaster, err := render.NewCompositor(render.ImageBackground)
	if err != nil {
		return nil, err
	}
	vttRaster, err := render.NewCompositor(vtt.Background)
	if err != nil {
		imageRaster.Close()
		return nil, err
	}

	w, h := cfg.MapViewport(cfg.WindowWidth, cfg.WindowHeight)
	s := editor.New(cat, editor.Options{
		Width:             w,
		Height:            h,
		TileSize:          cfg.TileSize,
		HistoryLimit:      cfg.HistoryLimit,
		WallPickThreshold: cfg.WallPickThreshold,
		ProjectDir:        cfg.ProjectDir,
		ImageRaster:       imageRaster,
		VTTRaster:         vttRaster,
	})

	g := &EditorGame{
		cfg:         cfg,
		session:     s,
		images:      newTileImages(cat),
		face:        loadFontFace(14),
		watcher:     watcher,
		compositors: []*render.Compositor{imageRaster, vttRaster},
		clip:        newCellClipboard(),
		width:       cfg.WindowWidth,
		height:      cfg.WindowHeight,
	}
	g.ui = BuildEditorUI(cfg, s, g.images, g.face, []menuAction{
		{Label: "Save", Run: func() { s.BeginNameInput(editor.ActionSave) }},
		{Label: "Load", Run: func() { s.OpenFileMenu() }},
		{Label: "Export VTT", Run: func() { s.BeginNameInput(editor.ActionExportVTT) }},
		{Label: "Export PNG", Run: func() { s.BeginNameInput(editor.ActionExportImage) }},
		{Label: "Undo", Run: func() { s.Undo() }},
		{Label: "Redo", Run: func() { s.Redo() }},
		{Label: "Immersion", Run: func() { s.SetImmersion(true) }},
		{Label: "Quit", Run: func() { g.quit = true }},
	})
	return g, nil
}

// Close releases the watcher and the export caches.
func (g *EditorGame) Close() {
	if g.watcher != nil {
		if err := g.watcher.Close(); err != nil {
			log.Printf("Failed to close asset watcher: %v", err)
		}
	}
	for _, c := range g.compositors {
		c.Close()
	}
}

func (g *EditorGame) Update() error {
	if g.quit {
		return ebiten.Termination
	}
	s := g.session
	s.Tick(time.Now())
	g.pollAssets()
	g.handleKeys()

	mx, my := ebiten.CursorPosition()
	if inpututil.IsMouseButtonJustPressed(ebiten.MouseButtonLeft) &&
		s.Modal() == editor.ModalCategoryMenu &&
		!g.inMap(mx, my) && !g.ui.Side.CategoryMenuHit(mx, my) {
		s.CloseModal()
	}
	if _, dy := ebiten.Wheel(); dy != 0 && g.inSidePanel(mx, my) {
		if dy > 0 {
			g.ui.Side.Scroll(-1)
		} else {
			g.ui.Side.Scroll(1)
		}
	}

	g.ui.UI.Update()
	g.handleMouse(mx, my)
	g.syncUI()
	return nil
}

// mapOrigin is the screen position of the grid's top-left corner.
func (g *EditorGame) mapOrigin() image.Point {
	if g.session.Immersion() {
		return image.Point{}
	}
	return image.Pt(0, g.cfg.MenuHeight)
}

func (g *EditorGame) toMap(mx, my int) (int, int) {
	o := g.mapOrigin()
	return mx - o.X, my - o.Y
}

func (g *EditorGame) inMap(mx, my int) bool {
	if g.session.Immersion() {
		return true
	}
	return mx < g.width-g.cfg.SidePanelWidth && my >= g.cfg.MenuHeight
}

func (g *EditorGame) inSidePanel(mx, my int) bool {
	return !g.session.Immersion() && mx >= g.width-g.cfg.SidePanelWidth && my >= g.cfg.MenuHeight
}

func (g *EditorGame) handleMouse(mx, my int) {
	s := g.session
	lx, ly := g.toMap(mx, my)
	if inpututil.IsMouseButtonJustPressed(ebiten.MouseButtonLeft) {
		if s.Immersion() && image.Pt(mx, my).In(g.exitButton()) {
			s.SetImmersion(false)
			g.mapPress = false
			return
		}
		// If the UI is hovered the click belongs to a widget, not the map.
		g.mapPress = g.inMap(mx, my) && (!ebuiinput.UIHovered || s.Immersion())
		if g.mapPress {
			s.PointerDown(lx, ly)
		}
	}
	if inpututil.IsMouseButtonJustReleased(ebiten.MouseButtonLeft) {
		// Palette drags start on a widget and end on the map.
		if g.mapPress || s.Dragging() {
			s.PointerUp(lx, ly)
		}
		g.mapPress = false
	}
}

func ctrlPressed() bool {
	return ebiten.IsKeyPressed(ebiten.KeyControl) || ebiten.IsKeyPressed(ebiten.KeyMeta)
}

func (g *EditorGame) handleKeys() {
	s := g.session
	if inpututil.IsKeyJustPressed(ebiten.KeyEscape) {
		switch {
		case s.Modal() != editor.ModalNone:
			s.CloseModal()
		case s.Immersion():
			s.SetImmersion(false)
		default:
			s.ClearSelection()
		}
		return
	}
	// Typing a file name must not trigger shortcuts.
	if s.Modal() == editor.ModalNameInput {
		return
	}

	if inpututil.IsKeyJustPressed(ebiten.KeyF11) {
		s.SetImmersion(!s.Immersion())
	}

	if ctrlPressed() {
		mx, my := ebiten.CursorPosition()
		lx, ly := g.toMap(mx, my)
		switch {
		case inpututil.IsKeyJustPressed(ebiten.KeyZ):
			if ebiten.IsKeyPressed(ebiten.KeyShift) {
				s.Redo()
			} else {
				s.Undo()
			}
		case inpututil.IsKeyJustPressed(ebiten.KeyY):
			s.Redo()
		case inpututil.IsKeyJustPressed(ebiten.KeyS):
			s.BeginNameInput(editor.ActionSave)
		case inpututil.IsKeyJustPressed(ebiten.KeyO):
			s.OpenFileMenu()
		case inpututil.IsKeyJustPressed(ebiten.KeyE):
			s.BeginNameInput(editor.ActionExportVTT)
		case inpututil.IsKeyJustPressed(ebiten.KeyC):
			if data, ok := s.CopyCell(lx, ly); ok {
				g.clip.Write(data)
			}
		case inpututil.IsKeyJustPressed(ebiten.KeyV):
			if data := g.clip.Read(); len(data) > 0 {
				s.PasteCell(lx, ly, data)
			}
		}
		return
	}

	if s.Immersion() {
		return
	}
	switch {
	case inpututil.IsKeyJustPressed(ebiten.KeyR):
		s.RotateSelection()
	case inpututil.IsKeyJustPressed(ebiten.KeyPageUp):
		s.SwitchLevel(1)
	case inpututil.IsKeyJustPressed(ebiten.KeyPageDown):
		s.SwitchLevel(-1)
	case inpututil.IsKeyJustPressed(ebiten.KeyDigit1):
		s.SetLayer(mapdata.Layers[0])
	case inpututil.IsKeyJustPressed(ebiten.KeyDigit2):
		s.SetLayer(mapdata.Layers[1])
	case inpututil.IsKeyJustPressed(ebiten.KeyDigit3):
		s.SetLayer(mapdata.Layers[2])
	case inpututil.IsKeyJustPressed(ebiten.KeyP):
		s.SetTool(editor.ToolPlace)
	case inpututil.IsKeyJustPressed(ebiten.KeyE):
		s.SetTool(editor.ToolErase)
	case inpututil.IsKeyJustPressed(ebiten.KeyW):
		s.SetTool(editor.ToolWall)
	}
}

// pollAssets drains the watcher and reloads the catalog once per batch.
func (g *EditorGame) pollAssets() {
	if g.watcher == nil {
		return
	}
	paths, errs, open := g.watcher.Drain()
	for _, err := range errs {
		log.Printf("Asset watcher error: %v", err)
	}
	for _, path := range paths {
		log.Printf("Asset changed: %s", path)
	}
	if !open {
		log.Printf("Asset watcher stopped; hot reload disabled")
		if err := g.watcher.Close(); err != nil {
			log.Printf("Failed to close asset watcher: %v", err)
		}
		g.watcher = nil
	}
	if len(paths) > 0 {
		g.reloadAssets()
	}
}

func (g *EditorGame) reloadAssets() {
	cat, err := catalog.Load(g.cfg.AssetRoot, g.cfg.TileSize)
	if err != nil {
		log.Printf("Failed to reload assets: %v", err)
		return
	}
	g.session.SetAssets(cat)
	g.images.Replace(cat)
	for _, c := range g.compositors {
		c.Reset()
	}
	g.ui.Side.Invalidate()
	log.Printf("Reloaded %d assets", cat.Len())
}

// syncUI mirrors session state into the widget tree.
func (g *EditorGame) syncUI() {
	s := g.session
	if s.Immersion() != g.shownImmerse {
		g.shownImmerse = s.Immersion()
		setVisible(g.ui.MenuBar, !g.shownImmerse)
		setVisible(g.ui.Side.Container, !g.shownImmerse)
	}

	if m := s.Modal(); m != g.shownModal {
		switch g.shownModal {
		case editor.ModalNameInput:
			g.ui.Name.Close()
		case editor.ModalFileMenu:
			g.ui.FileMenu.Close()
		}
		switch m {
		case editor.ModalNameInput:
			g.ui.Name.Open(s.NameAction().String(), s.NameText())
		case editor.ModalFileMenu:
			g.ui.FileMenu.Open(s.Files())
		}
		g.shownModal = m
	}

	rows := 4
	if top := g.ui.Side.palette.Container.GetWidget().Rect.Min.Y; top > 0 {
		rows = (g.height - top) / paletteStep
	}
	g.ui.Side.Sync(s, rows)
}

func (g *EditorGame) Layout(outsideWidth, outsideHeight int) (int, int) {
	g.width, g.height = outsideWidth, outsideHeight
	g.session.Resize(g.cfg.MapViewport(outsideWidth, outsideHeight))
	return outsideWidth, outsideHeight
}
