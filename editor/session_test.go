package editor

import (
	"image"
	"image/color"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/milk9111/dungeonmap/catalog"
	"github.com/milk9111/dungeonmap/mapdata"
	"github.com/milk9111/dungeonmap/render"
	"github.com/milk9111/dungeonmap/vtt"
)

const ts = 16

func solid(side int, c color.Color) *image.RGBA {
	img := image.NewRGBA(image.Rect(0, 0, side, side))
	for y := 0; y < side; y++ {
		for x := 0; x < side; x++ {
			img.Set(x, y, c)
		}
	}
	return img
}

func newTestSession(t *testing.T) *Session {
	t.Helper()
	cat := catalog.New(ts)
	cat.Add("floor", catalog.BaseCategory, 1, solid(ts, color.RGBA{90, 90, 90, 255}))
	cat.Add("goblin", "Tokens", 1, solid(ts, color.RGBA{0, 160, 0, 255}))
	cat.Add("table_2x2", "Furniture", 2, solid(2*ts, color.RGBA{120, 60, 0, 255}))

	imgComp, err := render.NewCompositor(render.ImageBackground)
	if err != nil {
		t.Fatal(err)
	}
	vttComp, err := render.NewCompositor(vtt.Background)
	if err != nil {
		t.Fatal(err)
	}
	t.Cleanup(func() {
		imgComp.Close()
		vttComp.Close()
	})

	s := New(cat, Options{
		Width:       160,
		Height:      160,
		TileSize:    ts,
		ProjectDir:  t.TempDir(),
		ImageRaster: imgComp,
		VTTRaster:   vttComp,
	})
	s.Tick(time.Unix(1000, 0))
	return s
}

// click presses and releases at the same grid-local pixel.
func click(s *Session, px, py int) {
	s.PointerDown(px, py)
	s.PointerUp(px, py)
}

func TestPlaceAndLift(t *testing.T) {
	s := newTestSession(t)
	s.SelectAsset("floor")
	s.PointerUp(40, 40)

	if c := s.Grid().Cell(2, 2); len(c) != 1 || c[0].Key != "floor" {
		t.Fatalf("expected floor at (2,2), got %+v", c)
	}
	if s.History().UndoLen() != 1 {
		t.Fatalf("placement should record one snapshot, got %d", s.History().UndoLen())
	}

	// pressing on the tile lifts it, releasing drops it elsewhere
	s.SelectAsset("goblin")
	s.PointerDown(40, 40)
	if key, _, _ := s.Carried(); key != "floor" {
		t.Fatalf("expected the lifted floor to be carried, got %q", key)
	}
	if len(s.Grid().Cell(2, 2)) != 0 {
		t.Fatalf("lifted tile should leave its cell")
	}
	s.PointerUp(100, 20)
	if c := s.Grid().Cell(6, 1); len(c) != 1 || c[0].Key != "floor" {
		t.Fatalf("expected floor moved to (6,1), got %+v", c)
	}
	if s.History().UndoLen() != 3 {
		t.Fatalf("lift and drop should each record a snapshot, got %d", s.History().UndoLen())
	}

	// the first undo reverts the drop, leaving the tile lifted
	s.Undo()
	if len(s.Grid().Cell(2, 2)) != 0 || len(s.Grid().Cell(6, 1)) != 0 {
		t.Fatalf("undoing the drop should leave the tile in neither cell, got %+v and %+v",
			s.Grid().Cell(2, 2), s.Grid().Cell(6, 1))
	}

	// the second undo reverts the lift
	s.Undo()
	if c := s.Grid().Cell(2, 2); len(c) != 1 || c[0].Key != "floor" {
		t.Fatalf("undoing the lift should restore (2,2), got %+v", c)
	}
}

func TestPlaceUsesCurrentLayerAndRotation(t *testing.T) {
	s := newTestSession(t)
	s.SetLayer(mapdata.LayerTokens)
	s.SelectAsset("goblin")
	s.RotateSelection()
	s.PointerUp(5, 5)

	c := s.Grid().Cell(0, 0)
	if len(c) != 1 || c[0].Layer != mapdata.LayerTokens || c[0].Rotation != 270 {
		t.Fatalf("unexpected tile %+v", c)
	}

	// the rotation is remembered per asset
	s.SelectAsset("floor")
	s.SelectAsset("goblin")
	if _, angle, _ := s.Carried(); angle != 270 {
		t.Fatalf("expected remembered angle 270, got %d", angle)
	}

	// a lifted tile only matches on its own layer
	s.SetLayer(mapdata.LayerGround)
	s.ClearSelection()
	s.PointerDown(5, 5)
	if _, _, ok := s.Carried(); ok {
		t.Fatalf("token should not be lifted from the ground layer")
	}
}

func TestPlaceOutsideGridIsIgnored(t *testing.T) {
	s := newTestSession(t)
	s.SelectAsset("floor")
	s.PointerUp(500, 500)
	s.PointerUp(-1, 3)
	if s.Grid().TileCount() != 0 || s.History().UndoLen() != 0 {
		t.Fatalf("out of grid placement must be a no-op")
	}
}

func TestErase(t *testing.T) {
	s := newTestSession(t)
	s.SelectAsset("floor")
	s.PointerUp(8, 8)
	s.PointerUp(8, 8)

	s.SetTool(ToolWall)
	s.PointerDown(1, 1)
	s.PointerUp(63, 2)
	if len(s.Walls()) != 1 || s.Walls()[0] != (mapdata.WallSegment{X1: 0, Y1: 0, X2: 64, Y2: 0}) {
		t.Fatalf("unexpected walls %+v", s.Walls())
	}

	s.SetTool(ToolErase)
	before := s.History().UndoLen()

	// near the wall: the wall goes first, tiles stay
	click(s, 8, 4)
	if len(s.Walls()) != 0 || len(s.Grid().Cell(0, 0)) != 2 {
		t.Fatalf("erase should remove the wall only")
	}
	// then tiles, top first
	click(s, 8, 8)
	if len(s.Grid().Cell(0, 0)) != 1 {
		t.Fatalf("erase should pop one tile")
	}
	if s.History().UndoLen() != before+2 {
		t.Fatalf("each erase records one snapshot")
	}

	// nothing under the pointer records nothing
	click(s, 150, 150)
	if s.History().UndoLen() != before+2 {
		t.Fatalf("an empty erase must not record history")
	}
}

func TestWallNeedsStartAndView(t *testing.T) {
	s := newTestSession(t)
	s.SetTool(ToolWall)
	s.PointerUp(30, 30)
	if len(s.Walls()) != 0 {
		t.Fatalf("release without press adds nothing")
	}
	s.PointerDown(10, 10)
	if p, ok := s.WallStart(); !ok || p != (image.Point{16, 16}) {
		t.Fatalf("expected snapped start (16,16), got %v %v", p, ok)
	}
	s.PointerUp(400, 10)
	if len(s.Walls()) != 0 {
		t.Fatalf("release outside the map adds nothing")
	}
	if _, ok := s.WallStart(); ok {
		t.Fatalf("release clears the start point")
	}
}

func TestUndoRedoWalls(t *testing.T) {
	s := newTestSession(t)
	s.SetTool(ToolWall)
	for i := 0; i < 3; i++ {
		s.PointerDown(0, i*ts)
		s.PointerUp(64, i*ts)
	}
	if !s.Undo() || !s.Undo() {
		t.Fatalf("undo should succeed")
	}
	if len(s.Walls()) != 1 {
		t.Fatalf("expected 1 wall after two undos, got %d", len(s.Walls()))
	}
	if !s.Redo() || len(s.Walls()) != 2 {
		t.Fatalf("redo should restore the second wall")
	}
	if s.Status() != "Redone" {
		t.Fatalf("unexpected status %q", s.Status())
	}
	s.Redo()
	if s.Redo() {
		t.Fatalf("redo past the end must fail")
	}
}

func TestLevels(t *testing.T) {
	s := newTestSession(t)
	s.SelectAsset("floor")
	s.PointerUp(0, 0)

	s.SwitchLevel(1)
	if s.Level() != 1 || s.Grid().TileCount() != 0 {
		t.Fatalf("new level should be empty")
	}
	if s.History().UndoLen() != 0 {
		t.Fatalf("history is cleared on level switch")
	}
	s.SwitchLevel(-2)
	if s.Level() != -1 {
		t.Fatalf("expected level -1, got %d", s.Level())
	}
	s.SetLevel(0)
	if s.Grid().TileCount() != 1 {
		t.Fatalf("level 0 should keep its tile")
	}
	if got := s.Store().Indices(); len(got) != 3 {
		t.Fatalf("expected levels -1,0,1, got %v", got)
	}
}

func TestResize(t *testing.T) {
	s := newTestSession(t)
	s.SelectAsset("floor")
	s.PointerUp(150, 150)
	s.PointerUp(0, 0)

	s.Resize(80, 48)
	if s.Grid().Cols() != 5 || s.Grid().Rows() != 3 {
		t.Fatalf("unexpected grid %dx%d", s.Grid().Cols(), s.Grid().Rows())
	}
	if s.Grid().TileCount() != 1 {
		t.Fatalf("tiles outside the new size are dropped")
	}
	s.SwitchLevel(1)
	if s.Grid().Cols() != 5 {
		t.Fatalf("new levels follow the resized viewport")
	}

	s.SetImmersion(true)
	s.Resize(320, 320)
	if s.Grid().Cols() != 5 {
		t.Fatalf("immersion mode does not resize")
	}
}

func TestModals(t *testing.T) {
	s := newTestSession(t)
	s.BeginNameInput(ActionSave)
	if s.Modal() != ModalNameInput || s.NameText() != "project" {
		t.Fatalf("unexpected name input state")
	}
	s.SelectAsset("floor")
	s.PointerDown(8, 8)
	s.PointerUp(8, 8)
	if s.Grid().TileCount() != 0 {
		t.Fatalf("name input blocks edits")
	}

	s.ToggleCategoryMenu()
	if s.Modal() != ModalCategoryMenu {
		t.Fatalf("opening a modal replaces the previous one")
	}
	// a map click closes the category menu and goes through
	s.PointerDown(8, 8)
	s.PointerUp(8, 8)
	if s.Modal() != ModalNone || s.Grid().TileCount() != 1 {
		t.Fatalf("category menu should close and let the click place")
	}

	if other := s.OtherCategories(); len(other) != 2 {
		t.Fatalf("expected two other categories, got %v", other)
	}
	s.ToggleCategoryMenu()
	s.SelectCategory("Tokens")
	if s.Category() != "Tokens" || s.Modal() != ModalNone {
		t.Fatalf("category selection failed")
	}
	if p := s.Palette(); len(p) != 1 || p[0] != "goblin" {
		t.Fatalf("unexpected palette %v", p)
	}

	s.SetNameText(strings.Repeat("x", 40))
	if len(s.NameText()) != 0 {
		t.Fatalf("name text only applies while the prompt is open")
	}
}

func TestSaveLoad(t *testing.T) {
	s := newTestSession(t)
	s.SelectAsset("table_2x2")
	s.PointerUp(20, 20)
	s.SetTool(ToolWall)
	s.PointerDown(0, 0)
	s.PointerUp(32, 0)
	s.SwitchLevel(1)
	s.SelectAsset("floor")
	s.PointerUp(0, 0)

	s.BeginNameInput(ActionSave)
	s.SetNameText("keep")
	if msg := s.ConfirmName(); msg != "Saved: keep.json" {
		t.Fatalf("unexpected status %q", msg)
	}
	if s.Modal() != ModalNone {
		t.Fatalf("confirm closes the prompt")
	}

	files := s.OpenFileMenu()
	if len(files) != 1 || files[0] != "keep.json" {
		t.Fatalf("unexpected files %v", files)
	}

	other := newTestSession(t)
	other.opts.ProjectDir = s.opts.ProjectDir
	other.SwitchLevel(3)
	other.SelectAsset("floor")
	other.PointerUp(0, 0)
	if msg := other.ChooseFile("keep.json"); !strings.HasPrefix(msg, "Loaded") {
		t.Fatalf("unexpected status %q", msg)
	}
	if other.Level() != 0 || other.History().UndoLen() != 0 {
		t.Fatalf("load resets level and history")
	}
	if _, ok := other.Store().Get(3); ok {
		t.Fatalf("load replaces every level")
	}
	if other.Grid().TileCount() != 1 || len(other.Walls()) != 1 {
		t.Fatalf("level 0 content lost")
	}
	lvl1, _ := other.Store().Get(1)
	if lvl1.Grid.TileCount() != 1 {
		t.Fatalf("level 1 content lost")
	}
}

func TestLoadFailureKeepsState(t *testing.T) {
	s := newTestSession(t)
	s.SelectAsset("floor")
	s.PointerUp(0, 0)
	if err := os.WriteFile(filepath.Join(s.opts.ProjectDir, "bad.json"), []byte("{"), 0o644); err != nil {
		t.Fatal(err)
	}
	for _, name := range []string{"bad.json", "missing.json"} {
		msg := s.Load(name)
		if !strings.HasPrefix(msg, "Err: ") {
			t.Fatalf("%s: unexpected status %q", name, msg)
		}
		if s.Grid().TileCount() != 1 || s.History().UndoLen() != 1 {
			t.Fatalf("%s: failed load must not touch the session", name)
		}
	}
}

func TestLoadCreatesLevelZero(t *testing.T) {
	s := newTestSession(t)
	path := filepath.Join(s.opts.ProjectDir, "upper.json")
	if err := os.WriteFile(path, []byte(`{"levels": {"2": []}, "walls": {}}`), 0o644); err != nil {
		t.Fatal(err)
	}
	s.Load("upper.json")
	if _, ok := s.Store().Get(0); !ok {
		t.Fatalf("level 0 should always exist after a load")
	}
	if s.Level() != 0 {
		t.Fatalf("expected level 0 current")
	}
}

func TestExports(t *testing.T) {
	s := newTestSession(t)
	dir := s.opts.ProjectDir

	if msg := s.ExportVTT("empty"); msg != "Empty map" {
		t.Fatalf("unexpected status %q", msg)
	}
	if msg := s.ExportImage("empty"); msg != "Empty map" {
		t.Fatalf("unexpected status %q", msg)
	}
	entries, _ := os.ReadDir(dir)
	if len(entries) != 0 {
		t.Fatalf("empty exports must not write files")
	}

	s.SelectAsset("floor")
	s.PointerUp(0, 0)
	if msg := s.ExportVTT("crypt"); msg != "Export OK: crypt.dd2vtt" {
		t.Fatalf("unexpected status %q", msg)
	}
	s.BeginNameInput(ActionExportImage)
	s.SetNameText("crypt")
	if msg := s.ConfirmName(); msg != "Export OK: crypt.png" {
		t.Fatalf("unexpected status %q", msg)
	}
	for _, name := range []string{"crypt.dd2vtt", "crypt.png"} {
		if _, err := os.Stat(filepath.Join(dir, name)); err != nil {
			t.Fatalf("%s not written: %v", name, err)
		}
	}
}

func TestStatusExpiry(t *testing.T) {
	s := newTestSession(t)
	start := time.Unix(2000, 0)
	s.Tick(start)
	s.Undo()
	if s.Status() != "Nothing to undo" {
		t.Fatalf("unexpected status %q", s.Status())
	}
	s.Tick(start.Add(500 * time.Millisecond))
	if s.Status() == "" {
		t.Fatalf("status expired too early")
	}
	s.Tick(start.Add(ShortStatusDuration))
	if s.Status() != "" {
		t.Fatalf("status should have expired")
	}
}

func TestCopyPaste(t *testing.T) {
	s := newTestSession(t)
	s.SelectAsset("floor")
	s.PointerUp(0, 0)
	s.SetLayer(mapdata.LayerTokens)
	s.SelectAsset("goblin")
	s.PointerUp(0, 0)

	if _, ok := s.CopyCell(50, 50); ok {
		t.Fatalf("empty cells cannot be copied")
	}
	data, ok := s.CopyCell(3, 3)
	if !ok {
		t.Fatalf("copy failed")
	}
	if !s.PasteCell(40, 40, data) {
		t.Fatalf("paste failed")
	}
	if !s.Grid().Cell(2, 2).Equal(s.Grid().Cell(0, 0)) {
		t.Fatalf("pasted stack differs")
	}
	if s.PasteCell(40, 40, data) {
		t.Fatalf("pasting the same stack is a no-op")
	}
	if s.PasteCell(40, 40, []byte("garbage")) {
		t.Fatalf("garbage must be rejected")
	}
}
