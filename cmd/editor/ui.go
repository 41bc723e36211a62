package main

import (
	"bytes"

	"github.com/ebitenui/ebitenui"
	"github.com/ebitenui/ebitenui/widget"
	"github.com/hajimehoshi/ebiten/v2/text/v2"
	"golang.org/x/image/font/gofont/goregular"

	"github.com/milk9111/dungeonmap/config"
	"github.com/milk9111/dungeonmap/editor"
)

func loadFontFace(size float64) text.Face {
	s, err := text.NewGoTextFaceSource(bytes.NewReader(goregular.TTF))
	if err != nil {
		panic("Failed to load font: " + err.Error())
	}
	return &text.GoTextFace{Source: s, Size: size}
}

func BuildEditorUI(cfg config.Config, s *editor.Session, images *tileImages, fontFace text.Face, actions []menuAction) *EditorUI {
	ui := &ebitenui.UI{}
	ui.PrimaryTheme = newEditorTheme(&fontFace)

	menuBar := buildMenuBar(ui.PrimaryTheme, &fontFace, cfg.MenuHeight, actions)
	side := buildSidePanel(ui.PrimaryTheme, &fontFace, cfg.SidePanelWidth, s, images)
	name := newNameDialog(ui.PrimaryTheme, &fontFace,
		func(typed string) {
			s.SetNameText(typed)
			s.ConfirmName()
		},
		s.CloseModal,
	)
	files := newFileMenu(ui.PrimaryTheme, &fontFace,
		func(file string) { s.ChooseFile(file) },
		s.CloseModal,
	)

	// Root container: anchor layout
	root := widget.NewContainer(widget.ContainerOpts.Layout(widget.NewAnchorLayout()))
	menuBar.GetWidget().LayoutData = widget.AnchorLayoutData{
		HorizontalPosition: widget.AnchorLayoutPositionStart,
		VerticalPosition:   widget.AnchorLayoutPositionStart,
		StretchHorizontal:  true,
	}
	side.Container.GetWidget().LayoutData = widget.AnchorLayoutData{
		HorizontalPosition: widget.AnchorLayoutPositionEnd,
		VerticalPosition:   widget.AnchorLayoutPositionEnd,
		StretchVertical:    true,
		Padding:            &widget.Insets{Top: cfg.MenuHeight},
	}
	root.AddChild(menuBar)
	root.AddChild(side.Container)
	root.AddChild(name.Overlay)
	root.AddChild(files.Overlay)

	ui.Container = root
	return &EditorUI{
		UI:       ui,
		Root:     root,
		MenuBar:  menuBar,
		Side:     side,
		Name:     name,
		FileMenu: files,
	}
}
