package main

import (
	"image/color"

	"github.com/ebitenui/ebitenui/image"
	"github.com/ebitenui/ebitenui/widget"
	"github.com/hajimehoshi/ebiten/v2/text/v2"
)

var (
	colorWindowBG   = color.RGBA{20, 20, 25, 255}
	colorViewBG     = color.RGBA{10, 10, 15, 255}
	colorPanelBG    = color.RGBA{35, 35, 40, 255}
	colorMenuBar    = color.RGBA{25, 25, 30, 255}
	colorGridLine   = color.RGBA{80, 80, 80, 255}
	colorText       = color.RGBA{220, 220, 200, 255}
	colorButton     = color.RGBA{50, 50, 60, 255}
	colorButtonOn   = color.RGBA{180, 140, 50, 255}
	colorButtonDown = color.RGBA{160, 120, 40, 255}
	colorOverlay    = color.RGBA{0, 0, 0, 200}
	colorDialog     = color.RGBA{45, 45, 50, 255}
)

// solidNineSlice returns a solid color *image.NineSlice for widget backgrounds.
func solidNineSlice(c color.Color) *image.NineSlice {
	return image.NewNineSliceColor(c)
}

func newEditorTheme(fontFace *text.Face) *widget.Theme {
	return &widget.Theme{
		ListTheme: &widget.ListParams{
			EntryFace: fontFace,
			EntryColor: &widget.ListEntryColor{
				Unselected:          colorText,
				Selected:            colorButtonOn,
				DisabledUnselected:  color.Gray{Y: 128},
				DisabledSelected:    color.Gray{Y: 64},
				SelectingBackground: colorButton,
				SelectedBackground:  colorButton,
			},
			ScrollContainerImage: &widget.ScrollContainerImage{
				Idle: solidNineSlice(colorDialog),
				Mask: solidNineSlice(colorDialog),
			},
		},
		PanelTheme: &widget.PanelParams{
			BackgroundImage: solidNineSlice(colorPanelBG),
		},
		ButtonTheme: &widget.ButtonParams{
			Image: &widget.ButtonImage{
				Idle:    solidNineSlice(colorButton),
				Hover:   solidNineSlice(color.RGBA{70, 70, 85, 255}),
				Pressed: solidNineSlice(colorButtonDown),
			},
			TextFace: fontFace,
			TextColor: &widget.ButtonTextColor{
				Idle: colorText,
			},
		},
		SliderTheme: &widget.SliderParams{
			TrackImage: &widget.SliderTrackImage{
				Idle:  solidNineSlice(colorButton),
				Hover: solidNineSlice(color.RGBA{70, 70, 85, 255}),
			},
			HandleImage: &widget.ButtonImage{
				Idle:    solidNineSlice(color.RGBA{120, 120, 130, 255}),
				Hover:   solidNineSlice(color.RGBA{160, 160, 170, 255}),
				Pressed: solidNineSlice(colorButtonOn),
			},
		},
	}
}

// toggleButtonImage highlights the active button of a radio group.
func toggleButtonImage() *widget.ButtonImage {
	return &widget.ButtonImage{
		Idle:         solidNineSlice(colorButton),
		Hover:        solidNineSlice(color.RGBA{70, 70, 85, 255}),
		Pressed:      solidNineSlice(colorButtonOn),
		PressedHover: solidNineSlice(colorButtonOn),
	}
}
