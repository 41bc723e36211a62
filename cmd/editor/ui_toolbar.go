package main

import (
	"github.com/ebitenui/ebitenui/widget"
	"github.com/hajimehoshi/ebiten/v2/text/v2"

	"github.com/milk9111/dungeonmap/editor"
	"github.com/milk9111/dungeonmap/mapdata"
)

// menuAction is one button of the top menu bar.
type menuAction struct {
	Label string
	Run   func()
}

func buildMenuBar(theme *widget.Theme, fontFace *text.Face, height int, actions []menuAction) *widget.Container {
	bar := widget.NewContainer(
		widget.ContainerOpts.WidgetOpts(
			widget.WidgetOpts.MinSize(1, height),
		),
		widget.ContainerOpts.Layout(
			widget.NewRowLayout(
				widget.RowLayoutOpts.Direction(widget.DirectionHorizontal),
				widget.RowLayoutOpts.Spacing(5),
				widget.RowLayoutOpts.Padding(&widget.Insets{Left: 10, Top: 5, Bottom: 5}),
			),
		),
		widget.ContainerOpts.BackgroundImage(solidNineSlice(colorMenuBar)),
	)
	for _, a := range actions {
		run := a.Run
		btn := widget.NewButton(
			widget.ButtonOpts.Image(theme.ButtonTheme.Image),
			widget.ButtonOpts.Text(a.Label, fontFace, theme.ButtonTheme.TextColor),
			widget.ButtonOpts.WidgetOpts(
				widget.WidgetOpts.MinSize(100, height-10),
			),
			widget.ButtonOpts.ClickedHandler(func(args *widget.ButtonClickedEventArgs) {
				run()
			}),
		)
		bar.AddChild(btn)
	}
	return bar
}

// radioRow builds a row of toggle buttons of which exactly one is active.
func radioRow(theme *widget.Theme, fontFace *text.Face, labels []string, initial int, onSelect func(idx int)) (*widget.Container, *RadioRow) {
	row := widget.NewContainer(
		widget.ContainerOpts.Layout(
			widget.NewRowLayout(
				widget.RowLayoutOpts.Direction(widget.DirectionHorizontal),
				widget.RowLayoutOpts.Spacing(5),
			),
		),
	)

	var buttons []*widget.Button
	for _, name := range labels {
		btn := widget.NewButton(
			widget.ButtonOpts.Image(toggleButtonImage()),
			widget.ButtonOpts.Text(name, fontFace, theme.ButtonTheme.TextColor),
			widget.ButtonOpts.ToggleMode(),
			widget.ButtonOpts.WidgetOpts(
				widget.WidgetOpts.MinSize(95, 36),
			),
		)
		buttons = append(buttons, btn)
		row.AddChild(btn)
	}

	elements := make([]widget.RadioGroupElement, 0, len(buttons))
	for _, b := range buttons {
		elements = append(elements, b)
	}

	rr := &RadioRow{buttons: buttons}
	rr.group = widget.NewRadioGroup(
		widget.RadioGroupOpts.Elements(elements...),
		widget.RadioGroupOpts.ChangedHandler(func(args *widget.RadioGroupChangedEventArgs) {
			if onSelect == nil {
				return
			}
			for idx, b := range buttons {
				if args.Active == b {
					onSelect(idx)
					return
				}
			}
		}),
	)
	rr.Set(initial)
	return row, rr
}

func buildToolBar(theme *widget.Theme, fontFace *text.Face, s *editor.Session) (*widget.Container, *RadioRow) {
	labels := []string{editor.ToolPlace.String(), editor.ToolErase.String(), editor.ToolWall.String()}
	return radioRow(theme, fontFace, labels, int(s.Tool()), func(idx int) {
		s.SetTool(editor.Tool(idx))
	})
}

func buildLayerBar(theme *widget.Theme, fontFace *text.Face, s *editor.Session) (*widget.Container, *RadioRow) {
	labels := make([]string, len(mapdata.Layers))
	for i, l := range mapdata.Layers {
		labels[i] = l.String()
	}
	return radioRow(theme, fontFace, labels, int(s.Layer()), func(idx int) {
		s.SetLayer(mapdata.Layers[idx])
	})
}
