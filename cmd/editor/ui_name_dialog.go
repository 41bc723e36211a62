package main

import (
	"image/color"

	"github.com/ebitenui/ebitenui/widget"
	"github.com/hajimehoshi/ebiten/v2/text/v2"

	"github.com/milk9111/dungeonmap/editor"
)

// nameDialog asks for the file name of a save or an export.
type nameDialog struct {
	Overlay *widget.Container
	Open    func(title, current string)
	Close   func()
}

func newNameDialog(theme *widget.Theme, fontFace *text.Face, onConfirm func(name string), onCancel func()) *nameDialog {
	overlay := widget.NewContainer(
		widget.ContainerOpts.WidgetOpts(
			widget.WidgetOpts.LayoutData(widget.AnchorLayoutData{
				HorizontalPosition: widget.AnchorLayoutPositionCenter,
				VerticalPosition:   widget.AnchorLayoutPositionCenter,
				StretchHorizontal:  true,
				StretchVertical:    true,
			}),
			widget.WidgetOpts.MinSize(1, 1),
		),
		widget.ContainerOpts.Layout(widget.NewAnchorLayout()),
		widget.ContainerOpts.BackgroundImage(solidNineSlice(colorOverlay)),
	)
	overlay.GetWidget().Visibility = widget.Visibility_Hide

	dialog := widget.NewContainer(
		widget.ContainerOpts.WidgetOpts(
			widget.WidgetOpts.MinSize(400, 160),
		),
		widget.ContainerOpts.BackgroundImage(solidNineSlice(colorDialog)),
		widget.ContainerOpts.Layout(
			widget.NewRowLayout(
				widget.RowLayoutOpts.Direction(widget.DirectionVertical),
				widget.RowLayoutOpts.Spacing(12),
				widget.RowLayoutOpts.Padding(widget.NewInsetsSimple(16)),
			),
		),
	)
	dialog.GetWidget().LayoutData = widget.AnchorLayoutData{
		HorizontalPosition: widget.AnchorLayoutPositionCenter,
		VerticalPosition:   widget.AnchorLayoutPositionCenter,
	}

	title := widget.NewLabel(
		widget.LabelOpts.Text("", fontFace, &widget.LabelColor{Idle: colorText, Disabled: color.Gray{Y: 140}}),
	)
	nameInput := widget.NewTextInput(
		widget.TextInputOpts.WidgetOpts(
			widget.WidgetOpts.MinSize(360, 32),
		),
		widget.TextInputOpts.Image(&widget.TextInputImage{
			Idle:     solidNineSlice(color.RGBA{245, 245, 245, 255}),
			Disabled: solidNineSlice(color.RGBA{200, 200, 200, 255}),
		}),
		widget.TextInputOpts.Color(&widget.TextInputColor{
			Idle:     color.Black,
			Disabled: color.Gray{Y: 120},
			Caret:    color.Black,
		}),
		widget.TextInputOpts.Face(fontFace),
		widget.TextInputOpts.Validation(func(newInputText string) (bool, *string) {
			return len([]rune(newInputText)) <= editor.MaxNameLength, nil
		}),
		widget.TextInputOpts.SubmitOnEnter(true),
		widget.TextInputOpts.SubmitHandler(func(args *widget.TextInputChangedEventArgs) {
			onConfirm(args.InputText)
		}),
	)

	buttonsRow := widget.NewContainer(
		widget.ContainerOpts.Layout(
			widget.NewRowLayout(
				widget.RowLayoutOpts.Direction(widget.DirectionHorizontal),
				widget.RowLayoutOpts.Spacing(20),
			),
		),
	)
	cancelBtn := widget.NewButton(
		widget.ButtonOpts.Image(theme.ButtonTheme.Image),
		widget.ButtonOpts.Text("Cancel", fontFace, theme.ButtonTheme.TextColor),
		widget.ButtonOpts.WidgetOpts(widget.WidgetOpts.MinSize(170, 40)),
		widget.ButtonOpts.ClickedHandler(func(args *widget.ButtonClickedEventArgs) {
			onCancel()
		}),
	)
	okBtn := widget.NewButton(
		widget.ButtonOpts.Image(theme.ButtonTheme.Image),
		widget.ButtonOpts.Text("OK", fontFace, theme.ButtonTheme.TextColor),
		widget.ButtonOpts.WidgetOpts(widget.WidgetOpts.MinSize(170, 40)),
		widget.ButtonOpts.ClickedHandler(func(args *widget.ButtonClickedEventArgs) {
			onConfirm(nameInput.GetText())
		}),
	)
	buttonsRow.AddChild(cancelBtn)
	buttonsRow.AddChild(okBtn)

	dialog.AddChild(title)
	dialog.AddChild(nameInput)
	dialog.AddChild(buttonsRow)
	overlay.AddChild(dialog)

	open := func(heading, current string) {
		title.Label = heading
		nameInput.SetText(current)
		nameInput.Focus(true)
		overlay.GetWidget().Visibility = widget.Visibility_Show
	}
	closeFn := func() {
		nameInput.Focus(false)
		overlay.GetWidget().Visibility = widget.Visibility_Hide
	}

	return &nameDialog{Overlay: overlay, Open: open, Close: closeFn}
}

// fileMenu lists saved projects for loading.
type fileMenu struct {
	Overlay *widget.Container
	Open    func(files []string)
	Close   func()
}

func newFileMenu(theme *widget.Theme, fontFace *text.Face, onChoose func(name string), onClose func()) *fileMenu {
	overlay := widget.NewContainer(
		widget.ContainerOpts.WidgetOpts(
			widget.WidgetOpts.LayoutData(widget.AnchorLayoutData{
				HorizontalPosition: widget.AnchorLayoutPositionCenter,
				VerticalPosition:   widget.AnchorLayoutPositionCenter,
				StretchHorizontal:  true,
				StretchVertical:    true,
			}),
			widget.WidgetOpts.MinSize(1, 1),
		),
		widget.ContainerOpts.Layout(widget.NewAnchorLayout()),
		widget.ContainerOpts.BackgroundImage(solidNineSlice(colorOverlay)),
	)
	overlay.GetWidget().Visibility = widget.Visibility_Hide

	panel := widget.NewContainer(
		widget.ContainerOpts.WidgetOpts(
			widget.WidgetOpts.MinSize(600, 500),
		),
		widget.ContainerOpts.BackgroundImage(solidNineSlice(colorDialog)),
		widget.ContainerOpts.Layout(
			widget.NewRowLayout(
				widget.RowLayoutOpts.Direction(widget.DirectionVertical),
				widget.RowLayoutOpts.Spacing(10),
				widget.RowLayoutOpts.Padding(widget.NewInsetsSimple(20)),
			),
		),
	)
	panel.GetWidget().LayoutData = widget.AnchorLayoutData{
		HorizontalPosition: widget.AnchorLayoutPositionCenter,
		VerticalPosition:   widget.AnchorLayoutPositionCenter,
	}

	heading := widget.NewLabel(
		widget.LabelOpts.Text("Load project", fontFace, &widget.LabelColor{Idle: colorText}),
	)
	list := widget.NewList(
		widget.ListOpts.ContainerOpts(widget.ContainerOpts.WidgetOpts(
			widget.WidgetOpts.MinSize(560, 360),
		)),
		widget.ListOpts.Entries([]any{}),
		widget.ListOpts.EntryLabelFunc(func(e any) string {
			if name, ok := e.(string); ok {
				return name
			}
			return ""
		}),
		widget.ListOpts.EntrySelectedHandler(func(args *widget.ListEntrySelectedEventArgs) {
			if name, ok := args.Entry.(string); ok {
				onChoose(name)
			}
		}),
	)
	closeBtn := widget.NewButton(
		widget.ButtonOpts.Image(theme.ButtonTheme.Image),
		widget.ButtonOpts.Text("Close", fontFace, theme.ButtonTheme.TextColor),
		widget.ButtonOpts.WidgetOpts(widget.WidgetOpts.MinSize(100, 40)),
		widget.ButtonOpts.ClickedHandler(func(args *widget.ButtonClickedEventArgs) {
			onClose()
		}),
	)
	panel.AddChild(heading)
	panel.AddChild(list)
	panel.AddChild(closeBtn)
	overlay.AddChild(panel)

	open := func(files []string) {
		entries := make([]any, len(files))
		for i, f := range files {
			entries[i] = f
		}
		list.SetEntries(entries)
		if len(files) == 0 {
			heading.Label = "Load project (no saved projects)"
		} else {
			heading.Label = "Load project"
		}
		overlay.GetWidget().Visibility = widget.Visibility_Show
	}
	closeFn := func() {
		overlay.GetWidget().Visibility = widget.Visibility_Hide
	}
	return &fileMenu{Overlay: overlay, Open: open, Close: closeFn}
}
