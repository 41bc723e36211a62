package main

import (
	"github.com/ebitenui/ebitenui"
	"github.com/ebitenui/ebitenui/widget"
)

// RadioRow holds the radio-group state of a row of toggle buttons.
type RadioRow struct {
	group   *widget.RadioGroup
	buttons []*widget.Button
}

// Set activates the button at idx. Out of range indices are ignored.
func (r *RadioRow) Set(idx int) {
	if r == nil || r.group == nil || idx < 0 || idx >= len(r.buttons) {
		return
	}
	if r.Index() == idx {
		return
	}
	r.group.SetActive(r.buttons[idx])
}

// Index returns the active button position, or -1.
func (r *RadioRow) Index() int {
	if r == nil || r.group == nil {
		return -1
	}
	active := r.group.Active()
	for i, b := range r.buttons {
		if active == b {
			return i
		}
	}
	return -1
}

// EditorUI bundles the widget tree with the handles the game loop syncs.
type EditorUI struct {
	UI       *ebitenui.UI
	Root     *widget.Container
	MenuBar  *widget.Container
	Side     *sidePanel
	Name     *nameDialog
	FileMenu *fileMenu
}

func setVisible(c *widget.Container, visible bool) {
	if c == nil {
		return
	}
	if visible {
		c.GetWidget().Visibility = widget.Visibility_Show
	} else {
		c.GetWidget().Visibility = widget.Visibility_Hide
	}
}
