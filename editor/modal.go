package editor

import (
	"strings"
	"time"
)

// Modal identifies the overlay currently owning the input. At most one is
// open at a time.
type Modal int

const (
	ModalNone Modal = iota
	ModalNameInput
	ModalFileMenu
	ModalCategoryMenu
)

// NameAction is what confirming the name input does.
type NameAction int

const (
	ActionSave NameAction = iota
	ActionExportVTT
	ActionExportImage
)

func (a NameAction) String() string {
	switch a {
	case ActionSave:
		return "Save project"
	case ActionExportVTT:
		return "Export VTT"
	case ActionExportImage:
		return "Export image"
	}
	return "Unknown"
}

// MaxNameLength bounds the text typed into the name input.
const MaxNameLength = 30

const (
	StatusDuration      = 3 * time.Second
	ShortStatusDuration = time.Second
)

func defaultName(a NameAction) string {
	switch a {
	case ActionSave:
		return "project"
	case ActionExportImage:
		return "map_image"
	}
	return "map_export"
}

func (s *Session) Modal() Modal { return s.modal }

// OpenModal shows m and closes whatever else was open.
func (s *Session) OpenModal(m Modal) {
	s.modal = m
	s.dragging = false
	s.wallStart = nil
}

func (s *Session) CloseModal() {
	s.modal = ModalNone
	s.nameText = ""
}

// ToggleCategoryMenu opens the category list or closes it if already open.
func (s *Session) ToggleCategoryMenu() {
	if s.modal == ModalCategoryMenu {
		s.CloseModal()
		return
	}
	s.OpenModal(ModalCategoryMenu)
}

// OtherCategories lists every category but the one on display.
func (s *Session) OtherCategories() []string {
	if s.assets == nil {
		return nil
	}
	var out []string
	for _, c := range s.assets.Categories() {
		if c != s.category {
			out = append(out, c)
		}
	}
	return out
}

// SelectCategory shows name in the palette and closes the category menu.
func (s *Session) SelectCategory(name string) {
	if s.assets == nil {
		return
	}
	for _, c := range s.assets.Categories() {
		if c == name {
			s.category = name
			break
		}
	}
	if s.modal == ModalCategoryMenu {
		s.CloseModal()
	}
}

// BeginNameInput opens the name prompt for a save or export, pre-filled
// with a default file name.
func (s *Session) BeginNameInput(a NameAction) {
	s.OpenModal(ModalNameInput)
	s.nameAction = a
	s.nameText = defaultName(a)
}

func (s *Session) NameAction() NameAction { return s.nameAction }
func (s *Session) NameText() string       { return s.nameText }

// SetNameText replaces the typed name, truncated to MaxNameLength runes.
// It does nothing unless the name input is open.
func (s *Session) SetNameText(text string) {
	if s.modal != ModalNameInput {
		return
	}
	if r := []rune(text); len(r) > MaxNameLength {
		text = string(r[:MaxNameLength])
	}
	s.nameText = text
}

// ConfirmName runs the pending action with the typed name and closes the
// prompt. A blank name only closes it.
func (s *Session) ConfirmName() string {
	if s.modal != ModalNameInput {
		return ""
	}
	name := strings.TrimSpace(s.nameText)
	action := s.nameAction
	s.CloseModal()
	if name == "" {
		return ""
	}
	switch action {
	case ActionSave:
		return s.Save(name)
	case ActionExportVTT:
		return s.ExportVTT(name)
	case ActionExportImage:
		return s.ExportImage(name)
	}
	return ""
}

// OpenFileMenu lists the project files and shows them for loading.
func (s *Session) OpenFileMenu() []string {
	files, err := s.ListProjects()
	if err != nil {
		s.setStatus("Err: "+err.Error(), StatusDuration)
		return nil
	}
	s.files = files
	s.OpenModal(ModalFileMenu)
	return files
}

// Files returns the listing shown by the file menu.
func (s *Session) Files() []string { return s.files }

// ChooseFile loads name from the file menu and closes it.
func (s *Session) ChooseFile(name string) string {
	s.CloseModal()
	return s.Load(name)
}

// Tick advances the session clock and expires the status message.
func (s *Session) Tick(now time.Time) {
	s.now = now
	if s.status != "" && !now.Before(s.statusUntil) {
		s.status = ""
	}
}

// Status returns the message on display, if any.
func (s *Session) Status() string { return s.status }

func (s *Session) setStatus(msg string, d time.Duration) {
	s.status = msg
	s.statusUntil = s.now.Add(d)
}
