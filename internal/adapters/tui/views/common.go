package views

// ViewState contains common state shared by all view models.
// Embed this struct in view models to get width/height and message handling.
type ViewState struct {
	Width      int
	Height     int
	Message    string
	MessageErr bool
}

// SetSize updates the view dimensions
func (s *ViewState) SetSize(width, height int) {
	s.Width = width
	s.Height = height
}

// SetMessage sets a message to display in the view
func (s *ViewState) SetMessage(msg string, isErr bool) {
	s.Message = msg
	s.MessageErr = isErr
}

// ClearMessage clears the current message
func (s *ViewState) ClearMessage() {
	s.Message = ""
	s.MessageErr = false
}

// SwitchToNotebookMsg returns to the notebook editor
type SwitchToNotebookMsg struct{}

// SwitchToPickerMsg opens the reference picker
type SwitchToPickerMsg struct{}

// SwitchToHelpMsg opens the help screen
type SwitchToHelpMsg struct{}

// OpenEditorMsg asks the app to hand the notebook to the external editor
type OpenEditorMsg struct{}

// RunMsg carries a debounced update cycle onto the bubbletea loop
type RunMsg struct {
	Fn func()
}

// ReferenceChosenMsg is sent when a picker entry is accepted
type ReferenceChosenMsg struct {
	Line int
}
