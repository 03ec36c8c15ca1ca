package tui

// SwitchScreenMsg requests a switch to another screen
type SwitchScreenMsg struct {
	Screen Screen
}

// RefreshDataMsg tells the active screen to reload from the services. Sent
// on every screen revisit so edits made elsewhere show up.
type RefreshDataMsg struct{}

// ErrorMsg carries an error up to the root model
type ErrorMsg struct {
	Err error
}

// OpenNewClientFormMsg tells the clients screen to open the new-client form
type OpenNewClientFormMsg struct{}

// firstRunCheckMsg reports whether any clients exist yet. An empty book on
// startup steers straight into the new-client form.
type firstRunCheckMsg struct {
	hasClients bool
}
