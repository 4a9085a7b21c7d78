package tui

// RowUpdateMsg updates one row's fields by column header.
type RowUpdateMsg struct {
	Key    string
	Fields map[string]string
}

// WorkDoneMsg signals that the background work finished.
type WorkDoneMsg struct{}

// ErrorMsg carries a fatal error; the program quits and surfaces it.
type ErrorMsg struct {
	Err error
}
