package ui

import (
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/desertthunder/nmp/internal/models"
	"github.com/desertthunder/nmp/internal/tasks"
)

// MsgKind enumerates all message types in the application.
type MsgKind int

// Msg represents all possible messages in the TUI (Elm-style message union).
type Msg struct {
	kind MsgKind
	data any
}

var (
	_ tea.Msg = Msg{}
)

const (
	MsgSessionEvent MsgKind = iota
	MsgSessionClosed
	MsgTick
	MsgScanComplete
	MsgActionFailed
)

// sessionEventMsg is the constructor for [MsgSessionEvent]
func sessionEventMsg(ev tasks.Event) Msg {
	return Msg{kind: MsgSessionEvent, data: ev}
}

// sessionClosedMsg is the constructor for [MsgSessionClosed]
func sessionClosedMsg() Msg {
	return Msg{kind: MsgSessionClosed}
}

// tickMsg is the constructor for [MsgTick]
func tickMsg(t time.Time) Msg {
	return Msg{kind: MsgTick, data: t}
}

// scanCompleteMsg is the constructor for [MsgScanComplete]
func scanCompleteMsg(scan *models.ScanRecord, err error) Msg {
	return Msg{
		kind: MsgScanComplete,
		data: struct {
			scan *models.ScanRecord
			err  error
		}{scan, err},
	}
}

// actionFailedMsg is the constructor for [MsgActionFailed]
func actionFailedMsg(err error) Msg {
	return Msg{kind: MsgActionFailed, data: err}
}
