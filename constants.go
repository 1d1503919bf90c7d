package main

import "time"

type Mode int

const (
	ModeNormal Mode = iota
	ModeFileInput
	ModeConfirm
)

type FileOperation int

const (
	FileOpSave FileOperation = iota
	FileOpSavePNG
	FileOpSaveVisualTXT
	FileOpOpen
)

type ConfirmAction int

const (
	ConfirmQuit ConfirmAction = iota
	ConfirmNewChart
	ConfirmOverwriteFile
)

const (
	// screen units covered by one terminal cell; cells are about twice as
	// tall as they are wide
	cellWidth  = 5.0
	cellHeight = 10.0

	panStep    = 4 // cells per key press
	zoomFactor = 1.25
	// how long Update waits for the editor before giving up on a command
	execTimeout = 2 * time.Second

	diagramExt = ".ldr"
)
