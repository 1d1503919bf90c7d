package main

import (
	"context"

	"logicdraw/config"
	"logicdraw/editor"
)

type tui struct {
	ctx    context.Context
	svc    *editor.Service
	frames *frameSource
	config *config.Config

	width  int
	height int
	frame  frame

	path string // file being edited, empty until saved or opened

	mode          Mode
	help          bool
	helpScroll    int
	fileOp        FileOperation
	confirmAction ConfirmAction
	filename      string
	fileList      []string
	selectedFile  int

	pressed        bool
	errorMessage   string
	successMessage string
}

// frame is one rasterized view of the editor, built on the editor
// goroutine.
type frame struct {
	canvas *Canvas
	status status
}

// status summarises the editor state for the status line.
type status struct {
	pins, wires, gates int
	zoom               float64
	snap               bool
	undo, redo         int
	selected           string
}

type frameMsg frame

