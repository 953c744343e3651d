package main

type Mode int

const (
	ModeNormal Mode = iota
	ModeFileInput
	ModeTextInput
	ModeConfirm
)

type FileOperation int

const (
	FileOpSaveProject FileOperation = iota
	FileOpSaveProjectV1
	FileOpOpenProject
	FileOpExportImage
	FileOpExportSheet
	FileOpExportBundle
	FileOpSnapshot
)

type TextInput int

const (
	InputColor TextInput = iota
	InputResize
)

type ConfirmAction int

const (
	ConfirmQuit ConfirmAction = iota
	ConfirmResize
	ConfirmClearLayer
	ConfirmRemoveFrame
	ConfirmRemoveLayer
	ConfirmOverwriteFile
	ConfirmReplaceProject
)

type toolbarButton int

const (
	btnNone toolbarButton = iota - 1
	btnUndo
	btnRedo
	btnPlay
	btnOnion
	btnMirrorH
	btnMirrorV
	btnPrevFrame
	btnNextFrame
	btnAddFrame
	btnAddLayer
	btnHelp
)

const (
	canvasTop   = 1 // toolbar row above the grid
	cellWidth   = 2 // terminal columns per grid cell
	footerLines = 3 // frames bar, palette, status line
	alphaStep   = 0.1
	projectExt  = ".pp"
)
