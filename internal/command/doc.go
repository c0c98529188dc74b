// Package command provides the named commands that shortcuts execute.
//
// A command is looked up by a stable name ("NewFile", "Undo", "Zoom") and
// executed with a Params value. Params compare by value, so two shortcuts
// for the same command with equal parameters are the same action.
package command
