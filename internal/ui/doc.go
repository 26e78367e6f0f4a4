// Package ui implements the interactive prompts of the configure command.
//
// [Form] is a bubbletea model with one [textinput.Model] per [Field]. Enter moves to the next
// field and saves on the last one; tab and the arrow keys move between fields; esc or ctrl+c
// cancels with [shared.ErrAborted]. Existing values are shown as placeholders and kept when a
// field is left empty. Secret fields are masked.
//
// [PromptLines] asks the same questions one line at a time ("Label [default]: ") and is used
// when standard input is not a terminal.
package ui
