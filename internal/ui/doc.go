// Package ui styles the few lines picnezha prints to a terminal.
//
// Colors are ANSI codes so they follow the terminal theme:
//
//	ColorSuccess (green) - a written image, a started server
//	ColorError   (red)   - failures
//	ColorWarning (yellow) - an error image written in place of the status image
//	ColorMuted   (gray)  - details such as paths and sizes
//
// DisableColors switches to plain text for --no-color and NO_COLOR.
package ui
