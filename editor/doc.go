// Package editor wires the document model and the highlighter into a
// Bubble Tea component: a scrolling viewport with a cursor, a status
// bar, a transient message bar, and a minibuffer for search and
// save-as prompts. Editing is modal; keys dispatch differently in
// normal, insert, and command mode.
package editor
