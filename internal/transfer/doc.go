// Package transfer moves decks and session history in and out of the store as
// delimited text: comma-separated records with standard quoting (fields
// containing the delimiter, a quote, or a newline are wrapped in quotes with
// internal quotes doubled).
package transfer
