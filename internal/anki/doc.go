// Package anki talks to a running Anki instance through the
// AnkiConnect add-on and can build offline .apkg packages when no
// instance is reachable.
package anki
