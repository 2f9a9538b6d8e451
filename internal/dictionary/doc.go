// Package dictionary produces lexical profiles for English words using
// AI completion providers. A profile covers definition, translation,
// examples, collocations, word family and usage guidance, and is the
// input for note rendering and flashcard export.
package dictionary
