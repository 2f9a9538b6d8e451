// Package processor contains the core business logic for processing
// word lookups. It orchestrates definition fetching, audio download,
// note writing, tutor chat, and Anki export. This package serves as
// the main coordinator between all other components.
package processor
