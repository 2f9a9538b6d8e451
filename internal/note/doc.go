// Package note renders lexical records as editable Markdown notes and
// parses edited notes back into export fields. Section headers are
// structural: the parser recovers whatever body text the user left
// under each header, so edits to section bodies survive the round trip.
package note
