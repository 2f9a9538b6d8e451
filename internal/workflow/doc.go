// Package workflow coordinates the lookup, save, chat and export
// actions around a single current word. State advances only on
// success; a failed step leaves every flag as it was.
package workflow
