package workflow

// State tracks what has happened to the current lookup. It is reset to
// all-false by every new lookup and each flag flips true exactly once,
// on the first success of its action.
type State struct {
	Saved    bool
	Chatted  bool
	Exported bool
}
