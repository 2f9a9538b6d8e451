package workflow

import "fmt"

// Workflow steps named in ServiceError.
const (
	StepLookup = "lookup"
	StepSave   = "save"
	StepChat   = "chat"
	StepExport = "export"
)

// InputError reports invalid user input, rejected before any network
// call is made.
type InputError struct {
	Reason string
}

func (e *InputError) Error() string {
	return e.Reason
}

// ServiceError wraps an external capability failure together with the
// workflow step it interrupted, so callers can offer a targeted retry.
type ServiceError struct {
	Step string
	Err  error
}

func (e *ServiceError) Error() string {
	return fmt.Sprintf("%s failed: %v", e.Step, e.Err)
}

func (e *ServiceError) Unwrap() error {
	return e.Err
}
