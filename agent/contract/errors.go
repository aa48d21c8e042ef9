package contract

import "errors"

var (
	// ErrMalformedModelOutput marks a model reply that is not strict JSON or
	// violates the decision/result shape. Fatal for the turn, never retried.
	ErrMalformedModelOutput = errors.New("malformed model output")

	// ErrDispatch marks a tool name that cannot be resolved: absent from the
	// catalog or missing a registered handler. A config defect, propagated.
	ErrDispatch = errors.New("tool dispatch failed")

	// ErrToolExecution marks a resolved domain operation that failed. The only
	// recoverable kind: fed back to the model as the call's output.
	ErrToolExecution = errors.New("tool execution failed")

	// ErrConfiguration marks a disabled or unreachable model provider.
	ErrConfiguration = errors.New("provider configuration invalid")

	ErrModelInvoke = errors.New("model invoke failed")
	ErrValidation  = errors.New("validation failed")
)
