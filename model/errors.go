package model

/*
ModelError represents a kind of failure of a model operation. Errors
returned by this package wrap one of the ModelError values below, so
callers can classify failures with errors.Is while still getting a
message describing the specific condition.
*/
type ModelError string

const (
	// ErrInvalidArgument indicates a caller-supplied argument the
	// operation cannot work with: a model without trees, an unsupported
	// variable importance kind, or a sample that does not match the
	// model's dataspec.
	ErrInvalidArgument = ModelError("invalid argument")
	// ErrPreconditionFailed indicates the model or its inputs are in a
	// state the operation requires to be different, such as computing a
	// statistic over a model with no leaves.
	ErrPreconditionFailed = ModelError("precondition failed")
	// ErrDataInconsistency indicates the model structure contradicts its
	// dataspec: a condition referencing an attribute out of schema
	// bounds, or a leaf distribution whose length does not match the
	// label category count.
	ErrDataInconsistency = ModelError("data inconsistency")
)

func (me ModelError) Error() string {
	return string(me)
}
