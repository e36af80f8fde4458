package resumes

import "errors"

var (
	// ErrNotFound indicates the resume does not exist.
	ErrNotFound = errors.New("resume not found")

	// ErrForbidden indicates the resume belongs to another user.
	ErrForbidden = errors.New("forbidden")

	// ErrInvalidInput indicates validation or bad input.
	ErrInvalidInput = errors.New("invalid input")

	// ErrMissingTemplate indicates the resume has no usable template to render with.
	ErrMissingTemplate = errors.New("no template selected for this resume")

	// ErrGenerationFailed matches every *GenerationError.
	ErrGenerationFailed = errors.New("document generation failed")
)

// GenerationError wraps whatever stopped a render: a returned error or a recovered panic.
type GenerationError struct {
	Cause error
}

func (e *GenerationError) Error() string {
	if e.Cause == nil {
		return ErrGenerationFailed.Error()
	}
	return ErrGenerationFailed.Error() + ": " + e.Cause.Error()
}

func (e *GenerationError) Unwrap() error { return e.Cause }

func (e *GenerationError) Is(target error) bool { return target == ErrGenerationFailed }
