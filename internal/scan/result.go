package scan

import (
	"errors"

	"shelfscan/internal/item"
	"shelfscan/internal/messages"
	"shelfscan/internal/services"
)

// busyText is the failure reported while another lookup or save is running.
const busyText = "another request is still in progress"

// Failure describes why an operation did not succeed.
type Failure struct {
	Kind    services.Kind
	Message messages.Message
	Err     error
}

// Error renders the failure for a terminal.
func (f *Failure) Error() string {
	if f == nil {
		return ""
	}
	return messages.Format(f.Message)
}

func (f *Failure) Unwrap() error {
	if f == nil {
		return nil
	}
	return f.Err
}

// Result is the outcome of Scan, Save, Resend and accepted frames.
type Result struct {
	Item    *item.ScannedItem
	PageID  string
	PageURL string
	Failure *Failure

	// rejected marks a call turned away by the single-flight guard.
	rejected bool
}

// Success reports whether the operation completed.
func (r Result) Success() bool {
	return r.Failure == nil
}

// Error returns the formatted failure text, or "" on success.
func (r Result) Error() string {
	return r.Failure.Error()
}

func failed(err error) Result {
	return Result{Failure: &Failure{
		Kind:    messages.Classify(err),
		Message: messages.ForError(err),
		Err:     err,
	}}
}

// failedText reports a string-typed failure that skips classification.
func failedText(text string) Result {
	return Result{Failure: &Failure{
		Kind:    services.KindUnknown,
		Message: messages.FromText(text),
		Err:     errors.New(text),
	}}
}

func busy() Result {
	res := failedText(busyText)
	res.rejected = true
	return res
}
