package barcode

import "sync"

// Outcome is the classifier's answer for one batch.
type Outcome int

const (
	// Ignore drops the batch: it was empty or the classifier is not listening.
	Ignore Outcome = iota
	// Continue means values were seen but none were ISBN-shaped.
	Continue
	// Accept means Code should be looked up; the classifier is now inactive.
	Accept
)

func (o Outcome) String() string {
	switch o {
	case Accept:
		return "accept"
	case Continue:
		return "continue"
	default:
		return "ignore"
	}
}

// Decision carries the outcome and, for Accept and Continue, the code.
type Decision struct {
	Outcome Outcome
	Code    string
}

// Classifier filters decoded symbol batches for one scan session.
type Classifier struct {
	mu      sync.Mutex
	active  bool
	enabled bool
	closed  bool
}

// NewClassifier returns an active, enabled classifier.
func NewClassifier() *Classifier {
	return &Classifier{active: true, enabled: true}
}

// Accept evaluates one batch. The first ISBN-shaped value wins and
// deactivates the classifier in the same critical section, so concurrent
// callers observe at most one Accept per activation.
func (c *Classifier) Accept(values []string) Decision {
	c.mu.Lock()
	defer c.mu.Unlock()

	if !c.listening() {
		return Decision{Outcome: Ignore}
	}

	candidate := ""
	for _, raw := range values {
		code := Clean(raw)
		if code == "" {
			continue
		}
		if IsISBN(code) {
			c.active = false
			return Decision{Outcome: Accept, Code: code}
		}
		if candidate == "" {
			candidate = code
		}
	}
	if candidate == "" {
		return Decision{Outcome: Ignore}
	}
	return Decision{Outcome: Continue, Code: candidate}
}

// Deactivate stops accepting batches until Rearm.
func (c *Classifier) Deactivate() {
	c.mu.Lock()
	c.active = false
	c.mu.Unlock()
}

// Rearm resumes accepting batches. It has no effect after Close.
func (c *Classifier) Rearm() {
	c.mu.Lock()
	if !c.closed {
		c.active = true
	}
	c.mu.Unlock()
}

// SetEnabled toggles the external enable switch; a disabled classifier drops
// every batch without changing its active flag.
func (c *Classifier) SetEnabled(enabled bool) {
	c.mu.Lock()
	c.enabled = enabled
	c.mu.Unlock()
}

// Close tears the classifier down permanently.
func (c *Classifier) Close() {
	c.mu.Lock()
	c.closed = true
	c.active = false
	c.mu.Unlock()
}

// Active reports whether the next batch would be evaluated.
func (c *Classifier) Active() bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.listening()
}

func (c *Classifier) listening() bool {
	return c.active && c.enabled && !c.closed
}
