package scan

import (
	"context"
	"fmt"

	"github.com/google/uuid"

	"shelfscan/internal/barcode"
	"shelfscan/internal/logging"
	"shelfscan/internal/services"
)

// OpenScanner starts a new scanning session and returns its classifier.
// Any previous classifier is closed and its in-flight lookups are orphaned.
func (m *Manager) OpenScanner() *barcode.Classifier {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.classifier != nil {
		m.classifier.Close()
	}
	m.generation++
	m.sessionID = uuid.NewString()
	m.classifier = barcode.NewClassifier()
	m.state = StateScanning
	m.candidate = ""
	m.lastErr = nil
	m.logger.Debug("scanner opened", logging.String(logging.FieldSessionID, m.sessionID))
	return m.classifier
}

// CloseScanner stops the session. Lookups still running finish but no
// longer update session state.
func (m *Manager) CloseScanner() {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.classifier != nil {
		m.classifier.Close()
		m.classifier = nil
	}
	m.generation++
	m.state = StateIdle
	m.candidate = ""
	m.logger.Debug("scanner closed", logging.String(logging.FieldSessionID, m.sessionID))
}

// HandleFrame feeds one batch of detected codes to the classifier. An
// accepted code is looked up synchronously and its result returned.
func (m *Manager) HandleFrame(ctx context.Context, values []string) (barcode.Decision, *Result) {
	m.mu.Lock()
	cl := m.classifier
	gen := m.generation
	session := m.sessionID
	m.mu.Unlock()

	if cl == nil {
		return barcode.Decision{Outcome: barcode.Ignore}, nil
	}
	decision := cl.Accept(values)
	switch decision.Outcome {
	case barcode.Continue:
		m.mu.Lock()
		if gen == m.generation {
			m.candidate = decision.Code
		}
		m.mu.Unlock()
		return decision, nil
	case barcode.Accept:
		ctx = services.WithSessionID(ctx, session)
		res := m.fetch(ctx, decision.Code, gen)
		if res.rejected {
			// Never looked up, so keep listening for the next frame.
			m.mu.Lock()
			if gen == m.generation && m.classifier == cl {
				cl.Rearm()
			}
			m.mu.Unlock()
		}
		return decision, &res
	default:
		return decision, nil
	}
}

// Scan looks up a code entered by hand.
func (m *Manager) Scan(ctx context.Context, code string) Result {
	m.mu.Lock()
	gen := m.generation
	m.mu.Unlock()
	return m.fetch(ctx, code, gen)
}

// Retry leaves the error state, rearming the scanner when one is open.
func (m *Manager) Retry() {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.state != StateError {
		return
	}
	m.lastErr = nil
	m.rearmLocked()
}

// Rescan discards the resolved item and resumes scanning.
func (m *Manager) Rescan() {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.state != StateSuccess {
		return
	}
	m.current = nil
	m.rearmLocked()
}

func (m *Manager) rearmLocked() {
	m.candidate = ""
	if m.classifier == nil {
		m.state = StateIdle
		return
	}
	m.classifier.Rearm()
	m.state = StateScanning
}

func (m *Manager) fetch(ctx context.Context, code string, gen uint64) Result {
	if !m.begin() {
		return busy()
	}
	defer m.end()

	m.transition(gen, func() {
		m.state = StateProcessing
		m.candidate = ""
	})

	ctx = services.WithBarcode(ctx, code)
	logger := logging.WithContext(ctx, m.logger)
	logger.Info("looking up item")

	it, err := m.lookup.Fetch(ctx, code)
	var res Result
	switch {
	case err != nil:
		logger.Warn("lookup failed", logging.Error(err))
		res = failed(err)
	case it == nil:
		logger.Info("no record for code")
		res = failed(services.Wrap(services.ErrItemNotFound, "scan", "lookup",
			fmt.Sprintf("no record for %s", code), nil))
	default:
		logger.Info("item resolved", logging.String("title", it.Title()))
		res = Result{Item: it}
	}

	applied := m.transition(gen, func() {
		if res.Success() {
			m.current = res.Item
			m.lastErr = nil
			m.state = StateSuccess
			return
		}
		m.lastErr = res.Failure
		m.state = StateError
	})
	if !applied {
		logger.Debug("session closed before lookup finished; result discarded from state")
	}
	return res
}

// transition runs fn under the state lock only if gen is still current.
func (m *Manager) transition(gen uint64, fn func()) bool {
	m.mu.Lock()
	defer m.mu.Unlock()
	if gen != m.generation {
		return false
	}
	fn()
	return true
}
