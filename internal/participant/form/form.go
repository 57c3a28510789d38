// Package form holds the mutable state of one participant registration.
package form

import (
	"fmt"
	"log/slog"
	"sort"
	"sync"
	"time"

	"github.com/google/uuid"

	"realty/internal/participant/models"
	"realty/internal/platform/privacy"
	dErrors "realty/pkg/domain-errors"
)

// Form is safe for concurrent use.
type Form struct {
	mu     sync.Mutex
	record models.UserRecord
	logger *slog.Logger
}

func New(logger *slog.Logger) *Form {
	if logger == nil {
		logger = slog.Default()
	}
	return &Form{logger: logger}
}

// FromRecord starts a form pre-filled with r. Selector values are not
// checked until Build.
func FromRecord(r models.UserRecord, logger *slog.Logger) *Form {
	f := New(logger)
	f.record = r
	return f
}

func (f *Form) SetUserType(v string) error {
	t, err := models.ParseUserType(v)
	if err != nil {
		return err
	}
	f.mu.Lock()
	defer f.mu.Unlock()
	f.record.UserType = t
	return nil
}

func (f *Form) SetDocumentType(v string) error {
	d, err := models.ParseDocumentType(v)
	if err != nil {
		return err
	}
	f.mu.Lock()
	defer f.mu.Unlock()
	f.record.DocumentType = d
	return nil
}

// SetField updates one free-text field.
func (f *Form) SetField(name, value string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if !f.record.Set(name, value) {
		return dErrors.New(dErrors.CodeValidation, fmt.Sprintf("unknown field %q", name))
	}
	f.logger.Debug("participant field updated", "field", name, "value", privacy.Mask(value))
	return nil
}

// Merge applies key/value pairs extracted from a document, overwriting
// existing values. Unknown keys are skipped. It returns the applied keys.
func (f *Form) Merge(values map[string]string) []string {
	f.mu.Lock()
	defer f.mu.Unlock()

	applied := make([]string, 0, len(values))
	for name, value := range values {
		if !f.record.Set(name, value) {
			f.logger.Debug("ignoring extracted field", "field", name)
			continue
		}
		applied = append(applied, name)
	}
	sort.Strings(applied)
	return applied
}

// Fields returns the inputs rendered for the current user type.
func (f *Form) Fields() []models.Field {
	f.mu.Lock()
	defer f.mu.Unlock()
	return models.FieldsFor(f.record.UserType)
}

// Record returns a copy of the current record.
func (f *Form) Record() models.UserRecord {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.record
}

// Build validates the record and converts it into a Participant with a fresh id.
func (f *Form) Build(now time.Time) (*models.Participant, error) {
	return models.NewParticipant(uuid.New(), f.Record(), now)
}
