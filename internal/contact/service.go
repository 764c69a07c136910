package contact

import (
	"context"
	"errors"
	"fmt"
	"log"
	"time"

	"github.com/google/uuid"

	"github.com/jonathan/portfolio/internal/types"
)

// Store is the slice of persistence the service needs
type Store interface {
	SaveContactMessage(ctx context.Context, msg *types.ContactMessage) error
	UpdateContactStatus(ctx context.Context, id uuid.UUID, status, errMsg string) error
}

// Service validates, records and relays contact submissions
type Service struct {
	store        Store
	sender       Sender
	contactEmail string
	now          func() time.Time
}

// NewService creates a service. store may be nil to skip persistence.
// contactEmail is offered as a fallback in failure notices.
func NewService(store Store, sender Sender, contactEmail string) *Service {
	return &Service{
		store:        store,
		sender:       sender,
		contactEmail: contactEmail,
		now:          time.Now,
	}
}

// Submit runs validate -> store pending -> relay -> mark delivered/failed.
// Validation failures are returned as *ValidationError before anything is stored.
func (s *Service) Submit(ctx context.Context, m Message) (*types.ContactMessage, error) {
	if err := Validate(m); err != nil {
		return nil, err
	}
	m = m.Normalize()

	record := &types.ContactMessage{
		ID:        uuid.New(),
		Name:      m.Name,
		Email:     m.Email,
		Subject:   m.Subject,
		Message:   m.Message,
		Status:    types.ContactPending,
		CreatedAt: s.now().UTC(),
	}

	if s.store != nil {
		if err := s.store.SaveContactMessage(ctx, record); err != nil {
			return nil, fmt.Errorf("failed to save contact message: %w", err)
		}
	}

	sendErr := s.sender.Send(ctx, m)
	if sendErr != nil {
		record.Status = types.ContactFailed
		record.Error = sendErr.Error()
		log.Printf("[CONTACT] Relay failed for message %s: %v", record.ID, sendErr)
	} else {
		record.Status = types.ContactDelivered
		log.Printf("[CONTACT] Delivered message %s from %s", record.ID, record.Email)
	}

	// the relay outcome is recorded even if the client has gone away
	if s.store != nil {
		if err := s.store.UpdateContactStatus(context.WithoutCancel(ctx), record.ID, record.Status, record.Error); err != nil {
			log.Printf("[CONTACT] Failed to update status for %s: %v", record.ID, err)
		}
	}

	if sendErr != nil {
		return record, sendErr
	}
	return record, nil
}

// FailureNotice is the text shown under the form when Submit fails
func (s *Service) FailureNotice(err error) string {
	var validationErr *ValidationError
	if errors.As(err, &validationErr) {
		return validationErr.Message
	}

	detail := err.Error()
	var relayErr *RelayError
	if errors.As(err, &relayErr) {
		detail = relayErr.Message
	}
	if s.contactEmail == "" {
		return fmt.Sprintf("Error: %s. Please try again.", detail)
	}
	return fmt.Sprintf("Error: %s. Please try again or email me directly at %s", detail, s.contactEmail)
}

// SuccessNotice is the text shown after a delivered message
const SuccessNotice = "Thank you for your message! I'll get back to you soon."
