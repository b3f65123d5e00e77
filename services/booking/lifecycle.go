package booking

import (
	"context"
	"fmt"
	"strings"

	"laborlink/models"
	"laborlink/utils"

	"go.uber.org/zap"
)

// Accept moves a requested booking to accepted and notifies the customer.
func (s *DefaultBookingService) Accept(ctx context.Context, bookingID, laborID string) (*models.Booking, error) {
	return s.decide(ctx, bookingID, laborID, models.DecisionAccepted)
}

// Decline moves a requested booking to declined and notifies the customer.
func (s *DefaultBookingService) Decline(ctx context.Context, bookingID, laborID string) (*models.Booking, error) {
	return s.decide(ctx, bookingID, laborID, models.DecisionDeclined)
}

func (s *DefaultBookingService) decide(ctx context.Context, bookingID, laborID string, d models.Decision) (*models.Booking, error) {
	b, err := s.loadForLabor(ctx, bookingID, laborID)
	if err != nil {
		return nil, err
	}
	if b.Decision != models.DecisionRequested {
		return nil, utils.NewInvalidState(fmt.Sprintf("Booking is already %s", b.Decision))
	}

	labor := s.lookupLabor(ctx, laborID)
	now := s.now()
	b.SetDecision(d, now)
	notes := []models.Notification{decisionNotification(b, labor, now)}

	if err := s.Committer.Commit(ctx, b, notes); err != nil {
		return nil, err
	}
	s.Logger.Info("booking decided",
		zap.String("bookingId", b.ID),
		zap.String("decision", string(b.Decision)),
	)
	return b, nil
}

// UpdateWorkStatus records job progress on an accepted booking. Only the
// pending to done transition notifies the customer.
func (s *DefaultBookingService) UpdateWorkStatus(ctx context.Context, bookingID, laborID string, ws models.WorkStatus) (*models.Booking, error) {
	if _, ok := models.ParseWorkStatus(string(ws)); !ok {
		return nil, utils.NewInvalidInput("workStatus must be pending or done")
	}
	b, err := s.loadForLabor(ctx, bookingID, laborID)
	if err != nil {
		return nil, err
	}
	if b.Decision != models.DecisionAccepted {
		return nil, utils.NewInvalidState("Work status can only be updated after acceptance")
	}

	now := s.now()
	var notes []models.Notification
	if completed := b.SetWorkStatus(ws, now); completed {
		notes = append(notes, workCompletedNotification(b, s.lookupLabor(ctx, laborID), now))
	}

	if err := s.Committer.Commit(ctx, b, notes); err != nil {
		return nil, err
	}
	return b, nil
}

// ApplyStatusUpdate dispatches the unified status body: status accepted or
// rejected becomes Accept or Decline, workStatus becomes UpdateWorkStatus.
func (s *DefaultBookingService) ApplyStatusUpdate(ctx context.Context, bookingID, laborID string, upd StatusUpdate) (*models.Booking, error) {
	status := strings.ToLower(strings.TrimSpace(upd.Status))
	workStatus := strings.ToLower(strings.TrimSpace(upd.WorkStatus))

	switch {
	case status != "" && workStatus != "":
		return nil, utils.NewInvalidInput("Provide either status or workStatus, not both")
	case status != "":
		switch models.Status(status) {
		case models.StatusAccepted:
			return s.Accept(ctx, bookingID, laborID)
		case models.StatusRejected:
			return s.Decline(ctx, bookingID, laborID)
		default:
			return nil, utils.NewInvalidInput("Invalid status")
		}
	case workStatus != "":
		return s.UpdateWorkStatus(ctx, bookingID, laborID, models.WorkStatus(workStatus))
	default:
		return nil, utils.NewInvalidInput("status or workStatus is required")
	}
}
