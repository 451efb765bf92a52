// Package application implements the job application state machine: submission,
// recruiter-driven status transitions and applicant withdrawal, plus the
// notification side effect each of those carries.
package application

import (
	"context"
	"database/sql"
	"fmt"
	"log/slog"
	"time"

	"github.com/careerconnect/careerconnect-be/internal/api/domain"
	"github.com/careerconnect/careerconnect-be/internal/api/model"
	"github.com/careerconnect/careerconnect-be/internal/notification"
	"github.com/google/uuid"
)

// Store is the persistence surface the state machine needs.
type Store interface {
	GetActiveJobByID(ctx context.Context, jobID string) (*model.JobPosting, error)
	GetCVByID(ctx context.Context, cvID string) (*model.CV, error)
	HasApplication(ctx context.Context, jobID, applicantUID string) (bool, error)
	CreateApplication(ctx context.Context, app *model.Application) error
	GetApplicationWithJob(ctx context.Context, applicationID string) (*model.ApplicationWithJob, error)
	UpdateApplicationStatus(ctx context.Context, applicationID string, status domain.ApplicationStatus, reviewedAt time.Time) error
}

// Notifier is the dispatcher boundary. The record write error propagates to
// the state machine; push outcomes never do.
type Notifier interface {
	Notify(ctx context.Context, in notification.Input) (*model.Notification, error)
}

type Service struct {
	store    Store
	notifier Notifier
	logger   *slog.Logger
	now      func() time.Time
}

func NewService(store Store, notifier Notifier, logger *slog.Logger) *Service {
	return &Service{
		store:    store,
		notifier: notifier,
		logger:   logger,
		now:      time.Now,
	}
}

// SubmitInput carries a job seeker's application.
type SubmitInput struct {
	JobID       string
	CVID        string
	CoverLetter string
}

// Submit creates a pending application after checking the job is open, the CV
// belongs to the applicant, and no prior application exists for the pair.
// The job's recruiter gets a new-application notification.
func (s *Service) Submit(ctx context.Context, applicantUID string, in SubmitInput) (*model.Application, error) {
	job, err := s.store.GetActiveJobByID(ctx, in.JobID)
	if err != nil {
		return nil, fmt.Errorf("job lookup: %w", err)
	}

	cv, err := s.store.GetCVByID(ctx, in.CVID)
	if err != nil {
		return nil, fmt.Errorf("cv lookup: %w", err)
	}
	if cv.UserUID != applicantUID {
		// A foreign CV is indistinguishable from an absent one to the caller.
		return nil, fmt.Errorf("cv lookup: %w", domain.ErrNotFound)
	}

	exists, err := s.store.HasApplication(ctx, in.JobID, applicantUID)
	if err != nil {
		return nil, fmt.Errorf("duplicate check: %w", err)
	}
	if exists {
		return nil, domain.ErrDuplicate
	}

	app := &model.Application{
		ID:           uuid.New().String(),
		JobID:        in.JobID,
		ApplicantUID: applicantUID,
		CVID:         in.CVID,
		Status:       string(domain.StatusPending),
		AppliedAt:    s.now(),
	}
	if in.CoverLetter != "" {
		app.CoverLetter = sql.NullString{String: in.CoverLetter, Valid: true}
	}

	if err := s.store.CreateApplication(ctx, app); err != nil {
		// The unique constraint closes the race between the pre-check and insert.
		return nil, err
	}

	s.logger.Info("Application submitted",
		slog.String("application_id", app.ID),
		slog.String("job_id", in.JobID),
		slog.String("applicant_uid", applicantUID),
	)

	_, err = s.notifier.Notify(ctx, notification.Input{
		RecipientUID:         job.RecruiterUID,
		Title:                "New Job Application",
		Message:              fmt.Sprintf("A new application has been submitted for the position: %s", job.Title),
		Kind:                 domain.KindNewApplication,
		RelatedJobID:         job.ID,
		RelatedApplicationID: app.ID,
		Data: map[string]string{
			"type":           string(domain.KindNewApplication),
			"job_id":         job.ID,
			"application_id": app.ID,
			"job_title":      job.Title,
		},
	})
	if err != nil {
		return nil, fmt.Errorf("notify recruiter: %w", err)
	}

	return app, nil
}

// Transition moves an application to newStatus on behalf of the job's owning
// recruiter. Exactly one notification record and one push dispatch follow a
// successful transition, keyed by the status message mapping.
func (s *Service) Transition(ctx context.Context, applicationID, recruiterUID string, newStatus domain.ApplicationStatus) (*model.ApplicationWithJob, error) {
	app, err := s.store.GetApplicationWithJob(ctx, applicationID)
	if err != nil {
		return nil, err
	}

	if app.RecruiterUID != recruiterUID {
		return nil, domain.ErrForbidden
	}

	if domain.ApplicationStatus(app.Status).IsTerminal() {
		return nil, domain.ErrTerminalStatus
	}

	reviewedAt := s.now()
	if err := s.store.UpdateApplicationStatus(ctx, applicationID, newStatus, reviewedAt); err != nil {
		return nil, err
	}

	s.logger.Info("Application status updated",
		slog.String("application_id", applicationID),
		slog.String("from", app.Status),
		slog.String("to", string(newStatus)),
		slog.String("recruiter_uid", recruiterUID),
	)

	if err := s.notifyStatusChange(ctx, app, newStatus); err != nil {
		return nil, err
	}

	app.Status = string(newStatus)
	app.ReviewedAt = sql.NullTime{Time: reviewedAt, Valid: true}
	return app, nil
}

// Withdraw is the applicant-owned transition to withdrawn. The job's
// recruiter is notified.
func (s *Service) Withdraw(ctx context.Context, applicationID, applicantUID string) (*model.ApplicationWithJob, error) {
	app, err := s.store.GetApplicationWithJob(ctx, applicationID)
	if err != nil {
		return nil, err
	}

	if app.ApplicantUID != applicantUID {
		return nil, domain.ErrForbidden
	}

	if domain.ApplicationStatus(app.Status).IsTerminal() {
		return nil, domain.ErrTerminalStatus
	}

	reviewedAt := s.now()
	if err := s.store.UpdateApplicationStatus(ctx, applicationID, domain.StatusWithdrawn, reviewedAt); err != nil {
		return nil, err
	}

	s.logger.Info("Application withdrawn",
		slog.String("application_id", applicationID),
		slog.String("applicant_uid", applicantUID),
	)

	msg := domain.StatusNotification(domain.StatusWithdrawn, app.JobTitle)
	_, err = s.notifier.Notify(ctx, notification.Input{
		RecipientUID:         app.RecruiterUID,
		Title:                msg.Title,
		Message:              msg.Message,
		Kind:                 domain.KindApplicationUpdate,
		RelatedJobID:         app.JobID,
		RelatedApplicationID: app.ID,
		Data: map[string]string{
			"type":           string(domain.KindApplicationUpdate),
			"job_id":         app.JobID,
			"application_id": app.ID,
			"job_title":      app.JobTitle,
			"status":         string(domain.StatusWithdrawn),
		},
	})
	if err != nil {
		return nil, fmt.Errorf("notify recruiter: %w", err)
	}

	app.Status = string(domain.StatusWithdrawn)
	app.ReviewedAt = sql.NullTime{Time: reviewedAt, Valid: true}
	return app, nil
}

func (s *Service) notifyStatusChange(ctx context.Context, app *model.ApplicationWithJob, newStatus domain.ApplicationStatus) error {
	msg := domain.StatusNotification(newStatus, app.JobTitle)

	_, err := s.notifier.Notify(ctx, notification.Input{
		RecipientUID:         app.ApplicantUID,
		Title:                msg.Title,
		Message:              msg.Message,
		Kind:                 domain.KindApplicationUpdate,
		RelatedJobID:         app.JobID,
		RelatedApplicationID: app.ID,
		Data: map[string]string{
			"type":           string(domain.KindApplicationUpdate),
			"job_id":         app.JobID,
			"application_id": app.ID,
			"job_title":      app.JobTitle,
			"status":         string(newStatus),
		},
	})
	if err != nil {
		return fmt.Errorf("notify applicant: %w", err)
	}

	return nil
}
