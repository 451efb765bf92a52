package domain

import "fmt"

// ApplicationStatus is the lifecycle state of a job application.
type ApplicationStatus string

const (
	StatusPending            ApplicationStatus = "pending"
	StatusUnderReview        ApplicationStatus = "under_review"
	StatusReviewed           ApplicationStatus = "reviewed"
	StatusShortlisted        ApplicationStatus = "shortlisted"
	StatusInterviewScheduled ApplicationStatus = "interview_scheduled"
	StatusAccepted           ApplicationStatus = "accepted"
	StatusRejected           ApplicationStatus = "rejected"
	StatusWithdrawn          ApplicationStatus = "withdrawn"
)

// ParseApplicationStatus validates a raw status value against the enum.
func ParseApplicationStatus(s string) (ApplicationStatus, error) {
	switch ApplicationStatus(s) {
	case StatusPending, StatusUnderReview, StatusReviewed, StatusShortlisted,
		StatusInterviewScheduled, StatusAccepted, StatusRejected, StatusWithdrawn:
		return ApplicationStatus(s), nil
	}
	return "", fmt.Errorf("%w: %q", ErrInvalidStatus, s)
}

// IsTerminal reports whether no further status changes are allowed.
// Accepted, rejected and withdrawn applications are immutable.
func (s ApplicationStatus) IsTerminal() bool {
	switch s {
	case StatusAccepted, StatusRejected, StatusWithdrawn:
		return true
	}
	return false
}

// StatusMessage is the notification title/message pair for a status change.
type StatusMessage struct {
	Title   string
	Message string
}

// StatusNotification maps an application status to the notification shown to
// the applicant. Total over the enum; anything unrecognized falls through to
// the generic update message, never to silence.
func StatusNotification(status ApplicationStatus, jobTitle string) StatusMessage {
	switch status {
	case StatusUnderReview, StatusReviewed:
		return StatusMessage{
			Title:   "Application Under Review",
			Message: fmt.Sprintf("Your application for %s is now under review.", jobTitle),
		}
	case StatusShortlisted:
		return StatusMessage{
			Title:   "Application Shortlisted!",
			Message: fmt.Sprintf("Great news! Your application for %s has been shortlisted.", jobTitle),
		}
	case StatusInterviewScheduled:
		return StatusMessage{
			Title:   "Interview Scheduled",
			Message: fmt.Sprintf("Congratulations! An interview has been scheduled for %s.", jobTitle),
		}
	case StatusAccepted:
		return StatusMessage{
			Title:   "Application Accepted!",
			Message: fmt.Sprintf("Congratulations! Your application for %s has been accepted.", jobTitle),
		}
	case StatusRejected:
		return StatusMessage{
			Title:   "Application Update",
			Message: fmt.Sprintf("Your application for %s was not selected this time.", jobTitle),
		}
	case StatusWithdrawn:
		return StatusMessage{
			Title:   "Application Withdrawn",
			Message: fmt.Sprintf("Your application for %s has been withdrawn.", jobTitle),
		}
	default:
		return StatusMessage{
			Title:   "Application Update",
			Message: fmt.Sprintf("Your application for %s has been updated.", jobTitle),
		}
	}
}
