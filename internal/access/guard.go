// Package access decides whether a caller may act on a resource. Decisions
// are pure over a tagged resource variant; the only lookup is the
// recruiter-via-application linkage check for CVs.
package access

import (
	"context"
	"fmt"

	"github.com/careerconnect/careerconnect-be/internal/api/domain"
)

// Action is the operation being attempted on a resource.
type Action string

const (
	ActionView   Action = "view"
	ActionUpdate Action = "update"
	ActionDelete Action = "delete"
)

// ResourceKind tags the resource variant.
type ResourceKind string

const (
	KindJobPosting  ResourceKind = "job_posting"
	KindCV          ResourceKind = "cv"
	KindApplication ResourceKind = "application"
)

// Resource is a tagged view of the record being accessed. OwnerID is the
// subject whose action created the record; RecruiterID is set for jobs and
// applications and names the job's owning recruiter.
type Resource struct {
	Kind        ResourceKind
	ID          string
	OwnerID     string
	RecruiterID string
}

func JobResource(id, recruiterUID string) Resource {
	return Resource{Kind: KindJobPosting, ID: id, OwnerID: recruiterUID, RecruiterID: recruiterUID}
}

func CVResource(id, ownerUID string) Resource {
	return Resource{Kind: KindCV, ID: id, OwnerID: ownerUID}
}

func ApplicationResource(id, applicantUID, recruiterUID string) Resource {
	return Resource{Kind: KindApplication, ID: id, OwnerID: applicantUID, RecruiterID: recruiterUID}
}

// Decision is the outcome of an authorization check. DENY is a value, not an
// error; callers translate it into their outward 403 signal.
type Decision struct {
	Allowed bool
	Reason  string
}

func allow() Decision {
	return Decision{Allowed: true}
}

func deny(reason string) Decision {
	return Decision{Allowed: false, Reason: reason}
}

// LinkageStore answers whether a CV is attached to an application for one of
// a recruiter's jobs.
type LinkageStore interface {
	CVLinkedToRecruiter(ctx context.Context, cvID, recruiterUID string) (bool, error)
}

// Guard evaluates access rules in order, first match wins.
type Guard struct {
	links LinkageStore
}

func NewGuard(links LinkageStore) *Guard {
	return &Guard{links: links}
}

// Authorize applies the access rules:
//  1. the resource's owner may do anything with it;
//  2. a recruiter may view a CV attached to an application for one of their jobs;
//  3. a recruiter may act on applications and postings belonging to their jobs;
//  4. everything else is denied.
//
// The returned error reports only lookup failures, never a denial.
func (g *Guard) Authorize(ctx context.Context, caller domain.Caller, res Resource, action Action) (Decision, error) {
	if res.OwnerID == caller.SubjectID {
		return allow(), nil
	}

	if res.Kind == KindCV && caller.Role == domain.RoleRecruiter {
		linked, err := g.links.CVLinkedToRecruiter(ctx, res.ID, caller.SubjectID)
		if err != nil {
			return deny("linkage lookup failed"), fmt.Errorf("failed to check cv linkage: %w", err)
		}
		if linked {
			return allow(), nil
		}
		return deny("no application linkage"), nil
	}

	if (res.Kind == KindApplication || res.Kind == KindJobPosting) &&
		caller.Role == domain.RoleRecruiter && res.RecruiterID == caller.SubjectID {
		return allow(), nil
	}

	return deny("access denied"), nil
}
