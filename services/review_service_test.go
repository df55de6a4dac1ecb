package services

import (
	"strings"
	"testing"
	"time"

	"github.com/myhuemungusD/skatehubbamvp/models"
)

func pendingSubmission() *models.Submission {
	return &models.Submission{
		ID:          "s1",
		OwnerUID:    "owner",
		ChallengeID: "c1",
		Status:      models.SubmissionStatusPending,
	}
}

func TestCheckReviewablePending(t *testing.T) {
	if err := checkReviewable(pendingSubmission(), "reviewer", "approve"); err != nil {
		t.Errorf("pending submission should be reviewable, got %v", err)
	}
}

func TestCheckReviewableAlreadyDecided(t *testing.T) {
	for _, status := range []string{models.SubmissionStatusApproved, models.SubmissionStatusRejected} {
		sub := pendingSubmission()
		sub.Status = status

		err := checkReviewable(sub, "reviewer", "approve")
		if err == nil {
			t.Fatalf("status %s: expected error", status)
		}
		if CodeOf(err) != CodeFailedPrecondition {
			t.Errorf("status %s: code = %s, want failed-precondition", status, CodeOf(err))
		}
		if !strings.Contains(err.Error(), status) {
			t.Errorf("status %s: message %q should carry the current status", status, err.Error())
		}
	}
}

func TestCheckReviewableSelfReview(t *testing.T) {
	sub := pendingSubmission()

	err := checkReviewable(sub, sub.OwnerUID, "reject")
	if err == nil {
		t.Fatal("expected self-review to be refused")
	}
	if CodeOf(err) != CodePermissionDenied {
		t.Errorf("code = %s, want permission-denied", CodeOf(err))
	}
}

func TestChallengePointsDefaultsToZero(t *testing.T) {
	if got := challengePoints(nil); got != 0 {
		t.Errorf("missing challenge points = %d, want 0", got)
	}
	if got := challengePoints(&models.Challenge{ID: "c1", Points: 25}); got != 25 {
		t.Errorf("points = %d, want 25", got)
	}
}

func TestNewApprovalFields(t *testing.T) {
	now := time.Now()

	a := newApproval("s1", "reviewer", models.DecisionApproved, 25, "", now)
	if a.ID == "" {
		t.Error("approval id not generated")
	}
	if a.PointsAwarded != 25 || a.Decision != models.DecisionApproved {
		t.Errorf("approval = %+v", a)
	}

	r := newApproval("s1", "reviewer", models.DecisionRejected, 0, "too sketchy", now)
	if r.PointsAwarded != 0 {
		t.Errorf("rejection pointsAwarded = %d, want 0", r.PointsAwarded)
	}
	if r.RejectionReason != "too sketchy" {
		t.Errorf("rejectionReason = %q", r.RejectionReason)
	}
}

func TestNewActivityFields(t *testing.T) {
	now := time.Now()
	a := newActivity("s1", "owner", 25, now)

	if a.Type != models.ActivityTypeSubmissionApproved {
		t.Errorf("type = %q, want %q", a.Type, models.ActivityTypeSubmissionApproved)
	}
	if a.UserID != "owner" || a.SubmissionID != "s1" || a.PointsAwarded != 25 {
		t.Errorf("activity = %+v", a)
	}
}

func TestErrorHTTPMapping(t *testing.T) {
	cases := map[ErrorCode]int{
		CodeInvalidArgument:    400,
		CodeUnauthenticated:    401,
		CodePermissionDenied:   403,
		CodeNotFound:           404,
		CodeFailedPrecondition: 409,
		CodeInternal:           500,
	}
	for code, want := range cases {
		if got := HTTPStatus(NewError(code, "x")); got != want {
			t.Errorf("HTTPStatus(%s) = %d, want %d", code, got, want)
		}
	}
}
