package services

import (
	"testing"

	"github.com/myhuemungusD/skatehubbamvp/models"
)

func TestCheckRecipient(t *testing.T) {
	invite := &models.Invite{ID: "inv1", ToEmail: "opponent@example.com"}

	if err := checkRecipient(invite, "opponent@example.com"); err != nil {
		t.Errorf("addressee refused: %v", err)
	}
	if err := checkRecipient(invite, "OPPONENT@Example.COM"); err != nil {
		t.Errorf("addressee refused on case difference: %v", err)
	}

	err := checkRecipient(invite, "stranger@example.com")
	if err == nil {
		t.Fatal("non-addressee accepted the invite")
	}
	if CodeOf(err) != CodePermissionDenied {
		t.Errorf("code = %s, want %s", CodeOf(err), CodePermissionDenied)
	}
}

func TestInviteStatusErr(t *testing.T) {
	err := inviteStatusErr(models.InviteStatusDeclined)
	if CodeOf(err) != CodeFailedPrecondition {
		t.Errorf("code = %s, want %s", CodeOf(err), CodeFailedPrecondition)
	}
	if got, want := MessageOf(err), "Invite is already declined"; got != want {
		t.Errorf("message = %q, want %q", got, want)
	}
}
