package service

import (
	"strings"
	"testing"
	"time"

	eventModel "specsnexus_backend/internals/features/events/model"
	clearanceModel "specsnexus_backend/internals/features/membership/clearances/model"
	officerModel "specsnexus_backend/internals/features/officers/model"
	userModel "specsnexus_backend/internals/features/users/model"
)

func TestBuildSystemPromptSections(t *testing.T) {
	prompt := buildSystemPrompt("", "", "", "")

	for _, want := range []string{
		"SPECS NEXUS Assistance",
		"No events available.",
		"No announcements available.",
		"No clearances available.",
		"No officers available.",
		"I'm sorry, I do not have that information.",
	} {
		if !strings.Contains(prompt, want) {
			t.Fatalf("prompt missing %q", want)
		}
	}
}

func TestFormatEventsMarksRegistration(t *testing.T) {
	date := time.Date(2025, 6, 1, 18, 0, 0, 0, time.UTC)
	me := userModel.UserModel{ID: 7}
	events := []eventModel.EventModel{
		{Title: "Hack Night", Date: &date, Participants: []userModel.UserModel{me}},
		{Title: "Workshop"},
	}

	out := formatEvents(events, 7)
	if !strings.Contains(out, "## Hack Night") || !strings.Contains(out, "## Workshop") {
		t.Fatalf("missing event headings: %q", out)
	}
	hackSection := out[:strings.Index(out, "## Workshop")]
	if !strings.Contains(hackSection, "Registered: Yes") {
		t.Fatalf("joined event must say Registered: Yes: %q", hackSection)
	}
	if !strings.Contains(out[strings.Index(out, "## Workshop"):], "Registered: No") {
		t.Fatalf("unjoined event must say Registered: No: %q", out)
	}
	if !strings.Contains(out, "Date: Not specified") {
		t.Fatalf("dateless event must fall back: %q", out)
	}
}

func TestFormatClearances(t *testing.T) {
	method := "gcash"
	items := []clearanceModel.ClearanceModel{
		{ID: 123, Requirement: "1st Semester Membership", Amount: 150,
			PaymentStatus: "Verifying", Status: "Processing", PaymentMethod: &method},
	}

	out := formatClearances(items)
	for _, want := range []string{
		"## Clearance 123",
		"Requirement: 1st Semester Membership",
		"Amount: 150.00",
		"Payment Status: Verifying",
		"Payment Method: gcash",
		"Approval Date: None",
		"Denial Reason: None",
	} {
		if !strings.Contains(out, want) {
			t.Fatalf("clearance section missing %q: %q", want, out)
		}
	}
}

func TestFormatOfficers(t *testing.T) {
	items := []officerModel.OfficerModel{
		{FullName: "Alex Cruz", Position: "President"},
		{FullName: "Sam Reyes", Position: "Treasurer"},
	}
	out := formatOfficers(items)
	if out != "- **Alex Cruz**: President\n- **Sam Reyes**: Treasurer" {
		t.Fatalf("officers list = %q", out)
	}
}
