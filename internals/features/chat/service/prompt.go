package service

import (
	"fmt"
	"strings"
	"time"

	announcementModel "specsnexus_backend/internals/features/announcements/model"
	eventModel "specsnexus_backend/internals/features/events/model"
	clearanceModel "specsnexus_backend/internals/features/membership/clearances/model"
	officerModel "specsnexus_backend/internals/features/officers/model"
)

const assistantIntro = "You are SPECS NEXUS Assistance, a helpful chatbot for the SPECS Nexus platform, " +
	"designed for the Society of Programming Enthusiasts in Computer Science (SPECS) at Gordon College. " +
	"SPECS is a student organization under the College of Computer Studies (CCS) department, dedicated to " +
	"fostering learning, innovation, and community involvement in computer science, specifically for the " +
	"Bachelor of Science in Computer Science (BSCS) program. SPECS Nexus streamlines membership registration, " +
	"event participation, and announcement updates, helping members stay connected and informed in a " +
	"user-friendly environment. The platform has five main pages: Dashboard, Profile, Events, Announcements, " +
	"and Membership. Below are details about each:\n\n" +
	"**Dashboard Page**: The central hub where users can view their current requirements and clearance status, including an overview of pending tasks.\n\n" +
	"**Profile Page**: Displays all personal details, providing a snapshot of the user's account information.\n\n" +
	"**Events Page**: Lists all current SPECS events with details. Users can browse and choose to participate.\n\n" +
	"**Announcements Page**: The source for SPECS updates and news.\n\n" +
	"**Membership Page**: Shows clearance status and payment history. Users can view clearance details and " +
	"payment progress. Payment options include GCash and PayMaya. After payment, users upload a digital receipt, " +
	"and the system updates the status to 'Verifying' while an officer reviews it. If verified, the status " +
	"changes to 'Clear'; otherwise, it remains 'Not Yet Cleared'.\n\n" +
	"**Payment Methods**: GCash and PayMaya.\n\n"

const assistantInstructions = "Instructions for responses:\n" +
	"- Format responses using markdown-like formatting.\n" +
	"- For events, use a heading (##) for each event title, followed by indented bullet points (  -) for details (Description, Date, Location, Registration Start, Registration End, Registered).\n" +
	"- For clearances, use a heading (##) for each Clearance followed by the ID (e.g., Clearance 123), followed by indented bullet points for details (Requirement, Amount, Payment Status, Status, Payment Method, Payment Date, Approval Date, Denial Reason).\n" +
	"- For announcements, use a heading (##) for each announcement title, followed by indented bullet points for details (Description, Date, Location).\n" +
	"- For officer queries, list officers with their full name and position in a bullet-point list (e.g., - **Name**: Position).\n" +
	"- If you lack specific information to answer a query, respond with: 'I'm sorry, I do not have that information.'\n" +
	"- Ensure responses are concise and easy to read with clear section headings and spacing.\n\n"

// buildSystemPrompt assembles the platform primer plus the live data
// sections the model answers from.
func buildSystemPrompt(events, announcements, clearances, officers string) string {
	var b strings.Builder
	b.WriteString(assistantIntro)
	b.WriteString("**Current Events**:\n" + orFallback(events, "No events available.") + "\n\n")
	b.WriteString("**Current Announcements**:\n" + orFallback(announcements, "No announcements available.") + "\n\n")
	b.WriteString("**User Clearances**:\n" + orFallback(clearances, "No clearances available.") + "\n\n")
	b.WriteString("**Current Officers**:\n" + orFallback(officers, "No officers available.") + "\n\n")
	b.WriteString(assistantInstructions)
	return b.String()
}

func orFallback(s, fallback string) string {
	if s == "" {
		return fallback
	}
	return s
}

func formatEvents(events []eventModel.EventModel, userID uint) string {
	sections := make([]string, 0, len(events))
	for _, event := range events {
		registered := "No"
		for _, p := range event.Participants {
			if p.ID == userID {
				registered = "Yes"
				break
			}
		}
		sections = append(sections, fmt.Sprintf(
			"## %s\n  - Date: %s\n  - Location: %s\n  - Registration Start: %s\n  - Registration End: %s\n  - Registered: %s",
			event.Title,
			formatTime(event.Date, "Not specified"),
			orNone(event.Location),
			formatTime(event.RegistrationStart, "Not specified"),
			formatTime(event.RegistrationEnd, "Not specified"),
			registered,
		))
	}
	return strings.Join(sections, "\n")
}

func formatAnnouncements(items []announcementModel.AnnouncementModel) string {
	sections := make([]string, 0, len(items))
	for _, item := range items {
		sections = append(sections, fmt.Sprintf(
			"## %s\n  - Date: %s\n  - Details: %s",
			item.Title,
			formatTime(item.Date, "Not specified"),
			item.Content,
		))
	}
	return strings.Join(sections, "\n")
}

func formatClearances(items []clearanceModel.ClearanceModel) string {
	sections := make([]string, 0, len(items))
	for _, item := range items {
		sections = append(sections, fmt.Sprintf(
			"## Clearance %d\n  - Requirement: %s\n  - Amount: %.2f\n  - Payment Status: %s\n  - Status: %s\n  - Payment Method: %s\n  - Payment Date: %s\n  - Approval Date: %s\n  - Denial Reason: %s",
			item.ID,
			item.Requirement,
			item.Amount,
			item.PaymentStatus,
			item.Status,
			orNone(item.PaymentMethod),
			formatTime(item.PaymentDate, "None"),
			formatTime(item.ApprovalDate, "None"),
			orNone(item.DenialReason),
		))
	}
	return strings.Join(sections, "\n")
}

func formatOfficers(items []officerModel.OfficerModel) string {
	lines := make([]string, 0, len(items))
	for _, item := range items {
		lines = append(lines, fmt.Sprintf("- **%s**: %s", item.FullName, item.Position))
	}
	return strings.Join(lines, "\n")
}

func formatTime(t *time.Time, fallback string) string {
	if t == nil {
		return fallback
	}
	return t.Format(time.RFC3339)
}

func orNone(s *string) string {
	if s == nil || *s == "" {
		return "None"
	}
	return *s
}
