// Package email decides which inbound Gmail messages matter to the outreach
// team and what to do about them. The rules are keyword driven and run
// against the in-memory contact list; no I/O happens here.
package email

import (
	"fmt"
	"strings"
	"time"

	"outreach-backend/domain/contact"
)

// FlaggedEmail is a Gmail message the scanner decided to surface.
type FlaggedEmail struct {
	ID             string           `json:"id,omitempty"`
	GmailMessageID string           `json:"gmail_message_id"`
	ThreadID       string           `json:"thread_id,omitempty"`
	FromName       string           `json:"from_name,omitempty"`
	FromEmail      string           `json:"from_email"`
	Subject        string           `json:"subject,omitempty"`
	Snippet        string           `json:"snippet,omitempty"`
	FlagReason     string           `json:"flag_reason,omitempty"`
	ContactID      string           `json:"contact_id,omitempty"`
	Priority       contact.Priority `json:"priority,omitempty"`
	IsRead         bool             `json:"is_read"`
	ActionRequired bool             `json:"action_required"`
	ActionItems    []string         `json:"action_items,omitempty"`
	PriorityScore  int              `json:"priority_score,omitempty"`
	ReceivedAt     time.Time        `json:"received_at"`
	CreatedAt      time.Time        `json:"created_at,omitempty"`
}

// FlagDecision is the outcome of evaluating one message.
type FlagDecision struct {
	ShouldFlag bool
	Reason     string
	ContactID  string
	Priority   contact.Priority
}

// flagKeywords mark a message as affiliate-relevant when found in the
// subject or body.
var flagKeywords = []string{
	"partnership",
	"sponsor",
	"sponsorship",
	"affiliate",
	"interested",
	"meeting",
	"call",
	"discuss",
	"collaboration",
	"opportunity",
	"proposal",
	"bitcoin conference",
	"btc conference",
	"booth",
	"exhibition",
	"speaking",
	"panel",
}

// highValueKeywords bump a keyword hit to high priority.
var highValueKeywords = []string{"partnership", "sponsor", "interested"}

// urgentKeywords indicate the message needs a same-day response.
var urgentKeywords = []string{
	"urgent",
	"asap",
	"deadline",
	"today",
	"immediately",
	"time-sensitive",
	"respond by",
	"final",
	"last chance",
}

// ShouldFlag decides whether a message deserves attention. Precedence:
// sender is a known contact, then keyword hits, then a shared email domain
// with any contact. Unmatched messages are not flagged.
func ShouldFlag(fromEmail, subject, body string, contacts []contact.Contact) FlagDecision {
	from := strings.ToLower(fromEmail)
	subjectLower := strings.ToLower(subject)
	bodyLower := strings.ToLower(body)

	for i := range contacts {
		c := &contacts[i]
		if c.Email != "" && strings.ToLower(c.Email) == from {
			priority := contact.PriorityMedium
			if c.Priority == contact.PriorityHigh {
				priority = contact.PriorityHigh
			}
			return FlagDecision{
				ShouldFlag: true,
				Reason:     fmt.Sprintf("Email from known contact: %s", c.Name),
				ContactID:  c.ID,
				Priority:   priority,
			}
		}
	}

	var found []string
	for _, kw := range flagKeywords {
		if strings.Contains(subjectLower, kw) || strings.Contains(bodyLower, kw) {
			found = append(found, kw)
		}
	}
	if len(found) > 0 {
		priority := contact.PriorityMedium
		for _, kw := range found {
			if containsString(highValueKeywords, kw) {
				priority = contact.PriorityHigh
				break
			}
		}
		preview := found
		if len(preview) > 3 {
			preview = preview[:3]
		}
		return FlagDecision{
			ShouldFlag: true,
			Reason:     "Contains keywords: " + strings.Join(preview, ", "),
			Priority:   priority,
		}
	}

	if domain := domainOf(from); domain != "" {
		for i := range contacts {
			c := &contacts[i]
			if c.Email == "" {
				continue
			}
			if domainOf(strings.ToLower(c.Email)) == domain {
				company := c.Company
				if company == "" {
					company = "unknown company"
				}
				return FlagDecision{
					ShouldFlag: true,
					Reason:     fmt.Sprintf("Same domain as contact: %s (%s)", c.Name, company),
					ContactID:  c.ID,
					Priority:   contact.PriorityLow,
				}
			}
		}
	}

	return FlagDecision{Reason: "No matching criteria", Priority: contact.PriorityLow}
}

// RequiresAction reports whether the message carries urgency markers.
func RequiresAction(subject, body string) bool {
	text := strings.ToLower(subject + " " + body)
	for _, kw := range urgentKeywords {
		if strings.Contains(text, kw) {
			return true
		}
	}
	return false
}

// ActionItems extracts suggested follow-up tasks from the message text.
func ActionItems(subject, body string) []string {
	text := strings.ToLower(subject + " " + body)
	var actions []string

	add := func(action string, keywords ...string) {
		for _, kw := range keywords {
			if strings.Contains(text, kw) {
				actions = append(actions, action)
				return
			}
		}
	}

	add("Schedule meeting", "schedule", "meeting")
	add("Return call", "call", "phone")
	add("Review proposal", "proposal", "quote")
	add("Review contract", "contract", "agreement")
	add("Answer questions", "question", "clarif")
	add("Follow up with information", "interested", "learn more")

	return actions
}

// PriorityScore rates a message 0-100: known sender +30 (+20 when that
// contact is high priority), urgency +20, each high-value keyword +10
// capped at 30, conference mention in the subject +10.
func PriorityScore(fromEmail, subject, body string, contacts []contact.Contact) int {
	score := 0
	from := strings.ToLower(fromEmail)

	for i := range contacts {
		c := &contacts[i]
		if c.Email != "" && strings.ToLower(c.Email) == from {
			score += 30
			if c.Priority == contact.PriorityHigh {
				score += 20
			}
			break
		}
	}

	if RequiresAction(subject, body) {
		score += 20
	}

	text := strings.ToLower(subject + " " + body)
	keywordScore := 0
	for _, kw := range highValueKeywords {
		if strings.Contains(text, kw) {
			keywordScore += 10
		}
	}
	if keywordScore > 30 {
		keywordScore = 30
	}
	score += keywordScore

	subjectLower := strings.ToLower(subject)
	if strings.Contains(subjectLower, "bitcoin conference") || strings.Contains(subjectLower, "btc conference") {
		score += 10
	}

	if score > 100 {
		score = 100
	}
	return score
}

func domainOf(email string) string {
	at := strings.LastIndex(email, "@")
	if at < 0 || at == len(email)-1 {
		return ""
	}
	return email[at+1:]
}

func containsString(list []string, s string) bool {
	for _, v := range list {
		if v == s {
			return true
		}
	}
	return false
}
