package contact

import (
	"fmt"
	"regexp"
	"sort"
	"strings"
	"time"
)

// MatchThreshold is the minimum confidence for a pair to be reported as a
// potential duplicate.
const MatchThreshold = 70

// NotesDivider separates the existing notes from appended notes on merge.
const NotesDivider = "\n\n---\n\n"

// Match pairs an existing contact with a confidence score (0-100) and the
// human-readable reasons that contributed to it. Matches are ephemeral: they
// are produced per candidate and consumed immediately by the import pipeline.
type Match struct {
	Contact    Contact  `json:"contact"`
	Confidence int      `json:"confidence"`
	Reasons    []string `json:"reasons"`
}

// matchRule scores one heuristic for a candidate/existing pair. It returns
// the rule's confidence and reason, or ok=false when the rule does not apply.
// Rules must not inspect each other's results; FindDuplicates folds them to
// the maximum confidence and the union of reasons.
type matchRule func(candidate, existing *Contact) (confidence int, reason string, ok bool)

// Rules applied when the exact-email short circuit did not fire, in order.
var matchRules = []matchRule{
	phoneMatch,
	nameSimilarity,
	domainAndCompany,
}

// FindDuplicates returns the existing contacts that look like the candidate,
// highest confidence first. Ties keep input order. An exact case-insensitive
// email match is certain (confidence 100) and suppresses all other rules for
// that pair; otherwise each rule contributes independently and only the
// maximum confidence is kept. Pairs below MatchThreshold are dropped.
//
// The function is pure: it never mutates its inputs and performs no I/O.
func FindDuplicates(candidate Contact, existing []Contact) []Match {
	var matches []Match

	for i := range existing {
		ex := &existing[i]

		if emailsEqual(candidate.Email, ex.Email) {
			matches = append(matches, Match{
				Contact:    *ex,
				Confidence: 100,
				Reasons:    []string{"Exact email match"},
			})
			continue
		}

		confidence := 0
		var reasons []string
		for _, rule := range matchRules {
			score, reason, ok := rule(&candidate, ex)
			if !ok {
				continue
			}
			reasons = append(reasons, reason)
			if score > confidence {
				confidence = score
			}
		}

		if confidence >= MatchThreshold && len(reasons) > 0 {
			matches = append(matches, Match{
				Contact:    *ex,
				Confidence: confidence,
				Reasons:    reasons,
			})
		}
	}

	sort.SliceStable(matches, func(i, j int) bool {
		return matches[i].Confidence > matches[j].Confidence
	})
	return matches
}

// emailsEqual compares two emails case-insensitively; empty never matches.
func emailsEqual(a, b string) bool {
	return a != "" && b != "" && strings.EqualFold(a, b)
}

// phoneMatch fires when both phone numbers normalize to the same digit string.
func phoneMatch(candidate, existing *Contact) (int, string, bool) {
	a := normalizePhone(candidate.Phone)
	b := normalizePhone(existing.Phone)
	if a == "" || b == "" || a != b {
		return 0, "", false
	}
	return 90, "Phone number match", true
}

// nameSimilarity fires when the lowercased names are within edit distance 2.
// Distance 0 scores 85, 1 scores 80, 2 scores 75.
func nameSimilarity(candidate, existing *Contact) (int, string, bool) {
	if candidate.Name == "" || existing.Name == "" {
		return 0, "", false
	}
	distance := levenshtein(strings.ToLower(candidate.Name), strings.ToLower(existing.Name))
	if distance > 2 {
		return 0, "", false
	}
	return 85 - distance*5, fmt.Sprintf("Similar name (edit distance: %d)", distance), true
}

// domainAndCompany fires when both records share an email domain and their
// normalized company names are within edit distance 3.
func domainAndCompany(candidate, existing *Contact) (int, string, bool) {
	if candidate.Email == "" || existing.Email == "" || candidate.Company == "" || existing.Company == "" {
		return 0, "", false
	}

	candDomain := emailDomain(candidate.Email)
	exDomain := emailDomain(existing.Email)
	candCompany := normalizeCompany(candidate.Company)
	exCompany := normalizeCompany(existing.Company)

	if candDomain == "" || candDomain != exDomain || candCompany == "" || exCompany == "" {
		return 0, "", false
	}
	if levenshtein(candCompany, exCompany) > 3 {
		return 0, "", false
	}
	return 80, "Same email domain and similar company name", true
}

var nonDigits = regexp.MustCompile(`\D`)

// normalizePhone strips everything but digits so formatting differences
// ("555.123.4567" vs "(555) 123-4567") compare equal.
func normalizePhone(phone string) string {
	return nonDigits.ReplaceAllString(phone, "")
}

// emailDomain returns the lowercased part after '@', or "" when absent.
func emailDomain(email string) string {
	at := strings.LastIndex(email, "@")
	if at < 0 || at == len(email)-1 {
		return ""
	}
	return strings.ToLower(email[at+1:])
}

var companySuffixes = regexp.MustCompile(`\b(inc|llc|ltd|corp|corporation|company|co)\b\.?`)

// normalizeCompany lowercases a company name and removes common legal
// suffixes so "Acme Inc." and "Acme LLC" compare as the same business.
func normalizeCompany(company string) string {
	return strings.TrimSpace(companySuffixes.ReplaceAllString(strings.ToLower(company), ""))
}

// levenshtein computes the edit distance between two strings using the
// classic two-row dynamic program. The comparison runs over runes, not
// bytes, so an accented character counts as one edit.
func levenshtein(a, b string) int {
	if a == b {
		return 0
	}
	ra := []rune(a)
	rb := []rune(b)
	if len(ra) == 0 {
		return len(rb)
	}
	if len(rb) == 0 {
		return len(ra)
	}

	prev := make([]int, len(rb)+1)
	curr := make([]int, len(rb)+1)
	for j := 0; j <= len(rb); j++ {
		prev[j] = j
	}

	for i := 1; i <= len(ra); i++ {
		curr[0] = i
		for j := 1; j <= len(rb); j++ {
			cost := 1
			if ra[i-1] == rb[j-1] {
				cost = 0
			}
			curr[j] = min3(prev[j]+1, curr[j-1]+1, prev[j-1]+cost)
		}
		prev, curr = curr, prev
	}
	return prev[len(rb)]
}

func min3(a, b, c int) int {
	if b < a {
		a = b
	}
	if c < a {
		a = c
	}
	return a
}

// Merge combines an existing contact with newer partial data into the update
// to persist. Identity and operational fields prefer the incoming value when
// present; status and priority are never cleared; notes are appended behind
// NotesDivider; tags are unioned. FirstContactDate keeps the existing value
// because the existing record is assumed to be the earlier acquaintance --
// that asymmetry is deliberate and load-bearing.
//
// Merge is pure and has no error conditions: an absent incoming field always
// falls back to the existing value.
func Merge(existing Contact, incoming Contact) Contact {
	merged := Contact{
		ID:       existing.ID,
		Name:     firstNonEmpty(incoming.Name, existing.Name),
		Email:    firstNonEmpty(incoming.Email, existing.Email),
		Company:  firstNonEmpty(incoming.Company, existing.Company),
		Phone:    firstNonEmpty(incoming.Phone, existing.Phone),
		Website:  firstNonEmpty(incoming.Website, existing.Website),
		Status:   existing.Status,
		Priority: existing.Priority,
		Notes:    mergeNotes(existing.Notes, incoming.Notes),
		Tags:     unionTags(existing.Tags, incoming.Tags),
	}

	if incoming.Status != "" {
		merged.Status = incoming.Status
	}
	if incoming.Priority != "" {
		merged.Priority = incoming.Priority
	}

	// Earliest-known wins for first contact; newest wins for the rest.
	merged.FirstContactDate = existing.FirstContactDate
	if merged.FirstContactDate == nil {
		merged.FirstContactDate = incoming.FirstContactDate
	}
	merged.LastContactDate = coalesceTime(incoming.LastContactDate, existing.LastContactDate)
	merged.NextFollowupDate = coalesceTime(incoming.NextFollowupDate, existing.NextFollowupDate)

	merged.SheetsRowID = existing.SheetsRowID
	if incoming.SheetsRowID != nil {
		merged.SheetsRowID = incoming.SheetsRowID
	}

	return merged
}

func mergeNotes(existing, incoming string) string {
	if incoming == "" {
		return existing
	}
	if existing == "" {
		return incoming
	}
	return existing + NotesDivider + incoming
}

// unionTags combines both tag lists, dropping duplicates and keeping first
// occurrence order.
func unionTags(a, b []string) []string {
	seen := make(map[string]struct{}, len(a)+len(b))
	var out []string
	for _, tags := range [][]string{a, b} {
		for _, tag := range tags {
			if _, dup := seen[tag]; dup {
				continue
			}
			seen[tag] = struct{}{}
			out = append(out, tag)
		}
	}
	return out
}

func firstNonEmpty(a, b string) string {
	if a != "" {
		return a
	}
	return b
}

func coalesceTime(a, b *time.Time) *time.Time {
	if a != nil {
		return a
	}
	return b
}

// DedupeStats buckets a match list by confidence for reporting. The low
// bucket nominally covers everything under 75, but FindDuplicates already
// filters below 70, so in practice it spans [70,75). The overlap with the
// match threshold is a known cosmetic quirk kept for report continuity.
type DedupeStats struct {
	Total            int `json:"total_matches"`
	HighConfidence   int `json:"high_confidence"`   // >= 90
	MediumConfidence int `json:"medium_confidence"` // 75-89
	LowConfidence    int `json:"low_confidence"`    // < 75
}

// Stats summarizes matches into confidence buckets.
func Stats(matches []Match) DedupeStats {
	stats := DedupeStats{Total: len(matches)}
	for _, m := range matches {
		switch {
		case m.Confidence >= 90:
			stats.HighConfidence++
		case m.Confidence >= 75:
			stats.MediumConfidence++
		default:
			stats.LowConfidence++
		}
	}
	return stats
}
