package contact

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFindDuplicates_ExactEmailMatch(t *testing.T) {
	existing := []Contact{
		{ID: "c1", Name: "Jon Smith", Email: "jon@x.com", Phone: "555-1234"},
	}
	candidate := Contact{Name: "Jon Smithh", Email: "jon@x.com"}

	matches := FindDuplicates(candidate, existing)

	require.Len(t, matches, 1)
	assert.Equal(t, 100, matches[0].Confidence)
	// The short circuit suppresses every other rule's reason.
	assert.Equal(t, []string{"Exact email match"}, matches[0].Reasons)
	assert.Equal(t, "c1", matches[0].Contact.ID)
}

func TestFindDuplicates_EmailMatchIsCaseInsensitive(t *testing.T) {
	existing := []Contact{{ID: "c1", Name: "Ann", Email: "Ann@Example.COM"}}

	matches := FindDuplicates(Contact{Name: "Annie", Email: "ann@example.com"}, existing)

	require.Len(t, matches, 1)
	assert.Equal(t, 100, matches[0].Confidence)
}

func TestFindDuplicates_PhoneNormalization(t *testing.T) {
	existing := []Contact{
		{ID: "c1", Name: "Alice Lee", Phone: "(555) 123-4567"},
	}
	candidate := Contact{Name: "Alicia Lee", Phone: "555.123.4567"}

	matches := FindDuplicates(candidate, existing)

	require.Len(t, matches, 1)
	// Phone (90) wins over the edit-distance-2 name rule (75) via max.
	assert.Equal(t, 90, matches[0].Confidence)
	assert.Contains(t, matches[0].Reasons, "Phone number match")
	assert.Contains(t, matches[0].Reasons, "Similar name (edit distance: 2)")
}

func TestFindDuplicates_NameDistanceScores(t *testing.T) {
	cases := []struct {
		name       string
		existing   string
		confidence int
	}{
		{"Jon Smith", "Jon Smith", 85},
		{"Jon Smith", "Jon Smithh", 80},
		{"Jon Smith", "Jonn Smithh", 75},
	}

	for _, tc := range cases {
		matches := FindDuplicates(
			Contact{Name: tc.name},
			[]Contact{{ID: "c1", Name: tc.existing}},
		)
		require.Len(t, matches, 1, "names %q vs %q", tc.name, tc.existing)
		assert.Equal(t, tc.confidence, matches[0].Confidence)
	}
}

func TestFindDuplicates_AccentedNames(t *testing.T) {
	// Each accented letter is one edit, not one per UTF-8 byte.
	matches := FindDuplicates(
		Contact{Name: "Zoë Müller"},
		[]Contact{{ID: "c1", Name: "Zoe Muller"}},
	)

	require.Len(t, matches, 1)
	assert.Equal(t, 75, matches[0].Confidence)
	assert.Contains(t, matches[0].Reasons, "Similar name (edit distance: 2)")
}

func TestFindDuplicates_NameTooFarApart(t *testing.T) {
	matches := FindDuplicates(
		Contact{Name: "Jon Smith"},
		[]Contact{{ID: "c1", Name: "Jonathan Smithson"}},
	)
	assert.Empty(t, matches)
}

func TestFindDuplicates_DomainAndCompany(t *testing.T) {
	existing := []Contact{
		{ID: "c1", Name: "Bob Roberts", Email: "bob@acme.com", Company: "Acme Inc."},
	}
	candidate := Contact{Name: "Robert Alder", Email: "sales@acme.com", Company: "Acme LLC"}

	matches := FindDuplicates(candidate, existing)

	require.Len(t, matches, 1)
	assert.Equal(t, 80, matches[0].Confidence)
	assert.Equal(t, []string{"Same email domain and similar company name"}, matches[0].Reasons)
}

func TestFindDuplicates_DomainMatchRequiresSimilarCompany(t *testing.T) {
	existing := []Contact{
		{ID: "c1", Name: "Bob Roberts", Email: "bob@acme.com", Company: "Completely Different Holdings"},
	}
	candidate := Contact{Name: "Robert Alder", Email: "sales@acme.com", Company: "Acme"}

	assert.Empty(t, FindDuplicates(candidate, existing))
}

func TestFindDuplicates_NoSignalYieldsNoMatch(t *testing.T) {
	existing := []Contact{
		{ID: "c1", Name: "Maria Gonzalez", Email: "maria@island.io", Phone: "111-222-3333", Company: "Island"},
	}
	candidate := Contact{Name: "Peter Novak", Email: "peter@summit.dev", Phone: "999-888-7777", Company: "Summit"}

	assert.Empty(t, FindDuplicates(candidate, existing))
}

func TestFindDuplicates_EmptyCandidateMatchesNothing(t *testing.T) {
	existing := []Contact{
		{ID: "c1", Name: "Someone", Email: "some@one.com", Phone: "555-0000", Company: "Acme"},
	}
	assert.Empty(t, FindDuplicates(Contact{}, existing))
}

func TestFindDuplicates_SortedByConfidenceStable(t *testing.T) {
	existing := []Contact{
		{ID: "name-only", Name: "Jon Smithh"},                    // 80
		{ID: "email", Name: "Unrelated", Email: "jon@x.com"},     // 100
		{ID: "phone-a", Name: "Nobody A", Phone: "555-123-4567"}, // 90
		{ID: "phone-b", Name: "Nobody B", Phone: "5551234567"},   // 90
	}
	candidate := Contact{Name: "Jon Smith", Email: "jon@x.com", Phone: "(555) 123 4567"}

	matches := FindDuplicates(candidate, existing)

	require.Len(t, matches, 4)
	assert.Equal(t, "email", matches[0].Contact.ID)
	// Equal confidences keep input order.
	assert.Equal(t, "phone-a", matches[1].Contact.ID)
	assert.Equal(t, "phone-b", matches[2].Contact.ID)
	assert.Equal(t, "name-only", matches[3].Contact.ID)
}

func TestFindDuplicates_DoesNotMutateInputs(t *testing.T) {
	existing := []Contact{{ID: "c1", Name: "Jon Smith", Tags: []string{"vip"}}}
	candidate := Contact{Name: "Jon Smith"}

	_ = FindDuplicates(candidate, existing)

	assert.Equal(t, "Jon Smith", existing[0].Name)
	assert.Equal(t, []string{"vip"}, existing[0].Tags)
}

func TestLevenshtein(t *testing.T) {
	cases := []struct {
		a, b string
		want int
	}{
		{"", "", 0},
		{"", "abc", 3},
		{"abc", "", 3},
		{"kitten", "sitting", 3},
		{"alice", "alicia", 2},
		{"same", "same", 0},
		{"zoë müller", "zoe muller", 2},
		{"josé", "jose", 1},
	}
	for _, tc := range cases {
		assert.Equal(t, tc.want, levenshtein(tc.a, tc.b), "%q vs %q", tc.a, tc.b)
	}
}

func TestNormalizeCompany(t *testing.T) {
	assert.Equal(t, "acme", normalizeCompany("Acme Inc."))
	assert.Equal(t, "acme", normalizeCompany("ACME LLC"))
	assert.Equal(t, "acme", normalizeCompany("Acme Corporation"))
	assert.Equal(t, "cointelegraph", normalizeCompany("Cointelegraph"))
	// "co" is only stripped on a word boundary.
	assert.Equal(t, "costco wholesale", normalizeCompany("Costco Wholesale"))
}

func TestMerge_EmptyIncomingKeepsExisting(t *testing.T) {
	first := time.Date(2025, 1, 2, 0, 0, 0, 0, time.UTC)
	rowID := 14
	existing := Contact{
		ID:               "c1",
		Name:             "Jon Smith",
		Email:            "jon@x.com",
		Company:          "Acme",
		Phone:            "555-1234",
		Website:          "https://jon.example",
		Status:           StatusInterested,
		Priority:         PriorityHigh,
		Notes:            "met at booth",
		Tags:             []string{"conference", "vip"},
		FirstContactDate: &first,
		SheetsRowID:      &rowID,
	}

	merged := Merge(existing, Contact{})

	assert.Equal(t, existing.ID, merged.ID)
	assert.Equal(t, existing.Name, merged.Name)
	assert.Equal(t, existing.Email, merged.Email)
	assert.Equal(t, existing.Status, merged.Status)
	assert.Equal(t, existing.Priority, merged.Priority)
	assert.Equal(t, existing.Notes, merged.Notes)
	assert.Equal(t, existing.Tags, merged.Tags)
	assert.Equal(t, existing.FirstContactDate, merged.FirstContactDate)
	assert.Equal(t, existing.SheetsRowID, merged.SheetsRowID)
}

func TestMerge_IncomingWinsForIdentityFields(t *testing.T) {
	existing := Contact{ID: "c1", Name: "Jon", Phone: "555-1234", Status: StatusContacted}
	incoming := Contact{Name: "Jonathan", Email: "jon@x.com", Status: StatusResponded, Priority: PriorityHigh}

	merged := Merge(existing, incoming)

	assert.Equal(t, "c1", merged.ID)
	assert.Equal(t, "Jonathan", merged.Name)
	assert.Equal(t, "jon@x.com", merged.Email)
	assert.Equal(t, "555-1234", merged.Phone)
	assert.Equal(t, StatusResponded, merged.Status)
	assert.Equal(t, PriorityHigh, merged.Priority)
}

func TestMerge_NotesAppendWithDivider(t *testing.T) {
	merged := Merge(Contact{ID: "c1", Notes: "A"}, Contact{Notes: "B"})
	assert.Equal(t, "A\n\n---\n\nB", merged.Notes)

	merged = Merge(Contact{ID: "c1"}, Contact{Notes: "B"})
	assert.Equal(t, "B", merged.Notes)

	merged = Merge(Contact{ID: "c1", Notes: "A"}, Contact{})
	assert.Equal(t, "A", merged.Notes)
}

func TestMerge_TagsUnion(t *testing.T) {
	merged := Merge(
		Contact{ID: "c1", Tags: []string{"vip", "conference"}},
		Contact{Tags: []string{"conference", "sponsor"}},
	)
	assert.ElementsMatch(t, []string{"vip", "conference", "sponsor"}, merged.Tags)
	assert.Len(t, merged.Tags, 3)
}

func TestMerge_DatePolicy(t *testing.T) {
	early := time.Date(2024, 6, 1, 0, 0, 0, 0, time.UTC)
	late := time.Date(2025, 8, 1, 0, 0, 0, 0, time.UTC)
	next := time.Date(2025, 9, 15, 0, 0, 0, 0, time.UTC)

	existing := Contact{ID: "c1", FirstContactDate: &early, LastContactDate: &early}
	incoming := Contact{FirstContactDate: &late, LastContactDate: &late, NextFollowupDate: &next}

	merged := Merge(existing, incoming)

	// Existing first-contact is assumed earlier and is protected.
	assert.Equal(t, &early, merged.FirstContactDate)
	assert.Equal(t, &late, merged.LastContactDate)
	assert.Equal(t, &next, merged.NextFollowupDate)
}

func TestMerge_FirstContactFallsBackToIncoming(t *testing.T) {
	late := time.Date(2025, 8, 1, 0, 0, 0, 0, time.UTC)
	merged := Merge(Contact{ID: "c1"}, Contact{FirstContactDate: &late})
	assert.Equal(t, &late, merged.FirstContactDate)
}

func TestStats_Buckets(t *testing.T) {
	matches := []Match{
		{Confidence: 100},
		{Confidence: 90},
		{Confidence: 85},
		{Confidence: 75},
		{Confidence: 72},
	}

	stats := Stats(matches)

	assert.Equal(t, 5, stats.Total)
	assert.Equal(t, 2, stats.HighConfidence)
	assert.Equal(t, 2, stats.MediumConfidence)
	assert.Equal(t, 1, stats.LowConfidence)
}

func TestStats_Empty(t *testing.T) {
	assert.Equal(t, DedupeStats{}, Stats(nil))
}
