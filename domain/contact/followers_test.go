package contact

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func intPtr(n int) *int { return &n }

func TestFollowerTierStats_Buckets(t *testing.T) {
	contacts := []Contact{
		{FollowerCount: intPtr(500), Status: StatusNew},
		{FollowerCount: intPtr(9_999), Status: StatusContacted},
		{FollowerCount: intPtr(10_000), Status: StatusAccepted}, // lower bound of 10K-50K
		{FollowerCount: intPtr(25_000), Status: StatusContacted},
		{FollowerCount: intPtr(75_000), Status: StatusDeclined},
		{FollowerCount: intPtr(2_000_000), Status: StatusAccepted},
		{Status: StatusAccepted}, // no follower count, ignored
	}

	stats := FollowerTierStats(contacts)

	require.Len(t, stats, 5)
	assert.Equal(t, "0-10K", stats[0].Tier)
	assert.Equal(t, 2, stats[0].Total)
	assert.Equal(t, 1, stats[0].Contacted)
	assert.Equal(t, 0, stats[0].Accepted)
	assert.Equal(t, 0, stats[0].ConversionRate)

	assert.Equal(t, "10K-50K", stats[1].Tier)
	assert.Equal(t, 2, stats[1].Total)
	assert.Equal(t, 2, stats[1].Contacted)
	assert.Equal(t, 1, stats[1].Accepted)
	assert.Equal(t, 50, stats[1].ConversionRate)

	// Declined still counts as contacted, not as accepted.
	assert.Equal(t, "50K-100K", stats[2].Tier)
	assert.Equal(t, 1, stats[2].Contacted)
	assert.Equal(t, 0, stats[2].Accepted)

	assert.Equal(t, "100K-500K", stats[3].Tier)
	assert.Equal(t, 0, stats[3].Total)

	assert.Equal(t, "500K+", stats[4].Tier)
	assert.Equal(t, 1, stats[4].Total)
	assert.Equal(t, 100, stats[4].ConversionRate)
}

func TestFollowerTierStats_ConversionRounds(t *testing.T) {
	contacts := []Contact{
		{FollowerCount: intPtr(100), Status: StatusAccepted},
		{FollowerCount: intPtr(200), Status: StatusContacted},
		{FollowerCount: intPtr(300), Status: StatusResponded},
	}

	stats := FollowerTierStats(contacts)

	// 1 of 3 contacted accepted, 33.33 rounds to 33.
	assert.Equal(t, 33, stats[0].ConversionRate)
}

func TestFollowerTierStats_EmptyInput(t *testing.T) {
	stats := FollowerTierStats(nil)

	require.Len(t, stats, 5)
	for _, s := range stats {
		assert.Zero(t, s.Total)
		assert.Zero(t, s.ConversionRate)
	}
}

func TestParseFollowerCount(t *testing.T) {
	cases := []struct {
		in   string
		want int
	}{
		{"12500", 12500},
		{"12,500", 12500},
		{"12.5K", 12500},
		{"12.5k", 12500},
		{"1.2M", 1200000},
		{"500", 500},
		{" 42 ", 42},
		{"n/a", 0},
		{"", 0},
	}
	for _, tc := range cases {
		assert.Equal(t, tc.want, ParseFollowerCount(tc.in), "input %q", tc.in)
	}
}

func TestParseFollowerCSV(t *testing.T) {
	body := strings.Join([]string{
		"Name,Handle,Follower Count",
		`"Ada Lovelace",@ada,"12,500"`,
		"Grace Hopper,@grace,1.1M",
		",@nobody,500",
		"Missing Count,@missing,",
	}, "\n")

	updates, err := ParseFollowerCSV(strings.NewReader(body), "name", "follower count")

	require.NoError(t, err)
	require.Len(t, updates, 2)
	assert.Equal(t, FollowerUpdate{Name: "Ada Lovelace", Count: 12500}, updates[0])
	assert.Equal(t, FollowerUpdate{Name: "Grace Hopper", Count: 1100000}, updates[1])
}

func TestParseFollowerCSV_MissingColumn(t *testing.T) {
	body := "Name,Handle\nAda,@ada\n"

	_, err := ParseFollowerCSV(strings.NewReader(body), "Name", "Follower Count")

	require.Error(t, err)
	assert.Contains(t, err.Error(), `"Follower Count" not found`)
}

func TestParseFollowerCSV_EmptyFile(t *testing.T) {
	_, err := ParseFollowerCSV(strings.NewReader(""), "Name", "Follower Count")
	require.Error(t, err)
}
