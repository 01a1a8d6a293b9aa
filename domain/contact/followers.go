package contact

import (
	"encoding/csv"
	"fmt"
	"io"
	"math"
	"strconv"
	"strings"
)

// FollowerTierStat reports how one audience-size bucket converts through
// the pipeline. ConversionRate is accepted over contacted as a whole
// percentage.
type FollowerTierStat struct {
	Tier           string `json:"tier"`
	Total          int    `json:"total"`
	Contacted      int    `json:"contacted"`
	Accepted       int    `json:"accepted"`
	ConversionRate int    `json:"conversionRate"`
}

// Tier bounds are min-inclusive, max-exclusive; max 0 means unbounded.
var followerTiers = []struct {
	name     string
	min, max int
}{
	{"0-10K", 0, 10_000},
	{"10K-50K", 10_000, 50_000},
	{"50K-100K", 50_000, 100_000},
	{"100K-500K", 100_000, 500_000},
	{"500K+", 500_000, 0},
}

// FollowerTierStats buckets contacts by follower count and reports per-tier
// conversion. Contacts without a recorded follower count are skipped. A
// contact counts as contacted once its status has moved past new.
func FollowerTierStats(contacts []Contact) []FollowerTierStat {
	out := make([]FollowerTierStat, len(followerTiers))
	for i, tier := range followerTiers {
		out[i].Tier = tier.name
	}

	for _, c := range contacts {
		if c.FollowerCount == nil {
			continue
		}
		n := *c.FollowerCount
		for i, tier := range followerTiers {
			if n < tier.min || (tier.max > 0 && n >= tier.max) {
				continue
			}
			out[i].Total++
			if c.Status != "" && c.Status != StatusNew {
				out[i].Contacted++
				if c.Status == StatusAccepted {
					out[i].Accepted++
				}
			}
			break
		}
	}

	for i := range out {
		if out[i].Contacted > 0 {
			out[i].ConversionRate = int(math.Round(float64(out[i].Accepted) / float64(out[i].Contacted) * 100))
		}
	}
	return out
}

// FollowerUpdate pairs a contact name with a parsed follower count.
type FollowerUpdate struct {
	Name  string
	Count int
}

// ParseFollowerCSV extracts one follower update per data row from a CSV
// export. Header lookup is case-insensitive; rows missing either value are
// skipped.
func ParseFollowerCSV(r io.Reader, nameColumn, followerColumn string) ([]FollowerUpdate, error) {
	reader := csv.NewReader(r)
	reader.FieldsPerRecord = -1

	header, err := reader.Read()
	if err != nil {
		return nil, fmt.Errorf("read csv header: %w", err)
	}

	nameIdx, followerIdx := -1, -1
	for i, h := range header {
		switch strings.ToLower(strings.TrimSpace(h)) {
		case strings.ToLower(nameColumn):
			nameIdx = i
		case strings.ToLower(followerColumn):
			followerIdx = i
		}
	}
	if nameIdx < 0 {
		return nil, fmt.Errorf("column %q not found, header has: %s", nameColumn, strings.Join(header, ", "))
	}
	if followerIdx < 0 {
		return nil, fmt.Errorf("column %q not found, header has: %s", followerColumn, strings.Join(header, ", "))
	}

	var updates []FollowerUpdate
	for {
		record, err := reader.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("read csv row: %w", err)
		}
		if nameIdx >= len(record) || followerIdx >= len(record) {
			continue
		}
		name := strings.TrimSpace(record[nameIdx])
		raw := strings.TrimSpace(record[followerIdx])
		if name == "" || raw == "" {
			continue
		}
		updates = append(updates, FollowerUpdate{Name: name, Count: ParseFollowerCount(raw)})
	}
	return updates, nil
}

// ParseFollowerCount converts a human follower figure such as "12,500",
// "12.5K" or "1.2M" into an absolute count. Unparseable input yields 0.
func ParseFollowerCount(s string) int {
	cleaned := strings.ToUpper(strings.ReplaceAll(strings.TrimSpace(s), ",", ""))
	switch {
	case strings.HasSuffix(cleaned, "K"):
		return scaledCount(strings.TrimSuffix(cleaned, "K"), 1_000)
	case strings.HasSuffix(cleaned, "M"):
		return scaledCount(strings.TrimSuffix(cleaned, "M"), 1_000_000)
	default:
		n, err := strconv.Atoi(cleaned)
		if err != nil {
			return 0
		}
		return n
	}
}

func scaledCount(s string, scale float64) int {
	f, err := strconv.ParseFloat(s, 64)
	if err != nil {
		return 0
	}
	return int(math.Round(f * scale))
}
