// Package prospect models discovered-but-not-yet-contacted leads and the
// daily outreach queue built from them.
package prospect

import (
	"strings"
	"time"
)

// Queue entry states.
const (
	QueueStatePending   = "pending"
	QueueStateContacted = "contacted"
	QueueStateSkipped   = "skipped"
)

// Prospect is a lead discovered by the scraping scripts. Prospects graduate
// to contacts once outreach starts; until then they only exist here.
type Prospect struct {
	ID              string    `json:"id,omitempty"`
	Name            string    `json:"name"`
	Email           string    `json:"email,omitempty"`
	TwitterHandle   string    `json:"twitter_handle,omitempty"`
	InstagramHandle string    `json:"instagram_handle,omitempty"`
	YouTubeChannel  string    `json:"youtube_channel,omitempty"`
	YouTubeURL      string    `json:"youtube_url,omitempty"`
	Source          string    `json:"source,omitempty"`
	FollowerCount   *int      `json:"follower_count,omitempty"`
	Bio             string    `json:"bio,omitempty"`
	Website         string    `json:"website,omitempty"`
	Status          string    `json:"status,omitempty"`
	Confidence      *int      `json:"confidence,omitempty"`
	DiscoveredAt    time.Time `json:"discovered_at,omitempty"`
}

// QueueEntry is one slot in a day's outreach queue.
type QueueEntry struct {
	ID         string    `json:"id,omitempty"`
	QueueDate  string    `json:"queue_date"` // YYYY-MM-DD
	ProspectID string    `json:"prospect_id,omitempty"`
	ContactID  string    `json:"contact_id,omitempty"`
	State      string    `json:"state"`
	AddedAt    time.Time `json:"added_at,omitempty"`
	UpdatedAt  time.Time `json:"updated_at,omitempty"`
}

// BlocklistEntry names a creator the team must not reach out to.
type BlocklistEntry struct {
	ID             string    `json:"id,omitempty"`
	Name           string    `json:"name"`
	Email          string    `json:"email,omitempty"`
	TwitterHandle  string    `json:"twitter_handle,omitempty"`
	YouTubeChannel string    `json:"youtube_channel,omitempty"`
	Reason         string    `json:"reason,omitempty"`
	CreatedAt      time.Time `json:"created_at,omitempty"`
}

// Blocklist indexes blocklist entries for case-insensitive lookup.
type Blocklist struct {
	names    map[string]struct{}
	emails   map[string]struct{}
	twitters map[string]struct{}
	youtubes map[string]struct{}
}

// NewBlocklist builds the lookup index from raw entries.
func NewBlocklist(entries []BlocklistEntry) *Blocklist {
	bl := &Blocklist{
		names:    make(map[string]struct{}),
		emails:   make(map[string]struct{}),
		twitters: make(map[string]struct{}),
		youtubes: make(map[string]struct{}),
	}
	for _, e := range entries {
		if e.Name != "" {
			bl.names[strings.ToLower(e.Name)] = struct{}{}
		}
		if e.Email != "" {
			bl.emails[strings.ToLower(e.Email)] = struct{}{}
		}
		if e.TwitterHandle != "" {
			bl.twitters[strings.ToLower(e.TwitterHandle)] = struct{}{}
		}
		if e.YouTubeChannel != "" {
			bl.youtubes[strings.ToLower(e.YouTubeChannel)] = struct{}{}
		}
	}
	return bl
}

// Blocked reports whether a prospect matches the blocklist on any identity.
func (bl *Blocklist) Blocked(p Prospect) bool {
	if _, ok := bl.names[strings.ToLower(p.Name)]; ok && p.Name != "" {
		return true
	}
	if p.Email != "" {
		if _, ok := bl.emails[strings.ToLower(p.Email)]; ok {
			return true
		}
	}
	if p.TwitterHandle != "" {
		if _, ok := bl.twitters[strings.ToLower(p.TwitterHandle)]; ok {
			return true
		}
	}
	if p.YouTubeChannel != "" {
		if _, ok := bl.youtubes[strings.ToLower(p.YouTubeChannel)]; ok {
			return true
		}
	}
	return false
}

// SelectForQueue filters prospects through the blocklist, moves the ones with
// an email address to the front (they are the easiest to reach), and caps the
// result at limit. Relative order within each group is preserved; duplicate
// prospect IDs are dropped.
func SelectForQueue(prospects []Prospect, bl *Blocklist, limit int) []Prospect {
	var withEmail, withoutEmail []Prospect
	seen := make(map[string]struct{}, len(prospects))

	for _, p := range prospects {
		if _, dup := seen[p.ID]; dup {
			continue
		}
		seen[p.ID] = struct{}{}
		if bl != nil && bl.Blocked(p) {
			continue
		}
		if p.Email != "" {
			withEmail = append(withEmail, p)
		} else {
			withoutEmail = append(withoutEmail, p)
		}
	}

	selected := append(withEmail, withoutEmail...)
	if limit > 0 && len(selected) > limit {
		selected = selected[:limit]
	}
	return selected
}
