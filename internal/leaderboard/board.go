package leaderboard

import (
	"context"
	"fmt"
	"time"
)

// Candidate is one account (or guild) entering the ranking pipeline.
type Candidate struct {
	UserID      string
	Username    string
	Value       int64
	BannedUntil *time.Time
}

// Metric configures the generic ranking pipeline for one board. Fetch
// returns candidates, already ordered descending unless Computed is set,
// in which case the pipeline sorts (offloading past the threshold).
// CharLimit bounds total rendered length on global scope only; guild
// boards always show the full roster.
type Metric struct {
	Name      string
	SkipZero  bool
	Computed  bool
	PlainName bool
	CharLimit int
	Fetch     func(ctx context.Context, scope Scope) ([]Candidate, error)
	Format    func(c Candidate) string
}

// Member is one guild-roster entry; bots are excluded before the roster is
// handed to the pipeline.
type Member struct {
	ID       string
	Username string
}

// Scope selects the candidate population: a guild roster or everyone.
type Scope struct {
	Global  bool
	Members []Member
}

func GuildScope(members []Member) Scope {
	return Scope{Members: members}
}

func GlobalScope() Scope {
	return Scope{Global: true}
}

// IDs returns the roster ids for data-layer queries; nil in global scope.
func (s Scope) IDs() []string {
	if s.Global {
		return nil
	}
	ids := make([]string, 0, len(s.Members))
	for _, m := range s.Members {
		ids = append(ids, m.ID)
	}
	return ids
}

func (s Scope) username(userID string) string {
	for _, m := range s.Members {
		if m.ID == userID {
			return m.Username
		}
	}
	return userID
}

// Ranking is a rendered board: paged display rows plus the viewer's 1-based
// position (0 when the viewer is absent from the ranked set).
type Ranking struct {
	Pages    [][]string
	Position int
}

// maxRows caps every board at 100 displayed entries.
const maxRows = 100

const (
	medalFirst  = "🥇"
	medalSecond = "🥈"
	medalThird  = "🥉"
)

// rankGlyph renders a display rank: medals for the podium, "{n}." after.
func rankGlyph(position int) string {
	switch position {
	case 1:
		return medalFirst
	case 2:
		return medalSecond
	case 3:
		return medalThird
	default:
		return fmt.Sprintf("%d.", position)
	}
}

// Rank runs the pipeline for one metric and scope: fetch, sort if needed,
// drop banned/zero rows, format, paginate, locate the viewer, and (globally)
// queue position recording.
func (b *Boards) Rank(ctx context.Context, m Metric, scope Scope, viewerID string) (*Ranking, error) {
	cands, err := m.Fetch(ctx, scope)
	if err != nil {
		return nil, err
	}
	if m.Computed {
		if err := b.sorter.SortDesc(ctx, cands); err != nil {
			return nil, err
		}
	}

	now := time.Now()
	var (
		rows      []string
		rankedIDs []string
		length    int
	)
	for _, c := range cands {
		if len(rows) >= maxRows {
			break
		}
		if m.CharLimit > 0 && scope.Global && length >= m.CharLimit {
			break
		}
		if c.BannedUntil != nil && now.Before(*c.BannedUntil) {
			continue
		}
		if m.SkipZero && c.Value == 0 {
			continue
		}

		name := c.Username
		if !scope.Global {
			name = scope.username(c.UserID)
		}
		display := name
		if !m.PlainName {
			display, err = b.formatName(ctx, c.UserID, name, scope.Global)
			if err != nil {
				return nil, err
			}
		}

		row := fmt.Sprintf("%s %s %s", rankGlyph(len(rows)+1), display, m.Format(c))
		length += len(row)
		rows = append(rows, row)
		rankedIDs = append(rankedIDs, c.UserID)
	}

	position := 0
	if viewerID != "" {
		for i, id := range rankedIDs {
			if id == viewerID {
				position = i + 1
				break
			}
		}
	}

	if scope.Global && !m.PlainName && b.recorder != nil {
		b.recorder.Enqueue(m.Name, rankedIDs)
	}

	return &Ranking{Pages: Pages(rows), Position: position}, nil
}
