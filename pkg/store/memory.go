package store

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"sort"
	"strings"
	"sync"
	"time"
)

// Memory is an in-process Backend used for dev mode and tests. Ordering and
// filtering match the semantics of the SQL backends so callers can't tell
// them apart.
type Memory struct {
	mu sync.Mutex

	articles []ArticleRow
	models   []ModelScoreRow
	regs     []RegulationRow
	events   []TimelineEventRow
	voices   []AIVoiceRow

	subscribers map[string]bool

	// DisableViewOrder simulates a store without the view_count column:
	// OrderViewCount listings return ErrUnsupported.
	DisableViewOrder bool

	// FailAll simulates a transient store outage: every call errors.
	FailAll bool
}

// NewMemory returns an empty in-memory backend.
func NewMemory() *Memory {
	return &Memory{subscribers: make(map[string]bool)}
}

// Seed is the JSON document shape accepted by LoadSeed.
type Seed struct {
	Articles       []ArticleRow       `json:"articles"`
	ModelScores    []ModelScoreRow    `json:"model_scores"`
	Regulations    []RegulationRow    `json:"regulations"`
	TimelineEvents []TimelineEventRow `json:"timeline_events"`
	AIVoices       []AIVoiceRow       `json:"ai_voices"`
}

// LoadSeed reads a JSON seed file into the backend, replacing current data.
func (m *Memory) LoadSeed(path string) error {
	raw, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("read seed file: %w", err)
	}
	var seed Seed
	if err := json.Unmarshal(raw, &seed); err != nil {
		return fmt.Errorf("parse seed file: %w", err)
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	m.articles = cloneArticleRows(seed.Articles)
	m.models = cloneModelRows(seed.ModelScores)
	m.regs = seed.Regulations
	m.events = seed.TimelineEvents
	m.voices = seed.AIVoices
	return nil
}

// cloneArticleRow detaches the mutable counter so stored rows never alias
// rows held by callers.
func cloneArticleRow(row ArticleRow) ArticleRow {
	if row.ViewCount != nil {
		v := *row.ViewCount
		row.ViewCount = &v
	}
	return row
}

func cloneArticleRows(rows []ArticleRow) []ArticleRow {
	out := make([]ArticleRow, len(rows))
	for i, row := range rows {
		out[i] = cloneArticleRow(row)
	}
	return out
}

func cloneModelRow(row ModelScoreRow) ModelScoreRow {
	if row.VoteCount != nil {
		v := *row.VoteCount
		row.VoteCount = &v
	}
	return row
}

func cloneModelRows(rows []ModelScoreRow) []ModelScoreRow {
	out := make([]ModelScoreRow, len(rows))
	for i, row := range rows {
		out[i] = cloneModelRow(row)
	}
	return out
}

// AddArticles appends rows, used by tests and dev seeding.
func (m *Memory) AddArticles(rows ...ArticleRow) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.articles = append(m.articles, cloneArticleRows(rows)...)
}

// AddModels appends model score rows.
func (m *Memory) AddModels(rows ...ModelScoreRow) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.models = append(m.models, cloneModelRows(rows)...)
}

// AddRegulations appends regulation rows.
func (m *Memory) AddRegulations(rows ...RegulationRow) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.regs = append(m.regs, rows...)
}

// AddTimelineEvents appends timeline rows.
func (m *Memory) AddTimelineEvents(rows ...TimelineEventRow) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.events = append(m.events, rows...)
}

// AddAIVoices appends expert quote rows.
func (m *Memory) AddAIVoices(rows ...AIVoiceRow) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.voices = append(m.voices, rows...)
}

func (m *Memory) failing() error {
	if m.FailAll {
		return fmt.Errorf("memory store: simulated outage")
	}
	return nil
}

func publishedTime(row ArticleRow) (time.Time, bool) {
	if row.PublishedAt == nil || *row.PublishedAt == "" {
		return time.Time{}, false
	}
	for _, layout := range []string{time.RFC3339, "2006-01-02T15:04:05", "2006-01-02"} {
		if t, err := time.Parse(layout, *row.PublishedAt); err == nil {
			return t, true
		}
	}
	return time.Time{}, false
}

// sortRecency orders rows published_at descending with nulls last, matching
// the SQL backends' NULLS LAST placement.
func sortRecency(rows []ArticleRow) {
	sort.SliceStable(rows, func(i, j int) bool {
		ti, oki := publishedTime(rows[i])
		tj, okj := publishedTime(rows[j])
		if oki != okj {
			return oki
		}
		return ti.After(tj)
	})
}

func overlaps(tags, want []string) bool {
	for _, t := range tags {
		for _, w := range want {
			if t == w {
				return true
			}
		}
	}
	return false
}

func contains(tags []string, want string) bool {
	for _, t := range tags {
		if t == want {
			return true
		}
	}
	return false
}

func matchesQuery(row ArticleRow, q ArticleQuery) bool {
	if q.Category != "" && !strings.EqualFold(row.Category, q.Category) {
		return false
	}
	if q.Tag != "" && !contains(row.Tags, q.Tag) {
		return false
	}
	if len(q.TagsOverlap) > 0 && !overlaps(row.Tags, q.TagsOverlap) {
		return false
	}
	if q.ExcludeID != "" && row.ID == q.ExcludeID {
		return false
	}
	if q.Featured && !row.IsFeatured {
		return false
	}
	if q.Breaking && !row.IsBreaking {
		return false
	}
	if q.Video && !row.IsVideo {
		return false
	}
	if q.HeroOnly {
		if row.Image == nil || *row.Image == "" {
			return false
		}
		if !row.IsFeatured && !row.IsBreaking && !row.IsExclusive {
			return false
		}
	}
	return true
}

// SelectArticles implements Backend.
func (m *Memory) SelectArticles(ctx context.Context, q ArticleQuery) ([]ArticleRow, error) {
	if err := m.failing(); err != nil {
		return nil, err
	}
	m.mu.Lock()
	defer m.mu.Unlock()

	if q.Order == OrderViewCount && m.DisableViewOrder {
		return nil, ErrUnsupported
	}

	var matched []ArticleRow
	for _, row := range m.articles {
		if matchesQuery(row, q) {
			matched = append(matched, row)
		}
	}

	sortRecency(matched)
	if q.Order == OrderViewCount {
		sort.SliceStable(matched, func(i, j int) bool {
			vi, vj := matched[i].ViewCount, matched[j].ViewCount
			if (vi == nil) != (vj == nil) {
				return vi != nil // nulls last
			}
			if vi != nil && *vi != *vj {
				return *vi > *vj
			}
			return false // recency tiebreak preserved by stable sort
		})
	}

	if q.Offset > 0 {
		if q.Offset >= len(matched) {
			return nil, nil
		}
		matched = matched[q.Offset:]
	}
	if q.Limit > 0 && len(matched) > q.Limit {
		matched = matched[:q.Limit]
	}
	return cloneArticleRows(matched), nil
}

// GetArticleByID implements Backend.
func (m *Memory) GetArticleByID(ctx context.Context, id string) (*ArticleRow, error) {
	if err := m.failing(); err != nil {
		return nil, err
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	for _, row := range m.articles {
		if row.ID == id {
			r := cloneArticleRow(row)
			return &r, nil
		}
	}
	return nil, ErrNotFound
}

// GetArticleBySlug implements Backend.
func (m *Memory) GetArticleBySlug(ctx context.Context, slug string) (*ArticleRow, error) {
	if err := m.failing(); err != nil {
		return nil, err
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	for _, row := range m.articles {
		if row.Slug != nil && *row.Slug == slug {
			r := cloneArticleRow(row)
			return &r, nil
		}
	}
	return nil, ErrNotFound
}

// ListIDSlugs implements Backend.
func (m *Memory) ListIDSlugs(ctx context.Context) ([]IDSlugRow, error) {
	if err := m.failing(); err != nil {
		return nil, err
	}
	m.mu.Lock()
	rows := make([]ArticleRow, len(m.articles))
	copy(rows, m.articles)
	m.mu.Unlock()

	sortRecency(rows)
	out := make([]IDSlugRow, 0, len(rows))
	for _, row := range rows {
		out = append(out, IDSlugRow{ID: row.ID, Slug: row.Slug})
	}
	return out, nil
}

// TagWindow implements Backend.
func (m *Memory) TagWindow(ctx context.Context, window int) ([][]string, error) {
	if err := m.failing(); err != nil {
		return nil, err
	}
	m.mu.Lock()
	rows := make([]ArticleRow, 0, len(m.articles))
	for _, row := range m.articles {
		if len(row.Tags) > 0 {
			rows = append(rows, row)
		}
	}
	m.mu.Unlock()

	sortRecency(rows)
	if window > 0 && len(rows) > window {
		rows = rows[:window]
	}
	out := make([][]string, 0, len(rows))
	for _, row := range rows {
		out = append(out, row.Tags)
	}
	return out, nil
}

// SearchHeadline implements Backend with a case-insensitive substring match.
func (m *Memory) SearchHeadline(ctx context.Context, query string, limit int) ([]ArticleRow, error) {
	if err := m.failing(); err != nil {
		return nil, err
	}
	m.mu.Lock()
	defer m.mu.Unlock()

	needle := strings.ToLower(query)
	var matched []ArticleRow
	for _, row := range m.articles {
		if strings.Contains(strings.ToLower(row.Headline), needle) {
			matched = append(matched, row)
		}
	}
	sortRecency(matched)
	if limit > 0 && len(matched) > limit {
		matched = matched[:limit]
	}
	return cloneArticleRows(matched), nil
}

// ListModelScores implements Backend.
func (m *Memory) ListModelScores(ctx context.Context) ([]ModelScoreRow, error) {
	if err := m.failing(); err != nil {
		return nil, err
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	return cloneModelRows(m.models), nil
}

// ListRegulations implements Backend, ordered by sort_order ascending.
func (m *Memory) ListRegulations(ctx context.Context) ([]RegulationRow, error) {
	if err := m.failing(); err != nil {
		return nil, err
	}
	m.mu.Lock()
	out := make([]RegulationRow, len(m.regs))
	copy(out, m.regs)
	m.mu.Unlock()
	sort.SliceStable(out, func(i, j int) bool { return out[i].SortOrder < out[j].SortOrder })
	return out, nil
}

// ListTimelineEvents implements Backend, ordered by sort_order ascending.
func (m *Memory) ListTimelineEvents(ctx context.Context) ([]TimelineEventRow, error) {
	if err := m.failing(); err != nil {
		return nil, err
	}
	m.mu.Lock()
	out := make([]TimelineEventRow, len(m.events))
	copy(out, m.events)
	m.mu.Unlock()
	sort.SliceStable(out, func(i, j int) bool { return out[i].SortOrder < out[j].SortOrder })
	return out, nil
}

// ListAIVoices implements Backend, ordered by sort_order ascending.
func (m *Memory) ListAIVoices(ctx context.Context) ([]AIVoiceRow, error) {
	if err := m.failing(); err != nil {
		return nil, err
	}
	m.mu.Lock()
	out := make([]AIVoiceRow, len(m.voices))
	copy(out, m.voices)
	m.mu.Unlock()
	sort.SliceStable(out, func(i, j int) bool { return out[i].SortOrder < out[j].SortOrder })
	return out, nil
}

// IncrementViewCount implements Backend with an atomic in-place add.
func (m *Memory) IncrementViewCount(ctx context.Context, articleID string) error {
	if err := m.failing(); err != nil {
		return err
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	for i := range m.articles {
		if m.articles[i].ID == articleID {
			if m.articles[i].ViewCount == nil {
				zero := 0
				m.articles[i].ViewCount = &zero
			}
			*m.articles[i].ViewCount++
			return nil
		}
	}
	return ErrNotFound
}

// IncrementModelVote implements Backend.
func (m *Memory) IncrementModelVote(ctx context.Context, modelID int) error {
	if err := m.failing(); err != nil {
		return err
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	for i := range m.models {
		if m.models[i].ID == modelID {
			if m.models[i].VoteCount == nil {
				zero := 0
				m.models[i].VoteCount = &zero
			}
			*m.models[i].VoteCount++
			return nil
		}
	}
	return ErrNotFound
}

// SubscribeEmail implements Backend with server-style validation and dedup.
func (m *Memory) SubscribeEmail(ctx context.Context, email string) error {
	if err := m.failing(); err != nil {
		return err
	}
	email = strings.ToLower(strings.TrimSpace(email))
	if email == "" || !strings.Contains(email, "@") {
		return ErrInvalidEmail
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	m.subscribers[email] = true
	return nil
}

// NewsletterTotal implements Backend.
func (m *Memory) NewsletterTotal(ctx context.Context) (int, error) {
	if err := m.failing(); err != nil {
		return 0, err
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	return len(m.subscribers), nil
}
