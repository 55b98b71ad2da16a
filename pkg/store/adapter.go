package store

import (
	"fmt"
	"time"

	"github.com/webdevcom01-cell/aifreshdaily-web/pkg/domain"
)

// Defaults applied when optional columns are absent.
const (
	defaultReadTime = "3 min read"

	// publishedDisplay is the display layout for article timestamps.
	publishedDisplay = "Jan 2, 2006"
)

func strOr(p *string, fallback string) string {
	if p == nil {
		return fallback
	}
	return *p
}

func intOr(p *int, fallback int) int {
	if p == nil {
		return fallback
	}
	return *p
}

// formatPublished renders an ISO timestamp as a display date. Values that
// don't parse are passed through untouched.
func formatPublished(raw string) string {
	for _, layout := range []string{time.RFC3339, "2006-01-02T15:04:05", "2006-01-02"} {
		if t, err := time.Parse(layout, raw); err == nil {
			return t.Format(publishedDisplay)
		}
	}
	return raw
}

// ArticleFromRow maps one raw row to one domain article. Missing optional
// columns get their defaults; missing required columns are an error.
func ArticleFromRow(row ArticleRow) (domain.Article, error) {
	if row.ID == "" {
		return domain.Article{}, fmt.Errorf("article row missing id")
	}
	if row.Headline == "" {
		return domain.Article{}, fmt.Errorf("article row %s missing headline", row.ID)
	}
	if row.Category == "" {
		return domain.Article{}, fmt.Errorf("article row %s missing category", row.ID)
	}

	var source *domain.Source
	if row.SourceName != nil && *row.SourceName != "" {
		source = &domain.Source{
			Name:    *row.SourceName,
			URL:     strOr(row.SourceURL, ""),
			Favicon: strOr(row.SourceFavicon, ""),
		}
	}

	published := ""
	if row.PublishedAt != nil && *row.PublishedAt != "" {
		published = formatPublished(*row.PublishedAt)
	}

	return domain.Article{
		ID:           row.ID,
		Slug:         strOr(row.Slug, ""),
		Headline:     row.Headline,
		Excerpt:      strOr(row.Excerpt, ""),
		Summary:      strOr(row.Summary, ""),
		Body:         strOr(row.Body, ""),
		Image:        strOr(row.Image, ""),
		Category:     row.Category,
		Author:       strOr(row.Author, ""),
		ReadTime:     strOr(row.ReadTime, defaultReadTime),
		PublishedAt:  published,
		OriginalURL:  strOr(row.OriginalURL, ""),
		IsExclusive:  row.IsExclusive,
		IsFeatured:   row.IsFeatured,
		IsBreaking:   row.IsBreaking,
		Source:       source,
		Tags:         row.Tags,
		KeyPoints:    row.KeyPoints,
		WhyItMatters: strOr(row.WhyItMatters, ""),
		ViewCount:    intOr(row.ViewCount, 0),
	}, nil
}

// ArticlesFromRows maps a batch, skipping rows that fail required-field
// validation. One malformed row must not take down a listing.
func ArticlesFromRows(rows []ArticleRow) []domain.Article {
	out := make([]domain.Article, 0, len(rows))
	for _, row := range rows {
		a, err := ArticleFromRow(row)
		if err != nil {
			continue
		}
		out = append(out, a)
	}
	return out
}

// ModelFromRow maps one model_scores row.
func ModelFromRow(row ModelScoreRow) domain.ModelScore {
	trend := domain.Trend(row.Trend)
	switch trend {
	case domain.TrendUp, domain.TrendDown, domain.TrendSame:
	default:
		trend = domain.TrendSame
	}
	return domain.ModelScore{
		ID:            row.ID,
		Name:          row.Name,
		Company:       row.Company,
		Overall:       row.ScoreOverall,
		Coding:        row.ScoreCoding,
		Reasoning:     row.ScoreReasoning,
		Creative:      row.ScoreCreative,
		ContextWindow: strOr(row.ContextWindow, ""),
		Highlight:     strOr(row.Highlight, ""),
		Trend:         trend,
		VoteCount:     intOr(row.VoteCount, 0),
		UpdatedAt:     row.UpdatedAt,
	}
}

// RegulationFromRow maps one regulations row. Deadlines are stored as dates
// or ISO timestamps; unparsable deadlines are treated as absent.
func RegulationFromRow(row RegulationRow) domain.Regulation {
	var deadline *time.Time
	if row.Deadline != nil && *row.Deadline != "" {
		for _, layout := range []string{"2006-01-02", time.RFC3339} {
			if t, err := time.Parse(layout, *row.Deadline); err == nil {
				deadline = &t
				break
			}
		}
	}
	return domain.Regulation{
		ID:          row.ID,
		Title:       row.Title,
		Region:      row.Region,
		Status:      domain.RegulationStatus(row.Status),
		Impact:      domain.Impact(row.Impact),
		Deadline:    deadline,
		Description: row.Description,
		SourceURL:   strOr(row.SourceURL, ""),
		SortOrder:   row.SortOrder,
	}
}

// AIVoiceFromRow maps one ai_voices row.
func AIVoiceFromRow(row AIVoiceRow) domain.AIVoice {
	return domain.AIVoice{
		Name:        row.Name,
		Title:       strOr(row.Title, ""),
		Company:     strOr(row.Company, ""),
		Avatar:      strOr(row.Avatar, ""),
		Quote:       row.Quote,
		ArticleLink: strOr(row.ArticleLink, ""),
	}
}

// TimelineEventFromRow maps one timeline_events row.
func TimelineEventFromRow(row TimelineEventRow) domain.TimelineEvent {
	return domain.TimelineEvent{
		Year:        row.Year,
		Quarter:     strOr(row.Quarter, ""),
		Title:       row.Title,
		Description: strOr(row.Description, ""),
		Type:        domain.EventType(row.Type),
		SortOrder:   row.SortOrder,
	}
}
