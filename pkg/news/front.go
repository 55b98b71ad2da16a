package news

import (
	"context"
	"sync"

	"github.com/webdevcom01-cell/aifreshdaily-web/pkg/domain"
)

// FrontPage is the assembled data for the landing page's independent
// sections.
type FrontPage struct {
	Hero        []domain.Article  `json:"hero"`
	Featured    []domain.Article  `json:"featured"`
	Breaking    []domain.Article  `json:"breaking"`
	MostPopular []domain.Article  `json:"mostPopular"`
	Trending    []domain.TagCount `json:"trending"`
}

// LoadFrontPage issues the section fetches concurrently; sections are
// independent, so one slow or failing fetch degrades only its own slot.
// No ordering is assumed between sections.
func LoadFrontPage(ctx context.Context, svc *Service, trending *TrendingCache) FrontPage {
	var (
		page FrontPage
		wg   sync.WaitGroup
	)

	wg.Add(5)
	go func() {
		defer wg.Done()
		page.Hero = svc.ListHero(ctx, DefaultHeroLimit)
	}()
	go func() {
		defer wg.Done()
		page.Featured = svc.ListFeatured(ctx, DefaultHeroLimit)
	}()
	go func() {
		defer wg.Done()
		page.Breaking = svc.ListBreaking(ctx, DefaultBreakingLimit)
	}()
	go func() {
		defer wg.Done()
		page.MostPopular = svc.ListMostPopular(ctx, DefaultPopularLimit)
	}()
	go func() {
		defer wg.Done()
		page.Trending = trending.Get(ctx)
	}()
	wg.Wait()

	return page
}
