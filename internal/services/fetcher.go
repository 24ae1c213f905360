package services

import (
	"context"
	"github.com/pkg/errors"
	"github.com/samber/lo"
	log "github.com/sirupsen/logrus"
	"github.com/vacsdata/sj-parser/internal/clients/sj"
	"github.com/vacsdata/sj-parser/internal/metrics"
	"golang.org/x/sync/errgroup"
)

type listingsClient interface {
	GetListings(ctx context.Context, token string, parameters sj.SearchParameters) ([]sj.Listing, error)
}

type FetcherOptions struct {
	Catalogues []int
	TownID     int
	Pages      int
	PerPage    int
	Workers    int
}

// Fetcher pulls raw listings for every configured catalogue across a fixed
// page range, one worker per page.
type Fetcher struct {
	client  listingsClient
	options FetcherOptions
}

func NewFetcher(client listingsClient, options FetcherOptions) (*Fetcher, error) {

	if len(options.Catalogues) == 0 {
		return nil, errors.New("at least one catalogue id is required")
	}
	if options.Pages <= 0 {
		return nil, errors.New("page count must be positive")
	}
	if options.Workers <= 0 {
		return nil, errors.New("worker count must be positive")
	}

	return &Fetcher{client: client, options: options}, nil
}

// FetchAll merges every page of every catalogue into one collection,
// deduplicated by listing id (last occurrence wins), with rows lacking an id
// or attributed to employer 0 dropped. A single failed call aborts the whole
// fetch; completed pages are discarded.
func (f *Fetcher) FetchAll(ctx context.Context, token string) ([]sj.Listing, error) {

	pageResults := make([][]sj.Listing, f.options.Pages)

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(f.options.Workers)

	for page := 0; page < f.options.Pages; page++ {
		page := page
		g.Go(func() error {
			listings, err := f.fetchPage(gctx, token, page)
			if err != nil {
				return errors.Wrapf(err, "page %d", page)
			}
			pageResults[page] = listings
			return nil
		})
	}

	if err := g.Wait(); err != nil {
		return nil, err
	}

	merged := lo.Flatten(pageResults)
	metrics.ListingsFetched.Add(float64(len(merged)))
	log.Infof("fetched %d raw listings over %d pages", len(merged), f.options.Pages)

	deduplicated := dedupeKeepLast(merged)
	filtered := lo.Filter(deduplicated, func(listing sj.Listing, _ int) bool {
		return listing.ID != 0 && listing.ClientID != 0
	})

	if dropped := len(merged) - len(filtered); dropped > 0 {
		log.Infof("dropped %d listings as duplicates, id-less or not attributable", dropped)
	}

	return filtered, nil
}

func (f *Fetcher) fetchPage(ctx context.Context, token string, page int) ([]sj.Listing, error) {

	var listings []sj.Listing
	for _, catalogueID := range f.options.Catalogues {
		result, err := f.client.GetListings(ctx, token, sj.SearchParameters{
			Period:      0,
			TownID:      f.options.TownID,
			CatalogueID: catalogueID,
			Page:        page,
			PerPage:     f.options.PerPage,
		})
		if err != nil {
			return nil, errors.Wrapf(err, "catalogue %d", catalogueID)
		}
		listings = append(listings, result...)
	}
	return listings, nil
}

// dedupeKeepLast collapses duplicate ids to the last occurrence while keeping
// each survivor at the position its id was first seen, so the result is
// deterministic for a given input order.
func dedupeKeepLast(listings []sj.Listing) []sj.Listing {

	positions := make(map[int64]int, len(listings))
	result := make([]sj.Listing, 0, len(listings))

	for _, listing := range listings {
		if pos, seen := positions[listing.ID]; seen {
			result[pos] = listing
			continue
		}
		positions[listing.ID] = len(result)
		result = append(result, listing)
	}

	return result
}
