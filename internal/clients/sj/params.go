package sj

import (
	"fmt"
	"net/url"
	"strconv"
)

// API hard limits: at most 100 results per page, at most 500 results per query.
const (
	maxPerPage = 100
	maxResults = 500
)

type SearchParameters struct {
	Period      int
	TownID      int
	CatalogueID int
	Page        int
	PerPage     int
}

func (s SearchParameters) Validate() error {

	if s.Page < 0 {
		return fmt.Errorf("page must be non-negative")
	}

	if s.PerPage <= 0 || s.PerPage > maxPerPage {
		return fmt.Errorf("per page must be between 1 and %d", maxPerPage)
	}

	if s.Page >= maxResults/s.PerPage {
		return fmt.Errorf("page %d is beyond the API result window", s.Page)
	}

	if s.CatalogueID <= 0 {
		return fmt.Errorf("catalogue id must be positive")
	}

	return nil
}

func (s SearchParameters) ToUrlParams() url.Values {

	params := url.Values{}
	params.Add("period", strconv.Itoa(s.Period))
	params.Add("town", strconv.Itoa(s.TownID))
	params.Add("count", strconv.Itoa(s.PerPage))
	params.Add("catalogues", strconv.Itoa(s.CatalogueID))
	params.Add("page", strconv.Itoa(s.Page))

	return params
}
