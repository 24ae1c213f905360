package services

import (
	"github.com/go-playground/validator/v10"
	"github.com/pkg/errors"
	"github.com/samber/lo"
	"github.com/vacsdata/sj-parser/internal/clients/sj"
	"github.com/vacsdata/sj-parser/internal/entities"
	"strconv"
	"strings"
	"time"
)

const timestampLayout = "2006-01-02 15:04:05"

var listingValidator = validator.New()

// Normalizer flattens raw listings into organization and vacancy records.
// Stages are pure: input listings are never mutated in place.
type Normalizer struct {
	sourceID int
	now      func() time.Time
}

func NewNormalizer(sourceID int) *Normalizer {
	return &Normalizer{sourceID: sourceID, now: time.Now}
}

// Normalize produces both record sets in one pass. Any structural deviation
// in any listing fails the whole stage: partial output never escapes.
func (n *Normalizer) Normalize(listings []sj.Listing) ([]entities.Organization, []entities.Vacancy, error) {

	downloadedAt := n.now().Format(timestampLayout)

	vacancies := make([]entities.Vacancy, 0, len(listings))
	organizations := make([]entities.Organization, 0, len(listings))
	orgPositions := make(map[int64]int, len(listings))

	for _, listing := range listings {
		if err := listingValidator.Struct(listing); err != nil {
			return nil, nil, errors.Wrapf(err, "listing %d has unexpected shape", listing.ID)
		}

		vacancies = append(vacancies, n.normalizeVacancy(listing, downloadedAt))

		organization, ok := n.normalizeOrganization(listing.Client, downloadedAt)
		if !ok {
			continue
		}
		// duplicate employers collapse to the last occurrence
		if pos, seen := orgPositions[organization.ID]; seen {
			organizations[pos] = organization
			continue
		}
		orgPositions[organization.ID] = len(organizations)
		organizations = append(organizations, organization)
	}

	return organizations, vacancies, nil
}

func (n *Normalizer) normalizeVacancy(listing sj.Listing, downloadedAt string) entities.Vacancy {
	return entities.Vacancy{
		ID:             listing.ID,
		OrganizationID: listing.ClientID,
		Profession:     listing.Profession,
		Requirements:   listing.Candidate,
		Duties:         listing.Work,
		Compensation:   listing.Compensation,
		Education:      title(listing.Education),
		Experience:     title(listing.Experience),
		EmploymentType: title(listing.TypeOfWork),
		WorkPlace:      title(listing.PlaceOfWork),
		MaritalStatus:  title(listing.MaritalStatus),
		Children:       title(listing.Children),
		Gender:         title(listing.Gender),
		DrivingLicence: joinStrings(listing.DrivingLicence, ", "),
		AgeFrom:        listing.AgeFrom,
		AgeTo:          listing.AgeTo,
		Moveable:       listing.Moveable,
		Agreement:      listing.Agreement,
		Agency:         title(listing.Agency),
		Town:           title(listing.Town),
		PaymentFrom:    positiveAmount(listing.PaymentFrom),
		PaymentTo:      positiveAmount(listing.PaymentTo),
		Currency:       listing.Currency,
		Address:        listing.Address,
		Latitude:       listing.Latitude,
		Longitude:      listing.Longitude,
		Metro:          joinTitles(listing.Metro, "; "),
		Link:           listing.Link,
		PublishedAt:    formatUnix(listing.PublishedAt),
		PublishedTo:    formatUnix(listing.PublishedTo),
		ArchivedAt:     formatUnix(listing.ArchivedAt),
		IsClosed:       listing.IsClosed,
		CatalogueIDs:   joinCatalogueIDs(listing.Catalogues),
		CatalogueNames: joinCatalogueNames(listing.Catalogues),
		DownloadedAt:   downloadedAt,
		SourceID:       n.sourceID,
		OKPDTRID:       nil,
		IsMatched:      false,
	}
}

func (n *Normalizer) normalizeOrganization(client *sj.ClientBlock, downloadedAt string) (entities.Organization, bool) {
	if client == nil || client.ID == nil {
		return entities.Organization{}, false
	}

	var addresses *string
	if len(client.Addresses) > 0 && string(client.Addresses) != "null" {
		addresses = lo.ToPtr(string(client.Addresses))
	}

	return entities.Organization{
		ID:           *client.ID,
		Name:         client.Title,
		Description:  client.Description,
		VacancyCount: client.VacancyCount,
		StaffCount:   client.StaffCount,
		Logo:         client.Logo,
		MainAddress:  client.Address,
		Addresses:    addresses,
		URL:          client.URL,
		Link:         client.Link,
		RegisteredAt: formatOptionalUnix(client.RegisteredAt),
		DownloadedAt: downloadedAt,
	}, true
}

func title(value *sj.TitledValue) *string {
	if value == nil {
		return nil
	}
	return lo.ToPtr(value.Title)
}

func joinStrings(values []string, separator string) *string {
	if len(values) == 0 {
		return nil
	}
	return lo.ToPtr(strings.Join(values, separator))
}

func joinTitles(values []sj.TitledValue, separator string) *string {
	titles := lo.Map(values, func(value sj.TitledValue, _ int) string {
		return value.Title
	})
	return joinStrings(titles, separator)
}

func joinCatalogueIDs(catalogues []sj.Catalogue) *string {
	ids := lo.Map(catalogues, func(catalogue sj.Catalogue, _ int) string {
		return strconv.Itoa(catalogue.ID)
	})
	return joinStrings(ids, "; ")
}

func joinCatalogueNames(catalogues []sj.Catalogue) *string {
	names := lo.Map(catalogues, func(catalogue sj.Catalogue, _ int) string {
		return catalogue.Title
	})
	return joinStrings(names, "; ")
}

// A payment bound of zero means "not specified" upstream.
func positiveAmount(value *int) *int {
	if value == nil || *value == 0 {
		return nil
	}
	return value
}

func formatUnix(timestamp int64) string {
	return time.Unix(timestamp, 0).Format(timestampLayout)
}

func formatOptionalUnix(timestamp *int64) *string {
	if timestamp == nil {
		return nil
	}
	return lo.ToPtr(formatUnix(*timestamp))
}
