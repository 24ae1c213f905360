package sj

import "encoding/json"

// Listing is one raw vacancy record exactly as the API returns it. Nested
// blocks stay optional: the API omits them freely, and normalization decides
// what a missing block means.
type Listing struct {
	ID           int64   `json:"id"`
	ClientID     int64   `json:"id_client"`
	Profession   string  `json:"profession"`
	Candidate    *string `json:"candidat"`
	Work         *string `json:"work"`
	Compensation *string `json:"compensation"`

	Education     *TitledValue `json:"education"`
	Experience    *TitledValue `json:"experience"`
	TypeOfWork    *TitledValue `json:"type_of_work"`
	PlaceOfWork   *TitledValue `json:"place_of_work"`
	MaritalStatus *TitledValue `json:"maritalstatus"`
	Children      *TitledValue `json:"children"`
	Gender        *TitledValue `json:"gender"`
	Agency        *TitledValue `json:"agency"`
	Town          *TitledValue `json:"town"`

	DrivingLicence []string      `json:"driving_licence"`
	Metro          []TitledValue `json:"metro"`
	Catalogues     []Catalogue   `json:"catalogues"`

	AgeFrom     *int     `json:"age_from"`
	AgeTo       *int     `json:"age_to"`
	Moveable    bool     `json:"moveable"`
	Agreement   bool     `json:"agreement"`
	PaymentFrom *int     `json:"payment_from"`
	PaymentTo   *int     `json:"payment_to"`
	Currency    *string  `json:"currency"`
	Address     *string  `json:"address"`
	Latitude    *float64 `json:"latitude"`
	Longitude   *float64 `json:"longitude"`
	Link        string   `json:"link"`

	// Unix timestamps. The API always sends all three; a zero value means
	// the payload was malformed and normalization must refuse it.
	PublishedAt int64 `json:"date_published" validate:"required"`
	PublishedTo int64 `json:"date_pub_to" validate:"required"`
	ArchivedAt  int64 `json:"date_archived" validate:"required"`

	IsClosed bool `json:"is_closed"`

	Client *ClientBlock `json:"client"`
}

type TitledValue struct {
	Title string `json:"title"`
}

type Catalogue struct {
	ID    int    `json:"id"`
	Title string `json:"title"`
}

// ClientBlock is the employer sub-object embedded in a listing.
type ClientBlock struct {
	ID           *int64          `json:"id"`
	Title        *string         `json:"title"`
	Description  *string         `json:"description"`
	VacancyCount *int            `json:"vacancy_count"`
	StaffCount   *string         `json:"staff_count"`
	Logo         *string         `json:"client_logo"`
	Address      *string         `json:"address"`
	Addresses    json.RawMessage `json:"addresses"`
	URL          *string         `json:"url"`
	Link         *string         `json:"link"`
	RegisteredAt *int64          `json:"registered_date"`
}
