package entities

// Vacancy is a normalized job posting. Every run overwrites existing rows
// column-for-column, except OKPDTRID and IsMatched which belong to the
// reconciliation pass and are only ever set there.
type Vacancy struct {
	ID             int64 `gorm:"primaryKey"`
	OrganizationID int64
	Profession     string
	Requirements   *string
	Duties         *string
	Compensation   *string
	Education      *string
	Experience     *string
	EmploymentType *string
	WorkPlace      *string
	MaritalStatus  *string
	Children       *string
	Gender         *string
	DrivingLicence *string
	AgeFrom        *int
	AgeTo          *int
	Moveable       bool
	Agreement      bool
	Agency         *string
	Town           *string
	PaymentFrom    *int
	PaymentTo      *int
	Currency       *string
	Address        *string
	Latitude       *float64
	Longitude      *float64
	Metro          *string
	Link           string
	PublishedAt    string
	PublishedTo    string
	ArchivedAt     string
	IsClosed       bool
	CatalogueIDs   *string
	CatalogueNames *string
	DownloadedAt   string
	SourceID       int
	OKPDTRID       *int64 `gorm:"column:okpdtr_id"`
	IsMatched      bool   `gorm:"column:is_matched"`
}

func (Vacancy) TableName() string {
	return "vacancies"
}

// MatchResult pairs a vacancy with the classification entry its profession
// string resolved to. It lives only within one reconciliation pass.
type MatchResult struct {
	VacancyID int64
	OKPDTRID  int64
}

// UnmatchedVacancy is the read-back projection fed into the matcher.
type UnmatchedVacancy struct {
	ID         int64
	Profession string
}
