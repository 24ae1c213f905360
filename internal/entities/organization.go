package entities

// Organization is an employer row. Rows are insert-only: once an id exists
// in the companies table it is never overwritten by later runs.
type Organization struct {
	ID           int64 `gorm:"primaryKey"`
	Name         *string
	Description  *string
	VacancyCount *int
	StaffCount   *string
	Logo         *string
	MainAddress  *string
	Addresses    *string
	URL          *string
	Link         *string
	RegisteredAt *string
	DownloadedAt string
}

func (Organization) TableName() string {
	return "companies"
}
