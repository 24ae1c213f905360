package entities

// PlaceholderCode marks OKPDTR reference rows that carry no real code and
// must never be offered as match targets.
const PlaceholderCode = "_"

// ClassificationEntry is one row of the OKPDTR occupation taxonomy.
type ClassificationEntry struct {
	ID   int64 `gorm:"primaryKey"`
	Name string
	Code string
}

func (ClassificationEntry) TableName() string {
	return "okpdtr"
}
