package developer

import (
	"encoding/json"
	"time"

	"gorm.io/datatypes"
)

// Record is the gorm row for a Developer. Position keeps list order stable
// across replace operations.
type Record struct {
	ID         string         `gorm:"primaryKey;column:id" json:"id"`
	Position   int64          `gorm:"not null;index;column:position" json:"position"`
	Name       string         `gorm:"uniqueIndex;not null;column:name" json:"name"`
	IsJunior   bool           `gorm:"not null;default:false;column:is_junior" json:"is_junior"`
	Frameworks datatypes.JSON `gorm:"column:frameworks" json:"frameworks"`

	CreatedAt time.Time `gorm:"not null" json:"created_at"`
	UpdatedAt time.Time `gorm:"not null" json:"updated_at"`
}

func (Record) TableName() string { return "developer" }

func NewRecord(d Developer, position int64) (*Record, error) {
	raw, err := encodeFrameworks(d.Frameworks)
	if err != nil {
		return nil, err
	}
	return &Record{
		ID:         d.ID,
		Position:   position,
		Name:       d.Name,
		IsJunior:   d.IsJunior,
		Frameworks: raw,
	}, nil
}

func (r *Record) Developer() (Developer, error) {
	out := Developer{
		ID:         r.ID,
		Name:       r.Name,
		IsJunior:   r.IsJunior,
		Frameworks: []Framework{},
	}
	if len(r.Frameworks) == 0 || string(r.Frameworks) == "null" {
		return out, nil
	}
	if err := json.Unmarshal(r.Frameworks, &out.Frameworks); err != nil {
		return Developer{}, err
	}
	return out, nil
}

func encodeFrameworks(in []Framework) (datatypes.JSON, error) {
	if in == nil {
		in = []Framework{}
	}
	raw, err := json.Marshal(in)
	if err != nil {
		return nil, err
	}
	return datatypes.JSON(raw), nil
}

// FrameworksJSON is the column value for a framework list.
func FrameworksJSON(in []Framework) (datatypes.JSON, error) {
	return encodeFrameworks(in)
}
