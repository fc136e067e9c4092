package models

import (
	"database/sql/driver"
	"encoding/json"
	"fmt"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// StringList stores a set of strings as a JSON array in a single text column.
type StringList []string

func (l StringList) Value() (driver.Value, error) {
	if l == nil {
		l = StringList{}
	}
	b, err := json.Marshal(l)
	if err != nil {
		return nil, err
	}
	return string(b), nil
}

func (l *StringList) Scan(value interface{}) error {
	switch v := value.(type) {
	case nil:
		*l = StringList{}
		return nil
	case string:
		return json.Unmarshal([]byte(v), l)
	case []byte:
		return json.Unmarshal(v, l)
	default:
		return fmt.Errorf("cannot scan %T into StringList", value)
	}
}

// Visa is a visa offering. JSON tags mirror the public wire format, which mixes
// snake_case storage names with camelCase form names.
type Visa struct {
	ID                string     `json:"_id" gorm:"primaryKey"`
	CountryImage      string     `json:"countryImage"`
	Country           string     `json:"country"`
	VisaType          string     `json:"visa_type"`
	ProcessingTime    string     `json:"processing_time"`
	RequiredDocuments StringList `json:"required_documents" gorm:"type:text"`
	Description       string     `json:"description"`
	AgeRestriction    int        `json:"age_restriction"`
	Fee               float64    `json:"fee"`
	Validity          string     `json:"validity"`
	ApplicationMethod string     `json:"application_method"`
	AddedBy           string     `json:"addedBy"`
}

func (v *Visa) BeforeCreate(tx *gorm.DB) error {
	if v.ID == "" {
		v.ID = uuid.NewString()
	}
	return nil
}
