package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// VisaSnapshotFields are the offering fields copied onto an application when it
// is created. Later edits to the offering never touch these.
type VisaSnapshotFields struct {
	Country           string  `json:"country"`
	VisaType          string  `json:"visaType"`
	Fee               float64 `json:"fee"`
	Validity          string  `json:"validity"`
	CountryImage      string  `json:"countryImage"`
	ApplicationMethod string  `json:"applicationMethod"`
}

type VisaApplication struct {
	ID                 string `json:"_id" gorm:"primaryKey"`
	VisaID             string `json:"visaId"`
	UserEmail          string `json:"userEmail"`
	ApplicantFirstName string `json:"applicantFirstName"`
	ApplicantLastName  string `json:"applicantLastName"`
	ApplicantEmail     string `json:"applicantEmail"`
	VisaSnapshotFields `gorm:"embedded"`
	Status             string    `json:"status"`
	AppliedDate        time.Time `json:"appliedDate"`
}

func (a *VisaApplication) BeforeCreate(tx *gorm.DB) error {
	if a.ID == "" {
		a.ID = uuid.NewString()
	}
	return nil
}
