package handlers

import (
	"context"
	"errors"
	"log"
	"time"

	"github.com/danielgtaylor/huma/v2"
	"github.com/freevisa/visa-api/internal/models"
	"github.com/freevisa/visa-api/internal/notifier"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

type ApplicationHandler struct {
	db       *gorm.DB
	notifier notifier.Notifier
}

func NewApplicationHandler(db *gorm.DB, notifier notifier.Notifier) *ApplicationHandler {
	return &ApplicationHandler{db: db, notifier: notifier}
}

type CreateApplicationRequest struct {
	Body struct {
		// Clients may echo offering fields here; the snapshot is taken from
		// the store, so unknown keys are ignored rather than rejected.
		_                  struct{} `json:"-" additionalProperties:"true"`
		VisaID             string   `json:"visaId" doc:"ID of the visa offering being applied for"`
		UserEmail          string   `json:"userEmail" doc:"Applicant email"`
		ApplicantFirstName string   `json:"applicantFirstName" doc:"Applicant first name"`
		ApplicantLastName  string   `json:"applicantLastName" doc:"Applicant last name"`
		Status             string   `json:"status" doc:"Initial status label"`
	}
}

type CreateApplicationResponse struct {
	Body struct {
		Success       bool   `json:"success"`
		ApplicationID string `json:"applicationId"`
	}
}

// HandleCreateApplication stores an immutable snapshot of the offering together
// with the applicant's identity. The offering fields are copied from the stored
// visa, not from the request body, and appliedDate comes from the server clock.
// No lock spans the read and the write; a concurrent delete of the offering in
// between is an accepted race.
func (h *ApplicationHandler) HandleCreateApplication(ctx context.Context, input *CreateApplicationRequest) (*CreateApplicationResponse, error) {
	if _, err := uuid.Parse(input.Body.VisaID); err != nil {
		return nil, huma.Error400BadRequest("Invalid visa ID format.")
	}

	var visa models.Visa
	if err := h.db.First(&visa, "id = ?", input.Body.VisaID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, huma.Error404NotFound("Visa not found.")
		}
		log.Printf("Error creating application: %v", err)
		return nil, huma.Error500InternalServerError("Failed to create application.")
	}

	status := input.Body.Status
	if status == "" {
		status = "Applied"
	}

	application := models.VisaApplication{
		VisaID:             visa.ID,
		UserEmail:          input.Body.UserEmail,
		ApplicantFirstName: input.Body.ApplicantFirstName,
		ApplicantLastName:  input.Body.ApplicantLastName,
		ApplicantEmail:     input.Body.UserEmail,
		VisaSnapshotFields: models.VisaSnapshotFields{
			Country:           visa.Country,
			VisaType:          visa.VisaType,
			Fee:               visa.Fee,
			Validity:          visa.Validity,
			CountryImage:      visa.CountryImage,
			ApplicationMethod: visa.ApplicationMethod,
		},
		Status:      status,
		AppliedDate: time.Now().UTC(),
	}

	if err := h.db.Create(&application).Error; err != nil {
		log.Printf("Error creating application: %v", err)
		return nil, huma.Error500InternalServerError("Failed to create application.")
	}

	if h.notifier != nil {
		if err := h.notifier.NotifyApplication(application); err != nil {
			log.Printf("Failed to send application notification: %v", err)
		}
	}

	res := &CreateApplicationResponse{}
	res.Body.Success = true
	res.Body.ApplicationID = application.ID
	return res, nil
}

type ListApplicationsRequest struct {
	UserEmail string `query:"userEmail" doc:"Applicant email to list applications for"`
}

type ListApplicationsResponse struct {
	Body []models.VisaApplication
}

func (h *ApplicationHandler) HandleListApplications(ctx context.Context, input *ListApplicationsRequest) (*ListApplicationsResponse, error) {
	if input.UserEmail == "" {
		return nil, huma.Error400BadRequest("User email is required.")
	}

	applications := make([]models.VisaApplication, 0)
	if err := h.db.Find(&applications, "user_email = ?", input.UserEmail).Error; err != nil {
		log.Printf("Error fetching applications: %v", err)
		return nil, huma.Error500InternalServerError("Failed to fetch applications.")
	}

	return &ListApplicationsResponse{Body: applications}, nil
}

type DeleteApplicationRequest struct {
	ID string `path:"id" doc:"Application ID"`
}

type DeleteApplicationResponse struct {
	Body DeleteResult
}

// HandleDeleteApplication cancels an application. Unconditional, no soft delete.
func (h *ApplicationHandler) HandleDeleteApplication(ctx context.Context, input *DeleteApplicationRequest) (*DeleteApplicationResponse, error) {
	if _, err := uuid.Parse(input.ID); err != nil {
		return nil, huma.Error400BadRequest("Invalid ID format.")
	}

	result := h.db.Delete(&models.VisaApplication{}, "id = ?", input.ID)
	if result.Error != nil {
		log.Printf("Error deleting application: %v", result.Error)
		return nil, huma.Error500InternalServerError("Failed to delete application.")
	}

	res := &DeleteApplicationResponse{}
	res.Body.Acknowledged = true
	res.Body.DeletedCount = result.RowsAffected
	return res, nil
}
