package handlers

import (
	"context"
	"errors"
	"log"
	"slices"

	"github.com/danielgtaylor/huma/v2"
	"github.com/freevisa/visa-api/internal/models"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

type VisaHandler struct {
	db *gorm.DB
}

func NewVisaHandler(db *gorm.DB) *VisaHandler {
	return &VisaHandler{db: db}
}

// UpdateResult mirrors the store's raw update descriptor.
type UpdateResult struct {
	Acknowledged  bool  `json:"acknowledged"`
	MatchedCount  int64 `json:"matchedCount"`
	ModifiedCount int64 `json:"modifiedCount"`
}

// DeleteResult mirrors the store's raw delete descriptor.
type DeleteResult struct {
	Acknowledged bool  `json:"acknowledged"`
	DeletedCount int64 `json:"deletedCount"`
}

type ListVisasRequest struct {
	AddedBy string `query:"addedBy" doc:"Only return visas added by this email"`
}

type ListVisasResponse struct {
	Body []models.Visa
}

func (h *VisaHandler) HandleListVisas(ctx context.Context, input *ListVisasRequest) (*ListVisasResponse, error) {
	visas := make([]models.Visa, 0)

	q := h.db
	if input.AddedBy != "" {
		q = q.Where("added_by = ?", input.AddedBy)
	}
	if err := q.Find(&visas).Error; err != nil {
		log.Printf("Error fetching visa data: %v", err)
		return nil, huma.Error500InternalServerError("Failed to fetch visa data.")
	}

	return &ListVisasResponse{Body: visas}, nil
}

type GetVisaRequest struct {
	ID string `path:"id" doc:"Visa ID"`
}

type GetVisaResponse struct {
	Body models.Visa
}

func (h *VisaHandler) HandleGetVisa(ctx context.Context, input *GetVisaRequest) (*GetVisaResponse, error) {
	if _, err := uuid.Parse(input.ID); err != nil {
		return nil, huma.Error400BadRequest("Invalid ID format.")
	}

	var visa models.Visa
	if err := h.db.First(&visa, "id = ?", input.ID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, huma.Error404NotFound("Visa not found.")
		}
		log.Printf("Error fetching visa details: %v", err)
		return nil, huma.Error500InternalServerError("Error fetching visa details.")
	}

	return &GetVisaResponse{Body: visa}, nil
}

type AddVisaRequest struct {
	Body struct {
		CountryImage      string   `json:"countryImage" doc:"URL to country image"`
		Country           string   `json:"country" doc:"Country name"`
		VisaType          string   `json:"visaType" doc:"Visa type, e.g. Tourist visa"`
		ProcessingTime    string   `json:"processingTime" doc:"Expected processing time"`
		RequiredDocuments []string `json:"requiredDocuments" doc:"Required documents"`
		Description       string   `json:"description" doc:"Free-text description"`
		AgeRestriction    int      `json:"ageRestriction" doc:"Minimum applicant age"`
		Fee               float64  `json:"fee" doc:"Fee in USD"`
		Validity          string   `json:"validity" doc:"Validity period"`
		ApplicationMethod string   `json:"applicationMethod" doc:"online or embassy"`
		AddedBy           string   `json:"addedBy" doc:"Email of the user adding the visa"`
	}
}

type AddVisaResponse struct {
	Body struct {
		Message string `json:"message"`
		VisaID  string `json:"visaId"`
	}
}

// HandleAddVisa never rejects a request for missing fields; every absent field
// gets its safe default.
func (h *VisaHandler) HandleAddVisa(ctx context.Context, input *AddVisaRequest) (*AddVisaResponse, error) {
	visa := models.Visa{
		CountryImage:      input.Body.CountryImage,
		Country:           input.Body.Country,
		VisaType:          input.Body.VisaType,
		ProcessingTime:    input.Body.ProcessingTime,
		RequiredDocuments: models.StringList(input.Body.RequiredDocuments),
		Description:       input.Body.Description,
		AgeRestriction:    input.Body.AgeRestriction,
		Fee:               input.Body.Fee,
		Validity:          input.Body.Validity,
		ApplicationMethod: input.Body.ApplicationMethod,
		AddedBy:           input.Body.AddedBy,
	}
	if visa.VisaType == "" {
		visa.VisaType = "Tourist visa"
	}
	if visa.ApplicationMethod == "" {
		visa.ApplicationMethod = "online"
	}
	if visa.RequiredDocuments == nil {
		visa.RequiredDocuments = models.StringList{}
	}

	if err := h.db.Create(&visa).Error; err != nil {
		log.Printf("Error adding visa: %v", err)
		return nil, huma.Error500InternalServerError("Failed to add visa.")
	}

	res := &AddVisaResponse{}
	res.Body.Message = "Visa added successfully!"
	res.Body.VisaID = visa.ID
	return res, nil
}

type UpdateVisaRequest struct {
	ID   string `path:"id" doc:"Visa ID"`
	Body struct {
		// Clients send back whole documents; unknown keys are ignored.
		_                 struct{}  `json:"-" additionalProperties:"true"`
		CountryImage      *string   `json:"countryImage,omitempty"`
		Country           *string   `json:"country,omitempty"`
		VisaType          *string   `json:"visa_type,omitempty"`
		ProcessingTime    *string   `json:"processing_time,omitempty"`
		RequiredDocuments *[]string `json:"required_documents,omitempty"`
		Description       *string   `json:"description,omitempty"`
		AgeRestriction    *int      `json:"age_restriction,omitempty"`
		Fee               *float64  `json:"fee,omitempty"`
		Validity          *string   `json:"validity,omitempty"`
		ApplicationMethod *string   `json:"application_method,omitempty"`
		AddedBy           *string   `json:"addedBy,omitempty"`
	}
}

type UpdateVisaResponse struct {
	Body UpdateResult
}

// HandleUpdateVisa applies set semantics: only the fields present in the body
// are written, everything else is left alone. matchedCount reports whether the
// id resolved; modifiedCount stays zero when the write changes no values. The
// lookup and the write are two store calls with no lock between them.
func (h *VisaHandler) HandleUpdateVisa(ctx context.Context, input *UpdateVisaRequest) (*UpdateVisaResponse, error) {
	if _, err := uuid.Parse(input.ID); err != nil {
		return nil, huma.Error400BadRequest("Invalid ID format.")
	}

	res := &UpdateVisaResponse{}
	res.Body.Acknowledged = true

	var existing models.Visa
	if err := h.db.First(&existing, "id = ?", input.ID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return res, nil
		}
		log.Printf("Error updating visa: %v", err)
		return nil, huma.Error500InternalServerError("Failed to update visa.")
	}
	res.Body.MatchedCount = 1

	updates := map[string]interface{}{}
	changed := false
	if input.Body.CountryImage != nil {
		updates["country_image"] = *input.Body.CountryImage
		changed = changed || *input.Body.CountryImage != existing.CountryImage
	}
	if input.Body.Country != nil {
		updates["country"] = *input.Body.Country
		changed = changed || *input.Body.Country != existing.Country
	}
	if input.Body.VisaType != nil {
		updates["visa_type"] = *input.Body.VisaType
		changed = changed || *input.Body.VisaType != existing.VisaType
	}
	if input.Body.ProcessingTime != nil {
		updates["processing_time"] = *input.Body.ProcessingTime
		changed = changed || *input.Body.ProcessingTime != existing.ProcessingTime
	}
	if input.Body.RequiredDocuments != nil {
		docs := models.StringList(*input.Body.RequiredDocuments)
		updates["required_documents"] = docs
		changed = changed || !slices.Equal(docs, existing.RequiredDocuments)
	}
	if input.Body.Description != nil {
		updates["description"] = *input.Body.Description
		changed = changed || *input.Body.Description != existing.Description
	}
	if input.Body.AgeRestriction != nil {
		updates["age_restriction"] = *input.Body.AgeRestriction
		changed = changed || *input.Body.AgeRestriction != existing.AgeRestriction
	}
	if input.Body.Fee != nil {
		updates["fee"] = *input.Body.Fee
		changed = changed || *input.Body.Fee != existing.Fee
	}
	if input.Body.Validity != nil {
		updates["validity"] = *input.Body.Validity
		changed = changed || *input.Body.Validity != existing.Validity
	}
	if input.Body.ApplicationMethod != nil {
		updates["application_method"] = *input.Body.ApplicationMethod
		changed = changed || *input.Body.ApplicationMethod != existing.ApplicationMethod
	}
	if input.Body.AddedBy != nil {
		updates["added_by"] = *input.Body.AddedBy
		changed = changed || *input.Body.AddedBy != existing.AddedBy
	}

	if len(updates) == 0 {
		return res, nil
	}

	if err := h.db.Model(&models.Visa{}).Where("id = ?", input.ID).Updates(updates).Error; err != nil {
		log.Printf("Error updating visa: %v", err)
		return nil, huma.Error500InternalServerError("Failed to update visa.")
	}

	if changed {
		res.Body.ModifiedCount = 1
	}
	return res, nil
}

type DeleteVisaRequest struct {
	ID string `path:"id" doc:"Visa ID"`
}

type DeleteVisaResponse struct {
	Body DeleteResult
}

// HandleDeleteVisa removes the offering only. Applications that reference it
// are left untouched: they are snapshots, not joins.
func (h *VisaHandler) HandleDeleteVisa(ctx context.Context, input *DeleteVisaRequest) (*DeleteVisaResponse, error) {
	if _, err := uuid.Parse(input.ID); err != nil {
		return nil, huma.Error400BadRequest("Invalid ID format.")
	}

	result := h.db.Delete(&models.Visa{}, "id = ?", input.ID)
	if result.Error != nil {
		log.Printf("Error deleting visa: %v", result.Error)
		return nil, huma.Error500InternalServerError("Failed to delete visa.")
	}

	res := &DeleteVisaResponse{}
	res.Body.Acknowledged = true
	res.Body.DeletedCount = result.RowsAffected
	return res, nil
}
