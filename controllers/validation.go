package controllers

import (
	"errors"
	"time"

	"github.com/go-playground/validator/v10"

	"github.com/phillip/lbd-events-go/models"
	"github.com/phillip/lbd-events-go/repositories"
)

var validate = validator.New()

type eventInput struct {
	Title            string          `json:"title" validate:"required"`
	BannerURL        string          `json:"bannerUrl" validate:"omitempty,url"`
	Category         string          `json:"category" validate:"required"`
	Description      string          `json:"description"`
	StartDate        time.Time       `json:"startDate" validate:"required"`
	EndDate          time.Time       `json:"endDate" validate:"required"`
	Location         models.Location `json:"location"`
	RegistrationLink string          `json:"registrationLink" validate:"required,url"`
	Gallery          []string        `json:"gallery"`
	AlbumURL         string          `json:"albumUrl" validate:"omitempty,url"`
	Stats            models.StatList `json:"stats"`
	Tags             []string        `json:"tags"`
}

func (in *eventInput) validate() error {
	if err := validate.Struct(in); err != nil {
		return err
	}
	if !models.IsValidCategory(in.Category) {
		return errors.New("unknown category")
	}
	if in.Location.Type != models.LocationPhysical && in.Location.Type != models.LocationVirtual {
		return errors.New("location type must be physical or virtual")
	}
	if in.Location.Details == "" {
		return errors.New("location details are required")
	}
	if !in.EndDate.After(in.StartDate) {
		return errors.New("end date must be after start date")
	}
	return nil
}

type eventPatchInput struct {
	Title            *string          `json:"title"`
	BannerURL        *string          `json:"bannerUrl"`
	Category         *string          `json:"category"`
	Description      *string          `json:"description"`
	StartDate        *time.Time       `json:"startDate"`
	EndDate          *time.Time       `json:"endDate"`
	Location         *models.Location `json:"location"`
	RegistrationLink *string          `json:"registrationLink"`
	Gallery          *[]string        `json:"gallery"`
	AlbumURL         *string          `json:"albumUrl"`
	Stats            *models.StatList `json:"stats"`
	Tags             *[]string        `json:"tags"`
}

func (in *eventPatchInput) validate() error {
	if in.Title != nil && *in.Title == "" {
		return errors.New("title cannot be empty")
	}
	if in.Category != nil && !models.IsValidCategory(*in.Category) {
		return errors.New("unknown category")
	}
	if in.RegistrationLink != nil {
		if err := validate.Var(*in.RegistrationLink, "required,url"); err != nil {
			return errors.New("registration link must be a valid url")
		}
	}
	if in.Location != nil {
		if in.Location.Type != models.LocationPhysical && in.Location.Type != models.LocationVirtual {
			return errors.New("location type must be physical or virtual")
		}
		if in.Location.Details == "" {
			return errors.New("location details are required")
		}
	}
	// Order is only checkable here when both ends travel together; a lone
	// date change is checked against the stored record by the update
	// handler.
	if in.StartDate != nil && in.EndDate != nil && !in.EndDate.After(*in.StartDate) {
		return errors.New("end date must be after start date")
	}
	return nil
}

func (in *eventPatchInput) toPatch() repositories.EventPatch {
	patch := repositories.EventPatch{
		Title:            in.Title,
		BannerURL:        in.BannerURL,
		Category:         in.Category,
		Description:      in.Description,
		Location:         in.Location,
		RegistrationLink: in.RegistrationLink,
		Gallery:          in.Gallery,
		AlbumURL:         in.AlbumURL,
		Stats:            in.Stats,
		Tags:             in.Tags,
	}
	if in.StartDate != nil {
		t := in.StartDate.UTC()
		patch.StartDate = &t
	}
	if in.EndDate != nil {
		t := in.EndDate.UTC()
		patch.EndDate = &t
	}
	return patch
}
