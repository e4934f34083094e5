package controllers

import (
	"context"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.uber.org/zap"

	"github.com/phillip/lbd-events-go/httperr"
	"github.com/phillip/lbd-events-go/models"
	"github.com/phillip/lbd-events-go/repositories"
	"github.com/phillip/lbd-events-go/utils"
)

// ---------------- CREATE ----------------
func CreateEvent(repo repositories.EventRepository, log *zap.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		var input eventInput
		if err := c.ShouldBindJSON(&input); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
			return
		}

		// The dashboard form validates before submitting, but the database
		// enforces nothing, so the critical invariants are re-checked here.
		if err := input.validate(); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
			return
		}

		event := models.Event{
			Title:            input.Title,
			BannerURL:        input.BannerURL,
			Category:         input.Category,
			Description:      input.Description,
			StartDate:        input.StartDate.UTC(),
			EndDate:          input.EndDate.UTC(),
			Location:         input.Location,
			RegistrationLink: input.RegistrationLink,
			Gallery:          input.Gallery,
			AlbumURL:         input.AlbumURL,
			Stats:            input.Stats,
			Tags:             input.Tags,
		}

		ctx, cancel := context.WithTimeout(c.Request.Context(), 5*time.Second)
		defer cancel()

		id, err := repo.Create(ctx, &event)
		if err != nil {
			log.Error("create event failed", zap.Error(err))
			respondError(c, err)
			return
		}

		c.JSON(http.StatusCreated, gin.H{"id": id.Hex(), "event": event})
	}
}

// ---------------- LIST ----------------
func ListEvents(repo repositories.EventRepository, log *zap.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		ctx, cancel := context.WithTimeout(c.Request.Context(), 10*time.Second)
		defer cancel()

		var (
			events []models.Event
			err    error
		)
		if category := c.Query("category"); category != "" {
			if !models.IsValidCategory(category) {
				c.JSON(http.StatusBadRequest, gin.H{"error": "unknown category"})
				return
			}
			events, err = repo.GetByCategory(ctx, category)
		} else {
			events, err = repo.GetAll(ctx)
		}
		if err != nil {
			log.Error("list events failed", zap.Error(err))
			respondError(c, err)
			return
		}

		if len(events) == 0 {
			c.JSON(http.StatusOK, []models.Event{})
			return
		}

		// The list is createdAt-ordered; the freshest update can be anywhere.
		latest := events[0]
		for _, ev := range events {
			if ev.UpdatedAt.After(latest.UpdatedAt) {
				latest = ev
			}
		}

		etag := utils.GenerateETag(latest.ID, latest.UpdatedAt)
		if match := c.GetHeader("If-None-Match"); match != "" && match == etag {
			c.Status(http.StatusNotModified)
			return
		}
		c.Header("ETag", etag)
		c.Header("Last-Modified", latest.UpdatedAt.UTC().Format(http.TimeFormat))

		c.JSON(http.StatusOK, events)
	}
}

// ---------------- GET ----------------
func GetEvent(repo repositories.EventRepository, log *zap.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		eventID, err := primitive.ObjectIDFromHex(c.Param("id"))
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "invalid event id"})
			return
		}

		ctx, cancel := context.WithTimeout(c.Request.Context(), 5*time.Second)
		defer cancel()

		event, err := repo.GetByID(ctx, eventID)
		if err != nil {
			respondError(c, err)
			return
		}

		etag := utils.GenerateETag(event.ID, event.UpdatedAt)
		if match := c.GetHeader("If-None-Match"); match != "" && match == etag {
			c.Status(http.StatusNotModified)
			return
		}
		c.Header("ETag", etag)

		c.JSON(http.StatusOK, event)
	}
}

// ---------------- UPDATE ----------------
func UpdateEvent(repo repositories.EventRepository, log *zap.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		eventID, err := primitive.ObjectIDFromHex(c.Param("id"))
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "invalid event id"})
			return
		}

		var input eventPatchInput
		if err := c.ShouldBindJSON(&input); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
			return
		}

		if err := input.validate(); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
			return
		}

		ctx, cancel := context.WithTimeout(c.Request.Context(), 5*time.Second)
		defer cancel()

		// A lone date change is checked against the stored counterpart so a
		// patch cannot invert the date order.
		if (input.StartDate != nil) != (input.EndDate != nil) {
			existing, err := repo.GetByID(ctx, eventID)
			if err != nil {
				respondError(c, err)
				return
			}
			start, end := existing.StartDate, existing.EndDate
			if input.StartDate != nil {
				start = *input.StartDate
			}
			if input.EndDate != nil {
				end = *input.EndDate
			}
			if !end.After(start) {
				c.JSON(http.StatusBadRequest, gin.H{"error": "end date must be after start date"})
				return
			}
		}

		updated, err := repo.Update(ctx, eventID, input.toPatch())
		if err != nil {
			log.Error("update event failed", zap.String("id", eventID.Hex()), zap.Error(err))
			respondError(c, err)
			return
		}

		c.JSON(http.StatusOK, gin.H{
			"message": "event updated successfully",
			"event":   updated,
		})
	}
}

// ---------------- UPDATE STATS & GALLERY ----------------
// Restricted to the post-event curation fields so it never races general
// edits outside {stats, gallery, albumUrl}.
func UpdateEventStats(repo repositories.EventRepository, log *zap.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		eventID, err := primitive.ObjectIDFromHex(c.Param("id"))
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "invalid event id"})
			return
		}

		var input struct {
			Stats    models.StatList `json:"stats"`
			Gallery  []string        `json:"gallery"`
			AlbumURL *string         `json:"albumUrl"`
		}
		if err := c.ShouldBindJSON(&input); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
			return
		}

		// Manually pasted gallery URLs; share-link hosts cannot render.
		for _, imageURL := range input.Gallery {
			if err := utils.ValidateImageURL(imageURL); err != nil {
				c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
				return
			}
		}

		// Drop rows left empty in the form.
		stats := make(models.StatList, 0, len(input.Stats))
		for _, s := range input.Stats {
			if s.Title != "" && s.Value != "" {
				stats = append(stats, s)
			}
		}

		gallery := input.Gallery
		if gallery == nil {
			gallery = []string{}
		}

		ctx, cancel := context.WithTimeout(c.Request.Context(), 5*time.Second)
		defer cancel()

		if err := repo.UpdateStatsAndGallery(ctx, eventID, stats, gallery, input.AlbumURL); err != nil {
			log.Error("update event stats failed", zap.String("id", eventID.Hex()), zap.Error(err))
			respondError(c, err)
			return
		}

		c.JSON(http.StatusOK, gin.H{"message": "event stats updated successfully"})
	}
}

// ---------------- DELETE ----------------
func DeleteEvent(repo repositories.EventRepository, log *zap.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		eventID, err := primitive.ObjectIDFromHex(c.Param("id"))
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "invalid event id"})
			return
		}

		ctx, cancel := context.WithTimeout(c.Request.Context(), 5*time.Second)
		defer cancel()

		// Hard delete only. Banner and gallery assets stay on the CDN;
		// cleanup happens out of band via the upload delete endpoint.
		if err := repo.Delete(ctx, eventID); err != nil {
			log.Error("delete event failed", zap.String("id", eventID.Hex()), zap.Error(err))
			respondError(c, err)
			return
		}

		c.JSON(http.StatusOK, gin.H{
			"message": "event deleted successfully",
			"id":      eventID.Hex(),
		})
	}
}

func respondError(c *gin.Context, err error) {
	appErr := httperr.FromError(err)
	c.JSON(appErr.Status, gin.H{"error": appErr.Message})
}
