package models

import (
	"fmt"
	"strconv"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/bsontype"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Event categories
const (
	CategoryConference = "conference"
	CategoryMeetup     = "meetup"
	CategoryHackathon  = "hackathon"
	CategoryWorkshop   = "workshop"
	CategoryXSpace     = "x-space"
)

var eventCategories = map[string]bool{
	CategoryConference: true,
	CategoryMeetup:     true,
	CategoryHackathon:  true,
	CategoryWorkshop:   true,
	CategoryXSpace:     true,
}

// IsValidCategory reports whether c is one of the known event categories.
func IsValidCategory(c string) bool {
	return eventCategories[c]
}

// Location types
const (
	LocationPhysical = "physical"
	LocationVirtual  = "virtual"
)

// Location is either a physical venue address or virtual access details.
type Location struct {
	Type    string `bson:"type" json:"type"` // physical, virtual
	Details string `bson:"details" json:"details"`
}

// Stat is one free-form metric shown on a past event, e.g. "Attendees" / "250".
type Stat struct {
	Title string `bson:"title" json:"title"`
	Value string `bson:"value" json:"value"`
}

// StatList is the canonical open-ended stats shape. Older documents stored a
// fixed {attendees, engagement, feedback} record; decoding converts those into
// the list form so every subsequent write persists the canonical shape.
type StatList []Stat

type legacyStats struct {
	Attendees  int    `bson:"attendees,omitempty"`
	Engagement int    `bson:"engagement,omitempty"`
	Feedback   string `bson:"feedback,omitempty"`
}

func (l legacyStats) toList() StatList {
	var stats StatList
	if l.Attendees != 0 {
		stats = append(stats, Stat{Title: "Attendees", Value: strconv.Itoa(l.Attendees)})
	}
	if l.Engagement != 0 {
		stats = append(stats, Stat{Title: "Engagement", Value: strconv.Itoa(l.Engagement)})
	}
	if l.Feedback != "" {
		stats = append(stats, Stat{Title: "Feedback", Value: l.Feedback})
	}
	return stats
}

// UnmarshalBSONValue accepts both the canonical array shape and the legacy
// embedded-document shape.
func (s *StatList) UnmarshalBSONValue(t bsontype.Type, data []byte) error {
	switch t {
	case bsontype.Array:
		var stats []Stat
		if err := bson.UnmarshalValue(t, data, &stats); err != nil {
			return err
		}
		*s = stats
		return nil
	case bsontype.EmbeddedDocument:
		var legacy legacyStats
		if err := bson.Unmarshal(data, &legacy); err != nil {
			return err
		}
		*s = legacy.toList()
		return nil
	case bsontype.Null, bsontype.Undefined:
		*s = nil
		return nil
	default:
		return fmt.Errorf("cannot decode %s into a stat list", t)
	}
}

type Event struct {
	ID               primitive.ObjectID `bson:"_id,omitempty" json:"id"`
	Title            string             `bson:"title" json:"title"`
	BannerURL        string             `bson:"bannerUrl,omitempty" json:"bannerUrl,omitempty"`
	Category         string             `bson:"category" json:"category"` // conference, meetup, hackathon, workshop, x-space
	Description      string             `bson:"description,omitempty" json:"description,omitempty"`
	StartDate        time.Time          `bson:"startDate" json:"startDate"`
	EndDate          time.Time          `bson:"endDate" json:"endDate"`
	Location         Location           `bson:"location" json:"location"`
	RegistrationLink string             `bson:"registrationLink" json:"registrationLink"`
	Gallery          []string           `bson:"gallery,omitempty" json:"gallery,omitempty"`
	AlbumURL         string             `bson:"albumUrl,omitempty" json:"albumUrl,omitempty"`
	Stats            StatList           `bson:"stats,omitempty" json:"stats,omitempty"`
	Tags             []string           `bson:"tags,omitempty" json:"tags,omitempty"`
	CreatedAt        time.Time          `bson:"createdAt" json:"createdAt"`
	UpdatedAt        time.Time          `bson:"updatedAt" json:"updatedAt"`
}
