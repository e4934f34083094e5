package models

import (
	"testing"
	"time"

	"github.com/stretchr/testify/require"
	"go.mongodb.org/mongo-driver/bson"
)

func TestEventDateRoundTrip(t *testing.T) {
	start := time.Date(2024, 6, 15, 9, 0, 0, 0, time.UTC)
	end := time.Date(2024, 6, 15, 17, 30, 0, 0, time.UTC)

	event := Event{
		Title:     "GopherCon Nairobi",
		Category:  CategoryConference,
		StartDate: start,
		EndDate:   end,
		Location:  Location{Type: LocationPhysical, Details: "Sarit Centre, Nairobi"},
		CreatedAt: time.Now().UTC().Truncate(time.Millisecond),
		UpdatedAt: time.Now().UTC().Truncate(time.Millisecond),
	}

	raw, err := bson.Marshal(event)
	require.NoError(t, err)

	var decoded Event
	require.NoError(t, bson.Unmarshal(raw, &decoded))

	// BSON datetimes are millisecond precision; these instants round-trip
	// exactly.
	require.True(t, decoded.StartDate.Equal(start), "start date changed: %v != %v", decoded.StartDate, start)
	require.True(t, decoded.EndDate.Equal(end))
	require.True(t, decoded.CreatedAt.Equal(event.CreatedAt))
	require.Equal(t, event.Title, decoded.Title)
	require.Equal(t, event.Location, decoded.Location)
}

func TestStatListDecodesCanonicalShape(t *testing.T) {
	doc := bson.M{
		"title": "DevFest",
		"stats": bson.A{
			bson.M{"title": "Attendees", "value": "250"},
			bson.M{"title": "Talks", "value": "18"},
		},
	}

	raw, err := bson.Marshal(doc)
	require.NoError(t, err)

	var event Event
	require.NoError(t, bson.Unmarshal(raw, &event))
	require.Equal(t, StatList{
		{Title: "Attendees", Value: "250"},
		{Title: "Talks", Value: "18"},
	}, event.Stats)
}

func TestStatListDecodesLegacyShape(t *testing.T) {
	doc := bson.M{
		"title": "DevFest 2022",
		"stats": bson.M{
			"attendees":  250,
			"engagement": 80,
			"feedback":   "great turnout",
		},
	}

	raw, err := bson.Marshal(doc)
	require.NoError(t, err)

	var event Event
	require.NoError(t, bson.Unmarshal(raw, &event))
	require.Equal(t, StatList{
		{Title: "Attendees", Value: "250"},
		{Title: "Engagement", Value: "80"},
		{Title: "Feedback", Value: "great turnout"},
	}, event.Stats)
}

func TestStatListDecodesPartialLegacyShape(t *testing.T) {
	raw, err := bson.Marshal(bson.M{"stats": bson.M{"feedback": "good"}})
	require.NoError(t, err)

	var event Event
	require.NoError(t, bson.Unmarshal(raw, &event))
	require.Equal(t, StatList{{Title: "Feedback", Value: "good"}}, event.Stats)
}

func TestEventDecodeIgnoresUnknownFields(t *testing.T) {
	doc := bson.M{
		"title":        "Meetup",
		"category":     CategoryMeetup,
		"legacyField":  "ignored",
		"anotherExtra": 42,
	}

	raw, err := bson.Marshal(doc)
	require.NoError(t, err)

	var event Event
	require.NoError(t, bson.Unmarshal(raw, &event))
	require.Equal(t, "Meetup", event.Title)
	require.Equal(t, CategoryMeetup, event.Category)
}

func TestIsValidCategory(t *testing.T) {
	for _, c := range []string{CategoryConference, CategoryMeetup, CategoryHackathon, CategoryWorkshop, CategoryXSpace} {
		require.True(t, IsValidCategory(c))
	}
	require.False(t, IsValidCategory("webinar"))
	require.False(t, IsValidCategory(""))
}
