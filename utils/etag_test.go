package utils

import (
	"testing"
	"time"

	"github.com/stretchr/testify/require"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

func TestGenerateETag(t *testing.T) {
	id := primitive.NewObjectID()
	at := time.Date(2024, 6, 15, 9, 0, 0, 0, time.UTC)

	tag := GenerateETag(id, at)
	require.True(t, len(tag) > 2)
	require.Equal(t, byte('"'), tag[0])
	require.Equal(t, byte('"'), tag[len(tag)-1])

	// deterministic for the same inputs, different after a mutation
	require.Equal(t, tag, GenerateETag(id, at))
	require.NotEqual(t, tag, GenerateETag(id, at.Add(time.Millisecond)))
	require.NotEqual(t, tag, GenerateETag(primitive.NewObjectID(), at))
}
