package utils

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

func TestSerializeNil(t *testing.T) {
	assert.Nil(t, Serialize(nil))
}

func TestSerializeObjectID(t *testing.T) {
	oid := primitive.NewObjectID()
	doc := bson.M{
		"_id":   oid,
		"title": "hello",
	}

	out, ok := Serialize(doc).(map[string]interface{})
	require.True(t, ok)
	assert.Equal(t, oid.Hex(), out["_id"])
	assert.Equal(t, "hello", out["title"])
}

func TestSerializeNestedIdentifiers(t *testing.T) {
	inner := primitive.NewObjectID()
	doc := bson.M{
		"_id": primitive.NewObjectID(),
		"related": bson.M{
			"_id":  inner,
			"name": "nested",
		},
		"refs": bson.A{
			bson.M{"_id": inner},
		},
	}

	out := Serialize(doc).(map[string]interface{})
	related := out["related"].(map[string]interface{})
	assert.Equal(t, inner.Hex(), related["_id"])

	refs := out["refs"].([]interface{})
	first := refs[0].(map[string]interface{})
	assert.Equal(t, inner.Hex(), first["_id"])
}

func TestSerializeDates(t *testing.T) {
	ts := time.Date(2024, 6, 1, 12, 0, 0, 0, time.UTC)
	doc := bson.M{
		"createdAt": primitive.NewDateTimeFromTime(ts),
		"updatedAt": ts,
	}

	out := Serialize(doc).(map[string]interface{})
	assert.Equal(t, "2024-06-01T12:00:00Z", out["createdAt"])
	assert.Equal(t, "2024-06-01T12:00:00Z", out["updatedAt"])
}

func TestSerializeSequenceElementWise(t *testing.T) {
	docs := []bson.M{
		{"_id": primitive.NewObjectID()},
		{"_id": primitive.NewObjectID()},
	}

	out, ok := Serialize(docs).([]interface{})
	require.True(t, ok)
	require.Len(t, out, 2)
	for i, item := range out {
		m := item.(map[string]interface{})
		assert.Equal(t, docs[i]["_id"].(primitive.ObjectID).Hex(), m["_id"])
	}
}

func TestSerializeEmptyList(t *testing.T) {
	out, ok := Serialize([]interface{}{}).([]interface{})
	require.True(t, ok)
	assert.Empty(t, out)
}

func TestSerializeBsonD(t *testing.T) {
	oid := primitive.NewObjectID()
	doc := bson.D{
		{Key: "_id", Value: oid},
		{Key: "n", Value: int64(3)},
	}

	out := Serialize(doc).(map[string]interface{})
	assert.Equal(t, oid.Hex(), out["_id"])
	assert.Equal(t, int64(3), out["n"])
}

func TestSerializeIdempotent(t *testing.T) {
	doc := bson.M{
		"_id":       primitive.NewObjectID(),
		"title":     "stable",
		"tags":      bson.A{"go", "mongo"},
		"createdAt": primitive.NewDateTimeFromTime(time.Now()),
		"nested":    bson.M{"_id": primitive.NewObjectID(), "n": 1},
	}

	once := Serialize(doc)
	twice := Serialize(once)
	assert.Equal(t, once, twice)
}

func TestSerializePassesScalarsThrough(t *testing.T) {
	assert.Equal(t, "s", Serialize("s"))
	assert.Equal(t, 42, Serialize(42))
	assert.Equal(t, true, Serialize(true))
	assert.Equal(t, 1.5, Serialize(1.5))
}
