package utils

import (
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Serialize converts a raw database document into a plain, JSON-safe value:
// ObjectIDs become hex strings, bson documents become plain maps, datetimes
// become RFC3339 strings. Sequences are mapped element-wise, everything else
// passes through unchanged. Serialize is idempotent and returns nil for nil.
func Serialize(doc interface{}) interface{} {
	switch v := doc.(type) {
	case nil:
		return nil
	case primitive.ObjectID:
		return v.Hex()
	case primitive.DateTime:
		return v.Time().UTC().Format(time.RFC3339)
	case time.Time:
		return v.UTC().Format(time.RFC3339)
	case bson.D:
		out := make(map[string]interface{}, len(v))
		for _, e := range v {
			out[e.Key] = Serialize(e.Value)
		}
		return out
	case bson.M:
		return serializeMap(v)
	case map[string]interface{}:
		return serializeMap(v)
	case primitive.A:
		return serializeSlice(v)
	case []interface{}:
		return serializeSlice(v)
	case []bson.M:
		out := make([]interface{}, len(v))
		for i, e := range v {
			out[i] = Serialize(e)
		}
		return out
	case []bson.D:
		out := make([]interface{}, len(v))
		for i, e := range v {
			out[i] = Serialize(e)
		}
		return out
	case []map[string]interface{}:
		out := make([]interface{}, len(v))
		for i, e := range v {
			out[i] = Serialize(e)
		}
		return out
	default:
		return v
	}
}

func serializeMap(m map[string]interface{}) map[string]interface{} {
	out := make(map[string]interface{}, len(m))
	for k, v := range m {
		out[k] = Serialize(v)
	}
	return out
}

func serializeSlice(s []interface{}) []interface{} {
	out := make([]interface{}, len(s))
	for i, v := range s {
		out[i] = Serialize(v)
	}
	return out
}
