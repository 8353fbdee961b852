package validators

import "go.mongodb.org/mongo-driver/bson"

var PropertyValidator = bson.M{
	"$jsonSchema": bson.M{
		"bsonType": "object",
		"required": []string{
			"host",
			"title",
			"description",
			"type",
			"location",
			"price",
			"rules",
			"rooms",
			"status",
			"created_at",
		},
		"additionalProperties": true,

		"properties": bson.M{
			"_id": bson.M{
				"bsonType":  "string",
				"minLength": 24,
				"maxLength": 24,
			},

			"host": bson.M{
				"bsonType":  "string",
				"minLength": 24,
				"maxLength": 24,
			},

			"title": bson.M{
				"bsonType":  "string",
				"minLength": 3,
				"maxLength": 150,
			},

			"description": bson.M{
				"bsonType":  "string",
				"maxLength": 5000,
			},

			"type": bson.M{
				"enum": []string{"Hotel", "Apartment", "House", "Villa", "Cabin", "Cottage", "Other"},
			},

			"location": bson.M{
				"bsonType": "object",
				"required": []string{"address", "city", "state", "country"},
				"properties": bson.M{
					"address": bson.M{"bsonType": "string"},
					"city":    bson.M{"bsonType": "string"},
					"state":   bson.M{"bsonType": "string"},
					"country": bson.M{"bsonType": "string"},
				},
			},

			"price": bson.M{
				"bsonType": "object",
				"required": []string{"regular"},
				"properties": bson.M{
					"regular": bson.M{
						"bsonType": []string{"double", "int", "long", "decimal"},
						"minimum":  0,
					},
				},
			},

			"rules": bson.M{
				"bsonType": "object",
				"required": []string{"max_guests"},
				"properties": bson.M{
					"max_guests": bson.M{
						"bsonType": "int",
						"minimum":  1,
					},
				},
			},

			"rooms": bson.M{
				"bsonType": "object",
				"required": []string{"beds"},
				"properties": bson.M{
					"beds": bson.M{
						"bsonType": "int",
						"minimum":  1,
					},
				},
			},

			"status": bson.M{
				"enum": []string{"active", "inactive", "pending", "rejected"},
			},

			"created_at": bson.M{
				"bsonType": "date",
			},
		},
	},
}
