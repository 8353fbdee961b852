package validators

import "go.mongodb.org/mongo-driver/bson"

var UserValidator = bson.M{
	"$jsonSchema": bson.M{
		"bsonType": "object",
		"required": []string{
			"name",
			"email",
			"role",
			"created_at",
		},
		"additionalProperties": true,

		"properties": bson.M{
			"_id": bson.M{
				"bsonType":  "string",
				"minLength": 24,
				"maxLength": 24,
			},

			"name": bson.M{
				"bsonType":  "string",
				"minLength": 2,
				"maxLength": 100,
			},

			"email": bson.M{
				"bsonType": "string",
				"pattern":  "^[^@\\s]+@[^@\\s]+\\.[^@\\s]+$",
			},

			"role": bson.M{
				"enum": []string{"user", "host", "admin"},
			},

			"saved_properties": bson.M{
				"bsonType": "array",
				"items": bson.M{
					"bsonType":  "string",
					"minLength": 24,
					"maxLength": 24,
				},
			},

			"created_at": bson.M{
				"bsonType": "date",
			},
		},
	},
}
