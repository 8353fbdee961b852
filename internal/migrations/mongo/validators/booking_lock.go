package validators

import "go.mongodb.org/mongo-driver/bson"

var BookingLockValidator = bson.M{
	"$jsonSchema": bson.M{
		"bsonType": "object",
		"required": []string{"expires_at"},
		"properties": bson.M{
			"_id": bson.M{
				"bsonType": "string",
			},
			"expires_at": bson.M{
				"bsonType": "date",
			},
		},
	},
}
