package validators

import "go.mongodb.org/mongo-driver/bson"

var BookingValidator = bson.M{
	"$jsonSchema": bson.M{
		"bsonType": "object",
		"required": []string{
			"property",
			"guest",
			"check_in_date",
			"check_out_date",
			"total_guests",
			"total_price",
			"payment_status",
			"booking_status",
			"created_at",
		},
		"additionalProperties": true,

		"properties": bson.M{
			"_id": bson.M{
				"bsonType":  "string",
				"minLength": 24,
				"maxLength": 24,
			},

			"property": bson.M{
				"bsonType":  "string",
				"minLength": 24,
				"maxLength": 24,
			},

			"guest": bson.M{
				"bsonType":  "string",
				"minLength": 24,
				"maxLength": 24,
			},

			"check_in_date": bson.M{
				"bsonType": "date",
			},

			"check_out_date": bson.M{
				"bsonType": "date",
			},

			"total_guests": bson.M{
				"bsonType": "int",
				"minimum":  1,
			},

			"total_price": bson.M{
				"bsonType": []string{"double", "int", "long", "decimal"},
				"minimum":  0,
			},

			"payment_status": bson.M{
				"enum": []string{"pending", "paid", "failed", "refunded"},
			},

			"booking_status": bson.M{
				"enum": []string{"pending", "confirmed", "canceled", "completed"},
			},

			"special_requests": bson.M{
				"bsonType":  "string",
				"maxLength": 1000,
			},

			"cancellation_reason": bson.M{
				"bsonType":  "string",
				"maxLength": 1000,
			},

			"created_at": bson.M{
				"bsonType": "date",
			},
		},
	},
}
