package validators

import "go.mongodb.org/mongo-driver/bson"

var CategoryValidator = bson.M{
	"$jsonSchema": bson.M{
		"bsonType": "object",
		"required": []string{"_id", "name"},
		"properties": bson.M{
			"_id": bson.M{"bsonType": "long"},
			"name": bson.M{
				"bsonType":  "string",
				"minLength": 3,
				"maxLength": 15,
			},
		},
	},
}

var ProductValidator = bson.M{
	"$jsonSchema": bson.M{
		"bsonType": "object",
		"required": []string{"_id", "name", "name_folded", "suggested_price", "category_id"},
		"properties": bson.M{
			"_id":             bson.M{"bsonType": "long"},
			"name":            bson.M{"bsonType": "string", "minLength": 1},
			"name_folded":     bson.M{"bsonType": "string"},
			"suggested_price": bson.M{"bsonType": "double", "minimum": 0},
			"category_id":     bson.M{"bsonType": "long"},
		},
	},
}

var LineItemValidator = bson.M{
	"$jsonSchema": bson.M{
		"bsonType": "object",
		"required": []string{"_id", "sales_id", "product_id", "unit_price", "amount"},
		"properties": bson.M{
			"_id":        bson.M{"bsonType": "long"},
			"sales_id":   bson.M{"bsonType": "long"},
			"product_id": bson.M{"bsonType": "long"},
			"unit_price": bson.M{"bsonType": "double", "exclusiveMinimum": true, "minimum": 0},
			"amount":     bson.M{"bsonType": []string{"int", "long"}, "minimum": 1},
		},
	},
}

var PermissionValidator = bson.M{
	"$jsonSchema": bson.M{
		"bsonType": "object",
		"required": []string{"_id", "description"},
		"properties": bson.M{
			"_id": bson.M{"bsonType": "long"},
			"description": bson.M{
				"bsonType":  "string",
				"minLength": 3,
				"maxLength": 30,
				"pattern":   `^[^a-z]*$`,
			},
		},
	},
}
