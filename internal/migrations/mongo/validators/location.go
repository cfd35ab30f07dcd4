package validators

import "go.mongodb.org/mongo-driver/bson"

var StateValidator = bson.M{
	"$jsonSchema": bson.M{
		"bsonType": "object",
		"required": []string{"_id", "name", "initials", "name_folded"},
		"properties": bson.M{
			"_id":         bson.M{"bsonType": "long"},
			"name":        bson.M{"bsonType": "string", "minLength": 1},
			"name_folded": bson.M{"bsonType": "string"},
			"initials": bson.M{
				"bsonType":  "string",
				"minLength": 2,
				"maxLength": 2,
			},
		},
	},
}

var CityValidator = bson.M{
	"$jsonSchema": bson.M{
		"bsonType": "object",
		"required": []string{"_id", "name", "name_folded", "state_id"},
		"properties": bson.M{
			"_id": bson.M{"bsonType": "long"},
			"name": bson.M{
				"bsonType":  "string",
				"minLength": 2,
				"maxLength": 100,
			},
			"name_folded": bson.M{"bsonType": "string"},
			"state_id":    bson.M{"bsonType": "long"},
		},
	},
}

var AddressValidator = bson.M{
	"$jsonSchema": bson.M{
		"bsonType": "object",
		"required": []string{"_id", "street", "street_lower", "number", "cep", "city_id"},
		"properties": bson.M{
			"_id":          bson.M{"bsonType": "long"},
			"street":       bson.M{"bsonType": "string", "minLength": 1},
			"street_lower": bson.M{"bsonType": "string"},
			"number":       bson.M{"bsonType": []string{"int", "long"}},
			"complement":   bson.M{"bsonType": "string"},
			"cep": bson.M{
				"bsonType": "string",
				"pattern":  `^\d{8}$`,
			},
			"city_id": bson.M{"bsonType": "long"},
		},
	},
}
