package mongodb

import (
	"go.mongodb.org/mongo-driver/v2/bson"

	"careerbridge/internal/common"
)

const (
	studentsCollection      = "students"
	companiesCollection     = "companies"
	opportunitiesCollection = "opportunities"
	applicationsCollection  = "applications"
)

func objectIDs(ids []common.ID) ([]bson.ObjectID, error) {
	oids := make([]bson.ObjectID, 0, len(ids))
	for _, id := range ids {
		oid, err := id.ObjectID()
		if err != nil {
			return nil, err
		}
		oids = append(oids, oid)
	}
	return oids, nil
}

func idsFromObjectIDs(oids []bson.ObjectID) []common.ID {
	ids := make([]common.ID, 0, len(oids))
	for _, oid := range oids {
		ids = append(ids, common.ID(oid.Hex()))
	}
	return ids
}
