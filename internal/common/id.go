package common

import "go.mongodb.org/mongo-driver/v2/bson"

// ID is the hex form of a Mongo ObjectID, kept as a string so domain types
// stay free of driver imports at call sites.
type ID string

func NewID() ID {
	return ID(bson.NewObjectID().Hex())
}

func ParseID(value string) (ID, error) {
	oid, err := bson.ObjectIDFromHex(value)
	if err != nil {
		return "", NewError(CodeValidation, "invalid id", err)
	}
	return ID(oid.Hex()), nil
}

func (id ID) String() string {
	return string(id)
}

func (id ID) ObjectID() (bson.ObjectID, error) {
	oid, err := bson.ObjectIDFromHex(string(id))
	if err != nil {
		return bson.ObjectID{}, NewError(CodeValidation, "invalid id", err)
	}
	return oid, nil
}
