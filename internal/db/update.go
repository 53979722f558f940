package db

import (
	"fmt"
	"strings"

	"go.mongodb.org/mongo-driver/bson"

	"github.com/yigit/studentreg/internal/pkg/apperrors"
)

type updateKind int

const (
	updateNone updateKind = iota
	updateSet
	updateOperators
)

// Update describes how UpdateOne changes a document. Build it with
// SetFields or Operators; the zero value is rejected.
type Update struct {
	kind   updateKind
	fields interface{}
	ops    bson.M
}

// SetFields replaces the given fields, leaving the rest of the document as is.
// fields is any value that encodes to a BSON document: a struct, bson.M or bson.D.
func SetFields(fields interface{}) Update {
	return Update{kind: updateSet, fields: fields}
}

// Operators applies a raw update document such as
// {"$inc": {"year": 1}, "$unset": {"guardianName": ""}}.
// Every top level key must be an operator.
func Operators(ops bson.M) Update {
	return Update{kind: updateOperators, ops: ops}
}

func (u Update) document() (interface{}, error) {
	switch u.kind {
	case updateSet:
		if u.fields == nil {
			return nil, apperrors.NewBadRequestError("update: no fields to set")
		}
		return bson.M{"$set": u.fields}, nil
	case updateOperators:
		if len(u.ops) == 0 {
			return nil, apperrors.NewBadRequestError("update: empty operator document")
		}
		for key := range u.ops {
			if !strings.HasPrefix(key, "$") {
				return nil, apperrors.NewBadRequestError(fmt.Sprintf("update: %q is not an update operator", key))
			}
		}
		return u.ops, nil
	default:
		return nil, apperrors.NewBadRequestError("update: build the update with SetFields or Operators")
	}
}
