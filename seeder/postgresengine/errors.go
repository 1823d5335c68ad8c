package postgresengine

import (
	"errors"
)

var ErrNilDatabaseConnection = errors.New("nil database connection supplied")
var ErrEmptyTableName = errors.New("empty table name supplied")
var ErrBuildingQueryFailed = errors.New("building the query failed")
var ErrMarshallingPropertiesFailed = errors.New("marshalling event properties failed")
var ErrResetFailed = errors.New("truncating tables failed")
var ErrBeginTxFailed = errors.New("beginning the phase transaction failed")
var ErrInsertFailed = errors.New("inserting row failed")
var ErrUnexpectedRowsAffected = errors.New("insert did not affect exactly one row")
var ErrCommitFailed = errors.New("committing the phase transaction failed")
var ErrProbeFailed = errors.New("connectivity probe failed")
