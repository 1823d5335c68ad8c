package postgresengine_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/AntonStoeckl/warehouse-seeder-go/seeder/postgresengine"
)

func Test_Constructors_ShouldFail_WhenConnectionIsNil(t *testing.T) {
	_, err := postgresengine.NewSinkFromPGXPool(nil)
	assert.ErrorIs(t, err, postgresengine.ErrNilDatabaseConnection)

	_, err = postgresengine.NewSinkFromSQLDB(nil)
	assert.ErrorIs(t, err, postgresengine.ErrNilDatabaseConnection)

	_, err = postgresengine.NewSinkFromSQLX(nil)
	assert.ErrorIs(t, err, postgresengine.ErrNilDatabaseConnection)

	_, err = postgresengine.NewSinkFromGORM(nil)
	assert.ErrorIs(t, err, postgresengine.ErrNilDatabaseConnection)
}

func Test_WithTableNames_ShouldReject_EmptyNames(t *testing.T) {
	names := postgresengine.DefaultTableNames()
	names.Events = ""

	err := postgresengine.WithTableNames(names)(&postgresengine.Sink{})

	assert.ErrorIs(t, err, postgresengine.ErrEmptyTableName)
}

func Test_DefaultTableNames(t *testing.T) {
	assert.Equal(t, postgresengine.TableNames{Users: "users", Subscriptions: "subscriptions", Events: "events"}, postgresengine.DefaultTableNames())
}
