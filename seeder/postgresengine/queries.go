package postgresengine

import (
	"errors"

	"github.com/doug-martin/goqu/v9"
	_ "github.com/doug-martin/goqu/v9/dialect/postgres" // dialect import
	jsoniter "github.com/json-iterator/go"

	"github.com/AntonStoeckl/warehouse-seeder-go/seeder"
)

const (
	dialectPostgres    = "postgres"
	restartIdentity    = "RESTART"
	castJsonb          = "?::jsonb"
	colUserID          = "user_id"
	colEmail           = "email"
	colCreatedAt       = "created_at"
	colCountry         = "country"
	colSignupSource    = "signup_source"
	colSubscriptionID  = "subscription_id"
	colPlan            = "plan"
	colStatus          = "status"
	colStartedAt       = "started_at"
	colCancelledAt     = "cancelled_at"
	colMRRUSD          = "mrr_usd"
	colEventID         = "event_id"
	colEventName       = "event_name"
	colEventTS         = "event_ts"
	colProperties      = "properties"
	emptyPropertiesDoc = "{}"
)

var propertiesJSON = jsoniter.ConfigCompatibleWithStandardLibrary

func (s *Sink) buildTruncateQuery() (string, error) {
	// events first: it references users, as do subscriptions
	truncateStmt := goqu.Dialect(dialectPostgres).
		Truncate(s.tables.Events, s.tables.Subscriptions, s.tables.Users).
		Identity(restartIdentity)

	sqlQuery, _, toSQLErr := truncateStmt.ToSQL()
	if toSQLErr != nil {
		s.logError(logMsgBuildQueryFailed, toSQLErr, logAttrOperation, opReset)
		return "", errors.Join(ErrBuildingQueryFailed, toSQLErr)
	}

	return sqlQuery, nil
}

func (s *Sink) buildInsertUserQuery(user seeder.User) (string, error) {
	insertStmt := goqu.Dialect(dialectPostgres).
		Insert(s.tables.Users).
		Cols(colUserID, colEmail, colCreatedAt, colCountry, colSignupSource).
		Vals(goqu.Vals{
			user.ID.String(),
			user.Email,
			user.CreatedAt,
			user.Country,
			user.SignupSource,
		})

	return s.toSQL(insertStmt, opInsertUser)
}

func (s *Sink) buildInsertSubscriptionQuery(subscription seeder.Subscription) (string, error) {
	var cancelledAt any
	if subscription.CancelledAt != nil {
		cancelledAt = *subscription.CancelledAt
	}

	insertStmt := goqu.Dialect(dialectPostgres).
		Insert(s.tables.Subscriptions).
		Cols(colSubscriptionID, colUserID, colPlan, colStatus, colStartedAt, colCancelledAt, colMRRUSD).
		Vals(goqu.Vals{
			subscription.ID.String(),
			subscription.UserID.String(),
			string(subscription.Plan),
			string(subscription.Status),
			subscription.StartedAt,
			cancelledAt,
			subscription.MRRUSD,
		})

	return s.toSQL(insertStmt, opInsertSubscription)
}

func (s *Sink) buildInsertEventQuery(event seeder.Event) (string, error) {
	payload, err := marshalProperties(event.Properties)
	if err != nil {
		s.logError(logMsgMarshalFailed, err, logAttrEventName, string(event.Name))
		return "", errors.Join(ErrMarshallingPropertiesFailed, err)
	}

	insertStmt := goqu.Dialect(dialectPostgres).
		Insert(s.tables.Events).
		Cols(colEventID, colUserID, colEventName, colEventTS, colProperties).
		Vals(goqu.Vals{
			event.ID.String(),
			event.UserID.String(),
			string(event.Name),
			event.OccurredAt,
			goqu.L(castJsonb, payload),
		})

	return s.toSQL(insertStmt, opInsertEvent)
}

func (s *Sink) buildProbeQuery() (string, error) {
	sqlQuery, _, toSQLErr := goqu.Dialect(dialectPostgres).Select(goqu.L("1")).ToSQL()
	if toSQLErr != nil {
		return "", errors.Join(ErrBuildingQueryFailed, toSQLErr)
	}

	return sqlQuery, nil
}

func (s *Sink) toSQL(insertStmt *goqu.InsertDataset, operation string) (string, error) {
	sqlQuery, _, toSQLErr := insertStmt.ToSQL()
	if toSQLErr != nil {
		s.logError(logMsgBuildQueryFailed, toSQLErr, logAttrOperation, operation)
		return "", errors.Join(ErrBuildingQueryFailed, toSQLErr)
	}

	return sqlQuery, nil
}

// marshalProperties renders the payload as a JSON object; nil properties become "{}".
func marshalProperties(properties seeder.Properties) (string, error) {
	if len(properties) == 0 {
		return emptyPropertiesDoc, nil
	}

	payload, err := propertiesJSON.Marshal(properties)
	if err != nil {
		return "", err
	}

	return string(payload), nil
}
