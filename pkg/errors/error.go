// Package errors provides the error taxonomy and detail/tracing types used
// across the host layer: structured codes for discrimination by logging and
// metrics, plus a stack-trace-preserving wrapper around github.com/pkg/errors.
package errors

// ErrorCode represents a specific error code in the system.
type ErrorCode string

const (
	// GeneralInternalServerError represents a generic internal server error.
	GeneralInternalServerError ErrorCode = "general_internal_server_error"
	// GeneralBadRequestError represents a generic bad request error.
	GeneralBadRequestError ErrorCode = "general_bad_request_error"

	// OrderBookDeleteMissingLevel mirrors orderbookv1.ErrDeleteMissingLevel.
	OrderBookDeleteMissingLevel ErrorCode = "orderbook_delete_missing_level"
	// OrderBookQuantityUnderflow mirrors orderbookv1.ErrQuantityUnderflow.
	OrderBookQuantityUnderflow ErrorCode = "orderbook_quantity_underflow"
	// OrderBookZeroInsert mirrors orderbookv1.ErrZeroInsert.
	OrderBookZeroInsert ErrorCode = "orderbook_zero_insert"
	// OrderBookModifyMismatch mirrors orderbookv1.ErrModifyMismatch.
	OrderBookModifyMismatch ErrorCode = "orderbook_modify_mismatch"
	// OrderBookMalformedRow mirrors orderbookv1.ErrMalformedRow.
	OrderBookMalformedRow ErrorCode = "orderbook_malformed_row"
	// OrderBookCapacityInvalid mirrors orderbookv1.ErrCapacityInvalid.
	OrderBookCapacityInvalid ErrorCode = "orderbook_capacity_invalid"

	// RedisConfigError represents an error when the Redis configuration is invalid or nil.
	RedisConfigError ErrorCode = "redis_config_error"
	// RedisConnectionError represents an error when connecting to Redis.
	RedisConnectionError ErrorCode = "redis_connection_error"
	// RedisDisconnectionError represents an error when disconnecting from Redis.
	RedisDisconnectionError ErrorCode = "redis_disconnection_error"
	// RedisPingError represents an error when pinging Redis.
	RedisPingError ErrorCode = "redis_pinging_error"
	// RedisGetError represents an error when getting a value from Redis.
	RedisGetError ErrorCode = "redis_get_error"
	// RedisSetError represents an error when setting a value in Redis.
	RedisSetError ErrorCode = "redis_set_error"
	// RedisDelError represents an error when deleting a value from Redis.
	RedisDelError ErrorCode = "redis_del_error"
	// RedisPublishError represents an error when publishing a message to a channel in Redis.
	RedisPublishError ErrorCode = "redis_publish_error"
	// RedisSubscribeError represents an error when subscribing to channels in Redis.
	RedisSubscribeError ErrorCode = "redis_subscribe_error"

	// QuestDBQueryError represents an error executing a QuestDB query.
	QuestDBQueryError ErrorCode = "questdb_query_error"
	// QuestDBCopyError represents an error during a QuestDB CopyFrom bulk insert.
	QuestDBCopyError ErrorCode = "questdb_copy_error"

	// RowSourceDecodeError represents a malformed input row at the host boundary.
	RowSourceDecodeError ErrorCode = "rowsource_decode_error"
)

// Mapping the six core sentinel errors to their OrderBook* codes is not done
// here: errorCode in internal/app/engine knows the concrete sentinel values
// and matches them with errors.Is to pick the code used as a metrics label.
// This package only defines the vocabulary of codes, not the mapping, to
// avoid an import cycle back into internal/domain/orderbook/v1.
