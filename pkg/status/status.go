package status

const (
	OK                    = "OK"
	CREATED               = "CREATED"
	BAD_REQUEST           = "BAD_REQUEST"
	UNAUTHORIZED          = "UNAUTHORIZED"
	FORBIDDEN             = "FORBIDDEN"
	NOT_FOUND             = "NOT_FOUND"
	UNPROCESSABLE_ENTITY  = "UNPROCESSABLE_ENTITY"
	TOO_MANY_REQUESTS     = "TOO_MANY_REQUESTS"
	INTERNAL_SERVER_ERROR = "INTERNAL_SERVER_ERROR"
)

// Failure kinds at the order-data provider boundary.
const (
	NETWORK_ERROR      = "NETWORK_ERROR"
	TIMEOUT            = "TIMEOUT"
	MALFORMED_RESPONSE = "MALFORMED_RESPONSE"
	PROVIDER_ERROR     = "PROVIDER_ERROR"
)
