package constants

// Environment keys read by the configuration layer
const (
	ENV_APP_ENV   = "APP_ENV"
	ENV_MODE      = "MODE"
	ENV_ADDR      = "ADDR"
	ENV_DB_DRIVER = "DB_DRIVER"
	ENV_DSN       = "DSN"

	ENV_RX_IMPLEMENTATION = "RX_IMPLEMENTATION"
	ENV_RX_ALLOW_FALLBACK = "RX_ALLOW_FALLBACK"
	ENV_RX_LOG_DROPPED    = "RX_LOG_DROPPED"
	ENV_RX_HEARTBEAT      = "RX_HEARTBEAT"
)

// Built-in reactive implementation name
const BuiltinImplementation = "builtin"

// Request scoped keys stored on gin.Context
const (
	RequestIDField  = "_lingrx_request_id"
	RequestIDHeader = "X-Request-ID"
)
