package api

// Account service HTTP endpoints. All three account endpoints are public;
// there is no authenticated surface beyond token refresh.
const (
	PathRegister     = "/register"
	PathLogin        = "/login"
	PathRefreshToken = "/refresh-token"
	PathHealth       = "/healthz"
	PathMetrics      = "/metrics"
)
