package common

// AuthorizationHeaderName is the HTTP header carrying the bearer token on
// outbound requests.
const AuthorizationHeaderName = "Authorization"

// HealthCheckPath is probed by the client to decide remote vs local routing.
const HealthCheckPath = "/api/health"
