package server

// Route path constants
// All application routes are defined here to ensure consistency and prevent typos
const (
	// Web surface - login handoff
	RouteIndex        = "/"
	RouteLogin        = "/login"
	RouteAuthLogin    = "/auth/login"
	RouteAuthLogout   = "/auth/logout"
	RouteLoginSuccess = "/login-success"

	// API routes (bearer auth)
	RouteAPITasks    = "/api/tasks"
	RouteAPITaskDone = "/api/tasks/{taskId}/done"
	RouteAPIUser     = "/api/user"
)

// Query and form parameter names shared with the clients.
const (
	ParamMobileRedirectURL = "postLoginMobileAppRedirectUrl"
	ParamSessionID         = "sessionId"
)
