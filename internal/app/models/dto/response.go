package dto

// SuccessResponse represents a standard success response for API endpoints
type SuccessResponse struct {
	Message string `json:"message"`
}

// HealthResponse is returned by the health check
type HealthResponse struct {
	Status  string `json:"status" example:"ok"`
	Backend bool   `json:"backend" example:"false"`
}

// AppManifestResponse describes how the web bundle is packaged into the native shell
type AppManifestResponse struct {
	AppID   string `json:"appId" example:"app.diasporahub.mobile"`
	AppName string `json:"appName" example:"Diaspora Hub"`
	WebDir  string `json:"webDir" example:"dist"`
}
