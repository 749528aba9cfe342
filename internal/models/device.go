package models

// Device is one synchronized installation as the server reports it.
type Device struct {
	ID        string `json:"id"`
	Username  string `json:"username"`
	Name      string `json:"name"`
	Platform  string `json:"platform"`
	LastSeen  string `json:"last_seen"`
	CreatedAt string `json:"created_at"`
}

// DeviceRegistration is the registration request body; the server stamps
// last_seen and created_at itself.
type DeviceRegistration struct {
	ID       string `json:"id"`
	Username string `json:"username"`
	Name     string `json:"name"`
	Platform string `json:"platform"`
}
