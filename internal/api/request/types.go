package request

// LoginRequest is the request body for staff login
type LoginRequest struct {
	Username string `json:"username"`
	Password string `json:"password"`
}

// CreateStaffRequest is the request body for creating a staff account
type CreateStaffRequest struct {
	Username    string `json:"username"`
	Password    string `json:"password"`
	DisplayName string `json:"display_name"`
	Role        string `json:"role"`
}

// RegisterWalkInRequest is the request body for on-the-spot registration
type RegisterWalkInRequest struct {
	Name    string   `json:"name"`
	Email   string   `json:"email"`
	Phone   string   `json:"phone,omitempty"`
	College string   `json:"college,omitempty"`
	Events  []string `json:"events,omitempty"`
}
