package rbac

type EnforceRequest struct {
	Role     string `json:"role"`
	Resource string `json:"resource" binding:"required,notblank"`
	Action   string `json:"action" binding:"required,notblank"`
}

type EnforceResponse struct {
	Allowed bool `json:"allowed"`
}

type Permission struct {
	Resource string `json:"resource"`
	Action   string `json:"action"`
}

// PermissionsResponse lists what the caller's role may do so the UI can hide
// controls up front.
type PermissionsResponse struct {
	Role        string       `json:"role"`
	Permissions []Permission `json:"permissions"`
}
