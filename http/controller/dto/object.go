package dto

// ObjectKeyResponse echoes the derived blob key after a successful create or
// replace.
type ObjectKeyResponse struct {
	Key string `json:"Key"`
}
