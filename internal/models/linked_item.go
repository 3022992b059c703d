package models

// LinkedItem is a bank connection created by the external account-linking flow
type LinkedItem struct {
	ID             int64  `json:"id"`
	UserID         int64  `json:"user_id"`
	ProviderItemID string `json:"provider_item_id"`
	Institution    string `json:"institution"`
	AccessToken    string `json:"-"` // Encrypted at rest
	HMAC           string `json:"-"`
	MaskedToken    string `json:"masked_token,omitempty"`
	IntegrityOK    bool   `json:"integrity_ok"`
	CreatedAt      string `json:"created_at"`
}
