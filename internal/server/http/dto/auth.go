package dto

// AuthRequest describes registration/login payload. Role and ShopName are
// used by registration only; sellers must provide a shop name.
type AuthRequest struct {
	Login    string `json:"login"`
	Password string `json:"password"`
	Role     string `json:"role,omitempty"`
	ShopName string `json:"shop_name,omitempty"`
}
