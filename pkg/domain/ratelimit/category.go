package ratelimit

type Category string

const (
	CategoryLogin             Category = "login"
	CategoryPasswordReset     Category = "password_reset"
	CategoryPasswordChange    Category = "password_change"
	CategoryAPI               Category = "api"
	CategoryCreate            Category = "create"
	CategoryUpdate            Category = "update"
	CategoryEmailVerification Category = "email_verification"
	CategorySearch            Category = "search"
)

// Categories lists every category known to the service, in a stable order.
func Categories() []Category {
	return []Category{
		CategoryLogin,
		CategoryPasswordReset,
		CategoryPasswordChange,
		CategoryAPI,
		CategoryCreate,
		CategoryUpdate,
		CategoryEmailVerification,
		CategorySearch,
	}
}

func (c Category) String() string {
	return string(c)
}

func (c Category) IsKnown() bool {
	for _, known := range Categories() {
		if c == known {
			return true
		}
	}
	return false
}
