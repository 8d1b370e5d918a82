package auth

// Principal is the authentication-layer view of an identified user, distinct
// from the persisted user record. It carries the account id for token
// issuance, the canonical login identifier (email), the stored credential
// hash for verification, and the granted authorities.
type Principal struct {
	UserID       int64
	Login        string
	PasswordHash string
	Authorities  []string
}

// NewPrincipal builds a Principal with an explicitly empty authority list.
// No role model exists; keep it empty rather than inventing roles.
func NewPrincipal(userID int64, login, passwordHash string) *Principal {
	return &Principal{
		UserID:       userID,
		Login:        login,
		PasswordHash: passwordHash,
		Authorities:  []string{},
	}
}
