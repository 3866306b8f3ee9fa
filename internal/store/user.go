package store

import (
	"context"
	"crypto/subtle"
	"strings"

	"github.com/condomaster/condomaster-api/internal/gateway"
	"golang.org/x/crypto/bcrypt"
)

const usersTable = "users"

type UserStore struct {
	gw gateway.Gateway
}

func NewUserStore(gw gateway.Gateway) *UserStore {
	return &UserStore{gw: gw}
}

// Authenticate looks the user up by email, ignoring case, and checks the
// password. It returns the user's profile without the password column, or
// nil when no user matches both.
func (s *UserStore) Authenticate(ctx context.Context, email, password string) (gateway.Row, error) {
	rows, err := s.gw.Select(ctx, gateway.From(usersTable).Where(gateway.EqFold("email", email)))
	if err != nil {
		return nil, err
	}

	for _, r := range rows {
		if !strings.EqualFold(asString(r["email"]), email) {
			continue
		}
		if !passwordMatches(asString(r["password"]), password) {
			continue
		}
		profile := make(gateway.Row, len(r))
		for k, v := range r {
			if k == "password" {
				continue
			}
			profile[k] = v
		}
		return profile, nil
	}
	return nil, nil
}

// passwordMatches accepts bcrypt hashes and, for rows not yet migrated,
// stored plaintext.
func passwordMatches(stored, input string) bool {
	if stored == "" {
		return false
	}
	if isBcryptHash(stored) {
		return bcrypt.CompareHashAndPassword([]byte(stored), []byte(input)) == nil
	}
	return subtle.ConstantTimeCompare([]byte(stored), []byte(input)) == 1
}

func isBcryptHash(s string) bool {
	return len(s) == 60 && (strings.HasPrefix(s, "$2a$") || strings.HasPrefix(s, "$2b$") || strings.HasPrefix(s, "$2y$"))
}
