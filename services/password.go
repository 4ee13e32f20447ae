package services

import (
	"crypto/hmac"
	"crypto/sha512"
	"encoding/base64"
	"strings"

	"golang.org/x/crypto/bcrypt"
)

const (
	wpHashPrefix = "$wp"
	wpHashKey    = "wp-sha384"
)

// CheckPassword verifies a password against a stored user_pass value.
// Supported: plain bcrypt ($2y$, $2a$, $2b$) and the "$wp" pre-hashed bcrypt
// format. Anything else (phpass, md5) fails.
func CheckPassword(hash, password string) bool {
	switch {
	case strings.HasPrefix(hash, wpHashPrefix+"$2"):
		return bcrypt.CompareHashAndPassword([]byte(hash[len(wpHashPrefix):]), []byte(prehash(password))) == nil
	case strings.HasPrefix(hash, "$2y$"), strings.HasPrefix(hash, "$2a$"), strings.HasPrefix(hash, "$2b$"):
		return bcrypt.CompareHashAndPassword([]byte(hash), []byte(password)) == nil
	default:
		return false
	}
}

// HashPassword returns a "$wp$2y$..." hash for password.
func HashPassword(password string) (string, error) {
	return hashPasswordCost(password, bcrypt.DefaultCost)
}

func hashPasswordCost(password string, cost int) (string, error) {
	b, err := bcrypt.GenerateFromPassword([]byte(prehash(password)), cost)
	if err != nil {
		return "", err
	}
	return wpHashPrefix + "$2y$" + strings.TrimPrefix(string(b), "$2a$"), nil
}

// prehash keeps long passwords under the bcrypt 72 byte limit.
func prehash(password string) string {
	mac := hmac.New(sha512.New384, []byte(wpHashKey))
	mac.Write([]byte(password))
	return base64.StdEncoding.EncodeToString(mac.Sum(nil))
}
