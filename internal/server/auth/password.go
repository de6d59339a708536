package auth

import "golang.org/x/crypto/bcrypt"

// HashPassword returns a salted bcrypt hash of password. The output
// differs across calls for the same input; CheckPassword always matches
// hashes this function produced.
func HashPassword(password string) (string, error) {
	h, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return "", err
	}
	return string(h), nil
}

// CheckPassword reports whether password matches hash. A malformed hash
// is treated as a mismatch, never an error.
func CheckPassword(password, hash string) bool {
	return bcrypt.CompareHashAndPassword([]byte(hash), []byte(password)) == nil
}
