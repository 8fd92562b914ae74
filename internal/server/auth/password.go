package auth

import "golang.org/x/crypto/bcrypt"

// bcryptCost trades ~100ms of hashing work per attempt for brute-force
// resistance. Raising it invalidates nothing: stored hashes keep the cost
// they were created with.
const bcryptCost = 12

// HashPassword produces a salted bcrypt hash of the plaintext password.
// Hashing the same password twice yields different strings because bcrypt
// generates a fresh salt each time.
func HashPassword(password string) (string, error) {
	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcryptCost)
	if err != nil {
		return "", err
	}
	return string(hash), nil
}

// CheckPassword reports whether the plaintext password matches the stored
// hash. It returns false for mismatches and for malformed hashes; it never
// panics or surfaces an error.
func CheckPassword(password, hash string) bool {
	return bcrypt.CompareHashAndPassword([]byte(hash), []byte(password)) == nil
}
