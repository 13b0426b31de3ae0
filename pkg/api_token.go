package pkg

import "golang.org/x/crypto/bcrypt"

const apiTokenHashCost = 12

func HashAPIToken(token string) (string, error) {
	hash, err := bcrypt.GenerateFromPassword([]byte(token), apiTokenHashCost)
	return string(hash), err
}

func CheckAPITokenHash(token, hash string) bool {
	return bcrypt.CompareHashAndPassword([]byte(hash), []byte(token)) == nil
}
