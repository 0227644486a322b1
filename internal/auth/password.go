package auth

import "golang.org/x/crypto/bcrypt"

// HashPassword возвращает bcrypt-хэш пароля (соль своя на каждый вызов).
func HashPassword(password string) (string, error) {
	b, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return "", err
	}
	return string(b), nil
}

// CheckPassword сверяет пароль с хэшем.
func CheckPassword(password, hash string) bool {
	return bcrypt.CompareHashAndPassword([]byte(hash), []byte(password)) == nil
}
