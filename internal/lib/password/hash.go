// Package password хеширует пароли пользователей через bcrypt.
//
// В базе хранится только хеш, исходный пароль нигде не сохраняется и не отдаётся клиенту.
// bcrypt учитывает не больше 72 байт, поэтому пароль сначала сворачивается
// в SHA-256 (base64): так хешируется любой допустимый пароль, в том числе многобайтовый.
package password

import (
	"crypto/sha256"
	"encoding/base64"
	"fmt"

	"golang.org/x/crypto/bcrypt"
)

func digest(password string) []byte {
	sum := sha256.Sum256([]byte(password))
	out := make([]byte, base64.StdEncoding.EncodedLen(len(sum)))
	base64.StdEncoding.Encode(out, sum[:])
	return out
}

// GetHash возвращает bcrypt-хеш пароля.
func GetHash(password string) (string, error) {
	const op = "password.GetHash"
	hashed, err := bcrypt.GenerateFromPassword(digest(password), bcrypt.DefaultCost)
	if err != nil {
		return "", fmt.Errorf("%s: %w", op, err)
	}
	return string(hashed), nil
}

// CompareHash проверяет, что пароль соответствует хешу. Возвращает nil при совпадении.
func CompareHash(hash, password string) error {
	const op = "password.CompareHash"
	if err := bcrypt.CompareHashAndPassword([]byte(hash), digest(password)); err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}
	return nil
}
