// Хэширование паролей
package crypto

import (
	"errors"
	"strings"

	"golang.org/x/crypto/bcrypt"
)

// DefaultBcryptCost — стоимость bcrypt по умолчанию (как в конфиге).
const DefaultBcryptCost = 10

// HashPassword возвращает bcrypt-хэш пароля.
// Соль генерируется библиотекой и встроена в результат.
func HashPassword(password string, cost int) (string, error) {
	if strings.TrimSpace(password) == "" {
		return "", errors.New("empty password")
	}
	if cost == 0 {
		cost = DefaultBcryptCost
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(password), cost)
	if err != nil {
		return "", err
	}
	return string(hash), nil
}

// VerifyPassword проверяет пароль против сохранённого хэша.
//
// Возвращает:
//   - (true, nil) — пароль совпал;
//   - (false, nil) — пароль не совпал;
//   - (false, err) — хэш повреждён или нечитабелен.
//
// Сравнение внутри bcrypt выполняется за константное время.
func VerifyPassword(password, encoded string) (bool, error) {
	err := bcrypt.CompareHashAndPassword([]byte(encoded), []byte(password))
	if err == nil {
		return true, nil
	}
	if errors.Is(err, bcrypt.ErrMismatchedHashAndPassword) {
		return false, nil
	}
	return false, err
}
