// Package password реализует функции для безопасного хеширования и проверки паролей.
//
// GetHash создает bcrypt-хеш пароля для безопасного хранения.
// CompareHash сравнивает сохранённый bcrypt-хеш с введённым паролем.
package password

import (
	"fmt"

	"golang.org/x/crypto/bcrypt"
)

// Cost задаёт стоимость bcrypt. Значение фиксировано и одинаково
// для всех окружений, соль генерируется заново при каждом вызове.
const Cost = bcrypt.DefaultCost

// GetHash принимает пароль пользователя и возвращает его bcrypt-хэш.
//
// Два вызова с одинаковым паролем дают разные хэши (случайная соль),
// но каждый из них проходит проверку CompareHash.
func GetHash(password string) (string, error) {
	const op = "password.GetHash"
	hashedPassword, err := bcrypt.GenerateFromPassword([]byte(password), Cost)
	if err != nil {
		return "", fmt.Errorf("%s: %w", op, err)
	}
	return string(hashedPassword), nil
}

// CompareHash сравнивает bcrypt-хэш с введённым паролем.
//
// Возвращает nil, если пароль соответствует хэшу. Несовпадение,
// пустой пароль и повреждённый хэш одинаково дают ошибку.
func CompareHash(originalHash, externalPassword string) error {
	const op = "password.CompareHash"
	if err := bcrypt.CompareHashAndPassword([]byte(originalHash), []byte(externalPassword)); err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}
	return nil
}
