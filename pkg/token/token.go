// Package token implementa el token de sesión firmado de BuildLink: un único
// JWT que lleva la variante de principal y su clave natural. Una cookie puede
// contener a lo sumo un token, así que emitir para una variante desplaza
// cualquier identidad anterior (exclusividad de identidad por construcción).
package token

import (
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

// Claims incluye los claims estándar JWT más la variante de principal y su
// clave natural. El token no guarda datos de perfil: el registro completo se
// resuelve con una consulta fresca por request.
type Claims struct {
	jwt.RegisteredClaims
	Kind string `json:"kind"` // "employee" | "partner" | "contractor"
	Key  string `json:"key"`  // emp_id, username o email según la variante
}

// Generate genera un token JWT firmado para (kind, key).
func Generate(secret, kind, key, issuer string, expMinutes int) (string, error) {
	if secret == "" {
		return "", fmt.Errorf("token: secret vacío")
	}
	now := time.Now()
	claims := Claims{
		RegisteredClaims: jwt.RegisteredClaims{
			Issuer:    issuer,
			Subject:   key,
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(time.Duration(expMinutes) * time.Minute)),
		},
		Kind: kind,
		Key:  key,
	}
	t := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return t.SignedString([]byte(secret))
}

// Parse valida el token y devuelve la variante y la clave natural. Retorna
// error si el token es inválido, expirado o tiene firma incorrecta.
func Parse(secret, tokenString string) (kind, key string, err error) {
	if secret == "" {
		return "", "", fmt.Errorf("token: secret vacío")
	}
	t, err := jwt.ParseWithClaims(tokenString, &Claims{}, func(t *jwt.Token) (interface{}, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("método de firma inesperado: %v", t.Header["alg"])
		}
		return []byte(secret), nil
	})
	if err != nil {
		return "", "", err
	}
	claims, ok := t.Claims.(*Claims)
	if !ok || !t.Valid {
		return "", "", fmt.Errorf("claims inválidos")
	}
	return claims.Kind, claims.Key, nil
}
