// Package jwt firma y valida los tokens de subida que acompañan a las URLs prefirmadas
// del almacenamiento local de artefactos.
package jwt

import (
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

// UploadClaims incluye los claims estándar JWT más la clave de objeto autorizada y la organización.
type UploadClaims struct {
	jwt.RegisteredClaims
	ObjectKey string `json:"key"`
	OrgID     string `json:"org_id"`
}

// GenerateUpload genera un token firmado que autoriza a escribir exactamente objectKey.
func GenerateUpload(secret, objectKey, orgID, issuer string, ttl time.Duration) (string, error) {
	if secret == "" {
		return "", fmt.Errorf("jwt: secret vacío")
	}
	now := time.Now()
	claims := UploadClaims{
		RegisteredClaims: jwt.RegisteredClaims{
			Issuer:    issuer,
			Subject:   objectKey,
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(ttl)),
		},
		ObjectKey: objectKey,
		OrgID:     orgID,
	}
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString([]byte(secret))
}

// ParseUpload valida el token y devuelve la clave de objeto y la organización.
// Retorna error si el token es inválido, expirado o tiene firma incorrecta.
func ParseUpload(secret, tokenString string) (objectKey, orgID string, err error) {
	if secret == "" {
		return "", "", fmt.Errorf("jwt: secret vacío")
	}
	token, err := jwt.ParseWithClaims(tokenString, &UploadClaims{}, func(t *jwt.Token) (interface{}, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("método de firma inesperado: %v", t.Header["alg"])
		}
		return []byte(secret), nil
	})
	if err != nil {
		return "", "", err
	}
	claims, ok := token.Claims.(*UploadClaims)
	if !ok || !token.Valid || claims.ObjectKey == "" {
		return "", "", fmt.Errorf("claims inválidos")
	}
	return claims.ObjectKey, claims.OrgID, nil
}
