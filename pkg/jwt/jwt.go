package jwt

import (
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

// Claims incluye los claims estándar JWT más los campos propios del POS.
// Roles lleva el conjunto otorgado y ActiveRole el rol elegido para la sesión,
// así el middleware RBAC decide sin consultar la DB en cada request.
type Claims struct {
	jwt.RegisteredClaims
	UserID     string   `json:"user_id"`
	CompanyID  string   `json:"company_id"`
	BranchID   string   `json:"branch_id,omitempty"`
	Roles      []string `json:"roles"`
	ActiveRole string   `json:"active_role,omitempty"`
}

// Generate genera un token JWT firmado con la identidad y el contexto tenant.
func Generate(secret, userID, companyID, branchID string, roles []string, activeRole, issuer string, expMinutes int) (string, error) {
	if secret == "" {
		return "", fmt.Errorf("jwt: secret vacío")
	}
	now := time.Now()
	claims := Claims{
		RegisteredClaims: jwt.RegisteredClaims{
			Issuer:    issuer,
			Subject:   userID,
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(time.Duration(expMinutes) * time.Minute)),
		},
		UserID:     userID,
		CompanyID:  companyID,
		BranchID:   branchID,
		Roles:      roles,
		ActiveRole: activeRole,
	}
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString([]byte(secret))
}

// Parse valida el token y devuelve los claims completos.
// Retorna error si el token es inválido, expirado o tiene firma incorrecta.
func Parse(secret, tokenString string) (*Claims, error) {
	if secret == "" {
		return nil, fmt.Errorf("jwt: secret vacío")
	}
	token, err := jwt.ParseWithClaims(tokenString, &Claims{}, func(t *jwt.Token) (interface{}, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("método de firma inesperado: %v", t.Header["alg"])
		}
		return []byte(secret), nil
	})
	if err != nil {
		return nil, err
	}
	claims, ok := token.Claims.(*Claims)
	if !ok || !token.Valid {
		return nil, fmt.Errorf("claims inválidos")
	}
	return claims, nil
}
