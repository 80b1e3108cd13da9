// Package auth autentica al operador (usuario único configurado) y emite el JWT de escritura.
package auth

import (
	"crypto/subtle"
	"strings"

	"golang.org/x/crypto/bcrypt"

	"github.com/jhoicas/semaforo-stock/internal/application/dto"
	"github.com/jhoicas/semaforo-stock/internal/domain"
	"github.com/jhoicas/semaforo-stock/pkg/jwt"
)

// JWTConfig configuración para generación de tokens.
type JWTConfig struct {
	Secret     string
	ExpMinutes int
	Issuer     string
}

// Credentials usuario y hash bcrypt del operador.
type Credentials struct {
	Username     string
	PasswordHash string
}

// AuthUseCase login contra las credenciales configuradas.
type AuthUseCase struct {
	creds  Credentials
	jwtCfg JWTConfig
}

// NewAuthUseCase construye el caso de uso de auth.
func NewAuthUseCase(creds Credentials, jwtCfg JWTConfig) *AuthUseCase {
	return &AuthUseCase{creds: creds, jwtCfg: jwtCfg}
}

// Enabled informa si hay secreto y hash configurados; sin ellos el login siempre falla.
func (uc *AuthUseCase) Enabled() bool {
	return uc.jwtCfg.Secret != "" && uc.creds.PasswordHash != ""
}

// Login verifica usuario/password con bcrypt y genera el JWT.
func (uc *AuthUseCase) Login(in dto.LoginRequest) (*dto.LoginResponse, error) {
	if !uc.Enabled() {
		return nil, domain.ErrUnauthorized
	}
	user := strings.TrimSpace(in.Username)
	userOK := subtle.ConstantTimeCompare([]byte(user), []byte(uc.creds.Username)) == 1
	// bcrypt se evalúa siempre, coincida o no el usuario
	passErr := bcrypt.CompareHashAndPassword([]byte(uc.creds.PasswordHash), []byte(in.Password))
	if !userOK || passErr != nil {
		return nil, domain.ErrUnauthorized
	}
	token, err := jwt.Generate(uc.jwtCfg.Secret, user, jwt.RoleOperator, uc.jwtCfg.Issuer, uc.jwtCfg.ExpMinutes)
	if err != nil {
		return nil, err
	}
	return &dto.LoginResponse{Token: token, ExpiresIn: uc.jwtCfg.ExpMinutes * 60}, nil
}

// HashPassword genera el hash bcrypt para AUTH_PASSWORD_HASH.
func HashPassword(password string) (string, error) {
	if password == "" {
		return "", domain.ErrInvalidInput
	}
	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return "", err
	}
	return string(hash), nil
}
