package auth

import (
	"errors"
	"fmt"
	"strings"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
)

var (
	ErrMissingToken = errors.New("missing bearer token")
	ErrInvalidToken = errors.New("invalid token")
)

// Claims mirrors the access token Supabase Auth issues. Subject holds the
// auth.users id.
type Claims struct {
	Email string `json:"email,omitempty"`
	Role  string `json:"role,omitempty"`
	jwt.RegisteredClaims
}

// Identity is the authenticated caller extracted from a verified token
type Identity struct {
	UserID string
	Email  string
	Role   string
}

// SupabaseVerifier validates HS256 access tokens signed with the project JWT secret.
type SupabaseVerifier struct {
	secret []byte
	parser *jwt.Parser
}

// NewSupabaseVerifier builds a verifier. projectURL may be empty; when set the
// token issuer must be "<projectURL>/auth/v1".
func NewSupabaseVerifier(secret, audience, projectURL string) (*SupabaseVerifier, error) {
	if secret == "" {
		return nil, fmt.Errorf("supabase jwt secret is required")
	}

	opts := []jwt.ParserOption{
		jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}),
		jwt.WithExpirationRequired(),
	}
	if audience != "" {
		opts = append(opts, jwt.WithAudience(audience))
	}
	if projectURL != "" {
		opts = append(opts, jwt.WithIssuer(strings.TrimRight(projectURL, "/")+"/auth/v1"))
	}

	return &SupabaseVerifier{
		secret: []byte(secret),
		parser: jwt.NewParser(opts...),
	}, nil
}

// Verify parses tokenString and returns the caller identity
func (v *SupabaseVerifier) Verify(tokenString string) (*Identity, error) {
	if tokenString == "" {
		return nil, ErrMissingToken
	}

	claims := &Claims{}
	token, err := v.parser.ParseWithClaims(tokenString, claims, func(token *jwt.Token) (interface{}, error) {
		return v.secret, nil
	})
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidToken, err)
	}
	if !token.Valid {
		return nil, ErrInvalidToken
	}

	if err := uuid.Validate(claims.Subject); err != nil {
		return nil, fmt.Errorf("%w: subject is not a user id", ErrInvalidToken)
	}

	return &Identity{
		UserID: claims.Subject,
		Email:  claims.Email,
		Role:   claims.Role,
	}, nil
}

// ExtractBearerToken returns the token portion of an Authorization header
func ExtractBearerToken(header string) string {
	parts := strings.SplitN(header, " ", 2)
	if len(parts) != 2 || !strings.EqualFold(parts[0], "Bearer") {
		return ""
	}
	return strings.TrimSpace(parts[1])
}
