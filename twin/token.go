package twin

import (
	"net/http"
	"strings"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

const (
	subjectAdmin  = "admin"
	subjectSeller = "seller"
	subjectSearch = "search"
)

type tokenClaims struct {
	Type    string `json:"typ"`
	StoreID string `json:"sto,omitempty"`
	jwt.RegisteredClaims
}

func (s *Server) issueToken(typ, subject, storeID string) string {
	claims := tokenClaims{
		Type:    typ,
		StoreID: storeID,
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   subject,
			IssuedAt:  jwt.NewNumericDate(time.Now()),
			ExpiresAt: jwt.NewNumericDate(time.Now().Add(time.Hour)),
		},
	}
	signed, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(s.secret)
	if err != nil {
		panic(err)
	}
	return signed
}

// tokenPair is the signin response body.
func (s *Server) tokenPair(typ, subject, storeID string) map[string]any {
	return map[string]any{
		"accessToken": s.issueToken(typ, subject, storeID),
		"searchToken": s.issueToken(subjectSearch, subject, ""),
	}
}

// parseBearer extracts and validates the Authorization token. A nil result
// means the caller must answer 401.
func (s *Server) parseBearer(r *http.Request) *tokenClaims {
	auth := r.Header.Get("Authorization")
	raw := strings.TrimPrefix(auth, "Bearer ")
	if raw == "" || raw == auth {
		return nil
	}
	var claims tokenClaims
	tok, err := jwt.ParseWithClaims(raw, &claims, func(t *jwt.Token) (any, error) {
		return s.secret, nil
	}, jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}))
	if err != nil || !tok.Valid {
		return nil
	}
	return &claims
}

// adminAuth admits requests carrying a live admin token and rejects the rest
// with the invalid-token envelope. Permission checks happen per handler.
func (s *Server) adminAuth(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		claims := s.parseBearer(r)
		if claims == nil || claims.Type != subjectAdmin {
			unauthorized(w, "Invalid access token")
			return
		}
		s.mu.Lock()
		_, ok := s.admins[claims.Subject]
		s.mu.Unlock()
		if !ok {
			unauthorized(w, "Invalid access token")
			return
		}
		next.ServeHTTP(w, r)
	})
}

// sellerAuth admits seller-typed tokens only. Admin tokens land here as
// invalid, not forbidden.
func (s *Server) sellerAuth(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		claims := s.parseBearer(r)
		if claims == nil || claims.Type != subjectSeller {
			unauthorized(w, "Invalid access token")
			return
		}
		s.mu.Lock()
		_, ok := s.sellers[claims.Subject]
		s.mu.Unlock()
		if !ok {
			unauthorized(w, "Invalid access token")
			return
		}
		next.ServeHTTP(w, r)
	})
}

// requestAdmin resolves the admin behind an already-admitted request.
func (s *Server) requestAdmin(r *http.Request) *adminRecord {
	claims := s.parseBearer(r)
	if claims == nil {
		return nil
	}
	return s.admins[claims.Subject]
}

func (s *Server) requestSeller(r *http.Request) *sellerRecord {
	claims := s.parseBearer(r)
	if claims == nil {
		return nil
	}
	return s.sellers[claims.Subject]
}
