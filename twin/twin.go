// Package twin is an in-memory stand-in for the storefront backend. It
// serves the same routes with the same validation messages and error
// envelopes, seeded with the default identities the fixture tables refer
// to, so the harness and its tests can run without a deployed environment.
package twin

import (
	"fmt"
	"net/http"
	"sync"

	"github.com/go-chi/chi/v5"
	"github.com/goccy/go-json"
	"github.com/google/uuid"
)

// Server holds the mutable backend state behind a single lock. Handlers are
// coarse-grained: every request takes the lock for its duration, which is
// plenty for a test double.
type Server struct {
	mu      sync.Mutex
	admins  map[string]*adminRecord
	sellers map[string]*sellerRecord
	secret  []byte
}

// New returns a server provisioned with the default super admin, the
// reusable current admin, and the default seller with one store.
func New() *Server {
	s := &Server{
		admins:  map[string]*adminRecord{},
		sellers: map[string]*sellerRecord{},
		secret:  []byte(uuid.NewString()),
	}
	s.seed()
	return s
}

// Handler mounts the API routes.
func (s *Server) Handler() http.Handler {
	r := chi.NewRouter()

	r.NotFound(s.routeNotFound)
	r.MethodNotAllowed(s.routeNotFound)

	r.Post("/auth/admins/signin", s.adminSignin)
	r.Post("/auth/sellers/signup", s.sellerSignup)
	r.Post("/auth/sellers/signin", s.sellerSignin)
	r.Post("/auth/sellers/signin/stores/{storeID}", s.sellerStoreSignin)

	r.Post("/admins/super", s.createSuperAdmin)

	r.Group(func(r chi.Router) {
		r.Use(s.adminAuth)
		r.Get("/admins/current", s.getCurrentAdmin)
		r.Patch("/admins/current", s.updateCurrentAdmin)
		r.Patch("/admins/current/password", s.updateCurrentAdminPassword)
		r.Post("/admins", s.createAdmin)
		r.Patch("/admins/{adminID}", s.updateAdmin)
		r.Delete("/admins/{adminID}", s.deleteAdmin)
	})

	r.Group(func(r chi.Router) {
		r.Use(s.sellerAuth)
		r.Get("/sellers/current", s.getCurrentSeller)
		r.Patch("/sellers/current", s.updateCurrentSeller)
	})

	return r
}

// routeNotFound mirrors the backend's router-level miss envelope.
func (s *Server) routeNotFound(w http.ResponseWriter, r *http.Request) {
	writeError(w, 404, fmt.Sprintf("Cannot %s %s", r.Method, r.URL.Path), "Not Found")
}

func writeJSON(w http.ResponseWriter, status int, body any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(body)
}

// writeError emits the single-message error envelope.
func writeError(w http.ResponseWriter, status int, message, errText string) {
	writeJSON(w, status, map[string]any{
		"message":    message,
		"error":      errText,
		"statusCode": status,
	})
}

// writeValidation emits the multi-message 400 envelope the field validators
// produce.
func writeValidation(w http.ResponseWriter, msgs []string) {
	writeJSON(w, 400, map[string]any{
		"message":    msgs,
		"error":      "Bad Request",
		"statusCode": 400,
	})
}

func unauthorized(w http.ResponseWriter, message string) {
	writeError(w, 401, message, "Unauthorized")
}

func forbidden(w http.ResponseWriter) {
	writeError(w, 403, "Forbidden resource", "Forbidden")
}

// decodeBody tolerates an absent body, treating it as an empty object the
// validators then pick apart field by field.
func decodeBody(r *http.Request) map[string]any {
	var body map[string]any
	if err := json.NewDecoder(r.Body).Decode(&body); err != nil || body == nil {
		return map[string]any{}
	}
	return body
}
