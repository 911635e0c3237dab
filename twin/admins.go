package twin

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"golang.org/x/crypto/bcrypt"
)

// createSuperAdmin is the bootstrap endpoint. The server seeds a super admin,
// so against a provisioned instance every attempt is rejected.
func (s *Server) createSuperAdmin(w http.ResponseWriter, r *http.Request) {
	s.mu.Lock()
	defer s.mu.Unlock()

	for _, a := range s.admins {
		if a.IsSuper {
			writeError(w, 400, "Super admin already exists", "Bad Request")
			return
		}
	}

	body := decodeBody(r)
	var msgs []string
	msgs = validateName(body, "firstName", msgs)
	msgs = validateName(body, "lastName", msgs)
	msgs = validateEmail(body, msgs)
	msgs = validatePassword(body, "password", false, msgs)
	if len(msgs) > 0 {
		writeValidation(w, msgs)
		return
	}

	stamp := nowStamp()
	admin := &adminRecord{
		ID:           newID(),
		FirstName:    body["firstName"].(string),
		LastName:     body["lastName"].(string),
		Email:        body["email"].(string),
		PasswordHash: hash(body["password"].(string)),
		Permissions:  []string{},
		IsSuper:      true,
		IsActive:     true,
		CreatedAt:    stamp,
		UpdatedAt:    stamp,
	}
	s.admins[admin.ID] = admin
	writeJSON(w, 200, admin.view())
}

func (s *Server) createAdmin(w http.ResponseWriter, r *http.Request) {
	s.mu.Lock()
	defer s.mu.Unlock()

	actor := s.requestAdmin(r)
	if actor == nil || !actor.can("admins_write") {
		forbidden(w)
		return
	}

	body := decodeBody(r)
	var msgs []string
	msgs = validateName(body, "firstName", msgs)
	msgs = validateName(body, "lastName", msgs)
	msgs = validateEmail(body, msgs)
	msgs = validatePassword(body, "password", false, msgs)
	msgs = validatePermissions(body, msgs)
	if len(msgs) > 0 {
		writeValidation(w, msgs)
		return
	}
	if permissionsContainAll(body) {
		writeError(w, 400, "Invalid permission requested: all", "Bad Request")
		return
	}

	email := body["email"].(string)
	if s.adminByEmail(email) != nil {
		writeError(w, 409, "An admin already exists with this email", "Conflict")
		return
	}

	isActive := true
	if v, ok := body["isActive"].(bool); ok {
		isActive = v
	}

	stamp := nowStamp()
	admin := &adminRecord{
		ID:           newID(),
		FirstName:    body["firstName"].(string),
		LastName:     body["lastName"].(string),
		Designation:  body["designation"],
		Email:        email,
		PasswordHash: hash(body["password"].(string)),
		Permissions:  toStrings(body["permissions"]),
		IsActive:     isActive,
		CreatedAt:    stamp,
		UpdatedAt:    stamp,
	}
	s.admins[admin.ID] = admin
	writeJSON(w, 200, admin.view())
}

// validatePartial runs the present-field validators a PATCH uses: absent keys
// are skipped, null and malformed values still fail.
func validatePartial(body map[string]any) []string {
	var msgs []string
	if _, ok := body["firstName"]; ok {
		msgs = validateName(body, "firstName", msgs)
	}
	if _, ok := body["lastName"]; ok {
		msgs = validateName(body, "lastName", msgs)
	}
	if _, ok := body["email"]; ok {
		msgs = validateEmail(body, msgs)
	}
	if _, ok := body["password"]; ok {
		msgs = validatePassword(body, "password", false, msgs)
	}
	if _, ok := body["permissions"]; ok {
		msgs = validatePermissions(body, msgs)
	}
	return msgs
}

// applyAdminPatch writes the validated fields onto the record.
func applyAdminPatch(admin *adminRecord, body map[string]any) {
	if v, ok := body["firstName"].(string); ok {
		admin.FirstName = v
	}
	if v, ok := body["lastName"].(string); ok {
		admin.LastName = v
	}
	if v, ok := body["email"].(string); ok {
		admin.Email = v
	}
	if _, ok := body["designation"]; ok {
		admin.Designation = body["designation"]
	}
	if _, ok := body["permissions"]; ok {
		admin.Permissions = toStrings(body["permissions"])
	}
	if v, ok := body["isActive"].(bool); ok {
		admin.IsActive = v
	}
	if v, ok := body["password"].(string); ok {
		admin.PasswordHash = hash(v)
	}
	admin.UpdatedAt = nowStamp()
}

func (s *Server) updateAdmin(w http.ResponseWriter, r *http.Request) {
	s.mu.Lock()
	defer s.mu.Unlock()

	actor := s.requestAdmin(r)
	if actor == nil || !actor.can("admins_write") {
		forbidden(w)
		return
	}

	adminID := chi.URLParam(r, "adminID")
	if !validID.MatchString(adminID) {
		writeError(w, 400, "Validation failed (id is expected to be a key)", "Bad Request")
		return
	}

	body := decodeBody(r)
	if msgs := validatePartial(body); len(msgs) > 0 {
		writeValidation(w, msgs)
		return
	}
	if permissionsContainAll(body) {
		writeError(w, 400, "Invalid permission requested: all", "Bad Request")
		return
	}

	admin, ok := s.admins[adminID]
	if !ok {
		writeError(w, 404, "Admin not found", "Not Found")
		return
	}

	applyAdminPatch(admin, body)
	writeJSON(w, 200, admin.view())
}

func (s *Server) deleteAdmin(w http.ResponseWriter, r *http.Request) {
	s.mu.Lock()
	defer s.mu.Unlock()

	actor := s.requestAdmin(r)
	if actor == nil || !actor.can("admins_write") {
		forbidden(w)
		return
	}

	adminID := chi.URLParam(r, "adminID")
	if !validID.MatchString(adminID) {
		writeError(w, 400, "Validation failed (id is expected to be a key)", "Bad Request")
		return
	}

	admin, ok := s.admins[adminID]
	if !ok {
		writeError(w, 404, "Admin not found", "Not Found")
		return
	}

	delete(s.admins, adminID)
	writeJSON(w, 200, admin.view())
}

func (s *Server) getCurrentAdmin(w http.ResponseWriter, r *http.Request) {
	s.mu.Lock()
	defer s.mu.Unlock()

	admin := s.requestAdmin(r)
	if admin == nil {
		unauthorized(w, "Invalid access token")
		return
	}
	writeJSON(w, 200, admin.view())
}

func (s *Server) updateCurrentAdmin(w http.ResponseWriter, r *http.Request) {
	s.mu.Lock()
	defer s.mu.Unlock()

	admin := s.requestAdmin(r)
	if admin == nil {
		unauthorized(w, "Invalid access token")
		return
	}
	if !admin.can("admins_read") && !admin.can("admins_write") {
		forbidden(w)
		return
	}

	body := decodeBody(r)
	if msgs := validatePartial(body); len(msgs) > 0 {
		writeValidation(w, msgs)
		return
	}
	if permissionsContainAll(body) {
		writeError(w, 400, "Invalid permission requested: all", "Bad Request")
		return
	}

	applyAdminPatch(admin, body)
	writeJSON(w, 200, admin.view())
}

func (s *Server) updateCurrentAdminPassword(w http.ResponseWriter, r *http.Request) {
	s.mu.Lock()
	defer s.mu.Unlock()

	admin := s.requestAdmin(r)
	if admin == nil {
		unauthorized(w, "Invalid access token")
		return
	}

	body := decodeBody(r)
	var msgs []string
	msgs = validatePassword(body, "oldPassword", false, msgs)
	msgs = validatePassword(body, "newPassword", false, msgs)
	if len(msgs) > 0 {
		writeValidation(w, msgs)
		return
	}

	if bcrypt.CompareHashAndPassword(admin.PasswordHash, []byte(body["oldPassword"].(string))) != nil {
		unauthorized(w, "Incorrect old password")
		return
	}

	admin.PasswordHash = hash(body["newPassword"].(string))
	admin.UpdatedAt = nowStamp()
	writeJSON(w, 200, admin.view())
}
