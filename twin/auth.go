package twin

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"golang.org/x/crypto/bcrypt"
)

func (s *Server) adminSignin(w http.ResponseWriter, r *http.Request) {
	body := decodeBody(r)

	var msgs []string
	msgs = validateEmail(body, msgs)
	msgs = validatePassword(body, "password", false, msgs)
	if len(msgs) > 0 {
		writeValidation(w, msgs)
		return
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	admin := s.adminByEmail(body["email"].(string))
	if admin == nil || bcrypt.CompareHashAndPassword(admin.PasswordHash, []byte(body["password"].(string))) != nil {
		unauthorized(w, "Incorrect email or password")
		return
	}
	writeJSON(w, 200, s.tokenPair(subjectAdmin, admin.ID, ""))
}

func (s *Server) sellerSignup(w http.ResponseWriter, r *http.Request) {
	body := decodeBody(r)

	var msgs []string
	msgs = validateName(body, "firstName", msgs)
	msgs = validateName(body, "lastName", msgs)
	msgs = validateEmail(body, msgs)
	msgs = validatePassword(body, "password", true, msgs)
	if len(msgs) > 0 {
		writeValidation(w, msgs)
		return
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	email := body["email"].(string)
	if s.sellerByEmail(email) != nil {
		writeError(w, 409, "A seller already exists with this email", "Conflict")
		return
	}

	stamp := nowStamp()
	seller := &sellerRecord{
		ID:           newID(),
		FirstName:    body["firstName"].(string),
		LastName:     body["lastName"].(string),
		Email:        email,
		PasswordHash: hash(body["password"].(string)),
		IsActive:     true,
		CreatedAt:    stamp,
		UpdatedAt:    stamp,
	}
	s.sellers[seller.ID] = seller
	writeJSON(w, 200, seller.view())
}

func (s *Server) sellerSignin(w http.ResponseWriter, r *http.Request) {
	body := decodeBody(r)

	var msgs []string
	msgs = validateEmail(body, msgs)
	msgs = validatePassword(body, "password", true, msgs)
	if len(msgs) > 0 {
		writeValidation(w, msgs)
		return
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	seller := s.sellerByEmail(body["email"].(string))
	if seller == nil || bcrypt.CompareHashAndPassword(seller.PasswordHash, []byte(body["password"].(string))) != nil {
		unauthorized(w, "Incorrect email or password")
		return
	}
	writeJSON(w, 200, s.tokenPair(subjectSeller, seller.ID, ""))
}

// sellerStoreSignin exchanges a seller token for a store-scoped one. Admin
// tokens are forbidden outright; sellers get 401 for stores they are not
// staff of, including ids that do not exist.
func (s *Server) sellerStoreSignin(w http.ResponseWriter, r *http.Request) {
	claims := s.parseBearer(r)
	if claims == nil {
		unauthorized(w, "Invalid access token")
		return
	}
	if claims.Type == subjectAdmin {
		forbidden(w)
		return
	}
	if claims.Type != subjectSeller {
		unauthorized(w, "Invalid access token")
		return
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	seller, ok := s.sellers[claims.Subject]
	if !ok {
		unauthorized(w, "Invalid access token")
		return
	}

	storeID := chi.URLParam(r, "storeID")
	for _, st := range seller.Stores {
		if st.ID == storeID {
			writeJSON(w, 200, s.tokenPair(subjectSeller, seller.ID, st.ID))
			return
		}
	}
	unauthorized(w, "Unauthorized to access this store")
}
