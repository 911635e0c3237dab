package twin

import (
	"net/http"
)

func (s *Server) getCurrentSeller(w http.ResponseWriter, r *http.Request) {
	s.mu.Lock()
	defer s.mu.Unlock()

	seller := s.requestSeller(r)
	if seller == nil {
		unauthorized(w, "Invalid access token")
		return
	}
	writeJSON(w, 200, seller.view())
}

func (s *Server) updateCurrentSeller(w http.ResponseWriter, r *http.Request) {
	s.mu.Lock()
	defer s.mu.Unlock()

	seller := s.requestSeller(r)
	if seller == nil {
		unauthorized(w, "Invalid access token")
		return
	}

	body := decodeBody(r)
	var msgs []string
	if _, ok := body["firstName"]; ok {
		msgs = validateName(body, "firstName", msgs)
	}
	if _, ok := body["lastName"]; ok {
		msgs = validateName(body, "lastName", msgs)
	}
	if len(msgs) > 0 {
		writeValidation(w, msgs)
		return
	}

	if v, ok := body["firstName"].(string); ok {
		seller.FirstName = v
	}
	if v, ok := body["lastName"].(string); ok {
		seller.LastName = v
	}
	seller.UpdatedAt = nowStamp()
	writeJSON(w, 200, seller.view())
}
