package twin

import (
	"strings"
	"time"

	"github.com/google/uuid"

	"golang.org/x/crypto/bcrypt"
)

const timeLayout = "2006-01-02T15:04:05.000Z"

type adminRecord struct {
	ID           string
	FirstName    string
	LastName     string
	Designation  any
	Email        string
	PasswordHash []byte
	Permissions  []string
	IsSuper      bool
	IsActive     bool
	CreatedAt    string
	UpdatedAt    string
}

type storeRecord struct {
	ID        string
	Name      string
	IsActive  bool
	CreatedAt string
	UpdatedAt string
}

type sellerRecord struct {
	ID                string
	FirstName         string
	LastName          string
	Email             string
	PasswordHash      []byte
	IsProfileComplete bool
	IsActive          bool
	ProfilePhoto      map[string]any
	Stores            []storeRecord
	CreatedAt         string
	UpdatedAt         string
}

func (a *adminRecord) view() map[string]any {
	return map[string]any{
		"id":          a.ID,
		"firstName":   a.FirstName,
		"lastName":    a.LastName,
		"designation": a.Designation,
		"email":       a.Email,
		"permissions": a.Permissions,
		"isActive":    a.IsActive,
		"createdAt":   a.CreatedAt,
		"updatedAt":   a.UpdatedAt,
	}
}

func (s *sellerRecord) view() map[string]any {
	stores := make([]any, 0, len(s.Stores))
	for _, st := range s.Stores {
		stores = append(stores, map[string]any{
			"id":        st.ID,
			"name":      st.Name,
			"isActive":  st.IsActive,
			"createdAt": st.CreatedAt,
			"updatedAt": st.UpdatedAt,
		})
	}
	v := map[string]any{
		"id":                s.ID,
		"firstName":         s.FirstName,
		"lastName":          s.LastName,
		"email":             s.Email,
		"isProfileComplete": s.IsProfileComplete,
		"isActive":          s.IsActive,
		"stores":            stores,
		"createdAt":         s.CreatedAt,
		"updatedAt":         s.UpdatedAt,
	}
	if s.ProfilePhoto != nil {
		v["profilePhoto"] = s.ProfilePhoto
	}
	return v
}

func (a *adminRecord) can(perm string) bool {
	if a.IsSuper {
		return true
	}
	for _, p := range a.Permissions {
		if p == perm {
			return true
		}
	}
	return false
}

// newID mints a 24-character lowercase id in the backend's key style.
func newID() string {
	raw := strings.ReplaceAll(uuid.NewString()+uuid.NewString(), "-", "")
	return strings.ToLower(raw[:24])
}

func nowStamp() string {
	return time.Now().UTC().Format(timeLayout)
}

func hash(password string) []byte {
	h, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.MinCost)
	if err != nil {
		panic(err)
	}
	return h
}

func (s *Server) seed() {
	stamp := nowStamp()

	super := &adminRecord{
		ID:           newID(),
		FirstName:    "Robin",
		LastName:     "Rezwan",
		Designation:  "founder",
		Email:        "rezwankabirrobin@gmail.com",
		PasswordHash: hash("11111111"),
		Permissions:  []string{},
		IsSuper:      true,
		IsActive:     true,
		CreatedAt:    stamp,
		UpdatedAt:    stamp,
	}
	current := &adminRecord{
		ID:           newID(),
		FirstName:    "Robin",
		LastName:     "Rezwan",
		Designation:  "operations",
		Email:        "robin.rezwan@gmail.com",
		PasswordHash: hash("12345678"),
		Permissions:  []string{"admins_read", "admins_write", "sellers_read", "sellers_write"},
		IsActive:     true,
		CreatedAt:    stamp,
		UpdatedAt:    stamp,
	}
	s.admins[super.ID] = super
	s.admins[current.ID] = current

	photoID := newID()
	seller := &sellerRecord{
		ID:           newID(),
		FirstName:    "Prianti",
		LastName:     "Banik",
		Email:        "rezwankabirrobin@gmail.com",
		PasswordHash: hash("11111111"),
		IsActive:     true,
		ProfilePhoto: map[string]any{
			"id":        photoID,
			"url":       "https://cdn.pengine.dev/photos/" + photoID + ".jpg",
			"createdAt": stamp,
			"updatedAt": stamp,
			"variants": map[string]any{
				"tiny": map[string]any{
					"url": "https://cdn.pengine.dev/photos/" + photoID + "-tiny.jpg",
				},
			},
		},
		Stores: []storeRecord{{
			ID:        "gsso0e05ljljvf3jafnzfd51",
			Name:      "Default Store",
			IsActive:  true,
			CreatedAt: stamp,
			UpdatedAt: stamp,
		}},
		CreatedAt: stamp,
		UpdatedAt: stamp,
	}
	s.sellers[seller.ID] = seller
}

func (s *Server) adminByEmail(email string) *adminRecord {
	for _, a := range s.admins {
		if a.Email == email {
			return a
		}
	}
	return nil
}

func (s *Server) sellerByEmail(email string) *sellerRecord {
	for _, sl := range s.sellers {
		if sl.Email == email {
			return sl
		}
	}
	return nil
}
