package roamstay

import (
	"net/http"
	"strings"
)

type registerOwnerRequest struct {
	ResortName string   `json:"resortName" validate:"required"`
	OwnerName  string   `json:"ownerName" validate:"required"`
	Email      string   `json:"email" validate:"required,email"`
	Password   string   `json:"password" validate:"required"`
	Photos     []string `json:"photos" validate:"max=4"`
}

// updateOwnerRequest deliberately has no resortId field: the resort id is
// generated once at creation and ignored if a client sends it back.
type updateOwnerRequest struct {
	ResortName *string   `json:"resortName"`
	OwnerName  *string   `json:"ownerName"`
	Email      *string   `json:"email"`
	Password   *string   `json:"password"`
	Photos     *[]string `json:"photos"`
}

type ownerResponse struct {
	*Owner
	Token string `json:"token"`
}

func RegisterOwnerHandler(svc *Service[*Owner]) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		req := registerOwnerRequest{}
		if err := decodeJSON(r, &req); err != nil {
			encodeError(err, "owner", w)
			return
		}
		if err := validateRequest(req); err != nil {
			svc.logger.Warn().Str("email", req.Email).Msg("registration failed - invalid request")
			encodeError(err, "owner", w)
			return
		}

		o, err := NewOwner(req.ResortName, req.OwnerName, req.Email, req.Photos)
		if err != nil {
			encodeError(err, "owner", w)
			return
		}

		o, token, err := svc.Register(o, req.Password)
		if err != nil {
			encodeError(err, "owner", w)
			return
		}

		writeJSON(w, http.StatusCreated, ownerResponse{Owner: o, Token: token})
	})
}

func LoginOwnerHandler(svc *Service[*Owner]) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		req := loginRequest{}
		if err := decodeJSON(r, &req); err != nil {
			encodeError(ErrMissingCredentials, "owner", w)
			return
		}

		o, token, err := svc.Login(req.Email, req.Password)
		if err != nil {
			encodeError(err, "owner", w)
			return
		}

		writeJSON(w, http.StatusOK, ownerResponse{Owner: o, Token: token})
	})
}

func GetOwnerHandler(svc *Service[*Owner]) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		o, err := svc.GetProfile(pathID(r))
		if err != nil {
			encodeError(err, "owner", w)
			return
		}
		writeJSON(w, http.StatusOK, o)
	})
}

// UpdateOwnerHandler applies a partial profile update. Only the
// authenticated owner may update its own record, and the generated resort
// id survives every update unchanged.
func UpdateOwnerHandler(svc *Service[*Owner]) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		p, ok := principalFromContext[*Owner](r.Context())
		if !ok || p.ID != pathID(r) {
			encodeError(ErrNotPermitted, "owner", w)
			return
		}

		req := updateOwnerRequest{}
		if err := decodeJSON(r, &req); err != nil {
			encodeError(err, "owner", w)
			return
		}

		o, err := svc.UpdateProfile(p.ID, req.Password, func(o *Owner) error {
			if req.ResortName != nil {
				name := strings.TrimSpace(*req.ResortName)
				if name == "" {
					return ErrMissingFields
				}
				o.ResortName = name
			}
			if req.OwnerName != nil {
				name := strings.TrimSpace(*req.OwnerName)
				if name == "" {
					return ErrMissingFields
				}
				o.OwnerName = name
			}
			if req.Email != nil {
				email, err := normalizeEmail(*req.Email)
				if err != nil {
					return err
				}
				o.Email = email
			}
			if req.Photos != nil {
				if len(*req.Photos) > maxOwnerPhotos {
					return ErrTooManyPhotos
				}
				o.Photos = *req.Photos
			}
			return nil
		})
		if err != nil {
			encodeError(err, "owner", w)
			return
		}

		writeJSON(w, http.StatusOK, struct {
			Message string `json:"message"`
			Owner   *Owner `json:"owner"`
		}{"Profile updated successfully", o})
	})
}

func DeleteOwnerHandler(svc *Service[*Owner]) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		p, ok := principalFromContext[*Owner](r.Context())
		if !ok || p.ID != pathID(r) {
			encodeError(ErrNotPermitted, "owner", w)
			return
		}

		if err := svc.Delete(p.ID); err != nil {
			encodeError(err, "owner", w)
			return
		}
		writeJSON(w, http.StatusOK, messageResponse{Message: "Owner deleted successfully"})
	})
}

func LogoutOwnerHandler(svc *Service[*Owner]) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if p, ok := principalFromContext[*Owner](r.Context()); ok {
			svc.Logout(p)
		}
		writeJSON(w, http.StatusOK, messageResponse{Message: "Logout successful. Please clear token on client."})
	})
}
