package roamstay

import (
	"net/http"
	"strings"
)

type registerUserRequest struct {
	Name     string `json:"name" validate:"required"`
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required"`

	profilePhoto string
}

type updateUserRequest struct {
	Name         *string `json:"name"`
	Email        *string `json:"email"`
	Password     *string `json:"password"`
	ProfilePhoto *string `json:"profilePhoto"`
}

type userResponse struct {
	*User
	Token string `json:"token"`
}

// maxUploadBytes bounds the multipart form held in memory during a user
// registration with a profile photo.
const maxUploadBytes = 8 << 20

// RegisterUserHandler creates a user account. The request is either plain
// JSON or, when a profile photo is attached, multipart form data; the
// photo is stored by the FileStore and only its path is persisted.
func RegisterUserHandler(svc *Service[*User], photos FileStore) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		req, err := decodeRegisterUserRequest(r, photos)
		if err != nil {
			encodeError(err, "user", w)
			return
		}
		if err := validateRequest(req); err != nil {
			svc.logger.Warn().Str("email", req.Email).Msg("registration failed - invalid request")
			encodeError(err, "user", w)
			return
		}

		u, err := NewUser(req.Name, req.Email)
		if err != nil {
			encodeError(err, "user", w)
			return
		}
		u.ProfilePhoto = req.profilePhoto

		u, token, err := svc.Register(u, req.Password)
		if err != nil {
			encodeError(err, "user", w)
			return
		}

		writeJSON(w, http.StatusCreated, userResponse{User: u, Token: token})
	})
}

func decodeRegisterUserRequest(r *http.Request, photos FileStore) (registerUserRequest, error) {
	req := registerUserRequest{}

	if !strings.HasPrefix(r.Header.Get("Content-Type"), "multipart/form-data") {
		if err := decodeJSON(r, &req); err != nil {
			return req, err
		}
		return req, nil
	}

	if err := r.ParseMultipartForm(maxUploadBytes); err != nil {
		return req, ErrMissingFields
	}
	req.Name = r.FormValue("name")
	req.Email = r.FormValue("email")
	req.Password = r.FormValue("password")

	file, header, err := r.FormFile("profilePhoto")
	if err != nil {
		// The photo is optional.
		return req, nil
	}
	defer file.Close()

	path, err := photos.Save(header.Filename, file)
	if err != nil {
		return req, errInternal
	}
	req.profilePhoto = path
	return req, nil
}

func LoginUserHandler(svc *Service[*User]) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		req := loginRequest{}
		if err := decodeJSON(r, &req); err != nil {
			encodeError(ErrMissingCredentials, "user", w)
			return
		}

		u, token, err := svc.Login(req.Email, req.Password)
		if err != nil {
			encodeError(err, "user", w)
			return
		}

		writeJSON(w, http.StatusOK, userResponse{User: u, Token: token})
	})
}

func GetUserHandler(svc *Service[*User]) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		u, err := svc.GetProfile(pathID(r))
		if err != nil {
			encodeError(err, "user", w)
			return
		}
		writeJSON(w, http.StatusOK, u)
	})
}

// UpdateUserHandler applies a partial profile update. Only the
// authenticated user may update its own record.
func UpdateUserHandler(svc *Service[*User]) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		p, ok := principalFromContext[*User](r.Context())
		if !ok || p.ID != pathID(r) {
			encodeError(ErrNotPermitted, "user", w)
			return
		}

		req := updateUserRequest{}
		if err := decodeJSON(r, &req); err != nil {
			encodeError(err, "user", w)
			return
		}

		u, err := svc.UpdateProfile(p.ID, req.Password, func(u *User) error {
			if req.Name != nil {
				name := strings.TrimSpace(*req.Name)
				if name == "" {
					return ErrMissingFields
				}
				u.Name = name
			}
			if req.Email != nil {
				email, err := normalizeEmail(*req.Email)
				if err != nil {
					return err
				}
				u.Email = email
			}
			if req.ProfilePhoto != nil {
				u.ProfilePhoto = *req.ProfilePhoto
			}
			return nil
		})
		if err != nil {
			encodeError(err, "user", w)
			return
		}

		writeJSON(w, http.StatusOK, struct {
			Message string `json:"message"`
			User    *User  `json:"user"`
		}{"Profile updated successfully", u})
	})
}

func DeleteUserHandler(svc *Service[*User]) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		p, ok := principalFromContext[*User](r.Context())
		if !ok || p.ID != pathID(r) {
			encodeError(ErrNotPermitted, "user", w)
			return
		}

		if err := svc.Delete(p.ID); err != nil {
			encodeError(err, "user", w)
			return
		}
		writeJSON(w, http.StatusOK, messageResponse{Message: "User deleted successfully"})
	})
}

func LogoutUserHandler(svc *Service[*User]) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if p, ok := principalFromContext[*User](r.Context()); ok {
			svc.Logout(p)
		}
		writeJSON(w, http.StatusOK, messageResponse{Message: "Logout successful. Please clear token on client."})
	})
}
