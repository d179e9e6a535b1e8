package roamstay

import (
	"encoding/json"
	"errors"
	"net/http"
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/julienschmidt/httprouter"
)

var validate = validator.New()

type loginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

type messageResponse struct {
	Message string `json:"message"`
}

func writeJSON(w http.ResponseWriter, status int, v interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		w.WriteHeader(http.StatusInternalServerError)
	}
}

func writeError(w http.ResponseWriter, status int, message string) {
	writeJSON(w, status, messageResponse{Message: message})
}

// encodeError maps service errors to a status code and the exact message
// the client contract pins down. Internal detail never crosses this
// boundary.
func encodeError(err error, kind string, w http.ResponseWriter) {
	switch {
	case errors.Is(err, ErrMissingFields):
		writeError(w, http.StatusBadRequest, "All required fields missing")
	case errors.Is(err, ErrInvalidEmail):
		writeError(w, http.StatusBadRequest, "Please provide a valid email address")
	case errors.Is(err, ErrTooManyPhotos):
		writeError(w, http.StatusBadRequest, "Photos exceed maximum photo limit (4)")
	case errors.Is(err, ErrEmailInUse):
		writeError(w, http.StatusBadRequest, "Email already exists")
	case errors.Is(err, ErrMissingCredentials):
		writeError(w, http.StatusBadRequest, "Email and password required")
	case errors.Is(err, ErrInvalidCredentials):
		writeError(w, http.StatusBadRequest, "Invalid email or password")
	case errors.Is(err, ErrNotPermitted):
		writeError(w, http.StatusUnauthorized, "Not authorized")
	case errors.Is(err, ErrNotFound):
		writeError(w, http.StatusNotFound, kindLabel(kind)+" not found")
	default:
		writeError(w, http.StatusInternalServerError, "Something went wrong")
	}
}

func kindLabel(kind string) string {
	if kind == "" {
		return "Account"
	}
	return strings.ToUpper(kind[:1]) + kind[1:]
}

// validateRequest runs the struct tags on a decoded request body and folds
// the result into the service error taxonomy.
func validateRequest(req interface{}) error {
	err := validate.Struct(req)
	if err == nil {
		return nil
	}

	var verrs validator.ValidationErrors
	if errors.As(err, &verrs) {
		for _, fe := range verrs {
			switch fe.Tag() {
			case "email":
				return ErrInvalidEmail
			case "max":
				return ErrTooManyPhotos
			}
		}
	}
	return ErrMissingFields
}

func decodeJSON(r *http.Request, v interface{}) error {
	if err := json.NewDecoder(r.Body).Decode(v); err != nil {
		return ErrMissingFields
	}
	return nil
}

func pathID(r *http.Request) ID {
	return ID(httprouter.ParamsFromContext(r.Context()).ByName("id"))
}
