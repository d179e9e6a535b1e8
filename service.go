package roamstay

import (
	"errors"
	"strings"
	"time"

	"github.com/rs/zerolog"
)

// errInternal masks unexpected persistence and hashing failures. The detail
// is logged; the client only ever sees a generic message.
var errInternal = errors.New("something went wrong")

// Service orchestrates registration, login and profile management for one
// principal kind. The same implementation backs both users and owners,
// parameterized by the repository it resolves against.
type Service[P Principal] struct {
	accounts Repository[P]
	tokens   *TokenIssuer
	logger   zerolog.Logger
}

func NewService[P Principal](accounts Repository[P], tokens *TokenIssuer, logger zerolog.Logger) *Service[P] {
	return &Service[P]{accounts: accounts, tokens: tokens, logger: logger}
}

// Register persists the validated, unsaved principal p with the given
// plaintext password hashed, assigns it an id, and returns it sanitized
// together with a fresh bearer token.
func (svc *Service[P]) Register(p P, password string) (P, string, error) {
	var zero P

	if strings.TrimSpace(password) == "" {
		svc.logger.Warn().Str("email", p.AccountEmail()).Msg("registration failed - missing fields")
		return zero, "", ErrMissingFields
	}

	if _, err := svc.accounts.FindByEmail(p.AccountEmail()); err == nil {
		svc.logger.Warn().Str("email", p.AccountEmail()).Msg("registration failed - duplicate email")
		return zero, "", ErrEmailInUse
	}

	hash, err := hashPassword(password)
	if err != nil {
		svc.logger.Error().Err(err).Msg("registration failed - hashing error")
		return zero, "", errInternal
	}
	p.setPasswordHash(hash)
	p.assignID(nextID())
	p.stamp(time.Now().UTC())

	if err := svc.accounts.Store(p); err != nil {
		// Two racing registrations: the unique index decides and the loser
		// surfaces the same duplicate-email error as the pre-check.
		if errors.Is(err, ErrEmailInUse) {
			svc.logger.Warn().Str("email", p.AccountEmail()).Msg("registration failed - duplicate email")
			return zero, "", ErrEmailInUse
		}
		svc.logger.Error().Err(err).Msg("registration failed - store error")
		return zero, "", errInternal
	}

	token, err := svc.tokens.Issue(p.AccountID())
	if err != nil {
		svc.logger.Error().Err(err).Msg("registration failed - token error")
		return zero, "", errInternal
	}

	svc.logger.Info().Str("id", string(p.AccountID())).Str("email", p.AccountEmail()).Msg("new account registered")

	p.sanitize()
	return p, token, nil
}

// Login validates the credentials and returns the sanitized principal with
// a fresh token. Unknown email and wrong password yield the same error so
// accounts cannot be enumerated.
func (svc *Service[P]) Login(email, password string) (P, string, error) {
	var zero P

	email = strings.ToLower(strings.TrimSpace(email))
	if email == "" || password == "" {
		return zero, "", ErrMissingCredentials
	}

	p, err := svc.accounts.FindByEmail(email)
	if err != nil {
		if errors.Is(err, ErrNotFound) {
			svc.logger.Warn().Str("email", email).Msg("login failed - unknown email")
			return zero, "", ErrInvalidCredentials
		}
		svc.logger.Error().Err(err).Msg("login failed - lookup error")
		return zero, "", errInternal
	}

	if !checkPasswordHash(p.passwordHash(), password) {
		svc.logger.Warn().Str("email", email).Msg("login failed - wrong password")
		return zero, "", ErrInvalidCredentials
	}

	token, err := svc.tokens.Issue(p.AccountID())
	if err != nil {
		svc.logger.Error().Err(err).Msg("login failed - token error")
		return zero, "", errInternal
	}

	svc.logger.Info().Str("id", string(p.AccountID())).Msg("account logged in")

	p.sanitize()
	return p, token, nil
}

// GetProfile returns the sanitized principal with the given id.
func (svc *Service[P]) GetProfile(id ID) (P, error) {
	var zero P

	p, err := svc.accounts.FindByID(id)
	if err != nil {
		if errors.Is(err, ErrNotFound) {
			return zero, ErrNotFound
		}
		svc.logger.Error().Err(err).Msg("get profile failed - lookup error")
		return zero, errInternal
	}

	p.sanitize()
	return p, nil
}

// UpdateProfile applies a partial update to the principal with the given
// id. A non-nil password is re-hashed before persisting; all other fields
// are applied by the caller-supplied closure, which never touches
// store-generated identifiers.
func (svc *Service[P]) UpdateProfile(id ID, password *string, apply func(P) error) (P, error) {
	var zero P

	p, err := svc.accounts.FindByID(id)
	if err != nil {
		if errors.Is(err, ErrNotFound) {
			svc.logger.Warn().Str("id", string(id)).Msg("update failed - account not found")
			return zero, ErrNotFound
		}
		svc.logger.Error().Err(err).Msg("update failed - lookup error")
		return zero, errInternal
	}

	if password != nil && *password != "" {
		hash, err := hashPassword(*password)
		if err != nil {
			svc.logger.Error().Err(err).Msg("update failed - hashing error")
			return zero, errInternal
		}
		p.setPasswordHash(hash)
	}

	if err := apply(p); err != nil {
		return zero, err
	}
	p.stamp(time.Now().UTC())

	if err := svc.accounts.Update(p); err != nil {
		if errors.Is(err, ErrEmailInUse) {
			svc.logger.Warn().Str("id", string(id)).Msg("update failed - duplicate email")
			return zero, ErrEmailInUse
		}
		svc.logger.Error().Err(err).Msg("update failed - store error")
		return zero, errInternal
	}

	svc.logger.Info().Str("id", string(id)).Msg("profile updated")

	p.sanitize()
	return p, nil
}

// Delete removes the principal with the given id. Outstanding tokens for
// the account are not revoked; they die on the guard's lookup instead.
func (svc *Service[P]) Delete(id ID) error {
	if err := svc.accounts.Delete(id); err != nil {
		if errors.Is(err, ErrNotFound) {
			svc.logger.Warn().Str("id", string(id)).Msg("delete failed - account not found")
			return ErrNotFound
		}
		svc.logger.Error().Err(err).Msg("delete failed - store error")
		return errInternal
	}

	svc.logger.Info().Str("id", string(id)).Msg("account deleted")
	return nil
}

// Logout is a stateless acknowledgement. Tokens are not tracked server
// side, so the only effect is the audit log entry; the client discards its
// stored copy.
func (svc *Service[P]) Logout(p P) {
	svc.logger.Info().Str("id", string(p.AccountID())).Msg("account logged out")
}
