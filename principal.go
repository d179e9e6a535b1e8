package roamstay

import (
	"errors"
	"fmt"
	"math/rand"
	"regexp"
	"strings"
	"time"

	"github.com/rs/xid"
)

// Repository is the credential store for one principal kind. Uniqueness of
// email is ultimately guaranteed by the store's unique index; Store and
// Update must return ErrEmailInUse when that index is violated.
type Repository[P Principal] interface {
	FindByID(id ID) (P, error)
	FindByEmail(email string) (P, error)
	Store(p P) error
	Update(p P) error
	Delete(id ID) error
}

type ID string

// Principal is an authenticable account. User and Owner are the only two
// implementations; they live in separate collections and may share an email.
type Principal interface {
	AccountID() ID
	AccountEmail() string

	assignID(id ID)
	passwordHash() string
	setPasswordHash(hash string)
	stamp(now time.Time)
	sanitize()
	clone() Principal
}

type User struct {
	ID           ID        `bson:"_id" json:"_id"`
	Name         string    `bson:"name" json:"name"`
	Email        string    `bson:"email" json:"email"`
	Password     string    `bson:"password" json:"-"`
	ProfilePhoto string    `bson:"profilePhoto" json:"profilePhoto"`
	CreatedAt    time.Time `bson:"createdAt" json:"createdAt"`
	UpdatedAt    time.Time `bson:"updatedAt" json:"updatedAt"`
}

type Owner struct {
	ID         ID        `bson:"_id" json:"_id"`
	ResortID   string    `bson:"resortId" json:"resortId"`
	ResortName string    `bson:"resortName" json:"resortName"`
	OwnerName  string    `bson:"ownerName" json:"ownerName"`
	Email      string    `bson:"email" json:"email"`
	Password   string    `bson:"password" json:"-"`
	Photos     []string  `bson:"photos" json:"photos"`
	CreatedAt  time.Time `bson:"createdAt" json:"createdAt"`
	UpdatedAt  time.Time `bson:"updatedAt" json:"updatedAt"`
}

var (
	ErrNotFound           = errors.New("account not found")
	ErrInvalidEmail       = errors.New("invalid email address")
	ErrMissingFields      = errors.New("missing required fields")
	ErrEmailInUse         = errors.New("email already exists")
	ErrMissingCredentials = errors.New("email and password required")
	ErrInvalidCredentials = errors.New("invalid email or password")
	ErrNotPermitted       = errors.New("not authorized")
	ErrTooManyPhotos      = errors.New("too many photos")
)

// maxOwnerPhotos caps the photo list on an Owner record.
const maxOwnerPhotos = 4

var emailRegexp = regexp.MustCompile(`^\S+@\S+\.\S+$`)

// NewUser validates the required registration fields and returns an
// unsaved User. The email is stored lowercase.
func NewUser(name, email string) (*User, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return nil, ErrMissingFields
	}

	e, err := normalizeEmail(email)
	if err != nil {
		return nil, err
	}

	return &User{Name: name, Email: e}, nil
}

// NewOwner validates the required registration fields and returns an
// unsaved Owner with a freshly generated resort id.
func NewOwner(resortName, ownerName, email string, photos []string) (*Owner, error) {
	resortName = strings.TrimSpace(resortName)
	ownerName = strings.TrimSpace(ownerName)
	if resortName == "" || ownerName == "" {
		return nil, ErrMissingFields
	}

	e, err := normalizeEmail(email)
	if err != nil {
		return nil, err
	}

	if len(photos) > maxOwnerPhotos {
		return nil, ErrTooManyPhotos
	}
	if photos == nil {
		photos = []string{}
	}

	return &Owner{
		ResortID:   newResortID(),
		ResortName: resortName,
		OwnerName:  ownerName,
		Email:      e,
		Photos:     photos,
	}, nil
}

func normalizeEmail(email string) (string, error) {
	e := strings.ToLower(strings.TrimSpace(email))
	if e == "" {
		return "", ErrMissingFields
	}
	if !emailRegexp.MatchString(e) {
		return "", ErrInvalidEmail
	}
	return e, nil
}

func (u *User) AccountID() ID            { return u.ID }
func (u *User) AccountEmail() string     { return u.Email }
func (u *User) assignID(id ID)           { u.ID = id }
func (u *User) passwordHash() string     { return u.Password }
func (u *User) setPasswordHash(h string) { u.Password = h }
func (u *User) sanitize()                { u.Password = "" }

func (u *User) stamp(now time.Time) {
	if u.CreatedAt.IsZero() {
		u.CreatedAt = now
	}
	u.UpdatedAt = now
}

func (u *User) clone() Principal {
	c := *u
	return &c
}

func (o *Owner) AccountID() ID            { return o.ID }
func (o *Owner) AccountEmail() string     { return o.Email }
func (o *Owner) assignID(id ID)           { o.ID = id }
func (o *Owner) passwordHash() string     { return o.Password }
func (o *Owner) setPasswordHash(h string) { o.Password = h }
func (o *Owner) sanitize()                { o.Password = "" }

func (o *Owner) stamp(now time.Time) {
	if o.CreatedAt.IsZero() {
		o.CreatedAt = now
	}
	o.UpdatedAt = now
}

func (o *Owner) clone() Principal {
	c := *o
	c.Photos = append([]string(nil), o.Photos...)
	return &c
}

func nextID() ID {
	return ID(xid.New().String())
}

//IsValidID checks if a given id is valid based on the xid library definition of a valid id
// this method should change if we ever change our uid generation library
func IsValidID(id string) bool {
	if _, err := xid.FromString(id); err != nil {
		return false
	}
	return true
}

// newResortID generates the human-readable resort identifier assigned once
// at owner creation. Format: RES- followed by four random digits.
func newResortID() string {
	return fmt.Sprintf("RES-%d", 1000+rand.Intn(9000))
}
