package bookingcheck

import (
	"bytes"
	"errors"
	"reflect"
	"regexp"
	"strings"
	"sync"

	"github.com/go-playground/validator/v10"
	"github.com/tonelab-collective/booking/internal/modules/model"
)

// Flag accepts any JSON value and is set only by the literal true.
// A string "true", 1 or null all decode to false instead of failing the request.
type Flag bool

func (f *Flag) UnmarshalJSON(b []byte) error {
	*f = Flag(bytes.Equal(bytes.TrimSpace(b), []byte("true")))
	return nil
}

// Input is the booking payload as submitted by the public form.
type Input struct {
	FullName                   string  `json:"fullName" validate:"required,min=2,max=100,namechars,hasletter,notnumeric"`
	Telephone                  string  `json:"telephone" validate:"required,phonechars,phonedigits"`
	Email                      string  `json:"email" validate:"required,email,emailshape,realdomain"`
	ReceiptPath                *string `json:"receiptPath"`
	EarlyBirdConfirmed         Flag    `json:"earlyBirdConfirmed" validate:"mustbetrue"`
	CancellationPolicyAccepted Flag    `json:"cancellationPolicyAccepted" validate:"mustbetrue"`
}

type FieldError struct {
	Field   string `json:"field"`
	Message string `json:"message"`
}

// FieldErrors holds every violated rule of one payload.
type FieldErrors []FieldError

func (e FieldErrors) Error() string {
	parts := make([]string, 0, len(e))
	for _, fe := range e {
		parts = append(parts, fe.Field+": "+fe.Message)
	}
	return strings.Join(parts, "; ")
}

// Field returns the message recorded for field, or "".
func (e FieldErrors) Field(name string) string {
	for _, fe := range e {
		if fe.Field == name {
			return fe.Message
		}
	}
	return ""
}

var (
	nameCharsRe  = regexp.MustCompile(`^[a-zA-Z\s'\-.]+$`)
	letterRe     = regexp.MustCompile(`[a-zA-Z]`)
	digitsOnlyRe = regexp.MustCompile(`^\d+$`)
	phoneCharsRe = regexp.MustCompile(`^\+?[\d\s\-()]+$`)
	emailShapeRe = regexp.MustCompile(`^[^\s@]+@[^\s@]+\.[^\s@]+$`)
)

// placeholderDomains are rejected when contained anywhere in the email domain.
var placeholderDomains = []string{"example"}

var messages = map[string]map[string]string{
	"fullName": {
		"required":   "Full name must be at least 2 characters",
		"min":        "Full name must be at least 2 characters",
		"max":        "Full name is too long",
		"namechars":  "Full name can only contain letters, spaces, apostrophes, hyphens, and periods",
		"hasletter":  "Full name must contain at least one letter",
		"notnumeric": "Full name cannot be only numbers",
	},
	"telephone": {
		"required":    "Phone number is required",
		"phonechars":  "Phone number can only contain digits, spaces, dashes, parentheses, and + for country code",
		"phonedigits": "Phone number must have 8-15 digits",
	},
	"email": {
		"required":   "Email is required",
		"email":      "Please enter a valid email address",
		"emailshape": "Please enter a valid email format",
		"realdomain": "Please use a real email address",
	},
	"earlyBirdConfirmed": {
		"mustbetrue": "You must confirm the Early Bird payment deadline",
	},
	"cancellationPolicyAccepted": {
		"mustbetrue": "You must accept the cancellation policy",
	},
}

var (
	validate     *validator.Validate
	validateOnce sync.Once
)

func engine() *validator.Validate {
	validateOnce.Do(func() {
		v := validator.New(validator.WithRequiredStructEnabled())
		v.RegisterTagNameFunc(func(f reflect.StructField) string {
			name := strings.SplitN(f.Tag.Get("json"), ",", 2)[0]
			if name == "-" || name == "" {
				return f.Name
			}
			return name
		})
		_ = v.RegisterValidation("namechars", func(fl validator.FieldLevel) bool {
			return nameCharsRe.MatchString(fl.Field().String())
		})
		_ = v.RegisterValidation("hasletter", func(fl validator.FieldLevel) bool {
			return letterRe.MatchString(fl.Field().String())
		})
		_ = v.RegisterValidation("notnumeric", func(fl validator.FieldLevel) bool {
			return !digitsOnlyRe.MatchString(strings.TrimSpace(fl.Field().String()))
		})
		_ = v.RegisterValidation("phonechars", func(fl validator.FieldLevel) bool {
			return phoneCharsRe.MatchString(fl.Field().String())
		})
		_ = v.RegisterValidation("phonedigits", func(fl validator.FieldLevel) bool {
			n := CountDigits(fl.Field().String())
			return n >= 8 && n <= 15
		})
		_ = v.RegisterValidation("emailshape", func(fl validator.FieldLevel) bool {
			return emailShapeRe.MatchString(fl.Field().String())
		})
		_ = v.RegisterValidation("realdomain", func(fl validator.FieldLevel) bool {
			return IsRealDomain(fl.Field().String())
		})
		_ = v.RegisterValidation("mustbetrue", func(fl validator.FieldLevel) bool {
			return fl.Field().Bool()
		})
		validate = v
	})
	return validate
}

// CountDigits counts ASCII digits, ignoring every other character.
func CountDigits(s string) int {
	n := 0
	for _, r := range s {
		if r >= '0' && r <= '9' {
			n++
		}
	}
	return n
}

// IsRealDomain reports whether the email's domain is longer than two characters
// and is not a placeholder such as example.com.
func IsRealDomain(email string) bool {
	at := strings.LastIndex(email, "@")
	if at < 0 {
		return false
	}
	domain := strings.ToLower(email[at+1:])
	if len(domain) <= 2 {
		return false
	}
	for _, p := range placeholderDomains {
		if strings.Contains(domain, p) {
			return false
		}
	}
	return true
}

// NormalizeEmail trims and lower-cases an address.
func NormalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}

// Validate checks every rule and returns either the normalized booking or all
// field errors together. It never panics on malformed input.
func Validate(in Input) (*model.Booking, FieldErrors) {
	in.Email = NormalizeEmail(in.Email)
	in.FullName = strings.TrimSpace(in.FullName)
	in.Telephone = strings.TrimSpace(in.Telephone)

	err := engine().Struct(in)
	if err != nil {
		var verrs validator.ValidationErrors
		if !errors.As(err, &verrs) {
			return nil, FieldErrors{{Field: "payload", Message: err.Error()}}
		}
		out := make(FieldErrors, 0, len(verrs))
		for _, fe := range verrs {
			out = append(out, FieldError{Field: fe.Field(), Message: messageFor(fe.Field(), fe.Tag())})
		}
		return nil, out
	}

	b := &model.Booking{
		FullName:                   in.FullName,
		Telephone:                  in.Telephone,
		Email:                      in.Email,
		EarlyBirdConfirmed:         bool(in.EarlyBirdConfirmed),
		CancellationPolicyAccepted: bool(in.CancellationPolicyAccepted),
	}
	if in.ReceiptPath != nil && strings.TrimSpace(*in.ReceiptPath) != "" {
		p := strings.TrimSpace(*in.ReceiptPath)
		b.ReceiptPath = &p
	}
	return b, nil
}

func messageFor(field, tag string) string {
	if byTag, ok := messages[field]; ok {
		if msg, ok := byTag[tag]; ok {
			return msg
		}
	}
	return field + " is invalid"
}
