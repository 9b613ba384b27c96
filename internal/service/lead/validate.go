package lead

import (
	"errors"
	"reflect"
	"regexp"
	"strings"
	"unicode/utf8"

	"github.com/go-playground/validator/v10"

	"github.com/janisto/realty-portal/internal/location"
	"github.com/janisto/realty-portal/internal/service/postal"
)

// Free-text limits, in runes. Longer input is truncated, not rejected.
// Contact fields are validated against their limits instead, so a stored
// address or phone is always what the visitor typed.
const (
	maxName         = 100
	maxMessage      = 1000
	maxStreet       = 200
	maxNeighborhood = 100
	maxCity         = 100
	maxPropertyID   = 128
)

// emailShape is deliberately loose: something@something.something without
// whitespace.
var emailShape = regexp.MustCompile(`^[^\s@]+@[^\s@]+\.[^\s@]+$`)

var validate = newValidator()

func newValidator() *validator.Validate {
	v := validator.New()
	v.RegisterTagNameFunc(func(f reflect.StructField) string {
		name := strings.SplitN(f.Tag.Get("json"), ",", 2)[0]
		if name == "-" {
			return ""
		}
		return name
	})
	_ = v.RegisterValidation("email_shape", func(fl validator.FieldLevel) bool {
		return emailShape.MatchString(fl.Field().String())
	})
	_ = v.RegisterValidation("lead_source", func(fl validator.FieldLevel) bool {
		switch Source(fl.Field().String()) {
		case SourceContactForm, SourcePopupHome:
			return true
		}
		return false
	})
	return v
}

// submission is the sanitized input that is validated and stored.
type submission struct {
	Name         string `json:"name"         validate:"required"`
	Email        string `json:"email"        validate:"required,max=255,email_shape"`
	Phone        string `json:"phone"        validate:"required,max=20"`
	Message      string `json:"message"`
	PostalCode   string `json:"postalCode"   validate:"omitempty,len=8,numeric"`
	Street       string `json:"street"`
	Neighborhood string `json:"neighborhood"`
	City         string `json:"city"`
	State        string `json:"state"        validate:"omitempty,len=2,alpha"`
	PropertyID   string `json:"propertyId"`
	Source       string `json:"source"       validate:"lead_source"`
}

// sanitize trims every field and truncates the free-text ones. The postal
// code keeps only its digits so masked and unmasked input store the same
// value.
func sanitize(in Input) submission {
	source := strings.TrimSpace(string(in.Source))
	if source == "" {
		source = string(SourceContactForm)
	}
	return submission{
		Name:         truncate(in.Name, maxName),
		Email:        strings.ToLower(strings.TrimSpace(in.Email)),
		Phone:        strings.TrimSpace(in.Phone),
		Message:      truncate(in.Message, maxMessage),
		PostalCode:   postal.Digits(in.PostalCode),
		Street:       truncate(in.Street, maxStreet),
		Neighborhood: truncate(in.Neighborhood, maxNeighborhood),
		City:         truncate(in.City, maxCity),
		State:        strings.ToUpper(strings.TrimSpace(in.State)),
		PropertyID:   truncate(in.PropertyID, maxPropertyID),
		Source:       source,
	}
}

func (s submission) validate() error {
	err := validate.Struct(s)
	if err == nil {
		return nil
	}
	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) {
		return &ValidationError{Fields: []FieldError{{Field: "body", Reason: err.Error()}}}
	}
	fields := make([]FieldError, 0, len(verrs))
	for _, fe := range verrs {
		fields = append(fields, FieldError{Field: fe.Field(), Reason: reason(fe)})
	}
	return &ValidationError{Fields: fields}
}

func reason(fe validator.FieldError) string {
	switch fe.Tag() {
	case "required":
		return "is required"
	case "email_shape":
		return "must be a valid email address"
	case "max":
		return "must have at most " + fe.Param() + " characters"
	case "len":
		return "must have exactly " + fe.Param() + " characters"
	case "numeric":
		return "must contain only digits"
	case "alpha":
		return "must contain only letters"
	case "lead_source":
		return "must be one of contact_form, popup_home"
	default:
		return "is invalid"
	}
}

// truncate trims s and cuts it to at most n runes.
func truncate(s string, n int) string {
	s = strings.TrimSpace(s)
	if utf8.RuneCountInString(s) <= n {
		return s
	}
	return strings.TrimSpace(string([]rune(s)[:n]))
}

// normalizedCity is the stored city key.
func (s submission) normalizedCity() string {
	return location.Normalize(s.City)
}
