package checkout

import (
	"reflect"
	"regexp"
	"strings"

	"github.com/go-playground/validator/v10"
)

// Form is the raw checkout form as submitted by the client
type Form struct {
	FirstName  string `json:"prenom" validate:"required,min=2,max=100"`
	LastName   string `json:"nom" validate:"required,min=2,max=100"`
	Email      string `json:"email" validate:"required,email"`
	Phone      string `json:"telephone" validate:"required,phone_ma"`
	Address    string `json:"adresse" validate:"required,min=10,max=500"`
	Address2   string `json:"adresse2" validate:"omitempty,max=500"`
	City       string `json:"ville" validate:"required,city_ma"`
	PostalCode string `json:"code_postal" validate:"required,postal_ma"`
	Notes      string `json:"notes" validate:"omitempty,max=500"`
	PromoCode  string `json:"code_promo" validate:"omitempty,promo_shape"`
}

// FullName returns the customer name the way it is stored on orders
func (f Form) FullName() string {
	return strings.TrimSpace(f.FirstName + " " + f.LastName)
}

// ShippingLine folds the optional second address line into one string
func (f Form) ShippingLine() string {
	if f.Address2 != "" {
		return f.Address + ", " + f.Address2
	}
	return f.Address
}

// FieldErrors maps field names to one user-facing message each, so the
// caller can render inline feedback without discarding valid fields.
type FieldErrors map[string]string

// Error implements the error interface
func (e FieldErrors) Error() string {
	parts := make([]string, 0, len(e))
	for field, msg := range e {
		parts = append(parts, field+": "+msg)
	}
	return strings.Join(parts, "; ")
}

var (
	// Moroccan mobile or landline: leading 0 or +212, then 5/6/7 and eight digits
	phonePattern  = regexp.MustCompile(`^(0|\+212)[5-7][0-9]{8}$`)
	postalPattern = regexp.MustCompile(`^\d{5}$`)
	promoPattern  = regexp.MustCompile(`^[A-Z0-9-_]{3,50}$`)
)

// fieldMessages holds the French inline message for each field and rule
var fieldMessages = map[string]map[string]string{
	"prenom": {
		"required": "Le prénom est requis",
		"min":      "Le prénom doit contenir au moins 2 caractères",
		"max":      "Le prénom est trop long",
	},
	"nom": {
		"required": "Le nom est requis",
		"min":      "Le nom doit contenir au moins 2 caractères",
		"max":      "Le nom est trop long",
	},
	"email": {
		"required": "L'email est requis",
		"email":    "Email invalide",
	},
	"telephone": {
		"required": "Le numéro de téléphone est requis",
		"phone_ma": "Numéro de téléphone marocain invalide (ex: 0612345678)",
	},
	"adresse": {
		"required": "L'adresse est requise",
		"min":      "L'adresse doit contenir au moins 10 caractères",
		"max":      "L'adresse est trop longue",
	},
	"adresse2": {
		"max": "L'adresse complémentaire est trop longue",
	},
	"ville": {
		"required": "Veuillez sélectionner une ville",
		"city_ma":  "Ville non desservie",
	},
	"code_postal": {
		"required":  "Le code postal est requis",
		"postal_ma": "Le code postal doit contenir 5 chiffres",
	},
	"notes": {
		"max": "Les notes sont trop longues",
	},
	"code_promo": {
		"promo_shape": "Code promo invalide",
	},
}

// Validator validates and normalizes checkout forms
type Validator struct {
	validate *validator.Validate
}

// NewValidator builds a Validator with the store's custom rules registered
func NewValidator() *Validator {
	v := validator.New(validator.WithRequiredStructEnabled())

	// Registration only fails for nil functions or empty tags
	_ = v.RegisterValidation("phone_ma", func(fl validator.FieldLevel) bool {
		return phonePattern.MatchString(fl.Field().String())
	})
	_ = v.RegisterValidation("postal_ma", func(fl validator.FieldLevel) bool {
		return postalPattern.MatchString(fl.Field().String())
	})
	_ = v.RegisterValidation("city_ma", func(fl validator.FieldLevel) bool {
		return IsKnownCity(fl.Field().String())
	})
	_ = v.RegisterValidation("promo_shape", func(fl validator.FieldLevel) bool {
		return promoPattern.MatchString(fl.Field().String())
	})

	// Report errors under the json field name rather than the Go name
	v.RegisterTagNameFunc(func(fld reflect.StructField) string {
		name := strings.SplitN(fld.Tag.Get("json"), ",", 2)[0]
		if name == "-" {
			return ""
		}
		return name
	})

	return &Validator{validate: v}
}

// Validate normalizes the form, then checks every rule. Expected
// validation failures come back as FieldErrors, never as a panic or an
// opaque error.
func (v *Validator) Validate(form Form) (Form, error) {
	form = normalize(form)

	err := v.validate.Struct(form)
	if err == nil {
		return form, nil
	}

	validationErrs, ok := err.(validator.ValidationErrors)
	if !ok {
		return form, err
	}

	fieldErrs := make(FieldErrors, len(validationErrs))
	for _, fe := range validationErrs {
		field := fe.Field()
		if _, seen := fieldErrs[field]; seen {
			continue
		}
		if msgs, ok := fieldMessages[field]; ok {
			if msg, ok := msgs[fe.Tag()]; ok {
				fieldErrs[field] = msg
				continue
			}
		}
		fieldErrs[field] = "Valeur invalide"
	}

	return form, fieldErrs
}

// normalize trims whitespace and applies the canonical casing rules
func normalize(form Form) Form {
	form.FirstName = strings.TrimSpace(form.FirstName)
	form.LastName = strings.TrimSpace(form.LastName)
	form.Email = strings.ToLower(strings.TrimSpace(form.Email))
	form.Phone = strings.TrimSpace(form.Phone)
	form.Address = strings.TrimSpace(form.Address)
	form.Address2 = strings.TrimSpace(form.Address2)
	form.City = strings.TrimSpace(form.City)
	form.PostalCode = strings.TrimSpace(form.PostalCode)
	form.Notes = strings.TrimSpace(form.Notes)
	form.PromoCode = strings.ToUpper(strings.TrimSpace(form.PromoCode))
	return form
}
