package checkout

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func validValidatorForm() Form {
	return Form{
		FirstName:  "Amina",
		LastName:   "Benali",
		Email:      "Amina.Benali@Example.com",
		Phone:      "0612345678",
		Address:    "12 Rue des Orangers, Agdal",
		City:       "Rabat",
		PostalCode: "10000",
	}
}

func TestValidateValidForm(t *testing.T) {
	v := NewValidator()

	form, err := v.Validate(validValidatorForm())
	require.NoError(t, err)
	assert.Equal(t, "amina.benali@example.com", form.Email)
	assert.Equal(t, "Amina Benali", form.FullName())
}

func TestValidatePhone(t *testing.T) {
	v := NewValidator()

	valid := []string{"0612345678", "0522123456", "0712345678", "+212612345678"}
	for _, phone := range valid {
		form := validValidatorForm()
		form.Phone = phone
		_, err := v.Validate(form)
		assert.NoError(t, err, "phone %q should pass", phone)
	}

	invalid := []string{"123456", "0812345678", "061234567", "06123456789", "+33612345678"}
	for _, phone := range invalid {
		form := validValidatorForm()
		form.Phone = phone
		_, err := v.Validate(form)
		require.Error(t, err, "phone %q should fail", phone)
		var fieldErrs FieldErrors
		require.ErrorAs(t, err, &fieldErrs)
		assert.Contains(t, fieldErrs, "telephone")
	}
}

func TestValidatePostalCode(t *testing.T) {
	v := NewValidator()

	form := validValidatorForm()
	form.PostalCode = "10000"
	_, err := v.Validate(form)
	assert.NoError(t, err)

	for _, code := range []string{"1000", "100000", "1000a", ""} {
		form := validValidatorForm()
		form.PostalCode = code
		_, err := v.Validate(form)
		require.Error(t, err, "postal code %q should fail", code)
		var fieldErrs FieldErrors
		require.ErrorAs(t, err, &fieldErrs)
		assert.Contains(t, fieldErrs, "code_postal")
	}
}

func TestValidateAddressLength(t *testing.T) {
	v := NewValidator()

	form := validValidatorForm()
	form.Address = strings.Repeat("a", 9)
	_, err := v.Validate(form)
	require.Error(t, err)

	form.Address = strings.Repeat("a", 10)
	_, err = v.Validate(form)
	assert.NoError(t, err)

	form.Address = strings.Repeat("a", 501)
	_, err = v.Validate(form)
	assert.Error(t, err)
}

func TestValidateNameBounds(t *testing.T) {
	v := NewValidator()

	form := validValidatorForm()
	form.FirstName = "A"
	_, err := v.Validate(form)
	require.Error(t, err)
	var fieldErrs FieldErrors
	require.ErrorAs(t, err, &fieldErrs)
	assert.Equal(t, "Le prénom doit contenir au moins 2 caractères", fieldErrs["prenom"])

	form = validValidatorForm()
	form.LastName = strings.Repeat("b", 101)
	_, err = v.Validate(form)
	require.Error(t, err)
	require.ErrorAs(t, err, &fieldErrs)
	assert.Contains(t, fieldErrs, "nom")
}

func TestValidateCity(t *testing.T) {
	v := NewValidator()

	form := validValidatorForm()
	form.City = "Paris"
	_, err := v.Validate(form)
	require.Error(t, err)
	var fieldErrs FieldErrors
	require.ErrorAs(t, err, &fieldErrs)
	assert.Contains(t, fieldErrs, "ville")

	form.City = ""
	_, err = v.Validate(form)
	assert.Error(t, err)
}

func TestValidatePromoCodeNormalized(t *testing.T) {
	v := NewValidator()

	form := validValidatorForm()
	form.PromoCode = "  soldes-20 "
	form, err := v.Validate(form)
	require.NoError(t, err)
	assert.Equal(t, "SOLDES-20", form.PromoCode)

	form.PromoCode = "a!"
	_, err = v.Validate(form)
	assert.Error(t, err)

	// Optional: empty passes
	form = validValidatorForm()
	form.PromoCode = ""
	_, err = v.Validate(form)
	assert.NoError(t, err)
}

func TestValidateCollectsAllFieldErrors(t *testing.T) {
	v := NewValidator()

	form := Form{}
	_, err := v.Validate(form)
	require.Error(t, err)

	var fieldErrs FieldErrors
	require.ErrorAs(t, err, &fieldErrs)
	for _, field := range []string{"prenom", "nom", "email", "telephone", "adresse", "ville", "code_postal"} {
		assert.Contains(t, fieldErrs, field)
	}
	assert.NotEmpty(t, fieldErrs.Error())
}

func TestShippingLine(t *testing.T) {
	form := validValidatorForm()
	assert.Equal(t, form.Address, form.ShippingLine())

	form.Address2 = "Appartement 4"
	assert.Equal(t, form.Address+", Appartement 4", form.ShippingLine())
}
