// Package validation rejects malformed payment input before any request is
// sent. Every failure is an *errors.AppError of type validation_error whose
// message names the offending value.
package validation

import (
	"fmt"
	"reflect"
	"regexp"
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"golang.org/x/text/currency"
	"golang.org/x/text/language"

	vo "github.com/orris-inc/momogate/internal/domain/payment/valueobjects"
	"github.com/orris-inc/momogate/internal/shared/errors"
)

const (
	DefaultNarrationMaxLength = 22
	MaxMetadataItems          = 10
	MaxMetadataNameLength     = 50
	MaxMetadataValueLength    = 100
)

var (
	amountPattern        = regexp.MustCompile(`^([0]|([1-9][0-9]{0,17}))([.][0-9]{1,2})?$`)
	narrationPattern     = regexp.MustCompile(`^[a-zA-Z0-9 ]*$`)
	narrationInvalid     = regexp.MustCompile(`[^a-zA-Z0-9 ]`)
	metadataNamePattern  = regexp.MustCompile(`^[a-zA-Z0-9_ ]+$`)
	metadataValuePattern = regexp.MustCompile(`^[a-zA-Z0-9_\-., ]+$`)
	msisdnPattern        = regexp.MustCompile(`^[0-9]{6,15}$`)
	msisdnStrip          = regexp.MustCompile(`[\s\-+().]`)
)

var supportedLanguages = map[language.Base]string{
	language.MustParseBase("en"): "EN",
	language.MustParseBase("fr"): "FR",
}

var validate *validator.Validate

func init() {
	validate = validator.New(validator.WithRequiredStructEnabled())

	validate.RegisterTagNameFunc(func(fld reflect.StructField) string {
		name := strings.SplitN(fld.Tag.Get("json"), ",", 2)[0]
		if name == "-" {
			return ""
		}
		return name
	})

	mustRegister("momo_txid", func(fl validator.FieldLevel) bool {
		return ValidateTransactionID(fl.Field().String()) == nil
	})
	mustRegister("momo_amount", func(fl validator.FieldLevel) bool {
		_, err := ValidateAmount(fl.Field().String())
		return err == nil
	})
	mustRegister("momo_narration", func(fl validator.FieldLevel) bool {
		s := fl.Field().String()
		return narrationPattern.MatchString(s) && len(s) <= DefaultNarrationMaxLength
	})
	mustRegister("momo_meta_name", func(fl validator.FieldLevel) bool {
		return metadataNamePattern.MatchString(fl.Field().String())
	})
	mustRegister("momo_meta_value", func(fl validator.FieldLevel) bool {
		return metadataValuePattern.MatchString(fl.Field().String())
	})
	mustRegister("momo_msisdn", func(fl validator.FieldLevel) bool {
		return msisdnPattern.MatchString(NormalizeMSISDN(fl.Field().String()))
	})
	mustRegister("momo_currency", func(fl validator.FieldLevel) bool {
		return ValidateCurrency(fl.Field().String()) == nil
	})
}

func mustRegister(tag string, fn validator.Func) {
	if err := validate.RegisterValidation(tag, fn); err != nil {
		panic(fmt.Sprintf("register validation %s: %v", tag, err))
	}
}

// Struct validates a request struct using its `validate` tags.
func Struct(s interface{}) error {
	err := validate.Struct(s)
	if err == nil {
		return nil
	}

	validationErrors, ok := err.(validator.ValidationErrors)
	if !ok {
		return errors.NewValidationError("Validation failed", err.Error())
	}
	if len(validationErrors) == 0 {
		return nil
	}

	var messages []string
	for _, fe := range validationErrors {
		messages = append(messages, getFieldErrorMessage(fe))
	}

	return errors.NewValidationError("Validation failed", strings.Join(messages, "; "))
}

func getFieldErrorMessage(fe validator.FieldError) string {
	field := fe.Field()
	param := fe.Param()

	switch fe.Tag() {
	case "required":
		return fmt.Sprintf("%s is required", field)
	case "max":
		if fe.Kind() == reflect.String {
			return fmt.Sprintf("%s must be at most %s characters long", field, param)
		}
		return fmt.Sprintf("%s must contain at most %s items", field, param)
	case "momo_txid":
		return fmt.Sprintf("%s must be a valid UUIDv4, got '%v'", field, fe.Value())
	case "url":
		return fmt.Sprintf("%s must be a valid URL", field)
	case "iso3166_1_alpha3":
		return fmt.Sprintf("%s must be an ISO 3166-1 alpha-3 country code, got '%v'", field, fe.Value())
	case "momo_amount":
		return fmt.Sprintf("%s '%v' is not a valid amount", field, fe.Value())
	case "momo_narration":
		return fmt.Sprintf("%s '%v' must be at most %d letters, digits or spaces", field, fe.Value(), DefaultNarrationMaxLength)
	case "momo_meta_name":
		return fmt.Sprintf("%s '%v' may only contain letters, digits, underscores and spaces", field, fe.Value())
	case "momo_meta_value":
		return fmt.Sprintf("%s '%v' contains characters outside [A-Za-z0-9_.,- ]", field, fe.Value())
	case "momo_msisdn":
		return fmt.Sprintf("%s '%v' is not a valid phone number", field, fe.Value())
	case "momo_currency":
		return fmt.Sprintf("%s '%v' is not an ISO 4217 currency code", field, fe.Value())
	default:
		return fmt.Sprintf("%s failed validation for '%s'", field, fe.Tag())
	}
}

// ValidateAmount accepts zero or up to 18 integer digits without a leading
// zero, optionally followed by one or two decimals.
func ValidateAmount(amount string) (string, error) {
	if strings.TrimSpace(amount) == "" {
		return "", errors.NewValidationError("Amount cannot be blank")
	}
	if !amountPattern.MatchString(amount) {
		return "", errors.NewValidationError(
			fmt.Sprintf("The amount '%s' is invalid", amount),
			"use up to 18 digits without a leading zero and at most 2 decimal places",
		)
	}
	d, err := decimal.NewFromString(amount)
	if err != nil || d.IsNegative() {
		return "", errors.NewValidationError(fmt.Sprintf("The amount '%s' must be a positive number", amount))
	}
	return amount, nil
}

// ValidateNarration checks the character set first, then the length. The
// error details carry a suggested replacement value.
func ValidateNarration(text string, maxLen int) (string, error) {
	if maxLen <= 0 {
		maxLen = DefaultNarrationMaxLength
	}

	if !narrationPattern.MatchString(text) {
		suggestion := truncate(narrationInvalid.ReplaceAllString(text, ""), maxLen)
		return "", errors.NewValidationError(
			fmt.Sprintf("The narration '%s' contains invalid characters; only letters, digits and spaces are allowed", text),
			fmt.Sprintf("Suggested correction: '%s'", suggestion),
		)
	}

	if len(text) > maxLen {
		return "", errors.NewValidationError(
			fmt.Sprintf("The narration '%s' is %d characters long; the maximum is %d", text, len(text), maxLen),
			fmt.Sprintf("Suggested correction: '%s'", truncate(text, maxLen)),
		)
	}

	return text, nil
}

func truncate(s string, n int) string {
	if len(s) <= n {
		return s
	}
	return s[:n]
}

// ValidateMetadataCount fails when more than ten items are supplied.
func ValidateMetadataCount(items []vo.MetadataItem) ([]vo.MetadataItem, error) {
	if len(items) > MaxMetadataItems {
		return nil, errors.NewValidationError(
			fmt.Sprintf("Too many metadata items: %d supplied, at most %d allowed", len(items), MaxMetadataItems),
		)
	}
	return items, nil
}

type metadataField struct {
	Name  string `json:"fieldName" validate:"required,max=50,momo_meta_name"`
	Value string `json:"fieldValue" validate:"required,max=100,momo_meta_value"`
}

// ValidateMetadataField checks a single name/value pair.
func ValidateMetadataField(name, value string) (string, string, error) {
	if err := Struct(metadataField{Name: name, Value: value}); err != nil {
		appErr := errors.GetAppError(err)
		return "", "", errors.NewValidationError(
			fmt.Sprintf("Invalid metadata field '%s'", name),
			appErr.Details,
		)
	}
	return name, value, nil
}

// ValidateMetadata runs the count check and then every field check.
func ValidateMetadata(items []vo.MetadataItem) error {
	if _, err := ValidateMetadataCount(items); err != nil {
		return err
	}
	for _, item := range items {
		if _, _, err := ValidateMetadataField(item.Name, item.Value); err != nil {
			return err
		}
	}
	return nil
}

// ValidateTransactionID requires a canonical UUID of version 4, in either
// letter case. Struct tags reach it through momo_txid.
func ValidateTransactionID(id string) error {
	parsed, err := uuid.Parse(id)
	if err != nil || len(id) != 36 || parsed.Version() != 4 {
		return errors.NewValidationError(fmt.Sprintf("The transaction id '%s' is not a valid UUIDv4", id))
	}
	return nil
}

// ValidateCurrency requires an ISO 4217 code in upper case.
func ValidateCurrency(code string) error {
	if len(code) != 3 || strings.ToUpper(code) != code {
		return errors.NewValidationError(fmt.Sprintf("The currency '%s' is not an ISO 4217 code", code))
	}
	if _, err := currency.ParseISO(code); err != nil {
		return errors.NewValidationError(fmt.Sprintf("The currency '%s' is not an ISO 4217 code", code))
	}
	return nil
}

// NormalizeMSISDN strips the formatting characters people commonly type
// around a phone number.
func NormalizeMSISDN(s string) string {
	return msisdnStrip.ReplaceAllString(strings.TrimSpace(s), "")
}

// ValidateMSISDN normalizes the number and requires 6 to 15 digits.
func ValidateMSISDN(s string) (string, error) {
	n := NormalizeMSISDN(s)
	if !msisdnPattern.MatchString(n) {
		return "", errors.NewValidationError(fmt.Sprintf("The phone number '%s' must contain 6 to 15 digits", s))
	}
	return n, nil
}

// NormalizeLanguage maps a BCP 47 tag such as "fr-CI" to the upper-case
// two-letter code the payment page expects.
func NormalizeLanguage(s string) (string, error) {
	tag, err := language.Parse(strings.TrimSpace(s))
	if err != nil {
		return "", errors.NewValidationError(fmt.Sprintf("The language '%s' is not a valid language tag", s))
	}
	base, _ := tag.Base()
	code, ok := supportedLanguages[base]
	if !ok {
		return "", errors.NewValidationError(fmt.Sprintf("The language '%s' is not supported; use EN or FR", s))
	}
	return code, nil
}

// ValidateCountry requires an ISO 3166-1 alpha-3 code.
func ValidateCountry(code string) error {
	if err := validate.Var(code, "iso3166_1_alpha3"); err != nil {
		return errors.NewValidationError(fmt.Sprintf("The country '%s' is not an ISO 3166-1 alpha-3 code", code))
	}
	return nil
}
