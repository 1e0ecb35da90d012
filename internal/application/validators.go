package application

import (
	"errors"
	"fmt"
	"unicode"

	"github.com/go-playground/validator/v10"

	"github.com/ahrav/go-arena/internal/domain"
)

// validate is shared by every configuration check. validator.Validate caches
// struct metadata and is safe for concurrent use.
var validate = newValidator()

func newValidator() *validator.Validate {
	v := validator.New(validator.WithRequiredStructEnabled())
	if err := registerCustomValidators(v); err != nil {
		// Registration only fails on programmer error in the tag names.
		panic(err)
	}
	return v
}

// registerCustomValidators registers tournament-specific validation
// functions with the validator instance: the category and singleline tags
// and the cross-field rules of TournamentConfig.
// registerCustomValidators returns an error if any validator registration
// fails.
func registerCustomValidators(v *validator.Validate) error {
	if err := v.RegisterValidation("category", validateCategoryName); err != nil {
		return fmt.Errorf("failed to register category validator: %w", err)
	}
	if err := v.RegisterValidation("singleline", validateSingleLine); err != nil {
		return fmt.Errorf("failed to register singleline validator: %w", err)
	}
	v.RegisterStructValidation(validateTournamentStructure, TournamentConfig{})
	return nil
}

// validateCategoryName accepts names made of ASCII letters, digits,
// underscores and hyphens, at most 64 bytes long.
func validateCategoryName(fl validator.FieldLevel) bool {
	name := fl.Field().String()
	if name == "" || len(name) > 64 {
		return false
	}
	for _, ch := range name {
		switch {
		case ch >= 'a' && ch <= 'z', ch >= 'A' && ch <= 'Z', ch >= '0' && ch <= '9':
		case ch == '_' || ch == '-':
		default:
			return false
		}
	}
	return true
}

// validateSingleLine rejects control characters. Names and descriptions end
// up in the line-oriented results log, where a newline would start a new
// record field.
func validateSingleLine(fl validator.FieldLevel) bool {
	for _, ch := range fl.Field().String() {
		if unicode.IsControl(ch) {
			return false
		}
	}
	return true
}

// validateTournamentStructure checks the rules that relate several fields
// of a TournamentConfig.
func validateTournamentStructure(sl validator.StructLevel) {
	c := sl.Current().Interface().(TournamentConfig)

	if len(c.FinaleCategories) != c.FinaleRounds {
		sl.ReportError(c.FinaleCategories, "FinaleCategories", "FinaleCategories",
			"len_finale_rounds", fmt.Sprint(c.FinaleRounds))
	}
	if len(c.FinaleDescriptions) > 0 && len(c.FinaleDescriptions) != c.FinaleRounds {
		sl.ReportError(c.FinaleDescriptions, "FinaleDescriptions", "FinaleDescriptions",
			"len_finale_rounds", fmt.Sprint(c.FinaleRounds))
	}
	if c.FinalistCount > c.ContestantLimits.Max {
		sl.ReportError(c.FinalistCount, "FinalistCount", "FinalistCount",
			"lte_contestant_max", fmt.Sprint(c.ContestantLimits.Max))
	}
	if len(c.ContestantNames) > c.ContestantLimits.Max {
		sl.ReportError(c.ContestantNames, "ContestantNames", "ContestantNames",
			"lte_contestant_max", fmt.Sprint(c.ContestantLimits.Max))
	}
}

// Validate checks the configuration and returns a *domain.ValidationError
// listing every violated rule. The error matches
// domain.ErrInvalidConfiguration.
func (c TournamentConfig) Validate() error {
	err := validate.Struct(c)
	if err == nil {
		return nil
	}

	verr := domain.NewValidationError("TournamentConfig")
	var fieldErrs validator.ValidationErrors
	if !errors.As(err, &fieldErrs) {
		verr.AddError(err.Error())
		return verr
	}
	for _, fe := range fieldErrs {
		verr.AddError(describeFieldError(fe))
	}
	return verr
}

// describeFieldError renders a validator failure as a short message keyed
// by the struct path, e.g. "TournamentConfig.FinaleRounds: min=1 (got 0)".
func describeFieldError(fe validator.FieldError) string {
	rule := fe.Tag()
	if fe.Param() != "" {
		rule += "=" + fe.Param()
	}
	return fmt.Sprintf("%s: %s (got %v)", fe.Namespace(), rule, fe.Value())
}
