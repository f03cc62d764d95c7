package validator

import (
	"fmt"
	"net/mail"
	"strings"
	"unicode"

	"github.com/vedran77/replydesk/internal/domain"
)

type ValidationErrors map[string]string

func (v ValidationErrors) HasErrors() bool {
	return len(v) > 0
}

func (v ValidationErrors) Add(field, message string) {
	v[field] = message
}

const maxMessageLength = 4000

func ValidateRegister(email, displayName, companyName, password string) ValidationErrors {
	errs := make(ValidationErrors)

	validateEmail(email, errs)

	// Display name
	displayName = strings.TrimSpace(displayName)
	if displayName == "" {
		errs.Add("display_name", "Display name is required")
	} else if len(displayName) < 2 {
		errs.Add("display_name", "Display name must be at least 2 characters")
	} else if len(displayName) > 100 {
		errs.Add("display_name", "Display name is too long")
	}

	if len(strings.TrimSpace(companyName)) > 100 {
		errs.Add("company_name", "Company name is too long")
	}

	// Password
	validatePassword(password, errs)

	return errs
}

func ValidateLogin(email, password string) ValidationErrors {
	errs := make(ValidationErrors)

	validateEmail(email, errs)

	if password == "" {
		errs.Add("password", "Password is required")
	}

	return errs
}

func ValidateFilter(filter string) ValidationErrors {
	errs := make(ValidationErrors)
	if !domain.Filter(filter).Valid() {
		names := make([]string, 0, len(domain.Filters))
		for _, f := range domain.Filters {
			names = append(names, string(f))
		}
		errs.Add("filter", "Filter must be one of "+strings.Join(names, ", "))
	}
	return errs
}

// ValidateMessage checks a reply before it is sent or saved as an edit.
func ValidateMessage(content string) ValidationErrors {
	errs := make(ValidationErrors)
	if strings.TrimSpace(content) == "" {
		errs.Add("content", "Message content is required")
	} else if len(content) > maxMessageLength {
		errs.Add("content", fmt.Sprintf("Message must be at most %d characters", maxMessageLength))
	}
	return errs
}

func ValidateDraft(text string) ValidationErrors {
	errs := make(ValidationErrors)
	if len(text) > maxMessageLength {
		errs.Add("text", fmt.Sprintf("Draft must be at most %d characters", maxMessageLength))
	}
	return errs
}

// ValidateDeleteConfirmation requires the operator to have typed the word exactly.
func ValidateDeleteConfirmation(confirmation, word string) ValidationErrors {
	errs := make(ValidationErrors)
	if confirmation != word {
		errs.Add("confirmation", fmt.Sprintf("Type %s to confirm", word))
	}
	return errs
}

func validateEmail(email string, errs ValidationErrors) {
	email = strings.TrimSpace(email)
	if email == "" {
		errs.Add("email", "Email is required")
	} else if _, err := mail.ParseAddress(email); err != nil {
		errs.Add("email", "Invalid email address")
	}
}

func validatePassword(password string, errs ValidationErrors) {
	if len(password) < 8 {
		errs.Add("password", "Password must be at least 8 characters")
		return
	}

	var hasUpper, hasLower, hasDigit bool
	for _, ch := range password {
		switch {
		case unicode.IsUpper(ch):
			hasUpper = true
		case unicode.IsLower(ch):
			hasLower = true
		case unicode.IsDigit(ch):
			hasDigit = true
		}
	}

	missing := []string{}
	if !hasUpper {
		missing = append(missing, "one uppercase letter")
	}
	if !hasLower {
		missing = append(missing, "one lowercase letter")
	}
	if !hasDigit {
		missing = append(missing, "one number")
	}

	if len(missing) > 0 {
		errs.Add("password", fmt.Sprintf("Password must contain at least %s", strings.Join(missing, ", ")))
	}
}
