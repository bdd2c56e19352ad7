package validation

import (
	"regexp"
	"strconv"
	"strings"

	"quiz-funnel/internal/domain"
)

// Validator provides request validation functionality
type Validator struct{}

// NewValidator creates a new validator instance
func NewValidator() *Validator {
	return &Validator{}
}

// ValidateSubmitAnswerRequest validates an answer submission
func (v *Validator) ValidateSubmitAnswerRequest(questionID string, selectedOptionIDs []string, freeText string) domain.ValidationErrors {
	var errors domain.ValidationErrors

	if strings.TrimSpace(questionID) == "" {
		errors = append(errors, domain.NewMissingFieldError("question_id"))
	} else if !isValidID(questionID) {
		errors = append(errors, domain.NewInvalidFormatError("question_id", questionID))
	}

	if len(selectedOptionIDs) == 0 && strings.TrimSpace(freeText) == "" {
		errors = append(errors, domain.NewMissingFieldError("selected_option_ids"))
	}
	if len(selectedOptionIDs) > 20 {
		errors = append(errors, domain.NewOutOfRangeError("selected_option_ids", len(selectedOptionIDs), 1, 20))
	}
	if len(freeText) > 2000 {
		errors = append(errors, domain.NewOutOfRangeError("free_text", len(freeText), 0, 2000))
	}

	return errors
}

// ValidateProjectionParams validates the projection query parameters
func (v *Validator) ValidateProjectionParams(score, minutes int) domain.ValidationErrors {
	var errors domain.ValidationErrors

	if score < 0 || score > 100 {
		errors = append(errors, domain.NewOutOfRangeError("score", score, 0, 100))
	}
	if !isKnownCommitment(minutes) {
		errors = append(errors, domain.NewInvalidFormatError("minutes", strconv.Itoa(minutes)))
	}

	return errors
}

// ValidateCheckoutRequest validates a checkout submission
func (v *Validator) ValidateCheckoutRequest(offerID, tier string) domain.ValidationErrors {
	var errors domain.ValidationErrors

	if strings.TrimSpace(offerID) == "" {
		errors = append(errors, domain.NewMissingFieldError("offer_id"))
	}
	if strings.TrimSpace(tier) == "" {
		errors = append(errors, domain.NewMissingFieldError("tier"))
	} else if !domain.ValidPricingTier(tier) {
		errors = append(errors, domain.NewInvalidFormatError("tier", tier))
	}

	return errors
}

// ValidateSessionID validates a session identifier path parameter
func (v *Validator) ValidateSessionID(sessionID string) domain.ValidationErrors {
	var errors domain.ValidationErrors

	if strings.TrimSpace(sessionID) == "" {
		errors = append(errors, domain.NewMissingFieldError("session_id"))
	} else if !isValidID(sessionID) {
		errors = append(errors, domain.NewInvalidFormatError("session_id", sessionID))
	}

	return errors
}

// Helper functions for validation

// isValidID accepts the two identifier shapes stored here: UUIDs (sessions)
// and ULIDs (questions, options).
func isValidID(s string) bool {
	return isValidUUID(s) || isValidULID(s)
}

func isValidUUID(s string) bool {
	if len(s) != 36 {
		return false
	}
	validUUID := regexp.MustCompile(`^[0-9a-fA-F]{8}-[0-9a-fA-F]{4}-[0-9a-fA-F]{4}-[0-9a-fA-F]{4}-[0-9a-fA-F]{12}$`)
	return validUUID.MatchString(s)
}

// isValidULID checks if the string is a valid ULID format
func isValidULID(s string) bool {
	// ULID is 26 characters long, base32 encoded
	if len(s) != 26 {
		return false
	}
	validULID := regexp.MustCompile(`^[0-9A-HJKMNP-TV-Z]{26}$`)
	return validULID.MatchString(s)
}

func isKnownCommitment(minutes int) bool {
	for _, m := range domain.TimeCommitments() {
		if m == minutes {
			return true
		}
	}
	return false
}
