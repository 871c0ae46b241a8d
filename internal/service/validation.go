package service

import (
	"fmt"
	"regexp"
	"strings"

	"github.com/microcosm-cc/bluemonday"
)

var (
	walletAddressRe = regexp.MustCompile(`^0x[a-fA-F0-9]{40}$`)
	txHashRe        = regexp.MustCompile(`^0x[a-fA-F0-9]{64}$`)
)

// ValidationService checks and sanitizes donor-supplied input. All methods are
// pure; expected invalid input is reported through return values, never panics.
type ValidationService struct {
	minDonationUSD   float64
	maxDonationUSD   float64
	maxMessageLength int
	policy           *bluemonday.Policy
}

// NewValidationService constructs a validation service with the configured
// donation bounds and message length cap.
func NewValidationService(minDonationUSD, maxDonationUSD float64, maxMessageLength int) *ValidationService {
	return &ValidationService{
		minDonationUSD:   minDonationUSD,
		maxDonationUSD:   maxDonationUSD,
		maxMessageLength: maxMessageLength,
		policy:           bluemonday.StrictPolicy(),
	}
}

// ValidateWalletAddress reports whether the string is a well-formed
// 0x-prefixed 40-hex-digit account address. Format only; no checksum or
// on-chain verification.
func (s *ValidationService) ValidateWalletAddress(address string) bool {
	return walletAddressRe.MatchString(address)
}

// ValidateTxHash reports whether the string is a well-formed 0x-prefixed
// 64-hex-digit transaction hash. The hash is never checked against any chain.
func (s *ValidationService) ValidateTxHash(hash string) bool {
	return txHashRe.MatchString(hash)
}

// ValidateAmountRange checks the donation amount against the configured
// bounds. On failure the second return value carries a human-readable reason.
func (s *ValidationService) ValidateAmountRange(amountUSD float64) (bool, string) {
	if amountUSD < s.minDonationUSD {
		return false, fmt.Sprintf("donation amount must be at least $%.2f", s.minDonationUSD)
	}
	if amountUSD > s.maxDonationUSD {
		return false, fmt.Sprintf("donation amount cannot exceed $%.2f", s.maxDonationUSD)
	}
	return true, ""
}

// SanitizeMessage strips all markup from a donor message and trims it to the
// configured length. Idempotent: sanitizing already-sanitized text yields the
// same text. Empty or whitespace-only input collapses to "".
func (s *ValidationService) SanitizeMessage(message string) string {
	clean := strings.TrimSpace(s.policy.Sanitize(message))
	clean = truncateRunes(clean, s.maxMessageLength)
	return strings.TrimSpace(clean)
}

// truncateRunes cuts text to at most max runes. A trailing incomplete HTML
// entity is dropped rather than split, which keeps SanitizeMessage idempotent.
func truncateRunes(text string, max int) string {
	runes := []rune(text)
	if len(runes) <= max {
		return text
	}
	cut := string(runes[:max])
	if amp := strings.LastIndexByte(cut, '&'); amp >= 0 && !strings.ContainsRune(cut[amp:], ';') {
		cut = cut[:amp]
	}
	return cut
}
