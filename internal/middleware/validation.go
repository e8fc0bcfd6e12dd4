package middleware

import (
	"regexp"
	"strings"

	"github.com/gofiber/fiber/v3"

	"github.com/CLOVETHEDESTROYER/PlateWatchers/internal/model"
)

// Field length limits matching database schema constraints.
const (
	RestaurantIDLen = 16  // deterministic hash-derived id
	MaxUserIDLen    = 64  // votes.user_id
	MaxDeviceIDLen  = 64  // anonymous device identifier
	MaxCategoryLen  = 48  // free-form category label
)

var (
	// restaurantIDRe matches the lowercase hex ids produced by hash.RestaurantID.
	restaurantIDRe = regexp.MustCompile(`^[0-9a-f]+$`)
	// idRe matches user and device identifiers: alphanumeric, dash, underscore.
	idRe = regexp.MustCompile(`^[A-Za-z0-9_-]+$`)
	// uuidRe matches canonical lowercase UUIDs (suggestion ids).
	uuidRe = regexp.MustCompile(`^[0-9a-f]{8}-[0-9a-f]{4}-[0-9a-f]{4}-[0-9a-f]{4}-[0-9a-f]{12}$`)
)

// ErrorResponse is a helper that returns a standard API error response.
func ErrorResponse(c fiber.Ctx, status int, code, message string) error {
	return c.Status(status).JSON(fiber.Map{
		"error": fiber.Map{
			"code":    code,
			"message": message,
		},
	})
}

// ValidateRestaurantID checks that a restaurant id is a well-formed hash id.
func ValidateRestaurantID(id string) (string, string) {
	id = strings.TrimSpace(strings.ToLower(id))
	if id == "" {
		return "", "restaurantId is required"
	}
	if len(id) != RestaurantIDLen {
		return "", "restaurantId must be exactly 16 characters"
	}
	if !restaurantIDRe.MatchString(id) {
		return "", "restaurantId must be lowercase hexadecimal"
	}
	return id, ""
}

// ValidateCategory checks a free-form category label. Categories are an open
// tagged set: any non-empty string within the length cap is acceptable.
func ValidateCategory(category string) (string, string) {
	category = strings.TrimSpace(category)
	if category == "" {
		return "", "category is required"
	}
	if len(category) > MaxCategoryLen {
		return "", "category must be at most 48 characters"
	}
	return category, ""
}

// ValidateSlot checks that slot names one of the two category slots.
func ValidateSlot(slot string) (string, string) {
	slot = strings.TrimSpace(strings.ToLower(slot))
	if slot != model.SlotTop && slot != model.SlotRunnerUp {
		return "", "slot must be 'top' or 'runner_up'"
	}
	return slot, ""
}

// ValidateCallerID checks the user/device pair: exactly one must be present,
// and whichever is must be a well-formed identifier.
func ValidateCallerID(userID, deviceID string) (string, string, string) {
	userID = strings.TrimSpace(userID)
	deviceID = strings.TrimSpace(deviceID)
	if userID == "" && deviceID == "" {
		return "", "", "one of userId or deviceId is required"
	}
	if userID != "" && deviceID != "" {
		return "", "", "userId and deviceId are mutually exclusive"
	}
	id, limit, field := userID, MaxUserIDLen, "userId"
	if userID == "" {
		id, limit, field = deviceID, MaxDeviceIDLen, "deviceId"
	}
	if len(id) > limit {
		return "", "", field + " must be at most 64 characters"
	}
	if !idRe.MatchString(id) {
		return "", "", field + " contains invalid characters"
	}
	return userID, deviceID, ""
}

// ValidateSuggestionID checks that a suggestion id is a canonical UUID.
func ValidateSuggestionID(id string) (string, string) {
	id = strings.TrimSpace(strings.ToLower(id))
	if !uuidRe.MatchString(id) {
		return "", "suggestion id must be a UUID"
	}
	return id, ""
}
