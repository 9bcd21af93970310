package service

import (
	"strings"

	"festive-births-svc/internal/access"
)

const requiredMessage = "This field is required."

func contains(list []string, v string) bool {
	for _, item := range list {
		if item == v {
			return true
		}
	}
	return false
}

// lockedValue forces a locked field to its only value
func lockedValue(fc access.FieldConstraint, submitted string) string {
	if fc.Locked {
		return fc.Initial
	}
	return strings.TrimSpace(submitted)
}

func optional(s string) *string {
	s = strings.TrimSpace(s)
	if s == "" {
		return nil
	}
	return &s
}
