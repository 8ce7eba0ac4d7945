package validation

import (
	"net/mail"
	"strings"
	"unicode/utf8"
)

type Violations map[string]string

func (v Violations) Empty() bool { return len(v) == 0 }

// Basic validators
func Required(field, value string, v Violations) {
	if strings.TrimSpace(value) == "" {
		v[field] = "required"
	}
}

// NotBlank flags an optional value that was supplied but is empty.
func NotBlank(field string, value *string, v Violations) {
	if value != nil && strings.TrimSpace(*value) == "" {
		v[field] = "required"
	}
}

func MaxLen(field, value string, max int, v Violations) {
	if utf8.RuneCountInString(value) > max {
		v[field] = "too_long"
	}
}

// MaxBytes limits the encoded size of value, for inputs such as bcrypt
// passwords whose limit counts bytes rather than characters.
func MaxBytes(field, value string, max int, v Violations) {
	if len(value) > max {
		v[field] = "too_long"
	}
}

func Email(field, value string, v Violations) {
	if value == "" {
		return
	}
	addr, err := mail.ParseAddress(value)
	if err != nil || addr.Address != value {
		v[field] = "invalid_email"
	}
}

// Slug accepts lowercase ASCII letters, digits and single inner hyphens.
func Slug(field, value string, v Violations) {
	if value == "" {
		return
	}
	if strings.HasPrefix(value, "-") || strings.HasSuffix(value, "-") || strings.Contains(value, "--") {
		v[field] = "invalid_slug"
		return
	}
	for _, r := range value {
		if (r < 'a' || r > 'z') && (r < '0' || r > '9') && r != '-' {
			v[field] = "invalid_slug"
			return
		}
	}
}

func PositiveID(field string, id uint, v Violations) {
	if id == 0 {
		v[field] = "must_be_positive"
	}
}

// OneOf flags a supplied value outside allowed.
func OneOf(field, value string, allowed []string, v Violations) {
	if value == "" {
		return
	}
	for _, a := range allowed {
		if value == a {
			return
		}
	}
	v[field] = "invalid_value"
}
