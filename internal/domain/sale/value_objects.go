package sale

import (
	"errors"
	"regexp"
	"strings"
)

var (
	ErrInvalidEmail          = errors.New("invalid email format")
	ErrInvalidGithubUsername = errors.New("invalid github username")
)

var emailRegex = regexp.MustCompile(`^[a-zA-Z0-9._%+\-]+@[a-zA-Z0-9.\-]+\.[a-zA-Z]{2,}$`)

// GitHub usernames: 1-39 chars, alphanumeric with single interior hyphens.
// Validated after lower-casing, so no uppercase range is needed.
var githubUsernameRegex = regexp.MustCompile(`^[a-z0-9]+(-[a-z0-9]+)*$`)

type Email struct {
	value string
}

func NewEmail(s string) (Email, error) {
	s = strings.TrimSpace(s)
	if !emailRegex.MatchString(s) {
		return Email{}, ErrInvalidEmail
	}
	return Email{value: s}, nil
}

func (e Email) Value() string {
	return e.value
}

type GithubUsername struct {
	value string
}

// NewGithubUsername normalizes (trim, strip a leading "@", case-fold) and
// validates. Callers that can proceed without a username should use
// NormalizeGithubUsername instead.
func NewGithubUsername(s string) (GithubUsername, error) {
	normalized := strings.ToLower(strings.TrimPrefix(strings.TrimSpace(s), "@"))
	if normalized == "" || len(normalized) > 39 || !githubUsernameRegex.MatchString(normalized) {
		return GithubUsername{}, ErrInvalidGithubUsername
	}
	return GithubUsername{value: normalized}, nil
}

func (u GithubUsername) Value() string {
	return u.value
}

// NormalizeGithubUsername returns the normalized username, or nil when the
// input is absent or invalid. Fulfillment proceeds without a username rather
// than failing on a bad one.
func NormalizeGithubUsername(s *string) *string {
	if s == nil {
		return nil
	}
	u, err := NewGithubUsername(*s)
	if err != nil {
		return nil
	}
	v := u.Value()
	return &v
}
