package util

import (
	"math/rand"
	"regexp"
	"strings"
	"time"
)

func init() {
	rand.Seed(time.Now().UnixNano())
}

const lowerAlphaNumCharset = "abcdefghijklmnopqrstuvwxyz0123456789"

// Matches the pre-submit email check done on the client forms.
var emailRegexp = regexp.MustCompile(`^[a-zA-Z0-9._%+\-]+@[a-zA-Z0-9.\-]+\.[a-zA-Z]{2,}$`)

// RandomLowerAphaNumString returns a random lower alphanumeric
// string of length n.
func RandomLowerAphaNumString(n int) string {
	b := make([]byte, n)
	for i := range b {
		b[i] = lowerAlphaNumCharset[rand.Intn(len(lowerAlphaNumCharset))]
	}
	return string(b)
}

// IsValidEmail validates the email format.
func IsValidEmail(email string) bool {
	return emailRegexp.MatchString(strings.TrimSpace(email))
}

// TimeNowUnix - Current unix timestamp in UTC.
func TimeNowUnix() int64 {
	return time.Now().UTC().Unix()
}

// TrimAndLower trims spaces and lowercases. Used to normalize
// emails and filter values before comparison.
func TrimAndLower(s string) string {
	return strings.ToLower(strings.TrimSpace(s))
}
