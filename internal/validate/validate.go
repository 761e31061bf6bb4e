// Package validate holds the form validators shared by the web front-end and the CLI.
package validate

import (
	"crypto/rand"
	"math/big"
	"regexp"
	"slices"
	"strconv"
	"strings"
	"time"
	"unicode/utf8"

	"github.com/existflow/medshare/internal/model"
)

const (
	MaxMedicalItems   = 50
	MaxMedicalItemLen = 500
	MinPublicPassword = 6
	MinLoginPassword  = 6
)

var (
	emailRe      = regexp.MustCompile(`^[^\s@]+@[^\s@]+\.[^\s@]+$`)
	nameRe       = regexp.MustCompile(`^[a-zA-ZÀ-ÿ\s]+$`)
	phoneRe      = regexp.MustCompile(`^(?:\+55\s?)?(?:\(?[1-9]{2}\)?\s?)?(?:9\s?)?[0-9]{4}\s?-?\s?[0-9]{4}$`)
	specialRe    = regexp.MustCompile(`[!@#$%^&*()_+\-=\[\]{}|;:,.<>?]`)
	whitespaceRe = regexp.MustCompile(`\s+`)
	nonDigitRe   = regexp.MustCompile(`\D`)
)

// Email reports whether s looks like an email address
func Email(s string) bool {
	return emailRe.MatchString(s)
}

// Name accepts letters (including Latin-1 accents) and spaces, at least two characters
func Name(s string) bool {
	s = strings.TrimSpace(s)
	if len([]rune(s)) < 2 {
		return false
	}
	return nameRe.MatchString(s)
}

// Phone accepts an empty value or a Brazilian phone number
func Phone(s string) bool {
	if s == "" {
		return true
	}
	return phoneRe.MatchString(strings.Join(strings.Fields(s), ""))
}

// Password checks the account password policy and returns the violated rules
func Password(s string) []string {
	var errs []string
	if len(s) < 8 {
		errs = append(errs, "Password must be at least 8 characters")
	}
	if !strings.ContainsAny(s, lowerChars) {
		errs = append(errs, "Password must contain a lowercase letter")
	}
	if !strings.ContainsAny(s, upperChars) {
		errs = append(errs, "Password must contain an uppercase letter")
	}
	if !strings.ContainsAny(s, digitChars) {
		errs = append(errs, "Password must contain a number")
	}
	return errs
}

// Date accepts an empty value or a YYYY-MM-DD date strictly before now
func Date(s string, now time.Time) bool {
	if s == "" {
		return true
	}
	d, err := time.Parse(time.DateOnly, s)
	if err != nil {
		return false
	}
	return d.Before(now)
}

// BloodType accepts an empty value or one of model.BloodTypes
func BloodType(s string) bool {
	return s == "" || slices.Contains(model.BloodTypes, s)
}

// MedicalList checks a medical tag list and returns the violated rules
func MedicalList(items []string) []string {
	var errs []string
	if len(items) > MaxMedicalItems {
		errs = append(errs, "At most 50 items are allowed")
	}
	for i, item := range items {
		switch {
		case strings.TrimSpace(item) == "":
			errs = append(errs, "Item "+strconv.Itoa(i+1)+" cannot be empty")
		case utf8.RuneCountInString(item) > MaxMedicalItemLen:
			errs = append(errs, "Item "+strconv.Itoa(i+1)+" is too long (max 500 characters)")
		}
	}
	return errs
}

// PublicPassword is the minimum accepted by the public access form
func PublicPassword(s string) bool {
	return len(s) >= MinPublicPassword
}

// Sanitize trims s and collapses inner whitespace
func Sanitize(s string) string {
	return whitespaceRe.ReplaceAllString(strings.TrimSpace(s), " ")
}

// Digits strips everything but digits
func Digits(s string) string {
	return nonDigitRe.ReplaceAllString(s, "")
}

// FormatPhone formats 10 and 11 digit numbers as (XX) XXXX-XXXX and (XX) XXXXX-XXXX.
// Any other input is returned unchanged.
func FormatPhone(phone string) string {
	d := Digits(phone)
	switch len(d) {
	case 10:
		return "(" + d[:2] + ") " + d[2:6] + "-" + d[6:]
	case 11:
		return "(" + d[:2] + ") " + d[2:7] + "-" + d[7:]
	}
	return phone
}

const (
	lowerChars   = "abcdefghijklmnopqrstuvwxyz"
	upperChars   = "ABCDEFGHIJKLMNOPQRSTUVWXYZ"
	digitChars   = "0123456789"
	specialChars = "!@#$%^&*()_+-=[]{}|;:,.<>?"
)

// GenerateSecurePassword returns a random password of the given length with at least one
// lowercase letter, uppercase letter, digit and special character. Lengths below 4 are raised to 4.
func GenerateSecurePassword(length int) string {
	if length < 4 {
		length = 4
	}

	buf := []byte{
		pick(lowerChars),
		pick(upperChars),
		pick(digitChars),
		pick(specialChars),
	}
	all := lowerChars + upperChars + digitChars + specialChars
	for len(buf) < length {
		buf = append(buf, pick(all))
	}

	// Fisher-Yates with crypto/rand
	for i := len(buf) - 1; i > 0; i-- {
		j := randInt(i + 1)
		buf[i], buf[j] = buf[j], buf[i]
	}
	return string(buf)
}

// ValidateSecurePassword checks the public link password policy and returns the violated rules
func ValidateSecurePassword(s string) []string {
	errs := Password(s)
	if !specialRe.MatchString(s) {
		errs = append(errs, "Password must contain a special character")
	}
	return errs
}

func pick(set string) byte {
	return set[randInt(len(set))]
}

func randInt(n int) int {
	v, err := rand.Int(rand.Reader, big.NewInt(int64(n)))
	if err != nil {
		panic("crypto/rand unavailable: " + err.Error())
	}
	return int(v.Int64())
}
