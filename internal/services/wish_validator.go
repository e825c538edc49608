package services

import (
	"fmt"
	"regexp"
	"strconv"
	"strings"
	"unicode/utf8"

	"github.com/Dias221467/Wish_Collector/internal/models"
)

// ValidationKind identifies which submission rule was violated.
type ValidationKind string

const (
	InvalidWish      ValidationKind = "invalid_wish"
	MissingField     ValidationKind = "missing_field"
	InvalidIntensity ValidationKind = "invalid_intensity"
	InvalidEmail     ValidationKind = "invalid_email"
)

const (
	MinWishLength = 5
	MaxWishLength = 500
	MinIntensity  = 1
	MaxIntensity  = 10

	AnonymousName = "Anonymous"
)

// ValidationError is returned when a submission is rejected. Message is safe to show to the client.
type ValidationError struct {
	Kind    ValidationKind
	Message string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("%s: %s", e.Kind, e.Message)
}

var emailRegex = regexp.MustCompile(`^[a-zA-Z0-9._%+\-]+@[a-zA-Z0-9.\-]+\.[a-zA-Z]{2,}$`)

var lineEndings = strings.NewReplacer("\r\n", "\n", "\r", "\n")

func clean(s string) string {
	return lineEndings.Replace(strings.TrimSpace(s))
}

// ValidateWish normalizes the raw fields and checks them in a fixed order.
// The first rule that fails determines the returned error. ID and CreatedAt
// are left for the store to assign.
func ValidateWish(in models.WishInput) (*models.Wish, error) {
	wish := clean(in.Wish)
	category := clean(in.Category)
	timeframe := clean(in.Timeframe)
	name := clean(in.Name)
	email := clean(in.Email)

	if n := utf8.RuneCountInString(wish); n < MinWishLength || n > MaxWishLength {
		return nil, &ValidationError{Kind: InvalidWish, Message: "Wish must be between 5 and 500 characters."}
	}

	if category == "" || timeframe == "" {
		return nil, &ValidationError{Kind: MissingField, Message: "Category and timeframe are required."}
	}

	intensity, err := strconv.Atoi(strings.TrimSpace(in.Intensity))
	if err != nil {
		intensity = 0
	}
	if intensity < MinIntensity || intensity > MaxIntensity {
		return nil, &ValidationError{Kind: InvalidIntensity, Message: "Intensity must be between 1 and 10."}
	}

	if email != "" && !validEmail(email) {
		return nil, &ValidationError{Kind: InvalidEmail, Message: "Invalid email."}
	}

	if name == "" {
		name = AnonymousName
	}

	return &models.Wish{
		Wish:      wish,
		Category:  category,
		Timeframe: timeframe,
		Intensity: intensity,
		Name:      name,
		Email:     email,
	}, nil
}

func validEmail(email string) bool {
	if !emailRegex.MatchString(email) {
		return false
	}
	local, domain, _ := strings.Cut(email, "@")
	if strings.HasPrefix(local, ".") || strings.HasSuffix(local, ".") || strings.Contains(local, "..") {
		return false
	}
	for _, label := range strings.Split(domain, ".") {
		if label == "" || strings.HasPrefix(label, "-") || strings.HasSuffix(label, "-") {
			return false
		}
	}
	return true
}
