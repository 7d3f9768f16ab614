package model

import "time"

// AccountID uniquely identifies an account across the system
type AccountID string

// Language is the interface language chosen by an account
type Language string

// Gender is the declared gender of an account
type Gender string

const (
	LanguageFrench  Language = "fr_FR"
	LanguageEnglish Language = "en_GB"

	GenderMale    Gender = "male"
	GenderFemale  Gender = "female"
	GenderNeutral Gender = "neutral"
)

// DefaultLanguage applies when no language is supplied at creation
const DefaultLanguage = LanguageFrench

// DefaultGender applies when no gender is supplied at creation
const DefaultGender = GenderNeutral

// ValidLanguage reports whether l is a supported language code
func ValidLanguage(l Language) bool {
	return l == LanguageFrench || l == LanguageEnglish
}

// ValidGender reports whether g is a supported gender value
func ValidGender(g Gender) bool {
	return g == GenderMale || g == GenderFemale || g == GenderNeutral
}

// Account represents a registered user account.
// The password is only ever held as a bcrypt hash.
type Account struct {
	ID           AccountID
	Username     string
	PasswordHash string
	Email        string
	Firstname    string
	Lastname     string
	Birthdate    *time.Time
	Language     Language
	Gender       Gender
	GroupIDs     []GroupID
	CreatedAt    time.Time
	UpdatedAt    time.Time
}
