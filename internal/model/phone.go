package model

// PhoneID uniquely identifies a phone record
type PhoneID string

// Privacy controls who may see a phone number
type Privacy string

const (
	PrivacyPlayers Privacy = "players"
	PrivacyPrivate Privacy = "private"
	PrivacyPublic  Privacy = "public"
)

// ValidPrivacy reports whether p is one of the enumerated privacy levels
func ValidPrivacy(p Privacy) bool {
	return p == PrivacyPlayers || p == PrivacyPrivate || p == PrivacyPublic
}

// Phone is a phone number owned by exactly one account
type Phone struct {
	ID        PhoneID
	AccountID AccountID
	Number    string
	Privacy   Privacy
}
