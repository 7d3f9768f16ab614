package apierr

// docsBase is the root of the API documentation wiki
const docsBase = "https://github.com/dicelobby/wiki/wiki/Accounts-API"

// docsAnchors maps "<field>.<error>" to its documentation anchor
var docsAnchors = map[string]string{
	"username.required":               "#username-not-given",
	"username.uniq":                   "#username-already-taken",
	"username.minlength":              "#username-too-short",
	"username.unknown":                "#account-not-found",
	"password.required":               "#password-not-given",
	"password.wrong_password":         "#wrong-password",
	"password_confirmation.required":  "#password-confirmation-not-given",
	"password_confirmation.confirmation": "#password-confirmation-not-matching",
	"email.required":                  "#email-not-given",
	"email.uniq":                      "#email-already-taken",
	"email.pattern":                   "#email-badly-formatted",
	"session_id.required":             "#session-id-not-given",
	"session_id.unknown":              "#session-id-not-found",
	"account_id.unknown":              "#account-id-not-found",
	"group_id.unknown":                "#group-id-not-found",
	"phone_id.unknown":                "#phone-id-not-found",
	"number.required":                 "#phone-number-not-given",
	"privacy.required":                "#privacy-not-given",
	"privacy.wrong_value":             "#privacy-wrong-value",
	"token.required":                  "#gateway-token-not-given",
	"token.unknown":                   "#gateway-not-found",
	"app_key.required":                "#application-key-not-given",
	"app_key.unknown":                 "#application-not-found",
	"app_key.forbidden":               "#application-not-premium",
}

// DocsURL returns the documentation URL for a field/error pair. Unmapped
// pairs fall back to the documentation root.
func DocsURL(field, code string) string {
	if anchor, ok := docsAnchors[field+"."+code]; ok {
		return docsBase + anchor
	}
	return docsBase
}
