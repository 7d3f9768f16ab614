package cli

import (
	"encoding/json"
	"fmt"
	"os"
)

// Output handles formatting output based on the configured format
type Output struct {
	format string
}

// NewOutput creates a new Output formatter
func NewOutput(format string) *Output {
	return &Output{format: format}
}

// Print outputs data in the configured format
func (o *Output) Print(data any) {
	if o.format == "json" {
		o.printJSON(data)
	} else {
		o.printText(data)
	}
}

// PrintError outputs an error
func (o *Output) PrintError(err error) {
	if o.format == "json" {
		data, _ := json.Marshal(map[string]string{"error": err.Error()})
		fmt.Fprintln(os.Stderr, string(data))
	} else {
		fmt.Fprintf(os.Stderr, "Error: %s\n", err)
	}
}

// PrintMessage outputs a simple message
func (o *Output) PrintMessage(msg string) {
	if o.format == "json" {
		data, _ := json.Marshal(map[string]string{"message": msg})
		fmt.Println(string(data))
	} else {
		fmt.Println(msg)
	}
}

func (o *Output) printJSON(data any) {
	enc := json.NewEncoder(os.Stdout)
	enc.SetIndent("", "  ")
	_ = enc.Encode(data)
}

func (o *Output) printText(data any) {
	switch v := data.(type) {
	case Account:
		o.printAccount(v)
	case AccountEnvelope:
		o.printAccount(v.Account)
	case Mutation:
		o.printMutation(v)
	case Login:
		o.printLogin(v)
	case Session:
		o.printSession(v)
	case Phone:
		o.printPhone(v)
	case HealthResult:
		fmt.Printf("Status: %s\n", v.Status)
	default:
		// Fallback to JSON for unknown types
		o.printJSON(data)
	}
}

// Account response type (matches API)
type Account struct {
	ID        string  `json:"id"`
	Username  string  `json:"username"`
	Firstname string  `json:"firstname"`
	Lastname  string  `json:"lastname"`
	Email     string  `json:"email"`
	Gender    string  `json:"gender"`
	Language  string  `json:"language"`
	Rights    []Right `json:"rights"`
}

// Right response type
type Right struct {
	ID   string `json:"id"`
	Slug string `json:"slug"`
}

// AccountEnvelope response type
type AccountEnvelope struct {
	Account Account `json:"account"`
}

// Mutation response type (created/updated/deleted wrapper)
type Mutation struct {
	Message string          `json:"message"`
	Item    json.RawMessage `json:"item"`
}

// Login response type
type Login struct {
	Token      string `json:"token"`
	Expiration int    `json:"expiration"`
}

// Session response type
type Session struct {
	Token      string `json:"token"`
	Expiration int    `json:"expiration"`
	CreatedAt  string `json:"created_at"`
	AccountID  string `json:"account_id"`
}

// Phone response type
type Phone struct {
	ID      string `json:"id"`
	Number  string `json:"number"`
	Privacy string `json:"privacy"`
}

// HealthResult response type
type HealthResult struct {
	Status string `json:"status"`
}

func (o *Output) printAccount(a Account) {
	fmt.Printf("Account: %s (%s)\n", a.Username, a.ID)
	fmt.Printf("Name: %s %s\n", a.Firstname, a.Lastname)
	fmt.Printf("Email: %s\n", a.Email)
	fmt.Printf("Language: %s\n", a.Language)
	fmt.Printf("Gender: %s\n", a.Gender)
	if len(a.Rights) > 0 {
		fmt.Printf("Rights (%d):\n", len(a.Rights))
		for _, r := range a.Rights {
			fmt.Printf("  %s\n", r.Slug)
		}
	}
}

func (o *Output) printMutation(m Mutation) {
	fmt.Println(m.Message)
	if len(m.Item) == 0 {
		return
	}

	var account Account
	if err := json.Unmarshal(m.Item, &account); err == nil && account.ID != "" {
		o.printAccount(account)
		return
	}
	var phone Phone
	if err := json.Unmarshal(m.Item, &phone); err == nil && phone.Number != "" {
		o.printPhone(phone)
		return
	}
	o.printJSON(m.Item)
}

func (o *Output) printLogin(l Login) {
	fmt.Printf("Token: %s\n", l.Token)
	fmt.Printf("Expiration: %ds\n", l.Expiration)
}

func (o *Output) printSession(s Session) {
	fmt.Printf("Session: %s\n", s.Token)
	fmt.Printf("Account: %s\n", s.AccountID)
	fmt.Printf("Created: %s\n", s.CreatedAt)
	fmt.Printf("Expiration: %ds\n", s.Expiration)
}

func (o *Output) printPhone(p Phone) {
	fmt.Printf("Phone: %s (%s)\n", p.Number, p.ID)
	fmt.Printf("Privacy: %s\n", p.Privacy)
}
