package response

import (
	"time"

	"github.com/dicelobby/accounts/internal/model"
)

// Right represents a right in API responses, its slug namespaced by category
type Right struct {
	ID   string `json:"id"`
	Slug string `json:"slug"`
}

// RightFromModel converts a model.Right to a response Right
func RightFromModel(r model.Right) Right {
	return Right{
		ID:   string(r.ID),
		Slug: r.CategorySlug + "." + r.Slug,
	}
}

// Account represents an account in API responses. Rights is the flattened
// list of rights across the account's groups in group-then-right order;
// duplicates across groups are preserved.
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

// AccountFromModel converts an account and its resolved groups to the
// external projection
func AccountFromModel(a *model.Account, groups []*model.Group) Account {
	rights := make([]Right, 0)
	for _, group := range groups {
		for _, right := range group.Rights {
			rights = append(rights, RightFromModel(right))
		}
	}

	return Account{
		ID:        string(a.ID),
		Username:  a.Username,
		Firstname: a.Firstname,
		Lastname:  a.Lastname,
		Email:     a.Email,
		Gender:    string(a.Gender),
		Language:  string(a.Language),
		Rights:    rights,
	}
}

// AccountEnvelope wraps an account projection for GET responses
type AccountEnvelope struct {
	Account Account `json:"account"`
}

// Phone represents a phone record in API responses
type Phone struct {
	ID      string `json:"id"`
	Number  string `json:"number"`
	Privacy string `json:"privacy"`
}

// PhoneFromModel converts a model.Phone to a response Phone
func PhoneFromModel(p *model.Phone) Phone {
	return Phone{
		ID:      string(p.ID),
		Number:  p.Number,
		Privacy: string(p.Privacy),
	}
}

// Session represents a session in API responses
type Session struct {
	Token      string `json:"token"`
	Expiration int    `json:"expiration"`
	CreatedAt  string `json:"created_at"`
	AccountID  string `json:"account_id"`
}

// SessionFromModel converts a model.Session to a response Session
func SessionFromModel(s *model.Session) Session {
	return Session{
		Token:      s.Token,
		Expiration: s.Expiration,
		CreatedAt:  s.CreatedAt.Format(time.RFC3339),
		AccountID:  string(s.AccountID),
	}
}

// Login is the response body of a successful login
type Login struct {
	Token      string `json:"token"`
	Expiration int    `json:"expiration"`
}

// LoginFromModel converts a freshly issued session to the login response
func LoginFromModel(s *model.Session) Login {
	return Login{
		Token:      s.Token,
		Expiration: s.Expiration,
	}
}

// Mutation is the response body of a successful mutating request
type Mutation struct {
	Message string `json:"message"`
	Item    any    `json:"item,omitempty"`
}

// Created wraps the created item
func Created(item any) Mutation {
	return Mutation{Message: "created", Item: item}
}

// Updated wraps the updated item
func Updated(item any) Mutation {
	return Mutation{Message: "updated", Item: item}
}

// Deleted is the body of a successful deletion
func Deleted() Mutation {
	return Mutation{Message: "deleted"}
}
