package model

// Gateway is a trusted upstream edge, identified by its token
type Gateway struct {
	ID     string
	Token  string
	Active bool
}

// Application is an OAuth-style registered API consumer identified by a key.
// Premium applications may call premium-gated routes.
type Application struct {
	ID      string
	Name    string
	Key     string
	Premium bool
}
