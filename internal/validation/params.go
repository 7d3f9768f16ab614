package validation

import (
	"encoding/json"
	"io"
	"net/http"
	"strconv"

	"github.com/dicelobby/accounts/internal/model"
)

// Params is the merged, string-valued parameter mapping of a request:
// query parameters plus the keys of the JSON body object, body winning on
// conflict. List-valued parameters (only `groups` in practice) are kept
// separately.
type Params struct {
	values map[string]string
	lists  map[string][]string
}

// NewParams creates an empty parameter mapping
func NewParams() *Params {
	return &Params{
		values: make(map[string]string),
		lists:  make(map[string][]string),
	}
}

// Set stores a scalar parameter
func (p *Params) Set(key, value string) {
	p.values[key] = value
}

// SetList stores a list parameter
func (p *Params) SetList(key string, values []string) {
	p.lists[key] = values
}

// Get returns the scalar value for key, or the empty string
func (p *Params) Get(key string) string {
	return p.values[key]
}

// Has reports whether key is present with a non-empty scalar value
func (p *Params) Has(key string) bool {
	return p.values[key] != ""
}

// List returns the list value for key, or nil
func (p *Params) List(key string) []string {
	return p.lists[key]
}

// HasList reports whether key is present as a list
func (p *Params) HasList(key string) bool {
	_, ok := p.lists[key]
	return ok
}

// FromRequest builds the parameter mapping for a request. The body, when
// non-empty, must be a JSON object; anything else is a bad_request failure
// with no field pinpointed beyond the body itself.
func FromRequest(r *http.Request) (*Params, error) {
	p := NewParams()

	for key, vals := range r.URL.Query() {
		if len(vals) > 0 {
			p.Set(key, vals[0])
		}
	}

	body, err := io.ReadAll(r.Body)
	if err != nil {
		return nil, model.NewFieldError("body", model.CodeBadRequest)
	}
	if len(body) == 0 {
		return p, nil
	}

	var obj map[string]any
	if err := json.Unmarshal(body, &obj); err != nil {
		return nil, model.NewFieldError("body", model.CodeBadRequest)
	}

	for key, val := range obj {
		switch v := val.(type) {
		case string:
			p.Set(key, v)
		case float64:
			p.Set(key, formatNumber(v))
		case bool:
			p.Set(key, strconv.FormatBool(v))
		case []any:
			list := make([]string, 0, len(v))
			for _, item := range v {
				s, ok := item.(string)
				if !ok {
					return nil, model.NewFieldError("body", model.CodeBadRequest)
				}
				list = append(list, s)
			}
			p.SetList(key, list)
		case nil:
			// Absent and null are equivalent
		default:
			return nil, model.NewFieldError("body", model.CodeBadRequest)
		}
	}

	return p, nil
}

func formatNumber(f float64) string {
	if f == float64(int64(f)) {
		return strconv.FormatInt(int64(f), 10)
	}
	return strconv.FormatFloat(f, 'f', -1, 64)
}
