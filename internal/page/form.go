package page

import (
	"errors"
	"net/url"
	"slices"
	"strings"
)

// ErrIncompleteForm is returned by Validate when a required field is
// missing.
var ErrIncompleteForm = errors.New("page: name and a valid email are required")

// ServiceOptions are the project classifications offered by the contact
// form. The first one is preselected.
var ServiceOptions = []string{
	"I need Automation Systems",
	"I need a Mobile App",
	"Full Stack Overhaul",
	"AI Strategy Consultation",
	"Other",
}

// ContactForm holds the visible contact form fields.
type ContactForm struct {
	Name          string `json:"name"`
	Email         string `json:"email"`
	ServiceDomain string `json:"service_domain"`
	Message       string `json:"message"`
}

// EmptyForm is the cleared form, with the default classification selected.
func EmptyForm() ContactForm {
	return ContactForm{ServiceDomain: ServiceOptions[0]}
}

// FormFromValues reads the form fields out of a decoded request body. A
// classification outside ServiceOptions reads as the default.
func FormFromValues(v url.Values) ContactForm {
	f := ContactForm{
		Name:          strings.TrimSpace(v.Get("name")),
		Email:         strings.TrimSpace(v.Get("email")),
		ServiceDomain: v.Get("service_domain"),
		Message:       v.Get("message"),
	}
	if !slices.Contains(ServiceOptions, f.ServiceDomain) {
		f.ServiceDomain = ServiceOptions[0]
	}
	return f
}

// Values returns the field set posted to the relay.
func (f ContactForm) Values() url.Values {
	v := url.Values{}
	v.Set("name", f.Name)
	v.Set("email", f.Email)
	v.Set("service_domain", f.ServiceDomain)
	v.Set("message", f.Message)
	return v
}

// Validate checks the fields the form marks as required.
func (f ContactForm) Validate() error {
	if strings.TrimSpace(f.Name) == "" {
		return ErrIncompleteForm
	}
	at := strings.Index(f.Email, "@")
	if at <= 0 || at == len(f.Email)-1 {
		return ErrIncompleteForm
	}
	return nil
}
