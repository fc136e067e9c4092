package client

import (
	"context"
	"errors"
	"strings"
)

// ErrNotSignedIn is returned when an apply attempt has no resolved identity.
var ErrNotSignedIn = errors.New("no signed-in user")

// Identity is the caller's resolved identity, as supplied by the identity
// provider. It is passed explicitly to the flows that need it.
type Identity struct {
	Email       string
	DisplayName string
	PhotoURL    string
}

// NameParts splits the display name on the first whitespace. Both parts are
// empty when there is no display name.
func (i Identity) NameParts() (first, last string) {
	name := strings.TrimSpace(i.DisplayName)
	if name == "" {
		return "", ""
	}
	parts := strings.SplitN(name, " ", 2)
	first = parts[0]
	if len(parts) > 1 {
		last = strings.TrimSpace(parts[1])
	}
	return first, last
}

// ApplyResult is the outcome of a submission attempt. Exactly one of result or
// error comes back from Apply; how to present it is the caller's decision.
type ApplyResult struct {
	ApplicationID string
	Status        string
}

// Apply submits an application for the given offering on behalf of identity.
func (c *Client) Apply(ctx context.Context, visa Visa, identity Identity) (*ApplyResult, error) {
	if identity.Email == "" {
		return nil, ErrNotSignedIn
	}

	first, last := identity.NameParts()
	id, err := c.CreateApplication(ctx, CreateApplicationInput{
		VisaID:             visa.ID,
		UserEmail:          identity.Email,
		ApplicantFirstName: first,
		ApplicantLastName:  last,
		Status:             "Applied",
	})
	if err != nil {
		return nil, err
	}

	return &ApplyResult{ApplicationID: id, Status: "Applied"}, nil
}
