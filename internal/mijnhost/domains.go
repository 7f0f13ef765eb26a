package mijnhost

//
// Listing registered domains.
//

import (
	"context"

	"github.com/j81blog/Miscellaneous-Code-And-Files-sub001/internal/httpapi"
	"github.com/j81blog/Miscellaneous-Code-And-Files-sub001/internal/model"
)

// domainsData is the data payload of the domains listing API.
type domainsData struct {
	Domains []model.HostedDomain `json:"domains"`
}

// ListDomains returns the domains registered with the provider. An account
// without domains yields an empty list and no error.
func (s *Session) ListDomains(ctx context.Context) ([]model.HostedDomain, error) {
	desc := httpapi.NewGETJSONDescriptor("/domains").WithBodyLogging(s.LogBody)
	data, err := call[domainsData](ctx, s, desc)
	if err != nil {
		return nil, err
	}
	return data.UnwrapOr(domainsData{}).Domains, nil
}
