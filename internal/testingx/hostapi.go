package testingx

import (
	"encoding/json"
	"io"
	"log"
	"net/http"
	"sort"
	"strings"
	"sync"

	"github.com/j81blog/Miscellaneous-Code-And-Files-sub001/internal/model"
	"github.com/j81blog/Miscellaneous-Code-And-Files-sub001/internal/must"
	"github.com/j81blog/Miscellaneous-Code-And-Files-sub001/internal/runtimex"
)

// HostAPI implements a hosting provider DNS API for testing.
//
// The fake follows the provider's enveloped response convention: the
// transport status is always 200 and the envelope status field is the
// authoritative one, including for failures such as a bad API key.
//
// The zero value is ready to use.
//
// This struct's methods panic on several errors. Only use for testing!
type HostAPI struct {
	// APIKey OPTIONALLY requires each request to carry this
	// value inside the API-Key header.
	APIKey string

	// EditDomainsResponse is an OPTIONAL callback to edit the domains
	// list before the server actually sends it to the client.
	EditDomainsResponse func(domains []model.HostedDomain) []model.HostedDomain

	// EditRecordsResponse is an OPTIONAL callback to edit the records
	// list before the server actually sends it to the client.
	EditRecordsResponse func(records []model.DNSRecord) []model.DNSRecord

	// ValidatePutRecords is an OPTIONAL callback to validate an incoming
	// records update beyond the checks this fake already performs. A non-nil
	// return value causes an envelope with status 400 and the error text.
	ValidatePutRecords func(domain string, records []model.DNSRecord) error

	// mu provides mutual exclusion.
	mu sync.Mutex

	// domains maps a domain name to its DNS records.
	domains map[string][]model.DNSRecord
}

// SetDomain registers the given domain and its records.
//
// This method is safe to call concurrently with other methods.
func (ha *HostAPI) SetDomain(domain string, records []model.DNSRecord) {
	ha.mu.Lock()
	if ha.domains == nil {
		ha.domains = make(map[string][]model.DNSRecord)
	}
	ha.domains[domain] = records
	ha.mu.Unlock()
}

// Records returns the records stored for the given domain.
//
// This method is safe to call concurrently with other methods.
func (ha *HostAPI) Records(domain string) ([]model.DNSRecord, bool) {
	defer ha.mu.Unlock()
	ha.mu.Lock()
	records, found := ha.domains[domain]
	return records, found
}

// hostAPIEnvelope is the envelope wrapped around every response.
type hostAPIEnvelope struct {
	Status            int    `json:"status"`
	StatusDescription string `json:"status_description"`
	Data              any    `json:"data"`
}

// hostAPIDomainsData is the data payload of the domains listing.
type hostAPIDomainsData struct {
	Domains []model.HostedDomain `json:"domains"`
}

// hostAPIRecordsData is the data payload of the records listing.
type hostAPIRecordsData struct {
	Domain  string            `json:"domain"`
	Records []model.DNSRecord `json:"records"`
}

// sendEnvelope sends an enveloped response. As documented, the
// transport level status is always 200.
func (ha *HostAPI) sendEnvelope(w http.ResponseWriter, status int, description string, data any) {
	envelope := &hostAPIEnvelope{
		Status:            status,
		StatusDescription: description,
		Data:              data,
	}
	w.Header().Set("Content-Type", "application/json")
	w.Write(must.MarshalJSON(envelope))
}

// ServeHTTP implements [http.Handler].
//
// This method is safe to call concurrently with other methods.
func (ha *HostAPI) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	log.Printf("HostAPI: %s %s", r.Method, r.URL.Path)

	// enforce the API key when one is configured
	if ha.APIKey != "" && r.Header.Get("API-Key") != ha.APIKey {
		log.Printf("HostAPI: invalid API key")
		ha.sendEnvelope(w, 401, "Invalid API key provided", nil)
		return
	}

	// handle the case where the user wants to list domains
	if r.URL.Path == "/domains" && r.Method == http.MethodGet {
		ha.listDomains(w)
		return
	}

	// handle the case where the user addresses a domain's DNS records
	if domain, found := strings.CutPrefix(r.URL.Path, "/domains/"); found {
		if domain, found := strings.CutSuffix(domain, "/dns"); found {
			switch r.Method {
			case http.MethodGet:
				ha.getRecords(w, domain)
			case http.MethodPut:
				ha.putRecords(w, r, domain)
			default:
				ha.sendEnvelope(w, 405, "Method not allowed", nil)
			}
			return
		}
	}

	log.Printf("HostAPI: path not found")
	ha.sendEnvelope(w, 404, "Not found", nil)
}

// listDomains handles listing the registered domains.
func (ha *HostAPI) listDomains(w http.ResponseWriter) {
	ha.mu.Lock()
	var domains []model.HostedDomain
	for name := range ha.domains {
		domains = append(domains, model.HostedDomain{Domain: name})
	}
	ha.mu.Unlock()

	// sort so the output is deterministic
	sort.Slice(domains, func(i, j int) bool {
		return domains[i].Domain < domains[j].Domain
	})

	if ha.EditDomainsResponse != nil {
		domains = ha.EditDomainsResponse(domains)
	}
	ha.sendEnvelope(w, 200, "Success", &hostAPIDomainsData{Domains: domains})
}

// getRecords handles listing the records of a domain.
func (ha *HostAPI) getRecords(w http.ResponseWriter, domain string) {
	ha.mu.Lock()
	records, found := ha.domains[domain]
	ha.mu.Unlock()

	if !found {
		log.Printf("HostAPI: unknown domain %s", domain)
		ha.sendEnvelope(w, 404, "Domain not found", nil)
		return
	}
	if ha.EditRecordsResponse != nil {
		records = ha.EditRecordsResponse(records)
	}
	ha.sendEnvelope(w, 200, "Success", &hostAPIRecordsData{
		Domain:  domain,
		Records: records,
	})
}

// putRecords handles replacing the records of a domain.
func (ha *HostAPI) putRecords(w http.ResponseWriter, r *http.Request, domain string) {
	// read the raw request body or panic if we cannot read it
	body := runtimex.Try1(io.ReadAll(r.Body))
	log.Printf("HostAPI: request body %s", string(body))

	// make sure we can parse the incoming request
	var request struct {
		Records []model.DNSRecord `json:"records"`
	}
	if err := json.Unmarshal(body, &request); err != nil {
		log.Printf("HostAPI: cannot unmarshal JSON: %s", err.Error())
		ha.sendEnvelope(w, 400, "Invalid request body", nil)
		return
	}

	// refuse updating a domain we do not know about
	ha.mu.Lock()
	_, found := ha.domains[domain]
	ha.mu.Unlock()
	if !found {
		log.Printf("HostAPI: unknown domain %s", domain)
		ha.sendEnvelope(w, 404, "Domain not found", nil)
		return
	}

	// give the test a chance to validate the update
	if ha.ValidatePutRecords != nil {
		if err := ha.ValidatePutRecords(domain, request.Records); err != nil {
			log.Printf("HostAPI: records rejected: %s", err.Error())
			ha.sendEnvelope(w, 400, err.Error(), nil)
			return
		}
	}

	ha.SetDomain(domain, request.Records)

	// Note: a successful update intentionally carries a null data
	// payload, like the real provider does.
	ha.sendEnvelope(w, 200, "Records updated", nil)
}
