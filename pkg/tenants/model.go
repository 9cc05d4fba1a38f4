package tenants

// Club represents a logical customer organization (a tenant).
type Club struct {
	ID          string `json:"id"`           // uuid
	Slug        string `json:"slug"`         // subdomain label (acme)
	Name        string `json:"name"`         // display name
	PrimaryHost string `json:"primary_host"` // matched custom host, if resolved via the alias table
}
