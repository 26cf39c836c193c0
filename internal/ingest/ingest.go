// Package ingest turns uploaded CSV/Excel files into validated contract and
// contact inputs, and produces the matching download templates.
package ingest

// Kind selects which canonical schema an upload is validated against.
type Kind string

const (
	KindContracts Kind = "contracts"
	KindContacts  Kind = "contacts"
)

// Record is one parsed data row: normalized header name -> trimmed raw cell.
type Record map[string]string
