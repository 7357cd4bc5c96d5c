// Package portal wires the credential services into the customer and admin
// HTTP surface: JSON auth endpoints with an OTP second step, API key
// management, invoice issuance for admins, and the public invoice
// verification endpoint. Persistence is a single Postgres-backed adapter
// implementing every service's storage port.
package portal
