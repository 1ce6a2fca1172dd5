// Package names provides the mocked name uniqueness check behind the entry
// form: a registry of taken names loaded from embedded YAML, an in-process
// Checker with simulated latency, and a rate-limited net/http handler.
package names
