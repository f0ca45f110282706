// Package config loads and validates Stockhold configuration.
//
// Configuration comes from a YAML file with hardcoded defaults underneath
// and environment variable overrides on top (STOCKHOLD_* variables).
// Validation refuses to start with a missing or weak JWT signing secret:
// every tenant-scoped request trusts token claims verbatim, so the secret
// is the root of the tenant isolation model.
package config
