// Package config provides database connection configuration for tests
// and the example application, for all three supported drivers.
package config
