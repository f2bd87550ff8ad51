// Package openapi exposes the public contracts for loading OpenAPI 3
// documents and converting them into a schema.Catalog of descriptors that the
// generator can synthesize fixtures for. Implementations live under
// internal/openapi to keep kin-openapi types out of the public API.
package openapi
