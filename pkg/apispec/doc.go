// Package apispec embeds the OpenAPI description of the HTTP surface, serves
// it, and validates incoming requests against it.
package apispec
