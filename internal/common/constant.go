// Package common contains shared constants and sentinel errors used across
// Threadhub components.
package common

// AccessTokenHeaderName is the HTTP header carrying the bearer access token
// on authenticated requests.
const AccessTokenHeaderName = "Authorization"
