package api

import (
	"encoding/base64"
	"fmt"
)

// Credentials is the username/password pair sent as HTTP Basic auth on every
// clipboard request. The zero value sends an empty user and password.
type Credentials struct {
	username string
	password string
}

func NewCredentials(username, password string) Credentials {
	return Credentials{username: username, password: password}
}

func (c Credentials) Username() string {
	return c.username
}

// basicAuth returns the Authorization header value.
func (c Credentials) basicAuth() string {
	return "Basic " + base64.StdEncoding.EncodeToString([]byte(c.username+":"+c.password))
}

func (c Credentials) String() string {
	return fmt.Sprintf("Credentials{username: %q, password: [redacted]}", c.username)
}

func (c Credentials) GoString() string {
	return c.String()
}
