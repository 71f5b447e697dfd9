package router

import (
	"fmt"
	"strings"
)

// AuthType is the credential shape a connector authenticates with.
type AuthType interface {
	AuthTypeName() string
}

// TemporaryAuth means no credentials were supplied.
type TemporaryAuth struct{}

// HeaderKey carries a single API key sent as a header.
type HeaderKey struct {
	APIKey string
}

// BodyKey carries an API key plus a secondary key placed in the request body.
type BodyKey struct {
	APIKey string
	Key1   string
}

func (TemporaryAuth) AuthTypeName() string { return "TemporaryAuth" }
func (HeaderKey) AuthTypeName() string     { return "HeaderKey" }
func (BodyKey) AuthTypeName() string       { return "BodyKey" }

// String never includes key material.
func (k HeaderKey) String() string { return "HeaderKey{**MASKED**}" }
func (k BodyKey) String() string   { return "BodyKey{**MASKED**}" }

// ParseAuthType builds an AuthType from its tag. Tags are matched
// case-insensitively and accept snake_case and kebab-case spellings.
func ParseAuthType(tag, apiKey, key1 string) (AuthType, error) {
	switch normalizeTag(tag) {
	case "", "temporaryauth":
		return TemporaryAuth{}, nil
	case "headerkey":
		if apiKey == "" {
			return nil, fmt.Errorf("auth type %s requires api_key", tag)
		}
		return HeaderKey{APIKey: apiKey}, nil
	case "bodykey":
		if apiKey == "" || key1 == "" {
			return nil, fmt.Errorf("auth type %s requires api_key and key1", tag)
		}
		return BodyKey{APIKey: apiKey, Key1: key1}, nil
	default:
		return nil, fmt.Errorf("unknown auth type %q", tag)
	}
}

func normalizeTag(tag string) string {
	tag = strings.ToLower(strings.TrimSpace(tag))
	return strings.NewReplacer("_", "", "-", "").Replace(tag)
}
