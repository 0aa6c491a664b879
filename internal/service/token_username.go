package service

import "errors"

// UsernameTokens uses the username itself as the bearer token: no signature,
// no expiry. For tests and throwaway demos only; never wire it in production.
type UsernameTokens struct{}

var _ TokenService = UsernameTokens{}

func (UsernameTokens) Issue(username string) (string, error) {
	if username == "" {
		return "", errEmptySubject
	}
	return username, nil
}

func (UsernameTokens) Subject(token string) (string, error) {
	if token == "" {
		return "", errors.New("empty token")
	}
	return token, nil
}
