// Package session holds the per-process admin session: the API base URL and
// the admin credential. It is built once at startup and passed explicitly to
// the components that need it.
package session

import (
	"errors"
	"strings"

	"github.com/boddenberg/botshop-admin-bfa/internal/domain"
	"github.com/boddenberg/botshop-admin-bfa/internal/port"
)

// PromptMessage is shown when no credential was pre-seeded.
const PromptMessage = "הכנס ADMIN_DASH_TOKEN לצפייה במידע ניהולי:"

// Credential is the opaque admin token sent as X-Admin-Token.
type Credential string

// String hides the token in logs.
func (c Credential) String() string {
	if c == "" {
		return ""
	}
	return "***"
}

// Session carries what the API client needs to talk to the admin API.
type Session struct {
	BaseURL    string
	Credential Credential
}

// New builds a session. Trailing slashes on baseURL are dropped so paths
// can be appended verbatim.
func New(baseURL string, cred Credential) *Session {
	return &Session{
		BaseURL:    strings.TrimRight(baseURL, "/"),
		Credential: cred,
	}
}

// Acquire returns the admin credential. A pre-seeded value wins; otherwise
// prompter is asked exactly once. An empty answer counts as cancelled.
func Acquire(seeded string, prompter port.CredentialPrompter) (Credential, error) {
	if seeded = strings.TrimSpace(seeded); seeded != "" {
		return Credential(seeded), nil
	}
	if prompter == nil {
		return "", &domain.ErrCancelled{Reason: "no credential configured and no prompt available"}
	}

	answer, err := prompter.PromptCredential(PromptMessage)
	if err != nil {
		var cancelled *domain.ErrCancelled
		if errors.As(err, &cancelled) {
			return "", err
		}
		return "", &domain.ErrCancelled{Reason: err.Error()}
	}

	answer = strings.TrimSpace(answer)
	if answer == "" {
		return "", &domain.ErrCancelled{Reason: "empty credential"}
	}
	return Credential(answer), nil
}
