package auth

import (
	"os"
	"strings"
)

// AccessPolicy gates which emails may start OTP flows. An allow-list wins,
// then an allow-domain suffix; with neither configured registration is open.
type AccessPolicy struct {
	allowedEmails map[string]struct{}
	allowedDomain string
}

func NewAccessPolicy() *AccessPolicy {
	var emails []string
	for _, e := range strings.Split(os.Getenv("ALLOWED_OTP_EMAILS"), ",") {
		if v := strings.TrimSpace(strings.ToLower(e)); v != "" {
			emails = append(emails, v)
		}
	}
	domain := strings.TrimSpace(strings.ToLower(os.Getenv("ALLOWED_OTP_DOMAIN")))
	return NewAccessPolicyFrom(emails, domain)
}

func NewAccessPolicyFrom(emails []string, domain string) *AccessPolicy {
	set := make(map[string]struct{}, len(emails))
	for _, e := range emails {
		set[strings.ToLower(e)] = struct{}{}
	}
	return &AccessPolicy{allowedEmails: set, allowedDomain: strings.ToLower(domain)}
}

func (p *AccessPolicy) IsAllowed(email string) bool {
	e := strings.TrimSpace(strings.ToLower(email))
	if len(p.allowedEmails) > 0 {
		if _, ok := p.allowedEmails[e]; ok {
			return true
		}
	}
	if p.allowedDomain != "" && strings.HasSuffix(e, "@"+p.allowedDomain) {
		return true
	}
	if len(p.allowedEmails) == 0 && p.allowedDomain == "" {
		return true
	}
	return false
}

// Restricted reports whether any allow rule is configured.
func (p *AccessPolicy) Restricted() bool {
	return len(p.allowedEmails) > 0 || p.allowedDomain != ""
}
