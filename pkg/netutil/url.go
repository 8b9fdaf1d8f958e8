package netutil

import (
	"net/url"
	"strings"

	"github.com/pkg/errors"
)

// ValidateHttpUrl validates a URL for an HTTP scheme. The check is purely
// syntactic so it can run offline (eg. when persisting an RPC endpoint to a
// config file).
func ValidateHttpUrl(value string, requireSecureConnection bool) error {
	parsed, err := url.Parse(value)
	if err != nil {
		return err
	}

	if requireSecureConnection && parsed.Scheme != "https" {
		return errors.New("url scheme must be https")
	}

	if parsed.Scheme != "http" && parsed.Scheme != "https" {
		return errors.New("url scheme must be http or https")
	}

	if len(parsed.Host) == 0 {
		return errors.New("host component missing")
	} else if err := ValidateDomainName(parsed.Hostname()); err != nil {
		return errors.Wrap(err, "host is not a valid domain name")
	}

	return nil
}

// RewriteGitHubBlobUrl converts a github.com blob URL into the equivalent
// raw.githubusercontent.com URL so the fetched bytes are the file contents
// rather than the web page around them. Any other URL is returned unchanged.
func RewriteGitHubBlobUrl(value string) string {
	if strings.Contains(value, "github.com") && strings.Contains(value, "/blob/") {
		value = strings.Replace(value, "github.com", "raw.githubusercontent.com", 1)
		value = strings.Replace(value, "/blob/", "/", 1)
	}
	return value
}
