package config

import (
	"fmt"
	"mime"
	"net/url"
	"os"
	"strings"

	"github.com/hay-kot/criterio"

	"github.com/colonyops/regform/internal/core/styles"
)

// ValidationWarning represents a non-fatal configuration issue.
type ValidationWarning struct {
	Category string `json:"category"`
	Item     string `json:"item,omitempty"`
	Message  string `json:"message"`
}

// ValidateDeep performs comprehensive validation of the configuration
// including URL parsing, theme lookup and file accessibility. The configPath
// argument specifies the config file location to validate (empty string skips
// the config file check). This calls Validate() first for basic structural
// validation.
func (c *Config) ValidateDeep(configPath string) error {
	if err := c.Validate(); err != nil {
		return err
	}

	return criterio.ValidateStruct(
		validateConfigFile(configPath),
		criterio.Run("endpoint", c.Endpoint, endpointURL),
		criterio.Run("abstract.mime_type", c.Abstract.MimeType, mediaType),
		criterio.Run("tui.theme", c.TUI.Theme, themeExists),
		c.validateDomains(),
	)
}

// Warnings returns non-fatal configuration issues.
func (c *Config) Warnings() []ValidationWarning {
	var warnings []ValidationWarning

	if c.Endpoint == "" {
		warnings = append(warnings, ValidationWarning{
			Category: "Submit",
			Item:     "endpoint",
			Message:  "no endpoint configured; pass --endpoint or set REGFORM_ENDPOINT before submitting",
		})
	}

	if c.Submit.Timeout == 0 {
		warnings = append(warnings, ValidationWarning{
			Category: "Submit",
			Item:     "timeout",
			Message:  "no timeout set; a stalled endpoint keeps the form in flight",
		})
	}

	if len(c.Domains) == 0 {
		warnings = append(warnings, ValidationWarning{
			Category: "Form",
			Item:     "domains",
			Message:  "no domains listed; any non-empty domain is accepted",
		})
	}

	return warnings
}

func validateConfigFile(configPath string) error {
	if configPath == "" {
		return nil
	}

	info, err := os.Stat(configPath)
	if os.IsNotExist(err) {
		return nil // not found is fine, using defaults
	}
	if err != nil {
		return criterio.NewFieldErrors("config_file", fmt.Errorf("cannot access: %w", err))
	}
	if info.IsDir() {
		return criterio.NewFieldErrors("config_file", fmt.Errorf("%s is a directory, not a file", configPath))
	}
	return nil
}

// endpointURL validates an absolute http(s) URL. Empty is allowed here and
// reported as a warning instead.
func endpointURL(raw string) error {
	if raw == "" {
		return nil
	}
	u, err := url.Parse(raw)
	if err != nil {
		return fmt.Errorf("invalid url: %w", err)
	}
	if u.Scheme != "http" && u.Scheme != "https" {
		return fmt.Errorf("scheme must be http or https, got %q", u.Scheme)
	}
	if u.Host == "" {
		return fmt.Errorf("url %q has no host", raw)
	}
	return nil
}

func mediaType(s string) error {
	if _, _, err := mime.ParseMediaType(s); err != nil {
		return fmt.Errorf("invalid media type %q: %w", s, err)
	}
	return nil
}

func themeExists(name string) error {
	if _, ok := styles.GetPalette(name); !ok {
		return fmt.Errorf("unknown theme %q (available: %s)", name, strings.Join(styles.ThemeNames(), ", "))
	}
	return nil
}

func (c *Config) validateDomains() error {
	var errs criterio.FieldErrorsBuilder
	seen := make(map[string]bool, len(c.Domains))

	for i, d := range c.Domains {
		field := fmt.Sprintf("domains[%d]", i)
		key := strings.ToLower(strings.TrimSpace(d))

		if key == "" {
			errs = errs.Append(field, fmt.Errorf("domain cannot be empty"))
			continue
		}
		if seen[key] {
			errs = errs.Append(field, fmt.Errorf("duplicate domain %q", d))
		}
		seen[key] = true
	}

	return errs.ToError()
}
