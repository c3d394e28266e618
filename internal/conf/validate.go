// validate.go: sanity checks for loaded settings
package conf

import (
	"errors"
	"fmt"
	"strconv"
)

// ValidationError holds all validation failures found in one pass.
type ValidationError struct {
	Errors []string
}

func (ve *ValidationError) Error() string {
	if len(ve.Errors) == 0 {
		return "no validation errors"
	}
	return fmt.Sprintf("settings validation failed: %v", ve.Errors)
}

// ValidateSettings checks the loaded settings for obvious misconfiguration.
func ValidateSettings(settings *Settings) error {
	ve := &ValidationError{}

	if settings == nil {
		return errors.New("settings is nil")
	}

	validateWebServer(&settings.WebServer, ve)
	validateOutput(&settings.Output, ve)
	validateSearch(&settings.Registry.Search, ve)
	validateVocabulary(&settings.Registry.Vocabulary, ve)

	if len(ve.Errors) > 0 {
		return ve
	}
	return nil
}

func validateWebServer(ws *WebServerSettings, ve *ValidationError) {
	if !ws.Enabled {
		return
	}
	port, err := strconv.Atoi(ws.Port)
	if err != nil || port < 1 || port > 65535 {
		ve.Errors = append(ve.Errors, fmt.Sprintf("webserver port must be a number between 1 and 65535, got %q", ws.Port))
	}
}

func validateOutput(out *OutputSettings, ve *ValidationError) {
	if !out.SQLite.Enabled && !out.MySQL.Enabled {
		ve.Errors = append(ve.Errors, "no database output enabled, enable sqlite or mysql")
	}
	if out.SQLite.Enabled && out.MySQL.Enabled {
		ve.Errors = append(ve.Errors, "only one database output may be enabled at a time")
	}
	if out.SQLite.Enabled && out.SQLite.Path == "" {
		ve.Errors = append(ve.Errors, "sqlite enabled but no path configured")
	}
	if out.MySQL.Enabled {
		if out.MySQL.Database == "" || out.MySQL.Host == "" {
			ve.Errors = append(ve.Errors, "mysql enabled but database or host missing")
		}
	}
}

func validateSearch(s *SearchSettings, ve *ValidationError) {
	if s.SuggestionLimit < 1 {
		ve.Errors = append(ve.Errors, "search suggestion limit must be at least 1")
	}
	if s.FallbackScanLimit < s.SuggestionLimit {
		ve.Errors = append(ve.Errors, "fallback scan limit must not be smaller than the suggestion limit")
	}
	if s.DebounceMillis < 0 {
		ve.Errors = append(ve.Errors, "search debounce must not be negative")
	}
}

func validateVocabulary(v *VocabularySettings, ve *ValidationError) {
	// Empty lists silently disable legacy classification, treat as an error.
	if len(v.StudentKeywords) == 0 {
		ve.Errors = append(ve.Errors, "vocabulary student keywords must not be empty")
	}
	if len(v.EmptyOccupationMarkers) == 0 {
		ve.Errors = append(ve.Errors, "vocabulary empty occupation markers must not be empty")
	}
	if len(v.HealthySynonyms) == 0 {
		ve.Errors = append(ve.Errors, "vocabulary healthy synonyms must not be empty")
	}
}
