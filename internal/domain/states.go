package domain

import "strings"

// stateAbbreviations maps lowercased full state names to USPS codes.
// Covers the 50 states plus the District of Columbia, matching the values
// the enforcement API stores in its state column.
var stateAbbreviations = map[string]string{
	"alabama":              "AL",
	"alaska":               "AK",
	"arizona":              "AZ",
	"arkansas":             "AR",
	"california":           "CA",
	"colorado":             "CO",
	"connecticut":          "CT",
	"delaware":             "DE",
	"district of columbia": "DC",
	"florida":              "FL",
	"georgia":              "GA",
	"hawaii":               "HI",
	"idaho":                "ID",
	"illinois":             "IL",
	"indiana":              "IN",
	"iowa":                 "IA",
	"kansas":               "KS",
	"kentucky":             "KY",
	"louisiana":            "LA",
	"maine":                "ME",
	"maryland":             "MD",
	"massachusetts":        "MA",
	"michigan":             "MI",
	"minnesota":            "MN",
	"mississippi":          "MS",
	"missouri":             "MO",
	"montana":              "MT",
	"nebraska":             "NE",
	"nevada":               "NV",
	"new hampshire":        "NH",
	"new jersey":           "NJ",
	"new mexico":           "NM",
	"new york":             "NY",
	"north carolina":       "NC",
	"north dakota":         "ND",
	"ohio":                 "OH",
	"oklahoma":             "OK",
	"oregon":               "OR",
	"pennsylvania":         "PA",
	"rhode island":         "RI",
	"south carolina":       "SC",
	"south dakota":         "SD",
	"tennessee":            "TN",
	"texas":                "TX",
	"utah":                 "UT",
	"vermont":              "VT",
	"virginia":             "VA",
	"washington":           "WA",
	"west virginia":        "WV",
	"wisconsin":            "WI",
	"wyoming":              "WY",
}

// stateCodes is the set of valid USPS codes, derived from the name map.
var stateCodes = func() map[string]bool {
	codes := make(map[string]bool, len(stateAbbreviations))
	for _, code := range stateAbbreviations {
		codes[code] = true
	}
	return codes
}()

// NormalizeStateTokens rewrites each comma-separated state token to its USPS
// abbreviation: known two-letter codes pass through (upcased), full names
// match case-insensitively. Tokens matching neither are dropped from the
// value and returned so callers can warn about them. The normalized value is
// empty when no token matched.
func NormalizeStateTokens(raw string) (normalized string, dropped []string) {
	if raw == "" {
		return "", nil
	}

	var kept []string
	for _, token := range strings.Split(raw, ", ") {
		trimmed := strings.TrimSpace(token)
		upper := strings.ToUpper(trimmed)
		if stateCodes[upper] {
			kept = append(kept, upper)
			continue
		}
		if code, ok := stateAbbreviations[strings.ToLower(trimmed)]; ok {
			kept = append(kept, code)
			continue
		}
		dropped = append(dropped, trimmed)
	}

	return strings.Join(kept, ", "), dropped
}
