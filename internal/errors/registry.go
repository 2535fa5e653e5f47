package errors

// ErrorTemplate defines a registered error type.
type ErrorTemplate struct {
	Category Category
	Message  string
}

// Registered codes.
const (
	CodeFragmentFetch    = "L001"
	CodeFragmentParse    = "L002"
	CodeMissingContainer = "L003"
	CodeUnknownPage      = "L004"
	CodeSuperseded       = "L005"

	CodeBridgeUnavailable = "L101"
	CodeHostRequest       = "L102"
	CodeHostResponse      = "L103"

	CodeStorageOpen  = "L201"
	CodeStorageQuery = "L202"

	CodeConfigRead    = "L301"
	CodeConfigParse   = "L302"
	CodeConfigInvalid = "L303"

	CodeUsage = "L401"
)

// registry maps error codes to their templates.
var registry = map[string]ErrorTemplate{
	// Navigation (L001-L099)
	CodeFragmentFetch:    {Category: CategoryNavigation, Message: "Fragment fetch failed"},
	CodeFragmentParse:    {Category: CategoryNavigation, Message: "Fragment could not be parsed"},
	CodeMissingContainer: {Category: CategoryNavigation, Message: "Fragment has no content container"},
	CodeUnknownPage:      {Category: CategoryNavigation, Message: "Unknown page"},
	CodeSuperseded:       {Category: CategoryNavigation, Message: "Navigation superseded by a newer one"},

	// Bridge (L101-L199)
	CodeBridgeUnavailable: {Category: CategoryBridge, Message: "Native host unavailable"},
	CodeHostRequest:       {Category: CategoryBridge, Message: "Host request failed"},
	CodeHostResponse:      {Category: CategoryBridge, Message: "Host returned an error"},

	// Storage (L201-L299)
	CodeStorageOpen:  {Category: CategoryStorage, Message: "Preference store could not be opened"},
	CodeStorageQuery: {Category: CategoryStorage, Message: "Preference store query failed"},

	// Config (L301-L399)
	CodeConfigRead:    {Category: CategoryConfig, Message: "Config file could not be read"},
	CodeConfigParse:   {Category: CategoryConfig, Message: "Config file could not be parsed"},
	CodeConfigInvalid: {Category: CategoryConfig, Message: "Invalid configuration"},

	// CLI (L401-L499)
	CodeUsage: {Category: CategoryCLI, Message: "Invalid command usage"},
}

// GetAllCodes returns all registered error codes.
func GetAllCodes() []string {
	codes := make([]string, 0, len(registry))
	for code := range registry {
		codes = append(codes, code)
	}
	return codes
}

// GetTemplate returns the template for an error code.
func GetTemplate(code string) (ErrorTemplate, bool) {
	t, ok := registry[code]
	return t, ok
}
