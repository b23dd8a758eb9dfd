// Package descriptor discovers and validates module descriptors.
//
// A descriptor is the static self-description each micro-frontend module
// ships in its own directory as module.yaml:
//
//	moduleName: billing
//	pageName: Billing
//	pageTitle: Billing overview
//	apiBaseUrl: https://api.example.com/billing/
//
// moduleName must be unique across all loaded modules. Route and state
// namespacing depend on it.
package descriptor

// File names looked up in each module directory, in order.
var fileNames = []string{"module.yaml", "module.yml"}

// Descriptor is a module's static self-description.
type Descriptor struct {
	ModuleName string `json:"moduleName" yaml:"moduleName"`
	PageName   string `json:"pageName,omitempty" yaml:"pageName,omitempty"`
	PageTitle  string `json:"pageTitle,omitempty" yaml:"pageTitle,omitempty"`
	APIBaseURL string `json:"apiBaseUrl,omitempty" yaml:"apiBaseUrl,omitempty"`

	// Path is the file the descriptor was read from. Empty for in-memory descriptors.
	Path string `json:"-" yaml:"-"`
}
