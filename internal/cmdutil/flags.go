// Package cmdutil provides shared command utilities: flag groups, shell
// construction, error printing, output formatting, and the host API client.
package cmdutil

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/opmodel/mfe/internal/output"
)

// OutputFlags holds the --output flag for commands that print structured data.
type OutputFlags struct {
	Format string
}

// AddTo registers the output flag on the given cobra command.
func (f *OutputFlags) AddTo(cmd *cobra.Command) {
	cmd.Flags().StringVarP(&f.Format, "output", "o", "table",
		fmt.Sprintf("Output format: %s", strings.Join(output.ValidFormats(), ", ")))
}

// Parse returns the selected format.
func (f *OutputFlags) Parse() (output.Format, error) {
	return output.ParseFormat(f.Format)
}

// HostFlags holds the address of a running host for commands that talk to it.
type HostFlags struct {
	Addr string
}

// AddTo registers the host flag on the given cobra command.
func (f *HostFlags) AddTo(cmd *cobra.Command) {
	cmd.Flags().StringVar(&f.Addr, "addr", "",
		"Host API address (default: server.addr from config)")
}

// RequestFlags holds flags shaping a data access request.
type RequestFlags struct {
	Method  string
	Data    string
	Headers []string
	Key     string
}

// AddTo registers the request flags on the given cobra command.
func (f *RequestFlags) AddTo(cmd *cobra.Command) {
	cmd.Flags().StringVarP(&f.Method, "method", "X", "GET", "HTTP method")
	cmd.Flags().StringVarP(&f.Data, "data", "d", "", "Request body (JSON)")
	cmd.Flags().StringArrayVarP(&f.Headers, "header", "H", nil,
		"Extra header as 'Name: value' (can be repeated)")
	cmd.Flags().StringVar(&f.Key, "key", "", "Query key (default: the endpoint)")
}

// ParseHeaders splits each "Name: value" entry.
func (f *RequestFlags) ParseHeaders() (map[string]string, error) {
	out := make(map[string]string, len(f.Headers))
	for _, h := range f.Headers {
		name, value, ok := strings.Cut(h, ":")
		if !ok || strings.TrimSpace(name) == "" {
			return nil, fmt.Errorf("invalid header %q: expected 'Name: value'", h)
		}
		out[strings.TrimSpace(name)] = strings.TrimSpace(value)
	}
	return out, nil
}
