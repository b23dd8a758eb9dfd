package cmdutil

import (
	"errors"
	"fmt"
	"io"
	"sort"

	oerrors "github.com/opmodel/mfe/internal/errors"
	"github.com/opmodel/mfe/internal/output"
)

// PrintError logs err in a user-friendly format. DetailErrors are expanded
// into their location, field, context and hint.
func PrintError(msg string, err error) {
	var detail *oerrors.DetailError
	if !errors.As(err, &detail) {
		output.Error(msg, "error", err)
		return
	}

	keyvals := []any{"type", detail.Type}
	if detail.Location != "" {
		keyvals = append(keyvals, "location", detail.Location)
	}
	if detail.Field != "" {
		keyvals = append(keyvals, "field", detail.Field)
	}
	keys := make([]string, 0, len(detail.Context))
	for k := range detail.Context {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	for _, k := range keys {
		keyvals = append(keyvals, k, detail.Context[k])
	}
	output.Error(fmt.Sprintf("%s: %s", msg, detail.Message), keyvals...)
	if detail.Hint != "" {
		output.Info(output.StyleDim.Render(detail.Hint))
	}
}

// Emit writes v in format f. Table output is built by table.
func Emit(w io.Writer, f output.Format, v any, table func() *output.Table) error {
	if f == output.FormatTable {
		t := table()
		if t.Len() == 0 {
			_, err := fmt.Fprintln(w, output.StyleDim.Render("(none)"))
			return err
		}
		_, err := fmt.Fprintln(w, t.String())
		return err
	}
	return output.Encode(w, f, v)
}
