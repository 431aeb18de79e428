package artifact

import (
	"bytes"
	"fmt"
	"strconv"
	"strings"

	"github.com/RyanBlaney/exptable/algorithms/spectral"
)

// Layout controls the C text produced by Render
type Layout struct {
	Command     string // regenerate command quoted in the provenance comment
	Guard       string // include guard macro
	Include     string // shared constants header; empty for none
	TableName   string
	Storage     string // storage qualifier such as PROGMEM; empty for none
	BinsSymbol  string // inner dimension macro
	OrderSymbol string // outer dimension macro

	LiteralDimensions bool // write numeric sizes instead of BinsSymbol/OrderSymbol
	Precision         int  // fractional digits per value
}

// Render produces the header text for the table. The output depends only on the table
// values and the layout, so unchanged inputs give byte-identical artifacts.
func Render(t *spectral.BasisTable, layout Layout) []byte {
	var buf bytes.Buffer

	bins, order := layout.BinsSymbol, layout.OrderSymbol
	if layout.LiteralDimensions {
		bins, order = strconv.Itoa(t.Bins()), strconv.Itoa(t.Order())
	}
	storage := ""
	if layout.Storage != "" {
		storage = " " + layout.Storage
	}

	fmt.Fprintf(&buf, "// Generated with command: %s\n", layout.Command)
	buf.WriteString("// Re-run command to update.\n")
	fmt.Fprintf(&buf, "#ifndef %s\n", layout.Guard)
	fmt.Fprintf(&buf, "#define %s\n", layout.Guard)
	if layout.Include != "" {
		fmt.Fprintf(&buf, "\n#include %q\n\n", layout.Include)
	}

	buf.WriteString("static const struct {\n")
	fmt.Fprintf(&buf, "  float real[%s];\n", bins)
	fmt.Fprintf(&buf, "  float imag[%s];\n", bins)
	fmt.Fprintf(&buf, "} %s[%s]%s = {\n", layout.TableName, order, storage)

	for i := 0; i < t.Order(); i++ {
		row := t.Row(i)
		fmt.Fprintf(&buf, "  {  // i = %d\n", i)
		buf.WriteString("    {  // real parts\n")
		fmt.Fprintf(&buf, "      %s,\n", formatValues(row.Real, layout.Precision))
		buf.WriteString("    },\n")
		buf.WriteString("    {  // imaginary parts\n")
		fmt.Fprintf(&buf, "      %s,\n", formatValues(row.Imag, layout.Precision))
		buf.WriteString("    }\n")
		if i < t.Order()-1 {
			buf.WriteString("  },\n")
		} else {
			buf.WriteString("  }\n")
		}
	}

	buf.WriteString("};\n")
	fmt.Fprintf(&buf, "#endif  // %s\n", layout.Guard)

	return buf.Bytes()
}

// formatValues writes each value as a single-precision C literal with a fixed
// number of fractional digits
func formatValues(values []float64, precision int) string {
	parts := make([]string, len(values))
	for i, v := range values {
		parts[i] = strconv.FormatFloat(v, 'f', precision, 64) + "f"
	}
	return strings.Join(parts, ", ")
}
