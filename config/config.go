package config

import (
	"bytes"
	"encoding/json"
	"fmt"
	"os"
	"regexp"
)

// OrderRounding selects how the model order is derived from the sample count
type OrderRounding string

const (
	OrderFloor   OrderRounding = "floor"   // floor(n / ln(2n))
	OrderNearest OrderRounding = "nearest" // (int)(n / ln(2n) + 0.5), as some firmware headers declare it
)

// Config is the full set of generator inputs
type Config struct {
	QueueHeader string `json:"queue_header"` // header declaring the sample count
	GridHeader  string `json:"grid_header"`  // header declaring the frequency grid
	Output      string `json:"output"`       // artifact path, "-" for stdout

	Names         ConstantNames  `json:"names"`
	OrderRounding OrderRounding  `json:"order_rounding"`
	Artifact      ArtifactConfig `json:"artifact"`

	Verify   bool   `json:"verify"`    // run the table self-check before writing
	LogLevel string `json:"log_level"` // debug, info, warn, error
}

// ConstantNames are the #define names looked up in the headers
type ConstantNames struct {
	SampleCount string `json:"sample_count"`
	FreqBins    string `json:"freq_bins"`
	FreqStart   string `json:"freq_start"`
	FreqEnd     string `json:"freq_end"`
}

// ArtifactConfig shapes the emitted header
type ArtifactConfig struct {
	Command     string `json:"command"`      // regenerate command quoted in the provenance comment
	Guard       string `json:"guard"`        // include guard macro
	Include     string `json:"include"`      // optional shared constants header
	TableName   string `json:"table_name"`   // C identifier of the table
	Storage     string `json:"storage"`      // storage qualifier, e.g. PROGMEM; empty for none
	OrderSymbol string `json:"order_symbol"` // outer dimension macro

	// LiteralDimensions writes the numeric sizes instead of the macro names
	LiteralDimensions bool `json:"literal_dimensions"`
	Precision         int  `json:"precision"` // fractional digits per value
}

// DefaultConstantNames returns the names used by the firmware headers
func DefaultConstantNames() ConstantNames {
	return ConstantNames{
		SampleCount: "NUM_SAMPLES",
		FreqBins:    "FREQ_BINS",
		FreqStart:   "FREQ_START",
		FreqEnd:     "FREQ_END",
	}
}

// DefaultArtifactConfig returns the layout the firmware's MEM code expects
func DefaultArtifactConfig() ArtifactConfig {
	return ArtifactConfig{
		Command:     "go run ./cmd/exptablegen",
		Guard:       "EXP_TABLE_H",
		Include:     "Constants.h",
		TableName:   "exp_table",
		Storage:     "PROGMEM",
		OrderSymbol: "MODEL_ORDER",
		Precision:   6,
	}
}

// Default returns a configuration for a firmware checkout rooted at the working directory
func Default() Config {
	return Config{
		QueueHeader:   "src/utils/Constants.h",
		GridHeader:    "src/utils/Constants.h",
		Output:        "src/utils/exp_table.h",
		Names:         DefaultConstantNames(),
		OrderRounding: OrderFloor,
		Artifact:      DefaultArtifactConfig(),
		Verify:        true,
		LogLevel:      "info",
	}
}

// Load returns the defaults overlaid with the JSON file at path. Keys absent from the
// file keep their default value. An empty path yields the defaults.
func Load(path string) (Config, error) {
	cfg := Default()
	if path == "" {
		return cfg, nil
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return cfg, fmt.Errorf("failed to read config %s: %w", path, err)
	}

	dec := json.NewDecoder(bytes.NewReader(data))
	dec.DisallowUnknownFields()
	if err := dec.Decode(&cfg); err != nil {
		return cfg, fmt.Errorf("failed to parse config %s: %w", path, err)
	}

	return cfg, nil
}

var identifier = regexp.MustCompile(`^[A-Za-z_][A-Za-z0-9_]*$`)

// Validate reports the first setting that cannot produce a usable artifact
func (c Config) Validate() error {
	if c.QueueHeader == "" {
		return fmt.Errorf("queue header path is empty")
	}
	if c.GridHeader == "" {
		return fmt.Errorf("grid header path is empty")
	}
	if c.Output == "" {
		return fmt.Errorf("output path is empty")
	}

	names := []struct{ field, value string }{
		{"names.sample_count", c.Names.SampleCount},
		{"names.freq_bins", c.Names.FreqBins},
		{"names.freq_start", c.Names.FreqStart},
		{"names.freq_end", c.Names.FreqEnd},
		{"artifact.guard", c.Artifact.Guard},
		{"artifact.table_name", c.Artifact.TableName},
		{"artifact.order_symbol", c.Artifact.OrderSymbol},
	}
	seen := make(map[string]string, 4)
	for i, n := range names {
		if !identifier.MatchString(n.value) {
			return fmt.Errorf("%s: %q is not a valid identifier", n.field, n.value)
		}
		// only the four constant names must be distinct from each other
		if i < 4 {
			if other, dup := seen[n.value]; dup {
				return fmt.Errorf("%s and %s both use %q", other, n.field, n.value)
			}
			seen[n.value] = n.field
		}
	}

	if c.Artifact.Storage != "" && !identifier.MatchString(c.Artifact.Storage) {
		return fmt.Errorf("artifact.storage: %q is not a valid identifier", c.Artifact.Storage)
	}

	switch c.OrderRounding {
	case OrderFloor, OrderNearest:
	default:
		return fmt.Errorf("order_rounding: unknown mode %q", c.OrderRounding)
	}

	if c.Artifact.Precision < 1 || c.Artifact.Precision > 9 {
		return fmt.Errorf("artifact.precision: %d outside [1, 9]", c.Artifact.Precision)
	}

	return nil
}
