package subdivisions

import (
	"embed"
	"fmt"
	"io"
	"sort"
	"strings"
	"sync"

	"gopkg.in/yaml.v3"
)

//go:embed data/subdivisions.yaml
var dataFS embed.FS

const defaultDataPath = "data/subdivisions.yaml"

// Option is a (code, display name) pair as rendered in a select.
type Option struct {
	Value string `json:"value"`
	Label string `json:"label"`
}

// Provider answers the two-level reference lookup used by the address form.
type Provider interface {
	Countries() []Option
	// Subdivisions returns the ordered subdivisions of country and whether
	// the country is known. A known country may have none.
	Subdivisions(country string) ([]Option, bool)
}

// Dataset is an immutable, ordered Provider.
type Dataset struct {
	countries    []Option
	subdivisions map[string][]Option
}

type fileCountry struct {
	Code         string      `yaml:"code"`
	Name         string      `yaml:"name"`
	Subdivisions []fileEntry `yaml:"subdivisions"`
}

type fileEntry struct {
	Code string `yaml:"code"`
	Name string `yaml:"name"`
}

type file struct {
	Countries []fileCountry `yaml:"countries"`
}

var (
	defaultOnce    sync.Once
	defaultDataset *Dataset
	defaultErr     error
)

// DefaultDataset returns the embedded dataset.
func DefaultDataset() (*Dataset, error) {
	defaultOnce.Do(func() {
		f, err := dataFS.Open(defaultDataPath)
		if err != nil {
			defaultErr = err
			return
		}
		defer func() { _ = f.Close() }()

		ds, err := LoadDataset(f)
		if err != nil {
			defaultErr = err
			return
		}
		defaultDataset = ds
	})

	if defaultErr != nil {
		return nil, defaultErr
	}
	return defaultDataset, nil
}

// LoadDataset parses a YAML dataset. Codes are upper-cased, duplicates keep
// their first occurrence and both levels are sorted by display name.
func LoadDataset(r io.Reader) (*Dataset, error) {
	if r == nil {
		return nil, fmt.Errorf("subdivisions: missing reader")
	}

	var raw file
	dec := yaml.NewDecoder(r)
	dec.KnownFields(true)
	if err := dec.Decode(&raw); err != nil && err != io.EOF {
		return nil, fmt.Errorf("subdivisions: decode dataset: %w", err)
	}

	ds := &Dataset{subdivisions: map[string][]Option{}}
	for i, c := range raw.Countries {
		code := normalizeCode(c.Code)
		if code == "" {
			return nil, fmt.Errorf("subdivisions: country %d: missing code", i)
		}
		if _, ok := ds.subdivisions[code]; ok {
			continue
		}
		ds.countries = append(ds.countries, Option{Value: code, Label: labelOr(c.Name, code)})

		subs := make([]Option, 0, len(c.Subdivisions))
		seen := map[string]struct{}{}
		for j, s := range c.Subdivisions {
			sub := normalizeCode(s.Code)
			if sub == "" {
				return nil, fmt.Errorf("subdivisions: %s subdivision %d: missing code", code, j)
			}
			if _, ok := seen[sub]; ok {
				continue
			}
			seen[sub] = struct{}{}
			subs = append(subs, Option{Value: sub, Label: labelOr(s.Name, sub)})
		}
		sortOptions(subs)
		ds.subdivisions[code] = subs
	}
	sortOptions(ds.countries)
	return ds, nil
}

// Countries returns every country ordered by name.
func (d *Dataset) Countries() []Option {
	if d == nil {
		return nil
	}
	return append([]Option{}, d.countries...)
}

// Subdivisions returns the subdivisions of country ordered by name.
func (d *Dataset) Subdivisions(country string) ([]Option, bool) {
	if d == nil {
		return nil, false
	}
	subs, ok := d.subdivisions[normalizeCode(country)]
	if !ok {
		return nil, false
	}
	return append([]Option{}, subs...), true
}

// Country returns the display name of a known country.
func (d *Dataset) Country(code string) (Option, bool) {
	if d == nil {
		return Option{}, false
	}
	code = normalizeCode(code)
	for _, c := range d.countries {
		if c.Value == code {
			return c, true
		}
	}
	return Option{}, false
}

func normalizeCode(code string) string {
	return strings.ToUpper(strings.TrimSpace(code))
}

func labelOr(label, fallback string) string {
	label = strings.TrimSpace(label)
	if label == "" {
		return fallback
	}
	return label
}

func sortOptions(opts []Option) {
	sort.SliceStable(opts, func(i, j int) bool {
		if opts[i].Label != opts[j].Label {
			return opts[i].Label < opts[j].Label
		}
		return opts[i].Value < opts[j].Value
	})
}
