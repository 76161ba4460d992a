package zones

import (
	"io"
	"os"

	"github.com/pkg/errors"
	"github.com/sirupsen/logrus"
	"gopkg.in/yaml.v3"

	"github.com/Microsoft/tzdb/internal/logfields"
)

// Correction records one identifier the backend reports as a
// canonical zone that the tz database defines as a link.
type Correction struct {
	Alias  string `yaml:"alias"`
	Target string `yaml:"target"`
}

// Corrections is the data-driven patch applied during registry build.
// The backend's notion of canonicity lags the tz database for renamed
// zones: the old name stays canonical on the backend side while the
// database has long since turned it into a link. Entries here are
// re-emitted as links and their targets added as zones.
//
// The table is not complete; it tracks the divergences known to
// matter. Additional entries can be merged from a YAML document.
type Corrections struct {
	byAlias map[string]string
}

// defaultCorrections covers the tz database renames that ICU still
// reports under the pre-rename identifier, as of tzdata 2021a.
var defaultCorrections = []Correction{
	{Alias: "Africa/Asmera", Target: "Africa/Asmara"},
	{Alias: "America/Buenos_Aires", Target: "America/Argentina/Buenos_Aires"},
	{Alias: "America/Godthab", Target: "America/Nuuk"},
	{Alias: "Asia/Calcutta", Target: "Asia/Kolkata"},
	{Alias: "Asia/Katmandu", Target: "Asia/Kathmandu"},
	{Alias: "Asia/Rangoon", Target: "Asia/Yangon"},
	{Alias: "Asia/Saigon", Target: "Asia/Ho_Chi_Minh"},
	{Alias: "Europe/Kiev", Target: "Europe/Kyiv"},
	{Alias: "Pacific/Ponape", Target: "Pacific/Pohnpei"},
	{Alias: "Pacific/Truk", Target: "Pacific/Chuuk"},
}

// DefaultCorrections returns the built-in table.
func DefaultCorrections() *Corrections {
	c := &Corrections{byAlias: make(map[string]string, len(defaultCorrections))}
	for _, e := range defaultCorrections {
		c.byAlias[e.Alias] = e.Target
	}
	return c
}

// Target reports the link target for id, if id is a corrected alias.
func (c *Corrections) Target(id string) (string, bool) {
	target, ok := c.byAlias[id]
	return target, ok
}

// Merge adds entries from a YAML document of the form
//
//	corrections:
//	  - alias: Foo/Old
//	    target: Foo/New
//
// Later entries override earlier ones for the same alias.
func (c *Corrections) Merge(r io.Reader) error {
	var doc struct {
		Corrections []Correction `yaml:"corrections"`
	}
	if err := yaml.NewDecoder(r).Decode(&doc); err != nil {
		return errors.Wrap(err, "decoding corrections document")
	}
	for _, e := range doc.Corrections {
		if e.Alias == "" || e.Target == "" {
			return errors.Errorf("correction entry needs both alias and target: %+v", e)
		}
		c.byAlias[e.Alias] = e.Target
		logrus.WithFields(logrus.Fields{
			logfields.Alias:  e.Alias,
			logfields.Target: e.Target,
		}).Debug("merged zone correction")
	}
	return nil
}

// MergeFile is Merge over the named file.
func (c *Corrections) MergeFile(path string) error {
	f, err := os.Open(path)
	if err != nil {
		return errors.Wrapf(err, "opening corrections file %s", path)
	}
	defer f.Close()
	if err := c.Merge(f); err != nil {
		return errors.Wrapf(err, "corrections file %s", path)
	}
	return nil
}
