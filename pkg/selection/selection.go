// Package selection turns the user's free-form plugin choice into an ordered
// set of catalog entries.
//
// Accepted input is "all" (or empty), "none", or whitespace separated 1-based
// indices into a listing. Bad tokens are skipped with a warning. Whatever the
// input, the result always holds the mandatory unit exactly once.
package selection

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/arthur-debert/zshkit/pkg/catalog"
	"github.com/arthur-debert/zshkit/pkg/logging"
)

// Mandatory is the plugin every selection contains.
const Mandatory = "git"

const (
	keywordAll  = "all"
	keywordNone = "none"
)

// Set is an ordered, duplicate-free selection of catalog descriptors.
type Set []catalog.Descriptor

// Names returns the selected plugin names in order.
func (s Set) Names() []string {
	names := make([]string, len(s))
	for i, d := range s {
		names[i] = d.Name
	}
	return names
}

// Externals returns the entries that must be fetched, in selection order.
func (s Set) Externals() []catalog.Descriptor {
	var out []catalog.Descriptor
	for _, d := range s {
		if d.Kind == catalog.External {
			out = append(out, d)
		}
	}
	return out
}

// Contains reports whether name is selected.
func (s Set) Contains(name string) bool {
	for _, d := range s {
		if d.Name == name {
			return true
		}
	}
	return false
}

// Warning describes one input token that was ignored.
type Warning struct {
	Token  string
	Reason string
}

func (w Warning) String() string {
	return fmt.Sprintf("ignoring %q: %s", w.Token, w.Reason)
}

// Result is the outcome of Select.
type Result struct {
	Set      Set
	Warnings []Warning
}

// Select resolves input against listing. It never fails: unusable tokens end
// up in Warnings and the mandatory unit is prepended when missing.
//
// Numeric choices are emitted in listing order rather than typing order so
// that external plugins keep their load order.
func Select(input string, listing catalog.Listing) Result {
	logger := logging.GetLogger("selection")
	input = strings.TrimSpace(input)

	var res Result
	switch input {
	case "", keywordAll:
		res.Set = fromListing(listing, nil)
	case keywordNone:
		res.Set = Set{}
	default:
		chosen := make(map[int]bool)
		for _, tok := range strings.Fields(input) {
			n, err := strconv.Atoi(tok)
			if err != nil {
				res.Warnings = append(res.Warnings, Warning{Token: tok, Reason: "not a number"})
				continue
			}
			if _, ok := listing.At(n); !ok {
				res.Warnings = append(res.Warnings, Warning{
					Token:  tok,
					Reason: fmt.Sprintf("out of range 1-%d", len(listing)),
				})
				continue
			}
			chosen[n] = true
		}
		res.Set = fromListing(listing, chosen)
	}

	res.Set = withMandatory(res.Set, listing)

	for _, w := range res.Warnings {
		logger.Warn().Str("token", w.Token).Str("reason", w.Reason).Msg("skipping selection token")
	}
	logger.Debug().Strs("plugins", res.Set.Names()).Msg("selection resolved")
	return res
}

// fromListing keeps the entries whose index is in chosen, or all of them
// when chosen is nil.
func fromListing(listing catalog.Listing, chosen map[int]bool) Set {
	set := make(Set, 0, len(listing))
	for _, e := range listing {
		if chosen == nil || chosen[e.Index] {
			set = append(set, e.Descriptor)
		}
	}
	return set
}

func withMandatory(set Set, listing catalog.Listing) Set {
	if set.Contains(Mandatory) {
		return set
	}
	d := catalog.Descriptor{Name: Mandatory, Kind: catalog.Bundled}
	if e, ok := listing.Find(Mandatory); ok {
		d = e.Descriptor
	}
	return append(Set{d}, set...)
}
