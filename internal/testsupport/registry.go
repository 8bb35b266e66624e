package testsupport

import (
	"strings"
	"testing"

	"writingsystems/internal/registry"
	"writingsystems/internal/script"
)

// RegistryDocument is a trimmed Language Subtag Registry in the IANA format.
// It keeps the records the tests rely on: Greek, Latin, Cyrillic, Hangul and
// Hebrew scripts plus languages that suppress them.
const RegistryDocument = `File-Date: 2025-08-25
%%
Type: language
Subtag: en
Description: English
Added: 2005-10-16
Suppress-Script: Latn
%%
Type: language
Subtag: de
Description: German
Added: 2005-10-16
Suppress-Script: Latn
%%
Type: language
Subtag: el
Description: Modern Greek (1453-)
Added: 2005-10-16
Suppress-Script: Grek
%%
Type: language
Subtag: grc
Description: Ancient Greek (to 1453)
Added: 2005-10-16
%%
Type: language
Subtag: ru
Description: Russian
Added: 2005-10-16
Suppress-Script: Cyrl
%%
Type: language
Subtag: uk
Description: Ukrainian
Added: 2005-10-16
Suppress-Script: Cyrl
%%
Type: language
Subtag: bg
Description: Bulgarian
Added: 2005-10-16
Suppress-Script: Cyrl
%%
Type: language
Subtag: sr
Description: Serbian
Added: 2005-10-16
Macrolanguage: sh
Comments: see cnr, hr
%%
Type: language
Subtag: ko
Description: Korean
Added: 2005-10-16
Suppress-Script: Kore
%%
Type: language
Subtag: he
Description: Hebrew
Added: 2005-10-16
Suppress-Script: Hebr
%%
Type: language
Subtag: iw
Description: Hebrew
Added: 2005-10-16
Deprecated: 1989-01-01
Preferred-Value: he
Suppress-Script: Hebr
%%
Type: extlang
Subtag: yue
Description: Yue Chinese
Added: 2009-07-29
Preferred-Value: yue
Prefix: zh
Macrolanguage: zh
%%
Type: script
Subtag: Cyrl
Description: Cyrillic
Added: 2005-10-16
%%
Type: script
Subtag: Grek
Description: Greek
Added: 2005-10-16
%%
Type: script
Subtag: Hang
Description: Hangul
Description: Hangŭl
Added: 2005-10-16
%%
Type: script
Subtag: Hebr
Description: Hebrew
Added: 2005-10-16
%%
Type: script
Subtag: Kore
Description: Korean (alias for Hangul + Han)
Added: 2007-07-05
%%
Type: script
Subtag: Latn
Description: Latin
Added: 2005-10-16
%%
Type: script
Subtag: Zyyy
Description: Code for undetermined script
Added: 2005-10-16
Comments: Not intended for use as a script subtag where the
  script is merely unknown
%%
Type: region
Subtag: GR
Description: Greece
Added: 2005-10-16
`

// RegistryRecord formats a registry record body for appending to
// RegistryDocument.
func RegistryRecord(lines ...string) string {
	return "%%\n" + strings.Join(lines, "\n") + "\n"
}

// MustParseRegistry parses RegistryDocument followed by any extra records.
func MustParseRegistry(t testing.TB, extra ...string) *registry.Index {
	t.Helper()

	idx, err := registry.ParseString(RegistryDocument + strings.Join(extra, ""))
	if err != nil {
		t.Fatalf("registry.ParseString: %v", err)
	}
	return idx
}

// MustDetector builds a script detector over the fixture registry.
func MustDetector(t testing.TB, extra ...string) *script.Detector {
	t.Helper()

	detector, err := script.NewDetector(MustParseRegistry(t, extra...))
	if err != nil {
		t.Fatalf("script.NewDetector: %v", err)
	}
	return detector
}
