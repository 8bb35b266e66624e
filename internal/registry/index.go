package registry

import "sort"

// Index holds the lookup tables derived from one registry document. It is
// read-only after Parse and safe for concurrent use.
type Index struct {
	fileDate             string
	scriptsByDescription map[string]string
	scriptsBySubtag      map[string][]string
	languagesByScript    map[string]map[string]struct{}
	suppressScripts      map[string]string
}

func newIndex() *Index {
	return &Index{
		scriptsByDescription: make(map[string]string),
		scriptsBySubtag:      make(map[string][]string),
		languagesByScript:    make(map[string]map[string]struct{}),
		suppressScripts:      make(map[string]string),
	}
}

// FileDate returns the registry's File-Date header, or "" when absent.
func (i *Index) FileDate() string {
	if i == nil {
		return ""
	}
	return i.fileDate
}

// ScriptByDescription resolves a human-readable script name such as "Greek"
// to its subtag.
func (i *Index) ScriptByDescription(description string) (string, bool) {
	if i == nil {
		return "", false
	}
	subtag, ok := i.scriptsByDescription[description]
	return subtag, ok
}

// DescriptionsForScript returns the sorted descriptions registered for a
// script subtag.
func (i *Index) DescriptionsForScript(subtag string) []string {
	if i == nil {
		return nil
	}
	descriptions, ok := i.scriptsBySubtag[subtag]
	if !ok {
		return nil
	}
	return append([]string(nil), descriptions...)
}

// LanguagesForScript returns the sorted language subtags whose Suppress-Script
// is subtag.
func (i *Index) LanguagesForScript(subtag string) []string {
	if i == nil {
		return nil
	}
	return sortedKeys(i.languagesByScript[subtag])
}

// SuppressScript returns the Suppress-Script declared for a language subtag.
func (i *Index) SuppressScript(language string) (string, bool) {
	if i == nil {
		return "", false
	}
	script, ok := i.suppressScripts[language]
	return script, ok
}

// ScriptCount reports how many script subtags were indexed.
func (i *Index) ScriptCount() int {
	if i == nil {
		return 0
	}
	return len(i.scriptsBySubtag)
}

// LanguageCount reports how many languages declare a Suppress-Script.
func (i *Index) LanguageCount() int {
	if i == nil {
		return 0
	}
	return len(i.suppressScripts)
}

func (i *Index) addLanguage(subtag, script string) {
	set, ok := i.languagesByScript[script]
	if !ok {
		set = make(map[string]struct{})
		i.languagesByScript[script] = set
	}
	set[subtag] = struct{}{}
	if _, exists := i.suppressScripts[subtag]; !exists {
		i.suppressScripts[subtag] = script
	}
}

func sortedKeys(set map[string]struct{}) []string {
	if len(set) == 0 {
		return nil
	}
	out := make([]string, 0, len(set))
	for key := range set {
		out = append(out, key)
	}
	sort.Strings(out)
	return out
}

func sameStrings(a, b []string) bool {
	if len(a) != len(b) {
		return false
	}
	for idx := range a {
		if a[idx] != b[idx] {
			return false
		}
	}
	return true
}
