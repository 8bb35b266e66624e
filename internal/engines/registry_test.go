package engines_test

import (
	"errors"
	"reflect"
	"strings"
	"testing"

	"writingsystems/internal/engines"
	"writingsystems/internal/testsupport"
)

func newRegistry(t *testing.T) *engines.Registry {
	t.Helper()
	reg, err := engines.Default(testsupport.MustDetector(t))
	if err != nil {
		t.Fatalf("Default: %v", err)
	}
	return reg
}

func engineNamed(t *testing.T, reg *engines.Registry, name string) engines.Engine {
	t.Helper()
	for _, e := range reg.Engines() {
		if e.Name == name {
			return e
		}
	}
	t.Fatalf("engine %q not registered", name)
	return engines.Engine{}
}

func TestDefaultRegistrationOrder(t *testing.T) {
	reg := newRegistry(t)
	want := []string{
		engines.UnidecodeName,
		engines.GreekScholarlyName,
		engines.ELOT743Name,
		engines.CyrillicName,
		engines.RevisedRomanizationName,
	}
	if got := reg.Names(); !reflect.DeepEqual(got, want) {
		t.Fatalf("Names() = %v, want %v", got, want)
	}
	if reg.Generic().Name != engines.UnidecodeName {
		t.Fatalf("generic engine = %q", reg.Generic().Name)
	}
}

func TestFilterKeepsGenericEngine(t *testing.T) {
	reg := newRegistry(t).Filter(engines.ELOT743Name, engines.UnidecodeName)
	want := []string{
		engines.UnidecodeName,
		engines.GreekScholarlyName,
		engines.CyrillicName,
		engines.RevisedRomanizationName,
	}
	if got := reg.Names(); !reflect.DeepEqual(got, want) {
		t.Fatalf("Names() = %v, want %v", got, want)
	}
}

func TestInvokeGenericEngine(t *testing.T) {
	reg := newRegistry(t)
	got, err := reg.Invoke(reg.Generic(), "Αθήνα", "und", "Grek")
	if err != nil {
		t.Fatalf("Invoke: %v", err)
	}
	want := []engines.RomanString{{
		Original:        "Αθήνα",
		OriginalLangTag: "und-Grek",
		Romanized:       "Athena",
		Engine:          engines.UnidecodeName,
	}}
	if !reflect.DeepEqual(got, want) {
		t.Fatalf("Invoke = %+v, want %+v", got, want)
	}
}

func TestInvokeScholarlyEmitsBothSchemas(t *testing.T) {
	reg := newRegistry(t)
	got, err := reg.Invoke(engineNamed(t, reg, engines.GreekScholarlyName), "Ὅμηρος", "grc", "Grek")
	if err != nil {
		t.Fatalf("Invoke: %v", err)
	}
	var romanized []string
	for _, rs := range got {
		if rs.OriginalLangTag != "grc-Grek" || rs.Engine != engines.GreekScholarlyName {
			t.Fatalf("unexpected result metadata: %+v", rs)
		}
		romanized = append(romanized, rs.Romanized)
	}
	if want := []string{"Homēros", "Homeros"}; !reflect.DeepEqual(romanized, want) {
		t.Fatalf("romanized = %v, want %v", romanized, want)
	}
}

func TestInvokeCollapsesIdenticalCandidates(t *testing.T) {
	reg := newRegistry(t)
	got, err := reg.Invoke(engineNamed(t, reg, engines.GreekScholarlyName), "ϲοφία", "grc", "Grek")
	if err != nil {
		t.Fatalf("Invoke: %v", err)
	}
	if len(got) != 1 || got[0].Romanized != "sophia" {
		t.Fatalf("expected single cleaned candidate, got %+v", got)
	}
}

func TestInvokeRejectsUnsupportedPair(t *testing.T) {
	reg := newRegistry(t)
	tests := []struct {
		engine string
		lang   string
		script string
	}{
		{engines.GreekScholarlyName, "el", "Grek"},
		{engines.ELOT743Name, "grc", "Grek"},
		{engines.CyrillicName, "ru", "Latn"},
		{engines.CyrillicName, "el", "Cyrl"},
		{engines.RevisedRomanizationName, "und", "Hang"},
	}
	for _, tt := range tests {
		_, err := reg.Invoke(engineNamed(t, reg, tt.engine), "text", tt.lang, tt.script)
		if !errors.Is(err, engines.ErrUnsupported) {
			t.Errorf("%s on %s-%s: expected ErrUnsupported, got %v", tt.engine, tt.lang, tt.script, err)
		}
	}
}

func TestInvokeCyrillicCleanup(t *testing.T) {
	reg := newRegistry(t)
	got, err := reg.Invoke(engineNamed(t, reg, engines.CyrillicName), "Ѳеодоръ", "uk", "Cyrl")
	if err != nil {
		t.Fatalf("Invoke: %v", err)
	}
	if len(got) != 1 || got[0].Romanized != `Feodor"` || got[0].OriginalLangTag != "uk-Cyrl" {
		t.Fatalf("unexpected result %+v", got)
	}
}

func TestInvokeKorean(t *testing.T) {
	reg := newRegistry(t)
	got, err := reg.Invoke(engineNamed(t, reg, engines.RevisedRomanizationName), "서울", "ko", "Hang")
	if err != nil {
		t.Fatalf("Invoke: %v", err)
	}
	if len(got) != 1 || got[0].Romanized != "seoul" || got[0].OriginalLangTag != "ko-Hang" {
		t.Fatalf("unexpected result %+v", got)
	}
}

func TestInvokeDetectsNonLatinOutput(t *testing.T) {
	detector := testsupport.MustDetector(t)
	passthrough := engines.Engine{
		Name:       "passthrough",
		Capability: engines.AnyPair{},
		Select: func(string) []engines.Transliterator {
			return []engines.Transliterator{func(s string) string { return s }}
		},
	}
	reg, err := engines.NewRegistry(detector, engines.Unidecode(), passthrough)
	if err != nil {
		t.Fatalf("NewRegistry: %v", err)
	}

	_, err = reg.Invoke(passthrough, "Αθήνα", "el", "Grek")
	if !errors.Is(err, engines.ErrInconsistentOutput) {
		t.Fatalf("expected ErrInconsistentOutput, got %v", err)
	}
	if !strings.Contains(err.Error(), "passthrough") {
		t.Fatalf("expected engine name in error, got %v", err)
	}

	// Arabic has no description in the fixture registry, so its letters are
	// of unknown script rather than Latin.
	if _, err := reg.Invoke(passthrough, "سلام", "und", "Arab"); !errors.Is(err, engines.ErrInconsistentOutput) {
		t.Fatalf("expected ErrInconsistentOutput for unknown letters, got %v", err)
	}

	got, err := reg.Invoke(passthrough, "1453", "und", "Zyyy")
	if err != nil {
		t.Fatalf("letterless input and output should pass verification: %v", err)
	}
	if len(got) != 1 || got[0].Romanized != "1453" {
		t.Fatalf("unexpected result %+v", got)
	}
}

func TestInvokeRejectsDroppedLetters(t *testing.T) {
	detector := testsupport.MustDetector(t)
	tests := []struct {
		name string
		fn   engines.Transliterator
	}{
		{"empty", func(string) string { return "" }},
		{"punctuation only", func(string) string { return "'" }},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			lossy := engines.Engine{
				Name:       "lossy",
				Capability: engines.AnyPair{},
				Select:     func(string) []engines.Transliterator { return []engines.Transliterator{tt.fn} },
			}
			reg, err := engines.NewRegistry(detector, engines.Unidecode(), lossy)
			if err != nil {
				t.Fatalf("NewRegistry: %v", err)
			}
			got, err := reg.Invoke(lossy, "Ь", "ru", "Cyrl")
			if !errors.Is(err, engines.ErrInconsistentOutput) {
				t.Fatalf("expected ErrInconsistentOutput, got %v (%+v)", err, got)
			}
		})
	}
}

func TestNewRegistryValidatesEngines(t *testing.T) {
	detector := testsupport.MustDetector(t)
	valid := engines.Unidecode()
	tests := []struct {
		name   string
		others []engines.Engine
	}{
		{"duplicate", []engines.Engine{engines.Unidecode()}},
		{"reserved name", []engines.Engine{{Name: engines.IdentityEngine, Capability: engines.AnyPair{}, Select: valid.Select}}},
		{"empty name", []engines.Engine{{Capability: engines.AnyPair{}, Select: valid.Select}}},
		{"missing capability", []engines.Engine{{Name: "x", Select: valid.Select}}},
		{"missing select", []engines.Engine{{Name: "x", Capability: engines.AnyPair{}}}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := engines.NewRegistry(detector, valid, tt.others...)
			if !errors.Is(err, engines.ErrInvalidEngine) {
				t.Fatalf("expected ErrInvalidEngine, got %v", err)
			}
		})
	}

	if _, err := engines.NewRegistry(nil, valid); err == nil {
		t.Fatal("expected error for nil detector")
	}
}

func TestNewCyrillicRejectsUnknownTable(t *testing.T) {
	_, err := engines.NewCyrillic(map[string]string{"ru": "russian", "cu": "church-slavonic"})
	if !errors.Is(err, engines.ErrUnknownTable) {
		t.Fatalf("expected ErrUnknownTable, got %v", err)
	}
}

func TestPairs(t *testing.T) {
	pairs := engines.ScriptPairs("Cyrl", "ru", "uk")
	if !pairs.Supports("uk", "Cyrl") || pairs.Supports("uk", "Latn") || pairs.Supports("be", "Cyrl") {
		t.Fatalf("unexpected support set %v", pairs)
	}
	if !(engines.AnyPair{}).Supports("und", "Zzzz") {
		t.Fatal("AnyPair must accept every pair")
	}
	if got := (engines.Pair{Lang: "grc", Script: "Grek"}).String(); got != "grc-Grek" {
		t.Fatalf("Pair.String() = %q", got)
	}
}
