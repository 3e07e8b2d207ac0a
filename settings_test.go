package main

import (
	"os"
	"path/filepath"
	"reflect"
	"testing"
)

func TestLoadSettings_MissingFileFallsBack(t *testing.T) {
	s, err := loadSettings(filepath.Join(t.TempDir(), "nope.json"))
	if err == nil {
		t.Fatal("missing file should report why defaults were used")
	}
	if len(s.DefaultCalloutTypes) == 0 {
		t.Fatal("fallback settings are empty")
	}
}

func TestLoadSettings_InvalidJSONFallsBack(t *testing.T) {
	path := filepath.Join(t.TempDir(), "settings.json")
	if err := os.WriteFile(path, []byte("{nope"), 0644); err != nil {
		t.Fatal(err)
	}
	s, err := loadSettings(path)
	if err == nil {
		t.Fatal("invalid json should report why defaults were used")
	}
	if len(s.DefaultCalloutTypes) == 0 {
		t.Fatal("fallback settings are empty")
	}
}

func TestLoadSettings_ExplicitEmptyListStands(t *testing.T) {
	path := filepath.Join(t.TempDir(), "settings.json")
	if err := os.WriteFile(path, []byte(`{"defaultCalloutTypes":[]}`), 0644); err != nil {
		t.Fatal(err)
	}
	s, err := loadSettings(path)
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if len(s.DefaultCalloutTypes) != 0 {
		t.Fatalf("explicit empty list was replaced with %v", s.DefaultCalloutTypes)
	}
}

func TestLoadSettings_AbsentFieldFallsBack(t *testing.T) {
	path := filepath.Join(t.TempDir(), "settings.json")
	if err := os.WriteFile(path, []byte(`{}`), 0644); err != nil {
		t.Fatal(err)
	}
	s, err := loadSettings(path)
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if len(s.DefaultCalloutTypes) == 0 {
		t.Fatal("absent field should fall back to the built-in defaults")
	}
}

func TestSettings_RoundTrip(t *testing.T) {
	path := filepath.Join(t.TempDir(), "conf", "settings.json")
	want := settings{DefaultCalloutTypes: []string{"note", "aside"}}
	if err := saveSettings(path, want); err != nil {
		t.Fatalf("save: %v", err)
	}
	got, err := loadSettings(path)
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if !reflect.DeepEqual(got, want) {
		t.Fatalf("round trip = %+v, want %+v", got, want)
	}
}

func TestScanStyles_MissingSourceDegrades(t *testing.T) {
	scanned, note := scanStyles(filepath.Join(t.TempDir(), "absent.css"))
	if len(scanned) != 0 {
		t.Fatalf("scan of missing source = %v, want empty", scanned)
	}
	if note == "" {
		t.Fatal("missing source should leave a status note")
	}
}

func TestScanStyles_Directory(t *testing.T) {
	dir := t.TempDir()
	css := `.callout[data-callout="aside"] { color: red; }`
	if err := os.WriteFile(filepath.Join(dir, "theme.css"), []byte(css), 0644); err != nil {
		t.Fatal(err)
	}
	if err := os.WriteFile(filepath.Join(dir, "ignore.txt"), []byte(css), 0644); err != nil {
		t.Fatal(err)
	}
	scanned, note := scanStyles(dir)
	if note != "" {
		t.Fatalf("unexpected note: %q", note)
	}
	if _, ok := scanned["aside"]; !ok || len(scanned) != 1 {
		t.Fatalf("scanned = %v, want {aside}", scanned)
	}
}
