package main

import (
	"os"
	"path/filepath"
	"testing"
	"time"
)

func TestCacheRoundTrip(t *testing.T) {
	cacheFile := filepath.Join(t.TempDir(), ".seed_cache.json")

	cache, err := loadCache(cacheFile)
	if err != nil {
		t.Fatalf("loadCache() on a missing file error = %v", err)
	}
	if len(cache.ProcessedFiles) != 0 {
		t.Fatalf("expected empty cache, got %d entries", len(cache.ProcessedFiles))
	}

	cache.ProcessedFiles["fixtures/a.json"] = ProcessedFile{
		FilePath:    "fixtures/a.json",
		FileHash:    "abc",
		RFPID:       "rfp-1",
		ProcessedAt: time.Date(2026, 1, 2, 3, 4, 5, 0, time.UTC),
	}
	if err := saveCache(cacheFile, cache); err != nil {
		t.Fatalf("saveCache() error = %v", err)
	}

	loaded, err := loadCache(cacheFile)
	if err != nil {
		t.Fatalf("loadCache() error = %v", err)
	}
	if got := loaded.ProcessedFiles["fixtures/a.json"]; got.FileHash != "abc" || got.RFPID != "rfp-1" {
		t.Errorf("loaded entry = %+v", got)
	}
}

func TestCalculateFileHash(t *testing.T) {
	path := filepath.Join(t.TempDir(), "f.json")
	if err := os.WriteFile(path, []byte("hello"), 0644); err != nil {
		t.Fatal(err)
	}
	got, err := calculateFileHash(path)
	if err != nil {
		t.Fatalf("calculateFileHash() error = %v", err)
	}
	if got != "5d41402abc4b2a76b9719d911017c592" {
		t.Errorf("hash = %s", got)
	}
}

func TestLoadFixtures(t *testing.T) {
	paths, err := filepath.Glob(filepath.Join("fixtures", "*.json"))
	if err != nil || len(paths) == 0 {
		t.Fatalf("no fixtures found: %v", err)
	}
	for _, path := range paths {
		f, err := loadFixture(path)
		if err != nil {
			t.Errorf("loadFixture(%s) error = %v", path, err)
			continue
		}
		if len(f.Vendors) == 0 {
			t.Errorf("%s has no vendors", path)
		}
	}

	bad := filepath.Join(t.TempDir(), "bad.json")
	if err := os.WriteFile(bad, []byte(`{"title": "x"}`), 0644); err != nil {
		t.Fatal(err)
	}
	if _, err := loadFixture(bad); err == nil {
		t.Error("loadFixture() should reject a fixture without description")
	}
}
