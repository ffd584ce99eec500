package digest

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func TestReaderKnownDigests(t *testing.T) {
	sums, err := Reader(strings.NewReader(""), "sha256", "md5", "sha3_256")
	if err != nil {
		t.Fatalf("Reader: %v", err)
	}

	want := map[string]string{
		"sha256":   "e3b0c44298fc1c149afbf4c8996fb92427ae41e4649b934ca495991b7852b855",
		"md5":      "d41d8cd98f00b204e9800998ecf8427e",
		"sha3_256": "a7ffc6f8bf1ed76651c14756a061d662f580ff4de43b49fa82d80a4b80f8434a",
	}
	for alg, w := range want {
		if sums[alg] != w {
			t.Errorf("%s = %q, want %q", alg, sums[alg], w)
		}
	}
}

func TestReaderDigestLengths(t *testing.T) {
	tests := []struct {
		alg    string
		hexLen int
	}{
		{"sha1", 40},
		{"sha224", 56},
		{"sha384", 96},
		{"sha512", 128},
		{"sha3_224", 56},
		{"sha3_384", 96},
		{"sha3_512", 128},
		{"blake2b", 128},
		{"blake2s", 64},
	}

	for _, tt := range tests {
		t.Run(tt.alg, func(t *testing.T) {
			sums, err := Reader(strings.NewReader("payload"), tt.alg)
			if err != nil {
				t.Fatalf("Reader: %v", err)
			}
			if len(sums[tt.alg]) != tt.hexLen {
				t.Errorf("len(%s) = %d, want %d", tt.alg, len(sums[tt.alg]), tt.hexLen)
			}
		})
	}
}

func TestReaderDuplicateAlgorithms(t *testing.T) {
	sums, err := Reader(strings.NewReader("x"), "sha256", "sha256")
	if err != nil {
		t.Fatalf("Reader: %v", err)
	}
	if len(sums) != 1 {
		t.Errorf("expected 1 digest, got %d", len(sums))
	}
}

func TestReaderRequiresAlgorithm(t *testing.T) {
	if _, err := Reader(strings.NewReader("x")); err == nil {
		t.Fatal("expected error with no algorithms")
	}
}

func TestNewShakeNeedsLength(t *testing.T) {
	_, err := New("shake_128")
	if err == nil {
		t.Fatal("expected error for shake_128")
	}
	if !strings.Contains(err.Error(), "digest length") {
		t.Errorf("error should mention digest length: %v", err)
	}
}

func TestNewUnknown(t *testing.T) {
	_, err := New("crc32")
	if err == nil {
		t.Fatal("expected error for crc32")
	}
	if !strings.Contains(err.Error(), "unsupported") {
		t.Errorf("error should mention 'unsupported': %v", err)
	}
}

func TestGuaranteedCoversSupported(t *testing.T) {
	for _, name := range Names() {
		if !IsGuaranteed(name) {
			t.Errorf("%s is computable but not guaranteed", name)
		}
	}
	if IsGuaranteed("crc32") {
		t.Error("crc32 should not be guaranteed")
	}
	if Supported("shake_256") {
		t.Error("shake_256 should not be computable")
	}
}

func TestFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "pkg.whl")
	if err := os.WriteFile(path, nil, 0644); err != nil {
		t.Fatal(err)
	}

	sums, err := File(path, "sha256")
	if err != nil {
		t.Fatalf("File: %v", err)
	}
	if sums["sha256"] != "e3b0c44298fc1c149afbf4c8996fb92427ae41e4649b934ca495991b7852b855" {
		t.Errorf("sha256 = %q", sums["sha256"])
	}
}

func TestFileMissing(t *testing.T) {
	_, err := File(filepath.Join(t.TempDir(), "nope.whl"), "sha256")
	if err == nil {
		t.Fatal("expected error for missing file")
	}
}
