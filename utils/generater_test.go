package utils

import (
	"strings"
	"testing"
)

func TestGenerateOTP(t *testing.T) {
	seen := make(map[string]bool)
	for i := 0; i < 50; i++ {
		otp := GenerateOTP()
		if len(otp) != 6 {
			t.Fatalf("GenerateOTP() = %q, want 6 digits", otp)
		}
		for _, r := range otp {
			if r < '0' || r > '9' {
				t.Fatalf("GenerateOTP() = %q, contains non-digit", otp)
			}
		}
		seen[otp] = true
	}
	if len(seen) < 2 {
		t.Error("expected varied OTP codes across 50 generations")
	}
}

func TestUploadFilename(t *testing.T) {
	name := UploadFilename("Photo Of Hood.JPG")
	if !strings.HasSuffix(name, ".jpg") {
		t.Errorf("UploadFilename() = %q, want lowercased .jpg extension", name)
	}
	if strings.ContainsAny(name, " ") {
		t.Errorf("UploadFilename() = %q, should not contain spaces", name)
	}

	other := UploadFilename("Photo Of Hood.JPG")
	if name == other {
		t.Error("two generated filenames should not collide")
	}

	bare := UploadFilename("noext")
	if strings.Contains(bare, ".") {
		t.Errorf("UploadFilename(%q) = %q, want no extension", "noext", bare)
	}
}
