package errors

import (
	"errors"
	"fmt"
	"strings"
	"testing"
)

func TestErrorFormatting(t *testing.T) {
	err := New(CategoryConfig, SeverityFatal, "something broke")
	if got := err.Error(); got != "config (fatal): something broke" {
		t.Errorf("Error() = %q", got)
	}

	wrapped := Wrap(fmt.Errorf("root cause"), CategoryStage, SeverityError, "stage blew up")
	if got := wrapped.Error(); got != "stage (error): stage blew up: root cause" {
		t.Errorf("Error() = %q", got)
	}
}

func TestUnwrap(t *testing.T) {
	cause := fmt.Errorf("root cause")
	err := Wrap(cause, CategoryStage, SeverityError, "wrapper")
	if !errors.Is(err, cause) {
		t.Error("wrapped cause not reachable via errors.Is")
	}
}

func TestSentinelDetection(t *testing.T) {
	if !errors.Is(MissingField("database_path"), ErrMissingField) {
		t.Error("MissingField not detectable via ErrMissingField")
	}
	if !errors.Is(InvalidEnumValue("sfm_tool", "meshroom", []string{"colmap", "glomap"}), ErrInvalidEnumValue) {
		t.Error("InvalidEnumValue not detectable via ErrInvalidEnumValue")
	}
	if !errors.Is(InvalidVocabTreePath("x.bin", "wrong extension"), ErrInvalidVocabTreePath) {
		t.Error("InvalidVocabTreePath not detectable via ErrInvalidVocabTreePath")
	}
}

func TestInvalidEnumValueMessage(t *testing.T) {
	err := InvalidEnumValue("sfm_tool", "meshroom", []string{"colmap", "glomap"})
	for _, want := range []string{"sfm_tool", "meshroom", "colmap", "glomap"} {
		if got := err.Error(); !strings.Contains(got, want) {
			t.Errorf("message %q missing %q", got, want)
		}
	}
}

func TestCategoryHelpers(t *testing.T) {
	err := MissingField("image_dir")
	if !IsCategory(err, CategoryConfig) {
		t.Error("IsCategory(config) = false")
	}
	if IsCategory(err, CategoryStage) {
		t.Error("IsCategory(stage) = true")
	}
	if GetCategory(err) != CategoryConfig {
		t.Errorf("GetCategory = %v", GetCategory(err))
	}
	if GetCategory(fmt.Errorf("plain")) != CategoryInternal {
		t.Error("plain errors should map to internal")
	}
	// Category survives wrapping.
	if GetCategory(fmt.Errorf("outer: %w", err)) != CategoryConfig {
		t.Error("category lost through wrapping")
	}
}

func TestWithContext(t *testing.T) {
	err := New(CategoryValidation, SeverityFatal, "bad").
		WithContext("field", "use_gpu").
		WithContext("value", 2)
	if err.Context["field"] != "use_gpu" || err.Context["value"] != 2 {
		t.Errorf("Context = %v", err.Context)
	}
}
