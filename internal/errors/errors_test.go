package errors

import (
	stderrors "errors"
	"strings"
	"testing"
)

func TestNew_RegisteredCode(t *testing.T) {
	err := New("E101")
	if err.Code != "E101" {
		t.Fatalf("Code = %q, want E101", err.Code)
	}
	if err.Category != CategoryConfig {
		t.Fatalf("Category = %q, want config", err.Category)
	}
	if err.Message == "" || err.DocURL == "" {
		t.Fatal("expected registered template to carry message and doc URL")
	}
	if got := err.Error(); got != "E101: "+err.Message {
		t.Fatalf("Error() = %q", got)
	}
}

func TestNew_UnknownCode(t *testing.T) {
	err := New("E999")
	if err.Code != "E999" {
		t.Fatalf("Code = %q, want E999", err.Code)
	}
	if err.Message != "Unknown error" {
		t.Fatalf("Message = %q", err.Message)
	}
}

func TestNewf(t *testing.T) {
	err := Newf(CategoryCLI, "bad flag %q", "--x")
	if err.Code != "" {
		t.Fatalf("Code = %q, want empty", err.Code)
	}
	if err.Error() != `bad flag "--x"` {
		t.Fatalf("Error() = %q", err.Error())
	}
}

func TestWrap_UnwrapChain(t *testing.T) {
	cause := stderrors.New("connection refused")
	err := New("E141").Wrap(cause)

	if !stderrors.Is(err, cause) {
		t.Fatal("expected errors.Is to find wrapped cause")
	}
	if err.Detail != "connection refused" {
		t.Fatalf("Detail = %q, want cause message", err.Detail)
	}
}

func TestFormat_PlainText(t *testing.T) {
	DisableColors()
	defer EnableColors()

	err := New("E103").
		WithDetail(`Backend "etcd" is not supported.`).
		WithSuggestion("Use memory, redis, or s3")

	out := err.Format()
	for _, want := range []string{
		"ERROR E103:",
		`Backend "etcd" is not supported.`,
		"Hint: Use memory, redis, or s3",
		"Learn more: https://navstack.dev/docs/errors/E103",
	} {
		if !strings.Contains(out, want) {
			t.Errorf("Format() missing %q in:\n%s", want, out)
		}
	}
	if strings.Contains(out, "\033[") {
		t.Error("expected no ANSI codes with colors disabled")
	}
}
