package settings

import "testing"

func TestJSONRoundTrip(t *testing.T) {
	c := New(WithPrecisionOption(8), WithImaginaryName("j"), WithMultiCharacterVars(false))
	data, err := c.ToJSON()
	if err != nil {
		t.Fatalf("ToJSON: %v", err)
	}

	got := New()
	if err := got.FromJSON(data); err != nil {
		t.Fatalf("FromJSON: %v", err)
	}
	if got.Precision != 8 || got.Imaginary != "j" || got.UseMultiCharacterVars {
		t.Fatalf("round trip mismatch: %+v", got)
	}
}

func TestFromJSONRejectsInvalidDocument(t *testing.T) {
	c := New()
	if err := c.FromJSON([]byte("not json")); err == nil {
		t.Fatal("FromJSON should reject a malformed document")
	}
}

func TestFromJSONLeavesOmittedFieldsAlone(t *testing.T) {
	c := New(WithPrecisionOption(32))
	if err := c.FromJSON([]byte(`{"imaginary":"j"}`)); err != nil {
		t.Fatalf("FromJSON: %v", err)
	}
	if c.Precision != 32 {
		t.Fatalf("Precision should be untouched by a document that omits it, got %d", c.Precision)
	}
	if c.Imaginary != "j" {
		t.Fatalf("Imaginary = %q, want j", c.Imaginary)
	}
}

func TestWithPrecisionRestoresPrevious(t *testing.T) {
	c := New(WithPrecisionOption(16))
	c.WithPrecision(4, func() {
		if c.Precision != 4 {
			t.Fatalf("inside WithPrecision, Precision = %d, want 4", c.Precision)
		}
	})
	if c.Precision != 16 {
		t.Fatalf("after WithPrecision, Precision = %d, want 16", c.Precision)
	}
}
