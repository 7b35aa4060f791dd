package model

import (
	"strings"
	"testing"
)

func TestValidateTemplateMapMissingSchema(t *testing.T) {
	// no templates/template.schema.json here
	t.Chdir(t.TempDir())

	err := ValidateTemplateMap(map[string]interface{}{"version": "1.0"})
	if err == nil {
		t.Fatal("expected error when the schema file is absent")
	}
	if !strings.Contains(err.Error(), "template.schema.json") {
		t.Errorf("error %q does not name the schema path", err)
	}
}

func TestValidateTemplateMapInvalidPayload(t *testing.T) {
	t.Chdir("../..")

	err := ValidateTemplateMap(map[string]interface{}{"version": "1.0"})
	if err == nil {
		t.Fatal("expected validation error for payload without root")
	}
	if !strings.Contains(err.Error(), "schema validation failed") {
		t.Errorf("error %q is not a validation failure", err)
	}
	if strings.Contains(err.Error(), "load template schema") {
		t.Errorf("payload error misreported as a schema load failure: %q", err)
	}
}
