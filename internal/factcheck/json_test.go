package factcheck

import "testing"

func TestExtractJSON_Plain(t *testing.T) {
	result, err := ExtractJSON(`{"claim": {"verification_status": "SUPPORTED", "confidence": 90}}`)
	if err != nil {
		t.Fatalf("ExtractJSON: %v", err)
	}
	if _, ok := result["claim"]; !ok {
		t.Errorf("result = %v", result)
	}
}

func TestExtractJSON_CodeFence(t *testing.T) {
	text := "Here are the verdicts:\n```json\n{\"claim\": {\"confidence\": 80}}\n```\nDone."
	result, err := ExtractJSON(text)
	if err != nil {
		t.Fatalf("ExtractJSON: %v", err)
	}
	inner, ok := result["claim"].(map[string]any)
	if !ok {
		t.Fatalf("result = %v", result)
	}
	if inner["confidence"] != float64(80) {
		t.Errorf("confidence = %v", inner["confidence"])
	}
}

func TestExtractJSON_BareFence(t *testing.T) {
	text := "```\n{\"a\": 1}\n```"
	result, err := ExtractJSON(text)
	if err != nil {
		t.Fatalf("ExtractJSON: %v", err)
	}
	if result["a"] != float64(1) {
		t.Errorf("result = %v", result)
	}
}

func TestExtractJSON_TrailingCommas(t *testing.T) {
	text := `{"a": 1, "b": [1, 2,],}`
	result, err := ExtractJSON(text)
	if err != nil {
		t.Fatalf("ExtractJSON: %v", err)
	}
	if result["a"] != float64(1) {
		t.Errorf("result = %v", result)
	}
	list, ok := result["b"].([]any)
	if !ok || len(list) != 2 {
		t.Errorf("b = %v", result["b"])
	}
}

func TestExtractJSON_SurroundingProse(t *testing.T) {
	text := `Sure! Based on the evidence: {"claim": {"verification_status": "SUPPORTED"}} Hope that helps.`
	result, err := ExtractJSON(text)
	if err != nil {
		t.Fatalf("ExtractJSON: %v", err)
	}
	if _, ok := result["claim"]; !ok {
		t.Errorf("result = %v", result)
	}
}

func TestExtractJSON_NoObject(t *testing.T) {
	if _, err := ExtractJSON("I could not verify any claims."); err == nil {
		t.Error("expected error when no JSON object is present")
	}
}

func TestExtractJSON_Unrepairable(t *testing.T) {
	if _, err := ExtractJSON(`{"a": unquoted}`); err == nil {
		t.Error("expected error for malformed JSON")
	}
}
