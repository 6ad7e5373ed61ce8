package model

import (
	"reflect"
	"testing"
)

func TestQuestionIDsValuePreservesOrder(t *testing.T) {
	ids := QuestionIDs{3, 1, 2}
	v, err := ids.Value()
	if err != nil {
		t.Fatalf("Value failed: %v", err)
	}
	if v != "[3,1,2]" {
		t.Fatalf("Value = %v, want [3,1,2]", v)
	}
}

func TestQuestionIDsValueNil(t *testing.T) {
	var ids QuestionIDs
	v, err := ids.Value()
	if err != nil {
		t.Fatalf("Value failed: %v", err)
	}
	if v != "[]" {
		t.Fatalf("nil Value = %v, want []", v)
	}
}

func TestQuestionIDsScanRoundTrip(t *testing.T) {
	original := QuestionIDs{12, 10, 13, 11}
	v, err := original.Value()
	if err != nil {
		t.Fatalf("Value failed: %v", err)
	}

	var fromString QuestionIDs
	if err := fromString.Scan(v); err != nil {
		t.Fatalf("Scan(string) failed: %v", err)
	}
	if !reflect.DeepEqual(fromString, original) {
		t.Fatalf("Scan(string) = %v, want %v", fromString, original)
	}

	var fromBytes QuestionIDs
	if err := fromBytes.Scan([]byte(v.(string))); err != nil {
		t.Fatalf("Scan([]byte) failed: %v", err)
	}
	if !reflect.DeepEqual(fromBytes, original) {
		t.Fatalf("Scan([]byte) = %v, want %v", fromBytes, original)
	}
}

func TestQuestionIDsScanNilAndEmpty(t *testing.T) {
	var ids QuestionIDs
	if err := ids.Scan(nil); err != nil {
		t.Fatalf("Scan(nil) failed: %v", err)
	}
	if len(ids) != 0 {
		t.Fatalf("Scan(nil) = %v, want empty", ids)
	}

	if err := ids.Scan(""); err != nil {
		t.Fatalf("Scan(\"\") failed: %v", err)
	}
	if len(ids) != 0 {
		t.Fatalf("Scan(\"\") = %v, want empty", ids)
	}
}

func TestQuestionIDsScanRejectsOtherTypes(t *testing.T) {
	var ids QuestionIDs
	if err := ids.Scan(42); err == nil {
		t.Fatalf("Scan(int) succeeded, want error")
	}
}
