// Shelfmark - Personal Book Review Platform
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/shelfmark

package validation

import (
	"strings"
	"testing"
)

type searchRequest struct {
	Query      string `validate:"required"`
	MaxResults int    `validate:"omitempty,min=1,max=40"`
	StartIndex int    `validate:"min=0"`
	OrderBy    string `validate:"omitempty,oneof=relevance newest"`
}

func TestValidateStructPasses(t *testing.T) {
	req := searchRequest{Query: "dune", MaxResults: 10}

	if err := ValidateStruct(&req); err != nil {
		t.Errorf("expected valid struct, got %v", err)
	}
}

func TestValidateStructRequired(t *testing.T) {
	err := ValidateStruct(&searchRequest{})

	if err == nil {
		t.Fatal("expected validation error for missing query")
	}

	errs := err.Errors()
	if len(errs) != 1 {
		t.Fatalf("len(errors) = %d, want 1", len(errs))
	}
	if errs[0].Field() != "Query" || errs[0].Tag() != "required" {
		t.Errorf("unexpected error: field=%q tag=%q", errs[0].Field(), errs[0].Tag())
	}
	if !strings.Contains(errs[0].Error(), "required") {
		t.Errorf("message %q should mention required", errs[0].Error())
	}
}

func TestValidateStructRangeAndEnum(t *testing.T) {
	err := ValidateStruct(&searchRequest{Query: "dune", MaxResults: 100, OrderBy: "backwards"})

	if err == nil {
		t.Fatal("expected validation errors")
	}
	if len(err.Errors()) != 2 {
		t.Fatalf("len(errors) = %d, want 2: %v", len(err.Errors()), err)
	}
}

func TestToAPIErrorSingle(t *testing.T) {
	err := ValidateStruct(&searchRequest{})

	apiErr := err.ToAPIError()
	if apiErr.Code != "VALIDATION_ERROR" {
		t.Errorf("Code = %q, want VALIDATION_ERROR", apiErr.Code)
	}
	if apiErr.Details["field"] != "Query" {
		t.Errorf("Details.field = %v, want Query", apiErr.Details["field"])
	}
}

func TestToAPIErrorMultiple(t *testing.T) {
	err := ValidateStruct(&searchRequest{MaxResults: -1})

	apiErr := err.ToAPIError()
	if apiErr.Code != "VALIDATION_ERROR" {
		t.Errorf("Code = %q, want VALIDATION_ERROR", apiErr.Code)
	}
	fields, ok := apiErr.Details["fields"].([]map[string]interface{})
	if !ok || len(fields) < 2 {
		t.Errorf("Details.fields = %v, want at least 2 entries", apiErr.Details["fields"])
	}
}

func TestGetValidatorSingleton(t *testing.T) {
	if GetValidator() != GetValidator() {
		t.Error("GetValidator must return the same instance")
	}
}
