package store

import (
	"math"
	"testing"
)

func TestFirstSet(t *testing.T) {
	row := map[string]any{"has_parking": false, "hasParking": true, "empty": nil}

	if got := firstSet(row, "has_parking", "hasParking"); got != false {
		t.Errorf("firstSet = %v, want false (present beats later keys)", got)
	}
	if got := firstSet(row, "empty", "hasParking"); got != true {
		t.Errorf("firstSet = %v, want true (nil is skipped)", got)
	}
	if got := firstSet(row, "missing"); got != nil {
		t.Errorf("firstSet = %v, want nil", got)
	}
}

func TestFirstTruthy(t *testing.T) {
	row := map[string]any{"owner_name": "", "ownerName": "Ana", "zero": float64(0), "n": float64(5)}

	if got := firstTruthy(row, "owner_name", "ownerName"); got != "Ana" {
		t.Errorf("firstTruthy = %v, want Ana", got)
	}
	if got := firstTruthy(row, "zero", "n"); got != float64(5) {
		t.Errorf("firstTruthy = %v, want 5", got)
	}
	if got := firstTruthy(row, "owner_name", "zero"); got != nil {
		t.Errorf("firstTruthy = %v, want nil", got)
	}
}

func TestAsNumber(t *testing.T) {
	tests := []struct {
		in   any
		want float64
	}{
		{nil, 0},
		{float64(12.5), 12.5},
		{int64(7), 7},
		{"15000", 15000},
		{" 42 ", 42},
		{"", 0},
		{"abc", 0},
		{"12abc", 0},
		{true, 1},
		{math.NaN(), 0},
		{map[string]any{}, 0},
	}
	for _, tt := range tests {
		if got := asNumber(tt.in); got != tt.want {
			t.Errorf("asNumber(%#v) = %v, want %v", tt.in, got, tt.want)
		}
	}
}

func TestParsePrefix(t *testing.T) {
	floats := []struct {
		in   any
		want float64
	}{
		{"15000", 15000},
		{"15000abc", 15000},
		{"12.75 CLP", 12.75},
		{"-3.5", -3.5},
		{".5", 0.5},
		{"abc", 0},
		{float64(99), 99},
		{nil, 0},
	}
	for _, tt := range floats {
		if got := parseFloatPrefix(tt.in); got != tt.want {
			t.Errorf("parseFloatPrefix(%#v) = %v, want %v", tt.in, got, tt.want)
		}
	}

	ints := []struct {
		in   any
		want int
	}{
		{"2024", 2024},
		{"3rd", 3},
		{"3.9", 3},
		{float64(3.9), 3},
		{"march", 0},
		{nil, 0},
	}
	for _, tt := range ints {
		if got := parseIntPrefix(tt.in); got != tt.want {
			t.Errorf("parseIntPrefix(%#v) = %v, want %v", tt.in, got, tt.want)
		}
	}
}

func TestToRowOnlyPresentKeys(t *testing.T) {
	row := toRow(map[string]any{"ownerName": "Ana", "unknown": 1}, houseFields)

	if len(row) != 1 {
		t.Fatalf("row = %v, want only owner_name", row)
	}
	if row["owner_name"] != "Ana" {
		t.Errorf("owner_name = %v", row["owner_name"])
	}
}

func TestToRowKeepsExplicitNull(t *testing.T) {
	row := toRow(map[string]any{"email": nil}, houseFields)
	v, ok := row["email"]
	if !ok || v != nil {
		t.Errorf("row = %v, want email present and null", row)
	}
}
