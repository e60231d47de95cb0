package invorto

import "testing"

func TestValidatePhoneNumber(t *testing.T) {
	t.Parallel()

	cases := []struct {
		number string
		valid  bool
	}{
		{"+919876543210", true},
		{"9876543210", true},
		{"(987) 654-3210", true},
		{"+1 415-555-0123", true},
		{"abc123", false},
		{"0123456789", false},
		{"", false},
		{"+", false},
		{"+12345678901234567", false},
	}

	for _, tc := range cases {
		t.Run(tc.number, func(t *testing.T) {
			if got := ValidatePhoneNumber(tc.number); got != tc.valid {
				t.Fatalf("ValidatePhoneNumber(%q) = %v, want %v", tc.number, got, tc.valid)
			}
		})
	}
}

func TestFormatPhoneNumber(t *testing.T) {
	t.Parallel()

	cases := []struct {
		name        string
		number      string
		countryCode string
		want        string
	}{
		{"already prefixed", "+919876543210", "+91", "+919876543210"},
		{"leading zero", "09876543210", "+91", "+919876543210"},
		{"country code without plus", "919876543210", "+91", "+919876543210"},
		{"bare ten digits", "9876543210", "+91", "+919876543210"},
		{"separators stripped", "(987) 654-3210", "+91", "+919876543210"},
		{"too short left alone", "123", "+91", "123"},
		{"odd length left alone", "98765432101", "+91", "98765432101"},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			if got := FormatPhoneNumber(tc.number, tc.countryCode); got != tc.want {
				t.Fatalf("FormatPhoneNumber(%q, %q) = %q, want %q", tc.number, tc.countryCode, got, tc.want)
			}
		})
	}
}
