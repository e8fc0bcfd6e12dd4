package middleware

import "testing"

func TestValidateRestaurantID(t *testing.T) {
	tests := []struct {
		name    string
		input   string
		want    string
		wantErr bool
	}{
		{"valid", "a1b2c3d4e5f60718", "a1b2c3d4e5f60718", false},
		{"uppercase normalized", "A1B2C3D4E5F60718", "a1b2c3d4e5f60718", false},
		{"trims whitespace", " a1b2c3d4e5f60718 ", "a1b2c3d4e5f60718", false},
		{"empty", "", "", true},
		{"too short", "a1b2c3", "", true},
		{"too long", "a1b2c3d4e5f607181", "", true},
		{"non-hex", "g1b2c3d4e5f60718", "", true},
		{"sql injection", "a'; DROP TABLE--", "", true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, errMsg := ValidateRestaurantID(tt.input)
			if tt.wantErr && errMsg == "" {
				t.Errorf("expected error, got none")
			}
			if !tt.wantErr && errMsg != "" {
				t.Errorf("unexpected error: %s", errMsg)
			}
			if got != tt.want {
				t.Errorf("got %q, want %q", got, tt.want)
			}
		})
	}
}

func TestValidateCategory(t *testing.T) {
	tests := []struct {
		name    string
		input   string
		want    string
		wantErr bool
	}{
		{"simple", "BBQ", "BBQ", false},
		{"free-form", "Late Night Tacos", "Late Night Tacos", false},
		{"trims whitespace", "  Pizza  ", "Pizza", false},
		{"empty", "", "", true},
		{"whitespace only", "   ", "", true},
		{"too long", "xxxxxxxxxxxxxxxxxxxxxxxxxxxxxxxxxxxxxxxxxxxxxxxxx", "", true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, errMsg := ValidateCategory(tt.input)
			if tt.wantErr && errMsg == "" {
				t.Errorf("expected error, got none")
			}
			if !tt.wantErr && errMsg != "" {
				t.Errorf("unexpected error: %s", errMsg)
			}
			if got != tt.want {
				t.Errorf("got %q, want %q", got, tt.want)
			}
		})
	}
}

func TestValidateSlot(t *testing.T) {
	tests := []struct {
		input   string
		want    string
		wantErr bool
	}{
		{"top", "top", false},
		{"runner_up", "runner_up", false},
		{"TOP", "top", false},
		{"overall", "", true},
		{"", "", true},
		{"first", "", true},
	}
	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			got, errMsg := ValidateSlot(tt.input)
			if tt.wantErr && errMsg == "" {
				t.Errorf("expected error, got none")
			}
			if !tt.wantErr && errMsg != "" {
				t.Errorf("unexpected error: %s", errMsg)
			}
			if got != tt.want {
				t.Errorf("got %q, want %q", got, tt.want)
			}
		})
	}
}

func TestValidateCallerID(t *testing.T) {
	tests := []struct {
		name    string
		user    string
		device  string
		wantErr bool
	}{
		{"user only", "user-123", "", false},
		{"device only", "", "device_abc-9", false},
		{"both empty", "", "", true},
		{"both set", "user-123", "device-456", true},
		{"invalid chars", "user 123", "", true},
		{"too long", string(make([]byte, 65)), "", true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, _, errMsg := ValidateCallerID(tt.user, tt.device)
			if tt.wantErr && errMsg == "" {
				t.Errorf("expected error, got none")
			}
			if !tt.wantErr && errMsg != "" {
				t.Errorf("unexpected error: %s", errMsg)
			}
		})
	}
}

func TestValidateSuggestionID(t *testing.T) {
	if _, errMsg := ValidateSuggestionID("7f9c24e5-1f44-4d9a-9b7e-3a2b1c0d9e8f"); errMsg != "" {
		t.Errorf("unexpected error for valid uuid: %s", errMsg)
	}
	if _, errMsg := ValidateSuggestionID("not-a-uuid"); errMsg == "" {
		t.Error("expected error for malformed uuid")
	}
}
