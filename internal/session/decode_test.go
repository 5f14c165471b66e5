package session

import (
	"encoding/base64"
	"encoding/json"
	"reflect"
	"testing"
)

// makeToken assembles an unsigned three-segment token around the given
// claim set.
func makeToken(t *testing.T, claims map[string]any) string {
	t.Helper()

	header, err := json.Marshal(map[string]string{"alg": "HS256", "typ": "JWT"})
	if err != nil {
		t.Fatal(err)
	}
	payload, err := json.Marshal(claims)
	if err != nil {
		t.Fatal(err)
	}

	enc := base64.RawURLEncoding
	return enc.EncodeToString(header) + "." + enc.EncodeToString(payload) + ".sig"
}

func fullPayload() map[string]any {
	return map[string]any{
		"id":         7,
		"name":       "Ada Lovelace",
		"email":      "ada@example.com",
		"avatar_url": "https://cdn.example.com/ada.png",
		"phone":      "+33123456789",
		"bio":        "organizes things",
		"role_id":    2,
		"role_name":  "organizer",
		"created_at": "2024-01-15 10:00:00",
		"updated_at": "2024-03-02 09:30:00",
	}
}

func TestDecodeCredential_Malformed(t *testing.T) {
	enc := base64.RawURLEncoding
	header := enc.EncodeToString([]byte(`{"alg":"HS256","typ":"JWT"}`))

	tests := []struct {
		name  string
		token string
	}{
		{name: "empty string", token: ""},
		{name: "no separators", token: "abcdef"},
		{name: "one separator", token: header + ".payload"},
		{name: "three separators", token: header + ".a.b.c"},
		{name: "middle segment not base64url", token: header + ".!!!.sig"},
		{name: "middle segment not JSON", token: header + "." + enc.EncodeToString([]byte("not json")) + ".sig"},
		{name: "payload without data object", token: makeTokenRaw(header, `{"iat":1700000000}`)},
		{name: "data is not an object", token: makeTokenRaw(header, `{"data":"hello"}`)},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if user := DecodeCredential(tt.token); user != nil {
				t.Errorf("DecodeCredential(%q) = %+v, want nil", tt.token, user)
			}
		})
	}
}

func makeTokenRaw(header, payload string) string {
	return header + "." + base64.RawURLEncoding.EncodeToString([]byte(payload)) + ".sig"
}

func TestDecodeCredential_Valid(t *testing.T) {
	token := makeToken(t, map[string]any{"data": fullPayload()})

	user := DecodeCredential(token)
	if user == nil {
		t.Fatal("DecodeCredential() = nil for valid token")
	}

	if user.ID != 7 || user.Name != "Ada Lovelace" || user.Email != "ada@example.com" {
		t.Errorf("identity fields = %+v", user)
	}
	if user.RoleID != 2 {
		t.Errorf("RoleID = %d, want 2", user.RoleID)
	}
	if user.Role == nil || user.Role.ID != 2 || user.Role.Name != "organizer" {
		t.Errorf("Role = %+v, want {2 organizer}", user.Role)
	}
	if user.CreatedAt != "2024-01-15 10:00:00" {
		t.Errorf("CreatedAt = %q", user.CreatedAt)
	}
}

func TestDecodeCredential_RoleRelationOnlyWithName(t *testing.T) {
	payload := fullPayload()
	delete(payload, "role_name")
	token := makeToken(t, map[string]any{"data": payload})

	user := DecodeCredential(token)
	if user == nil {
		t.Fatal("DecodeCredential() = nil")
	}
	// The relation stays unset; role_id alone carries authorization.
	if user.Role != nil {
		t.Errorf("Role = %+v, want nil without role_name", user.Role)
	}
	if user.RoleID != 2 {
		t.Errorf("RoleID = %d, want 2", user.RoleID)
	}
}

func TestDecodeCredential_Deterministic(t *testing.T) {
	token := makeToken(t, map[string]any{"data": fullPayload()})

	first := DecodeCredential(token)
	second := DecodeCredential(token)

	if !reflect.DeepEqual(first, second) {
		t.Errorf("decoding twice differs:\n%+v\n%+v", first, second)
	}
}
