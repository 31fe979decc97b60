package validation

import "testing"

func TestPHMobile(t *testing.T) {
	valid := []string{"09171234567", "+639171234567"}
	for _, v := range valid {
		if msg := PHMobile(v); msg != "" {
			t.Errorf("PHMobile(%q) = %q, want accepted", v, msg)
		}
	}
	invalid := []string{
		"0917123456",    // 10 digits
		"091712345678",  // 12 digits
		"08171234567",   // wrong prefix
		"+619171234567", // wrong country code
		"9171234567",
		"0917-123-4567",
		"abc",
	}
	for _, v := range invalid {
		if PHMobile(v) == "" {
			t.Errorf("PHMobile(%q) accepted, want rejected", v)
		}
	}
}

func TestZipCode(t *testing.T) {
	if ZipCode("1000") != "" {
		t.Error("ZipCode(1000) should be accepted")
	}
	for _, v := range []string{"123", "12345", "12a4", "abcd", "12 4"} {
		if ZipCode(v) == "" {
			t.Errorf("ZipCode(%q) accepted, want rejected", v)
		}
	}
}

func TestCheckPasswordStrength(t *testing.T) {
	r := CheckPasswordStrength("Abc12345!")
	if !r.MinLength || !r.Uppercase || !r.Digit || !r.Special {
		t.Errorf("Abc12345! should satisfy all flags, got %+v", r)
	}
	if !r.OK() {
		t.Error("Abc12345! should pass")
	}

	weak := CheckPasswordStrength("abc")
	if weak.MinLength || weak.Uppercase || weak.Digit || weak.Special {
		t.Errorf("abc should satisfy no flags, got %+v", weak)
	}
}

func TestBirthDate(t *testing.T) {
	if BirthDate("1990-05-15") != "" {
		t.Error("1990-05-15 should be accepted")
	}
	if BirthDate("2999-01-01") == "" {
		t.Error("future date should be rejected")
	}
	if BirthDate("15-05-1990") == "" {
		t.Error("wrong format should be rejected")
	}
}

func TestValidateRequiredAndOptional(t *testing.T) {
	res := Validate([]Field{
		{Name: "firstName", Value: "   ", Required: true, Validators: []Validator{Name}},
		{Name: "middleName", Value: "", Required: false, Validators: []Validator{Name}},
		{Name: "email", Value: "not-an-email", Required: true, Validators: []Validator{Email}},
		{Name: "phone", Value: "09171234567", Required: true, Validators: []Validator{PHMobile}},
	})

	if !res.HasErrors() {
		t.Fatal("expected errors")
	}
	if res.Errors["firstName"] != RequiredMessage {
		t.Errorf("whitespace-only required field: %q", res.Errors["firstName"])
	}
	if _, ok := res.Errors["middleName"]; ok {
		t.Error("empty optional field must not produce an error")
	}
	if res.Errors["email"] == "" || res.Errors["email"] == RequiredMessage {
		t.Errorf("invalid email should get the format error, got %q", res.Errors["email"])
	}
	if _, ok := res.Errors["phone"]; ok {
		t.Error("valid phone must not produce an error")
	}
}

func TestValidateFirstErrorWins(t *testing.T) {
	rejectAll := func(string) string { return "second" }
	res := Validate([]Field{
		{Name: "f", Value: "x1", Required: true, Validators: []Validator{Name, rejectAll}},
	})
	if res.Errors["f"] == "second" {
		t.Error("aggregate should keep the first error per field")
	}
}
