package models

import "testing"

func strptr(s string) *string { return &s }

func TestProfilePatchAppliesOnlyPresentFields(t *testing.T) {
	user := User{
		Name:     "Maria Silva",
		Username: "maria",
		Bio:      "old bio",
		College:  "UFMG",
		Course:   "Computer Science",
		Linkedin: "linkedin.com/in/maria",
	}

	patch := ProfilePatch{
		Bio:      strptr("new bio"),
		Username: strptr("maria_s"),
	}
	patch.Apply(&user)

	if user.Bio != "new bio" {
		t.Errorf("Bio = %q, want %q", user.Bio, "new bio")
	}
	if user.Username != "maria_s" {
		t.Errorf("Username = %q, want %q", user.Username, "maria_s")
	}
	// Untouched fields keep their values.
	if user.Name != "Maria Silva" || user.College != "UFMG" || user.Linkedin != "linkedin.com/in/maria" {
		t.Errorf("patch touched fields it should not have: %+v", user)
	}
}

func TestProfilePatchCanClearFields(t *testing.T) {
	user := User{Bio: "something", CustomLink: "https://example.com"}

	patch := ProfilePatch{
		Bio:        strptr(""),
		CustomLink: strptr(""),
	}
	patch.Apply(&user)

	if user.Bio != "" || user.CustomLink != "" {
		t.Errorf("expected cleared fields, got %+v", user)
	}
}

func TestProfilePatchEmptyIsNoop(t *testing.T) {
	user := User{Name: "Joao", Username: "joao", Bio: "bio"}
	before := user

	(&ProfilePatch{}).Apply(&user)

	if user != before {
		t.Errorf("empty patch mutated the user: %+v", user)
	}
}
