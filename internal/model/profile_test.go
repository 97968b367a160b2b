package model

import "testing"

func strptr(s string) *string { return &s }

func TestApplyCompletionFlagRequiresAllFields(t *testing.T) {
	p := NewGuestProfile(1000)
	if p.IsProfileComplete {
		t.Fatal("guest profile must start incomplete")
	}

	p.Apply(ProfileUpdate{Nickname: strptr("ada")}, 2000)
	if p.IsProfileComplete {
		t.Error("nickname alone should not complete the profile")
	}

	p.Apply(ProfileUpdate{Email: strptr("ada@example.com")}, 3000)
	if p.IsProfileComplete {
		t.Error("nickname+email should not complete the profile")
	}

	p.Apply(ProfileUpdate{BirthDate: strptr("1990-03-14")}, 4000)
	if !p.IsProfileComplete {
		t.Error("nickname+email+birthdate should complete the profile")
	}
	if p.LastUpdated != 4000 {
		t.Errorf("LastUpdated = %d, want 4000", p.LastUpdated)
	}
}

func TestApplyCompletionFlagIsMonotonic(t *testing.T) {
	p := NewGuestProfile(1000)
	p.Apply(ProfileUpdate{
		Nickname:  strptr("ada"),
		Email:     strptr("ada@example.com"),
		BirthDate: strptr("1990-03-14"),
	}, 2000)
	if !p.IsProfileComplete {
		t.Fatal("profile should be complete")
	}

	// Clearing a defining field must not revert the flag.
	p.Apply(ProfileUpdate{Email: strptr("")}, 3000)
	if !p.IsProfileComplete {
		t.Error("completion flag reverted after clearing email")
	}
}

func TestApplyGuestNicknameNeverCompletes(t *testing.T) {
	p := NewGuestProfile(1000)
	p.Apply(ProfileUpdate{
		Email:     strptr("ada@example.com"),
		BirthDate: strptr("1990-03-14"),
	}, 2000)
	if p.IsProfileComplete {
		t.Error("default nickname should block completion")
	}
}

func TestApplyReturnsNewInterestsCaseInsensitive(t *testing.T) {
	p := NewGuestProfile(1000)
	p.Apply(ProfileUpdate{Interests: []string{"Chess", "Gardening"}}, 2000)

	added := p.Apply(ProfileUpdate{Interests: []string{"chess", "Astronomy"}}, 3000)
	if len(added) != 1 || added[0] != "Astronomy" {
		t.Errorf("added = %v, want [Astronomy]", added)
	}
	if len(p.Interests) != 2 {
		t.Errorf("Interests = %v, want replacement semantics", p.Interests)
	}
}

func TestApplyNilInterestsLeavesListUnchanged(t *testing.T) {
	p := NewGuestProfile(1000)
	p.Apply(ProfileUpdate{Interests: []string{"chess"}}, 2000)

	added := p.Apply(ProfileUpdate{Nickname: strptr("ada")}, 3000)
	if added != nil {
		t.Errorf("added = %v, want nil", added)
	}
	if len(p.Interests) != 1 || p.Interests[0] != "chess" {
		t.Errorf("Interests = %v, want [chess]", p.Interests)
	}
}
