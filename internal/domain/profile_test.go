package domain

import (
	"encoding/json"
	"testing"
)

func TestProfileVariants_RoleAndName(t *testing.T) {
	cases := []struct {
		p    Profile
		role Role
		name string
	}{
		{RenterProfile{Name: "Amira"}, RoleRenter, "Amira"},
		{LandlordProfile{Name: "Dev", Company: "DH Lettings"}, RoleLandlord, "Dev"},
		{AgencyProfile{Name: "Foxwood", Branch: "North"}, RoleAgency, "Foxwood"},
	}
	for _, c := range cases {
		if got := c.p.ProfileRole(); got != c.role {
			t.Fatalf("%T.ProfileRole() = %q; want %q", c.p, got, c.role)
		}
		if got := c.p.DisplayName(); got != c.name {
			t.Fatalf("%T.DisplayName() = %q; want %q", c.p, got, c.name)
		}
	}
}

func TestNewRenterProfile_StampsDiscriminant(t *testing.T) {
	p := NewRenterProfile(RenterProfile{Name: "Amira", Occupation: "nurse"})
	if p.Role != RoleRenter {
		t.Fatalf("Role = %q; want %q", p.Role, RoleRenter)
	}

	b, err := json.Marshal(p)
	if err != nil {
		t.Fatalf("marshal: %v", err)
	}
	var m map[string]any
	if err := json.Unmarshal(b, &m); err != nil {
		t.Fatalf("unmarshal: %v", err)
	}
	if m["role"] != "renter" {
		t.Fatalf("serialized discriminant = %v; want renter", m["role"])
	}
}
