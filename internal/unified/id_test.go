package unified

import "testing"

func TestEntityIDSpaces(t *testing.T) {
	tests := []struct {
		name          string
		id            EntityID
		isLocal       bool
		isRemote      bool
		isPlaceholder bool
		str           string
	}{
		{"zero value", EntityID{}, false, false, false, "unassigned"},
		{"local", LocalID("abc"), true, false, false, "local:abc"},
		{"remote", RemoteID(42), false, true, false, "remote:42"},
		{"placeholder", RemoteID(-1), false, true, true, "remote:-1"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if tt.id.IsLocal() != tt.isLocal {
				t.Errorf("IsLocal = %v, want %v", tt.id.IsLocal(), tt.isLocal)
			}
			if tt.id.IsRemote() != tt.isRemote {
				t.Errorf("IsRemote = %v, want %v", tt.id.IsRemote(), tt.isRemote)
			}
			if tt.id.IsPlaceholder() != tt.isPlaceholder {
				t.Errorf("IsPlaceholder = %v, want %v", tt.id.IsPlaceholder(), tt.isPlaceholder)
			}
			if tt.id.String() != tt.str {
				t.Errorf("String = %q, want %q", tt.id.String(), tt.str)
			}
		})
	}
}

func TestEntityIDEqual(t *testing.T) {
	if !LocalID("a").Equal(LocalID("a")) {
		t.Error("identical local ids should be equal")
	}
	if LocalID("a").Equal(LocalID("b")) {
		t.Error("different local ids should not be equal")
	}
	if RemoteID(1).Equal(LocalID("1")) {
		t.Error("ids from different spaces must never be equal")
	}
	if !RemoteID(7).Equal(RemoteID(7)) {
		t.Error("identical remote ids should be equal")
	}
}

func TestEntityIDAccessors(t *testing.T) {
	if _, ok := LocalID("x").Remote(); ok {
		t.Error("Remote() must not succeed on a local id")
	}
	if _, ok := RemoteID(3).Local(); ok {
		t.Error("Local() must not succeed on a remote id")
	}
	if !LocalID("").IsLocal() {
		t.Error("empty local id is still local-space")
	}
	if !(EntityID{}).IsZero() {
		t.Error("zero value should report IsZero")
	}
}
