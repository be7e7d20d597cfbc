package sensor

import (
	"errors"
	"testing"
)

func TestParseID(t *testing.T) {
	tests := []struct {
		name       string
		path       string
		wantID     string
		wantPath   string
		wantFamily string
		wantErr    bool
	}{
		{
			name:       "RootDevice",
			path:       "/28.0123456789AB",
			wantID:     "28.0123456789AB",
			wantPath:   "/28.0123456789AB",
			wantFamily: "28",
		},
		{
			name:       "NoLeadingSlash",
			path:       "10.A1B2C3D4E5F6/",
			wantID:     "10.A1B2C3D4E5F6",
			wantPath:   "/10.A1B2C3D4E5F6",
			wantFamily: "10",
		},
		{
			name:       "BehindHub",
			path:       "/1F.111111111111/main/26.222222222222",
			wantID:     "26.222222222222",
			wantPath:   "/1F.111111111111/main/26.222222222222",
			wantFamily: "26",
		},
		{
			name:       "NestedHubs",
			path:       "/1F.111111111111/aux/1F.333333333333/main/3a.444444444444",
			wantID:     "3a.444444444444",
			wantPath:   "/1F.111111111111/aux/1F.333333333333/main/3a.444444444444",
			wantFamily: "3A",
		},
		{name: "Empty", path: "", wantErr: true},
		{name: "Root", path: "/", wantErr: true},
		{name: "SystemEntry", path: "/settings", wantErr: true},
		{name: "BusEntry", path: "/bus.0", wantErr: true},
		{name: "BadBranch", path: "/1F.111111111111/side/28.0123456789AB", wantErr: true},
		{name: "MissingBranch", path: "/1F.111111111111/28.0123456789AB", wantErr: true},
		{name: "BadFamily", path: "/G8.0123456789AB", wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			id, err := ParseID(tt.path)
			if tt.wantErr {
				if !errors.Is(err, ErrInvalidID) {
					t.Fatalf("ParseID(%q) error = %v, want ErrInvalidID", tt.path, err)
				}
				return
			}
			if err != nil {
				t.Fatalf("ParseID(%q) unexpected error: %v", tt.path, err)
			}
			if id.ID() != tt.wantID {
				t.Errorf("ID() = %q, want %q", id.ID(), tt.wantID)
			}
			if id.FullPath() != tt.wantPath {
				t.Errorf("FullPath() = %q, want %q", id.FullPath(), tt.wantPath)
			}
			if id.Family() != tt.wantFamily {
				t.Errorf("Family() = %q, want %q", id.Family(), tt.wantFamily)
			}
		})
	}
}

func TestIDBranch(t *testing.T) {
	hub := MustParseID("/1F.111111111111")

	if got := hub.Branch(BranchMain); got != "/1F.111111111111/main/" {
		t.Errorf("Branch(main) = %q", got)
	}
	if got := hub.Branch(BranchAux); got != "/1F.111111111111/aux/" {
		t.Errorf("Branch(aux) = %q", got)
	}

	// A listing of a branch must parse back into ids below the hub.
	child, err := ParseID(hub.Branch(BranchAux) + "28.0123456789AB")
	if err != nil {
		t.Fatalf("ParseID of branch child failed: %v", err)
	}
	if child.FullPath() != "/1F.111111111111/aux/28.0123456789AB" {
		t.Errorf("FullPath() = %q", child.FullPath())
	}
}

func TestIDNormalized(t *testing.T) {
	id := MustParseID("/1F.111111111111/main/28.0123456789AB")
	if got := id.Normalized(); got != "28_0123456789AB" {
		t.Errorf("Normalized() = %q, want %q", got, "28_0123456789AB")
	}
}

func TestHasFamily(t *testing.T) {
	if !HasFamily("26.ABCDEF", FamilyDS2438) {
		t.Error("26.ABCDEF should have family 26")
	}
	if HasFamily("28.ABCDEF", FamilyDS2438) {
		t.Error("28.ABCDEF should not have family 26")
	}
	if !HasFamily("1f.ABCDEF", FamilyDS2409) {
		t.Error("family match should be case-insensitive")
	}
	if HasFamily("2", FamilyDS2438) {
		t.Error("short id should not match")
	}
}

func TestMustParseIDPanics(t *testing.T) {
	defer func() {
		if recover() == nil {
			t.Error("MustParseID should panic on invalid input")
		}
	}()
	MustParseID("/settings")
}
