package auth

import "testing"

func TestPuedeEscribir(t *testing.T) {
	cases := map[Rol]bool{
		RolAnalista:         true,
		RolAdmin:            true,
		RolObservador:       false,
		"":                  false,
		ParseRol("BECARIO"): false,
	}
	for rol, want := range cases {
		if got := PuedeEscribir(rol); got != want {
			t.Fatalf("PuedeEscribir(%q): expected %v, got %v", rol, want, got)
		}
	}
}
