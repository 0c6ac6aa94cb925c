package lowering

import (
	"testing"

	"dspcc/internal/types"
)

func TestRequiresRemapping(t *testing.T) {
	tests := []struct {
		name string
		typ  types.Type
		want bool
	}{
		{"primitive int", types.Primitive("int"), false},
		{"complex32 scalar", types.Complex(32), true},
		{"complex64 scalar", types.Complex(64), true},
		{"vector of float", types.Vector(types.Primitive("float32"), 4), false},
		{"vector of complex32", types.Vector(types.Complex(32), 4), true},
		{"array of complex64", types.Array(types.Complex(64), 8), true},
		{"array of vector of complex32", types.Array(types.Vector(types.Complex(32), 4), 2), true},
		{"array of float", types.Array(types.Primitive("float32"), 8), false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := RequiresRemapping(tt.typ); got != tt.want {
				t.Errorf("RequiresRemapping(%s) = %v, want %v", tt.name, got, tt.want)
			}
		})
	}
}

func TestKeyFor(t *testing.T) {
	tests := []struct {
		name string
		typ  types.Type
		want SpecializationKey
	}{
		{"complex32 scalar", types.Complex(32), SpecializationKey{32, 1}},
		{"vector complex32x4", types.Vector(types.Complex(32), 4), SpecializationKey{32, 4}},
		{"array of complex64 (scalar element)", types.Array(types.Complex(64), 8), SpecializationKey{64, 1}},
		{"array of vector complex32x4", types.Array(types.Vector(types.Complex(32), 4), 2), SpecializationKey{32, 4}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := KeyFor(tt.typ); got != tt.want {
				t.Errorf("KeyFor(%s) = %+v, want %+v", tt.name, got, tt.want)
			}
		})
	}
}

func TestIsVectorOfComplex(t *testing.T) {
	if !IsVectorOfComplex(types.Vector(types.Complex(32), 4)) {
		t.Error("expected vector of complex32 to be IsVectorOfComplex")
	}
	if IsVectorOfComplex(types.Vector(types.Primitive("float32"), 4)) {
		t.Error("expected vector of float32 to not be IsVectorOfComplex")
	}
	if IsVectorOfComplex(types.Complex(32)) {
		t.Error("expected bare complex32 scalar to not be IsVectorOfComplex")
	}
}
