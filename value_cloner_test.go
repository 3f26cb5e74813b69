package expiringmap_test

import (
	"testing"

	expiringmap "github.com/aicacia/go-expiring-map"
)

type clonerValue struct {
	number int
}

func (v *clonerValue) Clone() *clonerValue {
	return &clonerValue{number: v.number}
}

type deepCopierValue struct {
	number int
}

func (v *deepCopierValue) DeepCopy() *deepCopierValue {
	return &deepCopierValue{number: v.number}
}

func TestDefaultValueCloner_CloneMethod(t *testing.T) {
	t.Parallel()

	cloner := expiringmap.DefaultValueCloner[*clonerValue]()
	original := &clonerValue{number: 42}
	cloned := cloner.CloneValue(original)

	if original == cloned {
		t.Error("cloned value must be a distinct pointer")
	}

	original.number = 100
	if cloned.number != 42 {
		t.Errorf("cloned value changed with the original: %d", cloned.number)
	}
}

func TestDefaultValueCloner_DeepCopyMethod(t *testing.T) {
	t.Parallel()

	cloner := expiringmap.DefaultValueCloner[*deepCopierValue]()
	original := &deepCopierValue{number: 42}
	cloned := cloner.CloneValue(original)

	if original == cloned {
		t.Error("cloned value must be a distinct pointer")
	}

	original.number = 100
	if cloned.number != 42 {
		t.Errorf("cloned value changed with the original: %d", cloned.number)
	}
}

func TestDefaultValueCloner_Primitives(t *testing.T) {
	t.Parallel()

	if _, ok := expiringmap.DefaultValueCloner[string]().(expiringmap.NopValueCloner[string]); !ok {
		t.Error("strings must get the no-op cloner")
	}
	if _, ok := expiringmap.DefaultValueCloner[int]().(expiringmap.NopValueCloner[int]); !ok {
		t.Error("ints must get the no-op cloner")
	}
}

func TestDefaultValueCloner_Unsupported(t *testing.T) {
	t.Parallel()

	type plain struct {
		Number int
	}

	defer func() {
		if r := recover(); r == nil {
			t.Error("expected a panic for a pointer type without Clone or DeepCopy")
		}
	}()
	expiringmap.DefaultValueCloner[*plain]()
}

func TestNopValueCloner(t *testing.T) {
	t.Parallel()

	v := &clonerValue{number: 1}
	if got := (expiringmap.NopValueCloner[*clonerValue]{}).CloneValue(v); got != v {
		t.Error("no-op cloner must return the input unchanged")
	}
}
