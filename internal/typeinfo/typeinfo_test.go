package typeinfo

import "testing"

func TestEqual_Structural(t *testing.T) {
	a := Array(Number(I32), 4)
	b := Array(Number(I32), 4)
	c := Array(Number(I64), 4)
	d := Array(Number(I32), 5)

	if !a.Equal(b) {
		t.Error("identical array types should be equal")
	}
	if a.Equal(c) {
		t.Error("arrays of different element type should not be equal")
	}
	if a.Equal(d) {
		t.Error("arrays of different size should not be equal")
	}
}

func TestEqual_RespectsTypeParams(t *testing.T) {
	a := Struct("List", Number(I32))
	b := Struct("List", Number(I32))
	c := Struct("List", Number(I64))

	if !a.Equal(b) {
		t.Error("same struct with same type params should be equal")
	}
	if a.Equal(c) {
		t.Error("same struct with different type params should not be equal")
	}
}

func TestSubstitute_ReplacesGenericLeaves(t *testing.T) {
	listOfT := Struct("List", Generic("T"))
	subst := map[string]TypeInfo{"T": Number(I32)}

	got := listOfT.Substitute(subst)
	want := Struct("List", Number(I32))
	if !got.Equal(want) {
		t.Errorf("Substitute() = %v, want %v", got, want)
	}
}

func TestSubstitute_Idempotent(t *testing.T) {
	ty := Array(Generic("T"), 3)
	subst := map[string]TypeInfo{"T": Bool()}

	once := ty.Substitute(subst)
	twice := once.Substitute(subst)
	if !once.Equal(twice) {
		t.Errorf("Substitute is not idempotent: once=%v twice=%v", once, twice)
	}
}

func TestSubstitute_LeavesUnmappedGenericsAlone(t *testing.T) {
	ty := Generic("U")
	got := ty.Substitute(map[string]TypeInfo{"T": Bool()})
	if !got.Equal(Generic("U")) {
		t.Errorf("Substitute() = %v, want unchanged Generic(U)", got)
	}
}

func TestPredicates(t *testing.T) {
	if !Number(I8).IsNumber() || !Number(I8).IsSignedInteger() {
		t.Error("i8 should be a signed number")
	}
	if Number(U8).IsSignedInteger() {
		t.Error("u8 should not be a signed integer")
	}
	if !Bool().IsBool() {
		t.Error("Bool() should report IsBool")
	}
	if !String().IsString() {
		t.Error("String() should report IsString")
	}
}
