package rubyclient

import "testing"

func TestPascalCase(test *testing.T) {
	cases := map[string]string{
		"GetThing":      "GetThing",
		"get_thing":     "GetThing",
		"get-thing":     "GetThing",
		"get thing now": "GetThingNow",
		"":              "",
	}
	for in, want := range cases {
		if got := PascalCase(in); got != want {
			test.Errorf("PascalCase(%q) = %q, want %q", in, got, want)
		}
	}
}

func TestSnakeCase(test *testing.T) {
	cases := map[string]string{
		"GetThing": "get_thing",
		"ID":       "id",
		"ThingID":  "thing_id",
		"URLPath":  "url_path",
		"already_snake": "already_snake",
	}
	for in, want := range cases {
		if got := SnakeCase(in); got != want {
			test.Errorf("SnakeCase(%q) = %q, want %q", in, got, want)
		}
	}
}

func TestPascalSnakeRoundTrip(test *testing.T) {
	names := []string{"GetThing", "ListWidgets", "CreateOrder"}
	for _, n := range names {
		if got := PascalCase(SnakeCase(n)); got != n {
			test.Errorf("round trip PascalCase(SnakeCase(%q)) = %q, want %q", n, got, n)
		}
	}
}

func TestMemberNameSuffixesReservedWords(test *testing.T) {
	if got := MemberName("class"); got != "class_member" {
		test.Errorf("MemberName(%q) = %q, want %q", "class", got, "class_member")
	}
	if got := MemberName("end"); got != "end_member" {
		test.Errorf("MemberName(%q) = %q, want %q", "end", got, "end_member")
	}
	if got := MemberName("thingName"); got != "thing_name" {
		test.Errorf("MemberName(%q) = %q, want %q", "thingName", got, "thing_name")
	}
}

func TestShapeSymbolMemoizes(test *testing.T) {
	sp := NewSymbolProvider("Acme")
	sym1 := sp.ShapeSymbol("example#GetThing", "operation")
	sym2 := sp.ShapeSymbol("example#GetThing", "operation")
	if sym1 != sym2 {
		test.Errorf("expected the same *EmittedSymbol instance on repeat lookup")
	}
	if sym1.Name != "GetThing" {
		test.Errorf("unexpected symbol name: %q", sym1.Name)
	}
	if sym1.QualifiedName != "Acme::GetThing" {
		test.Errorf("unexpected qualified name: %q", sym1.QualifiedName)
	}
}

func TestShapeSymbolLeadingDigit(test *testing.T) {
	sp := NewSymbolProvider("Acme")
	sym := sp.ShapeSymbol("example#123Thing", "structure")
	if sym.Name != "Struct____123Thing" {
		test.Errorf("unexpected leading-digit symbol name: %q", sym.Name)
	}
}

func TestShapeSymbolUnqualifiesShapeId(test *testing.T) {
	sp := NewSymbolProvider("Acme")
	sym := sp.ShapeSymbol("com.example.nested#Thing", "structure")
	if sym.Name != "Thing" {
		test.Errorf("expected the shape id's namespace to be stripped, got %q", sym.Name)
	}
}
