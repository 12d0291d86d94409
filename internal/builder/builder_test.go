package builder

import (
	"strings"
	"testing"

	"typelint/internal/models"
	"typelint/internal/parser"
)

func collect(t *testing.T, src string) []*models.Function {
	t.Helper()
	file, err := parser.Parse("test.py", []byte(src))
	if err != nil {
		t.Fatalf("Failed to parse: %v", err)
	}
	t.Cleanup(file.Close)

	functions, err := Collect(file)
	if err != nil {
		t.Fatalf("Collect failed: %v", err)
	}
	return functions
}

func collectOne(t *testing.T, src string) *models.Function {
	t.Helper()
	functions := collect(t, src)
	if len(functions) != 1 {
		t.Fatalf("got %d functions, want 1", len(functions))
	}
	return functions[0]
}

func argNames(fn *models.Function) []string {
	names := make([]string, len(fn.Arguments))
	for i, arg := range fn.Arguments {
		names[i] = arg.Name
	}
	return names
}

func TestSimpleFunction(t *testing.T) {
	fn := collectOne(t, "def greet(name, count):\n    print(name)\n")

	if fn.Name != "greet" || fn.Line != 1 || fn.Col != 0 {
		t.Errorf("unexpected header: %+v", fn)
	}
	if fn.FunctionType != models.FunctionPublic {
		t.Errorf("FunctionType = %s, want public", fn.FunctionType)
	}
	if fn.IsMethod || fn.IsNested {
		t.Error("plain module-level function flagged as method or nested")
	}

	want := []string{"name", "count", "return"}
	if got := argNames(fn); strings.Join(got, ",") != strings.Join(want, ",") {
		t.Errorf("arguments = %v, want %v", got, want)
	}

	name := fn.Arguments[0]
	if name.Line != 1 || name.Col != 10 {
		t.Errorf("name slot at %d:%d, want 1:10", name.Line, name.Col)
	}
	if name.AnnotationType != models.AnnotationArg || name.HasTypeAnnotation {
		t.Errorf("name slot = %+v", name)
	}

	ret := fn.ReturnArgument()
	if ret.AnnotationType != models.AnnotationReturn || ret.HasTypeAnnotation {
		t.Errorf("return slot = %+v", ret)
	}
	// The colon closing "def greet(name, count):" sits at column 23.
	if ret.Line != 1 || ret.Col != 23 {
		t.Errorf("return slot at %d:%d, want 1:23", ret.Line, ret.Col)
	}
}

func TestInlineAnnotations(t *testing.T) {
	fn := collectOne(t, "def total(a: int, b, c: str = \"x\") -> int:\n    return a\n")

	wantAnnotated := map[string]bool{"a": true, "b": false, "c": true, "return": true}
	for _, arg := range fn.Arguments {
		if arg.HasTypeAnnotation != wantAnnotated[arg.Name] {
			t.Errorf("%s: HasTypeAnnotation = %v, want %v", arg.Name, arg.HasTypeAnnotation, wantAnnotated[arg.Name])
		}
		if arg.HasTypeAnnotation && !arg.HasInlineAnnotation {
			t.Errorf("%s: inline annotation not flagged as inline", arg.Name)
		}
	}
	if !fn.IsReturnAnnotated {
		t.Error("IsReturnAnnotated = false with -> int present")
	}
}

func TestParameterKinds(t *testing.T) {
	fn := collectOne(t, "def f(pos, /, arg, *args, kw, **kwargs):\n    pass\n")

	wantKinds := map[string]models.AnnotationType{
		"pos":    models.AnnotationPosOnlyArg,
		"arg":    models.AnnotationArg,
		"args":   models.AnnotationVararg,
		"kw":     models.AnnotationKwOnlyArg,
		"kwargs": models.AnnotationKwarg,
		"return": models.AnnotationReturn,
	}
	if len(fn.Arguments) != len(wantKinds) {
		t.Fatalf("got %d slots, want %d: %v", len(fn.Arguments), len(wantKinds), argNames(fn))
	}
	for _, arg := range fn.Arguments {
		if arg.AnnotationType != wantKinds[arg.Name] {
			t.Errorf("%s: kind = %s, want %s", arg.Name, arg.AnnotationType, wantKinds[arg.Name])
		}
	}
}

func TestBareStarSeparator(t *testing.T) {
	fn := collectOne(t, "def f(a, *, b):\n    pass\n")

	wantKinds := map[string]models.AnnotationType{
		"a":      models.AnnotationArg,
		"b":      models.AnnotationKwOnlyArg,
		"return": models.AnnotationReturn,
	}
	if len(fn.Arguments) != 3 {
		t.Fatalf("got slots %v, want a, b, return", argNames(fn))
	}
	for _, arg := range fn.Arguments {
		if arg.AnnotationType != wantKinds[arg.Name] {
			t.Errorf("%s: kind = %s, want %s", arg.Name, arg.AnnotationType, wantKinds[arg.Name])
		}
	}
}

func TestAnnotatedSplats(t *testing.T) {
	fn := collectOne(t, "def f(*args: int, **kwargs: str) -> None:\n    pass\n")

	for _, arg := range fn.Arguments {
		if !arg.HasTypeAnnotation {
			t.Errorf("%s: not annotated", arg.Name)
		}
	}
	if fn.Arguments[0].Name != "args" || fn.Arguments[0].AnnotationType != models.AnnotationVararg {
		t.Errorf("first slot = %+v", fn.Arguments[0])
	}
	if fn.Arguments[1].Name != "kwargs" || fn.Arguments[1].AnnotationType != models.AnnotationKwarg {
		t.Errorf("second slot = %+v", fn.Arguments[1])
	}
}

func TestAnnotatedVarargSwitchesToKeywordOnly(t *testing.T) {
	fn := collectOne(t, "def f(*args: int, kw):\n    pass\n")

	if fn.Arguments[1].Name != "kw" || fn.Arguments[1].AnnotationType != models.AnnotationKwOnlyArg {
		t.Errorf("kw slot = %+v", fn.Arguments[1])
	}
}

func TestMethodsAndNesting(t *testing.T) {
	src := `class Store:
    def get(self, key):
        def helper(x):
            return x
        return helper(key)

def top():
    def inner():
        pass
`
	functions := collect(t, src)
	if len(functions) != 4 {
		t.Fatalf("got %d functions: %v", len(functions), functions)
	}

	get, helper, top, inner := functions[0], functions[1], functions[2], functions[3]
	if get.Name != "get" || !get.IsMethod || get.IsNested {
		t.Errorf("get = %+v", get)
	}
	// A function inside a method is nested, not a method.
	if helper.Name != "helper" || helper.IsMethod || !helper.IsNested {
		t.Errorf("helper = %+v", helper)
	}
	if top.Name != "top" || top.IsMethod || top.IsNested {
		t.Errorf("top = %+v", top)
	}
	if inner.Name != "inner" || inner.IsMethod || !inner.IsNested {
		t.Errorf("inner = %+v", inner)
	}
}

func TestContextCrossesIntermediateStatements(t *testing.T) {
	// The nearest enclosing definition decides the context; if/try blocks in
	// between do not reset it. A def guarded by a class-level conditional is
	// still a method, and one guarded inside a function is still nested.
	src := `class C:
    if PY3:
        def get(self):
            pass

def outer():
    try:
        def fallback(x):
            pass
    except NameError:
        pass
`
	functions := collect(t, src)
	if len(functions) != 3 {
		t.Fatalf("got %d functions", len(functions))
	}

	get := functions[0]
	if get.Name != "get" || !get.IsMethod || get.IsNested {
		t.Errorf("conditional method = %+v", get)
	}

	fallback := functions[2]
	if fallback.Name != "fallback" || fallback.IsMethod || !fallback.IsNested {
		t.Errorf("conditional nested def = %+v", fallback)
	}
}

func TestClassDecorators(t *testing.T) {
	src := `class C:
    @classmethod
    def make(cls):
        pass

    @staticmethod
    def helper(x):
        pass

    @property
    def value(self):
        pass
`
	functions := collect(t, src)
	if len(functions) != 3 {
		t.Fatalf("got %d functions", len(functions))
	}

	want := map[string]models.ClassDecoratorType{
		"make":   models.ClassDecoratorClassmethod,
		"helper": models.ClassDecoratorStaticmethod,
		"value":  models.ClassDecoratorNone,
	}
	for _, fn := range functions {
		if fn.ClassDecoratorType != want[fn.Name] {
			t.Errorf("%s: ClassDecoratorType = %s, want %s", fn.Name, fn.ClassDecoratorType, want[fn.Name])
		}
	}
}

func TestDecoratorShapes(t *testing.T) {
	src := `@overload
@typing.overload
@functools.lru_cache(maxsize=None)
def f(a):
    pass
`
	fn := collectOne(t, src)
	if len(fn.Decorators) != 3 {
		t.Fatalf("got %d decorators", len(fn.Decorators))
	}

	if d := fn.Decorators[0]; d.Kind != models.DecoratorName || d.Name != "overload" {
		t.Errorf("bare decorator = %+v", d)
	}
	if d := fn.Decorators[1]; d.Kind != models.DecoratorAttribute || d.Name != "overload" {
		t.Errorf("attribute decorator = %+v", d)
	}
	d := fn.Decorators[2]
	if d.Kind != models.DecoratorCall || d.Inner == nil {
		t.Fatalf("call decorator = %+v", d)
	}
	if d.Inner.Kind != models.DecoratorAttribute || d.Inner.Name != "lru_cache" {
		t.Errorf("call callee = %+v", d.Inner)
	}
}

func TestDecoratedClassContext(t *testing.T) {
	src := `@dataclass
class Point:
    def dist(self):
        pass

class Plain:
    def dist(self):
        pass
`
	functions := collect(t, src)
	if len(functions) != 2 {
		t.Fatalf("got %d functions", len(functions))
	}
	if !functions[0].IsClassDecorated {
		t.Error("method of decorated class not flagged")
	}
	if functions[1].IsClassDecorated {
		t.Error("method of plain class flagged as decorated")
	}
}

func TestFunctionTypeComment(t *testing.T) {
	src := `def pair(a, b):
    # type: (int, str) -> bool
    return True
`
	fn := collectOne(t, src)
	if !fn.HasCommentAnnotation {
		t.Fatal("function-level type comment not detected")
	}

	wantAnnotated := map[string]bool{"a": true, "b": true, "return": true}
	for _, arg := range fn.Arguments {
		if arg.HasTypeAnnotation != wantAnnotated[arg.Name] {
			t.Errorf("%s: HasTypeAnnotation = %v, want %v", arg.Name, arg.HasTypeAnnotation, wantAnnotated[arg.Name])
		}
		if arg.HasTypeAnnotation && !arg.HasCommentAnnotation {
			t.Errorf("%s: comment annotation not flagged as comment", arg.Name)
		}
	}
	if !fn.IsReturnAnnotated {
		t.Error("IsReturnAnnotated = false after type comment")
	}
}

func TestNestedSignatureCommentStaysWithNestedDef(t *testing.T) {
	// The trailing comment annotates g, whose header shares the line with
	// f's first body statement; f must not claim it.
	src := `def f(a):
    def g(b):  # type: (int) -> int
        return b
    return g
`
	functions := collect(t, src)
	if len(functions) != 2 {
		t.Fatalf("got %d functions", len(functions))
	}

	f, g := functions[0], functions[1]
	if f.HasCommentAnnotation {
		t.Error("enclosing function claimed the nested def's type comment")
	}
	if f.Arguments[0].HasTypeAnnotation || f.ReturnArgument().HasTypeAnnotation {
		t.Errorf("enclosing function slots annotated: %+v", f.Arguments)
	}

	if !g.HasCommentAnnotation {
		t.Fatal("nested def lost its type comment")
	}
	if !g.Arguments[0].HasTypeAnnotation || !g.ReturnArgument().HasTypeAnnotation {
		t.Errorf("nested def slots not annotated: %+v", g.Arguments)
	}
}

func TestStatementTypeCommentNotClaimedByFunction(t *testing.T) {
	// A variable type comment on the first body statement belongs to that
	// statement even when it happens to look like a signature.
	src := `def f(a):
    cb = default  # type: (int) -> int
    return cb
`
	fn := collect(t, src)[0]
	if fn.HasCommentAnnotation {
		t.Error("statement-level comment claimed as function type comment")
	}
	if fn.Arguments[0].HasTypeAnnotation {
		t.Error("statement-level comment annotated a parameter")
	}
}

func TestFunctionTypeCommentOnHeaderLine(t *testing.T) {
	fn := collectOne(t, "def f(a):  # type: (int) -> str\n    return \"\"\n")
	if !fn.HasCommentAnnotation {
		t.Fatal("trailing header type comment not detected")
	}
	if !fn.Arguments[0].HasTypeAnnotation || !fn.ReturnArgument().HasTypeAnnotation {
		t.Error("slots not marked from the trailing comment")
	}
}

func TestTypeCommentReceiverInjection(t *testing.T) {
	// A method's type comment conventionally omits the receiver, so the
	// first hint must land on the first real parameter.
	src := `class C:
    def m(self, a, b):
        # type: (int, str) -> bool
        pass
`
	fn := collectOne(t, src)

	wantAnnotated := map[string]bool{"self": false, "a": true, "b": true, "return": true}
	for _, arg := range fn.Arguments {
		if arg.HasTypeAnnotation != wantAnnotated[arg.Name] {
			t.Errorf("%s: HasTypeAnnotation = %v, want %v", arg.Name, arg.HasTypeAnnotation, wantAnnotated[arg.Name])
		}
	}
}

func TestTypeCommentNoInjectionForStaticmethod(t *testing.T) {
	src := `class C:
    @staticmethod
    def m(a, b):
        # type: (int, str) -> bool
        pass
`
	fn := collectOne(t, src)

	wantAnnotated := map[string]bool{"a": true, "b": true, "return": true}
	for _, arg := range fn.Arguments {
		if arg.HasTypeAnnotation != wantAnnotated[arg.Name] {
			t.Errorf("%s: HasTypeAnnotation = %v, want %v", arg.Name, arg.HasTypeAnnotation, wantAnnotated[arg.Name])
		}
	}
}

func TestTypeCommentExplicitReceiverHint(t *testing.T) {
	// When the hint count covers every parameter no placeholder is injected
	// and the receiver takes the first hint.
	src := `class C:
    def m(self, a):
        # type: (C, int) -> bool
        pass
`
	fn := collectOne(t, src)
	for _, arg := range fn.Arguments {
		if !arg.HasTypeAnnotation {
			t.Errorf("%s: not annotated", arg.Name)
		}
	}
}

func TestTypeCommentEllipsisSlots(t *testing.T) {
	src := `def f(a, b):
    # type: (..., str) -> bool
    pass
`
	fn := collectOne(t, src)

	wantAnnotated := map[string]bool{"a": false, "b": true, "return": true}
	for _, arg := range fn.Arguments {
		if arg.HasTypeAnnotation != wantAnnotated[arg.Name] {
			t.Errorf("%s: HasTypeAnnotation = %v, want %v", arg.Name, arg.HasTypeAnnotation, wantAnnotated[arg.Name])
		}
	}
}

func TestPerArgumentTypeComments(t *testing.T) {
	src := `def f(
    a,  # type: int
    b,
):
    # type: (...) -> None
    pass
`
	fn := collectOne(t, src)

	a, b := fn.Arguments[0], fn.Arguments[1]
	if !a.HasTypeAnnotation || !a.HasCommentAnnotation {
		t.Errorf("a = %+v, want comment-annotated", a)
	}
	if b.HasTypeAnnotation {
		t.Errorf("b = %+v, want unannotated", b)
	}
	if !fn.ReturnArgument().HasTypeAnnotation {
		t.Error("return not annotated by the signature comment")
	}
}

func TestMalformedTypeCommentFails(t *testing.T) {
	src := `def f(a):
    # type: (int -> str
    pass
`
	file, err := parser.Parse("bad.py", []byte(src))
	if err != nil {
		t.Fatalf("Failed to parse: %v", err)
	}
	defer file.Close()

	if _, err := Collect(file); err == nil {
		t.Error("expected an error for a malformed type comment")
	}
}

func TestTypeIgnoreIsNotATypeComment(t *testing.T) {
	fn := collectOne(t, "def f(a):  # type: ignore\n    pass\n")
	if fn.HasCommentAnnotation {
		t.Error("type: ignore treated as a type comment")
	}
	if fn.Arguments[0].HasTypeAnnotation {
		t.Error("type: ignore annotated an argument")
	}
}

func TestColonSeekerSingleLine(t *testing.T) {
	fn := collectOne(t, "def g(): return 1\n")
	ret := fn.ReturnArgument()
	if ret.Line != 1 || ret.Col != 7 {
		t.Errorf("return slot at %d:%d, want 1:7", ret.Line, ret.Col)
	}
}

func TestColonSeekerMultiLineParameters(t *testing.T) {
	src := `def h(
    a,
    b,
):
    pass
`
	fn := collectOne(t, src)
	ret := fn.ReturnArgument()
	if ret.Line != 4 || ret.Col != 1 {
		t.Errorf("return slot at %d:%d, want 4:1", ret.Line, ret.Col)
	}
}

func TestColonSeekerSkipsDefaultExpressionColons(t *testing.T) {
	fn := collectOne(t, "def f(t=lambda: 1):\n    pass\n")
	ret := fn.ReturnArgument()
	if ret.Line != 1 || ret.Col != 18 {
		t.Errorf("return slot at %d:%d, want 1:18", ret.Line, ret.Col)
	}
}

func TestHasOnlyNoneReturns(t *testing.T) {
	tests := []struct {
		desc string
		src  string
		want bool
	}{
		{"no returns", "def f():\n    pass\n", true},
		{"bare return", "def f():\n    return\n", true},
		{"return None", "def f():\n    return None\n", true},
		{"parenthesized None", "def f():\n    return (None)\n", true},
		{"doubly parenthesized None", "def f():\n    return ((None))\n", true},
		{"parenthesized value", "def f():\n    return (1)\n", false},
		{"return value", "def f():\n    return 1\n", false},
		{"conditional value", "def f(a):\n    if a:\n        return a\n    return None\n", false},
		{"value only in nested def", "def f():\n    def g():\n        return 1\n    g()\n", true},
	}

	for _, tt := range tests {
		functions := collect(t, tt.src)
		if functions[0].HasOnlyNoneReturns != tt.want {
			t.Errorf("%s: HasOnlyNoneReturns = %v, want %v", tt.desc, functions[0].HasOnlyNoneReturns, tt.want)
		}
	}
}

func TestAsyncFunction(t *testing.T) {
	fn := collectOne(t, "async def fetch(url):\n    pass\n")
	if fn.Name != "fetch" {
		t.Errorf("async function name = %q", fn.Name)
	}
	if len(fn.Arguments) != 2 {
		t.Errorf("async function slots = %v", argNames(fn))
	}
}

func TestSourceOrderIncludesNestedAfterParent(t *testing.T) {
	src := `def outer():
    def inner():
        pass

def after():
    pass
`
	functions := collect(t, src)
	want := []string{"outer", "inner", "after"}
	if len(functions) != len(want) {
		t.Fatalf("got %d functions", len(functions))
	}
	for i, fn := range functions {
		if fn.Name != want[i] {
			t.Errorf("function %d = %q, want %q", i, fn.Name, want[i])
		}
	}
}
