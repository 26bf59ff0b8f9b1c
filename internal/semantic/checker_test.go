package semantic_test

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/ferrite-lang/ferritec/internal/ast"
	"github.com/ferrite-lang/ferritec/internal/lexer"
	"github.com/ferrite-lang/ferritec/internal/parser"
	"github.com/ferrite-lang/ferritec/internal/semantic"
	"github.com/ferrite-lang/ferritec/internal/types"
)

// check parses src as a single module named "main" and runs the type
// checker over it, returning the Checker (for its Errors()) and the
// Pool (for asserting on resolved expression types).
func check(t *testing.T, src string) (*semantic.Checker, *ast.Program) {
	t.Helper()
	p := parser.New(lexer.New(src))
	prog := p.ParseProgram()
	for _, e := range p.Errors() {
		if !e.Warning {
			require.Fail(t, "unexpected parse error", e.Error())
		}
	}

	pool := types.NewPool()
	symbols := semantic.NewSymbolTable()
	for _, d := range prog.Decls {
		symbols.Register("main", "<test>", d)
	}
	c := semantic.NewChecker(pool, symbols)
	c.CheckFile("main", "<test>", prog)
	return c, prog
}

func errorKinds(c *semantic.Checker) []semantic.ErrorKind {
	var kinds []semantic.ErrorKind
	for _, e := range c.Errors() {
		if !e.Warning {
			kinds = append(kinds, e.Kind)
		}
	}
	return kinds
}

func TestCheckFile_ArithmeticInference(t *testing.T) {
	c, prog := check(t, "let x = 1 + 2 * 3\n")
	require.Empty(t, errorKinds(c))

	decl := prog.Decls[0].(*ast.VarDecl)
	require.NotNil(t, decl.Value.GetType())
	require.Equal(t, types.IntName, types.Name(decl.Value.GetType()))
}

func TestCheckFile_TypeMismatchOnDeclaredVar(t *testing.T) {
	c, _ := check(t, "var x: String = 1\n")
	require.Contains(t, errorKinds(c), semantic.ErrTypeMismatch)
}

func TestCheckFile_UndefinedVariable(t *testing.T) {
	c, _ := check(t, "let x = y\n")
	require.Contains(t, errorKinds(c), semantic.ErrUndefinedVariable)
}

func TestCheckFile_MissingReturnOnSomePath(t *testing.T) {
	c, _ := check(t, `func f(flag: Bool) -> Int {
  if flag {
    return 1
  }
}
`)
	require.Contains(t, errorKinds(c), semantic.ErrMissingReturn)
}

func TestCheckFile_ReturnOnEveryPathIsFine(t *testing.T) {
	c, _ := check(t, `func f(flag: Bool) -> Int {
  if flag {
    return 1
  } else {
    return 0
  }
}
`)
	require.Empty(t, errorKinds(c))
}

func TestCheckFile_AssignToImmutableLet(t *testing.T) {
	c, _ := check(t, `func f() {
  let x = 1
  x = 2
}
`)
	require.Contains(t, errorKinds(c), semantic.ErrMutability)
}

func TestCheckFile_AssignToMutableVar(t *testing.T) {
	c, _ := check(t, `func f() {
  var x = 1
  x = 2
}
`)
	require.Empty(t, errorKinds(c))
}

func TestCheckFile_BreakOutsideLoop(t *testing.T) {
	c, _ := check(t, `func f() {
  break
}
`)
	require.Contains(t, errorKinds(c), semantic.ErrInvalidBreak)
}

func TestCheckFile_BreakInsideWhileIsFine(t *testing.T) {
	c, _ := check(t, `func f() {
  while true {
    break
  }
}
`)
	require.Empty(t, errorKinds(c))
}

func TestCheckFile_ClassImplementsInterface(t *testing.T) {
	c, _ := check(t, `interface Greeter {
  func greet() -> String
}

class Person: Greeter {
  name: String

  init(name: String) {
    this.name = name
  }

  func greet() -> String {
    return this.name
  }
}
`)
	require.Empty(t, errorKinds(c))
}

func TestCheckFile_ClassMissingInterfaceMethod(t *testing.T) {
	c, _ := check(t, `interface Greeter {
  func greet() -> String
}

class Person: Greeter {
  name: String

  init(name: String) {
    this.name = name
  }
}
`)
	require.Contains(t, errorKinds(c), semantic.ErrInterface)
}

func TestCheckFile_OverloadResolutionPicksMatchingParamType(t *testing.T) {
	c, _ := check(t, `func describe(x: Int) -> String {
  return "int"
}

func describe(x: String) -> String {
  return x
}

let a = describe(1)
let b = describe("hi")
`)
	require.Empty(t, errorKinds(c))
}

func TestCheckFile_NoMatchingOverload(t *testing.T) {
	c, _ := check(t, `func describe(x: Int) -> String {
  return "int"
}

func describe(x: String) -> String {
  return x
}

let a = describe(true)
`)
	require.Contains(t, errorKinds(c), semantic.ErrNoOverload)
}

func TestCheckFile_NamedArgumentMatchesParameterName(t *testing.T) {
	c, _ := check(t, `func greet(name: String) -> String {
  return name
}

let g = greet(name: "hi")
`)
	require.Empty(t, errorKinds(c))
}

func TestCheckFile_NamedArgumentWrongNameIsError(t *testing.T) {
	c, _ := check(t, `func greet(name: String) -> String {
  return name
}

let g = greet(wrong: "hi")
`)
	require.Contains(t, errorKinds(c), semantic.ErrInvalidArgumentName)
}

func TestCheckFile_OverflowingIntLiteralIsTypeError(t *testing.T) {
	c, _ := check(t, "let x = 99999999999999999999\n")
	require.Contains(t, errorKinds(c), semantic.ErrInvalidOperation)
}

func TestCheckFile_NullablePointerMemberAccessRequiresUnwrap(t *testing.T) {
	c, _ := check(t, `class Box {
  value: Int

  init(value: Int) {
    this.value = value
  }
}

func f(b: Box*) -> Int {
  return b.value
}
`)
	require.Contains(t, errorKinds(c), semantic.ErrInvalidOperation)
}

func TestCheckFile_UnwrapAllowsMemberAccess(t *testing.T) {
	c, _ := check(t, `class Box {
  value: Int

  init(value: Int) {
    this.value = value
  }
}

func f(b: Box*) -> Int {
  return b!.value
}
`)
	require.Empty(t, errorKinds(c))
}

func TestCheckFile_GenericFunctionInstantiation(t *testing.T) {
	c, _ := check(t, `func identity<T>(x: T) -> T {
  return x
}

let a = identity(1)
let b = identity("hi")
`)
	require.Empty(t, errorKinds(c))
}

func TestCheckFile_ConstArrayOutOfBoundsIndex(t *testing.T) {
	c, _ := check(t, `func f() -> Int {
  let xs = [1, 2, 3]
  return xs[5]
}
`)
	require.Contains(t, errorKinds(c), semantic.ErrInvalidOperation)
}

func TestCheckFile_MutatingMethodCanAssignMutableField(t *testing.T) {
	c, _ := check(t, `class Counter {
  mutable count: Int

  init(count: Int) {
    this.count = count
  }

  mutating func increment() {
    this.count = this.count + 1
  }
}
`)
	require.Empty(t, errorKinds(c))
}

func TestCheckFile_MutatingMethodCannotAssignNonMutableField(t *testing.T) {
	c, _ := check(t, `class Counter {
  count: Int

  init(count: Int) {
    this.count = count
  }

  mutating func increment() {
    this.count = this.count + 1
  }
}
`)
	require.Contains(t, errorKinds(c), semantic.ErrMutability)
}

func TestCheckFile_NonMutatingMethodCannotAssignField(t *testing.T) {
	c, _ := check(t, `class Counter {
  mutable count: Int

  init(count: Int) {
    this.count = count
  }

  func reset() {
    this.count = 0
  }
}
`)
	require.Contains(t, errorKinds(c), semantic.ErrMutability)
}

func TestCheckFile_GenericConstraintSatisfied(t *testing.T) {
	c, _ := check(t, `interface Eq {
  func eq(other: This) -> Bool
}

struct S {
  func eq(other: S) -> Bool {
    return true
  }
}

func g<T: Eq>(x: T) {
}

g(S())
`)
	require.Empty(t, errorKinds(c))
}

func TestCheckFile_GenericConstraintNotSatisfied(t *testing.T) {
	c, _ := check(t, `interface Eq {
  func eq(other: This) -> Bool
}

struct S {
}

func g<T: Eq>(x: T) {
}

g(S())
`)
	require.Contains(t, errorKinds(c), semantic.ErrGenericConstraint)
}

func TestCheckFile_StringLiteralConvertsToImmutableCharPtr(t *testing.T) {
	c, _ := check(t, `let s: Char* = "hi"
`)
	require.Empty(t, errorKinds(c))
}

func TestCheckFile_CastBoolToInt(t *testing.T) {
	c, _ := check(t, `let b = true
let n = cast<Int>(b)
`)
	require.Empty(t, errorKinds(c))
}

func TestCheckFile_InvalidCast(t *testing.T) {
	c, _ := check(t, `let s = "hi"
let n = cast<Int>(s)
`)
	require.Contains(t, errorKinds(c), semantic.ErrInvalidOperation)
}
