package lexer

import (
	"reflect"
	"testing"
)

type expectedToken struct {
	expectedType  TokenType
	expectedValue string
}

func checkTokens(t *testing.T, input string, tests []expectedToken) {
	t.Helper()

	l := New(input)

	for i, tt := range tests {
		tok := l.NextToken()

		if tok.Type != tt.expectedType {
			t.Fatalf("tests[%d] - tokentype wrong. expected=%q, got=%q (literal %q)",
				i, tt.expectedType, tok.Type, tok.Literal)
		}

		if tok.Literal != tt.expectedValue {
			t.Fatalf("tests[%d] - literal wrong. expected=%q, got=%q",
				i, tt.expectedValue, tok.Literal)
		}
	}
}

func TestBasicTokens(t *testing.T) {
	input := `program Hello is
	global integer x[0:10];
begin
	x[1] := 42;
	putInteger(x);
end program.`

	checkTokens(t, input, []expectedToken{
		{TokenProgram, "program"},
		{TokenIdentifier, "Hello"},
		{TokenIs, "is"},
		{TokenGlobal, "global"},
		{TokenIntegerType, "integer"},
		{TokenIdentifier, "x"},
		{TokenLBracket, "["},
		{TokenInteger, "0"},
		{TokenColon, ":"},
		{TokenInteger, "10"},
		{TokenRBracket, "]"},
		{TokenSemicolon, ";"},
		{TokenBegin, "begin"},
		{TokenIdentifier, "x"},
		{TokenLBracket, "["},
		{TokenInteger, "1"},
		{TokenRBracket, "]"},
		{TokenAssign, ":="},
		{TokenInteger, "42"},
		{TokenSemicolon, ";"},
		{TokenPutInteger, "putinteger"},
		{TokenLParen, "("},
		{TokenIdentifier, "x"},
		{TokenRParen, ")"},
		{TokenSemicolon, ";"},
		{TokenEnd, "end"},
		{TokenProgram, "program"},
		{TokenPeriod, "."},
		{TokenEOF, ""},
	})
}

func TestKeywordsAreCaseInsensitive(t *testing.T) {
	input := `PROGRAM Is BEGIN eNd GLOBAL Procedure IN OUT InOut
integer FLOAT Bool char String IF then ELSE for TRUE false NOT return
getbool GETINTEGER getFloat getstring getchar putbool putinteger putfloat putstring putchar`

	checkTokens(t, input, []expectedToken{
		{TokenProgram, "program"},
		{TokenIs, "is"},
		{TokenBegin, "begin"},
		{TokenEnd, "end"},
		{TokenGlobal, "global"},
		{TokenProcedure, "procedure"},
		{TokenIn, "in"},
		{TokenOut, "out"},
		{TokenInOut, "inout"},
		{TokenIntegerType, "integer"},
		{TokenFloatType, "float"},
		{TokenBoolType, "bool"},
		{TokenCharType, "char"},
		{TokenStringType, "string"},
		{TokenIf, "if"},
		{TokenThen, "then"},
		{TokenElse, "else"},
		{TokenFor, "for"},
		{TokenTrue, "true"},
		{TokenFalse, "false"},
		{TokenNot, "not"},
		{TokenReturn, "return"},
		{TokenGetBool, "getbool"},
		{TokenGetInteger, "getinteger"},
		{TokenGetFloat, "getfloat"},
		{TokenGetString, "getstring"},
		{TokenGetChar, "getchar"},
		{TokenPutBool, "putbool"},
		{TokenPutInteger, "putinteger"},
		{TokenPutFloat, "putfloat"},
		{TokenPutString, "putstring"},
		{TokenPutChar, "putchar"},
		{TokenEOF, ""},
	})
}

func TestOperators(t *testing.T) {
	input := `:= != == <= >= < > : + - * / , & | ; [ ] ( ) .`

	checkTokens(t, input, []expectedToken{
		{TokenAssign, ":="},
		{TokenNe, "!="},
		{TokenEq, "=="},
		{TokenLe, "<="},
		{TokenGe, ">="},
		{TokenLt, "<"},
		{TokenGt, ">"},
		{TokenColon, ":"},
		{TokenPlus, "+"},
		{TokenMinus, "-"},
		{TokenMul, "*"},
		{TokenDiv, "/"},
		{TokenComma, ","},
		{TokenAnd, "&"},
		{TokenOr, "|"},
		{TokenSemicolon, ";"},
		{TokenLBracket, "["},
		{TokenRBracket, "]"},
		{TokenLParen, "("},
		{TokenRParen, ")"},
		{TokenPeriod, "."},
		{TokenEOF, ""},
	})
}

func TestMalformedOperators(t *testing.T) {
	checkTokens(t, `a = b ! c */ d # e`, []expectedToken{
		{TokenIdentifier, "a"},
		{TokenError, "="},
		{TokenIdentifier, "b"},
		{TokenError, "!"},
		{TokenIdentifier, "c"},
		{TokenError, "*/"},
		{TokenIdentifier, "d"},
		{TokenError, "#"},
		{TokenIdentifier, "e"},
		{TokenEOF, ""},
	})
}

func TestNumbers(t *testing.T) {
	checkTokens(t, `7 3.14 1.2.3; 10.`, []expectedToken{
		{TokenInteger, "7"},
		{TokenFloat, "3.14"},
		{TokenError, "1.2.3"},
		{TokenSemicolon, ";"},
		{TokenFloat, "10."},
		{TokenEOF, ""},
	})
}

func TestStringAndCharLiterals(t *testing.T) {
	tests := []struct {
		input         string
		expectedType  TokenType
		expectedValue string
	}{
		{`"hello, world."`, TokenString, `"hello, world."`},
		{`"it's"`, TokenString, `"it's"`},
		{`'a'`, TokenChar, `'a'`},
		{`'"'`, TokenChar, `'"'`},
		{`"bang!" x`, TokenError, `"bang!"`},
		{`'?'`, TokenError, `'?'`},
		{"\"open\nx", TokenError, `"open`},
		{`"eof`, TokenError, `"eof`},
	}

	for i, tt := range tests {
		tok := New(tt.input).NextToken()
		if tok.Type != tt.expectedType {
			t.Fatalf("tests[%d] - tokentype wrong. expected=%q, got=%q", i, tt.expectedType, tok.Type)
		}
		if tok.Literal != tt.expectedValue {
			t.Fatalf("tests[%d] - literal wrong. expected=%q, got=%q", i, tt.expectedValue, tok.Literal)
		}
	}
}

func TestErrorTokenResynchronizes(t *testing.T) {
	checkTokens(t, `"bad!"; x`, []expectedToken{
		{TokenError, `"bad!"`},
		{TokenSemicolon, ";"},
		{TokenIdentifier, "x"},
		{TokenEOF, ""},
	})
}

func TestComments(t *testing.T) {
	input := `a // line comment
/* block /* nested */ still comment */ b
c / d /* unterminated`

	checkTokens(t, input, []expectedToken{
		{TokenIdentifier, "a"},
		{TokenIdentifier, "b"},
		{TokenIdentifier, "c"},
		{TokenDiv, "/"},
		{TokenIdentifier, "d"},
		{TokenEOF, ""},
	})
}

func TestLineNumbers(t *testing.T) {
	input := "program\n\n  p /* a\nb */ is\r\n// x\nbegin"

	want := []struct {
		typ    TokenType
		line   int
		column int
	}{
		{TokenProgram, 1, 1},
		{TokenIdentifier, 3, 3},
		{TokenIs, 4, 6},
		{TokenBegin, 6, 1},
		{TokenEOF, 6, 6},
	}

	l := New(input)
	for i, w := range want {
		tok := l.NextToken()
		if tok.Type != w.typ || tok.Line != w.line || tok.Column != w.column {
			t.Fatalf("tests[%d] - expected %s at %d:%d, got %s at %d:%d",
				i, w.typ, w.line, w.column, tok.Type, tok.Line, tok.Column)
		}
	}
}

func TestIdentifierKeepsCase(t *testing.T) {
	tok := New("MyVar_2").NextToken()
	if tok.Type != TokenIdentifier || tok.Literal != "MyVar_2" {
		t.Fatalf("got %v", tok)
	}
}

func TestEOFIsSticky(t *testing.T) {
	l := New("x")
	l.NextToken()
	for i := 0; i < 3; i++ {
		if tok := l.NextToken(); tok.Type != TokenEOF {
			t.Fatalf("call %d: expected EOF, got %s", i, tok.Type)
		}
	}
}

func TestTokenizeIsIdempotentAcrossInstances(t *testing.T) {
	src := `program p is global float f; begin f := 1.5; end program.`

	first := New(src).Tokenize()
	second := New(src).Tokenize()

	if !reflect.DeepEqual(first, second) {
		t.Fatalf("token streams differ:\n%v\n%v", first, second)
	}
	if last := first[len(first)-1]; last.Type != TokenEOF {
		t.Fatalf("expected trailing EOF, got %s", last.Type)
	}
}

func TestTokenPredicates(t *testing.T) {
	if !(Token{Type: TokenStringType}).IsTypeMark() {
		t.Fatal("string should be a type mark")
	}
	if (Token{Type: TokenIdentifier}).IsTypeMark() {
		t.Fatal("identifier is not a type mark")
	}
	if !(Token{Type: TokenPutChar}).IsBuiltin() || !(Token{Type: TokenGetBool}).IsBuiltin() {
		t.Fatal("builtin range broken")
	}
	if (Token{Type: TokenAnd}).IsBuiltin() {
		t.Fatal("AND is not a builtin")
	}
	if !(Token{Type: TokenTrue}).IsLiteral() {
		t.Fatal("true is a literal")
	}
}
