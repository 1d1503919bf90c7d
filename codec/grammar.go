package codec

import (
	"github.com/alecthomas/participle/v2"
	"github.com/alecthomas/participle/v2/lexer"
)

// diagramLexer tokenises the line format. Number precedes Tag so that the
// NaN and Inf spellings produced by strconv are read as numbers. Newlines
// are kept as tokens since they terminate records.
var diagramLexer = lexer.MustSimple([]lexer.SimpleRule{
	{Name: "Comment", Pattern: `#[^\n]*`},
	{Name: "Whitespace", Pattern: `[ \t\r]+`},
	{Name: "Newline", Pattern: `\n`},
	{Name: "Number", Pattern: `[-+]?(?:Inf|NaN|[0-9]+(?:\.[0-9]+)?(?:[eE][-+]?[0-9]+)?)`},
	{Name: "Tag", Pattern: `[A-Za-z]+`},
	{Name: "Semicolon", Pattern: `;`},
})

type document struct {
	Records []*record `parser:"Newline* ( @@ ( Newline+ @@? )* )?"`
}

type record struct {
	Pos lexer.Position

	Pin  *pinRecord  `parser:"  \"PIN\" @@"`
	And  *gateRecord `parser:"| \"AND\" @@"`
	Or   *orRecord   `parser:"| \"OR\" @@"`
	Wire *wireRecord `parser:"| \"WIRE\" @@"`
}

type pinRecord struct {
	ID int     `parser:"\";\" @Number"`
	X  float64 `parser:"\";\" @Number"`
	Y  float64 `parser:"\";\" @Number"`
}

type gateRecord struct {
	ID   int     `parser:"\";\" @Number"`
	X    float64 `parser:"\";\" @Number"`
	Y    float64 `parser:"\";\" @Number"`
	Pins []int   `parser:"\";\" @Number \";\" @Number \";\" @Number \";\" @Number"`
}

type orRecord struct {
	ID        int     `parser:"\";\" @Number"`
	X         float64 `parser:"\";\" @Number"`
	Y         float64 `parser:"\";\" @Number"`
	Threshold int     `parser:"\";\" @Number"`
	Pins      []int   `parser:"\";\" @Number \";\" @Number \";\" @Number \";\" @Number"`
}

type wireRecord struct {
	ID          int `parser:"\";\" @Number"`
	StartParent int `parser:"\";\" @Number"`
	StartPin    int `parser:"\";\" @Number"`
	EndParent   int `parser:"\";\" @Number"`
	EndPin      int `parser:"\";\" @Number"`
}

var diagramParser = participle.MustBuild[document](
	participle.Lexer(diagramLexer),
	participle.Elide("Comment", "Whitespace"),
	participle.UseLookahead(2),
)
