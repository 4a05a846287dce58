package setcover

import (
	"fmt"
	"io"
	"os"
	"strconv"

	"github.com/alecthomas/participle/v2"
	"github.com/alecthomas/participle/v2/lexer"
)

// The instance format is line oriented: the universe size, the set count
// and the bound k each head their own line (blank lines before them are
// skipped and anything after the first number is ignored), then each set is
// a line holding a count s followed by at least s element ids.

type instanceFile struct {
	Universe headerLine `parser:"@@"`
	SetCount headerLine `parser:"@@"`
	K        headerLine `parser:"@@"`
	Sets     []*setLine `parser:"( @@ | EOL )*"`
}

type headerLine struct {
	Pos   lexer.Position
	Value string `parser:"EOL* @Int Int* EOL?"`
}

type setLine struct {
	Pos   lexer.Position
	Count string   `parser:"@Int"`
	Elems []string `parser:"@Int* EOL?"`
}

var instanceLexer = lexer.MustSimple([]lexer.SimpleRule{
	{Name: "Int", Pattern: `[-+]?\d+`},
	{Name: "EOL", Pattern: `\r?\n`},
	{Name: "Whitespace", Pattern: `[ \t\f\v]+`},
})

var instanceParser = participle.MustBuild[instanceFile](
	participle.Lexer(instanceLexer),
	participle.Elide("Whitespace"),
)

// ParseInstance reads an instance from r. The name is used in error
// messages.
//
// A set line with more ids than its count keeps only the first count of
// them. A mismatch between the announced and actual number of sets is not an
// error; see Instance.CountMismatch. A negative k is not an error either: it
// is left for Encode to reject.
func ParseInstance(name string, r io.Reader) (*Instance, error) {
	ast, err := instanceParser.Parse(name, r)
	if err != nil {
		return nil, fmt.Errorf("parsing instance: %w", err)
	}
	universe, err := atoi(ast.Universe.Pos, ast.Universe.Value, "universe size", false)
	if err != nil {
		return nil, err
	}
	declared, err := atoi(ast.SetCount.Pos, ast.SetCount.Value, "set count", false)
	if err != nil {
		return nil, err
	}
	k, err := atoi(ast.K.Pos, ast.K.Value, "bound", true)
	if err != nil {
		return nil, err
	}
	inst := &Instance{
		UniverseSize: universe,
		DeclaredSets: declared,
		K:            k,
		Sets:         make([][]int, 0, len(ast.Sets)),
	}
	for _, line := range ast.Sets {
		count, err := atoi(line.Pos, line.Count, "set size", false)
		if err != nil {
			return nil, err
		}
		ids := line.Elems
		if len(ids) > count {
			ids = ids[:count]
		}
		elems := make([]int, len(ids))
		for i, id := range ids {
			if elems[i], err = atoi(line.Pos, id, "element id", true); err != nil {
				return nil, err
			}
		}
		inst.Sets = append(inst.Sets, elems)
	}
	return inst, nil
}

func atoi(pos lexer.Position, s, what string, allowNegative bool) (int, error) {
	n, err := strconv.Atoi(s)
	if err != nil {
		return 0, fmt.Errorf("%s: malformed %s: %s", pos, what, err)
	}
	if n < 0 && !allowNegative {
		return 0, fmt.Errorf("%s: invalid %s %d", pos, what, n)
	}
	return n, nil
}

// LoadInstance reads the instance stored in the named file.
func LoadInstance(filename string) (*Instance, error) {
	f, err := os.Open(filename)
	if err != nil {
		return nil, err
	}
	defer f.Close()
	return ParseInstance(filename, f)
}
