package literal_test

import (
	"fmt"
	"log"

	"github.com/coregx/retrace/backtrack"
	"github.com/coregx/retrace/literal"
)

func ExampleExtractor_ExtractPrefixes() {
	prog, err := backtrack.Compile("(foo|bar)x")
	if err != nil {
		log.Fatal(err)
	}

	seq := literal.New(literal.DefaultConfig()).ExtractPrefixes(prog)
	for i := 0; i < seq.Len(); i++ {
		fmt.Println(seq.Get(i))
	}

	// Output:
	// literal{foox, complete=true}
	// literal{barx, complete=true}
}

func ExampleExtractor_ExtractPrefixes_prefixOnly() {
	prog, err := backtrack.Compile("hello.*world")
	if err != nil {
		log.Fatal(err)
	}

	// Only the leading literal is fixed; the wildcard ends extraction.
	seq := literal.New(literal.DefaultConfig()).ExtractPrefixes(prog)
	for i := 0; i < seq.Len(); i++ {
		fmt.Println(seq.Get(i))
	}

	// Output:
	// literal{hello, complete=false}
}

func ExampleSeq_Minimize() {
	seq := literal.NewSeq(
		literal.NewLiteral([]byte("foobar"), true),
		literal.NewLiteral([]byte("foo"), true),
	)

	// "foo" covers "foobar": anything starting with the longer literal
	// also starts with the shorter one.
	seq.Minimize()
	fmt.Println(seq.Len(), string(seq.Get(0).Bytes))

	// Output:
	// 1 foo
}
