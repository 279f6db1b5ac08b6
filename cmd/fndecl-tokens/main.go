// fndecl-tokens prints the token stream of a PHP file along with the
// declaration links the checker relies on.
package main

import (
	"context"
	"fmt"
	"log"
	"os"
	"strconv"

	"github.com/mvp-joe/fndecl/internal/sniff"
	"github.com/mvp-joe/fndecl/internal/token"
	"github.com/mvp-joe/fndecl/internal/tokenizer"
)

var isKeyword = token.Is(token.KindFunction, token.KindClosure)

func main() {
	if len(os.Args) != 2 {
		fmt.Fprintln(os.Stderr, "usage: fndecl-tokens <file.php>")
		os.Exit(2)
	}

	stream, err := tokenizer.New().TokenizeFile(context.Background(), os.Args[1])
	if err != nil {
		log.Fatal(err)
	}

	fmt.Println("=== TOKENS ===")
	for i := 0; i < stream.Len(); i++ {
		t := stream.At(i)
		fmt.Printf("%5d %4d:%-3d %-16s %s", i, t.Line, t.Column, t.Kind, strconv.Quote(t.Text))
		if m, ok := stream.Match(i); ok {
			fmt.Printf("  -> %d", m)
		}
		fmt.Println()
	}

	fmt.Println("\n=== DECLARATIONS ===")
	for i := 0; i < stream.Len(); i++ {
		if !isKeyword(stream.At(i)) {
			continue
		}
		d, err := sniff.Classify(stream, i)
		if err != nil {
			fmt.Printf("  %d: %v\n", i, err)
			continue
		}
		fmt.Printf("  %d: %s %s params=%d..%d body=%d\n",
			i, d.Kind, d.Class(stream), d.Params.Opener, d.Params.Closer, d.Body)
	}
}
