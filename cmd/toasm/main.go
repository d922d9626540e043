package main

import (
	"flag"
	"log"
	"os"

	"github.com/retrocore/toy16/assembler"
	"github.com/retrocore/toy16/image"
)

func main() {
	var output string
	var listing string

	flag.StringVar(&output, "o", "a.bin", "output binary path")
	flag.StringVar(&listing, "l", "", "also write a listing to this path")

	flag.Parse()

	if flag.NArg() != 1 {
		log.Fatalf("%v: usage: %v [-o out.bin] [-l out.lst] source.asm", os.Args[0], os.Args[0])
	}

	source := flag.Arg(0)

	inf, err := os.Open(source)
	if err != nil {
		log.Fatalf("%v: %v", source, err)
	}
	defer inf.Close()

	prog, err := assembler.Assemble(inf)
	if err != nil {
		log.Fatalf("%v: %v", source, err)
	}

	if err := os.WriteFile(output, image.Encode(prog.Image), 0o644); err != nil {
		log.Fatalf("%v: %v", output, err)
	}

	if listing != "" {
		lst := assembler.Listing(prog)
		if err := os.WriteFile(listing, []byte(lst), 0o644); err != nil {
			log.Fatalf("%v: %v", listing, err)
		}
	}
}
