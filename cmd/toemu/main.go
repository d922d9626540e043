package main

import (
	"flag"
	"log"
	"os"

	"github.com/retrocore/toy16/image"
	"github.com/retrocore/toy16/machine"
)

func main() {
	var trace bool
	var memdump string

	flag.BoolVar(&trace, "trace", false, "print per-instruction state while running")
	flag.StringVar(&memdump, "memdump", "", "dump memory to this path after halt")

	flag.Parse()

	if flag.NArg() != 1 {
		log.Fatalf("%v: usage: %v [--trace] [--memdump out.dump] binary", os.Args[0], os.Args[0])
	}

	path := flag.Arg(0)

	data, err := os.ReadFile(path)
	if err != nil {
		log.Fatalf("%v: %v", path, err)
	}

	cpu := machine.NewCPU()
	cpu.Reset()
	cpu.Verbose = trace
	cpu.Memory.Devices.Output = os.Stdout
	cpu.Load(image.Decode(data), 0)

	if err := cpu.Run(); err != nil {
		log.Printf("%v: %v", path, err)
	}

	if memdump != "" {
		if err := os.WriteFile(memdump, []byte(image.Memdump(cpu.Memory.Words[:])), 0o644); err != nil {
			log.Fatalf("%v: %v", memdump, err)
		}
	}
}
