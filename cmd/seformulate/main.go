// Command seformulate loads a measurement document, builds the residual
// formulation for a solver formulation and prints what was emitted.
//
//	seformulate build -m feeder.yaml -f acp
//	seformulate build -m feeder.yaml -s settings.yaml --format json
//	seformulate build -m feeder.yaml -f conic --format lp
//	seformulate decompose -m feeder.yaml --id pd7 -k 8
package main

import (
	"fmt"
	"os"
)

func main() {
	if err := newRootCmd().Execute(); err != nil {
		fmt.Fprintln(os.Stderr, "seformulate:", err)
		os.Exit(1)
	}
}
