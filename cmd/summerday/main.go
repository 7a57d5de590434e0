// Command summerday runs the inline "day of summer" sticker bot.
package main

import (
	"fmt"
	"os"
)

func main() {
	if err := newRootCmd().Execute(); err != nil {
		fmt.Fprintln(os.Stderr, "summerday:", err)
		os.Exit(1)
	}
}
