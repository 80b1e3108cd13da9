// genhash imprime el hash bcrypt para AUTH_PASSWORD_HASH.
//
// Uso: go run ./cmd/genhash <password>
package main

import (
	"fmt"
	"os"

	"github.com/jhoicas/semaforo-stock/internal/application/auth"
)

func main() {
	if len(os.Args) != 2 {
		fmt.Fprintln(os.Stderr, "uso: genhash <password>")
		os.Exit(2)
	}
	hash, err := auth.HashPassword(os.Args[1])
	if err != nil {
		fmt.Fprintf(os.Stderr, "generar hash: %v\n", err)
		os.Exit(1)
	}
	fmt.Println(hash)
}
