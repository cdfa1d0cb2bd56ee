// Command swissctl runs tournament operations directly against the store,
// without the HTTP server.
package main

import (
	"log"
	"os"

	"github.com/joho/godotenv"
)

func main() {
	// Отсутствие .env не ошибка.
	_ = godotenv.Load()

	if err := newApp(os.Stdout).Run(os.Args); err != nil {
		log.Fatal(err)
	}
}
