package main

import (
	"github.com/joho/godotenv"

	"coursekit/internal/cli"
)

func main() {
	_ = godotenv.Load()
	cli.Execute()
}
