// cmd/cfastq/main.go
package main

import (
	"cfastq/internal/app"
	"cfastq/internal/appshell"
)

func main() { appshell.Main(app.RunContext) }
