// cmd/cfastq-umi10/main.go
package main

import (
	"cfastq/internal/appshell"
	"cfastq/internal/legacyapp"
)

func main() { appshell.Main(legacyapp.RunContext) }
