// cmd/bprna/main.go
package main

import (
	"bprna/internal/app"
	"bprna/internal/appshell"
)

func main() {
	appshell.Main(app.RunContext)
}
