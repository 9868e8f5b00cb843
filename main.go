package main

import (
	"taxform/cmd"

	"github.com/rohanthewiz/logger"
)

func main() {
	logger.SetLogLevel("info")
	cmd.Execute()
}
