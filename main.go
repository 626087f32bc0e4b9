/*
Copyright © 2025 Joseph Goksu josephgoksu@gmail.com
*/
package main

import (
	"github.com/josephgoksu/TimeWing/cmd"
	"github.com/josephgoksu/TimeWing/internal/logger"
)

func main() {
	defer logger.RecoverPanic()
	cmd.Execute()
}
