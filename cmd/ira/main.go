package main

import (
	"os"

	"github.com/zurustar/ira/pkg/app"
)

func main() {
	application := app.New()
	if err := application.Run(os.Args[1:]); err != nil {
		// エラーはApplicationが表示済み
		os.Exit(1)
	}
}
