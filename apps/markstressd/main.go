package main

import (
	"fmt"
	"os"

	"soloos/sdatomic/markstressd"
	"soloos/sdatomic/util"
)

func main() {
	var (
		markstressdIns markstressd.MARKSTRESSD
		options        markstressd.Options
		err            error
	)

	if len(os.Args) < 2 {
		fmt.Fprintln(os.Stderr, "usage: markstressd <options.json>")
		os.Exit(2)
	}
	optionsFile := os.Args[1]

	err = util.LoadOptionsFile(optionsFile, &options)
	util.AssertErrIsNil(err)

	util.AssertErrIsNil(markstressdIns.Init(options))
	util.AssertErrIsNil(markstressdIns.Start())
}
