package cmd

import (
	"fmt"

	"github.com/jsphweid/miditab/model"
	"github.com/jsphweid/miditab/util"
)

func inspectRoll(path string) {
	pair, err := util.ReadBinary[*model.RollPair](path)
	if err != nil {
		panic("Could not read roll pair: " + err.Error())
	}

	fmt.Printf("input steps: %v\n", len(pair.Input))
	fmt.Printf("target steps: %v\n", len(pair.Target))

	var active int
	for _, row := range pair.Target {
		for _, v := range row {
			if v != 0 {
				active++
			}
		}
	}
	fmt.Printf("active cells: %v\n", active)
}
